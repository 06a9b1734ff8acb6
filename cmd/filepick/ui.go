package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// CLI output styles, used outside the TUI
var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true)
)

// PrintError prints an error message
func PrintError(w io.Writer, message string) {
	fmt.Fprintln(w, errorStyle.Render("✗ "+message))
}

// PrintWarning prints a warning message
func PrintWarning(w io.Writer, message string) {
	fmt.Fprintln(w, warningStyle.Render("! "+message))
}

// PrintInfo prints an info message
func PrintInfo(w io.Writer, message string) {
	fmt.Fprintln(w, infoStyle.Render(message))
}

// PrintHeader prints a header message
func PrintHeader(w io.Writer, message string) {
	fmt.Fprintln(w, headerStyle.Render(message))
}
