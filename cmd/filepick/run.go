package main

import (
	"bufio"
	"io"
	"os"
	"strings"

	"filepick/internal/config"
	"filepick/internal/content"
	"filepick/internal/errors"
	"filepick/internal/layout"
	"filepick/internal/log"
	"filepick/internal/picker"
	"filepick/internal/registry"
	"filepick/internal/tui"
	"filepick/internal/tui/styles"
	"filepick/internal/watch"
	"filepick/pkg/types"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	fallbackWidth  = 80
	fallbackHeight = 24
)

// runPicker runs the interactive selector and writes the selection.
func runPicker(cmd *cobra.Command, opts *rootOptions, args []string) error {
	cfg := opts.cfg
	stdinIsTerminal := term.IsTerminal(int(os.Stdin.Fd()))

	paths, err := opts.collectPaths(args, stdinIsTerminal)
	if err != nil {
		return err
	}

	reader := content.NewFileReader(cfg.Root)
	reg := registry.New(paths, reader, registry.WithConcurrency(cfg.ReadConcurrency))

	width, height := terminalSize()
	session := picker.New(reg, picker.Options{
		Layout: layoutOptions(cfg),
		Width:  width,
		Height: height,
	})
	logger := log.LogWithFields(log.F("session", session.ID()))
	logger.With(log.F("items", reg.Len()), log.F("width", width), log.F("height", height)).Info("Starting picker")

	var watcher *watch.Watcher
	if cfg.Watch {
		watcher = startWatcher(cfg, reg, reader)
	}

	model := tui.New(session, tui.Options{
		IgnorePath: cfg.IgnorePath(),
		Keys:       types.DefaultKeyMap(cfg.Keys.SelectAll),
		Theme:      styles.New(styles.PaletteFromConfig(cfg)),
		Watcher:    watcher,
	})

	programOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithOutput(os.Stderr),
	}
	if !stdinIsTerminal {
		programOpts = append(programOpts, tea.WithInputTTY())
	}

	if _, err := tea.NewProgram(model, programOpts...).Run(); err != nil {
		if watcher != nil {
			watcher.Stop()
		}
		log.LogError(err, "Picker exited with an error")
		return errors.Wrap(err, "error running picker")
	}

	selected, err := model.Result()
	if err != nil {
		logger.Info("Selection cancelled")
		return err
	}
	return writeSelection(cmd.OutOrStdout(), opts.output, selected)
}

func layoutOptions(cfg *config.Config) layout.Options {
	return layout.Options{
		MinColumnWidth: cfg.Layout.MinColumnWidth,
		MaxColumns:     cfg.Layout.MaxColumns,
		HeaderRows:     cfg.Layout.HeaderRows,
	}
}

// terminalSize reads the size of the terminal the frames are drawn on.
func terminalSize() (int, int) {
	w, h, err := term.GetSize(int(os.Stderr.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return fallbackWidth, fallbackHeight
	}
	return w, h
}

// startWatcher tracks the ignore file and every item. Failures are logged
// and the picker runs without live updates.
func startWatcher(cfg *config.Config, reg *registry.Registry, reader *content.FileReader) *watch.Watcher {
	w, err := watch.New()
	if err != nil {
		log.LogWithError(err).Warn("File watcher unavailable")
		return nil
	}

	if ignorePath := cfg.IgnorePath(); ignorePath != "" {
		if err := w.Track(ignorePath, ignorePath); err != nil {
			log.LogWithFields(log.F("file", ignorePath), log.F("error", err)).Debug("Cannot watch ignore file")
		}
	}
	for _, it := range reg.Items() {
		if err := w.Track(it.ID, reader.Resolve(it.ID)); err != nil {
			log.LogWithFields(log.F("file", it.ID), log.F("error", err)).Debug("Cannot watch item")
		}
	}

	if err := w.Start(); err != nil {
		log.LogWithError(err).Warn("File watcher unavailable")
		return nil
	}
	return w
}

// writeSelection prints ids one per line to out, or to the file at path.
func writeSelection(out io.Writer, path string, ids []string) error {
	var sb strings.Builder
	for _, id := range ids {
		sb.WriteString(id)
		sb.WriteByte('\n')
	}

	if path == "" {
		_, err := io.WriteString(out, sb.String())
		return err
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return errors.Wrapf(err, "error writing selection to %s", path)
	}
	return nil
}

// readLines returns the lines of r with surrounding whitespace removed.
func readLines(r io.Reader) []string {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		log.LogWithFields(log.F("error", err)).Warn("Stopped reading path list")
	}
	return lines
}
