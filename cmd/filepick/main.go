package main

import (
	"fmt"
	"os"

	"filepick/internal/errors"
	"filepick/internal/picker"
)

var (
	version = "dev"
)

// exitCancelled is the conventional status for a run ended by the user.
const exitCancelled = 130

// Entry point for the application
func main() {
	if err := NewRootCmd().Execute(); err != nil {
		if errors.Is(err, picker.ErrCancelled) {
			os.Exit(exitCancelled)
		}
		PrintError(os.Stderr, fmt.Sprint(err))
		os.Exit(1)
	}
}
