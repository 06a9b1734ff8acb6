package main

import (
	"fmt"
	"os"

	"filepick/internal/errors"
	"filepick/internal/ignore"
	"filepick/internal/log"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewCheckCmd creates the check command, which reports ignored paths
// without starting the picker.
func NewCheckCmd(opts *rootOptions) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Show which paths match the ignore file",
		Long: `Check matches each path against the ignore file and prints the paths
that match, followed by the first pattern that matched them.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := opts.collectPaths(args, term.IsTerminal(int(os.Stdin.Fd())))
			if err != nil {
				return err
			}

			ignorePath := opts.cfg.IgnorePath()
			rules, err := ignore.Load(ignorePath)
			switch {
			case err == nil:
			case errors.IsInvalidPattern(err):
				log.LogWithFields(log.F("file", ignorePath), log.F("error", err)).Warn("Skipped ignore patterns that do not compile")
				PrintWarning(cmd.ErrOrStderr(), err.Error())
			default:
				log.LogWithError(err).Warn("Ignore file unreadable")
				PrintWarning(cmd.ErrOrStderr(), err.Error())
			}
			return runCheck(cmd, ignorePath, rules, paths, all)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "also list paths that do not match")
	return cmd
}

func runCheck(cmd *cobra.Command, ignorePath string, rules *ignore.RuleSet, paths []string, all bool) error {
	out := cmd.OutOrStdout()
	PrintHeader(cmd.ErrOrStderr(), fmt.Sprintf("%s: %d patterns", ignorePath, rules.Len()))

	matched := 0
	for _, p := range paths {
		if p == "" {
			continue
		}
		pattern, ok := rules.Match(p)
		switch {
		case ok:
			matched++
			fmt.Fprintf(out, "%s\t%s\n", p, pattern)
		case all:
			fmt.Fprintf(out, "%s\t-\n", p)
		}
	}

	PrintInfo(cmd.ErrOrStderr(), fmt.Sprintf("%d of %d paths ignored", matched, countNonEmpty(paths)))
	return nil
}

func countNonEmpty(paths []string) int {
	n := 0
	for _, p := range paths {
		if p != "" {
			n++
		}
	}
	return n
}
