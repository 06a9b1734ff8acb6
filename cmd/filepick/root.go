package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"filepick/internal/config"
	"filepick/internal/errors"
	"filepick/internal/log"

	"github.com/spf13/cobra"
)

// rootOptions holds the flags shared by every command.
type rootOptions struct {
	configFile string
	from       string
	root       string
	ignoreFile string
	output     string
	logFile    string
	debug      bool

	cfg   *config.Config
	stdin io.Reader
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{stdin: os.Stdin}

	rootCmd := &cobra.Command{
		Use:   "filepick [paths...]",
		Short: "Pick files from a list in a multi-column terminal selector",
		Long: `filepick shows a list of paths in columns that fit the terminal and lets
you toggle them on and off. Selected items that match the ignore file are
flagged, and the running character total of the selection is shown.

Paths come from the arguments, from --from FILE, or from standard input.
The selected paths are printed one per line when you press enter.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPicker(cmd, opts, args)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file (default is $HOME/.config/filepick/config.yaml)")
	flags.StringVar(&opts.from, "from", "", "read paths from FILE, one per line (- for stdin)")
	flags.StringVar(&opts.root, "root", "", "directory the paths are relative to")
	flags.StringVar(&opts.ignoreFile, "ignore-file", "", "ignore file (default .gitignore under the root)")
	flags.StringVar(&opts.logFile, "log-file", "", "write logs to this file")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	rootCmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the selection to FILE instead of stdout")

	rootCmd.AddCommand(NewCheckCmd(opts))
	rootCmd.AddCommand(NewThemesCmd(opts))

	return rootCmd
}

// setup loads the configuration, applies flag overrides and points the
// logger at the log file.
func (o *rootOptions) setup(cmd *cobra.Command) error {
	var err error
	if o.configFile != "" {
		o.cfg, err = config.LoadConfigFile(o.configFile)
	} else {
		o.cfg, err = config.LoadConfig()
	}
	if err != nil {
		// A config file that exists but is wrong is never silently skipped
		if o.configFile != "" || errors.IsInvalidConfig(err) {
			return err
		}
		PrintWarning(cmd.ErrOrStderr(), fmt.Sprintf("Warning: %v; using default settings", err))
		o.cfg = config.New()
	}

	flags := cmd.Flags()
	if flags.Changed("root") {
		o.cfg.Root = o.root
	}
	if flags.Changed("ignore-file") {
		o.cfg.IgnoreFile = o.ignoreFile
	}
	if flags.Changed("log-file") {
		o.cfg.Logging.File = o.logFile
	}
	if flags.Changed("debug") {
		o.cfg.Logging.Debug = o.debug
	}

	logOpts := []log.Option{log.WithFile(o.cfg.LogPath())}
	if o.cfg.Logging.JSON {
		logOpts = append(logOpts, log.WithJSON())
	}
	if err := log.Configure(logOpts...); err != nil {
		// Never let log lines land on the terminal the picker draws on
		_ = log.Configure(log.WithOutput(io.Discard))
	}
	log.SetDebug(o.cfg.Logging.Debug)
	log.LogWithFields(log.F("version", version), log.F("root", o.cfg.Root)).Debug("Configuration loaded")
	return nil
}

// collectPaths gathers the item paths from args, --from and stdin, in that
// order. Stdin is read when --from is "-", or when there are no other
// sources and stdin is not a terminal.
func (o *rootOptions) collectPaths(args []string, stdinIsTerminal bool) ([]string, error) {
	paths := append([]string(nil), args...)

	switch o.from {
	case "":
		if len(paths) == 0 && !stdinIsTerminal {
			return append(paths, readLines(o.stdin)...), nil
		}
	case "-":
		paths = append(paths, readLines(o.stdin)...)
	default:
		data, err := os.ReadFile(o.from)
		if err != nil {
			return nil, errors.Wrapf(err, "error reading path list %s", o.from)
		}
		paths = append(paths, readLines(strings.NewReader(string(data)))...)
	}
	return paths, nil
}
