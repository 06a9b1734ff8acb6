package main

import (
	"fmt"
	"slices"

	"filepick/internal/config"
	"filepick/internal/errors"
	"filepick/internal/tui/styles"

	"github.com/spf13/cobra"
)

// NewThemesCmd creates the themes command
func NewThemesCmd(opts *rootOptions) *cobra.Command {
	var set string

	cmd := &cobra.Command{
		Use:   "themes",
		Short: "List the available colour themes",
		Long: `Themes lists the colour themes, marking the current one with "*".
With --set NAME the theme is written to the config file instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if set != "" {
				return saveTheme(cmd, opts, set)
			}

			out := cmd.OutOrStdout()
			for _, name := range config.ListThemes() {
				marker := " "
				if name == opts.cfg.Theme.Name {
					marker = "*"
				}
				sample := styles.New(styles.PaletteFromTheme(name)).Title.Render(name)
				fmt.Fprintf(out, "%s %s\n", marker, sample)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&set, "set", "", "save NAME as the theme in the config file")
	return cmd
}

// saveTheme rewrites the config file with the named theme. The file is
// reloaded so flag overrides of this run are not persisted.
func saveTheme(cmd *cobra.Command, opts *rootOptions, name string) error {
	if !slices.Contains(config.ListThemes(), name) {
		return errors.Newf("unknown theme %q (run 'filepick themes' to list them)", name)
	}

	path := opts.configFile
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return errors.Wrap(err, "cannot locate config file")
		}
	}

	cfg, err := config.LoadConfigFile(path)
	if err != nil {
		return err
	}
	cfg.ApplyTheme(name)
	if err := config.SaveConfig(cfg, path); err != nil {
		return err
	}

	PrintInfo(cmd.ErrOrStderr(), fmt.Sprintf("Theme set to %s in %s", name, path))
	return nil
}
