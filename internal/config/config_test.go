package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"filepick/internal/config"
	"filepick/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a temporary YAML config file
func createTestYAML(t *testing.T, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp(t.TempDir(), "config-*.yaml")
	require.NoError(t, err)
	_, err = tmpFile.WriteString(content)
	require.NoError(t, err)
	err = tmpFile.Close()
	require.NoError(t, err)
	return tmpFile.Name()
}

const (
	validYAML = `
ignore_file: .pickignore
root: /work/project
watch: false
read_concurrency: 4
layout:
  min_column_width: 32
  max_columns: 6
keys:
  select_all: ctrl+a
theme:
  name: ocean
  warning: "202"
logging:
  file: /tmp/filepick-test.log
  json: true
`
	invalidSyntaxYAML = `
layout:
  min_column_width: [32
keys: {
`
	invalidValueYAML = `
layout:
  max_columns: 0
`
	unknownThemeYAML = `
theme:
  name: neon
`
)

func TestLoadConfigFile(t *testing.T) {
	t.Run("load valid config", func(t *testing.T) {
		configFile := createTestYAML(t, validYAML)
		cfg, err := config.LoadConfigFile(configFile)

		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, ".pickignore", cfg.IgnoreFile)
		assert.Equal(t, "/work/project", cfg.Root)
		assert.False(t, cfg.Watch)
		assert.Equal(t, 4, cfg.ReadConcurrency)
		assert.Equal(t, 32, cfg.Layout.MinColumnWidth)
		assert.Equal(t, 6, cfg.Layout.MaxColumns)
		assert.Equal(t, 6, cfg.Layout.HeaderRows, "unset keys keep defaults")
		assert.Equal(t, "ctrl+a", cfg.Keys.SelectAll)
		assert.Equal(t, "ocean", cfg.Theme.Name)
		assert.Equal(t, "31", cfg.Theme.Primary, "palette comes from the named theme")
		assert.Equal(t, "202", cfg.Theme.Warning, "explicit colour overrides the palette")
		assert.Equal(t, "/tmp/filepick-test.log", cfg.Logging.File)
		assert.True(t, cfg.Logging.JSON)
	})

	t.Run("missing file returns defaults", func(t *testing.T) {
		cfg, err := config.LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, ".gitignore", cfg.IgnoreFile)
		assert.Equal(t, 40, cfg.Layout.MinColumnWidth)
		assert.Equal(t, 4, cfg.Layout.MaxColumns)
		assert.Equal(t, 6, cfg.Layout.HeaderRows)
		assert.Equal(t, "a", cfg.Keys.SelectAll)
		assert.Equal(t, "default", cfg.Theme.Name)
		assert.True(t, cfg.Watch)
	})

	t.Run("invalid syntax", func(t *testing.T) {
		configFile := createTestYAML(t, invalidSyntaxYAML)
		_, err := config.LoadConfigFile(configFile)
		require.Error(t, err)
		assert.True(t, errors.IsInvalidConfig(err))
	})

	t.Run("invalid value", func(t *testing.T) {
		configFile := createTestYAML(t, invalidValueYAML)
		_, err := config.LoadConfigFile(configFile)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max columns")
		assert.True(t, errors.IsInvalidConfig(err))
	})

	t.Run("unknown theme", func(t *testing.T) {
		configFile := createTestYAML(t, unknownThemeYAML)
		_, err := config.LoadConfigFile(configFile)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "neon")
	})

	t.Run("unreadable path", func(t *testing.T) {
		// A directory cannot be read as a file
		_, err := config.LoadConfigFile(t.TempDir())
		require.Error(t, err)
		assert.True(t, errors.IsConfigUnreadable(err))
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr string
	}{
		{"defaults", func(c *config.Config) {}, ""},
		{"zero concurrency", func(c *config.Config) { c.ReadConcurrency = 0 }, "read concurrency"},
		{"zero column width", func(c *config.Config) { c.Layout.MinColumnWidth = 0 }, "min column width"},
		{"negative header rows", func(c *config.Config) { c.Layout.HeaderRows = -1 }, "header rows"},
		{"zero header rows", func(c *config.Config) { c.Layout.HeaderRows = 0 }, ""},
		{"empty select all", func(c *config.Config) { c.Keys.SelectAll = "" }, "select-all"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	var nilCfg *config.Config
	assert.Error(t, nilCfg.Validate())
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := config.New()
	cfg.Layout.MaxColumns = 3
	cfg.ApplyTheme("sunset")

	require.NoError(t, config.SaveConfig(cfg, path))

	loaded, err := config.LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Layout.MaxColumns)
	assert.Equal(t, "sunset", loaded.Theme.Name)
	assert.Equal(t, "208", loaded.Theme.Primary)
}

func TestPaths(t *testing.T) {
	cfg := config.New()
	cfg.Root = "/work"
	assert.Equal(t, filepath.Join("/work", ".gitignore"), cfg.IgnorePath())

	cfg.IgnoreFile = "/etc/filepick/ignore"
	assert.Equal(t, "/etc/filepick/ignore", cfg.IgnorePath())

	cfg.Logging.File = "/var/log/filepick.log"
	assert.Equal(t, "/var/log/filepick.log", cfg.LogPath())

	cfg.Logging.File = ""
	assert.Equal(t, "filepick.log", filepath.Base(cfg.LogPath()))
}

func TestThemes(t *testing.T) {
	for _, name := range config.ListThemes() {
		theme := config.GetTheme(name)
		for _, key := range []string{"primary", "success", "warning", "error", "info", "emphasis", "border"} {
			assert.NotEmpty(t, theme[key], "theme %s missing %s", name, key)
		}
	}
	assert.Equal(t, config.GetTheme("default"), config.GetTheme("does-not-exist"))
}
