package config

import (
	"fmt"
	"os"
	"path/filepath"

	"filepick/internal/errors"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration structure.
// It defines where ignore rules come from, how the column grid is laid out,
// key overrides, theme colours and logging.
type Config struct {
	IgnoreFile      string `yaml:"ignore_file"`      // Ignore file, relative to Root unless absolute
	Root            string `yaml:"root"`             // Directory item paths are relative to
	Watch           bool   `yaml:"watch"`            // Reload rules and sizes when files change
	ReadConcurrency int    `yaml:"read_concurrency"` // Parallel reads when toggling everything
	Layout          struct {
		MinColumnWidth int `yaml:"min_column_width"` // Narrowest column before dropping one
		MaxColumns     int `yaml:"max_columns"`      // Upper bound on columns
		HeaderRows     int `yaml:"header_rows"`      // Rows reserved for frame, header, stats and help
	} `yaml:"layout"`
	Keys struct {
		SelectAll string `yaml:"select_all"` // Key that toggles every item
	} `yaml:"keys"`
	Theme struct {
		Name     string `yaml:"name"`     // Theme name (default, dark, light, etc.)
		Primary  string `yaml:"primary"`  // Title and cursor colour
		Success  string `yaml:"success"`  // Checked item colour
		Warning  string `yaml:"warning"`  // Ignored item warning colour
		Error    string `yaml:"error"`    // Read failure colour
		Info     string `yaml:"info"`     // Stats line colour
		Emphasis string `yaml:"emphasis"` // Emphasis colour for text that should stand out
		Border   string `yaml:"border"`   // Border colour for the frame
	} `yaml:"theme"`
	Logging struct {
		File  string `yaml:"file"`  // Log file; empty uses the user cache directory
		JSON  bool   `yaml:"json"`  // One JSON object per entry
		Debug bool   `yaml:"debug"` // Emit debug entries
	} `yaml:"logging"`
}

// DefaultPath returns ~/.config/filepick/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "filepick", "config.yaml"), nil
}

// LoadConfig loads configuration from the default location
// (~/.config/filepick/config.yaml).
func LoadConfig() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.NewConfigError("error reading config file", path, errors.ConfigUnreadable, err)
	}

	// The named palette goes in first so explicit colours in the file win
	var probe struct {
		Theme struct {
			Name string `yaml:"name"`
		} `yaml:"theme"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
	}
	if probe.Theme.Name != "" {
		cfg.ApplyTheme(probe.Theme.Name)
	}

	// Unmarshal over the defaults so unset keys keep their default values
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return cfg, nil
}

// defaultConfig returns the default configuration.
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.IgnoreFile = ".gitignore"
	cfg.Root = "."
	cfg.Watch = true
	cfg.ReadConcurrency = 8

	cfg.Layout.MinColumnWidth = 40
	cfg.Layout.MaxColumns = 4
	cfg.Layout.HeaderRows = 6

	cfg.Keys.SelectAll = "a"

	cfg.ApplyTheme("default")

	return cfg
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "failed to write config file %s", path)
	}

	return nil
}

// Validate checks if the configuration is valid.
// Returns error if any settings are invalid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.NewConfigError("nil config", "", errors.InvalidConfig, nil)
	}

	invalid := func(param, format string, args ...interface{}) error {
		return errors.NewConfigError(fmt.Sprintf(format, args...), param, errors.InvalidConfig, nil)
	}

	if c.ReadConcurrency < 1 {
		return invalid("read_concurrency", "read concurrency must be >= 1 (got %d)", c.ReadConcurrency)
	}
	if c.Layout.MinColumnWidth < 1 {
		return invalid("layout.min_column_width", "min column width must be >= 1 (got %d)", c.Layout.MinColumnWidth)
	}
	if c.Layout.MaxColumns < 1 {
		return invalid("layout.max_columns", "max columns must be >= 1 (got %d)", c.Layout.MaxColumns)
	}
	if c.Layout.HeaderRows < 0 {
		return invalid("layout.header_rows", "header rows must be >= 0 (got %d)", c.Layout.HeaderRows)
	}
	if c.Keys.SelectAll == "" {
		return invalid("keys.select_all", "select-all key cannot be empty")
	}
	if c.Theme.Name != "" && !isKnownTheme(c.Theme.Name) {
		return invalid("theme.name", "unknown theme %q", c.Theme.Name)
	}

	return nil
}

// IgnorePath resolves the ignore file against Root.
func (c *Config) IgnorePath() string {
	if c.IgnoreFile == "" || filepath.IsAbs(c.IgnoreFile) {
		return c.IgnoreFile
	}
	return filepath.Join(c.Root, c.IgnoreFile)
}

// LogPath returns the configured log file, or
// <user cache dir>/filepick/filepick.log.
func (c *Config) LogPath() string {
	if c.Logging.File != "" {
		return c.Logging.File
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "filepick", "filepick.log")
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}

var themes = map[string]map[string]string{
	"default": {
		"primary":  "213", // Purple
		"success":  "114", // Green
		"warning":  "220", // Yellow
		"error":    "196", // Red
		"info":     "39",  // Blue
		"emphasis": "212", // Light Pink
		"border":   "213", // Purple
	},
	"dark": {
		"primary":  "105", // Dark Blue
		"success":  "78",  // Dark Green
		"warning":  "214", // Dark Yellow
		"error":    "160", // Dark Red
		"info":     "33",  // Dark Blue
		"emphasis": "147", // Light Blue
		"border":   "105", // Dark Blue
	},
	"light": {
		"primary":  "135", // Light Purple
		"success":  "150", // Light Green
		"warning":  "222", // Light Yellow
		"error":    "210", // Light Red
		"info":     "117", // Light Blue
		"emphasis": "219", // Very Light Pink
		"border":   "135", // Light Purple
	},
	"monochrome": {
		"primary":  "245", // Light Grey
		"success":  "252", // White
		"warning":  "241", // Medium Grey
		"error":    "232", // Black
		"info":     "248", // Grey
		"emphasis": "255", // Bright White
		"border":   "245", // Light Grey
	},
	"ocean": {
		"primary":  "31",  // Teal
		"success":  "36",  // Green-Blue
		"warning":  "220", // Yellow
		"error":    "196", // Red
		"info":     "33",  // Blue
		"emphasis": "51",  // Cyan
		"border":   "31",  // Teal
	},
	"sunset": {
		"primary":  "208", // Orange
		"success":  "154", // Green
		"warning":  "214", // Dark Yellow
		"error":    "196", // Red
		"info":     "69",  // Light Green
		"emphasis": "203", // Pink-Orange
		"border":   "208", // Orange
	},
}

// GetTheme returns a predefined theme configuration by name.
// If the theme doesn't exist, returns the default theme.
func GetTheme(name string) map[string]string {
	if theme, exists := themes[name]; exists {
		return theme
	}
	return themes["default"]
}

func isKnownTheme(name string) bool {
	_, ok := themes[name]
	return ok
}

// ApplyTheme sets the theme in the configuration.
// It updates the theme colors based on the theme name.
func (c *Config) ApplyTheme(name string) {
	theme := GetTheme(name)

	c.Theme.Name = name
	c.Theme.Primary = theme["primary"]
	c.Theme.Success = theme["success"]
	c.Theme.Warning = theme["warning"]
	c.Theme.Error = theme["error"]
	c.Theme.Info = theme["info"]
	c.Theme.Emphasis = theme["emphasis"]
	c.Theme.Border = theme["border"]
}

// ListThemes returns a list of available theme names.
func ListThemes() []string {
	return []string{"default", "dark", "light", "monochrome", "ocean", "sunset"}
}
