// Package config handles loading taskmaster.toml configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
)

// Default values.
const (
	DefaultBaseURL          = "https://jsonplaceholder.typicode.com"
	DefaultInitialLimit     = 5
	DefaultReminderInterval = time.Second
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "text"
	DefaultTheme            = "classic"

	projectFileName = "taskmaster.toml"
)

// Config represents the taskmaster.toml configuration file.
type Config struct {
	Gateway  Gateway  `toml:"gateway"`
	Reminder Reminder `toml:"reminder"`
	Create   Create   `toml:"create"`
	Log      Log      `toml:"log"`
	UI       UI       `toml:"ui"`

	// Email pre-fills the login form. Env only.
	Email string `toml:"-"`
}

// Gateway configures the remote todo API.
type Gateway struct {
	BaseURL string `toml:"base_url"`
	// InitialLimit is how many todos are loaded when a session starts. 0 starts empty.
	InitialLimit int `toml:"initial_limit"`
}

// Reminder configures the reminder check loop.
type Reminder struct {
	Interval time.Duration `toml:"interval"`
}

// Create configures item creation.
type Create struct {
	// SeedOnEmpty turns an add with an empty title or description into a
	// sample fetched from the gateway instead of a validation error.
	SeedOnEmpty bool `toml:"seed_on_empty"`
}

// Log configures logging.
type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"`
}

// UI configures console output.
type UI struct {
	Theme string `toml:"theme"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Gateway:  Gateway{BaseURL: DefaultBaseURL, InitialLimit: DefaultInitialLimit},
		Reminder: Reminder{Interval: DefaultReminderInterval},
		Create:   Create{SeedOnEmpty: true},
		Log:      Log{Level: DefaultLogLevel, Format: DefaultLogFormat},
		UI:       UI{Theme: DefaultTheme},
	}
}

// Sources lists where configuration is read from.
type Sources struct {
	// Global is the per-user file. Empty means the default location.
	Global string
	// ProjectDir holds taskmaster.toml. Empty means the working directory.
	ProjectDir string
	// Explicit is a file passed with --config; it must exist.
	Explicit string
	// Env looks up environment variables. Nil means os.LookupEnv.
	Env func(string) (string, bool)
}

// Load builds the configuration in priority order:
// defaults, global file, project file, explicit file, environment.
// Flags are applied afterwards with ApplyFlags.
func Load(src Sources) (*Config, error) {
	cfg := Default()

	globalPath := src.Global
	if globalPath == "" {
		p, err := GlobalPath()
		if err != nil {
			return nil, err
		}
		globalPath = p
	}
	projectDir := src.ProjectDir
	if projectDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getwd: %w", err)
		}
		projectDir = wd
	}

	files := []struct {
		path     string
		required bool
	}{
		{globalPath, false},
		{filepath.Join(projectDir, projectFileName), false},
	}
	if src.Explicit != "" {
		files = append(files, struct {
			path     string
			required bool
		}{src.Explicit, true})
	}
	for _, f := range files {
		if err := mergeFile(cfg, f.path, f.required); err != nil {
			return nil, err
		}
	}

	env := src.Env
	if env == nil {
		env = os.LookupEnv
	}
	if err := applyEnv(cfg, env); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// GlobalPath returns ~/.config/taskmaster/config.toml.
func GlobalPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "taskmaster", "config.toml"), nil
}

// mergeFile overlays the keys defined in path onto cfg.
func mergeFile(cfg *Config, path string, required bool) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !required {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	var file Config
	meta, err := toml.Decode(string(data), &file)
	if err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("config file %s: unknown key %q", path, undecoded[0].String())
	}

	if meta.IsDefined("gateway", "base_url") {
		cfg.Gateway.BaseURL = strings.TrimSpace(file.Gateway.BaseURL)
	}
	if meta.IsDefined("gateway", "initial_limit") {
		cfg.Gateway.InitialLimit = file.Gateway.InitialLimit
	}
	if meta.IsDefined("reminder", "interval") {
		cfg.Reminder.Interval = file.Reminder.Interval
	}
	if meta.IsDefined("create", "seed_on_empty") {
		cfg.Create.SeedOnEmpty = file.Create.SeedOnEmpty
	}
	if meta.IsDefined("log", "level") {
		cfg.Log.Level = file.Log.Level
	}
	if meta.IsDefined("log", "format") {
		cfg.Log.Format = file.Log.Format
	}
	if meta.IsDefined("log", "file") {
		cfg.Log.File = file.Log.File
	}
	if meta.IsDefined("ui", "theme") {
		cfg.UI.Theme = file.UI.Theme
	}
	return nil
}

func applyEnv(cfg *Config, env func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := env(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	str("TASKMASTER_GATEWAY_URL", &cfg.Gateway.BaseURL)
	str("TASKMASTER_LOG_LEVEL", &cfg.Log.Level)
	str("TASKMASTER_LOG_FORMAT", &cfg.Log.Format)
	str("TASKMASTER_LOG_FILE", &cfg.Log.File)
	str("TASKMASTER_THEME", &cfg.UI.Theme)
	str("TASKMASTER_EMAIL", &cfg.Email)

	if v, ok := env("TASKMASTER_INITIAL_LIMIT"); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("TASKMASTER_INITIAL_LIMIT: %w", err)
		}
		cfg.Gateway.InitialLimit = n
	}
	return nil
}

// Flags are the command-line overrides bound by BindFlags.
type Flags struct {
	ConfigFile string
	Gateway    string
	LogLevel   string
	LogFormat  string
	LogFile    string
	Theme      string
}

// BindFlags registers the global flags on fs.
func BindFlags(fs *pflag.FlagSet, f *Flags) {
	fs.StringVar(&f.ConfigFile, "config", "", "path to a taskmaster.toml file")
	fs.StringVar(&f.Gateway, "gateway", "", "base URL of the todo API")
	fs.StringVar(&f.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	fs.StringVar(&f.LogFormat, "log-format", "", "log format (text, json, logfmt)")
	fs.StringVar(&f.LogFile, "log-file", "", "write logs to this file")
	fs.StringVar(&f.Theme, "theme", "", "output theme (classic, neon, mono)")
}

// ApplyFlags overlays non-empty flag values onto cfg.
func (c *Config) ApplyFlags(f Flags) error {
	set := func(v string, dst *string) {
		if strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	set(f.Gateway, &c.Gateway.BaseURL)
	set(f.LogLevel, &c.Log.Level)
	set(f.LogFormat, &c.Log.Format)
	set(f.LogFile, &c.Log.File)
	set(f.Theme, &c.UI.Theme)
	return c.Validate()
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Reminder.Interval <= 0 {
		return fmt.Errorf("reminder.interval must be positive, got %s", c.Reminder.Interval)
	}
	if c.Gateway.InitialLimit < 0 {
		return fmt.Errorf("gateway.initial_limit must not be negative, got %d", c.Gateway.InitialLimit)
	}
	if strings.TrimSpace(c.Gateway.BaseURL) == "" {
		return fmt.Errorf("gateway.base_url is empty")
	}
	return nil
}
