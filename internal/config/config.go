package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	appName     = "lazymovies"
	envPrefix   = "LAZYMOVIES"
	DefaultURL  = "https://skyit-coding-challenge.herokuapp.com/movies"
	defaultPage = 10
)

// Config holds all application configuration
type Config struct {
	Source    SourceConfig    `mapstructure:"source"`
	UI        UIConfig        `mapstructure:"ui"`
	Filter    FilterConfig    `mapstructure:"filter"`
	History   HistoryConfig   `mapstructure:"history"`
	Watchlist WatchlistConfig `mapstructure:"watchlist"`
	Export    ExportConfig    `mapstructure:"export"`
	Log       LogConfig       `mapstructure:"log"`
}

type SourceConfig struct {
	URL     string        `mapstructure:"url" validate:"required"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gte=0"`
	Table   string        `mapstructure:"table"`
}

type UIConfig struct {
	Theme          string `mapstructure:"theme" validate:"oneof=default catppuccin-mocha"`
	MouseEnabled   bool   `mapstructure:"mouse_enabled"`
	PageSize       int    `mapstructure:"page_size" validate:"gte=1,lte=500"`
	DetailPosition string `mapstructure:"detail_position" validate:"oneof=center top bottom left right top-left top-right bottom-left bottom-right"`
}

type FilterConfig struct {
	IgnoreCase bool   `mapstructure:"ignore_case"`
	RatingMode string `mapstructure:"rating_mode" validate:"oneof=equals contains"`
}

type HistoryConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Path       string `mapstructure:"path"`
	MaxEntries int    `mapstructure:"max_entries" validate:"gte=0"`
}

type WatchlistConfig struct {
	Path string `mapstructure:"path"`
}

type ExportConfig struct {
	Dir string `mapstructure:"dir"`
}

type LogConfig struct {
	Level      string `mapstructure:"level" validate:"oneof=debug info warn error disabled"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" validate:"gte=1"`
	MaxBackups int    `mapstructure:"max_backups" validate:"gte=0"`
}

// GetDefaults returns a Config with all default values
func GetDefaults() *Config {
	dir := defaultDir()
	return &Config{
		Source: SourceConfig{
			URL:     DefaultURL,
			Timeout: 0,
			Table:   "movies",
		},
		UI: UIConfig{
			Theme:          "default",
			MouseEnabled:   true,
			PageSize:       defaultPage,
			DetailPosition: "center",
		},
		Filter: FilterConfig{
			IgnoreCase: false,
			RatingMode: "equals",
		},
		History: HistoryConfig{
			Enabled:    true,
			Path:       filepath.Join(dir, "history.db"),
			MaxEntries: 1000,
		},
		Watchlist: WatchlistConfig{
			Path: filepath.Join(dir, "watchlist.yaml"),
		},
		Export: ExportConfig{
			Dir: ".",
		},
		Log: LogConfig{
			Level:      "info",
			File:       filepath.Join(dir, "lazymovies.log"),
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// Load loads configuration from the default search path. When file is not
// empty it is read instead of searching.
func Load(file string) (*Config, error) {
	// A .env file is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env: %w", err)
	}

	v := viper.New()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// 1. User config directory
		if configDir, err := GetConfigPath(); err == nil {
			v.AddConfigPath(configDir)
		}
		// 2. Current directory
		v.AddConfigPath(".")
		// 3. Default config directory
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, GetDefaults())

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("source.url", d.Source.URL)
	v.SetDefault("source.timeout", d.Source.Timeout)
	v.SetDefault("source.table", d.Source.Table)
	v.SetDefault("ui.theme", d.UI.Theme)
	v.SetDefault("ui.mouse_enabled", d.UI.MouseEnabled)
	v.SetDefault("ui.page_size", d.UI.PageSize)
	v.SetDefault("ui.detail_position", d.UI.DetailPosition)
	v.SetDefault("filter.ignore_case", d.Filter.IgnoreCase)
	v.SetDefault("filter.rating_mode", d.Filter.RatingMode)
	v.SetDefault("history.enabled", d.History.Enabled)
	v.SetDefault("history.path", d.History.Path)
	v.SetDefault("history.max_entries", d.History.MaxEntries)
	v.SetDefault("watchlist.path", d.Watchlist.Path)
	v.SetDefault("export.dir", d.Export.Dir)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// GetConfigPath returns the user config directory path
func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, appName), nil
}

func defaultDir() string {
	dir, err := GetConfigPath()
	if err != nil {
		return "."
	}
	return dir
}
