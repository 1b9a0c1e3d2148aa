// Package config loads stockroom settings from an optional YAML file and
// STOCKROOM_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/alexisbeaulieu97/stockroom/internal/catalog"
	apperrors "github.com/alexisbeaulieu97/stockroom/pkg/errors"
)

const (
	envPrefix      = "STOCKROOM"
	configFileName = "stockroom"
	configFileType = "yaml"
	appDirName     = "stockroom"
)

// Config is the resolved application configuration. Relative paths have been
// joined onto DataDir by Load.
type Config struct {
	Database    Database    `mapstructure:"database"`
	DataDir     string      `mapstructure:"data_dir" validate:"required"`
	ExportDir   string      `mapstructure:"export_dir" validate:"required"`
	Preferences Preferences `mapstructure:"preferences"`
	Log         Log         `mapstructure:"log"`
	Catalog     Catalog     `mapstructure:"catalog"`
}

type Database struct {
	Driver string `mapstructure:"driver" validate:"oneof=sqlite mysql"`
	DSN    string `mapstructure:"dsn" validate:"required"`
}

type Preferences struct {
	ThemeFile string `mapstructure:"theme_file" validate:"required"`
	TabFile   string `mapstructure:"tab_file" validate:"required"`
}

type Log struct {
	Level string `mapstructure:"level" validate:"oneof=trace debug info warn error"`
	Human bool   `mapstructure:"human"`
}

type Catalog struct {
	PageSize          int `mapstructure:"page_size" validate:"oneof=10 25 50 100"`
	LowStockThreshold int `mapstructure:"low_stock_threshold" validate:"gte=0"`
}

// LoadOptions controls where Load looks for a config file.
type LoadOptions struct {
	// File is an explicit config path. It must exist when set.
	File string
	// SearchPaths are scanned for stockroom.yaml when File is empty.
	SearchPaths []string
}

// DefaultSearchPaths returns the working directory followed by the user config
// directory.
func DefaultSearchPaths() []string {
	paths := []string{"."}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, appDirName))
	}
	return paths
}

// Load reads configuration. Environment variables win over the file, which
// wins over defaults.
func Load(opts LoadOptions) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.File != "" {
		v.SetConfigFile(opts.File)
		if err := v.ReadInConfig(); err != nil {
			return nil, apperrors.NewParseError(opts.File, 0, err)
		}
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		for _, p := range opts.SearchPaths {
			v.AddConfigPath(p)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, apperrors.NewParseError(v.ConfigFileUsed(), 0, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, apperrors.NewParseError(v.ConfigFileUsed(), 0, err)
	}
	if err := cfg.resolve(); err != nil {
		return nil, err
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "stockroom.db")
	v.SetDefault("data_dir", "")
	v.SetDefault("export_dir", "exports")
	v.SetDefault("preferences.theme_file", "theme_preference.json")
	v.SetDefault("preferences.tab_file", "tab_state.txt")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.human", false)
	v.SetDefault("catalog.page_size", catalog.DefaultPageSize)
	v.SetDefault("catalog.low_stock_threshold", 10)
}

func (c *Config) resolve() error {
	if c.DataDir == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return fmt.Errorf("resolve data dir: %w", err)
		}
		c.DataDir = filepath.Join(dir, appDirName)
	}
	c.DataDir = expandHome(c.DataDir)

	c.ExportDir = c.within(c.ExportDir)
	c.Preferences.ThemeFile = c.within(c.Preferences.ThemeFile)
	c.Preferences.TabFile = c.within(c.Preferences.TabFile)
	if c.Database.Driver == "sqlite" {
		c.Database.DSN = c.within(c.Database.DSN)
	}
	c.Log.Level = strings.ToLower(c.Log.Level)
	return nil
}

// LogFile is where the dashboard writes its log.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDir, "stockroom.log")
}

func (c *Config) within(path string) string {
	if path == "" || path == ":memory:" || strings.HasPrefix(path, "file:") {
		return path
	}
	path = expandHome(path)
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.DataDir, path)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// Validate checks field constraints, reporting the first failure.
func Validate(cfg *Config) error {
	err := validator.New().Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		msg := fmt.Sprintf("failed %s validation", fe.Tag())
		switch fe.Tag() {
		case "oneof":
			msg = fmt.Sprintf("must be one of %s", fe.Param())
		case "gte":
			msg = fmt.Sprintf("must be at least %s", fe.Param())
		case "required":
			msg = "is required"
		}
		return apperrors.NewValidationError(fe.Namespace(), msg, err)
	}
	return apperrors.NewValidationError("config", err.Error(), err)
}
