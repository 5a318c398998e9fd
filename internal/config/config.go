// Package config loads and validates the tool configuration: logging plus
// the renderer options recognized on the command line or in config.yaml.
package config

import (
	"fmt"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// LoggerConfig controls the zap logger.
type LoggerConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"` // "console" or "json"

	// LogFile, when set, tees JSON logs into a rotated file.
	LogFile    string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize    int    `mapstructure:"max_size" yaml:"max_size"` // megabytes
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" yaml:"max_age"` // days
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

// RenderConfig carries the recognized renderer options.
type RenderConfig struct {
	// OmitTopbar suppresses the topbar section of the output tree.
	OmitTopbar bool `mapstructure:"omit_topbar" yaml:"omit_topbar"`

	// OutputDir receives the rendered files; empty means alongside input.
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
}

// Config is the full tool configuration.
type Config struct {
	Logger LoggerConfig `mapstructure:"logger" yaml:"logger"`
	Render RenderConfig `mapstructure:"render" yaml:"render"`
}

// SetDefaults registers default values on a viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)
	v.SetDefault("render.omit_topbar", false)
}

// Load reads configuration from the optional explicit file, the working
// directory, the home directory and BEACON_* environment variables, in the
// usual viper precedence.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigName(".beacon")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("BEACON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the rest of the tool cannot act on.
func (c *Config) Validate() error {
	switch c.Logger.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid logger format %q (want console or json)", c.Logger.Format)
	}
	switch strings.ToLower(c.Logger.Level) {
	case "debug", "info", "warn", "error", "":
	default:
		return fmt.Errorf("invalid logger level %q", c.Logger.Level)
	}
	return nil
}
