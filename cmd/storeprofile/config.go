package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	sphttp "github.com/fwojciec/storeprofile/http"
	"github.com/spf13/viper"
)

// Config holds all configuration for the program.
type Config struct {
	DB        string        `mapstructure:"db"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`

	// DomainRPS paces requests to each storefront. Zero disables pacing.
	DomainRPS float64 `mapstructure:"domain_rps"`

	Server ServerConfig `mapstructure:"server"`
}

// ServerConfig holds configuration for the serve command.
type ServerConfig struct {
	Addr           string   `mapstructure:"addr"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	RateLimit      float64  `mapstructure:"rate_limit"`
	RateBurst      int      `mapstructure:"rate_burst"`
}

// LoadConfig reads configuration from defaults, an optional config file and
// STOREPROFILE_* environment variables, in increasing order of precedence.
// When file is empty, storeprofile.yaml is looked up in the current
// directory and in ~/.storeprofile.
func LoadConfig(file string) (*Config, error) {
	v := viper.New()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("storeprofile")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".storeprofile"))
		}
	}

	v.SetEnvPrefix("STOREPROFILE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db", defaultDBPath())
	v.SetDefault("timeout", sphttp.DefaultFetchTimeout)
	v.SetDefault("user_agent", sphttp.DefaultUserAgent)
	v.SetDefault("domain_rps", 0)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{})
	v.SetDefault("server.rate_limit", 2)
	v.SetDefault("server.rate_burst", 5)
}

func validate(config *Config) error {
	if config.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", config.Timeout)
	}
	if config.DomainRPS < 0 {
		return fmt.Errorf("domain_rps must not be negative, got %v", config.DomainRPS)
	}
	if config.Server.RateLimit < 0 {
		return fmt.Errorf("server.rate_limit must not be negative, got %v", config.Server.RateLimit)
	}
	return nil
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "storeprofile.db"
	}
	return filepath.Join(home, ".storeprofile", "storeprofile.db")
}
