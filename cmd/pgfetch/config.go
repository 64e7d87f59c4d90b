package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/geoknoesis/pointedgraph/fetch"
)

// Config holds the settings shared by every subcommand.
type Config struct {
	Timeout   time.Duration
	UserAgent string
	Verbose   bool
}

const envPrefix = "PGFETCH"

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("timeout", fetch.DefaultTimeout)
	v.SetDefault("user_agent", "pgfetch")
	v.SetDefault("verbose", false)

	v.SetConfigName("pgfetch")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// loadConfig reads file, or pgfetch.yaml from the working directory when file
// is empty. A missing default file is not an error.
func loadConfig(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := Config{
		Timeout:   v.GetDuration("timeout"),
		UserAgent: v.GetString("user_agent"),
		Verbose:   v.GetBool("verbose"),
	}
	if cfg.Timeout <= 0 {
		return Config{}, fmt.Errorf("timeout must be positive, got %s", cfg.Timeout)
	}
	return cfg, nil
}
