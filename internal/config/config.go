// Package config loads the program's configuration from environment
// variables and an optional app.env file.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	DB     DatabaseConfig
	Logger LoggerConfig
}

// DatabaseConfig holds configuration for the tour's database file
type DatabaseConfig struct {
	Path string `mapstructure:"DB_PATH"`
	Echo bool   `mapstructure:"DB_ECHO"` // log every SQL statement
	Keep bool   `mapstructure:"DB_KEEP"` // keep the database file after a full run
}

// LoggerConfig holds configuration for the logger
type LoggerConfig struct {
	Level            string  `mapstructure:"LOG_LEVEL"`
	Format           string  `mapstructure:"LOG_FORMAT"`
	OutputPath       string  `mapstructure:"LOG_OUTPUT_PATH"`
	SlowQuerySeconds float64 `mapstructure:"LOG_SLOW_QUERY_SECONDS"`
}

// Load reads configuration from an app.env file in path (if present) and
// from environment variables, with environment taking precedence.
func Load(path string) (*Config, error) {
	setDefaults()

	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is fine; env vars and defaults cover everything
	}

	var config Config
	config.DB.Path = viper.GetString("DB_PATH")
	config.DB.Echo = viper.GetBool("DB_ECHO")
	config.DB.Keep = viper.GetBool("DB_KEEP")

	config.Logger.Level = viper.GetString("LOG_LEVEL")
	config.Logger.Format = viper.GetString("LOG_FORMAT")
	config.Logger.OutputPath = viper.GetString("LOG_OUTPUT_PATH")
	config.Logger.SlowQuerySeconds = viper.GetFloat64("LOG_SLOW_QUERY_SECONDS")

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("DB_PATH", "sqltour.db")
	viper.SetDefault("DB_ECHO", true)
	viper.SetDefault("DB_KEEP", false)

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "console")
	viper.SetDefault("LOG_OUTPUT_PATH", "stdout")
	viper.SetDefault("LOG_SLOW_QUERY_SECONDS", 0.2)
}
