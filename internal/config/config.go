package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Analysis  Analysis  `mapstructure:"analysis"`
	Dashboard Dashboard `mapstructure:"dashboard"`
	Logger    Logger    `mapstructure:"logger"`
	Server    Server    `mapstructure:"server"`
	Database  Database  `mapstructure:"database"`
}

// Analysis holds the configuration for the external analysis server.
type Analysis struct {
	BaseURL        string  `mapstructure:"base_url"`
	RateLimit      float64 `mapstructure:"rate_limit"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
}

// Server holds the configuration for the web server.
type Server struct {
	Port int `mapstructure:"port"`
}

// Database holds the configuration for the trade store.
// The default DSN keeps everything in memory; nothing survives a restart.
type Database struct {
	DSN string `mapstructure:"dsn"`
}

// Dashboard holds the view defaults for the dashboard.
type Dashboard struct {
	PageSizes             []int  `mapstructure:"page_sizes"`
	DefaultPageSize       int    `mapstructure:"default_page_size"`
	DefaultThresholdHours int    `mapstructure:"default_threshold_hours"`
	DayTradeLabel         string `mapstructure:"day_trade_label"`
	SwingTradeLabel       string `mapstructure:"swing_trade_label"`
}

// Logger holds the configuration for the logger.
type Logger struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config") // name of config file (without extension)
	viper.SetConfigType("yml")    // or yaml, json

	// Allow environment variables to override config file
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("analysis.rate_limit", 1) // uploads per second
	viper.SetDefault("analysis.rate_limit_burst", 1)
	viper.SetDefault("database.dsn", "file::memory:?cache=shared")
	viper.SetDefault("dashboard.page_sizes", []int{10, 25, 50, 100})
	viper.SetDefault("dashboard.default_page_size", 10)
	viper.SetDefault("dashboard.default_threshold_hours", 24)
	viper.SetDefault("dashboard.day_trade_label", "day")
	viper.SetDefault("dashboard.swing_trade_label", "swing")

	err = viper.ReadInConfig()
	if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	return
}
