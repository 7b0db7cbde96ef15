package config

import (
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

const (
	BaseURL          string = "base_url"
	ContextBrokerURL string = "context_broker_url"
	LogLevel         string = "log_level"
	LogFormat        string = "log_format"
)

const DefaultBaseURL string = "http://api.openweathermap.org/data/2.5"

type Config struct {
	BaseURL          string
	ContextBrokerURL string
	LogLevel         slog.Level
	LogFormat        string
}

// PublishingEnabled reports whether observations should be pushed to a context broker.
func (c Config) PublishingEnabled() bool {
	return c.ContextBrokerURL != ""
}

// Load reads settings from the process environment.
func Load() Config {
	v := viper.New()

	v.SetDefault(BaseURL, DefaultBaseURL)
	v.SetDefault(LogLevel, "warn")
	v.SetDefault(LogFormat, "text")

	_ = v.BindEnv(BaseURL, "OWM_BASE_URL")
	_ = v.BindEnv(ContextBrokerURL, "CONTEXT_BROKER_URL")
	_ = v.BindEnv(LogLevel, "LOG_LEVEL")
	_ = v.BindEnv(LogFormat, "LOG_FORMAT")

	return Config{
		BaseURL:          v.GetString(BaseURL),
		ContextBrokerURL: v.GetString(ContextBrokerURL),
		LogLevel:         parseLevel(v.GetString(LogLevel)),
		LogFormat:        strings.ToLower(v.GetString(LogFormat)),
	}
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelWarn
	}
	return l
}
