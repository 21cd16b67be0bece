package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
)

// Config represents runtime configuration derived from environment variables.
type Config struct {
	Database   DatabaseConfig
	Logging    LoggingConfig
	OpenAI     OpenAIConfig
	Polymarket PolymarketConfig
	Metrics    MetricsConfig
}

// DatabaseConfig holds the Postgres connection settings.
type DatabaseConfig struct {
	URL string
}

// LoggingConfig represents structured logging configuration.
type LoggingConfig struct {
	Level  slog.Level
	Format string
}

// OpenAIConfig holds credentials and model parameters for insight
// generation. APIKey is validated by the insight command, not here, so
// the other batch jobs can run without it.
type OpenAIConfig struct {
	APIKey      string
	Model       string
	Temperature float32
	MaxTokens   int
}

// PolymarketConfig holds the external market-data API settings.
type PolymarketConfig struct {
	DataAPIURL  string
	GammaAPIURL string
	HTTPTimeout time.Duration
}

// MetricsConfig holds the optional Pushgateway target. Empty means
// metrics are computed but not pushed.
type MetricsConfig struct {
	PushgatewayURL string
}

const (
	defaultLogFormat   = "json"
	defaultOpenAIModel = "gpt-4-turbo-preview"
	defaultTemperature = 0.7
	defaultMaxTokens   = 1000
	defaultHTTPTimeout = 30 * time.Second
)

// Load reads configuration from environment variables, applying defaults
// when values are not provided. DATABASE_URL is required; everything else
// has a default or is optional.
func Load() (Config, error) {
	cfg := Config{
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Logging: LoggingConfig{
			Level:  slog.LevelInfo,
			Format: defaultLogFormat,
		},
		OpenAI: OpenAIConfig{
			APIKey:      os.Getenv("OPENAI_API_KEY"),
			Model:       getEnv("OPENAI_MODEL", defaultOpenAIModel),
			Temperature: defaultTemperature,
			MaxTokens:   defaultMaxTokens,
		},
		Polymarket: PolymarketConfig{
			DataAPIURL:  os.Getenv("POLYMARKET_DATA_API_URL"),
			GammaAPIURL: os.Getenv("POLYMARKET_GAMMA_API_URL"),
			HTTPTimeout: defaultHTTPTimeout,
		},
		Metrics: MetricsConfig{
			PushgatewayURL: os.Getenv("PUSHGATEWAY_URL"),
		},
	}

	if cfg.Database.URL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		level, err := parseLogLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
		cfg.Logging.Level = level
	}

	if v := os.Getenv("LOG_FORMAT"); v != "" {
		switch v {
		case "json", "text":
			cfg.Logging.Format = v
		default:
			return Config{}, fmt.Errorf("invalid LOG_FORMAT: must be 'json' or 'text'")
		}
	}

	if v := os.Getenv("OPENAI_TEMPERATURE"); v != "" {
		temp, err := strconv.ParseFloat(v, 32)
		if err != nil || temp < 0 || temp > 2 {
			return Config{}, fmt.Errorf("invalid OPENAI_TEMPERATURE: must be a number in [0, 2]")
		}
		cfg.OpenAI.Temperature = float32(temp)
	}

	if v := os.Getenv("OPENAI_MAX_TOKENS"); v != "" {
		tokens, err := strconv.Atoi(v)
		if err != nil || tokens <= 0 {
			return Config{}, fmt.Errorf("invalid OPENAI_MAX_TOKENS: must be a positive integer")
		}
		cfg.OpenAI.MaxTokens = tokens
	}

	if v := os.Getenv("HTTP_TIMEOUT_SECONDS"); v != "" {
		d, err := parseSeconds(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid HTTP_TIMEOUT_SECONDS: %w", err)
		}
		cfg.Polymarket.HTTPTimeout = d
	}

	return cfg, nil
}

func parseSeconds(raw string) (time.Duration, error) {
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		return 0, fmt.Errorf("must be a positive integer")
	}
	return time.Duration(seconds) * time.Second, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseLogLevel(raw string) (slog.Level, error) {
	switch raw {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("must be one of debug, info, warn, error")
	}
}
