package config

import (
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

// Config holds the configuration for the key normalization service
type Config struct {
	Server     ServerConfig
	Log        LogConfig
	Parser     ParserConfig
	Normalizer NormalizerConfig
}

// ServerConfig holds HTTP listener configuration
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

// ParserConfig holds key parser configuration
type ParserConfig struct {
	StrictSuffix bool
}

// NormalizerConfig holds batch normalization limits
type NormalizerConfig struct {
	BatchConcurrency int
	MaxBatchSize     int
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         GetStringEnv("NOUNKEY_HTTP_ADDR", ":8080"),
			ReadTimeout:  GetDurationEnv("NOUNKEY_READ_TIMEOUT", 5*time.Second),
			WriteTimeout: GetDurationEnv("NOUNKEY_WRITE_TIMEOUT", 10*time.Second),
		},
		Log: LogConfig{
			Level:  GetStringEnv("NOUNKEY_LOG_LEVEL", "info"),
			Format: GetStringEnv("NOUNKEY_LOG_FORMAT", "text"),
		},
		Parser: ParserConfig{
			StrictSuffix: GetBoolEnv("NOUNKEY_STRICT_SUFFIX", false),
		},
		Normalizer: NormalizerConfig{
			BatchConcurrency: GetIntEnv("NOUNKEY_BATCH_CONCURRENCY", 4),
			MaxBatchSize:     GetIntEnv("NOUNKEY_MAX_BATCH_SIZE", 1000),
		},
	}
}

// NewLogger builds a logger from the log configuration. Unknown levels fall
// back to info.
func (c LogConfig) NewLogger() *logrus.Logger {
	logger := logrus.New()
	if c.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(c.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

func GetStringEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func GetBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func GetDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
