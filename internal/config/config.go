package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment      string
	AppName          string
	Port             string
	LogLevel         slog.Level
	UpstreamBaseURL  string
	UpstreamTimeout  time.Duration
	SiteProfilePath  string
	CORSAllowOrigins string
}

const defaultUpstreamTimeoutSeconds = 10

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Environment:      getEnv("APP_ENV", "development"),
		AppName:          getEnv("APP_NAME", "animexin-api"),
		Port:             getEnv("PORT", getEnv("APP_PORT", "8080")),
		UpstreamBaseURL:  strings.TrimRight(strings.TrimSpace(getEnv("UPSTREAM_BASE_URL", "")), "/"),
		SiteProfilePath:  strings.TrimSpace(getEnv("SITE_PROFILE_PATH", "")),
		CORSAllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
	}

	timeoutSeconds := getEnvAsInt("UPSTREAM_TIMEOUT_SECONDS", defaultUpstreamTimeoutSeconds)
	if timeoutSeconds <= 0 {
		timeoutSeconds = defaultUpstreamTimeoutSeconds
	}
	cfg.UpstreamTimeout = time.Duration(timeoutSeconds) * time.Second

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "INFO"))
	if err != nil {
		return Config{}, err
	}
	cfg.LogLevel = level

	return cfg, nil
}

func parseLogLevel(raw string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO":
		return slog.LevelInfo, nil
	case "WARN":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q, expected DEBUG|INFO|WARN|ERROR", raw)
	}
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvAsInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
