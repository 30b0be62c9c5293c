package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config contains all runtime settings for the companion chat service.
type Config struct {
	BindAddr         string
	ShutdownTimeout  time.Duration
	MetricsNamespace string

	AllowAnyOrigin bool

	DatabaseURL string
	RedisURL    string

	OpenAIAPIKey string
	OpenAIModel  string

	// Personality is the externally configured bot persona; the memory
	// engine reads it, never writes it.
	Personality string

	// Context retrieval bounds.
	RecentTurns     int
	RelevantTurns   int
	MaxContextTurns int

	// Retention. RetainOldest turns survive trimming as founding
	// context, independent of the retrieval recency window.
	MaxHistory   int
	RetainOldest int

	// Global trending window.
	TrendingCapacity   int
	TrendingSampleRate float64

	// RedactPII masks emails, phone and card numbers before turns are
	// persisted.
	RedactPII bool
}

// Load reads environment variables and applies safe defaults.
func Load() (Config, error) {
	cfg := Config{
		BindAddr:           envOrDefault("APP_BIND_ADDR", ":8080"),
		MetricsNamespace:   envOrDefault("APP_METRICS_NAMESPACE", "amara"),
		AllowAnyOrigin:     false,
		DatabaseURL:        stringsTrimSpace("DATABASE_URL"),
		RedisURL:           stringsTrimSpace("REDIS_URL"),
		OpenAIAPIKey:       stringsTrimSpace("OPENAI_API_KEY"),
		OpenAIModel:        envOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		Personality:        envOrDefault("APP_PERSONALITY", "a warm, attentive companion who remembers the small things"),
		RecentTurns:        5,
		RelevantTurns:      5,
		MaxContextTurns:    8,
		MaxHistory:         50,
		RetainOldest:       5,
		TrendingCapacity:   25,
		TrendingSampleRate: 0.15,
		RedactPII:          true,
		ShutdownTimeout:    15 * time.Second,
	}

	var err error
	cfg.ShutdownTimeout, err = durationFromEnv("APP_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.AllowAnyOrigin, err = boolFromEnv("APP_ALLOW_ANY_ORIGIN", cfg.AllowAnyOrigin)
	if err != nil {
		return Config{}, err
	}
	cfg.RecentTurns, err = intFromEnv("APP_RECENT_TURNS", cfg.RecentTurns)
	if err != nil {
		return Config{}, err
	}
	cfg.RelevantTurns, err = intFromEnv("APP_RELEVANT_TURNS", cfg.RelevantTurns)
	if err != nil {
		return Config{}, err
	}
	cfg.MaxContextTurns, err = intFromEnv("APP_MAX_CONTEXT_TURNS", cfg.MaxContextTurns)
	if err != nil {
		return Config{}, err
	}
	cfg.MaxHistory, err = intFromEnv("APP_MAX_HISTORY", cfg.MaxHistory)
	if err != nil {
		return Config{}, err
	}
	cfg.RetainOldest, err = intFromEnv("APP_RETAIN_OLDEST", cfg.RetainOldest)
	if err != nil {
		return Config{}, err
	}
	cfg.TrendingCapacity, err = intFromEnv("APP_TRENDING_CAPACITY", cfg.TrendingCapacity)
	if err != nil {
		return Config{}, err
	}
	cfg.TrendingSampleRate, err = floatFromEnv("APP_TRENDING_SAMPLE_RATE", cfg.TrendingSampleRate)
	if err != nil {
		return Config{}, err
	}
	cfg.RedactPII, err = boolFromEnv("APP_REDACT_PII", cfg.RedactPII)
	if err != nil {
		return Config{}, err
	}

	if cfg.RecentTurns <= 0 {
		return Config{}, fmt.Errorf("APP_RECENT_TURNS must be positive")
	}
	if cfg.RelevantTurns < 0 {
		return Config{}, fmt.Errorf("APP_RELEVANT_TURNS must be >= 0")
	}
	if cfg.MaxContextTurns < cfg.RecentTurns {
		return Config{}, fmt.Errorf("APP_MAX_CONTEXT_TURNS must be at least APP_RECENT_TURNS")
	}
	if cfg.MaxHistory < 10 {
		return Config{}, fmt.Errorf("APP_MAX_HISTORY must be at least 10")
	}
	if cfg.RetainOldest < 0 || cfg.RetainOldest > cfg.MaxHistory {
		return Config{}, fmt.Errorf("APP_RETAIN_OLDEST must be in [0, APP_MAX_HISTORY]")
	}
	if cfg.TrendingCapacity <= 0 {
		return Config{}, fmt.Errorf("APP_TRENDING_CAPACITY must be positive")
	}
	if cfg.TrendingSampleRate < 0 || cfg.TrendingSampleRate > 1 {
		return Config{}, fmt.Errorf("APP_TRENDING_SAMPLE_RATE must be in [0, 1]")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func stringsTrimSpace(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func durationFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := stringsTrimSpace(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return d, nil
}

func intFromEnv(key string, fallback int) (int, error) {
	v := stringsTrimSpace(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return n, nil
}

func floatFromEnv(key string, fallback float64) (float64, error) {
	v := stringsTrimSpace(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return f, nil
}

func boolFromEnv(key string, fallback bool) (bool, error) {
	v := strings.ToLower(stringsTrimSpace(key))
	if v == "" {
		return fallback, nil
	}
	switch v {
	case "1", "true", "t", "yes", "y", "on":
		return true, nil
	case "0", "false", "f", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("%s parse error: expected bool", key)
	}
}
