package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	setCoreEnvEmpty(t)
	t.Setenv("APP_BIND_ADDR", ":9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.BindAddr != ":9090" {
		t.Fatalf("BindAddr = %q, want :9090", cfg.BindAddr)
	}
	if cfg.RecentTurns != 5 || cfg.RelevantTurns != 5 || cfg.MaxContextTurns != 8 {
		t.Fatalf("retrieval bounds = %d/%d/%d, want 5/5/8",
			cfg.RecentTurns, cfg.RelevantTurns, cfg.MaxContextTurns)
	}
	if cfg.MaxHistory != 50 {
		t.Fatalf("MaxHistory = %d, want 50", cfg.MaxHistory)
	}
	if cfg.RetainOldest != 5 {
		t.Fatalf("RetainOldest = %d, want 5", cfg.RetainOldest)
	}
	if cfg.TrendingCapacity != 25 {
		t.Fatalf("TrendingCapacity = %d, want 25", cfg.TrendingCapacity)
	}
	if cfg.TrendingSampleRate != 0.15 {
		t.Fatalf("TrendingSampleRate = %v, want 0.15", cfg.TrendingSampleRate)
	}
	if cfg.Personality == "" {
		t.Fatalf("Personality default should not be empty")
	}
}

func TestLoadExplicitOverrides(t *testing.T) {
	setCoreEnvEmpty(t)
	t.Setenv("APP_RECENT_TURNS", "3")
	t.Setenv("APP_MAX_CONTEXT_TURNS", "6")
	t.Setenv("APP_TRENDING_SAMPLE_RATE", "0.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.RecentTurns != 3 || cfg.MaxContextTurns != 6 {
		t.Fatalf("overrides not applied: %d/%d", cfg.RecentTurns, cfg.MaxContextTurns)
	}
	if cfg.TrendingSampleRate != 0.5 {
		t.Fatalf("TrendingSampleRate = %v, want 0.5", cfg.TrendingSampleRate)
	}
}

func TestLoadRejectsBadBounds(t *testing.T) {
	setCoreEnvEmpty(t)
	t.Setenv("APP_MAX_CONTEXT_TURNS", "2") // below APP_RECENT_TURNS default

	if _, err := Load(); err == nil {
		t.Fatalf("Load() should reject MaxContextTurns < RecentTurns")
	}
}

// The retention prefix is its own knob; shrinking the retrieval recency
// window must not move it.
func TestLoadRetainOldestIndependentOfRecentTurns(t *testing.T) {
	setCoreEnvEmpty(t)
	t.Setenv("APP_RECENT_TURNS", "2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.RetainOldest != 5 {
		t.Fatalf("RetainOldest = %d, want 5 regardless of APP_RECENT_TURNS", cfg.RetainOldest)
	}
}

func TestLoadRejectsRetainOldestOverMaxHistory(t *testing.T) {
	setCoreEnvEmpty(t)
	t.Setenv("APP_RETAIN_OLDEST", "60")

	if _, err := Load(); err == nil {
		t.Fatalf("Load() should reject RetainOldest above MaxHistory")
	}
}

func TestLoadRejectsBadSampleRate(t *testing.T) {
	setCoreEnvEmpty(t)
	t.Setenv("APP_TRENDING_SAMPLE_RATE", "1.5")

	if _, err := Load(); err == nil {
		t.Fatalf("Load() should reject sample rate outside [0, 1]")
	}
}

func setCoreEnvEmpty(t *testing.T) {
	t.Helper()
	keys := []string{
		"APP_BIND_ADDR",
		"APP_SHUTDOWN_TIMEOUT",
		"APP_METRICS_NAMESPACE",
		"APP_ALLOW_ANY_ORIGIN",
		"APP_PERSONALITY",
		"APP_RECENT_TURNS",
		"APP_RELEVANT_TURNS",
		"APP_MAX_CONTEXT_TURNS",
		"APP_MAX_HISTORY",
		"APP_RETAIN_OLDEST",
		"APP_TRENDING_CAPACITY",
		"APP_TRENDING_SAMPLE_RATE",
		"APP_REDACT_PII",
		"DATABASE_URL",
		"REDIS_URL",
		"OPENAI_API_KEY",
		"OPENAI_MODEL",
	}
	for _, key := range keys {
		t.Setenv(key, "")
	}
}
