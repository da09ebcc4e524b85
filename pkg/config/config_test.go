package config

import (
	"testing"
	"time"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, want :8080", cfg.ListenAddr)
	}
	if cfg.SensitivityLevel != 3 {
		t.Errorf("SensitivityLevel = %d, want 3", cfg.SensitivityLevel)
	}
	if cfg.Language != "all" {
		t.Errorf("Language = %q, want all", cfg.Language)
	}
	if cfg.CacheTTL != time.Hour {
		t.Errorf("CacheTTL = %v, want 1h", cfg.CacheTTL)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("JUDOLGUARD_SENSITIVITY", "5")
	t.Setenv("JUDOLGUARD_LANGUAGE", "id")
	t.Setenv("JUDOLGUARD_CHECK_URLS", "false")
	t.Setenv("JUDOLGUARD_BATCH_WORKERS", "9000")

	cfg := NewDefaultConfig()
	if cfg.SensitivityLevel != 5 {
		t.Errorf("SensitivityLevel = %d, want 5", cfg.SensitivityLevel)
	}
	if cfg.Language != "id" {
		t.Errorf("Language = %q, want id", cfg.Language)
	}
	if cfg.CheckURLs {
		t.Error("CheckURLs should be disabled via env")
	}
	if cfg.BatchWorkers != 256 {
		t.Errorf("BatchWorkers should clamp to 256, got %d", cfg.BatchWorkers)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.SensitivityLevel = 7
	if err := cfg.Validate(); err == nil {
		t.Error("out-of-range sensitivity should fail validation")
	}

	cfg = NewDefaultConfig()
	cfg.Language = "klingon"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown language should fail validation")
	}

	cfg = NewDefaultConfig()
	cfg.PatternsPath = "/nonexistent/patterns.yaml"
	if err := cfg.Validate(); err == nil {
		t.Error("missing patterns file should fail validation")
	}
}

func TestPresets(t *testing.T) {
	if got := NewHighSensitivityConfig().SensitivityLevel; got != 1 {
		t.Errorf("high sensitivity level = %d, want 1", got)
	}
	precision := NewHighPrecisionConfig()
	if precision.SensitivityLevel != 5 {
		t.Errorf("high precision level = %d, want 5", precision.SensitivityLevel)
	}
	if precision.CheckContextual {
		t.Error("high precision preset should disable contextual checks")
	}
}

func TestDetectorOptions(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.CheckEvasion = false
	opts := cfg.DetectorOptions()
	if opts.CheckEvasion == nil || *opts.CheckEvasion {
		t.Error("toggle should map to an explicit pointer value")
	}
	if opts.SensitivityLevel != cfg.SensitivityLevel {
		t.Errorf("sensitivity = %d, want %d", opts.SensitivityLevel, cfg.SensitivityLevel)
	}
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("JUDOLGUARD_TEST_STR", "value")
	t.Setenv("JUDOLGUARD_TEST_INT", "not-a-number")
	t.Setenv("JUDOLGUARD_TEST_SLICE", "a, b , ,c")

	if got := GetEnv("JUDOLGUARD_TEST_STR", "fallback"); got != "value" {
		t.Errorf("GetEnv = %q", got)
	}
	if got := GetEnv("JUDOLGUARD_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("GetEnv fallback = %q", got)
	}
	if got := GetEnvInt("JUDOLGUARD_TEST_INT", 7); got != 7 {
		t.Errorf("unparsable int should fall back, got %d", got)
	}
	got := GetEnvSlice("JUDOLGUARD_TEST_SLICE", nil)
	if len(got) != 3 || got[2] != "c" {
		t.Errorf("GetEnvSlice = %v, want [a b c]", got)
	}
}
