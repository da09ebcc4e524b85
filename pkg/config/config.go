package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/saferoom-id/judolguard/pkg/detector"
)

// Config holds global settings for the JudolGuard gateway.
// All settings can be configured via environment variables or programmatically.
type Config struct {
	// === Core Settings ===
	ListenAddr   string // HTTP listen address (default: ":8080")
	PatternsPath string // Optional keyword/blocklist file (JSON, YAML, or newline list)

	// === Detection Settings ===
	SensitivityLevel int    // 1-5; lower flags more aggressively (default: 3)
	Language         string // "en", "id", "zh", "vi", "th", or "all" (default: "all")
	IncludeAnalysis  bool   // Attach the structured analysis record to results

	// === Detector Feature Flags ===
	CheckRepetition  bool
	CheckURLs        bool
	CheckEvasion     bool
	CheckContextual  bool
	CheckContactInfo bool

	// === Result Cache (Redis) ===
	RedisAddr     string        // Empty disables caching
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration // Default: 1 hour

	// === Scan History (Postgres) ===
	PostgresDSN   string // Empty falls back to the in-memory ring
	HistoryMemory int    // Ring size when Postgres is absent (default: 1024)

	// === Batch Processing ===
	BatchWorkers  int // Concurrent classifications per batch request (default: 8)
	MaxBatchSize  int // Largest accepted batch (default: 500)
	MaxTextLength int // Longest accepted text in bytes (default: 16384)
}

// NewDefaultConfig creates a Config with sensible defaults.
// All settings can be overridden via environment variables.
func NewDefaultConfig() *Config {
	return &Config{
		ListenAddr:   GetEnv("JUDOLGUARD_LISTEN_ADDR", ":8080"),
		PatternsPath: GetEnv("JUDOLGUARD_PATTERNS_PATH", ""),

		SensitivityLevel: GetEnvInt("JUDOLGUARD_SENSITIVITY", detector.DefaultSensitivity),
		Language:         GetEnv("JUDOLGUARD_LANGUAGE", "all"),
		IncludeAnalysis:  GetEnvBool("JUDOLGUARD_INCLUDE_ANALYSIS", true),

		CheckRepetition:  GetEnvBool("JUDOLGUARD_CHECK_REPETITION", true),
		CheckURLs:        GetEnvBool("JUDOLGUARD_CHECK_URLS", true),
		CheckEvasion:     GetEnvBool("JUDOLGUARD_CHECK_EVASION", true),
		CheckContextual:  GetEnvBool("JUDOLGUARD_CHECK_CONTEXTUAL", true),
		CheckContactInfo: GetEnvBool("JUDOLGUARD_CHECK_CONTACT", true),

		RedisAddr:     GetEnv("JUDOLGUARD_REDIS_ADDR", ""),
		RedisPassword: GetEnv("JUDOLGUARD_REDIS_PASSWORD", ""),
		RedisDB:       GetEnvInt("JUDOLGUARD_REDIS_DB", 0),
		CacheTTL:      time.Duration(GetEnvInt("JUDOLGUARD_CACHE_TTL_SECONDS", 3600)) * time.Second,

		PostgresDSN:   GetEnv("JUDOLGUARD_POSTGRES_DSN", ""),
		HistoryMemory: clampInt(GetEnvInt("JUDOLGUARD_HISTORY_MEMORY", 1024), 16, 1<<20),

		BatchWorkers:  clampInt(GetEnvInt("JUDOLGUARD_BATCH_WORKERS", 8), 1, 256),
		MaxBatchSize:  clampInt(GetEnvInt("JUDOLGUARD_MAX_BATCH", 500), 1, 10000),
		MaxTextLength: clampInt(GetEnvInt("JUDOLGUARD_MAX_TEXT_BYTES", 16384), 64, 1<<22),
	}
}

// NewHighSensitivityConfig creates a Config that flags aggressively (may have
// more false positives). Moderation queues that get human review use this.
func NewHighSensitivityConfig() *Config {
	cfg := NewDefaultConfig()
	cfg.SensitivityLevel = 1 // Lowest thresholds, highest score ceiling
	return cfg
}

// NewHighPrecisionConfig creates a Config that minimizes false positives for
// fully automated enforcement.
func NewHighPrecisionConfig() *Config {
	cfg := NewDefaultConfig()
	cfg.SensitivityLevel = 5
	cfg.CheckContextual = false // Contextual phrasing alone is too weak at this tier
	return cfg
}

// DetectorOptions translates the config into per-call detector options.
func (c *Config) DetectorOptions() *detector.Options {
	ptr := func(b bool) *bool { return &b }
	return &detector.Options{
		SensitivityLevel: c.SensitivityLevel,
		Language:         c.Language,
		IncludeAnalysis:  ptr(c.IncludeAnalysis),
		CheckRepetition:  ptr(c.CheckRepetition),
		CheckURLs:        ptr(c.CheckURLs),
		CheckEvasion:     ptr(c.CheckEvasion),
		CheckContextual:  ptr(c.CheckContextual),
		CheckContactInfo: ptr(c.CheckContactInfo),
	}
}

// knownLanguages are the codes the pattern sets support.
var knownLanguages = map[string]bool{
	"all": true, "en": true, "id": true, "zh": true, "vi": true, "th": true,
}

// Validate checks that all configuration values are usable. It returns the
// first problem found; warnings for suspicious-but-legal values are logged.
func (c *Config) Validate() error {
	if c.SensitivityLevel < 0 || c.SensitivityLevel > 5 {
		return fmt.Errorf("config: sensitivity level %d out of range [0,5]", c.SensitivityLevel)
	}
	if c.SensitivityLevel == 0 {
		log.Printf("[WARN] sensitivity level 0 caps every checkpoint at zero - nothing will ever be flagged")
	}
	if !knownLanguages[strings.ToLower(c.Language)] {
		return fmt.Errorf("config: unknown language %q", c.Language)
	}
	if c.BatchWorkers < 1 {
		return fmt.Errorf("config: batch workers must be at least 1, got %d", c.BatchWorkers)
	}
	if c.PatternsPath != "" {
		if _, err := os.Stat(c.PatternsPath); err != nil {
			return fmt.Errorf("config: patterns path %s: %w", c.PatternsPath, err)
		}
	}
	if c.RedisAddr == "" && c.CacheTTL != time.Hour {
		log.Printf("[WARN] JUDOLGUARD_CACHE_TTL_SECONDS set but no Redis address configured - cache is disabled")
	}
	return nil
}

// MustValidate calls Validate and exits the process on failure. Intended for
// startup paths where a misconfigured gateway must not come up.
func (c *Config) MustValidate() {
	if err := c.Validate(); err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
}

// clampInt ensures a value is within bounds
func clampInt(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Helper functions for environment variable parsing
// These are exported for use by other packages (e.g., cmd/gateway)

// GetEnv returns the value of an environment variable or a default value.
func GetEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

// GetEnvBool returns the boolean value of an environment variable or a default value.
func GetEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return defaultValue
}

// GetEnvInt returns the integer value of an environment variable or a default value.
func GetEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return defaultValue
}

// GetEnvSlice returns a comma-separated list from an environment variable or a default value.
func GetEnvSlice(key string, defaultValue []string) []string {
	if v := os.Getenv(key); v != "" {
		var parts []string
		for _, p := range strings.Split(v, ",") {
			trimmed := strings.TrimSpace(p)
			if trimmed != "" {
				parts = append(parts, trimmed)
			}
		}
		if len(parts) > 0 {
			return parts
		}
	}
	return defaultValue
}
