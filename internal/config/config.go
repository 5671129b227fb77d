package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds every recognized option, resolved once at process start and
// passed into component constructors. Components never read the environment
// themselves.
type Config struct {
	// LLM
	LLMProvider      string // "openai" or "anthropic"
	LLMModel         string // provider default when empty
	OpenAIKey        string
	AnthropicKey     string
	AIMaxTokens      int
	AIDedupEnabled   bool
	AISummaryEnabled bool

	// GitHub (README API + backup upload)
	GitHubToken     string
	GitHubRepoOwner string
	GitHubRepoName  string

	// HTTP
	RequestTimeout time.Duration
	RetryTimes     int

	// Storage and site output
	DataDir           string
	SiteDir           string
	DataRetentionDays int

	// Scheduler
	ScheduleHour     int
	ScheduleMinute   int
	ScheduleTimezone string

	// Mirrors and API
	DatabaseURL string
	RedisURL    string
	FrontendURL string
	Port        string
}

// Load builds a Config from the environment, applying defaults for anything
// unset. Call godotenv.Load before this in main.
func Load() Config {
	return Config{
		LLMProvider:      envStr("LLM_PROVIDER", "openai"),
		LLMModel:         os.Getenv("LLM_MODEL"),
		OpenAIKey:        os.Getenv("OPENAI_API_KEY"),
		AnthropicKey:     os.Getenv("ANTHROPIC_API_KEY"),
		AIMaxTokens:      envInt("AI_MAX_TOKENS", 4000),
		AIDedupEnabled:   envBool("AI_DEDUP_ENABLED", true),
		AISummaryEnabled: envBool("AI_SUMMARY_ENABLED", true),

		GitHubToken:     os.Getenv("GITHUB_TOKEN"),
		GitHubRepoOwner: os.Getenv("GITHUB_REPO_OWNER"),
		GitHubRepoName:  os.Getenv("GITHUB_REPO_NAME"),

		RequestTimeout: time.Duration(envInt("REQUEST_TIMEOUT_SECONDS", 30)) * time.Second,
		RetryTimes:     envInt("REQUEST_RETRY_TIMES", 3),

		DataDir:           envStr("DATA_DIR", "data"),
		SiteDir:           envStr("SITE_DIR", "dist"),
		DataRetentionDays: envInt("DATA_RETENTION_DAYS", 30),

		ScheduleHour:     envInt("SCHEDULE_HOUR", 6),
		ScheduleMinute:   envInt("SCHEDULE_MINUTE", 0),
		ScheduleTimezone: envStr("SCHEDULE_TIMEZONE", "Asia/Shanghai"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		FrontendURL: os.Getenv("FRONTEND_URL"),
		Port:        envStr("PORT", "8080"),
	}
}

// LLMKey returns the API key for the configured provider.
func (c Config) LLMKey() string {
	if c.LLMProvider == "anthropic" {
		return c.AnthropicKey
	}
	return c.OpenAIKey
}

// AIEnabled reports whether any LLM stage can run at all.
func (c Config) AIEnabled() bool {
	return c.LLMKey() != ""
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
