package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults for configuration values.
const (
	DefaultPort            = "8080"
	DefaultDBPath          = "data/bets.db"
	DefaultStake           = 100.0
	DefaultEVThreshold     = 0.03
	DefaultKellyFraction   = 0.25
	DefaultBankroll        = 1000.0
	DefaultRateLimitRPS    = 10.0
	DefaultRateLimitBurst  = 20
	DefaultAlertCooldown   = 5 * time.Minute
	DefaultCleanupInterval = 10 * time.Minute
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
)

// Config holds all application configuration.
type Config struct {
	Port          string
	RosterPath    string // empty = embedded roster
	DBPath        string // empty = bet tracking disabled
	DefaultStake  float64
	EVThreshold   float64
	KellyFraction float64
	Bankroll      float64 // Kelly stakes are sized on this
	MaxBet        float64 // 0 = no cap
	MaxOddsAgeSec int     // 0 = never treat quotes as stale

	PredictorURL    string // empty = live matchups disabled
	PredictorAPIKey string

	RateLimitRPS   float64 // 0 = unlimited
	RateLimitBurst int

	AlertCooldown   time.Duration
	CleanupInterval time.Duration

	LogLevel  string
	LogFormat string // "text" or "json"
}

// Load reads configuration from environment variables (and .env file if present).
func Load() Config {
	_ = godotenv.Load() // Ignore error if .env doesn't exist

	cfg := Config{
		Port:            DefaultPort,
		RosterPath:      os.Getenv("ROSTER_PATH"),
		PredictorURL:    strings.TrimSpace(os.Getenv("PREDICTOR_URL")),
		PredictorAPIKey: os.Getenv("PREDICTOR_API_KEY"),
		DBPath:          DefaultDBPath,
		DefaultStake:    DefaultStake,
		EVThreshold:     DefaultEVThreshold,
		KellyFraction:   DefaultKellyFraction,
		Bankroll:        DefaultBankroll,
		RateLimitRPS:    DefaultRateLimitRPS,
		RateLimitBurst:  DefaultRateLimitBurst,
		AlertCooldown:   DefaultAlertCooldown,
		CleanupInterval: DefaultCleanupInterval,
		LogLevel:        DefaultLogLevel,
		LogFormat:       DefaultLogFormat,
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}

	// set-but-empty disables storage
	if v, ok := os.LookupEnv("DB_PATH"); ok {
		cfg.DBPath = strings.TrimSpace(v)
	}

	if v := os.Getenv("DEFAULT_STAKE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.DefaultStake = f
		}
	}

	if v := os.Getenv("EV_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.EVThreshold = f
		}
	}

	if v := os.Getenv("KELLY_FRACTION"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.KellyFraction = f
		}
	}

	if v := os.Getenv("BANKROLL"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Bankroll = f
		}
	}

	if v := os.Getenv("MAX_BET"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.MaxBet = f
		}
	}

	if v := os.Getenv("MAX_ODDS_AGE_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxOddsAgeSec = n
		}
	}

	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.RateLimitRPS = f
		}
	}

	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RateLimitBurst = n
		}
	}

	if v := os.Getenv("ALERT_COOLDOWN_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.AlertCooldown = time.Duration(n) * time.Second
		}
	}

	if v := os.Getenv("CLEANUP_INTERVAL_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.CleanupInterval = time.Duration(n) * time.Second
		}
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}

	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}

	return cfg
}

// Validate checks that configuration values are within acceptable ranges.
func Validate(cfg Config) error {
	if cfg.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if !(cfg.DefaultStake > 0) {
		return fmt.Errorf("DEFAULT_STAKE must be positive, got %f", cfg.DefaultStake)
	}
	if cfg.EVThreshold < 0 || cfg.EVThreshold > 1 {
		return fmt.Errorf("EV_THRESHOLD must be between 0 and 1, got %f", cfg.EVThreshold)
	}
	if cfg.KellyFraction <= 0 || cfg.KellyFraction > 1 {
		return fmt.Errorf("KELLY_FRACTION must be between 0 and 1, got %f", cfg.KellyFraction)
	}
	if cfg.Bankroll < 0 {
		return fmt.Errorf("BANKROLL must be non-negative, got %f", cfg.Bankroll)
	}
	if cfg.MaxBet < 0 {
		return fmt.Errorf("MAX_BET must be non-negative, got %f", cfg.MaxBet)
	}
	if cfg.MaxOddsAgeSec < 0 {
		return fmt.Errorf("MAX_ODDS_AGE_SEC must be non-negative, got %d", cfg.MaxOddsAgeSec)
	}
	if cfg.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be non-negative, got %f", cfg.RateLimitRPS)
	}
	if cfg.RateLimitRPS > 0 && cfg.RateLimitBurst < 1 {
		return fmt.Errorf("RATE_LIMIT_BURST must be at least 1 when rate limiting, got %d", cfg.RateLimitBurst)
	}
	if cfg.AlertCooldown < 0 {
		return fmt.Errorf("ALERT_COOLDOWN_SEC must be non-negative, got %v", cfg.AlertCooldown)
	}
	if cfg.CleanupInterval < time.Second {
		return fmt.Errorf("CLEANUP_INTERVAL_SEC must be at least 1s, got %v", cfg.CleanupInterval)
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}
	return nil
}

// FormatStorage returns a human-readable string for the bet storage setting.
func FormatStorage(dbPath string) string {
	if dbPath == "" {
		return "disabled"
	}
	return dbPath
}
