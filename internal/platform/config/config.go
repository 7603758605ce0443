package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/cash_ledger/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool
	JWTSecret    string
	JWTIssuer    string

	// Notifications; an empty RedisAddr logs notifications instead of queueing them.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	NotifyQueue   string

	// Business calendar
	BusinessDay         time.Time // zero means today's UTC date
	SelfBankRef         string
	WithdrawEventOffset int
	WithdrawValueOffset int

	BatchCron          string // empty disables the scheduler
	RateLimit          string
	CORSAllowedOrigins []string

	// InitialBalances seeds cash balances at startup, keyed "account:currency".
	InitialBalances map[string]decimal.Decimal
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	v.SetDefault("JWT_ISSUER", "cash-ledger")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("NOTIFY_QUEUE", "cash_ledger:notifications")
	v.SetDefault("BUSINESS_DAY", "")
	v.SetDefault("SELF_BANK_REF", "SELF-001")
	v.SetDefault("WITHDRAW_EVENT_OFFSET", 1)
	v.SetDefault("WITHDRAW_VALUE_OFFSET", 3)
	v.SetDefault("BATCH_CRON", "")
	v.SetDefault("RATE_LIMIT", "20-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("INITIAL_BALANCES", "")
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabaseURL:         v.GetString("PGSQL_URL"),
		Port:                v.GetString("PORT"),
		IsProduction:        v.GetBool("IS_PRODUCTION"),
		JWTSecret:           v.GetString("JWT_SECRET"),
		JWTIssuer:           v.GetString("JWT_ISSUER"),
		RedisAddr:           v.GetString("REDIS_ADDR"),
		RedisPassword:       v.GetString("REDIS_PASSWORD"),
		RedisDB:             v.GetInt("REDIS_DB"),
		NotifyQueue:         v.GetString("NOTIFY_QUEUE"),
		SelfBankRef:         v.GetString("SELF_BANK_REF"),
		WithdrawEventOffset: v.GetInt("WITHDRAW_EVENT_OFFSET"),
		WithdrawValueOffset: v.GetInt("WITHDRAW_VALUE_OFFSET"),
		BatchCron:           v.GetString("BATCH_CRON"),
		RateLimit:           v.GetString("RATE_LIMIT"),
	}

	if cfg.DatabaseURL == "" {
		slog.Warn("PGSQL_URL not set; using the in-memory store")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	if day := v.GetString("BUSINESS_DAY"); day != "" {
		parsed, err := domain.ParseDay(day)
		if err != nil {
			return nil, fmt.Errorf("invalid BUSINESS_DAY %q: %w", day, err)
		}
		cfg.BusinessDay = parsed
	}

	if cfg.WithdrawEventOffset < 0 || cfg.WithdrawValueOffset < cfg.WithdrawEventOffset {
		return nil, fmt.Errorf("invalid withdrawal offsets: event %d, value %d", cfg.WithdrawEventOffset, cfg.WithdrawValueOffset)
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	balances, err := parseBalances(v.GetString("INITIAL_BALANCES"))
	if err != nil {
		return nil, err
	}
	cfg.InitialBalances = balances

	return cfg, nil
}

// parseBalances reads "acc:CUR=100.00,acc2:CUR=5".
func parseBalances(raw string) (map[string]decimal.Decimal, error) {
	out := map[string]decimal.Decimal{}
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		key, amount, ok := strings.Cut(entry, "=")
		if !ok || !strings.Contains(key, ":") {
			return nil, fmt.Errorf("invalid INITIAL_BALANCES entry %q", entry)
		}
		d, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("invalid INITIAL_BALANCES amount %q: %w", amount, err)
		}
		out[key] = d
	}
	return out, nil
}
