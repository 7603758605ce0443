package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(values map[string]any) *viper.Viper {
	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("WITHDRAW_EVENT_OFFSET", 1)
	v.SetDefault("WITHDRAW_VALUE_OFFSET", 3)
	v.SetDefault("RATE_LIMIT", "20-M")
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(newViper(nil))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 1, cfg.WithdrawEventOffset)
	assert.Equal(t, 3, cfg.WithdrawValueOffset)
	assert.True(t, cfg.BusinessDay.IsZero())
	assert.Empty(t, cfg.CORSAllowedOrigins)
	assert.Empty(t, cfg.InitialBalances)
}

func TestFromViper_ParsesValues(t *testing.T) {
	cfg, err := fromViper(newViper(map[string]any{
		"BUSINESS_DAY":         "2024-04-01",
		"CORS_ALLOWED_ORIGINS": "http://a.test, http://b.test",
		"INITIAL_BALANCES":     "acc-1:USD=100.50, acc-2:JPY=7",
		"REDIS_ADDR":           "localhost:6379",
	}))
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), cfg.BusinessDay)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.True(t, decimal.RequireFromString("100.50").Equal(cfg.InitialBalances["acc-1:USD"]))
	assert.True(t, decimal.NewFromInt(7).Equal(cfg.InitialBalances["acc-2:JPY"]))
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}

func TestFromViper_Errors(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]any
	}{
		{"bad business day", map[string]any{"BUSINESS_DAY": "01/04/2024"}},
		{"value before event", map[string]any{"WITHDRAW_EVENT_OFFSET": 3, "WITHDRAW_VALUE_OFFSET": 1}},
		{"bad balance entry", map[string]any{"INITIAL_BALANCES": "acc-1=5"}},
		{"bad balance amount", map[string]any{"INITIAL_BALANCES": "acc-1:USD=abc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fromViper(newViper(tt.values))
			assert.Error(t, err)
		})
	}
}
