package config

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(discardLogger())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "file://migrations", cfg.MigrationsPath)
	assert.Equal(t, time.Hour, cfg.JWTExpiryDuration)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, []string{"EUR"}, cfg.Codes())
	assert.Equal(t, "EUR", cfg.CurrencyDefault)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_EXPIRY_DURATION", "15m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("MONEY_CURRENCY_CHOICES", "EUR,USD,CNY")
	t.Setenv("MONEY_CURRENCY_DEFAULT", "USD")

	cfg, err := LoadConfig(discardLogger())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.JWTExpiryDuration)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, []string{"EUR", "USD", "CNY"}, cfg.Codes())
	assert.Equal(t, "USD", cfg.CurrencyDefault)
}

func TestLoadConfig_InvalidDuration(t *testing.T) {
	t.Setenv("JWT_EXPIRY_DURATION", "soon")

	cfg, err := LoadConfig(discardLogger())
	require.NoError(t, err)
	assert.Equal(t, time.Hour, cfg.JWTExpiryDuration)
}

func TestLoadConfig_ProductionNeedsSecret(t *testing.T) {
	t.Setenv("IS_PRODUCTION", "true")

	_, err := LoadConfig(discardLogger())
	assert.Error(t, err)
}

func TestLoadConfig_InvalidMoneySettings(t *testing.T) {
	t.Setenv("MONEY_CURRENCY_CHOICES", "USD")

	_, err := LoadConfig(discardLogger())
	assert.ErrorContains(t, err, "money settings")
}
