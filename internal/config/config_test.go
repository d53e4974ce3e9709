package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ronginpran/checkout-api/internal/config"
)

func baseEnv() map[string]string {
	return map[string]string{
		"DATABASE_URL":  "postgres://localhost:5432/checkout",
		"REDIS_URL":     "redis://localhost:6379/0",
		"CHARGE_SECRET": "test-secret",
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.LoadForTests(baseEnv())
	require.NoError(t, err)

	require.Equal(t, "development", cfg.AppEnv)
	require.Equal(t, ":8080", cfg.HTTPAddr())
	require.Equal(t, int64(70), cfg.DeliveryDhaka)
	require.Equal(t, int64(130), cfg.DeliveryOutside)
	require.True(t, cfg.EnableQuantity)
	require.False(t, cfg.SuccessRedirect)
	require.Equal(t, 12*time.Hour, cfg.NonceTTL)
	require.Equal(t, 5*time.Minute, cfg.CatalogCacheTTL)
	require.Equal(t, 10, cfg.OrderRateMax)
}

func TestLoadRequiredVars(t *testing.T) {
	for _, missing := range []string{"DATABASE_URL", "REDIS_URL", "CHARGE_SECRET"} {
		env := baseEnv()
		env[missing] = ""
		_, err := config.LoadForTests(env)
		require.Error(t, err, "expected error without %s", missing)
	}
}

func TestLoadOverrides(t *testing.T) {
	env := baseEnv()
	env["PORT"] = "9090"
	env["DELIVERY_CHARGE_DHAKA"] = "80"
	env["DELIVERY_CHARGE_OUTSIDE"] = "150"
	env["WIDGET_ENABLE_QUANTITY"] = "off"
	env["WIDGET_SUCCESS_REDIRECT"] = "on"
	env["STORE_BASE_URL"] = "https://shop.example.com/"
	env["NONCE_TTL"] = "6h"

	cfg, err := config.LoadForTests(env)
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTPAddr())
	require.Equal(t, int64(80), cfg.DeliveryDhaka)
	require.Equal(t, int64(150), cfg.DeliveryOutside)
	require.False(t, cfg.EnableQuantity)
	require.True(t, cfg.SuccessRedirect)
	require.Equal(t, "https://shop.example.com", cfg.StoreBaseURL, "trailing slash trimmed")
	require.Equal(t, 6*time.Hour, cfg.NonceTTL)
}

func TestLoadRejectsNegativeCharges(t *testing.T) {
	env := baseEnv()
	env["DELIVERY_CHARGE_DHAKA"] = "-5"
	_, err := config.LoadForTests(env)
	require.Error(t, err)
}
