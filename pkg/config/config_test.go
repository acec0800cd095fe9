package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "postgres", cfg.App.StoreDriver)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "*", cfg.HTTP.CORSOrigins)
	assert.Equal(t, 10, cfg.DB.MaxConns)
	assert.Equal(t, "Brechó", cfg.App.StoreName)
	assert.Equal(t, "products", cfg.Blob.Bucket)
	assert.Equal(t, "0.5", cfg.Pricing.DefaultCommission.String())
	assert.Equal(t, "2", cfg.Pricing.TradeInMultiplier.String())
}

func TestFromViper_Sobrescribe(t *testing.T) {
	v := viper.New()
	v.Set("HTTP_PORT", "9090")
	v.Set("STORE_DRIVER", "MEMORY")
	v.Set("VENDOR_DEFAULT_COMMISSION", "0.4")
	v.Set("SUPABASE_URL", "https://x.supabase.co/")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "memory", cfg.App.StoreDriver)
	assert.Equal(t, "0.4", cfg.Pricing.DefaultCommission.String())
	assert.Equal(t, "https://x.supabase.co", cfg.Blob.SupabaseURL)
}

func TestFromViper_DecimalInvalido(t *testing.T) {
	v := viper.New()
	v.Set("TRADEIN_PRICE_MULTIPLIER", "dos")

	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss", DBName: "brecho", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss@db:5432/brecho?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}
