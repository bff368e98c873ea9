package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Inventory.LowStockThreshold)
	assert.Equal(t, 256, cfg.Notify.QueueSize)
	assert.Equal(t, 5*time.Second, cfg.Notify.Timeout())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.False(t, cfg.DB.Enabled(), "sin DATABASE_URL ni DB_HOST no hay bitácora en BD")
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("LOW_STOCK_THRESHOLD", 5)
	v.Set("DB_HOST", "db")
	v.Set("DB_PASSWORD", "p@ss/word")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Inventory.LowStockThreshold)
	assert.True(t, cfg.DB.Enabled())
	assert.Equal(t, "postgres://postgres:p%40ss%2Fword@db:5432/supply_tracker?sslmode=disable", cfg.DB.ConnectionString())
}

func TestFromViper_Invalidos(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("LOW_STOCK_THRESHOLD", -1)
	_, err := fromViper(v)
	assert.Error(t, err)

	v = viper.New()
	setDefaults(v)
	v.Set("NOTIFY_QUEUE_SIZE", 0)
	_, err = fromViper(v)
	assert.Error(t, err)
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("JWT_SECRET", "s3cr3t")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "s3cr3t", cfg.JWT.Secret)
}
