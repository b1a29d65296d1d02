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
	assert.Equal(t, StoreDriverMemory, cfg.Store.Driver)
	assert.Equal(t, 10, cfg.Inventory.LowStockThreshold)
	assert.Equal(t, "erp:", cfg.Redis.Prefix)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.False(t, cfg.App.SeedDemo)
}

func TestFromViper_Sobrescrituras(t *testing.T) {
	v := viper.New()
	v.Set("STORE_DRIVER", "Redis")
	v.Set("REDIS_DB", "3")
	v.Set("HTTP_PORT", 9090)
	v.Set("SEED_DEMO_DATA", "true")
	v.Set("INVENTORY_LOW_STOCK_THRESHOLD", "25")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, StoreDriverRedis, cfg.Store.Driver)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.App.SeedDemo)
	assert.Equal(t, 25, cfg.Inventory.LowStockThreshold)
}

func TestFromViper_DriverInvalido(t *testing.T) {
	v := viper.New()
	v.Set("STORE_DRIVER", "mysql")

	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "erp", Password: "p@ss:word", DBName: "erp_core", SSLMode: "disable"}
	assert.Equal(t, "postgres://erp:p%40ss%3Aword@db:5432/erp_core?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://u:p@h/x"
	assert.Equal(t, "postgres://u:p@h/x", c.ConnectionString(), "DATABASE_URL tiene prioridad")
}
