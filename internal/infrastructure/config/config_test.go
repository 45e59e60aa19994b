package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "pulse", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5, cfg.Database.MaxIdleConns)
	assert.Equal(t, 12*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout)
}

func TestApplyDefaults_ProductionLogFormat(t *testing.T) {
	cfg := &Config{App: AppConfig{Env: "production"}}
	applyDefaults(cfg)

	assert.Equal(t, "json", cfg.Log.Format)
}

func TestValidate(t *testing.T) {
	t.Run("production requires a jwt secret", func(t *testing.T) {
		cfg := &Config{App: AppConfig{Env: "production"}}
		applyDefaults(cfg)

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})

	t.Run("development falls back to an insecure secret", func(t *testing.T) {
		cfg := &Config{}
		applyDefaults(cfg)

		require.NoError(t, cfg.Validate())
		assert.NotEmpty(t, cfg.JWT.Secret)
	})

	t.Run("idle connections cannot exceed open connections", func(t *testing.T) {
		cfg := &Config{}
		applyDefaults(cfg)
		cfg.Database.MaxOpenConns = 5
		cfg.Database.MaxIdleConns = 10

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
	})
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "pulse",
		Password: "secret",
		DBName:   "pulse_prod",
		SSLMode:  "require",
	}

	assert.Equal(t,
		"host=db.internal port=5433 user=pulse password=secret dbname=pulse_prod sslmode=require",
		cfg.DSN())
}

func TestIsProduction(t *testing.T) {
	assert.True(t, (&Config{App: AppConfig{Env: "production"}}).IsProduction())
	assert.False(t, (&Config{App: AppConfig{Env: "development"}}).IsProduction())
}
