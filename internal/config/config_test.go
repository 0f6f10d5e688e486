package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TokenTTL())
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:8080"}, cfg.CORS.Origins)
	assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	t.Setenv("JWT_ACCESS_TOKEN_EXPIRE_MINUTES", "30")
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_DRIVER", "memory")
	t.Setenv("BLUEPRINT_DB_HOST", "db.internal")
	t.Setenv("BLUEPRINT_DB_PORT", "6543")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, 30*time.Minute, cfg.JWT.TokenTTL())
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Contains(t, cfg.Database.DSN(), "host=db.internal")
	assert.Contains(t, cfg.Database.DSN(), "port=6543")
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "")

	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Port:     8080,
		Database: Database{Driver: DriverPostgres},
		JWT:      JWT{SecretKey: "s", AccessTokenExpireMinutes: 10},
	}
	require.NoError(t, valid.Validate())

	bad := valid
	bad.Database.Driver = "mysql"
	require.Error(t, bad.Validate())

	bad = valid
	bad.JWT.AccessTokenExpireMinutes = 0
	require.Error(t, bad.Validate())

	bad = valid
	bad.Port = 70000
	require.Error(t, bad.Validate())
}
