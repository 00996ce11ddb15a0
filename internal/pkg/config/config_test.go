package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SECRET_KEY", "s3cret")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database url")
}

func TestLoadRequiresSecretKey(t *testing.T) {
	t.Setenv("DATABASE_URL", "data/app.db")
	t.Setenv("SECRET_KEY", "")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "signing secret")
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "data/app.db")
	t.Setenv("SECRET_KEY", "s3cret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "data/app.db", cfg.Database.URL)
	assert.Equal(t, "s3cret", cfg.JWT.SecretKey)
	// Defaults
	assert.Equal(t, 1, cfg.JWT.ExpireHours)
	assert.Equal(t, 10, cfg.Auth.MaxSigninAttempts)
	assert.Equal(t, "0.0.0.0:8080", cfg.ServerAddr())
}
