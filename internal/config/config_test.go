package config_test

import (
	"testing"

	"github.com/varun134127/serene-sale-spot/internal/config"

	"github.com/stretchr/testify/assert"
)

// Test: JWT_SECRET必須
func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

// Test: デフォルト値
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := config.Load()
	assert.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "dev", cfg.GoEnv)
	assert.Equal(t, "http://localhost:5173", cfg.FEURL)
}

// Test: 環境変数が優先される
func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "9000")

	cfg, err := config.Load()
	assert.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
}
