package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ADDR", "")
	t.Setenv("DB_HOST", "")
	t.Setenv("SESSION_MAX_AGE", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("DEMO_SOLVES", "")

	cfg := Load()

	assert.Equal(t, ":8181", cfg.Addr)
	assert.Equal(t, 86400, cfg.SessionMaxAge)
	assert.False(t, cfg.Database.Enabled())
	assert.False(t, cfg.DemoSolves)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:8080"}, cfg.AllowedOrigins)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ADDR", ":9000")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("SESSION_MAX_AGE", "3600")
	t.Setenv("ALLOWED_ORIGINS", " https://vulnops.example , ,https://admin.vulnops.example")
	t.Setenv("DEMO_SOLVES", "true")

	cfg := Load()

	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, 3600, cfg.SessionMaxAge)
	assert.True(t, cfg.Database.Enabled())
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.True(t, cfg.DemoSolves)
	assert.Equal(t, []string{"https://vulnops.example", "https://admin.vulnops.example"}, cfg.AllowedOrigins)
}

func TestLoadIgnoresBadMaxAge(t *testing.T) {
	t.Setenv("SESSION_MAX_AGE", "forever")
	assert.Equal(t, 86400, Load().SessionMaxAge)
}

func TestLoadIgnoresBadBool(t *testing.T) {
	t.Setenv("DEMO_SOLVES", "sometimes")
	assert.False(t, Load().DemoSolves)
}
