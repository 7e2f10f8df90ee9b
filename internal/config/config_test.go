package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "./data", cfg.DataDir)
	assert.Equal(t, "./users.json", cfg.UsersFile)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Nil(t, cfg.AllowedOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATA_DIR", "/var/lib/egrafes")
	t.Setenv("JWT_EXPIRY_HOURS", "2")
	t.Setenv("BCRYPT_COST", "not-a-number")

	cfg := Load()

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "/var/lib/egrafes", cfg.DataDir)
	assert.Equal(t, 2*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 10, cfg.BcryptCost) // malformed value falls back to default
}

func TestParseOrigins(t *testing.T) {
	assert.Nil(t, parseOrigins(""))
	assert.Equal(t,
		[]string{"https://a.example", "https://b.example"},
		parseOrigins(" https://a.example , https://b.example ,"),
	)
}
