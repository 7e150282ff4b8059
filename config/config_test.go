package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnv(t *testing.T, kv map[string]string) {
	t.Helper()
	for k, v := range kv {
		t.Setenv(k, v)
	}
}

func TestLoadDefaults(t *testing.T) {
	setEnv(t, map[string]string{
		"DB_DRIVER":  "memory",
		"JWT_SECRET": "secret",
	})

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", s.Port)
	assert.Equal(t, 24*time.Hour, s.JWTExpiry())
	assert.Equal(t, 10, s.LowStockThreshold)
	assert.Equal(t, 20, s.RateLimitPerMinute)
	assert.Equal(t, "0 9 * * *", s.StockAlertCron)
	assert.Equal(t, []string{"http://localhost:3000"}, s.AllowedOrigins())
	assert.False(t, s.TwilioConfigured())
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"postgres without url", map[string]string{"DB_DRIVER": "postgres", "DB_URL": "", "JWT_SECRET": "x"}, "DB_URL"},
		{"unknown driver", map[string]string{"DB_DRIVER": "mongo", "JWT_SECRET": "x"}, "unsupported DB_DRIVER"},
		{"missing secret", map[string]string{"DB_DRIVER": "postgres", "DB_URL": "postgres://localhost/salon", "JWT_SECRET": ""}, "JWT_SECRET"},
		{"bad expiry", map[string]string{"DB_DRIVER": "memory", "JWT_SECRET": "x", "JWT_EXPIRY_HOURS": "0"}, "JWT_EXPIRY_HOURS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnv(t, tt.env)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadGeneratesSecretForMemoryDriver(t *testing.T) {
	setEnv(t, map[string]string{"DB_DRIVER": "memory", "JWT_SECRET": ""})

	first, err := Load()
	require.NoError(t, err)
	assert.True(t, first.GeneratedJWTSecret)
	assert.NotEmpty(t, first.JWTSecret)

	second, err := Load()
	require.NoError(t, err)
	assert.NotEqual(t, first.JWTSecret, second.JWTSecret)

	setEnv(t, map[string]string{"JWT_SECRET": "configured"})
	s, err := Load()
	require.NoError(t, err)
	assert.False(t, s.GeneratedJWTSecret)
	assert.Equal(t, "configured", s.JWTSecret)
}

func TestAllowedOrigins(t *testing.T) {
	s := &Settings{CORSOrigins: " https://salon.example.com, ,http://localhost:5173 "}
	assert.Equal(t, []string{"https://salon.example.com", "http://localhost:5173"}, s.AllowedOrigins())

	s.CORSOrigins = ""
	assert.Equal(t, []string{"http://localhost:3000"}, s.AllowedOrigins())
}

func TestLocation(t *testing.T) {
	s := &Settings{Timezone: "Local"}
	loc, err := s.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	s.Timezone = "Not/AZone"
	_, err = s.Location()
	assert.Error(t, err)
}
