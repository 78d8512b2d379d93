package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DevelopmentDefaults(t *testing.T) {
	os.Clearenv()
	defer os.Clearenv()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "barangay", cfg.Database.Name)
	assert.True(t, cfg.Server.DevRoutes, "dev routes default on outside production")
	assert.False(t, cfg.Auth.AdminSessionRequired)
	assert.False(t, cfg.Email.Enabled())
	assert.Contains(t, cfg.Server.AllowedOrigins, "http://localhost:3000")
}

func TestLoad_ProductionRequiresDBPassword(t *testing.T) {
	os.Clearenv()
	os.Setenv("ENV", "production")
	os.Setenv("JWT_SECRET", "a-very-long-production-secret-value-0001")
	defer os.Clearenv()

	_, err := Load()
	assert.ErrorContains(t, err, "DB_PASSWORD")
}

func TestLoad_ProductionRequiresJWTSecret(t *testing.T) {
	os.Clearenv()
	os.Setenv("ENV", "production")
	os.Setenv("DB_PASSWORD", "test")
	defer os.Clearenv()

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoad_ProductionDefaults(t *testing.T) {
	os.Clearenv()
	os.Setenv("ENV", "production")
	os.Setenv("DB_PASSWORD", "test")
	os.Setenv("JWT_SECRET", "a-very-long-production-secret-value-0001")
	os.Setenv("ALLOWED_ORIGINS", "https://barangay.example.com, https://admin.example.com")
	defer os.Clearenv()

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Auth.AdminSessionRequired)
	assert.True(t, cfg.Auth.CookieSecure)
	assert.False(t, cfg.Server.DevRoutes)
	assert.Equal(t, []string{"https://barangay.example.com", "https://admin.example.com"}, cfg.Server.AllowedOrigins)
}

func TestLoad_WeakJWTSecretRejected(t *testing.T) {
	os.Clearenv()
	os.Setenv("JWT_SECRET", "short")
	defer os.Clearenv()

	_, err := Load()
	assert.ErrorContains(t, err, "at least 16 characters")
}

func TestServerConfig_Timeouts(t *testing.T) {
	os.Clearenv()
	os.Setenv("SERVER_READ_TIMEOUT", "30s")
	os.Setenv("SERVER_WRITE_TIMEOUT", "not-a-duration")
	defer os.Clearenv()

	cfg, err := Load()
	require.NoError(t, err)

	tests := []struct {
		name     string
		actual   time.Duration
		expected time.Duration
	}{
		{"ReadTimeout (custom)", cfg.Server.ReadTimeout, 30 * time.Second},
		{"WriteTimeout (invalid falls back)", cfg.Server.WriteTimeout, 15 * time.Second},
		{"IdleTimeout (default)", cfg.Server.IdleTimeout, 60 * time.Second},
	}

	for _, tt := range tests {
		if tt.actual != tt.expected {
			t.Errorf("%s: got %v, want %v", tt.name, tt.actual, tt.expected)
		}
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 5433, User: "u", Password: "p", Name: "n", SSLMode: "require"}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=n sslmode=require", c.DSN())
}
