package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setProductionEnv keeps Load from reading a stray .env file.
func setProductionEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GO_ENV", "production")
	for _, k := range []string{
		"PORT", "MONGODB_URI", "MONGODB", "DATABASE_URL", "DATABASE_NAME",
		"CORS_ALLOWED_ORIGINS", "REQUEST_TIMEOUT", "SHUTDOWN_TIMEOUT",
		"EMAIL_PROVIDER", "ANNOUNCE_RECIPIENTS",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	setProductionEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, DefaultDatabaseURL, cfg.DBUrl)
	assert.Equal(t, 30*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, time.Duration(0), cfg.RequestTimeout)
	assert.Equal(t, DefaultShutdownTimeout, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, "noop", cfg.Email.Provider)
	assert.Empty(t, cfg.Email.Recipients)
}

func TestLoad_DatabaseURLPrecedence(t *testing.T) {
	tests := []struct {
		name    string
		uri     string
		legacy  string
		generic string
		want    string
	}{
		{"mongodb uri wins", "mongodb://a/db", "mongodb://b/db", "postgres://c/db", "mongodb://a/db"},
		{"legacy mongodb fallback", "", "mongodb://b/db", "postgres://c/db", "mongodb://b/db"},
		{"database url fallback", "", "", "postgres://c/db", "postgres://c/db"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setProductionEnv(t)
			t.Setenv("MONGODB_URI", tt.uri)
			t.Setenv("MONGODB", tt.legacy)
			t.Setenv("DATABASE_URL", tt.generic)

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.DBUrl)
		})
	}
}

func TestLoad_Overrides(t *testing.T) {
	setProductionEnv(t)
	t.Setenv("PORT", "8081")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("SHUTDOWN_TIMEOUT", "1m")
	t.Setenv("EMAIL_PROVIDER", "ses")
	t.Setenv("ANNOUNCE_RECIPIENTS", "one@example.com,two@example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, time.Minute, cfg.ShutdownTimeout)
	assert.Equal(t, "ses", cfg.Email.Provider)
	assert.Equal(t, []string{"one@example.com", "two@example.com"}, cfg.Email.Recipients)
}

func TestLoad_InvalidDuration(t *testing.T) {
	for _, v := range []string{"soon", "-1s"} {
		t.Run(v, func(t *testing.T) {
			setProductionEnv(t)
			t.Setenv("REQUEST_TIMEOUT", v)

			cfg, err := Load()
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), "REQUEST_TIMEOUT")
		})
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLevel(" WARN "))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}

func TestNewLogger_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "production", "info")
	logger.Debug("hidden")
	logger.Info("database connected", "backend", "mongo")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec), "only the info record is written, as JSON")
	assert.Equal(t, "database connected", rec["msg"])
	assert.Equal(t, "mongo", rec["backend"])
	assert.Equal(t, "eventify", rec["service"])
}
