package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "5", cfg.RateMargin.String())
	assert.Equal(t, []string{"http://localhost:5173", "http://127.0.0.1:5173"}, cfg.CORSOrigins)
	assert.Equal(t, "@daily", cfg.RetentionSchedule)
	assert.Zero(t, cfg.RetentionDays)
	assert.False(t, cfg.AuthEnabled())
}

func TestNewConfig_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_CONN", "/tmp/loans.db")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("RATE_MARGIN", "3.25")
	t.Setenv("CORS_ORIGINS", " https://loans.example.com , ,http://localhost:3000")
	t.Setenv("RETENTION_DAYS", "30")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "/tmp/loans.db", cfg.DBConn)
	assert.True(t, cfg.AuthEnabled())
	assert.Equal(t, "3.25", cfg.RateMargin.String())
	assert.Equal(t, []string{"https://loans.example.com", "http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, 30, cfg.RetentionDays)
}

func TestNewConfig_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"empty db conn", "DB_CONN", ""},
		{"unknown driver", "DB_DRIVER", "mysql"},
		{"empty hmac secret", "HMAC_SECRET", ""},
		{"bad margin", "RATE_MARGIN", "five"},
		{"negative margin", "RATE_MARGIN", "-1"},
		{"bad retention", "RETENTION_DAYS", "week"},
		{"negative retention", "RETENTION_DAYS", "-7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := NewConfig()
			assert.Error(t, err)
		})
	}
}
