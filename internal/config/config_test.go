package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultGeocoderURL, cfg.Geocoder.URL)
	assert.Equal(t, "4", cfg.Geocoder.Benchmark)
	assert.Equal(t, "GA", cfg.Geocoder.State)
	assert.Equal(t, 5000, cfg.Geocoder.BatchSize)
	assert.Equal(t, 5*time.Minute, cfg.Geocoder.Timeout)
	assert.Equal(t, 160.0, cfg.Matching.SuggestionRadiusMeters)
	assert.Equal(t, "rules", cfg.Matching.AddressParser)
	assert.Empty(t, cfg.Cache.Addr)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, int64(32<<20), cfg.Server.MaxUploadBytes)
	assert.True(t, cfg.Server.ManualOverride)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("GEOCODER_BATCH_SIZE", "250")
	t.Setenv("GEOCODER_RETRY_WAIT", "750ms")
	t.Setenv("SUGGESTION_RADIUS_METERS", "200.5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, https://evictions.example.org,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "host=db.internal port=6543 user=postgres password=postgres dbname=evictions sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, 250, cfg.Geocoder.BatchSize)
	assert.Equal(t, 750*time.Millisecond, cfg.Geocoder.RetryWait)
	assert.Equal(t, 200.5, cfg.Matching.SuggestionRadiusMeters)
	assert.Equal(t, []string{"http://localhost:5173", "https://evictions.example.org"}, cfg.Server.AllowedOrigins)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"zero batch size", "GEOCODER_BATCH_SIZE", "0"},
		{"zero concurrency", "GEOCODER_CONCURRENCY", "0"},
		{"unknown parser", "ADDRESS_PARSER", "regex"},
		{"negative radius", "SUGGESTION_RADIUS_METERS", "-1"},
		{"zero upload limit", "MAX_UPLOAD_MB", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TEST_INT", "not-a-number")
	t.Setenv("TEST_BOOL", "yes")
	t.Setenv("TEST_DURATION", "90s")

	assert.Equal(t, 7, GetEnvInt("TEST_INT", 7))
	assert.True(t, GetEnvBool("TEST_BOOL", false))
	assert.Equal(t, 90*time.Second, GetEnvDuration("TEST_DURATION", time.Second))
	assert.Equal(t, "fallback", GetEnv("TEST_UNSET_KEY", "fallback"))
}
