package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookup(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestFromLookup_Defaults(t *testing.T) {
	cfg, err := fromLookup(lookup(map[string]string{"JWT_SECRET": "s3cret"}))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 3*time.Second, cfg.DBTimeout)
	assert.Equal(t, 24*time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, "https://www.googleapis.com", cfg.GoogleBooksBaseURL)
	assert.Equal(t, 5, cfg.CatalogRPS)
	assert.Equal(t, 2, cfg.CatalogMaxRetries)
	assert.Equal(t, int64(1<<20), cfg.MaxBodyBytes)
	assert.Nil(t, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.EnableHSTS)
}

func TestFromLookup_Overrides(t *testing.T) {
	cfg, err := fromLookup(lookup(map[string]string{
		"JWT_SECRET":           "s3cret",
		"APP_ADDR":             ":9090",
		"ACCESS_TOKEN_TTL":     "90m",
		"CORS_ALLOWED_ORIGINS": "http://a.test, ,http://b.test",
		"RATE_LIMIT_RPS":       "2.5",
		"ENABLE_HSTS":          "true",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 90*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.True(t, cfg.EnableHSTS)
}

func TestFromLookup_Errors(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		_, err := fromLookup(lookup(nil))
		assert.ErrorIs(t, err, ErrMissingSecret)
	})

	t.Run("bad duration", func(t *testing.T) {
		_, err := fromLookup(lookup(map[string]string{"JWT_SECRET": "x", "DB_TIMEOUT": "soon"}))
		assert.ErrorContains(t, err, "DB_TIMEOUT")
	})

	t.Run("bad bool", func(t *testing.T) {
		_, err := fromLookup(lookup(map[string]string{"JWT_SECRET": "x", "ENABLE_HSTS": "sometimes"}))
		assert.ErrorContains(t, err, "ENABLE_HSTS")
	})

	t.Run("bad int", func(t *testing.T) {
		_, err := fromLookup(lookup(map[string]string{"JWT_SECRET": "x", "CATALOG_RPS": "many"}))
		assert.ErrorContains(t, err, "CATALOG_RPS")
	})

	t.Run("non positive rps", func(t *testing.T) {
		_, err := fromLookup(lookup(map[string]string{"JWT_SECRET": "x", "CATALOG_RPS": "0"}))
		assert.Error(t, err)
	})
}

func TestLoad_YAMLFileFillsGaps(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "freader.yaml")
	require.NoError(t, os.WriteFile(path, []byte("jwt_secret: from-file\napp_addr: \":7070\"\ncatalog_rps: 3\n"), 0o600))

	t.Setenv(configFileEnv, path)
	t.Setenv("APP_ADDR", ":6060")
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.JWTSecret)
	assert.Equal(t, ":6060", cfg.Addr)
	assert.Equal(t, 3, cfg.CatalogRPS)
}

func TestLoadEnvFiles_DoesNotOverrideExistingEnv(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, ".env"), []byte("DB_DSN=from_file\n"), 0o644))

	t.Setenv("DB_DSN", "from_env")
	t.Chdir(tmp)

	LoadEnvFiles()

	assert.Equal(t, "from_env", os.Getenv("DB_DSN"))
}

func TestRedactDSN(t *testing.T) {
	assert.Equal(t, "postgres://***@localhost:5432/freader", RedactDSN("postgres://user:pw@localhost:5432/freader"))
	assert.Equal(t, "no-scheme", RedactDSN("no-scheme"))
	assert.Equal(t, "postgres://localhost/db", RedactDSN("postgres://localhost/db"))
}
