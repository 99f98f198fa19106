package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9091", c.HTTPAddr)
	assert.Equal(t, StorageMongo, c.Storage)
	assert.Equal(t, 24*time.Hour, c.JWTTTL)
	assert.True(t, c.GuardMutations)
	assert.Equal(t, int64(8<<20), c.MaxUploadBytes)
	assert.Empty(t, c.CORSOrigins)
	assert.Empty(t, c.RabbitMQURL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("STORAGE", "memory")
	t.Setenv("GUARD_MUTATIONS", "false")
	t.Setenv("MAX_UPLOAD_MB", "2")
	t.Setenv("JWT_TTL", "30m")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, http://localhost:3001,")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StorageMemory, c.Storage)
	assert.False(t, c.GuardMutations)
	assert.Equal(t, int64(2<<20), c.MaxUploadBytes)
	assert.Equal(t, 30*time.Minute, c.JWTTTL)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:3001"}, c.CORSOrigins)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"missing secret":  {"JWT_SECRET": "", "APP_ENV": "production"},
		"bad storage":     {"JWT_SECRET": "s", "STORAGE": "postgres"},
		"bad guard":       {"JWT_SECRET": "s", "GUARD_MUTATIONS": "maybe"},
		"bad ttl":         {"JWT_SECRET": "s", "JWT_TTL": "soon"},
		"negative upload": {"JWT_SECRET": "s", "MAX_UPLOAD_MB": "-1"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_DevelopmentSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("APP_ENV", "development")

	c, err := Load()
	require.NoError(t, err)
	assert.NotEmpty(t, c.JWTSecret)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file is skipped", func(t *testing.T) {
		assert.NoError(t, LoadDotEnv(filepath.Join(dir, "absent.env")))
	})

	t.Run("existing file is loaded", func(t *testing.T) {
		path := filepath.Join(dir, "app.env")
		require.NoError(t, os.WriteFile(path, []byte("SHOPADMIN_DOTENV_TEST=loaded\n"), 0o600))
		t.Cleanup(func() { os.Unsetenv("SHOPADMIN_DOTENV_TEST") })

		require.NoError(t, LoadDotEnv(path))
		assert.Equal(t, "loaded", os.Getenv("SHOPADMIN_DOTENV_TEST"))
	})

	t.Run("unreadable file is reported", func(t *testing.T) {
		path := filepath.Join(dir, "dir.env")
		require.NoError(t, os.Mkdir(path, 0o700))

		assert.Error(t, LoadDotEnv(path))
	})
}
