package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("does-not-exist.yaml")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, StoreMemory, cfg.Store.Driver)
	assert.Equal(t, 24*time.Hour, cfg.JWT.DefaultTTL)
}

func TestLoadConfig_YAMLThenEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeFile(t, "config.yaml", `
http:
  address: ":9000"
  read_timeout: 3s
store:
  driver: Redis
redis:
  addr: "localhost:6379"
  db: 2
observability:
  environment: development
`)
	t.Setenv("REDIS_DB", "5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com,")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.HTTP.Address)
	assert.Equal(t, 3*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.HTTP.WriteTimeout, "defaults survive a partial file")
	assert.Equal(t, StoreRedis, cfg.Store.Driver)
	assert.Equal(t, 5, cfg.Redis.DB)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, "development", ToObsConfig(cfg).Environment)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SQLITE_PATH=from-dotenv.db\n"), 0o600))
	t.Setenv("STORE_DRIVER", "sqlite")
	// godotenv never overrides variables that are already set; make sure it is unset.
	t.Setenv("SQLITE_PATH", "")
	os.Unsetenv("SQLITE_PATH")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv.db", cfg.SQLite.Path)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown driver", env: map[string]string{"STORE_DRIVER": "mongo"}},
		{name: "postgres without dsn", env: map[string]string{"STORE_DRIVER": "postgres"}},
		{name: "nats without url", env: map[string]string{"STORE_DRIVER": "nats"}},
		{name: "event bus without url", env: map[string]string{"NATS_EVENT_BUS": "true"}},
		{name: "bad duration", env: map[string]string{"HTTP_READ_TIMEOUT": "soon"}},
		{name: "bad redis db", env: map[string]string{"REDIS_DB": "one"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig("")
			assert.Error(t, err)
		})
	}
}
