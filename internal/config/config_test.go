package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allConfigKeys lists every env var that Load() reads.
var allConfigKeys = []string{
	"PASSOP_LISTEN_ADDR",
	"PASSOP_STORE_DRIVER",
	"PASSOP_MONGO_URI",
	"MONGO_URI",
	"PASSOP_DB_NAME",
	"PASSOP_COLLECTION",
	"PASSOP_DB_PATH",
	"PASSOP_CORS_ORIGINS",
	"PASSOP_CONNECT_TIMEOUT",
}

// isolateConfigEnv saves and unsets all config env vars so tests don't
// inherit values from the host environment (e.g. a running dev server).
// t.Cleanup restores original values after the test.
func isolateConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range allConfigKeys {
		if orig, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, orig) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
}

func TestLoad_Success(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("PASSOP_LISTEN_ADDR", "0.0.0.0:9090")
	t.Setenv("PASSOP_STORE_DRIVER", "SQLite")
	t.Setenv("PASSOP_MONGO_URI", "mongodb://db:27017")
	t.Setenv("PASSOP_DB_NAME", "vault")
	t.Setenv("PASSOP_COLLECTION", "creds")
	t.Setenv("PASSOP_DB_PATH", "/tmp/test.db")
	t.Setenv("PASSOP_CORS_ORIGINS", "http://a.example, http://b.example")
	t.Setenv("PASSOP_CONNECT_TIMEOUT", "30s")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9090", cfg.ListenAddr)
	assert.Equal(t, DriverSQLite, cfg.StoreDriver)
	assert.Equal(t, "mongodb://db:27017", cfg.MongoURI)
	assert.Equal(t, "vault", cfg.DBName)
	assert.Equal(t, "creds", cfg.Collection)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 30*time.Second, cfg.ConnectTimeout)
}

func TestLoad_Defaults(t *testing.T) {
	isolateConfigEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, ":3000", cfg.ListenAddr)
	assert.Equal(t, DriverMongo, cfg.StoreDriver)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "password-op", cfg.DBName)
	assert.Equal(t, "documents", cfg.Collection)
	assert.Equal(t, "passop.db", cfg.DBPath)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 10*time.Second, cfg.ConnectTimeout)
}

func TestLoad_MongoURIFallback(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("MONGO_URI", "mongodb://fallback:27017")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "mongodb://fallback:27017", cfg.MongoURI)

	t.Setenv("PASSOP_MONGO_URI", "mongodb://primary:27017")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "mongodb://primary:27017", cfg.MongoURI)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "unknown driver", key: "PASSOP_STORE_DRIVER", value: "postgres"},
		{name: "bad duration", key: "PASSOP_CONNECT_TIMEOUT", value: "soon"},
		{name: "non-positive duration", key: "PASSOP_CONNECT_TIMEOUT", value: "0s"},
		{name: "empty origin list", key: "PASSOP_CORS_ORIGINS", value: " , "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateConfigEnv(t)
			t.Setenv(tt.key, tt.value)

			cfg, err := Load()

			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestClientConfig_LoadMissing(t *testing.T) {
	cfg, err := LoadClient(filepath.Join(t.TempDir(), "nope.json5"))

	require.NoError(t, err)
	assert.Equal(t, &ClientConfig{}, cfg)
}

func TestClientConfig_LoadJSON5(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json5")
	content := `{
  // where passop listens
  "server": "http://vault.lan:3000"
}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadClient(path)

	require.NoError(t, err)
	assert.Equal(t, "http://vault.lan:3000", cfg.Server)
}

func TestClientConfig_SetSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json5")

	cfg := &ClientConfig{}
	require.NoError(t, cfg.Set("server", "http://localhost:4000"))
	require.NoError(t, cfg.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := LoadClient(path)
	require.NoError(t, err)
	got, err := loaded.Get("server")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:4000", got)
}

func TestClientConfig_UnknownKey(t *testing.T) {
	cfg := &ClientConfig{}

	_, err := cfg.Get("color")
	assert.Error(t, err)
	assert.Error(t, cfg.Set("color", "red"))
}

func TestClientConfigPath(t *testing.T) {
	assert.Equal(t, "config.json5", filepath.Base(ClientConfigPath()))
	assert.Equal(t, "passop", filepath.Base(ClientConfigDir()))
}
