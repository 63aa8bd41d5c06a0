package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/tasklist/pkg/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func environ(vars ...string) func() []string {
	return func() []string { return vars }
}

// isolated ignores the real home directory, working directory and environment.
func isolated(extra ...Option) []Option {
	return append([]Option{WithSearchPaths(), WithEnvFile(""), WithEnviron(environ())}, extra...)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(isolated()...)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, BackendFile, cfg.Backend)
	assert.Equal(t, persistence.DefaultKey, cfg.List)
	assert.Equal(t, persistence.PolicyFail, cfg.Policy())
	assert.False(t, cfg.Encryption.Enabled())
}

func TestLoad_YAMLLayers(t *testing.T) {
	dir := t.TempDir()
	global := writeFile(t, dir, "home/config.yaml", `
backend: redis
list: personal
redis:
  addr: cache:6379
  db: 2
`)
	project := writeFile(t, dir, "project/config.yaml", `
list: work
redis:
  prefix: "team:"
`)

	cfg, err := Load(isolated(WithSearchPaths(global, project, filepath.Join(dir, "missing.yaml")))...)
	require.NoError(t, err)
	assert.Equal(t, BackendRedis, cfg.Backend)
	assert.Equal(t, "work", cfg.List)
	assert.Equal(t, RedisConfig{Addr: "cache:6379", DB: 2, Prefix: "team:"}, cfg.Redis)
	assert.Equal(t, DefaultPort, cfg.Server.Port)
}

func TestLoad_ExplicitFileMustExist(t *testing.T) {
	_, err := Load(isolated(WithFile(filepath.Join(t.TempDir(), "nope.yaml")))...)
	assert.ErrorContains(t, err, "failed to read config")
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", "backend: [oops")
	_, err := Load(isolated(WithFile(path))...)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", "backend: sqlite\nsqlite:\n  path: /data/a.db\n")
	dotenv := writeFile(t, dir, ".env", strings.Join([]string{
		"TASKLIST_LIST=from-dotenv",
		"TASKLIST_LOG_LEVEL=debug",
		"TASKLIST_SERVER_PORT=9000",
	}, "\n"))

	cfg, err := Load(
		WithFile(path),
		WithEnvFile(dotenv),
		WithEnviron(environ(
			"TASKLIST_SERVER_PORT=9100",
			"TASKLIST_REDIS_DB=3",
			"TASKLIST_MALFORMED=skip",
			"TASKLIST_ENCRYPTION_KEY="+testKey,
			"TASKLIST_ENCRYPTION_PREVIOUS_KEYS="+testKey+","+testKey,
			"UNRELATED=1",
		)),
	)
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, "/data/a.db", cfg.SQLite.Path)
	assert.Equal(t, "from-dotenv", cfg.List)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 9100, cfg.Server.Port, "process environment beats .env")
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, DefaultRedisAddr, cfg.Redis.Addr)
	assert.Equal(t, persistence.PolicySkip, cfg.Policy())
	assert.True(t, cfg.Encryption.Enabled())
	assert.Len(t, cfg.Encryption.PreviousKeys, 2)

	mw, err := cfg.Encryption.Middleware()
	require.NoError(t, err)
	assert.NotNil(t, mw)
}

func TestLoad_Validation(t *testing.T) {
	cases := map[string]string{
		"backend":   "TASKLIST_BACKEND=postgres",
		"malformed": "TASKLIST_MALFORMED=ignore",
		"log level": "TASKLIST_LOG_LEVEL=chatty",
		"key":       "TASKLIST_ENCRYPTION_KEY=abcd",
		"port":      "TASKLIST_SERVER_PORT=70000",
		"list":      "TASKLIST_LIST=",
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(isolated(WithEnviron(environ(kv)))...)
			assert.ErrorContains(t, err, "invalid configuration")
		})
	}
}

func TestLoad_BadEnvType(t *testing.T) {
	_, err := Load(isolated(WithEnviron(environ("TASKLIST_REDIS_DB=zero")))...)
	assert.ErrorContains(t, err, "TASKLIST_* environment")
}

func TestSearchPaths(t *testing.T) {
	paths := SearchPaths()
	require.NotEmpty(t, paths)
	assert.Equal(t, filepath.Join(DefaultDir, "config.yaml"), paths[len(paths)-1])
}
