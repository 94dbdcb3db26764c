package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "jwt:\n  secret: s3cret\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1", cfg.HTTP.Host)
	require.Equal(t, 9500, cfg.HTTP.Port)
	require.Equal(t, "sqlite", cfg.DB.Driver)
	require.Equal(t, "knowledge_base.db", cfg.DB.Path)
	require.Equal(t, "memory", cfg.Session.Store)
	require.Equal(t, 5, cfg.JWT.ExpMin)
	require.Equal(t, "admin", cfg.Admin.Username)
	require.Empty(t, cfg.Admin.Password)
}

func TestLoad_Values(t *testing.T) {
	path := writeConfig(t, `
http:
  host: 0.0.0.0
  port: 8080
db:
  driver: mysql
  host: db.local
  name: kb
session:
  store: redis
  redis_addr: cache.local:6379
jwt:
  secret: s3cret
  exp_min: 10
admin:
  password: seeded
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	require.Equal(t, 8080, cfg.HTTP.Port)
	require.Equal(t, "mysql", cfg.DB.Driver)
	require.Equal(t, "db.local", cfg.DB.Host)
	require.Equal(t, "kb", cfg.DB.Name)
	require.Equal(t, "redis", cfg.Session.Store)
	require.Equal(t, "cache.local:6379", cfg.Session.RedisAddr)
	require.Equal(t, 10, cfg.JWT.ExpMin)
	require.Equal(t, "seeded", cfg.Admin.Password)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("KB_JWT_SECRET", "from-env")
	t.Setenv("KB_ADMIN_PASSWORD", "env-admin-pw")

	path := writeConfig(t, "http:\n  port: 8080\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "from-env", cfg.JWT.Secret)
	require.Equal(t, "env-admin-pw", cfg.Admin.Password)
}

func TestLoad_MissingSecret(t *testing.T) {
	path := writeConfig(t, "http:\n  port: 8080\n")

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_BadDriver(t *testing.T) {
	t.Setenv("KB_JWT_SECRET", "s")
	path := writeConfig(t, "db:\n  driver: mongo\n")

	_, err := Load(path)
	require.Error(t, err)
}
