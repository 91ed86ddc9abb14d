package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr)
	assert.Equal(t, "data/sl_notes.db", cfg.Database.Path)
	assert.Equal(t, 60*24*7, cfg.Auth.TokenTTLMinutes)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, int64(10*1024*1024), cfg.Upload.MaxSizeBytes)
	assert.Equal(t, "local", cfg.Storage.Backend)
	assert.False(t, cfg.Admin.Seed)
	assert.Empty(t, cfg.Auth.JWTSecret)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SLNOTES_SERVER_ADDR", "127.0.0.1:9999")
	t.Setenv("SLNOTES_AUTH_JWTSECRET", "env-secret")
	t.Setenv("SLNOTES_AUTH_TOKENTTLMINUTES", "30")
	t.Setenv("SLNOTES_STORAGE_BACKEND", "s3")
	t.Setenv("SLNOTES_STORAGE_BUCKET", "notes-bucket")
	t.Setenv("SLNOTES_ADMIN_SEED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9999", cfg.Server.Addr)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 30, cfg.Auth.TokenTTLMinutes)
	assert.Equal(t, "s3", cfg.Storage.Backend)
	assert.Equal(t, "notes-bucket", cfg.Storage.Bucket)
	assert.True(t, cfg.Admin.Seed)
}

func TestDotEnvDoesNotOverrideExistingEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(
		"SLNOTES_AUTH_JWTSECRET=\"file-secret\"\n"+
			"# comment line\n"+
			"SLNOTES_DATABASE_PATH=from-file.db\n"+
			"MALFORMED LINE\n",
	), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("SLNOTES_AUTH_JWTSECRET", "process-secret")
	// loadDotEnv exports file values into the process environment
	t.Cleanup(func() { os.Unsetenv("SLNOTES_DATABASE_PATH") })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "process-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, "from-file.db", cfg.Database.Path)
}
