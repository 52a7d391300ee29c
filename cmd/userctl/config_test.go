package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetFlags() {
	flagURL, flagLimit, flagJSON, flagDebug, flagLogLevel, flagEnvFile = "", 0, false, false, "", ""
}

func TestInitConfig_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	resetFlags()

	require.NoError(t, initConfig())

	assert.Equal(t, "http://localhost:3000", getConfigURL())
	assert.Equal(t, 10, getConfigLimit())
	assert.Equal(t, 30*time.Second, cfg.GetDuration("timeout"))
	assert.Equal(t, "warn", cfg.GetString("log_level"))
	assert.Equal(t, "local", getStorageConfig().Type)
}

func TestInitConfig_Precedence(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.WriteFile(filepath.Join(home, ".userctl.yaml"), []byte(
		"url: http://file:1/\nlimit: 5\nstorage:\n  type: s3\n  s3_bucket: photos\n"), 0600))

	resetFlags()
	require.NoError(t, initConfig())
	assert.Equal(t, "http://file:1", getConfigURL(), "trailing slash trimmed")
	assert.Equal(t, 5, getConfigLimit())
	assert.Equal(t, "s3", getStorageConfig().Type)
	assert.Equal(t, "photos", getStorageConfig().Bucket)

	t.Setenv("USERCTL_LIMIT", "7")
	t.Setenv("USERCTL_STORAGE_S3_BUCKET", "env-bucket")
	resetFlags()
	require.NoError(t, initConfig())
	assert.Equal(t, 7, getConfigLimit())
	assert.Equal(t, "env-bucket", getStorageConfig().Bucket)

	resetFlags()
	flagURL = "http://flag:2"
	flagLimit = 3
	flagDebug = true
	require.NoError(t, initConfig())
	assert.Equal(t, "http://flag:2", getConfigURL())
	assert.Equal(t, 3, getConfigLimit())
	assert.Equal(t, "debug", cfg.GetString("log_level"))
}

func TestInitConfig_DotEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("USERCTL_URL=http://dotenv:4\n"), 0600))

	os.Unsetenv("USERCTL_URL")
	t.Cleanup(func() { os.Unsetenv("USERCTL_URL") })

	resetFlags()
	flagEnvFile = envFile
	require.NoError(t, initConfig())
	assert.Equal(t, "http://dotenv:4", getConfigURL())
}

func TestInitConfig_MissingDotEnvIsIgnored(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	resetFlags()
	flagEnvFile = filepath.Join(t.TempDir(), "missing.env")
	assert.NoError(t, initConfig())
}

func TestConfigInitAndShow(t *testing.T) {
	stdout, _, err := runCLI(t, "", "config", "init")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Config file created at")

	stdout, _, err = runCLI(t, "", "--url", "http://example:9", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "URL:       http://example:9")
	assert.Contains(t, stdout, "Config file: (none)")
}

func TestLoadServerConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		wd, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(t.TempDir()))
		t.Cleanup(func() { _ = os.Chdir(wd) })

		sc, err := LoadServerConfig("")
		require.NoError(t, err)
		assert.Equal(t, 3000, sc.Server.Port)
		assert.Equal(t, 15*time.Second, sc.Server.ReadTimeout)
		assert.Equal(t, "sqlite", sc.Database.Driver)
		assert.Equal(t, "./users.db", sc.Database.Path)
		assert.Equal(t, "info", sc.Log.Level)
		assert.False(t, sc.Seed)
	})

	t.Run("file and env", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "server.yaml")
		require.NoError(t, os.WriteFile(path, []byte(
			"server:\n  port: 4000\ndatabase:\n  driver: mysql\n  database: people\nseed: true\n"), 0600))
		t.Setenv("DATABASE_HOST", "db.internal")

		sc, err := LoadServerConfig(path)
		require.NoError(t, err)
		assert.Equal(t, 4000, sc.Server.Port)
		assert.Equal(t, "mysql", sc.Database.Driver)
		assert.Equal(t, "people", sc.Database.Database)
		assert.Equal(t, "db.internal", sc.Database.Host)
		assert.True(t, sc.Seed)
	})

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := LoadServerConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
