package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigValue_Precedence(t *testing.T) {
	t.Setenv("TEST_CONFIG_KEY", "from-env")

	assert.Equal(t, "from-flag", getConfigValue("from-flag", "TEST_CONFIG_KEY", "default"))
	assert.Equal(t, "from-env", getConfigValue("", "TEST_CONFIG_KEY", "default"))
	assert.Equal(t, "default", getConfigValue("", "TEST_CONFIG_MISSING", "default"))
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# comment line\n\nFOO_FROM_FILE=bar\nQUOTED_VALUE=\"hello world\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("FOO_FROM_FILE", "")
	os.Unsetenv("FOO_FROM_FILE")
	t.Setenv("QUOTED_VALUE", "")
	os.Unsetenv("QUOTED_VALUE")

	require.NoError(t, loadEnvFile(path))

	assert.Equal(t, "bar", os.Getenv("FOO_FROM_FILE"))
	assert.Equal(t, "hello world", os.Getenv("QUOTED_VALUE"))
}

func TestLoadEnvFile_ExistingEnvWins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("ALREADY_SET=file-value\n"), 0o600))

	t.Setenv("ALREADY_SET", "env-value")

	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "env-value", os.Getenv("ALREADY_SET"))
}

func TestLoadEnvFile_InvalidLine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("not a key value pair\n"), 0o600))

	assert.Error(t, loadEnvFile(path))
}

func TestValidate(t *testing.T) {
	valid := Config{
		App:    AppConfig{Environment: "development"},
		Logger: LoggerConfig{Level: "info"},
		Store:  StoreConfig{DataPath: "/tmp/conduit"},
		Auth:   AuthConfig{TokenDuration: 24 * time.Hour},
	}
	assert.NoError(t, valid.Validate())

	badEnv := valid
	badEnv.App.Environment = "testing"
	assert.Error(t, badEnv.Validate())

	badLevel := valid
	badLevel.Logger.Level = "verbose"
	assert.Error(t, badLevel.Validate())

	badDuration := valid
	badDuration.Auth.TokenDuration = 0
	assert.Error(t, badDuration.Validate())
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	expanded, err := expandPath("~/conduit/data", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "conduit", "data"), expanded)

	expanded, err = expandPath("", "/default/path")
	require.NoError(t, err)
	assert.Equal(t, "/default/path", expanded)

	expanded, err = expandPath("/already/absolute", "")
	require.NoError(t, err)
	assert.Equal(t, "/already/absolute", expanded)
}

func TestSplitOrigins(t *testing.T) {
	assert.Equal(t, []string{"*"}, splitOrigins("*"))
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, splitOrigins("https://a.example, https://b.example"))
	assert.Empty(t, splitOrigins(" , "))
}
