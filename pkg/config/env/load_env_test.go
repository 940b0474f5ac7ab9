package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("HIPE_TEST_SINK=pg\nHIPE_TEST_KEEP=file\n"), 0o644))

	t.Setenv("HIPE_TEST_KEEP", "env")
	t.Setenv("ENV_PATH", "")
	t.Cleanup(func() { _ = os.Unsetenv("HIPE_TEST_SINK") })

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "pg", os.Getenv("HIPE_TEST_SINK"))
	assert.Equal(t, "env", os.Getenv("HIPE_TEST_KEEP"))
}

func TestLoadDotEnv_EnvPathWins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.env")
	require.NoError(t, os.WriteFile(path, []byte("HIPE_TEST_CUSTOM=yes\n"), 0o644))

	t.Setenv("ENV_PATH", path)
	t.Cleanup(func() { _ = os.Unsetenv("HIPE_TEST_CUSTOM") })

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
	assert.Equal(t, "yes", os.Getenv("HIPE_TEST_CUSTOM"))
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	t.Setenv("ENV_PATH", "")
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "none.env")))
}
