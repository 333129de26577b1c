package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", c.Addr())
	assert.Equal(t, "postgres", c.StorageDriver)
	assert.Equal(t, int64(1<<20), c.MaxBodyBytes)
	assert.Equal(t, 10*time.Second, c.ShutdownTimeout)
	assert.Equal(t, 5432, c.DB.Port)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contactd.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
web:
  port: 9090
storage:
  driver: FILE
  path: /var/lib/contactd
db:
  name: fromfile
  user: fromfile
`), 0o644))

	t.Setenv("CONTACTD_WEB_HOST", "127.0.0.1")
	t.Setenv("DATABASE_USER", "fromenv")

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", c.Addr())
	assert.Equal(t, "file", c.StorageDriver)
	assert.Equal(t, "/var/lib/contactd", c.StoragePath)
	assert.Equal(t, "fromfile", c.DB.DBName)
	assert.Equal(t, "fromenv", c.DB.User)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("CONTACTD_STORAGE_DRIVER", "mongo")
		_, err := Load("")
		assert.ErrorContains(t, err, "unknown storage driver")
	})

	t.Run("bad db port", func(t *testing.T) {
		t.Setenv("DATABASE_PORT", "five")
		_, err := Load("")
		assert.ErrorContains(t, err, "DATABASE_PORT")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
