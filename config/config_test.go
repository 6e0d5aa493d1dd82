package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := Load(v, "")
	require.NoError(t, err)
	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, "local", cfg.Upload.Backend)
	assert.EqualValues(t, 50*1024*1024, cfg.Upload.MaxBytes)
	assert.Equal(t, "admin", cfg.Admin.Username)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("EDUDASH_STORAGE_DRIVER", "sqlite")
	t.Setenv("EDUDASH_UPLOAD_MAX_BYTES", "1024")
	t.Setenv("DB_HOST", "db.internal")

	v := viper.New()
	SetDefaults(v)
	cfg, err := Load(v, "")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.EqualValues(t, 1024, cfg.Upload.MaxBytes)
	assert.Equal(t, "db.internal", cfg.Database.Host)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edudash.yaml")
	content := "server:\n  port: \"8080\"\nstorage:\n  driver: bolt\nbolt:\n  path: /tmp/x.bolt\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	v := viper.New()
	SetDefaults(v)
	cfg, err := Load(v, path)
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "bolt", cfg.Storage.Driver)
	assert.Equal(t, "/tmp/x.bolt", cfg.Bolt.Path)
}

func TestValidate(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("storage.driver", "mysql")
	_, err := Load(v, "")
	assert.ErrorContains(t, err, "invalid storage driver")

	v.Set("storage.driver", "memory")
	v.Set("upload.backend", "s3")
	_, err = Load(v, "")
	assert.ErrorContains(t, err, "invalid upload backend")

	v.Set("upload.backend", "local")
	v.Set("upload.max_bytes", 0)
	_, err = Load(v, "")
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	c := DatabaseConfig{Host: "h", Port: "5432", User: "u", Password: "p", DBName: "d", SSLMode: "disable"}
	assert.Equal(t, "host=h port=5432 user=u password=p dbname=d sslmode=disable", c.DSN())
}
