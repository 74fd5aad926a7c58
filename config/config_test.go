package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("BOTILLERIA_SYSTEM_WORKDIR", t.TempDir())

	cfg := LoadConfig("")
	assert.Equal(t, "botilleria", cfg.System.Appid)
	assert.Equal(t, 1880, cfg.Web.Port)
	assert.Empty(t, cfg.Database.Host)
	assert.InDelta(t, -33.5110, cfg.Location.Lat, 0.0001)
	assert.False(t, cfg.Assistant.Enabled)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BOTILLERIA_SYSTEM_WORKDIR", "")
	cfile := filepath.Join(dir, "botilleria.yml")
	content := `
system:
  appid: botilleria
  workdir: ` + dir + `
web:
  host: 127.0.0.1
  port: 9090
database:
  host: db.internal
  port: 5432
location:
  lat: -33.45
  lng: -70.66
`
	require.NoError(t, os.WriteFile(cfile, []byte(content), 0644))

	cfg := LoadConfig(cfile)
	assert.Equal(t, "127.0.0.1", cfg.Web.Host)
	assert.Equal(t, 9090, cfg.Web.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.InDelta(t, -33.45, cfg.Location.Lat, 0.0001)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("BOTILLERIA_SYSTEM_WORKDIR", t.TempDir())
	t.Setenv("BOTILLERIA_WEB_PORT", "8088")
	t.Setenv("BOTILLERIA_DB_HOST", "env-db")
	t.Setenv("BOTILLERIA_ASSISTANT_ENABLED", "true")
	t.Setenv("BOTILLERIA_LOCATION_LAT", "-33.40")

	cfg := LoadConfig("")
	assert.Equal(t, 8088, cfg.Web.Port)
	assert.Equal(t, "env-db", cfg.Database.Host)
	assert.True(t, cfg.Assistant.Enabled)
	assert.InDelta(t, -33.40, cfg.Location.Lat, 0.0001)
}

func TestDataAndLogDirs(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BOTILLERIA_SYSTEM_WORKDIR", dir)

	cfg := LoadConfig("")
	assert.Equal(t, filepath.Join(dir, "data"), cfg.GetDataDir())
	assert.Equal(t, filepath.Join(dir, "logs"), cfg.GetLogDir())
	assert.DirExists(t, cfg.GetDataDir())
	assert.DirExists(t, cfg.GetLogDir())
}
