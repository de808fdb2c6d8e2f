package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.GetDataDir())
	assert.Equal(t, "output", cfg.GetOutputDir())
	assert.True(t, cfg.GetSortFiles())
	assert.Equal(t, "info", cfg.GetLogLevel())
	assert.Equal(t, "campus_energy", cfg.MQTT.GetTopicPrefix())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `data_dir: /srv/meters
output_dir: /srv/reports
sort_files: false
log_level: DEBUG
mqtt:
  enabled: true
  broker: localhost:1883
  topic_prefix: energy/
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/meters", cfg.GetDataDir())
	assert.Equal(t, "/srv/reports", cfg.GetOutputDir())
	assert.False(t, cfg.GetSortFiles())
	assert.Equal(t, "debug", cfg.GetLogLevel())
	assert.Equal(t, "energy", cfg.MQTT.GetTopicPrefix())
	assert.NoError(t, cfg.MQTT.Validate())
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: [unterminated"), 0600))

	_, err := Load(path)
	assert.ErrorContains(t, err, "parsing config file")
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	sorted := false
	cfg := &Config{DataDir: "in", SortFiles: &sorted, MQTT: MQTTConfig{Enabled: true, Broker: "mqtt:1883"}}

	require.NoError(t, Save(path, cfg))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "in", loaded.GetDataDir())
	assert.Equal(t, "mqtt:1883", loaded.MQTT.Broker)
	assert.False(t, loaded.GetSortFiles())
}

func TestMQTTValidate(t *testing.T) {
	assert.ErrorContains(t, MQTTConfig{}.Validate(), "not enabled")
	assert.ErrorContains(t, MQTTConfig{Enabled: true}.Validate(), "broker address is required")
}
