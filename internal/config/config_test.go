package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	defaults := GetDefault()
	assert.Equal(t, defaults.Media.BaseURL, cfg.Media.BaseURL)
	assert.Equal(t, defaults.Index.Type, cfg.Index.Type)
	assert.Equal(t, defaults.Index.SQLite.Path, cfg.Index.SQLite.Path)
	assert.Equal(t, defaults.Log.Level, cfg.Log.Level)
	assert.Equal(t, defaults.Log.Rotation.MaxBackups, cfg.Log.Rotation.MaxBackups)
}

func TestLoadConfigOverride(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("media.base_url", "https://cdn.example.com/")
	viper.Set("index.sqlite.path", "/tmp/refs.db")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/", cfg.Media.BaseURL)
	assert.Equal(t, "/tmp/refs.db", cfg.Index.SQLite.Path)
}
