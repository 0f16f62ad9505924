package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/pulsesuppress/pkg/routing"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.ini"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, routing.DefaultControl, cfg.Control)
	assert.Empty(t, cfg.Device)
	assert.Zero(t, cfg.Rate)
}

func TestLoadFull(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte(`
[activate]
device = alsa_input.usb-mic
control = 70
rate = 44100
`), 0640))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Config{
		Device:  "alsa_input.usb-mic",
		Control: 70,
		Rate:    44100,
	}, cfg)
}

func TestLoadPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte(`
[activate]
device = alsa_input.usb-mic

[unrelated]
key = value
`), 0640))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "alsa_input.usb-mic", cfg.Device)
	assert.Equal(t, routing.DefaultControl, cfg.Control)
	assert.Zero(t, cfg.Rate)
}

func TestLoadGarbageValuesFallBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte(`
[activate]
control = not-a-number
`), 0640))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, routing.DefaultControl, cfg.Control)
}
