package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xaionaro-go/pulsesuppress/pkg/routing"
	"gopkg.in/ini.v1"
)

// Config mirrors the `[activate]` section of the user's INI file. Zero
// values mean "not configured": an empty device triggers the interactive
// prompt and a zero rate is resolved from the selected source.
type Config struct {
	Device  string
	Control int
	Rate    int
}

func Default() Config {
	return Config{
		Control: routing.DefaultControl,
	}
}

func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("unable to determine the config directory: %w", err)
	}
	return filepath.Join(configDir, "pulsesuppress", "config.ini"), nil
}

// Load reads the INI file at `path`. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	file, err := ini.LooseLoad(path)
	if err != nil {
		return Config{}, fmt.Errorf("unable to parse the config file %q: %w", path, err)
	}

	section := file.Section("activate")
	cfg.Device = section.Key("device").MustString(cfg.Device)
	cfg.Control = section.Key("control").MustInt(cfg.Control)
	cfg.Rate = section.Key("rate").MustInt(cfg.Rate)
	return cfg, nil
}
