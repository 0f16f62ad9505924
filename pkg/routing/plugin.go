package routing

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	pluginEnvVar     = "PULSESUPPRESS_PLUGIN"
	pluginSONameBase = "librnnoise_ladspa.so"
)

// FindPlugin locates the RNNoise LADSPA binary. The environment variable
// wins; otherwise the usual LADSPA directories are scanned.
func FindPlugin() (string, error) {
	if path := os.Getenv(pluginEnvVar); path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("%s points at %q, but it is not accessible: %w", pluginEnvVar, path, err)
		}
		return path, nil
	}

	var candidateDirs []string
	if home, err := os.UserHomeDir(); err == nil {
		candidateDirs = append(candidateDirs, filepath.Join(home, ".local", "lib", "ladspa"))
	}
	candidateDirs = append(candidateDirs,
		"/usr/lib/ladspa",
		"/usr/local/lib/ladspa",
	)

	for _, dir := range candidateDirs {
		path := filepath.Join(dir, pluginSONameBase)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf(
		"unable to find %s in %v; set %s to the full path of the plugin",
		pluginSONameBase, candidateDirs, pluginEnvVar,
	)
}
