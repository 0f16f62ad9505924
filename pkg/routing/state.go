package routing

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xaionaro-go/pulsesuppress/pkg/sourcectl"
	"gopkg.in/yaml.v3"
)

// State is what Activate leaves behind so that a later invocation (a separate
// process) can undo it: the module handles and the source that used to be the
// default. It intentionally contains nothing that cannot be re-checked
// against the live server, since the server may have restarted in between.
type State struct {
	Params            Params                            `yaml:"params"`
	Modules           map[string]sourcectl.ModuleHandle `yaml:"modules"`
	PrevDefaultSource string                            `yaml:"prev_default_source"`
}

func DefaultStatePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("unable to determine the cache directory: %w", err)
	}
	return filepath.Join(cacheDir, "pulsesuppress", "state.yaml"), nil
}

func LoadState(path string) (*State, error) {
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil, ErrNotActivated
	case err != nil:
		return nil, fmt.Errorf("unable to read the state file %q: %w", path, err)
	}

	state := &State{}
	if err := yaml.Unmarshal(b, state); err != nil {
		return nil, fmt.Errorf("unable to parse the state file %q: %w", path, err)
	}
	return state, nil
}

func (state *State) Save(path string) error {
	b, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("unable to serialize the state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("unable to create the state directory: %w", err)
	}
	if err := os.WriteFile(path, b, 0640); err != nil {
		return fmt.Errorf("unable to write the state file %q: %w", path, err)
	}
	return nil
}

func RemoveState(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("unable to remove the state file %q: %w", path, err)
	}
	return nil
}
