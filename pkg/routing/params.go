package routing

import (
	"fmt"
)

const (
	ControlMin = 0
	ControlMax = 100

	DefaultControl = 50
)

// Params is everything the chain needs to be built: the upstream microphone,
// its sample rate and the suppression control level handed to the plugin.
type Params struct {
	MicName string `yaml:"mic_name"`
	MicRate int    `yaml:"mic_rate"`
	Control int    `yaml:"control"`
}

func (p Params) Validate() error {
	if p.MicName == "" {
		return fmt.Errorf("no microphone selected")
	}
	if p.MicRate <= 0 {
		return fmt.Errorf("invalid sample rate %d: expected a positive value", p.MicRate)
	}
	if p.Control < ControlMin || p.Control > ControlMax {
		return fmt.Errorf("invalid control level %d: expected a value in [%d..%d]", p.Control, ControlMin, ControlMax)
	}
	return nil
}
