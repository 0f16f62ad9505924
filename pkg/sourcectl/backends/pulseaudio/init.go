package pulseaudio

import (
	"github.com/xaionaro-go/pulsesuppress/pkg/sourcectl/registry"
	"github.com/xaionaro-go/pulsesuppress/pkg/sourcectl/types"
)

const (
	Priority = 100
)

func init() {
	registry.RegisterControllerFactory(Priority, ControllerPulseFactory{})
}

type ControllerPulseFactory struct{}

func (ControllerPulseFactory) NewController() (types.Controller, error) {
	return NewController()
}
