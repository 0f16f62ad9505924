package sourcectl

import (
	"github.com/xaionaro-go/pulsesuppress/pkg/sourcectl/types"
)

type (
	Controller    = types.Controller
	Capturer      = types.Capturer
	CaptureStream = types.CaptureStream
	Source        = types.Source
	Module        = types.Module
	ModuleHandle  = types.ModuleHandle
	SourceOutput  = types.SourceOutput
)

var ErrNoSuchSource = types.ErrNoSuchSource
