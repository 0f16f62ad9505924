package routing

import (
	"fmt"
)

// Names of the entities the chain creates inside the audio server. They are
// also how a previously built chain is recognized after a restart.
const (
	NullSinkName       = "rnnoise_mic_denoised_out"
	LadspaSinkName     = "rnnoise_mic_raw_in"
	DenoisedSourceName = "rnnoise_denoised"
)

const (
	moduleNullSink    = "module-null-sink"
	moduleLadspaSink  = "module-ladspa-sink"
	moduleLoopback    = "module-loopback"
	moduleRemapSource = "module-remap-source"
)

// The loopback has no entity name of its own, so its handle is recorded
// under a synthetic key.
const loopbackKey = "loopback"

type chainStep struct {
	Key    string
	Module string
	Args   func(p Params, pluginPath string) string
}

var chainSteps = []chainStep{
	{Key: NullSinkName, Module: moduleNullSink, Args: nullSinkArgs},
	{Key: LadspaSinkName, Module: moduleLadspaSink, Args: ladspaSinkArgs},
	{Key: loopbackKey, Module: moduleLoopback, Args: loopbackArgs},
	{Key: DenoisedSourceName, Module: moduleRemapSource, Args: remapSourceArgs},
}

func nullSinkArgs(p Params, _ string) string {
	return fmt.Sprintf(
		`sink_name=%s rate=%d sink_properties="device.description='RNNoise Null Sink'"`,
		NullSinkName, p.MicRate,
	)
}

func ladspaSinkArgs(p Params, pluginPath string) string {
	return fmt.Sprintf(
		`sink_name=%s sink_master=%s label=noise_suppressor_mono plugin="%s" control=%d `+
			`sink_properties="device.description='RNNoise LADSPA Sink'"`,
		LadspaSinkName, NullSinkName, pluginPath, p.Control,
	)
}

func loopbackArgs(p Params, _ string) string {
	return fmt.Sprintf(
		`source=%s sink=%s channels=1 source_dont_move=true sink_dont_move=true`,
		p.MicName, LadspaSinkName,
	)
}

func remapSourceArgs(Params, string) string {
	return fmt.Sprintf(
		`master=%s.monitor source_name=%s channels=1 `+
			`source_properties="device.description='RNNoise Denoised Microphone'"`,
		NullSinkName, DenoisedSourceName,
	)
}

// isChainSource reports whether a source is one of the chain's own entities
// (the remapped output or a monitor of one of the chain's sinks). Such
// sources must never be offered as an upstream microphone.
func isChainSource(name string) bool {
	switch name {
	case DenoisedSourceName,
		NullSinkName + ".monitor",
		LadspaSinkName + ".monitor":
		return true
	}
	return false
}

func isChainModuleType(moduleName string) bool {
	switch moduleName {
	case moduleNullSink, moduleLadspaSink, moduleLoopback, moduleRemapSource:
		return true
	}
	return false
}
