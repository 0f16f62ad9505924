package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainArgs(t *testing.T) {
	params := Params{
		MicName: "alsa_input.usb-mic",
		MicRate: 44100,
		Control: 42,
	}
	pluginPath := "/usr/lib/ladspa/librnnoise_ladspa.so"

	assert.Equal(t,
		`sink_name=rnnoise_mic_denoised_out rate=44100 sink_properties="device.description='RNNoise Null Sink'"`,
		nullSinkArgs(params, pluginPath),
	)
	assert.Equal(t,
		`sink_name=rnnoise_mic_raw_in sink_master=rnnoise_mic_denoised_out label=noise_suppressor_mono `+
			`plugin="/usr/lib/ladspa/librnnoise_ladspa.so" control=42 `+
			`sink_properties="device.description='RNNoise LADSPA Sink'"`,
		ladspaSinkArgs(params, pluginPath),
	)
	assert.Equal(t,
		`source=alsa_input.usb-mic sink=rnnoise_mic_raw_in channels=1 source_dont_move=true sink_dont_move=true`,
		loopbackArgs(params, pluginPath),
	)
	assert.Equal(t,
		`master=rnnoise_mic_denoised_out.monitor source_name=rnnoise_denoised channels=1 `+
			`source_properties="device.description='RNNoise Denoised Microphone'"`,
		remapSourceArgs(params, pluginPath),
	)
}

func TestChainStepsOrder(t *testing.T) {
	// The ladspa sink refers to the null sink and the loopback refers to
	// the ladspa sink, so the order is part of the contract.
	require.Len(t, chainSteps, 4)
	assert.Equal(t, moduleNullSink, chainSteps[0].Module)
	assert.Equal(t, moduleLadspaSink, chainSteps[1].Module)
	assert.Equal(t, moduleLoopback, chainSteps[2].Module)
	assert.Equal(t, moduleRemapSource, chainSteps[3].Module)
}

func TestParamsValidate(t *testing.T) {
	valid := Params{MicName: "mic", MicRate: 48000, Control: 50}
	require.NoError(t, valid.Validate())

	for name, mutate := range map[string]func(*Params){
		"EmptyMicName":   func(p *Params) { p.MicName = "" },
		"ZeroRate":       func(p *Params) { p.MicRate = 0 },
		"NegativeRate":   func(p *Params) { p.MicRate = -44100 },
		"ControlTooLow":  func(p *Params) { p.Control = -1 },
		"ControlTooHigh": func(p *Params) { p.Control = 101 },
	} {
		t.Run(name, func(t *testing.T) {
			p := valid
			mutate(&p)
			require.Error(t, p.Validate())
		})
	}
}
