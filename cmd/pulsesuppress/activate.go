package main

import (
	"context"
	"errors"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/fatih/color"
	"github.com/spf13/pflag"
	"github.com/xaionaro-go/pulsesuppress/pkg/config"
	"github.com/xaionaro-go/pulsesuppress/pkg/routing"
	"github.com/xaionaro-go/pulsesuppress/pkg/sourcectl"
)

func cmdActivate(ctx context.Context, args []string) {
	fs := pflag.NewFlagSet("activate", pflag.ExitOnError)
	device := fs.StringP("device", "d", "", "input device name or number (see 'pulsesuppress list'); default: the default input device")
	rate := fs.IntP("rate", "r", 0, "microphone sample rate in Hz; 0 means: take it from the device")
	control := fs.IntP("control", "c", routing.DefaultControl, "control level between 0 and 100")
	prompt := fs.Bool("prompt", true, "when no device is configured, prompt instead of using the default device")
	setDefault := fs.Bool("set-default", true, "set the denoised device as the default device")
	fatalIfError(fs.Parse(args))

	configPath, err := config.DefaultPath()
	fatalIfError(err)
	cfg, err := config.Load(configPath)
	fatalIfError(err)
	if !fs.Changed("device") {
		*device = cfg.Device
	}
	if !fs.Changed("control") {
		*control = cfg.Control
	}
	if !fs.Changed("rate") {
		*rate = cfg.Rate
	}

	// Everything below talks to the audio server, so value checks go first.
	if *control < routing.ControlMin || *control > routing.ControlMax {
		fatalf("invalid control level %d: expected a value in [%d..%d]", *control, routing.ControlMin, routing.ControlMax)
	}
	if *rate < 0 {
		fatalf("invalid rate %d: expected a positive value (or 0 for auto)", *rate)
	}

	controller := newController(ctx)
	defer controller.Close()
	router := newRouter(controller, true)

	var source sourcectl.Source
	if *device == "" && *prompt {
		source, err = promptDevice(ctx, router)
	} else {
		source, err = router.SelectSource(ctx, *device)
	}
	fatalIfError(err)

	micRate := *rate
	if micRate == 0 {
		micRate = source.SampleRate
	}

	params := routing.Params{
		MicName: source.Name,
		MicRate: micRate,
		Control: *control,
	}
	logger.Infof(ctx, "selected params: device=%q rate=%d control=%d", params.MicName, params.MicRate, params.Control)

	_, err = router.Activate(ctx, params, *setDefault)
	fatalIfError(err)

	if active, _, err := router.Status(ctx); err == nil && active {
		color.Green("Activated!")
	} else if err != nil {
		fatalIfError(err)
	} else {
		fatalf("the chain was loaded, but the source %q did not appear", routing.DenoisedSourceName)
	}
}

var errPromptAborted = errors.New("device selection aborted")
