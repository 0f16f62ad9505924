package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/xaionaro-go/pulsesuppress/pkg/routing"
	"github.com/xaionaro-go/pulsesuppress/pkg/sourcectl"
	"github.com/xaionaro-go/pulsesuppress/pkg/vadcheck"
)

func cmdCheck(ctx context.Context, args []string) {
	fs := pflag.NewFlagSet("check", pflag.ExitOnError)
	seconds := fs.Uint("seconds", 5, "how long to capture")
	device := fs.StringP("device", "d", routing.DenoisedSourceName, "the source to capture from")
	mode := fs.Int("mode", vadcheck.DefaultMode, "VAD aggressiveness (0..3)")
	wavPath := fs.String("wav", "", "also dump the capture to this WAV file")
	fatalIfError(fs.Parse(args))

	if *seconds == 0 {
		fatalf("invalid --seconds value: expected a positive number")
	}

	controller := newController(ctx)
	defer controller.Close()

	capturer, ok := controller.(sourcectl.Capturer)
	if !ok {
		fatalf("the %T backend does not support capturing", controller)
	}

	result, err := vadcheck.Check(ctx, capturer, *device, vadcheck.Options{
		Duration: time.Duration(*seconds) * time.Second,
		Mode:     *mode,
		WAVPath:  *wavPath,
	})
	fatalIfError(err)

	fmt.Printf("captured %d bytes (%d frames)\n", result.Bytes, result.Frames)
	fmt.Printf("voiced frames: %d (%.1f%%)\n", result.VoicedFrames, result.VoicedRatio()*100)
}
