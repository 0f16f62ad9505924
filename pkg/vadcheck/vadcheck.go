// Package vadcheck captures audio from a source and measures how much of it
// the voice activity detector considers speech. It exists to verify that a
// denoised source actually produces voice and not silence (or noise).
package vadcheck

import (
	"context"
	"fmt"
	"time"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/josharian/fvad"
	"github.com/xaionaro-go/datacounter"
	"github.com/xaionaro-go/pulsesuppress/pkg/sourcectl"
)

const (
	// The RNNoise plugin operates on 48 kHz audio, so the verification
	// capture does too. 480 samples is the 10ms frame libfvad accepts at
	// that rate.
	SampleRate = 48000
	FrameSize  = 480

	DefaultMode = 2
)

// VAD consumes one frame of s16 samples and reports whether it contains
// voice.
type VAD interface {
	Process(frame []int16) (bool, error)
}

type Result struct {
	Frames       uint
	VoicedFrames uint
	Bytes        uint64
}

func (r Result) VoicedRatio() float64 {
	if r.Frames == 0 {
		return 0
	}
	return float64(r.VoicedFrames) / float64(r.Frames)
}

type Options struct {
	Duration time.Duration
	Mode     int
	WAVPath  string
}

// Check records from the named source for the requested duration and returns
// the voiced-frame statistics. If Options.WAVPath is set, the capture is
// also written there as a 16-bit mono WAV.
func Check(
	ctx context.Context,
	capturer sourcectl.Capturer,
	sourceName string,
	opts Options,
) (Result, error) {
	if opts.Duration <= 0 {
		return Result{}, fmt.Errorf("invalid capture duration %v", opts.Duration)
	}

	detector := fvad.NewDetector()
	defer detector.Close()
	if err := detector.SetSampleRate(SampleRate); err != nil {
		return Result{}, fmt.Errorf("unable to set the VAD sample rate: %w", err)
	}
	if err := detector.SetMode(opts.Mode); err != nil {
		return Result{}, fmt.Errorf("unable to set the VAD mode %d: %w", opts.Mode, err)
	}

	sink := newFrameSink(detector, opts.WAVPath != "")
	wc := datacounter.NewWriterCounter(sink)

	stream, err := capturer.CaptureSource(ctx, sourceName, SampleRate, wc)
	if err != nil {
		return Result{}, fmt.Errorf("unable to capture from %q: %w", sourceName, err)
	}

	select {
	case <-ctx.Done():
	case <-time.After(opts.Duration):
	}
	if err := stream.Close(); err != nil {
		logger.Debugf(ctx, "unable to close the capture stream: %v", err)
	}

	frames, voiced, err := sink.Stats()
	if err != nil {
		return Result{}, fmt.Errorf("the VAD failed during the capture: %w", err)
	}

	if opts.WAVPath != "" {
		if err := WriteWAV(opts.WAVPath, SampleRate, sink.Samples()); err != nil {
			return Result{}, err
		}
		logger.Infof(ctx, "wrote the capture to %s", opts.WAVPath)
	}

	return Result{
		Frames:       frames,
		VoicedFrames: voiced,
		Bytes:        wc.Count(),
	}, nil
}
