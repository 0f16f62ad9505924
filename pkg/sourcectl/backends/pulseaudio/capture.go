package pulseaudio

import (
	"context"
	"fmt"
	"io"

	"github.com/jfreymuth/pulse"
	"github.com/jfreymuth/pulse/proto"
	"github.com/xaionaro-go/pulsesuppress/pkg/sourcectl/types"
)

var _ types.Capturer = (*Controller)(nil)

// CaptureSource records mono float32le PCM from the named source into
// `rawWriter` until the returned stream is closed.
func (c *Controller) CaptureSource(
	ctx context.Context,
	sourceName string,
	sampleRate int,
	rawWriter io.Writer,
) (types.CaptureStream, error) {
	source, err := c.PulseClient.SourceByID(sourceName)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", types.ErrNoSuchSource, sourceName, err)
	}

	stream, err := c.PulseClient.NewRecord(
		newPulseWriter(rawWriter),
		pulse.RecordSource(source),
		pulse.RecordSampleRate(sampleRate),
		pulse.RecordChannels(proto.ChannelMap{proto.ChannelMono}),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize a record stream: %w", err)
	}

	stream.Start()
	if stream.Error() != nil {
		return nil, fmt.Errorf("an error occurred during recording: %w", stream.Error())
	}

	return newCaptureStream(stream), nil
}

type CaptureStream struct {
	*pulse.RecordStream
}

func newCaptureStream(pulseStream *pulse.RecordStream) *CaptureStream {
	return &CaptureStream{
		RecordStream: pulseStream,
	}
}

// Close stops and closes the stream, but leaves the client alive: it is
// owned by the Controller.
func (stream *CaptureStream) Close() (err error) {
	defer func() {
		r := recover()
		if r != nil {
			err = fmt.Errorf("got a panic: %v", r)
		}
	}()
	stream.RecordStream.Stop()
	stream.RecordStream.Close()
	return
}

type pulseWriter struct {
	io.Writer
}

func newPulseWriter(writer io.Writer) *pulseWriter {
	return &pulseWriter{
		Writer: writer,
	}
}

var _ pulse.Writer = (*pulseWriter)(nil)

func (w pulseWriter) Format() byte {
	return proto.FormatFloat32LE
}
