package vadcheck

import (
	"encoding/binary"
	"math"
	"sync"
)

// frameSink converts the float32le capture into s16 frames of FrameSize
// samples and feeds them to the VAD. The audio server delivers writes from
// its own goroutine, so everything is guarded by a mutex.
type frameSink struct {
	locker      sync.Mutex
	vad         VAD
	keepSamples bool

	tail         []byte
	pending      []int16
	samples      []int16
	frames       uint
	voicedFrames uint
	err          error
}

func newFrameSink(vad VAD, keepSamples bool) *frameSink {
	return &frameSink{
		vad:         vad,
		keepSamples: keepSamples,
	}
}

func (sink *frameSink) Write(b []byte) (int, error) {
	sink.locker.Lock()
	defer sink.locker.Unlock()

	n := len(b)
	if len(sink.tail) > 0 {
		b = append(sink.tail, b...)
		sink.tail = nil
	}

	for len(b) >= 4 {
		v := math.Float32frombits(binary.LittleEndian.Uint32(b))
		b = b[4:]
		if v > 1 {
			v = 1
		}
		if v < -1 {
			v = -1
		}
		sink.pending = append(sink.pending, int16(v*math.MaxInt16))
	}
	sink.tail = append(sink.tail, b...)

	for len(sink.pending) >= FrameSize {
		frame := sink.pending[:FrameSize]
		sink.pending = sink.pending[FrameSize:]
		if sink.keepSamples {
			sink.samples = append(sink.samples, frame...)
		}
		if sink.err != nil {
			continue
		}
		voiced, err := sink.vad.Process(frame)
		if err != nil {
			sink.err = err
			continue
		}
		sink.frames++
		if voiced {
			sink.voicedFrames++
		}
	}

	return n, nil
}

func (sink *frameSink) Stats() (frames uint, voicedFrames uint, err error) {
	sink.locker.Lock()
	defer sink.locker.Unlock()
	return sink.frames, sink.voicedFrames, sink.err
}

func (sink *frameSink) Samples() []int16 {
	sink.locker.Lock()
	defer sink.locker.Unlock()
	return sink.samples
}
