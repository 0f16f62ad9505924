package vadcheck

import (
	"encoding/binary"
	"fmt"
	"os"
)

// WriteWAV stores mono s16 samples as a RIFF/WAVE file.
func WriteWAV(path string, sampleRate int, samples []int16) (_err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create %q: %w", path, err)
	}
	defer func() {
		if err := file.Close(); err != nil && _err == nil {
			_err = fmt.Errorf("unable to close %q: %w", path, err)
		}
	}()

	const (
		numChannels   = 1
		bitsPerSample = 16
	)
	dataSize := uint32(len(samples) * 2)
	byteRate := uint32(sampleRate * numChannels * bitsPerSample / 8)
	blockAlign := uint16(numChannels * bitsPerSample / 8)

	var header []interface{}
	header = append(header,
		[4]byte{'R', 'I', 'F', 'F'},
		uint32(36+dataSize),
		[4]byte{'W', 'A', 'V', 'E'},
		[4]byte{'f', 'm', 't', ' '},
		uint32(16),
		uint16(1), // PCM
		uint16(numChannels),
		uint32(sampleRate),
		byteRate,
		blockAlign,
		uint16(bitsPerSample),
		[4]byte{'d', 'a', 't', 'a'},
		dataSize,
	)
	for _, field := range header {
		if err := binary.Write(file, binary.LittleEndian, field); err != nil {
			return fmt.Errorf("unable to write the WAV header: %w", err)
		}
	}

	if err := binary.Write(file, binary.LittleEndian, samples); err != nil {
		return fmt.Errorf("unable to write the WAV data: %w", err)
	}
	return nil
}
