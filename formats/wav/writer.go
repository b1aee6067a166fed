// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
)

// samples per encoder call
const chunkSize = 8192

// WritePCM writes interleaved samples as a PCM WAV file. Samples are
// full-scale 32-bit values; with a bitDepth of 16 or 24 only the most
// significant bits are kept. The header sizes are patched once every sample
// is written, hence the io.WriteSeeker.
func WritePCM(w io.WriteSeeker, sampleRate, channels, bitDepth int, samples []int32) error {
	if channels <= 0 {
		return ErrInvalidChannels
	}
	if sampleRate <= 0 {
		return ErrInvalidSampleRate
	}
	switch bitDepth {
	case 16, 24, 32:
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
	if len(samples)%channels != 0 {
		return ErrPartialFrame
	}

	enc := gowav.NewEncoder(w, sampleRate, bitDepth, channels, formatPCM)
	shift := 32 - bitDepth

	step := chunkSize - chunkSize%channels
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           make([]int, 0, min(len(samples), step)),
		SourceBitDepth: bitDepth,
	}

	// an empty buffer still makes the encoder emit its headers
	if len(samples) == 0 {
		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	for i := 0; i < len(samples); i += step {
		chunk := samples[i:min(i+step, len(samples))]

		buf.Data = buf.Data[:len(chunk)]
		for j, v := range chunk {
			buf.Data[j] = int(v >> shift)
		}

		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}
