// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/popnwav/audio"
)

const formatPCM = 1

type wavSource struct {
	dec        *gowav.Decoder
	buf        *goaudio.IntBuffer
	sampleRate int
	channels   int
	bitDepth   int
	// samples left in the data chunk; anything after it is another chunk
	remaining int
}

func (s *wavSource) SampleRate() int { return s.sampleRate }
func (s *wavSource) Channels() int   { return s.channels }
func (s *wavSource) BufSize() int    { return 4096 }
func (s *wavSource) Close() error    { return nil }

func (s *wavSource) toFloat(v int) float32 {
	if s.bitDepth == 8 {
		// 8-bit WAV is unsigned
		return float32(v-128) / 128
	}
	return float32(v) / float32(int64(1)<<(s.bitDepth-1))
}

func (s *wavSource) ReadSamples(dst []float32) (int, error) {
	if s.remaining < s.channels {
		s.remaining = 0
		return 0, io.EOF
	}

	n := min(len(dst), s.remaining)
	n -= n % s.channels
	if n == 0 {
		return 0, nil
	}

	if cap(s.buf.Data) < n {
		s.buf.Data = make([]int, n)
	}
	s.buf.Data = s.buf.Data[:n]

	got, err := s.dec.PCMBuffer(s.buf)
	if err != nil {
		return 0, fmt.Errorf("%w", err)
	}
	got -= got % s.channels

	for i, v := range s.buf.Data[:got] {
		dst[i] = s.toFloat(v)
	}
	s.remaining -= got

	if got == 0 || s.remaining < s.channels {
		s.remaining = 0
		return got, io.EOF
	}
	return got, nil
}

// Decoder reads uncompressed PCM WAV (8, 16, 24 or 32 bit) such as the
// keysounds some archives embed. Chunks other than fmt and data are skipped.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := gowav.NewDecoder(rs)
	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}
	if dec.NumChans == 0 {
		return nil, ErrNotWavFile
	}

	if dec.WavAudioFormat != formatPCM {
		return nil, fmt.Errorf("%w: format tag %d", ErrOnlyPCMSupported, dec.WavAudioFormat)
	}

	bitDepth := int(dec.BitDepth)
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	if err := dec.FwdToPCM(); err != nil || dec.PCMChunk == nil {
		return nil, ErrMissingData
	}

	return &wavSource{
		dec:        dec,
		buf:        &goaudio.IntBuffer{Data: make([]int, 4096)},
		sampleRate: int(dec.SampleRate),
		channels:   int(dec.NumChans),
		bitDepth:   bitDepth,
		remaining:  dec.PCMSize / (bitDepth / 8),
	}, nil
}
