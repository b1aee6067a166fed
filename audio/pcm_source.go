// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"

	"github.com/ik5/popnwav/utils"
)

// Int16Source exposes a decoded keysound as a Source. The backing slice is
// only read, never modified.
type Int16Source struct {
	samples    []int16
	sampleRate int
	channels   int
	pos        int
}

// NewInt16Source wraps interleaved samples. A trailing partial frame is
// ignored.
func NewInt16Source(samples []int16, sampleRate, channels int) *Int16Source {
	if channels > 0 {
		samples = samples[:len(samples)-len(samples)%channels]
	}
	return &Int16Source{
		samples:    samples,
		sampleRate: sampleRate,
		channels:   channels,
	}
}

func (s *Int16Source) SampleRate() int { return s.sampleRate }
func (s *Int16Source) Channels() int   { return s.channels }
func (s *Int16Source) BufSize() int    { return 4096 }
func (s *Int16Source) Close() error    { return nil }

func (s *Int16Source) ReadSamples(dst []float32) (int, error) {
	if s.channels <= 0 {
		return 0, ErrNoChannels
	}
	if s.pos >= len(s.samples) {
		return 0, io.EOF
	}

	// whole frames only
	n := min(len(dst), len(s.samples)-s.pos)
	n -= n % s.channels

	for i, v := range s.samples[s.pos : s.pos+n] {
		dst[i] = utils.Int16ToFloat32(v)
	}
	s.pos += n

	if s.pos >= len(s.samples) {
		return n, io.EOF
	}
	return n, nil
}
