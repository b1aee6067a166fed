// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
)

// mockSource generates frames from a waveform function. Used in place of a
// decoded keysound.
type mockSource struct {
	sampleRate int
	channels   int
	frames     int // frames to produce in total
	generated  int
	chunk      int // max frames per read, 0 means unbounded
	waveform   func(frame, channel int) float32
	closed     bool
}

func newMockSource(sampleRate, channels, frames int, waveform func(frame, channel int) float32) *mockSource {
	return &mockSource{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		waveform:   waveform,
	}
}

func newSilentSource(sampleRate, channels, frames int) *mockSource {
	return newConstantSource(sampleRate, channels, frames, 0)
}

func newSineSource(sampleRate, channels, frames int, frequency float64) *mockSource {
	return newMockSource(sampleRate, channels, frames, func(frame, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(0.5 * math.Sin(2*math.Pi*frequency*t))
	})
}

func newConstantSource(sampleRate, channels, frames int, value float32) *mockSource {
	return newMockSource(sampleRate, channels, frames, func(int, int) float32 {
		return value
	})
}

func (m *mockSource) SampleRate() int { return m.sampleRate }
func (m *mockSource) Channels() int   { return m.channels }
func (m *mockSource) BufSize() int    { return 4096 }

func (m *mockSource) Close() error {
	m.closed = true
	return nil
}

func (m *mockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/m.channels, m.frames-m.generated)
	if m.chunk > 0 {
		n = min(n, m.chunk)
	}

	for f := range n {
		for ch := range m.channels {
			dst[f*m.channels+ch] = m.waveform(m.generated+f, ch)
		}
	}
	m.generated += n

	if m.generated >= m.frames {
		return n * m.channels, io.EOF
	}
	return n * m.channels, nil
}

// stallSource never produces data and never ends.
type stallSource struct{}

func (stallSource) SampleRate() int                   { return 22050 }
func (stallSource) Channels() int                     { return 1 }
func (stallSource) BufSize() int                      { return 64 }
func (stallSource) Close() error                      { return nil }
func (stallSource) ReadSamples([]float32) (int, error) { return 0, nil }

var errBrokenSource = errors.New("broken source")

// brokenSource fails after the first read.
type brokenSource struct {
	reads int
}

func (*brokenSource) SampleRate() int { return 22050 }
func (*brokenSource) Channels() int   { return 1 }
func (*brokenSource) BufSize() int    { return 64 }
func (*brokenSource) Close() error    { return errBrokenSource }

func (b *brokenSource) ReadSamples(dst []float32) (int, error) {
	b.reads++
	if b.reads > 1 {
		return 0, errBrokenSource
	}
	clear(dst)
	return len(dst), nil
}

// drain reads src until EOF.
func drain(src Source, bufSize int) ([]float32, error) {
	buf := make([]float32, bufSize)
	var out []float32
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
	}
}
