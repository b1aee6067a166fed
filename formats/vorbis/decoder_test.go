// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"slices"
	"testing"
)

// mockOggVorbisReader simulates oggvorbis.Reader. packet caps the values
// returned per read the way a decoded Vorbis packet does.
type mockOggVorbisReader struct {
	sampleRate int
	channels   int
	samples    []float32
	offset     int
	packet     int
	err        error
}

func (m *mockOggVorbisReader) SampleRate() int { return m.sampleRate }
func (m *mockOggVorbisReader) Channels() int   { return m.channels }

func (m *mockOggVorbisReader) Read(buf []float32) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}

	n := min(len(buf), len(m.samples)-m.offset)
	if m.packet > 0 {
		n = min(n, m.packet)
	}
	copy(buf, m.samples[m.offset:m.offset+n])
	m.offset += n
	return n, nil
}

func newSource(channels, packet int, samples []float32) *source {
	return &source{
		dec:        &mockOggVorbisReader{sampleRate: 44100, channels: channels, samples: samples, packet: packet},
		sampleRate: 44100,
		channels:   channels,
	}
}

func readAll(t *testing.T, src *source, bufSize int) []float32 {
	t.Helper()

	var out []float32
	buf := make([]float32, bufSize)
	for range 10000 {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
	t.Fatal("ReadSamples() never reached EOF")
	return nil
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for _, data := range [][]byte{nil, []byte("This is not Ogg Vorbis data")} {
		_, err := Decoder{}.Decode(bytes.NewReader(data))
		if !errors.Is(err, ErrNotVorbis) {
			t.Errorf("Decode(%q) error = %v, want ErrNotVorbis", data, err)
		}
	}
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	src := newSource(1, 0, nil)
	if src.SampleRate() != 44100 || src.Channels() != 1 {
		t.Errorf("format = %d Hz %d ch, want 44100 Hz 1 ch", src.SampleRate(), src.Channels())
	}
	if src.BufSize() <= 0 {
		t.Errorf("BufSize() = %d, want positive", src.BufSize())
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	samples := []float32{0, 0.5, -0.5, 1, -1, 0.25, -0.25, 0}

	tests := []struct {
		name     string
		channels int
		packet   int
		bufSize  int
	}{
		{"mono", 1, 0, 64},
		{"stereo", 2, 0, 64},
		{"stereo small packets", 2, 2, 3},
		{"quad", 4, 4, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := readAll(t, newSource(tt.channels, tt.packet, samples), tt.bufSize)
			if !slices.Equal(got, samples) {
				t.Errorf("samples = %v, want %v", got, samples)
			}
		})
	}
}

func TestSource_BufferSmallerThanFrame(t *testing.T) {
	t.Parallel()

	n, err := newSource(2, 0, []float32{1, 2}).ReadSamples(make([]float32, 1))
	if n != 0 || err != nil {
		t.Errorf("ReadSamples() = %d, %v; want 0, nil", n, err)
	}
}

func TestSource_ReadError(t *testing.T) {
	t.Parallel()

	src := newSource(2, 0, []float32{1, 2})
	src.dec.(*mockOggVorbisReader).err = io.ErrUnexpectedEOF

	_, err := src.ReadSamples(make([]float32, 8))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSamples() error = %v, want io.ErrUnexpectedEOF", err)
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	samples := make([]float32, 44100*2)
	buf := make([]float32, 4096)

	b.ReportAllocs()
	for b.Loop() {
		src := newSource(2, 1024, samples)
		for {
			_, err := src.ReadSamples(buf)
			if err != nil {
				break
			}
		}
	}
}
