// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"testing"
)

func TestChannelMapper_Passthrough(t *testing.T) {
	t.Parallel()

	src := newMockSource(44100, 2, 50, func(f, ch int) float32 {
		return float32(f*2+ch) / 100
	})
	mapper := NewChannelMapper(src, 2)

	got, err := drain(mapper, 20)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if len(got) != 100 {
		t.Fatalf("len = %d, want 100", len(got))
	}
	for i, v := range got {
		if v != float32(i)/100 {
			t.Fatalf("sample %d = %v, want %v", i, v, float32(i)/100)
		}
	}
}

func TestChannelMapper_MonoToStereo(t *testing.T) {
	t.Parallel()

	src := newMockSource(22050, 1, 10, func(f, _ int) float32 {
		return float32(f) / 10
	})

	got, err := drain(NewChannelMapper(src, 2), 8)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if len(got) != 20 {
		t.Fatalf("len = %d, want 20", len(got))
	}
	for f := range 10 {
		want := float32(f) / 10
		if got[2*f] != want || got[2*f+1] != want {
			t.Errorf("frame %d = (%v, %v), want (%v, %v)", f, got[2*f], got[2*f+1], want, want)
		}
	}
}

func TestChannelMapper_Downmix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		in     int
		out    int
		values []float32 // one frame of input
		want   float32
	}{
		{"stereo to mono", 2, 1, []float32{0.5, -0.25}, 0.125},
		{"stereo cancels", 2, 1, []float32{0.5, -0.5}, 0},
		{"quad to stereo", 4, 2, []float32{0.1, 0.2, 0.3, 0.4}, 0.25},
		{"surround to mono", 6, 1, []float32{0.6, 0.6, 0.6, 0, 0, 0}, 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := newMockSource(44100, tt.in, 3, func(_, ch int) float32 {
				return tt.values[ch]
			})
			got, err := drain(NewChannelMapper(src, tt.out), 64*tt.out)
			if err != nil {
				t.Fatalf("ReadSamples() error = %v", err)
			}
			if len(got) != 3*tt.out {
				t.Fatalf("len = %d, want %d", len(got), 3*tt.out)
			}
			for i, v := range got {
				if diff := v - tt.want; diff > 1e-6 || diff < -1e-6 {
					t.Errorf("sample %d = %v, want %v", i, v, tt.want)
				}
			}
		})
	}
}

func TestChannelMapper_Metadata(t *testing.T) {
	t.Parallel()

	src := newSilentSource(32000, 1, 10)
	mapper := NewChannelMapper(src, 2)

	if mapper.SampleRate() != 32000 {
		t.Errorf("SampleRate() = %d, want 32000", mapper.SampleRate())
	}
	if mapper.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", mapper.Channels())
	}
	if mapper.BufSize() != src.BufSize() {
		t.Errorf("BufSize() = %d, want %d", mapper.BufSize(), src.BufSize())
	}
	if err := mapper.Close(); err != nil || !src.closed {
		t.Errorf("Close() = %v, source closed = %v", err, src.closed)
	}
}

func TestChannelMapper_InvalidInput(t *testing.T) {
	t.Parallel()

	_, err := NewChannelMapper(newSilentSource(44100, 1, 10), 2).ReadSamples(make([]float32, 3))
	if !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("odd dst: error = %v, want ErrInvalidDstSize", err)
	}

	_, err = NewChannelMapper(newSilentSource(44100, 1, 10), 0).ReadSamples(make([]float32, 4))
	if !errors.Is(err, ErrNoChannels) {
		t.Errorf("zero channels: error = %v, want ErrNoChannels", err)
	}

	n, err := NewChannelMapper(newSilentSource(44100, 1, 10), 2).ReadSamples(nil)
	if n != 0 || err != nil {
		t.Errorf("empty dst = %d, %v; want 0, nil", n, err)
	}
}

func TestChannelMapper_EOF(t *testing.T) {
	t.Parallel()

	mapper := NewChannelMapper(newConstantSource(44100, 1, 4, 0.5), 2)
	buf := make([]float32, 100)

	n, err := mapper.ReadSamples(buf)
	if n != 8 || err != io.EOF {
		t.Fatalf("ReadSamples() = %d, %v; want 8, EOF", n, err)
	}
	n, err = mapper.ReadSamples(buf)
	if n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() after EOF = %d, %v; want 0, EOF", n, err)
	}
}

func TestChannelMapper_LargeBuffer(t *testing.T) {
	t.Parallel()

	// bigger than the initial scratch buffer
	src := newConstantSource(44100, 2, 10000, 0.5)
	mapper := NewChannelMapper(src, 1)

	buf := make([]float32, 10000)
	n, err := mapper.ReadSamples(buf)
	if n != 10000 || err != io.EOF {
		t.Fatalf("ReadSamples() = %d, %v; want 10000, EOF", n, err)
	}
	for i, v := range buf {
		if v != 0.5 {
			t.Fatalf("buf[%d] = %v, want 0.5", i, v)
		}
	}
}

func BenchmarkChannelMapper_MonoToStereo(b *testing.B) {
	buf := make([]float32, 4096)

	b.ReportAllocs()
	for b.Loop() {
		m := NewChannelMapper(newSineSource(44100, 1, 44100, 440), 2)
		for {
			_, err := m.ReadSamples(buf)
			if err != nil {
				break
			}
		}
	}
}
