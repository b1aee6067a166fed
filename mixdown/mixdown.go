// SPDX-License-Identifier: EPL-2.0

package mixdown

import (
	"math"
	"time"

	"github.com/ik5/popnwav/formats/popnchart"
)

// bytes per accumulated sample
const sampleBytes = 4

// Timeline is the mixdown accumulator: interleaved 32-bit samples holding
// the sum of every placed keysound.
type Timeline struct {
	Samples    []int32
	Channels   int
	SampleRate int
	// Peak is the largest absolute sample currently in Samples.
	Peak uint32
	// Scale is the factor Normalize multiplied the samples by; 1 until then.
	Scale int32

	// Placed and Skipped count events that did and did not resolve to a
	// keysound.
	Placed  int
	Skipped int
}

// Bytes is the size of Samples once encoded.
func (t *Timeline) Bytes() uint64 { return uint64(len(t.Samples)) * sampleBytes }

func (t *Timeline) Frames() int {
	if t.Channels <= 0 {
		return 0
	}
	return len(t.Samples) / t.Channels
}

func (t *Timeline) Duration() time.Duration {
	if t.SampleRate <= 0 {
		return 0
	}
	return time.Duration(t.Frames()) * time.Second / time.Duration(t.SampleRate)
}

// SampleOffset converts an event time to an interleaved sample index. The
// millisecond position is floored to a whole frame first.
func SampleOffset(offsetMs uint32, rate, channels int) uint64 {
	return uint64(offsetMs) * uint64(rate) / 1000 * uint64(channels)
}

func lookup(keysounds [][]int16, index int) ([]int16, bool) {
	if index < 0 || index >= len(keysounds) || keysounds[index] == nil {
		return nil, false
	}
	return keysounds[index], true
}

// Length returns the number of samples needed to hold every event: the
// furthest end of any keysound that resolves.
func Length(keysounds [][]int16, events []popnchart.PlayEvent, rate, channels int) uint64 {
	var n uint64
	for _, ev := range events {
		ks, ok := lookup(keysounds, ev.KeysoundIndex)
		if !ok {
			continue
		}
		n = max(n, SampleOffset(ev.OffsetMs, rate, channels)+uint64(len(ks)))
	}
	return n
}

// RequiredBytes is the encoded size of the 32-bit mixdown for events, that
// is the largest offset*4 + len(keysound)*2*2 over every resolving event.
func RequiredBytes(keysounds [][]int16, events []popnchart.PlayEvent, rate, channels int) uint64 {
	return Length(keysounds, events, rate, channels) * sampleBytes
}

// Mix sums keysounds into a new timeline at the offsets given by events.
// Events whose index is out of range or points at a nil keysound are
// counted in Skipped. Sums saturate at the int32 limits, and the peak is
// measured once every event has been added.
func Mix(keysounds [][]int16, events []popnchart.PlayEvent, rate, channels int) *Timeline {
	t := &Timeline{
		Samples:    make([]int32, Length(keysounds, events, rate, channels)),
		Channels:   channels,
		SampleRate: rate,
		Scale:      1,
	}

	for _, ev := range events {
		ks, ok := lookup(keysounds, ev.KeysoundIndex)
		if !ok {
			t.Skipped++
			continue
		}

		off := SampleOffset(ev.OffsetMs, rate, channels)
		dst := t.Samples[off : off+uint64(len(ks))]
		for i, s := range ks {
			dst[i] = addSaturating(dst[i], int32(s))
		}
		t.Placed++
	}

	t.Peak = peak(t.Samples)
	return t
}

func addSaturating(a, b int32) int32 {
	s := int64(a) + int64(b)
	switch {
	case s > math.MaxInt32:
		return math.MaxInt32
	case s < math.MinInt32:
		return math.MinInt32
	}
	return int32(s)
}

func peak(samples []int32) uint32 {
	var p uint32
	for _, s := range samples {
		a := uint32(s)
		if s < 0 {
			a = uint32(-int64(s))
		}
		p = max(p, a)
	}
	return p
}

// Normalize scales every sample by MaxInt32/Peak, truncated and never below
// 1, so the loudest sample lands near full scale. A silent timeline is left
// alone. Peak is updated to the scaled value, which makes a second call a
// no-op.
func (t *Timeline) Normalize() {
	if t.Scale == 0 {
		t.Scale = 1
	}

	scale := int32(1)
	if t.Peak > 0 {
		scale = int32(max(uint32(math.MaxInt32)/t.Peak, 1))
	}
	if scale == 1 {
		return
	}

	for i := range t.Samples {
		t.Samples[i] *= scale
	}
	t.Peak *= uint32(scale)
	t.Scale *= scale
}
