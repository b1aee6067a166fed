// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"

	"github.com/mjibson/go-dsp/window"
)

// SincTable is a Blackman windowed sinc sampled at a fixed number of phases
// per zero crossing. Only the non-negative half is stored; the kernel is even.
type SincTable struct {
	values        []float32
	zeroCrossings int
	phases        int
}

// NewSincTable builds a kernel spanning zeroCrossings lobes on each side.
func NewSincTable(zeroCrossings, phases int) *SincTable {
	half := zeroCrossings*phases + 1
	w := window.Blackman(2*half - 1)

	// two guard points past the last crossing keep At's 4-point lookup in range
	values := make([]float32, half+2)
	for i := range half {
		x := float64(i) / float64(phases)
		values[i] = float32(sinc(x) * w[half-1+i])
	}

	return &SincTable{
		values:        values,
		zeroCrossings: zeroCrossings,
		phases:        phases,
	}
}

// ZeroCrossings returns the one-sided width of the kernel.
func (t *SincTable) ZeroCrossings() int { return t.zeroCrossings }

// At evaluates the kernel at x, measured in zero crossings.
func (t *SincTable) At(x float64) float32 {
	if x < 0 {
		x = -x
	}
	if x >= float64(t.zeroCrossings) {
		return 0
	}

	pos := x * float64(t.phases)
	i := int(pos)
	frac := float32(pos - float64(i))

	// mirror across zero for the point left of the origin
	var y0 float32
	if i == 0 {
		y0 = t.values[1]
	} else {
		y0 = t.values[i-1]
	}
	return CubicInterpolate(y0, t.values[i], t.values[i+1], t.values[i+2], frac)
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}
