// SPDX-License-Identifier: EPL-2.0

// Package mixdown places decoded keysounds on a single timeline.
//
// The timeline is sized up front from the chart events, so nothing is
// reallocated while mixing. Every keysound sample is added into a 32-bit
// accumulator, which leaves headroom for many 16-bit keysounds playing at
// once; Normalize then stretches the result back to full scale.
//
//	tl := mixdown.Mix(keysounds, chart.Events, 44100, 2)
//	tl.Normalize()
package mixdown
