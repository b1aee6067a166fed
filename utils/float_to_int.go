// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Float32ToInt16 maps a [-1,1] sample onto the int16 range, rounding to the
// nearest step. Values outside the range are clamped.
func Float32ToInt16(x float32) int16 {
	v := math.Round(float64(x) * 32768.0)
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}

// Int16ToFloat32 is the inverse of Float32ToInt16 for every int16 value.
func Int16ToFloat32(v int16) float32 {
	return float32(v) / 32768.0
}
