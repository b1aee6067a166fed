// SPDX-License-Identifier: EPL-2.0

// Package utils holds small numeric helpers shared by the audio pipeline.
//
// # Sample Conversion
//
// Sources exchange float32 samples in [-1.0, 1.0]. Float32ToInt16 rounds
// and clamps one of them back to 16-bit PCM, Int16ToFloat32 goes the other
// way:
//
//	f := utils.Int16ToFloat32(-16384) // -0.5
//	s := utils.Float32ToInt16(1.2)    // 32767, clamped
//
// # Sinc Kernel
//
// SincTable holds one side of a Blackman-windowed sinc, sampled at a fixed
// number of phases per zero crossing. The window comes from
// github.com/mjibson/go-dsp/window. At interpolates between the stored
// phases with CubicInterpolate, so the resampler can evaluate the kernel at
// any fractional position without calling math.Sin per tap:
//
//	kernel := utils.NewSincTable(16, 512)
//	w := kernel.At(0.25)
//
// A table is read-only once built and safe to share between goroutines.
package utils
