// SPDX-License-Identifier: EPL-2.0

package popnwav

import (
	"github.com/ik5/popnwav/audio"
)

// Resample16 runs src through the conversion pipeline and collects the
// result as interleaved 16-bit PCM:
//
//  1. resample to targetRate with the windowed-sinc Resampler
//  2. map the channels to the requested count (mono is duplicated, wider
//     sources are averaged)
//  3. drain everything, rounding each sample to int16
//
// bufferSize is the read size used while draining; 4096 is a good default.
// Reaching the end of src is not an error.
//
// Example:
//
//	src := audio.NewInt16Source(pcm, 22050, 1)
//	stereo, err := popnwav.Resample16(src, 44100, 2, 4096)
//	if err != nil {
//	    return err
//	}
func Resample16(src audio.Source, targetRate, channels, bufferSize int) ([]int16, error) {
	resampler := audio.NewResampler(src, targetRate)
	mapper := audio.NewChannelMapper(resampler, channels)

	return audio.ReadAllInt16(mapper, bufferSize)
}
