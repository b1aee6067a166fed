// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/popnwav/utils"
)

const maxIdleReads = 100

// ReadAllInt16 drains src and returns its samples as interleaved 16-bit PCM.
// bufferSize is rounded down to a whole number of frames.
func ReadAllInt16(src Source, bufferSize int) ([]int16, error) {
	channels := src.Channels()
	if channels <= 0 {
		return nil, ErrNoChannels
	}

	bufferSize -= bufferSize % channels
	if bufferSize <= 0 {
		bufferSize = channels * 1024
	}

	var pcm16 []int16
	buf := make([]float32, bufferSize)
	idle := 0

	for {
		n, err := src.ReadSamples(buf)
		for i := range n {
			pcm16 = append(pcm16, utils.Float32ToInt16(buf[i]))
		}

		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}

		// some decoders return empty reads between frames; only give up on a
		// source that keeps doing so
		if n == 0 {
			idle++
			if idle >= maxIdleReads {
				return nil, io.ErrNoProgress
			}
			continue
		}
		idle = 0
	}

	return pcm16, nil
}
