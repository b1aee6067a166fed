// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"math"

	"github.com/ik5/popnwav/utils"
)

const (
	// lobes of the sinc kernel on each side of the output point
	sincZeroCrossings = 16
	// table resolution per lobe; values in between are interpolated
	sincPhases = 512
)

// shared between every Resampler; the table is read-only once built
var sincKernel = utils.NewSincTable(sincZeroCrossings, sincPhases)

// Resampler streams src to a target sample rate using band-limited
// (windowed-sinc) interpolation. Works on interleaved samples and preserves
// the channel count. When downsampling the kernel is stretched so its cutoff
// sits at the destination Nyquist frequency.
//
// Input past either end of the stream is treated as silence, and the output
// holds ceil(inputFrames * dstRate / srcRate) frames.
type Resampler struct {
	src      Source
	srcRate  int
	dstRate  int
	step     float64 // source frames advanced per output frame
	channels int

	// cutoff relative to the source Nyquist, <= 1
	cutoff float64
	// source frames read on each side of the output point
	halfWidth int

	// hist holds interleaved source frames starting at absolute frame base
	hist []float32
	base int

	// output frames produced so far; the next one sits at produced*step
	produced int

	srcBuf []float32
	eof    bool
	total  int // number of source frames, valid once eof is set
	done   bool
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	srcRate := src.SampleRate()

	step := 1.0
	if dstRate > 0 {
		step = float64(srcRate) / float64(dstRate)
	}

	cutoff := 1.0
	if step > 1 {
		cutoff = 1 / step
	}

	bufSize := 4096
	if channels > 0 {
		bufSize -= bufSize % channels
	}

	return &Resampler{
		src:       src,
		srcRate:   srcRate,
		dstRate:   dstRate,
		step:      step,
		channels:  channels,
		cutoff:    cutoff,
		halfWidth: int(math.Ceil(float64(sincZeroCrossings)/cutoff)) + 1,
		srcBuf:    make([]float32, bufSize),
	}
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	err := r.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// Passthrough reports whether the rates match and samples are forwarded
// untouched.
func (r *Resampler) Passthrough() bool { return r.srcRate == r.dstRate }

func (r *Resampler) frames() int { return len(r.hist) / r.channels }

// fill reads from src until frame upTo is buffered or the source ends.
func (r *Resampler) fill(upTo int) error {
	idle := 0
	for !r.eof && r.base+r.frames() <= upTo {
		n, err := r.src.ReadSamples(r.srcBuf)
		n -= n % r.channels
		r.hist = append(r.hist, r.srcBuf[:n]...)

		if n == 0 && err == nil {
			idle++
			if idle >= maxIdleReads {
				return io.ErrNoProgress
			}
			continue
		}
		idle = 0

		if err == io.EOF {
			r.eof = true
			r.total = r.base + r.frames()
			break
		}
		if err != nil {
			return fmt.Errorf("%w", err)
		}
	}
	return nil
}

// discard drops buffered frames before absolute frame keep.
func (r *Resampler) discard(keep int) {
	drop := keep - r.base
	if drop <= 0 {
		return
	}
	drop = min(drop, r.frames())

	// only compact once a meaningful amount can go
	if drop*r.channels < len(r.srcBuf) {
		return
	}

	n := copy(r.hist, r.hist[drop*r.channels:])
	r.hist = r.hist[:n]
	r.base += drop
}

// ReadSamples produces dst samples at the destination rate.
// dst length should be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if r.channels <= 0 {
		return 0, ErrNoChannels
	}
	if r.srcRate <= 0 || r.dstRate <= 0 {
		return 0, ErrNoSampleRate
	}
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if r.Passthrough() {
		return r.src.ReadSamples(dst)
	}

	if r.done {
		return 0, io.EOF
	}

	written := 0
	framesNeeded := len(dst) / r.channels

	for written < framesNeeded {
		pos := float64(r.produced) * r.step
		center := int(math.Floor(pos))
		first := center - r.halfWidth + 1
		last := center + r.halfWidth

		if err := r.fill(last); err != nil {
			return written * r.channels, err
		}

		// integer form keeps the frame count exact for any rate pair
		if r.eof && int64(r.produced)*int64(r.srcRate) >= int64(r.total)*int64(r.dstRate) {
			r.done = true
			return written * r.channels, io.EOF
		}

		out := dst[written*r.channels : (written+1)*r.channels]
		clear(out)

		available := r.base + r.frames()
		for k := max(first, r.base, 0); k <= last && k < available; k++ {
			w := float32(r.cutoff) * sincKernel.At(r.cutoff*(pos-float64(k)))
			if w == 0 {
				continue
			}
			frame := r.hist[(k-r.base)*r.channels:]
			for c := range out {
				out[c] += w * frame[c]
			}
		}

		written++
		r.produced++
		r.discard(int(math.Floor(float64(r.produced)*r.step)) - r.halfWidth + 1)
	}

	return written * r.channels, nil
}
