// SPDX-License-Identifier: EPL-2.0

package popnwav

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/ik5/popnwav/audio"
	"github.com/ik5/popnwav/formats/aiff"
	"github.com/ik5/popnwav/formats/mp3"
	"github.com/ik5/popnwav/formats/vorbis"
	"github.com/ik5/popnwav/formats/wav"
)

const (
	DefaultOutputRate = 44100
	DefaultChannels   = 2
	DefaultBitDepth   = 32
	DefaultBufferSize = 4096
)

var ErrInvalidOptions = errors.New("invalid options")

// Options controls decoding, mixing and output. Zero fields take the
// defaults of DefaultOptions.
type Options struct {
	// OutputRate is the sample rate every keysound is resampled to.
	OutputRate int
	Channels   int
	// BitDepth of the written WAV: 16, 24 or 32.
	BitDepth int
	// Workers decoding keysounds in parallel.
	Workers    int
	BufferSize int
	// Registry decodes keysounds stored as complete files.
	Registry *audio.Registry
	Logger   *slog.Logger
}

// DefaultRegistry knows every container a keysound can be embedded as.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	return reg
}

func DefaultOptions() Options {
	return Options{
		OutputRate: DefaultOutputRate,
		Channels:   DefaultChannels,
		BitDepth:   DefaultBitDepth,
		Workers:    runtime.NumCPU(),
		BufferSize: DefaultBufferSize,
		Registry:   DefaultRegistry(),
		Logger:     slog.New(slog.DiscardHandler),
	}
}

func (o Options) withDefaults() Options {
	if o.OutputRate == 0 {
		o.OutputRate = DefaultOutputRate
	}
	if o.Channels == 0 {
		o.Channels = DefaultChannels
	}
	if o.BitDepth == 0 {
		o.BitDepth = DefaultBitDepth
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.BufferSize <= 0 {
		o.BufferSize = DefaultBufferSize
	}
	if o.Registry == nil {
		o.Registry = DefaultRegistry()
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

func (o Options) validate() error {
	switch {
	case o.OutputRate < 0:
		return fmt.Errorf("%w: output rate %d", ErrInvalidOptions, o.OutputRate)
	case o.Channels < 0:
		return fmt.Errorf("%w: %d channels", ErrInvalidOptions, o.Channels)
	}
	switch o.BitDepth {
	case 16, 24, 32:
	default:
		return fmt.Errorf("%w: %d bit output", ErrInvalidOptions, o.BitDepth)
	}
	return nil
}
