// SPDX-License-Identifier: EPL-2.0

// Package audio provides the streaming primitives used to bring decoded
// keysounds to a common output format.
//
// This package contains:
//   - Source interface for float32 PCM streams
//   - Int16Source and ReadAllInt16 to move between Source and 16-bit PCM
//   - Resampler for band-limited sample rate conversion
//   - ChannelMapper for mono/stereo conversion
//   - Registry mapping embedded container names to decoders
//
// # Source Interface
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Decoders in the formats tree and the processors in this package all
// implement it, so they chain:
//
//	src := audio.NewInt16Source(pcm, 22050, 1)
//	chain := audio.NewResampler(audio.NewChannelMapper(src, 2), 44100)
//	out, err := audio.ReadAllInt16(chain, 4096)
//
// # Resampling
//
// The Resampler convolves the input with a Blackman windowed sinc kernel
// (16 zero crossings). When downsampling, the kernel is stretched so content
// above the new Nyquist frequency is removed instead of aliased. Equal rates
// pass samples through untouched.
//
// # Channel Mapping
//
// ChannelMapper copies mono to every output channel and averages wider input
// down. Keysounds are mixed in stereo, so mono input is duplicated.
//
// # Format Registry
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	src, err := registry.Decode("wav", r)
//
// # Sample Format
//
// Samples are float32 in [-1.0, 1.0]. Conversion to and from int16 uses a
// scale of 32768 and clamps on the way back.
//
// # Error Handling
//
// ReadSamples returns io.EOF once the stream is exhausted, possibly together
// with the last samples. A source that keeps returning no data without an
// error is abandoned with io.ErrNoProgress.
package audio
