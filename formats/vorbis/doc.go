// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis keysounds embedded in sample archives,
// using github.com/jfreymuth/oggvorbis.
//
// Newer archives sometimes store a keysound as a complete Ogg file instead
// of MS ADPCM. formats/twodx recognises the "OggS" capture pattern and the
// keysound is decoded through the "ogg" registry entry.
//
// # Decoding
//
//	src, err := vorbis.Decoder{}.Decode(bytes.NewReader(payload))
//	if err != nil {
//	    return err // wraps ErrNotVorbis
//	}
//	defer src.Close()
//
//	buf := make([]float32, src.BufSize())
//	for {
//	    n, err := src.ReadSamples(buf)
//	    process(buf[:n])
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
//
// # Output Format
//
// The decoder produces float32 samples directly, so no conversion is
// applied:
//   - samples in [-1.0, 1.0]
//   - channels interleaved in the stream's channel order
//   - the sample rate of the stream
//
// ReadSamples trims every read to a whole number of frames. A stream header
// that declares no channels fails with ErrNoChannels.
//
// # Resampling
//
// Feed the Source to popnwav.Resample16 or build the chain by hand:
//
//	res := audio.NewResampler(src, 44100)
//	stereo := audio.NewChannelMapper(res, 2)
//	pcm, err := audio.ReadAllInt16(stereo, 4096)
//
// # Limitations
//
//   - comments and other metadata are ignored
//   - decoding only
package vorbis
