// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 keysounds embedded in sample archives.
//
// Decoding is done by github.com/hajimehoshi/go-mp3. The package adapts its
// byte stream to the audio.Source interface so an MP3 keysound flows through
// the same resampling chain as every other keysound.
//
// # Supported Streams
//
// The decoder accepts:
//   - MPEG-1 and MPEG-2 Layer III
//   - constant and variable bitrates
//   - mono and stereo streams
//
// A payload that starts with an ID3 tag or an MPEG frame sync is recognised
// as MP3 by formats/twodx and routed here through the "mp3" registry entry.
//
// # Decoding
//
//	src, err := mp3.Decoder{}.Decode(bytes.NewReader(payload))
//	if err != nil {
//	    return err // wraps ErrNotMP3
//	}
//	defer src.Close()
//
//	buf := make([]float32, src.BufSize())
//	n, err := src.ReadSamples(buf)
//
// # Output Format
//
// go-mp3 always produces 16-bit stereo, so the Source reports two channels
// regardless of the stream; mono streams come out duplicated. Samples are
// float32 in [-1.0, 1.0] at the stream's own rate.
//
// Frames split across decoder reads are reassembled, so ReadSamples only ever
// returns whole stereo frames. A dangling half frame at the end of the
// stream is dropped.
//
// # Resampling
//
// Keysounds rarely match the output rate. Run the Source through the
// pipeline to get mixable PCM:
//
//	pcm, err := popnwav.Resample16(src, 44100, 2, 4096)
//
// # Limitations
//
//   - decoding only, nothing is ever re-encoded
//   - ID3 tags are skipped, never read
package mp3
