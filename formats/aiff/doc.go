// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes uncompressed AIFF keysounds through
// github.com/go-audio/aiff.
//
// AIFF keysounds are rare, but some custom archives store samples taken
// from other tools as-is. formats/twodx recognises the "FORM" header and
// the keysound is decoded through the "aiff" registry entry.
//
// # Supported Files
//
// The decoder accepts:
//   - AIFF with PCM samples
//   - 8, 16, 24 and 32-bit sample sizes
//   - any channel count the COMM chunk declares
//
// Other sample sizes fail with ErrUnsupportedBitDepth, a missing or unusable
// COMM chunk with ErrUnsupportedAiffLayout and anything that is not AIFF at
// all with ErrNotAiffFile.
//
// # Decoding
//
//	src, err := aiff.Decoder{}.Decode(bytes.NewReader(payload))
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
//	buf := make([]float32, src.BufSize())
//	n, err := src.ReadSamples(buf)
//
// go-audio needs to seek, so input that is not an io.ReadSeeker is read into
// memory first. Keysounds are small and already in memory as part of the
// archive, so this costs nothing in practice.
//
// # Output Format
//
// AIFF samples are signed big-endian at every depth. They are scaled by
// 2^(bits-1) into float32 in [-1.0, 1.0], interleaved, at the file's sample
// rate. ReadSamples only returns whole frames; go-audio reports the end of
// the SSND chunk as an empty read, which is turned into io.EOF.
//
// # Resampling
//
//	pcm, err := popnwav.Resample16(src, 44100, 2, 4096)
//
// # Limitations
//
//   - markers and instrument loops are ignored
//   - decoding only
package aiff
