// SPDX-License-Identifier: EPL-2.0

// Package wav reads embedded WAV keysounds and writes the final mixdown.
//
// Both directions go through github.com/go-audio/wav.
//
// # Decoding
//
// Decoder accepts uncompressed PCM at 8, 16, 24 or 32 bits and returns an
// audio.Source of float32 samples in [-1.0, 1.0]:
//
//	src, err := wav.Decoder{}.Decode(bytes.NewReader(payload))
//
// Chunks other than fmt and data are skipped, and nothing after the data
// chunk is read as audio. Compressed WAV (MS ADPCM and friends) is rejected
// with ErrOnlyPCMSupported; archives carrying MS ADPCM are decoded by the
// msadpcm package instead.
//
// # Writing
//
// WritePCM writes interleaved full-scale int32 samples:
//
//	f, _ := os.Create("song.wav")
//	err := wav.WritePCM(f, 44100, 2, 32, timeline.Samples)
//
// The writer must be seekable since the RIFF and data sizes are patched after
// the samples are written.
package wav
