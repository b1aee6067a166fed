// SPDX-License-Identifier: EPL-2.0

// Package msadpcm decompresses Microsoft ADPCM keysounds to 16-bit PCM.
//
// Each block starts with a per-channel header (predictor index, initial
// delta, sample1, sample2) followed by 4-bit codes, high nibble first. For
// stereo the high nibble belongs to the left channel. Blocks are independent,
// so a block's predictor state never leaks into the next one.
//
//	pcm, err := msadpcm.Decode(data, msadpcm.Params{
//	    Channels:   2,
//	    BlockAlign: 2048,
//	    Layout:     msadpcm.LayoutFromFlag(entryFlag),
//	})
//
// Archives differ in whether the two header samples are part of the output;
// Layout selects between the two.
package msadpcm
