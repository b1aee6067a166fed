// SPDX-License-Identifier: EPL-2.0

// Package twodx parses .2dx keysound archives.
//
// An archive is a 0x48 byte header (name, header size, keysound count,
// flags) followed by a table of absolute entry offsets. Every entry starts
// with a "2DX9" header and carries one keysound payload, normally a RIFF
// MS ADPCM wave. Parse never copies payload bytes: every KeysoundRecord
// refers into the slice it was given.
//
//	arc, err := twodx.Parse(data)
//	if err != nil {
//	    return err
//	}
//	for _, ks := range arc.Keysounds {
//	    fmt.Println(ks.Index, ks.Codec, ks.SampleRate)
//	}
package twodx
