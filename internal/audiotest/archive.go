// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"
)

type riffChunk struct {
	id   string
	data []byte
}

func riffWave(chunks ...riffChunk) []byte {
	body := new(bytes.Buffer)
	body.WriteString("WAVE")
	for _, c := range chunks {
		body.WriteString(c.id)
		binary.Write(body, binary.LittleEndian, uint32(len(c.data)))
		body.Write(c.data)
		if len(c.data)%2 == 1 {
			body.WriteByte(0)
		}
	}

	out := new(bytes.Buffer)
	out.WriteString("RIFF")
	binary.Write(out, binary.LittleEndian, uint32(body.Len()))
	out.Write(body.Bytes())
	return out.Bytes()
}

// ADPCMWave wraps an encoded stream in a RIFF/WAVE container with format tag
// 2 and the default coefficient table.
func ADPCMWave(enc ADPCM, sampleRate, channels int) []byte {
	return ADPCMWaveCoefficients(enc, sampleRate, channels, msadpcmCoefficients)
}

// ADPCMWaveCoefficients is ADPCMWave with an explicit coefficient table.
func ADPCMWaveCoefficients(enc ADPCM, sampleRate, channels int, coefs [][2]int16) []byte {
	f := new(bytes.Buffer)
	binary.Write(f, binary.LittleEndian, uint16(2))
	binary.Write(f, binary.LittleEndian, uint16(channels))
	binary.Write(f, binary.LittleEndian, uint32(sampleRate))
	binary.Write(f, binary.LittleEndian, uint32(sampleRate*enc.BlockAlign/enc.SamplesPerBlock))
	binary.Write(f, binary.LittleEndian, uint16(enc.BlockAlign))
	binary.Write(f, binary.LittleEndian, uint16(4))
	binary.Write(f, binary.LittleEndian, uint16(4+4*len(coefs)))
	binary.Write(f, binary.LittleEndian, uint16(enc.SamplesPerBlock))
	binary.Write(f, binary.LittleEndian, uint16(len(coefs)))
	for _, c := range coefs {
		binary.Write(f, binary.LittleEndian, c)
	}

	fact := make([]byte, 4)
	binary.LittleEndian.PutUint32(fact, uint32(len(enc.Classic)/channels))

	return riffWave(
		riffChunk{"fmt ", f.Bytes()},
		riffChunk{"fact", fact},
		riffChunk{"data", enc.Data},
	)
}

// PCMWave builds a 16-bit PCM RIFF/WAVE file.
func PCMWave(pcm []int16, sampleRate, channels int) []byte {
	f := new(bytes.Buffer)
	binary.Write(f, binary.LittleEndian, uint16(1))
	binary.Write(f, binary.LittleEndian, uint16(channels))
	binary.Write(f, binary.LittleEndian, uint32(sampleRate))
	binary.Write(f, binary.LittleEndian, uint32(sampleRate*channels*2))
	binary.Write(f, binary.LittleEndian, uint16(channels*2))
	binary.Write(f, binary.LittleEndian, uint16(16))

	data := new(bytes.Buffer)
	binary.Write(data, binary.LittleEndian, pcm)

	return riffWave(riffChunk{"fmt ", f.Bytes()}, riffChunk{"data", data.Bytes()})
}

// Entry is one keysound slot of a sample archive.
type Entry struct {
	Payload     []byte
	TrackID     uint16
	FormatFlag  uint16
	Attenuation uint16
	LoopPoint   uint32
	// HeaderSize overrides the entry header size; 0 means 0x18.
	HeaderSize int
}

// Archive describes a .2dx sample archive to build.
type Archive struct {
	Name    []byte
	Legacy  bool
	Entries []Entry
}

const (
	archiveTableOffset = 0x48
	entryHeaderSize    = 0x18
)

// Bytes lays the archive out: fixed header, offset table, then every entry
// in order.
func (a Archive) Bytes() []byte {
	tableEnd := archiveTableOffset + 4*len(a.Entries)

	header := make([]byte, tableEnd)
	copy(header[:16], a.Name)
	binary.LittleEndian.PutUint32(header[0x10:], uint32(tableEnd))
	binary.LittleEndian.PutUint32(header[0x14:], uint32(len(a.Entries)))
	if a.Legacy {
		binary.LittleEndian.PutUint32(header[0x18:], 1)
	}

	body := new(bytes.Buffer)
	for i, e := range a.Entries {
		binary.LittleEndian.PutUint32(header[archiveTableOffset+4*i:], uint32(tableEnd+body.Len()))

		hs := e.HeaderSize
		if hs == 0 {
			hs = entryHeaderSize
		}
		eh := make([]byte, hs)
		copy(eh, "2DX9")
		binary.LittleEndian.PutUint32(eh[0x04:], uint32(hs))
		binary.LittleEndian.PutUint32(eh[0x08:], uint32(len(e.Payload)))
		binary.LittleEndian.PutUint16(eh[0x0E:], e.TrackID)
		binary.LittleEndian.PutUint16(eh[0x10:], e.FormatFlag)
		binary.LittleEndian.PutUint16(eh[0x12:], e.Attenuation)
		binary.LittleEndian.PutUint32(eh[0x14:], e.LoopPoint)

		body.Write(eh)
		body.Write(e.Payload)
	}

	return append(header, body.Bytes()...)
}
