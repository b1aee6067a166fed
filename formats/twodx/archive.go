// SPDX-License-Identifier: EPL-2.0

package twodx

import (
	"bytes"
	"encoding/binary"
	"strings"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

const (
	nameSize     = 0x10
	tableOffset  = 0x48
	entryMinSize = 0x18
	entryMagic   = "2DX9"

	// header flag: the background track is stored last
	flagLegacy = 1 << 0
)

// Generation tells the two archive generations apart. Older archives also
// use the older chart layout.
type Generation int

const (
	GenerationModern Generation = iota
	GenerationLegacy
)

func (g Generation) String() string {
	switch g {
	case GenerationModern:
		return "modern"
	case GenerationLegacy:
		return "legacy"
	default:
		return "unknown"
	}
}

// Codec names how a keysound payload must be decoded.
type Codec int

const (
	// CodecMSADPCM means Data holds raw MS ADPCM blocks described by the
	// record's wave fields.
	CodecMSADPCM Codec = iota
	// CodecEmbedded means Data is a complete file in Container format.
	CodecEmbedded
)

func (c Codec) String() string {
	switch c {
	case CodecMSADPCM:
		return "msadpcm"
	case CodecEmbedded:
		return "embedded"
	default:
		return "unknown"
	}
}

// KeysoundRecord is one archive entry. Index is its zero-based position in
// the archive, which is how charts refer to it.
type KeysoundRecord struct {
	Index int
	// Data aliases the archive bytes.
	Data []byte

	SampleRate      int
	Channels        int
	BitsPerSample   int
	BlockAlign      int
	SamplesPerBlock int
	// Coefficients is the predictor table from the fmt chunk; nil when the
	// payload does not carry one.
	Coefficients [][2]int16

	Codec Codec
	// Container is the registry format name for CodecEmbedded payloads.
	Container string

	FormatFlag  uint16
	TrackID     uint16
	Attenuation uint16
	LoopPoint   uint32
}

// Archive is a parsed .2dx file.
type Archive struct {
	RawName   [nameSize]byte
	Flags     uint32
	Keysounds []KeysoundRecord
}

// Name returns the raw name bytes up to the first zero.
func (a *Archive) Name() []byte {
	name, _, _ := bytes.Cut(a.RawName[:], []byte{0})
	return name
}

// DisplayName decodes the name from Shift-JIS. Bytes that are not valid
// Shift-JIS are replaced rather than failing.
func (a *Archive) DisplayName() string {
	name := a.Name()
	out, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), name)
	if err != nil {
		return strings.ToValidUTF8(string(name), "�")
	}
	return string(out)
}

func (a *Archive) Generation() Generation {
	if a.Flags&flagLegacy != 0 {
		return GenerationLegacy
	}
	return GenerationModern
}

// Parse reads the archive header, the offset table and every entry. The
// returned archive keeps sub-slices of data.
func Parse(data []byte) (*Archive, error) {
	if len(data) < tableOffset {
		return nil, &FormatError{Offset: int64(len(data)), Entry: -1, Err: ErrTruncated}
	}

	le := binary.LittleEndian
	declared := uint64(le.Uint32(data[0x10:]))
	count := uint64(le.Uint32(data[0x14:]))

	tableEnd := tableOffset + 4*count
	if tableEnd > uint64(len(data)) {
		return nil, &FormatError{Offset: tableOffset, Entry: -1, Err: ErrTruncated}
	}
	if declared < tableEnd || declared > uint64(len(data)) {
		return nil, &FormatError{Offset: 0x10, Entry: -1, Err: ErrTableBounds}
	}

	arc := &Archive{
		Flags:     le.Uint32(data[0x18:]),
		Keysounds: make([]KeysoundRecord, 0, count),
	}
	copy(arc.RawName[:], data[:nameSize])

	for i := range int(count) {
		off := uint64(le.Uint32(data[tableOffset+4*i:]))
		ks, err := parseEntry(data, i, off, declared)
		if err != nil {
			return nil, err
		}
		arc.Keysounds = append(arc.Keysounds, ks)
	}

	return arc, nil
}

func parseEntry(data []byte, index int, off, minOff uint64) (KeysoundRecord, error) {
	fail := func(at uint64, err error) error {
		return &FormatError{Offset: int64(at), Entry: index, Err: err}
	}

	if off < minOff || off+entryMinSize > uint64(len(data)) {
		return KeysoundRecord{}, fail(off, ErrTableBounds)
	}

	le := binary.LittleEndian
	e := data[off:]
	if string(e[:4]) != entryMagic {
		return KeysoundRecord{}, fail(off, ErrBadMagic)
	}

	headerSize := uint64(le.Uint32(e[0x04:]))
	if headerSize < entryMinSize {
		return KeysoundRecord{}, fail(off, ErrEntryHeader)
	}
	start := off + headerSize
	end := start + uint64(le.Uint32(e[0x08:]))
	if end > uint64(len(data)) {
		return KeysoundRecord{}, fail(off, ErrTableBounds)
	}

	ks := KeysoundRecord{
		Index:       index,
		TrackID:     le.Uint16(e[0x0E:]),
		FormatFlag:  le.Uint16(e[0x10:]),
		Attenuation: le.Uint16(e[0x12:]),
		LoopPoint:   le.Uint32(e[0x14:]),
	}
	if err := ks.describe(data[start:end]); err != nil {
		return KeysoundRecord{}, fail(start, err)
	}
	return ks, nil
}

// describe fills the codec fields from the payload's leading bytes.
func (ks *KeysoundRecord) describe(payload []byte) error {
	embedded := func(container string) error {
		ks.Codec = CodecEmbedded
		ks.Container = container
		ks.Data = payload
		return nil
	}

	switch {
	case bytes.HasPrefix(payload, []byte("RIFF")):
		return ks.describeWave(payload)
	case bytes.HasPrefix(payload, []byte("OggS")):
		return embedded("ogg")
	case bytes.HasPrefix(payload, []byte("FORM")):
		return embedded("aiff")
	case bytes.HasPrefix(payload, []byte("ID3")), mpegSync(payload):
		return embedded("mp3")
	}
	return ErrUnknownPayload
}

// mpegSync reports an MPEG audio frame header: 11 set sync bits.
func mpegSync(b []byte) bool {
	return len(b) >= 2 && b[0] == 0xFF && b[1]&0xE0 == 0xE0
}
