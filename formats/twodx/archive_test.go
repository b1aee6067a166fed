// SPDX-License-Identifier: EPL-2.0

package twodx

import (
	"bytes"
	"encoding/binary"
	"errors"
	"slices"
	"testing"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"

	"github.com/ik5/popnwav/formats/msadpcm"
	"github.com/ik5/popnwav/internal/audiotest"
)

type chunk struct {
	id   string
	data []byte
}

func riffPayload(form string, chunks ...chunk) []byte {
	body := new(bytes.Buffer)
	body.WriteString(form)
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

func fmtChunk(fields ...uint16) chunk {
	// tag, channels, rate lo, rate hi, byte rate lo, byte rate hi, align, bits, ...
	b := new(bytes.Buffer)
	binary.Write(b, binary.LittleEndian, fields)
	return chunk{"fmt ", b.Bytes()}
}

func single(payload []byte) []byte {
	return audiotest.Archive{Entries: []audiotest.Entry{{Payload: payload}}}.Bytes()
}

func TestParse_ADPCMEntries(t *testing.T) {
	t.Parallel()

	monoPCM := audiotest.Sine16(22050, 1, 700, 440, 9000)
	mono := audiotest.EncodeMSADPCM(monoPCM, 1, 256, 1)
	stereoPCM := audiotest.Sine16(44100, 2, 1500, 330, 7000)
	stereo := audiotest.EncodeMSADPCM(stereoPCM, 2, 512, 4)

	raw := audiotest.Archive{
		Name: []byte("song01"),
		Entries: []audiotest.Entry{
			{Payload: audiotest.ADPCMWave(mono, 22050, 1)},
			{
				Payload:     audiotest.ADPCMWave(stereo, 44100, 2),
				TrackID:     3,
				FormatFlag:  1,
				Attenuation: 2,
				LoopPoint:   1234,
			},
		},
	}.Bytes()

	arc, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(arc.Keysounds) != 2 {
		t.Fatalf("got %d keysounds, want 2", len(arc.Keysounds))
	}

	tests := []struct {
		enc        audiotest.ADPCM
		rate       int
		channels   int
		blockAlign int
		flag       uint16
	}{
		{mono, 22050, 1, 256, 0},
		{stereo, 44100, 2, 512, 1},
	}

	for i, tt := range tests {
		ks := arc.Keysounds[i]
		if ks.Index != i {
			t.Errorf("keysound %d: Index = %d", i, ks.Index)
		}
		if ks.Codec != CodecMSADPCM {
			t.Errorf("keysound %d: Codec = %v, want msadpcm", i, ks.Codec)
		}
		if ks.SampleRate != tt.rate || ks.Channels != tt.channels {
			t.Errorf("keysound %d: %d Hz %d ch, want %d Hz %d ch", i, ks.SampleRate, ks.Channels, tt.rate, tt.channels)
		}
		if ks.BlockAlign != tt.blockAlign || ks.SamplesPerBlock != tt.enc.SamplesPerBlock {
			t.Errorf("keysound %d: block %d/%d, want %d/%d", i, ks.BlockAlign, ks.SamplesPerBlock, tt.blockAlign, tt.enc.SamplesPerBlock)
		}
		if ks.BitsPerSample != 4 {
			t.Errorf("keysound %d: BitsPerSample = %d, want 4", i, ks.BitsPerSample)
		}
		if !slices.Equal(ks.Coefficients, msadpcm.DefaultCoefficients) {
			t.Errorf("keysound %d: Coefficients = %v", i, ks.Coefficients)
		}
		if ks.FormatFlag != tt.flag {
			t.Errorf("keysound %d: FormatFlag = %d, want %d", i, ks.FormatFlag, tt.flag)
		}
		if !bytes.Equal(ks.Data, tt.enc.Data) {
			t.Errorf("keysound %d: Data differs from the encoded blocks", i)
		}

		pcm, err := msadpcm.Decode(ks.Data, msadpcm.Params{
			Channels:        ks.Channels,
			BlockAlign:      ks.BlockAlign,
			SamplesPerBlock: ks.SamplesPerBlock,
			Coefficients:    ks.Coefficients,
		})
		if err != nil {
			t.Fatalf("keysound %d: Decode: %v", i, err)
		}
		if !slices.Equal(pcm, tt.enc.Classic) {
			t.Errorf("keysound %d: decoded PCM differs from the encoder reconstruction", i)
		}
	}

	second := arc.Keysounds[1]
	if second.TrackID != 3 || second.Attenuation != 2 || second.LoopPoint != 1234 {
		t.Errorf("entry fields = %d/%d/%d, want 3/2/1234", second.TrackID, second.Attenuation, second.LoopPoint)
	}
}

func TestParse_NameAndGeneration(t *testing.T) {
	t.Parallel()

	sjis, err := japanese.ShiftJIS.NewEncoder().Bytes([]byte("ポップン"))
	if err != nil {
		t.Fatalf("encoding name: %v", err)
	}

	tests := []struct {
		name    string
		raw     []byte
		legacy  bool
		display string
		gen     Generation
	}{
		{"ascii modern", []byte("song01"), false, "song01", GenerationModern},
		{"shift-jis legacy", sjis, true, "ポップン", GenerationLegacy},
		{"full width", []byte("0123456789abcdef"), false, "0123456789abcdef", GenerationModern},
		{"empty", nil, false, "", GenerationModern},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			arc, err := Parse(audiotest.Archive{Name: tt.raw, Legacy: tt.legacy}.Bytes())
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if !bytes.Equal(arc.Name(), tt.raw) {
				t.Errorf("Name() = %q, want %q", arc.Name(), tt.raw)
			}
			if got := arc.DisplayName(); got != tt.display {
				t.Errorf("DisplayName() = %q, want %q", got, tt.display)
			}
			if got := arc.Generation(); got != tt.gen {
				t.Errorf("Generation() = %v, want %v", got, tt.gen)
			}
			if len(arc.Keysounds) != 0 {
				t.Errorf("got %d keysounds, want none", len(arc.Keysounds))
			}
		})
	}
}

func TestArchive_DisplayNameInvalidBytes(t *testing.T) {
	t.Parallel()

	arc := &Archive{}
	copy(arc.RawName[:], []byte{'a', 0x82})

	if got := arc.DisplayName(); !utf8.ValidString(got) {
		t.Errorf("DisplayName() = %q, not valid UTF-8", got)
	}
}

func TestParse_EmbeddedPayloads(t *testing.T) {
	t.Parallel()

	pcm := audiotest.PCMWave([]int16{1, 2, 3, 4}, 32000, 2)

	tests := []struct {
		name      string
		payload   []byte
		container string
	}{
		{"pcm wave", pcm, "wav"},
		{"ogg", []byte("OggS\x00\x02rest"), "ogg"},
		{"aiff", []byte("FORM\x00\x00\x00\x04AIFF"), "aiff"},
		{"mp3 with tag", []byte("ID3\x04\x00\x00"), "mp3"},
		{"mp3 frame sync", []byte{0xFF, 0xFB, 0x90, 0x00}, "mp3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			arc, err := Parse(single(tt.payload))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			ks := arc.Keysounds[0]
			if ks.Codec != CodecEmbedded {
				t.Errorf("Codec = %v, want embedded", ks.Codec)
			}
			if ks.Container != tt.container {
				t.Errorf("Container = %q, want %q", ks.Container, tt.container)
			}
			if !bytes.Equal(ks.Data, tt.payload) {
				t.Errorf("Data is not the whole payload")
			}
		})
	}

	arc, err := Parse(single(pcm))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if ks := arc.Keysounds[0]; ks.SampleRate != 32000 || ks.Channels != 2 || ks.BitsPerSample != 16 {
		t.Errorf("pcm wave fields = %d Hz %d ch %d bit", ks.SampleRate, ks.Channels, ks.BitsPerSample)
	}
}

func TestParse_EntryHeaderSize(t *testing.T) {
	t.Parallel()

	payload := audiotest.PCMWave([]int16{7, 7}, 44100, 1)
	raw := audiotest.Archive{Entries: []audiotest.Entry{
		{Payload: payload, HeaderSize: 0x20},
		{Payload: []byte("OggS")},
	}}.Bytes()

	arc, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !bytes.Equal(arc.Keysounds[0].Data, payload) {
		t.Errorf("payload not found after an extended entry header")
	}
	if arc.Keysounds[1].Container != "ogg" {
		t.Errorf("second entry container = %q", arc.Keysounds[1].Container)
	}
}

func TestParse_WaveChunkWalk(t *testing.T) {
	t.Parallel()

	enc := audiotest.EncodeMSADPCM(audiotest.Sine16(22050, 1, 100, 200, 4000), 1, 64, 0)
	full := audiotest.ADPCMWave(enc, 22050, 1)

	// move the trailing data chunk behind an odd sized junk chunk
	fmtEnd := 12 + 8 + int(binary.LittleEndian.Uint32(full[16:]))
	chunks := []chunk{
		{"fmt ", full[20:fmtEnd]},
		{"junk", []byte{1, 2, 3}},
		{"data", enc.Data},
		{"id3 ", []byte("tag")},
	}

	arc, err := Parse(single(riffPayload("WAVE", chunks...)))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !bytes.Equal(arc.Keysounds[0].Data, enc.Data) {
		t.Errorf("data chunk not located past odd sized chunks")
	}
}

func TestParse_DataAliasesInput(t *testing.T) {
	t.Parallel()

	raw := single([]byte("OggS\x00"))
	arc, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	raw[len(raw)-1] = 0x7F
	if arc.Keysounds[0].Data[4] != 0x7F {
		t.Errorf("keysound data was copied instead of referencing the archive")
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	enc := audiotest.EncodeMSADPCM(audiotest.Constant16(1, 50, 0), 1, 64, 0)
	good := single(audiotest.ADPCMWave(enc, 22050, 1))
	const entryOff = tableOffset + 4

	mutate := func(f func(b []byte)) []byte {
		b := slices.Clone(good)
		f(b)
		return b
	}
	put32 := func(b []byte, at int, v uint32) { binary.LittleEndian.PutUint32(b[at:], v) }

	pcmWave := audiotest.PCMWave([]int16{1, 2}, 44100, 1)
	dataAt := bytes.Index(pcmWave, []byte("data"))
	oversized := slices.Clone(pcmWave)
	put32(oversized, dataAt+4, 1000)

	adpcmFmt := []uint16{2, 1, 22050, 0, 0, 0, 64, 4, 32, 116}

	tests := []struct {
		name  string
		data  []byte
		want  error
		entry int
	}{
		{"shorter than header", good[:0x20], ErrTruncated, -1},
		{"table past end", mutate(func(b []byte) { put32(b, 0x14, 1000) }), ErrTruncated, -1},
		{"header size below table", mutate(func(b []byte) { put32(b, 0x10, 0x40) }), ErrTableBounds, -1},
		{"header size past end", mutate(func(b []byte) { put32(b, 0x10, uint32(len(good)+1)) }), ErrTableBounds, -1},
		{"entry inside header", mutate(func(b []byte) { put32(b, tableOffset, 0x10) }), ErrTableBounds, 0},
		{"entry past end", mutate(func(b []byte) { put32(b, tableOffset, uint32(len(good))) }), ErrTableBounds, 0},
		{"bad magic", mutate(func(b []byte) { copy(b[entryOff:], "2DX8") }), ErrBadMagic, 0},
		{"short entry header", mutate(func(b []byte) { put32(b, entryOff+4, 0x10) }), ErrEntryHeader, 0},
		{"payload past end", mutate(func(b []byte) { put32(b, entryOff+8, uint32(len(good))) }), ErrTableBounds, 0},
		{"unknown payload", single([]byte("abcd")), ErrUnknownPayload, 0},
		{"empty payload", single(nil), ErrUnknownPayload, 0},
		{"riff header only", single([]byte("RIFF")), ErrBadWave, 0},
		{"not a wave", single(riffPayload("AVI ")), ErrBadWave, 0},
		{"missing fmt", single(riffPayload("WAVE", chunk{"data", []byte{0, 0}})), ErrBadWave, 0},
		{"missing data", single(riffPayload("WAVE", fmtChunk(1, 1, 22050, 0, 0, 0, 2, 16))), ErrBadWave, 0},
		{"short fmt", single(riffPayload("WAVE", fmtChunk(1, 1), chunk{"data", nil})), ErrBadWave, 0},
		{"float format", single(riffPayload("WAVE", fmtChunk(3, 1, 22050, 0, 0, 0, 4, 32), chunk{"data", nil})), ErrBadWave, 0},
		{"zero channels", single(riffPayload("WAVE", fmtChunk(1, 0, 22050, 0, 0, 0, 2, 16), chunk{"data", nil})), ErrBadWave, 0},
		{"adpcm without extension", single(riffPayload("WAVE", fmtChunk(2, 1, 22050, 0, 0, 0, 64, 4), chunk{"data", nil})), ErrBadWave, 0},
		{"coefficients past fmt", single(riffPayload("WAVE", fmtChunk(append(adpcmFmt, 7)...), chunk{"data", nil})), ErrBadWave, 0},
		{"data past payload", single(oversized), ErrBadWave, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			arc, err := Parse(tt.data)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Parse error = %v, want %v", err, tt.want)
			}
			if arc != nil {
				t.Errorf("archive returned alongside an error")
			}

			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("error %T is not a *FormatError", err)
			}
			if fe.Entry != tt.entry {
				t.Errorf("Entry = %d, want %d", fe.Entry, tt.entry)
			}
		})
	}
}

func TestParse_ADPCMWithoutCoefficients(t *testing.T) {
	t.Parallel()

	payload := riffPayload("WAVE",
		fmtChunk(2, 1, 22050, 0, 0, 0, 64, 4, 4, 116, 0),
		chunk{"data", make([]byte, 64)},
	)

	arc, err := Parse(single(payload))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ks := arc.Keysounds[0]
	if ks.Coefficients != nil {
		t.Errorf("Coefficients = %v, want nil", ks.Coefficients)
	}
	if ks.SamplesPerBlock != 116 || len(ks.Data) != 64 {
		t.Errorf("got spb %d and %d data bytes", ks.SamplesPerBlock, len(ks.Data))
	}
}

func TestFormatError_Message(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  *FormatError
		want string
	}{
		{&FormatError{Offset: 0x10, Entry: -1, Err: ErrTableBounds}, "2dx: offset 0x10: offset or size outside the archive"},
		{&FormatError{Offset: 0x4c, Entry: 2, Err: ErrBadMagic}, "2dx: keysound 2 at 0x4c: entry magic is not 2DX9"},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestEnums_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		got, want string
	}{
		{GenerationModern.String(), "modern"},
		{GenerationLegacy.String(), "legacy"},
		{Generation(9).String(), "unknown"},
		{CodecMSADPCM.String(), "msadpcm"},
		{CodecEmbedded.String(), "embedded"},
		{Codec(9).String(), "unknown"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}

func BenchmarkParse(b *testing.B) {
	entries := make([]audiotest.Entry, 64)
	for i := range entries {
		enc := audiotest.EncodeMSADPCM(audiotest.Sine16(44100, 2, 2000, 440, 8000), 2, 1024, i%7)
		entries[i] = audiotest.Entry{Payload: audiotest.ADPCMWave(enc, 44100, 2)}
	}
	raw := audiotest.Archive{Name: []byte("bench"), Entries: entries}.Bytes()

	b.ReportAllocs()
	for b.Loop() {
		if _, err := Parse(raw); err != nil {
			b.Fatal(err)
		}
	}
}
