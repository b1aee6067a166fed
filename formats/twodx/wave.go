// SPDX-License-Identifier: EPL-2.0

package twodx

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/riff"
)

const (
	formatPCM     = 1
	formatMSADPCM = 2
)

// waveFormat is the common part of a fmt chunk.
type waveFormat struct {
	Tag           uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
}

// adpcmExtension follows waveFormat when Tag is formatMSADPCM.
type adpcmExtension struct {
	Size            uint16
	SamplesPerBlock uint16
	Coefficients    uint16
}

// describeWave walks the chunks of a RIFF/WAVE payload. The RIFF size field
// is not trusted; chunks are read until the payload ends.
func (ks *KeysoundRecord) describeWave(payload []byte) error {
	r := bytes.NewReader(payload)
	p := riff.New(r)
	if err := p.ParseHeaders(); err != nil {
		return fmt.Errorf("%w: %w", ErrBadWave, err)
	}
	if p.Format != riff.WavFormatID {
		return fmt.Errorf("%w: form type %q", ErrBadWave, p.Format[:])
	}

	var (
		wf      waveFormat
		ext     adpcmExtension
		coefs   [][2]int16
		data    []byte
		haveFmt bool
		haveDat bool
	)

	for {
		ch, err := p.NextChunk()
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBadWave, err)
		}

		start := len(payload) - r.Len()
		next := min(start+ch.Size, len(payload))

		switch ch.ID {
		case riff.FmtID:
			wf, ext, coefs, err = readFormat(ch)
			if err != nil {
				return err
			}
			haveFmt = true
		case riff.DataFormatID:
			// the chunk size without the pad byte riff adds for odd sizes
			size := int(binary.LittleEndian.Uint32(payload[start-4 : start]))
			if start+size > len(payload) {
				return fmt.Errorf("%w: data chunk runs past the payload", ErrBadWave)
			}
			data = payload[start : start+size]
			haveDat = true
		}

		if _, err := r.Seek(int64(next), io.SeekStart); err != nil {
			return fmt.Errorf("%w: %w", ErrBadWave, err)
		}
	}

	switch {
	case !haveFmt:
		return fmt.Errorf("%w: missing fmt chunk", ErrBadWave)
	case !haveDat:
		return fmt.Errorf("%w: missing data chunk", ErrBadWave)
	case wf.Channels == 0 || wf.SampleRate == 0:
		return fmt.Errorf("%w: %d channels at %d Hz", ErrBadWave, wf.Channels, wf.SampleRate)
	}

	ks.SampleRate = int(wf.SampleRate)
	ks.Channels = int(wf.Channels)
	ks.BitsPerSample = int(wf.BitsPerSample)
	ks.BlockAlign = int(wf.BlockAlign)

	switch wf.Tag {
	case formatMSADPCM:
		ks.Codec = CodecMSADPCM
		ks.Data = data
		ks.SamplesPerBlock = int(ext.SamplesPerBlock)
		ks.Coefficients = coefs
	case formatPCM:
		ks.Codec = CodecEmbedded
		ks.Container = "wav"
		ks.Data = payload
	default:
		return fmt.Errorf("%w: format tag %d", ErrBadWave, wf.Tag)
	}
	return nil
}

func readFormat(ch *riff.Chunk) (waveFormat, adpcmExtension, [][2]int16, error) {
	var (
		wf  waveFormat
		ext adpcmExtension
	)

	if ch.Size < binary.Size(wf) {
		return wf, ext, nil, fmt.Errorf("%w: fmt chunk of %d bytes", ErrBadWave, ch.Size)
	}
	if err := ch.ReadLE(&wf); err != nil {
		return wf, ext, nil, fmt.Errorf("%w: %w", ErrBadWave, err)
	}
	if wf.Tag != formatMSADPCM {
		return wf, ext, nil, nil
	}

	if ch.Size < binary.Size(wf)+binary.Size(ext) {
		return wf, ext, nil, fmt.Errorf("%w: fmt chunk too short for MS ADPCM", ErrBadWave)
	}
	if err := ch.ReadLE(&ext); err != nil {
		return wf, ext, nil, fmt.Errorf("%w: %w", ErrBadWave, err)
	}

	n := int(ext.Coefficients)
	if n == 0 {
		return wf, ext, nil, nil
	}
	if binary.Size(wf)+binary.Size(ext)+4*n > ch.Size {
		return wf, ext, nil, fmt.Errorf("%w: %d coefficients do not fit the fmt chunk", ErrBadWave, n)
	}
	coefs := make([][2]int16, n)
	if err := ch.ReadLE(coefs); err != nil {
		return wf, ext, nil, fmt.Errorf("%w: %w", ErrBadWave, err)
	}
	return wf, ext, coefs, nil
}
