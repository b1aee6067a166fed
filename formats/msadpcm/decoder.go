// SPDX-License-Identifier: EPL-2.0

package msadpcm

import "math"

// bytes of block header per channel: predictor, delta, sample1, sample2
const headerBytesPerChannel = 7

const minDelta = 16

// DefaultCoefficients is the predictor table used when a keysound does not
// carry its own.
var DefaultCoefficients = [][2]int16{
	{256, 0},
	{512, -256},
	{0, 0},
	{192, 64},
	{240, 0},
	{460, -208},
	{392, -232},
}

var adaptationTable = [16]int32{
	230, 230, 230, 230, 307, 409, 512, 614,
	768, 614, 512, 409, 307, 230, 230, 230,
}

// Params describes the compressed stream, normally taken from the fmt chunk.
type Params struct {
	Channels   int
	BlockAlign int
	// SamplesPerBlock counts frames per block including the two header
	// frames. Zero derives it from BlockAlign.
	SamplesPerBlock int
	// Coefficients is the predictor table; nil means DefaultCoefficients.
	Coefficients [][2]int16
	Layout       Layout
}

// nibbleFrames is the number of frames carried by the nibbles of one block.
func (p Params) nibbleFrames() int {
	return (p.BlockAlign - headerBytesPerChannel*p.Channels) * 2 / p.Channels
}

// FramesPerBlock returns the frames a full block holds, header frames
// included.
func (p Params) FramesPerBlock() int {
	if p.SamplesPerBlock > 0 {
		return p.SamplesPerBlock
	}
	return p.nibbleFrames() + 2
}

func (p Params) validate() error {
	if p.Channels < 1 || p.Channels > 2 {
		return ErrChannels
	}
	if p.BlockAlign <= headerBytesPerChannel*p.Channels {
		return ErrBlockAlign
	}
	spb := p.FramesPerBlock()
	if spb < 2 || spb > p.nibbleFrames()+2 {
		return ErrSamplesPerBlock
	}
	return nil
}

type channelState struct {
	c1, c2 int32
	delta  int32
	s1, s2 int32
}

func (st *channelState) expand(nibble byte) int16 {
	signed := int32(nibble)
	if signed >= 8 {
		signed -= 16
	}

	pred := (st.s1*st.c1 + st.s2*st.c2) >> 8
	v := clamp16(pred + signed*st.delta)

	st.s2 = st.s1
	st.s1 = int32(v)

	st.delta = adaptationTable[nibble] * st.delta >> 8
	if st.delta < minDelta {
		st.delta = minDelta
	}
	return v
}

func clamp16(v int32) int16 {
	switch {
	case v > math.MaxInt16:
		return math.MaxInt16
	case v < math.MinInt16:
		return math.MinInt16
	}
	return int16(v)
}

func le16(b []byte) int32 { return int32(int16(uint16(b[0]) | uint16(b[1])<<8)) }

// Decode decompresses an MS ADPCM payload into interleaved 16-bit PCM.
// Every block is decoded independently from its own header.
func Decode(data []byte, p Params) ([]int16, error) {
	if err := p.validate(); err != nil {
		return nil, &DecodeError{Block: -1, Err: err}
	}
	if len(data)%p.BlockAlign != 0 {
		return nil, &DecodeError{Block: len(data) / p.BlockAlign, Err: ErrBlockAlign}
	}

	coefs := p.Coefficients
	if coefs == nil {
		coefs = DefaultCoefficients
	}

	channels := p.Channels
	frames := p.FramesPerBlock()
	if p.Layout == LayoutSeeded {
		frames -= 2
	}

	blocks := len(data) / p.BlockAlign
	out := make([]int16, 0, blocks*frames*channels)
	states := make([]channelState, channels)

	for b := range blocks {
		block := data[b*p.BlockAlign : (b+1)*p.BlockAlign]

		for c := range channels {
			idx := int(block[c])
			if idx >= len(coefs) {
				return nil, &DecodeError{Block: b, Err: ErrPredictor}
			}
			st := &states[c]
			st.c1 = int32(coefs[idx][0])
			st.c2 = int32(coefs[idx][1])
			st.delta = le16(block[channels+2*c:])
			st.s1 = le16(block[3*channels+2*c:])
			st.s2 = le16(block[5*channels+2*c:])
		}

		emitted := 0
		if p.Layout == LayoutClassic {
			for c := range channels {
				out = append(out, int16(states[c].s2))
			}
			for c := range channels {
				out = append(out, int16(states[c].s1))
			}
			emitted = 2
		}

		nibbles := block[headerBytesPerChannel*channels:]
		c := 0
	loop:
		for _, v := range nibbles {
			for _, nibble := range [2]byte{v >> 4, v & 0x0F} {
				if emitted >= frames {
					break loop
				}
				out = append(out, states[c].expand(nibble))
				c++
				if c == channels {
					c = 0
					emitted++
				}
			}
		}
	}

	return out, nil
}
