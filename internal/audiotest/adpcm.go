// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"encoding/binary"
	"math"
)

var msadpcmCoefficients = [][2]int16{
	{256, 0}, {512, -256}, {0, 0}, {192, 64}, {240, 0}, {460, -208}, {392, -232},
}

var msadpcmAdapt = [16]int32{
	230, 230, 230, 230, 307, 409, 512, 614,
	768, 614, 512, 409, 307, 230, 230, 230,
}

// ADPCM is an encoded MS ADPCM stream plus the PCM a correct decoder must
// reproduce from it.
type ADPCM struct {
	Data            []byte
	BlockAlign      int
	SamplesPerBlock int
	// Classic is the decoder output when header samples are emitted.
	Classic []int16
	// Seeded is the decoder output when header samples only seed the
	// predictor.
	Seeded []int16
}

type encState struct {
	c1, c2 int32
	delta  int32
	s1, s2 int32
}

func clamp16(v int32) int32 {
	return max(math.MinInt16, min(math.MaxInt16, v))
}

// encode picks the nibble closest to sample and advances the state exactly as
// a decoder would.
func (st *encState) encode(sample int16) (byte, int16) {
	pred := (st.s1*st.c1 + st.s2*st.c2) >> 8
	diff := int32(sample) - pred

	var q int32
	if diff >= 0 {
		q = (diff + st.delta/2) / st.delta
	} else {
		q = (diff - st.delta/2) / st.delta
	}
	q = max(-8, min(7, q))

	v := clamp16(pred + q*st.delta)
	st.s2, st.s1 = st.s1, v

	nibble := byte(q) & 0x0F
	st.delta = msadpcmAdapt[nibble] * st.delta >> 8
	if st.delta < 16 {
		st.delta = 16
	}
	return nibble, int16(v)
}

// EncodeMSADPCM compresses interleaved pcm into blocks of blockAlign bytes,
// every block using the given predictor from the default table. The last
// block is padded with silence.
func EncodeMSADPCM(pcm []int16, channels, blockAlign, predictor int) ADPCM {
	nibbleFrames := (blockAlign - 7*channels) * 2 / channels
	spb := nibbleFrames + 2
	totalFrames := len(pcm) / channels
	blocks := (totalFrames + spb - 1) / spb

	frame := func(f, c int) int16 {
		if f < totalFrames {
			return pcm[f*channels+c]
		}
		return 0
	}

	res := ADPCM{BlockAlign: blockAlign, SamplesPerBlock: spb}
	coef := msadpcmCoefficients[predictor]

	for b := range blocks {
		block := make([]byte, blockAlign)
		first := b * spb
		states := make([]encState, channels)

		for c := range channels {
			st := &states[c]
			st.c1, st.c2 = int32(coef[0]), int32(coef[1])
			st.delta = 16
			st.s2 = int32(frame(first, c))
			st.s1 = int32(frame(first+1, c))

			block[c] = byte(predictor)
			binary.LittleEndian.PutUint16(block[channels+2*c:], uint16(int16(st.delta)))
			binary.LittleEndian.PutUint16(block[3*channels+2*c:], uint16(int16(st.s1)))
			binary.LittleEndian.PutUint16(block[5*channels+2*c:], uint16(int16(st.s2)))
		}

		for c := range channels {
			res.Classic = append(res.Classic, int16(states[c].s2))
		}
		for c := range channels {
			res.Classic = append(res.Classic, int16(states[c].s1))
		}

		k := 0
		for f := range nibbleFrames {
			for c := range channels {
				nibble, v := states[c].encode(frame(first+2+f, c))
				if k%2 == 0 {
					block[7*channels+k/2] = nibble << 4
				} else {
					block[7*channels+k/2] |= nibble
				}
				k++
				res.Classic = append(res.Classic, v)
				res.Seeded = append(res.Seeded, v)
			}
		}

		res.Data = append(res.Data, block...)
	}

	return res
}
