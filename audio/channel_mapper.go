// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// ChannelMapper reshapes a Source to a fixed channel count. Mono is copied to
// every output channel; wider sources are averaged down and, if more than one
// output channel is wanted, the average is copied to each of them.
type ChannelMapper struct {
	src      Source
	channels int
	tmp      []float32
}

func NewChannelMapper(src Source, channels int) *ChannelMapper {
	return &ChannelMapper{
		src:      src,
		channels: channels,
		tmp:      make([]float32, 4096),
	}
}

func (m *ChannelMapper) SampleRate() int { return m.src.SampleRate() }
func (m *ChannelMapper) Channels() int   { return m.channels }
func (m *ChannelMapper) BufSize() int    { return m.src.BufSize() }
func (m *ChannelMapper) Close() error {
	err := m.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (m *ChannelMapper) ReadSamples(dst []float32) (int, error) {
	if m.channels <= 0 {
		return 0, ErrNoChannels
	}
	if len(dst)%m.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if len(dst) == 0 {
		return 0, nil
	}

	in := m.src.Channels()
	if in == m.channels {
		return m.src.ReadSamples(dst)
	}

	frames := len(dst) / m.channels
	needed := frames * in

	// grow but never shrink, to avoid thrashing
	if cap(m.tmp) < needed {
		m.tmp = make([]float32, max(needed, 8192))
	}
	m.tmp = m.tmp[:needed]

	n, err := m.src.ReadSamples(m.tmp)
	if n == 0 {
		return 0, err
	}
	got := n / in

	switch {
	case in == 1:
		for f := range got {
			v := m.tmp[f]
			out := dst[f*m.channels : (f+1)*m.channels]
			for c := range out {
				out[c] = v
			}
		}
	case in == 2:
		for f := range got {
			idx := f << 1
			v := (m.tmp[idx] + m.tmp[idx+1]) * 0.5
			out := dst[f*m.channels : (f+1)*m.channels]
			for c := range out {
				out[c] = v
			}
		}
	default:
		inv := float32(1.0) / float32(in)
		for f := range got {
			sum := float32(0)
			for _, v := range m.tmp[f*in : (f+1)*in] {
				sum += v
			}
			v := sum * inv
			out := dst[f*m.channels : (f+1)*m.channels]
			for c := range out {
				out[c] = v
			}
		}
	}

	return got * m.channels, err
}
