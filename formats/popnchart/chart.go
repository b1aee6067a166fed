// SPDX-License-Identifier: EPL-2.0

package popnchart

import (
	"encoding/binary"
	"fmt"
)

const (
	recordSize = 12
	// size of the start offset word of LayoutPreamble charts
	preambleSize = 4
	buttons      = 16
)

// Event kinds carried by chart records. Only the first three affect audio.
const (
	KindNote      = 0x01
	KindSampleSet = 0x02
	KindPlay      = 0x07
)

// Layout describes where the event records start.
type Layout int

const (
	// LayoutPlain charts are a bare sequence of records.
	LayoutPlain Layout = iota
	// LayoutPreamble charts start with a u32 byte offset of the first
	// record, followed by a metadata block.
	LayoutPreamble
)

// LayoutFor picks the layout used next to an archive of the given
// generation.
func LayoutFor(legacy bool) Layout {
	if legacy {
		return LayoutPlain
	}
	return LayoutPreamble
}

func (l Layout) String() string {
	switch l {
	case LayoutPlain:
		return "plain"
	case LayoutPreamble:
		return "preamble"
	default:
		return "unknown"
	}
}

// PlayEvent schedules a keysound. KeysoundIndex is zero-based archive order.
type PlayEvent struct {
	OffsetMs      uint32
	KeysoundIndex int
}

// Chart holds the playback events in file order.
type Chart struct {
	Events []PlayEvent
	Layout Layout
	// Records is the number of records read, playback or not.
	Records int
	// Unassigned counts notes hit on a button with no keysound yet.
	Unassigned int
}

// Parse decodes chart records into playback events. Note records play the
// keysound last assigned to their button by a sample set record; play
// records name a keysound directly. Events keep file order even when
// offsets repeat or go backwards.
func Parse(data []byte, layout Layout) (*Chart, error) {
	start := 0

	switch layout {
	case LayoutPlain:
	case LayoutPreamble:
		if len(data) < preambleSize {
			return nil, &FormatError{Offset: 0, Err: ErrTruncated}
		}
		off := uint64(binary.LittleEndian.Uint32(data))
		if off < preambleSize || off > uint64(len(data)) {
			return nil, &FormatError{Offset: 0, Err: fmt.Errorf("%w: %d of %d bytes", ErrStartOffset, off, len(data))}
		}
		start = int(off)
	default:
		return nil, fmt.Errorf("chart: %w %d", ErrLayout, int(layout))
	}

	body := data[start:]
	if rest := len(body) % recordSize; rest != 0 {
		return nil, &FormatError{Offset: int64(len(data) - rest), Err: ErrTruncated}
	}

	chart := &Chart{
		Layout:  layout,
		Records: len(body) / recordSize,
	}

	// -1 = no keysound assigned yet
	var assigned [buttons]int
	for i := range assigned {
		assigned[i] = -1
	}

	for rec := range chart.Records {
		r := body[rec*recordSize:]
		ms := binary.LittleEndian.Uint32(r)
		kind := r[5]
		param := binary.LittleEndian.Uint16(r[6:])

		switch kind {
		case KindNote:
			idx := assigned[param&0x0F]
			if idx < 0 {
				chart.Unassigned++
				continue
			}
			chart.Events = append(chart.Events, PlayEvent{OffsetMs: ms, KeysoundIndex: idx})
		case KindSampleSet:
			assigned[param&0x0F] = int(param >> 4)
		case KindPlay:
			chart.Events = append(chart.Events, PlayEvent{OffsetMs: ms, KeysoundIndex: int(param)})
		}
	}

	return chart, nil
}
