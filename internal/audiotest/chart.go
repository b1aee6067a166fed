// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"
)

// Chart event kinds.
const (
	KindNote      = 0x01
	KindSampleSet = 0x02
	KindMeasure   = 0x04
	KindPlay      = 0x07
)

// Event is one 12-byte chart record.
type Event struct {
	OffsetMs uint32
	Kind     byte
	Param    uint16
	Extra    uint32
}

func Note(ms uint32, button int) Event {
	return Event{OffsetMs: ms, Kind: KindNote, Param: uint16(button)}
}

func SampleSet(ms uint32, button, keysound int) Event {
	return Event{OffsetMs: ms, Kind: KindSampleSet, Param: uint16(keysound<<4 | button)}
}

func Play(ms uint32, keysound int) Event {
	return Event{OffsetMs: ms, Kind: KindPlay, Param: uint16(keysound)}
}

func Measure(ms uint32) Event {
	return Event{OffsetMs: ms, Kind: KindMeasure}
}

func records(events []Event) []byte {
	b := new(bytes.Buffer)
	for _, e := range events {
		binary.Write(b, binary.LittleEndian, e.OffsetMs)
		b.WriteByte(0)
		b.WriteByte(e.Kind)
		binary.Write(b, binary.LittleEndian, e.Param)
		binary.Write(b, binary.LittleEndian, e.Extra)
	}
	return b.Bytes()
}

// PlainChart lays events out from byte zero.
func PlainChart(events ...Event) []byte {
	return records(events)
}

// PreambleChart prefixes events with a u32 start offset and a metadata block.
func PreambleChart(meta []byte, events ...Event) []byte {
	out := make([]byte, 4, 4+len(meta)+12*len(events))
	binary.LittleEndian.PutUint32(out, uint32(4+len(meta)))
	out = append(out, meta...)
	return append(out, records(events)...)
}
