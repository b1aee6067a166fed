// SPDX-License-Identifier: EPL-2.0

package msadpcm

// Layout selects how the two header samples of each block are used.
type Layout int

const (
	// LayoutClassic emits sample2 then sample1 as the first two frames of
	// every block, as in RIFF MS ADPCM.
	LayoutClassic Layout = iota
	// LayoutSeeded only seeds the predictor with the header samples; output
	// starts with the first nibble.
	LayoutSeeded
)

// LayoutFromFlag maps an archive entry's format flag to a Layout.
func LayoutFromFlag(flag uint16) Layout {
	if flag == 0 {
		return LayoutClassic
	}
	return LayoutSeeded
}

func (l Layout) String() string {
	switch l {
	case LayoutClassic:
		return "classic"
	case LayoutSeeded:
		return "seeded"
	default:
		return "unknown"
	}
}
