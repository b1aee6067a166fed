// SPDX-License-Identifier: EPL-2.0

package songpack

import (
	"fmt"
	"strings"
)

// Difficulty is one of the four charts a song can ship with.
type Difficulty int

const (
	Easy Difficulty = iota
	Normal
	Hyper
	EX
)

// Difficulties in ascending order.
var Difficulties = []Difficulty{Easy, Normal, Hyper, EX}

var difficultyNames = [...]struct{ long, short string }{
	Easy:   {"easy", "ep"},
	Normal: {"normal", "np"},
	Hyper:  {"hyper", "hp"},
	EX:     {"ex", "op"},
}

func (d Difficulty) valid() bool { return d >= Easy && d <= EX }

func (d Difficulty) String() string {
	if !d.valid() {
		return fmt.Sprintf("Difficulty(%d)", int(d))
	}
	return difficultyNames[d].long
}

// Suffix is the chart file name suffix, e.g. "np" for Normal.
func (d Difficulty) Suffix() string {
	if !d.valid() {
		return ""
	}
	return difficultyNames[d].short
}

// ParseDifficulty accepts a long name ("hyper") or a file suffix ("hp"),
// ignoring case.
func ParseDifficulty(s string) (Difficulty, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, d := range Difficulties {
		if s == difficultyNames[d].long || s == difficultyNames[d].short {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
}
