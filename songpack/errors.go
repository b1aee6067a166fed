// SPDX-License-Identifier: EPL-2.0

package songpack

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	ErrNoArchive         = errors.New("package has no .2dx archive")
)

// MissingChartError is returned when the requested chart is not in the
// package. Available lists the charts that are.
type MissingChartError struct {
	Requested Difficulty
	Available []Difficulty
}

func (e *MissingChartError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("no %s chart and no other charts available", e.Requested)
	}
	names := make([]string, len(e.Available))
	for i, d := range e.Available {
		names[i] = d.String()
	}
	return fmt.Sprintf("no %s chart, available charts: %s", e.Requested, strings.Join(names, ", "))
}

// ExtractError reports a failed extraction run. Output holds what the tool
// printed on stderr.
type ExtractError struct {
	Path   string
	Output string
	Err    error
}

func (e *ExtractError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("extracting %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("extracting %s: %v: %s", e.Path, e.Err, e.Output)
}

func (e *ExtractError) Unwrap() error { return e.Err }
