// SPDX-License-Identifier: EPL-2.0

package popnchart

import (
	"errors"
	"fmt"
)

var (
	ErrTruncated   = errors.New("trailing bytes do not form a whole event")
	ErrStartOffset = errors.New("event start offset outside the chart")
	ErrLayout      = errors.New("unknown chart layout")
)

// FormatError reports a malformed chart at a byte offset.
type FormatError struct {
	Offset int64
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("chart: offset %#x: %v", e.Offset, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }
