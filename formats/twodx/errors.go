// SPDX-License-Identifier: EPL-2.0

package twodx

import (
	"errors"
	"fmt"
)

var (
	ErrTruncated      = errors.New("data ends before the structure it declares")
	ErrBadMagic       = errors.New("entry magic is not 2DX9")
	ErrTableBounds    = errors.New("offset or size outside the archive")
	ErrEntryHeader    = errors.New("entry header smaller than 0x18 bytes")
	ErrBadWave        = errors.New("unusable RIFF/WAVE payload")
	ErrUnknownPayload = errors.New("unrecognized keysound payload")
)

// FormatError reports a structural problem at a byte offset of the archive.
// Entry is the zero-based keysound index, or -1 for the file header.
type FormatError struct {
	Offset int64
	Entry  int
	Err    error
}

func (e *FormatError) Error() string {
	if e.Entry < 0 {
		return fmt.Sprintf("2dx: offset %#x: %v", e.Offset, e.Err)
	}
	return fmt.Sprintf("2dx: keysound %d at %#x: %v", e.Entry, e.Offset, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }
