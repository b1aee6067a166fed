// SPDX-License-Identifier: EPL-2.0

package popnwav

import (
	"errors"
	"fmt"

	"github.com/ik5/popnwav/audio"
	"github.com/ik5/popnwav/formats/msadpcm"
	"github.com/ik5/popnwav/formats/popnchart"
	"github.com/ik5/popnwav/formats/twodx"
)

var ErrOutputTooLarge = errors.New("mixdown does not fit a WAV file")

// KeysoundError reports a keysound whose payload could not be decoded.
type KeysoundError struct {
	Index int
	Err   error
}

func (e *KeysoundError) Error() string {
	return fmt.Sprintf("keysound %d: %v", e.Index, e.Err)
}

func (e *KeysoundError) Unwrap() error { return e.Err }

// ResampleError reports a keysound that decoded but could not be converted
// to the output rate and channel count.
type ResampleError struct {
	Index int
	Err   error
}

func (e *ResampleError) Error() string {
	return fmt.Sprintf("keysound %d: resampling: %v", e.Index, e.Err)
}

func (e *ResampleError) Unwrap() error { return e.Err }

// IsCorrupt reports whether err comes from malformed input data rather than
// from the environment. A chart whose events run past the WAV size limit
// counts as malformed; a keysound in a container the registry has no
// decoder for does not.
func IsCorrupt(err error) bool {
	if errors.Is(err, audio.ErrUnknownFormat) {
		return false
	}

	var (
		archiveErr  *twodx.FormatError
		chartErr    *popnchart.FormatError
		adpcmErr    *msadpcm.DecodeError
		keysoundErr *KeysoundError
		resampleErr *ResampleError
	)
	switch {
	case errors.Is(err, ErrOutputTooLarge),
		errors.As(err, &archiveErr),
		errors.As(err, &chartErr),
		errors.As(err, &adpcmErr),
		errors.As(err, &keysoundErr),
		errors.As(err, &resampleErr):
		return true
	}
	return false
}
