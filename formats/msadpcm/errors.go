// SPDX-License-Identifier: EPL-2.0

package msadpcm

import (
	"errors"
	"fmt"
)

var (
	ErrBlockAlign      = errors.New("payload is not a whole number of blocks")
	ErrPredictor       = errors.New("predictor index outside coefficient table")
	ErrChannels        = errors.New("unsupported channel count")
	ErrSamplesPerBlock = errors.New("samples per block does not fit the block size")
)

// DecodeError reports a keysound that cannot be decompressed. Block is the
// zero-based block index, or -1 when the parameters themselves are invalid.
type DecodeError struct {
	Block int
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Block < 0 {
		return fmt.Sprintf("msadpcm: %v", e.Err)
	}
	return fmt.Sprintf("msadpcm: block %d: %v", e.Block, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
