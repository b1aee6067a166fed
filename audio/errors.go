// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")
	ErrUnknownFormat  = errors.New("no decoder registered for format")
	ErrNoChannels     = errors.New("channel count must be positive")
	ErrNoSampleRate   = errors.New("sample rate must be positive")
)
