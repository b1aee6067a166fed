// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile          = errors.New("not a WAV file")
	ErrOnlyPCMSupported    = errors.New("only uncompressed PCM supported")
	ErrUnsupportedBitDepth = errors.New("unsupported WAV bit depth")
	ErrMissingData         = errors.New("WAV data chunk not found")
	ErrInvalidChannels     = errors.New("channel count must be positive")
	ErrInvalidSampleRate   = errors.New("sample rate must be positive")
	ErrPartialFrame        = errors.New("sample count is not a multiple of the channel count")
)
