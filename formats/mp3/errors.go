// SPDX-License-Identifier: EPL-2.0

package mp3

import "errors"

// ErrNotMP3 is returned when no MPEG audio frame can be decoded.
var ErrNotMP3 = errors.New("not an MP3 stream")
