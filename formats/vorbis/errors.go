// SPDX-License-Identifier: EPL-2.0

package vorbis

import "errors"

var (
	// ErrNotVorbis is returned when the payload is not an Ogg Vorbis stream.
	ErrNotVorbis = errors.New("not an Ogg Vorbis stream")
	// ErrNoChannels is returned for a stream header that declares no channels.
	ErrNoChannels = errors.New("vorbis stream has no channels")
)
