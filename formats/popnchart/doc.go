// SPDX-License-Identifier: EPL-2.0

// Package popnchart reads pop'n music chart files (.bin) and turns them into
// a list of keysound playback events.
//
// A chart is a run of 12 byte little endian records:
//
//	u32 offset in milliseconds
//	u8  reserved
//	u8  kind
//	u16 parameter
//	u32 extra
//
// A sample set record binds a keysound to a button and a note record plays
// whatever its button is bound to. Play records trigger a keysound directly,
// which is how the background track is laid out. Every other kind is ignored.
package popnchart
