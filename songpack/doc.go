// SPDX-License-Identifier: EPL-2.0

// Package songpack locates the files of an extracted pop'n music song.
//
// Songs ship as .ifs containers. Once unpacked (IFSTools runs the external
// ifstools utility), a song directory holds one keysound archive and up to
// four charts:
//
//	song_ifs/
//	    song.2dx
//	    song_ep.bin   easy
//	    song_np.bin   normal
//	    song_hp.bin   hyper
//	    song_op.bin   ex
package songpack
