// SPDX-License-Identifier: EPL-2.0

// Package popnwav renders pop'n music charts to a single WAV file.
//
// A song ships as a .2dx keysound archive plus one .bin chart per
// difficulty. Convert ties the pieces together: the archive is parsed, every
// keysound is decompressed and resampled to the output format, each chart
// event drops its keysound onto a shared timeline and the normalized result
// is written as PCM WAV.
//
// # Quick Start
//
//	archive, _ := os.ReadFile("song.2dx")
//	chart, _ := os.ReadFile("song_np.bin")
//	out, _ := os.Create("song_normal.wav")
//	defer out.Close()
//
//	res, err := popnwav.Convert(ctx, archive, chart, out, popnwav.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Name, res.Timeline.Duration())
//
// # Rendering Without Writing
//
// Render does everything Convert does except the final write, and returns
// the normalized timeline in the Result. Use it to inspect a chart, write the
// samples elsewhere or check the output size first:
//
//	res, err := popnwav.Render(ctx, archive, chart, popnwav.Options{})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Events, res.Skipped, res.Timeline.Frames())
//
// Zero fields in Options fall back to the defaults: 44100 Hz, two channels,
// 32-bit samples, one worker per CPU and DefaultRegistry.
//
// # Pipeline
//
// Each stage lives in its own package and can be used alone:
//   - formats/twodx parses the archive
//   - formats/msadpcm decompresses keysounds
//   - formats/popnchart turns a chart into playback events
//   - audio resamples keysounds (Resample16 wraps the whole chain)
//   - mixdown sums keysounds and normalizes the result
//   - formats/wav writes the output
//
// DecodeKeysounds runs the decompress and resample steps for a whole archive
// on a pool of Options.Workers goroutines. The first failure cancels the
// remaining keysounds.
//
// # Embedded Containers
//
// Most keysounds are MS ADPCM inside RIFF. Keysounds stored as complete wav,
// mp3, ogg or aiff files are decoded through the audio.Registry in Options:
//
//	reg := popnwav.DefaultRegistry() // wav, mp3, ogg, aiff
//	reg.Register("ogg", myOggDecoder{})
//
//	opts := popnwav.DefaultOptions()
//	opts.Registry = reg
//
// A container without a registered decoder fails with audio.ErrUnknownFormat
// wrapped in a KeysoundError.
//
// # Output Format
//
// The timeline is summed in int32 with saturation, then scaled so its peak
// reaches full scale. BitDepth selects how it is written:
//   - 32: samples as mixed
//   - 24 and 16: the top bits of each sample
//
// WAV sizes are 32-bit, so a chart whose output would not fit fails with
// ErrOutputTooLarge before the timeline is allocated.
//
// # Errors
//
// Malformed input surfaces as a typed error from the stage that found it
// (twodx.FormatError, popnchart.FormatError, KeysoundError, ResampleError).
// IsCorrupt tells those apart from I/O failures, cancellation and missing
// decoders:
//
//	if _, err := popnwav.Convert(ctx, archive, chart, out, opts); err != nil {
//	    if popnwav.IsCorrupt(err) {
//	        // bad archive or chart
//	    }
//	    return err
//	}
//
// # Logging
//
// Options.Logger receives debug records for each stage and a warning when
// chart events name keysounds the archive does not have. The default logger
// discards everything.
package popnwav
