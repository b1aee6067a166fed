// SPDX-License-Identifier: EPL-2.0

package popnwav

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/ik5/popnwav/formats/popnchart"
	"github.com/ik5/popnwav/formats/twodx"
	"github.com/ik5/popnwav/formats/wav"
	"github.com/ik5/popnwav/mixdown"
)

// RIFF, fmt and data headers written in front of the samples
const wavHeaderBytes = 44

// Result describes a rendered chart.
type Result struct {
	// Name is the archive name decoded from Shift-JIS.
	Name       string
	Generation twodx.Generation
	Timeline   *mixdown.Timeline
	// Events is the number of playback events in the chart.
	Events int
	// Skipped counts events naming a keysound the archive does not have.
	Skipped int
	// Unassigned counts notes on buttons without a keysound.
	Unassigned int
	Keysounds  int
}

// Render parses the archive and chart, decodes every keysound and mixes
// them into a normalized timeline. The chart layout follows the archive
// generation.
func Render(ctx context.Context, archiveData, chartData []byte, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}
	log := opts.Logger

	arc, err := twodx.Parse(archiveData)
	if err != nil {
		return nil, fmt.Errorf("parsing archive: %w", err)
	}

	layout := popnchart.LayoutFor(arc.Generation() == twodx.GenerationLegacy)
	chart, err := popnchart.Parse(chartData, layout)
	if err != nil {
		return nil, fmt.Errorf("parsing chart: %w", err)
	}

	log.Debug("inputs parsed",
		"name", arc.DisplayName(),
		"generation", arc.Generation(),
		"keysounds", len(arc.Keysounds),
		"layout", layout,
		"records", chart.Records,
		"events", len(chart.Events),
	)

	keysounds, err := DecodeKeysounds(ctx, arc, opts)
	if err != nil {
		return nil, err
	}

	slots := make([][]int16, len(keysounds))
	for i, ks := range keysounds {
		slots[i] = ks.Samples
	}

	required := mixdown.RequiredBytes(slots, chart.Events, opts.OutputRate, opts.Channels)
	encoded := required / 4 * uint64(opts.BitDepth/8)
	if encoded > math.MaxUint32-wavHeaderBytes {
		return nil, fmt.Errorf("%w: %d bytes of samples", ErrOutputTooLarge, encoded)
	}
	log.Debug("allocating mixdown", "bytes", required)

	tl := mixdown.Mix(slots, chart.Events, opts.OutputRate, opts.Channels)
	tl.Normalize()

	if tl.Skipped > 0 {
		log.Warn("events reference missing keysounds", "skipped", tl.Skipped)
	}
	log.Debug("mixdown done", "peak", tl.Peak, "scale", tl.Scale, "duration", tl.Duration())

	return &Result{
		Name:       arc.DisplayName(),
		Generation: arc.Generation(),
		Timeline:   tl,
		Events:     len(chart.Events),
		Skipped:    tl.Skipped,
		Unassigned: chart.Unassigned,
		Keysounds:  len(keysounds),
	}, nil
}

// Convert renders the chart and writes it to w as a PCM WAV file. Nothing is
// written unless rendering succeeds.
func Convert(ctx context.Context, archiveData, chartData []byte, w io.WriteSeeker, opts Options) (*Result, error) {
	opts = opts.withDefaults()

	res, err := Render(ctx, archiveData, chartData, opts)
	if err != nil {
		return nil, err
	}

	if err := wav.WritePCM(w, opts.OutputRate, opts.Channels, opts.BitDepth, res.Timeline.Samples); err != nil {
		return nil, fmt.Errorf("writing wav: %w", err)
	}
	return res, nil
}
