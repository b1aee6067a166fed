// SPDX-License-Identifier: EPL-2.0

package popnwav

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/ik5/popnwav/audio"
	"github.com/ik5/popnwav/formats/msadpcm"
	"github.com/ik5/popnwav/formats/twodx"
)

// Keysound is a decoded keysound at the output rate and channel count.
type Keysound struct {
	Samples    []int16
	SampleRate int
	Channels   int
}

type decodeResult struct {
	index    int
	keysound Keysound
	err      error
}

// DecodeKeysounds decompresses and resamples every keysound of arc on a
// pool of opts.Workers goroutines. The result is indexed like
// arc.Keysounds. The first failure stops the remaining work and is
// returned.
func DecodeKeysounds(ctx context.Context, arc *twodx.Archive, opts Options) ([]Keysound, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}

	records := arc.Keysounds
	out := make([]Keysound, len(records))
	if len(records) == 0 {
		return out, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := min(opts.Workers, len(records))
	jobs := make(chan int, workers*2)
	results := make(chan decodeResult, workers*2)

	go func() {
		defer close(jobs)
		for i := range records {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for range workers {
		wg.Go(func() {
			for i := range jobs {
				if ctx.Err() != nil {
					continue
				}
				ks, err := decodeKeysound(&records[i], opts)
				results <- decodeResult{index: i, keysound: ks, err: err}
			}
		})
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var firstErr error
	for res := range results {
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
				cancel()
			}
			continue
		}
		out[res.index] = res.keysound
		opts.Logger.Debug("keysound decoded",
			"index", res.index,
			"samples", len(res.keysound.Samples),
		)
	}

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("decoding keysounds: %w", err)
	}
	return out, nil
}

func decodeKeysound(rec *twodx.KeysoundRecord, opts Options) (Keysound, error) {
	var src audio.Source

	switch rec.Codec {
	case twodx.CodecMSADPCM:
		pcm, err := msadpcm.Decode(rec.Data, msadpcm.Params{
			Channels:        rec.Channels,
			BlockAlign:      rec.BlockAlign,
			SamplesPerBlock: rec.SamplesPerBlock,
			Coefficients:    rec.Coefficients,
			Layout:          msadpcm.LayoutFromFlag(rec.FormatFlag),
		})
		if err != nil {
			return Keysound{}, &KeysoundError{Index: rec.Index, Err: err}
		}

		// already in the output shape
		if rec.SampleRate == opts.OutputRate && rec.Channels == opts.Channels {
			return Keysound{Samples: pcm, SampleRate: rec.SampleRate, Channels: rec.Channels}, nil
		}
		src = audio.NewInt16Source(pcm, rec.SampleRate, rec.Channels)

	case twodx.CodecEmbedded:
		s, err := opts.Registry.Decode(rec.Container, bytes.NewReader(rec.Data))
		if err != nil {
			return Keysound{}, &KeysoundError{Index: rec.Index, Err: err}
		}
		src = s

	default:
		return Keysound{}, &KeysoundError{Index: rec.Index, Err: fmt.Errorf("unsupported codec %v", rec.Codec)}
	}
	defer src.Close()

	samples, err := Resample16(src, opts.OutputRate, opts.Channels, opts.BufferSize)
	if err != nil {
		return Keysound{}, &ResampleError{Index: rec.Index, Err: err}
	}
	if samples == nil {
		// an empty keysound still resolves when mixed
		samples = []int16{}
	}

	return Keysound{Samples: samples, SampleRate: opts.OutputRate, Channels: opts.Channels}, nil
}
