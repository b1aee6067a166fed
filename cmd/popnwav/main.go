// SPDX-License-Identifier: EPL-2.0

// Command popnwav renders a pop'n music chart to a WAV file.
//
//	popnwav [flags] <file.ifs> [output.wav]
//
// The .ifs file is unpacked with ifstools next to itself, the chosen chart
// is mixed from the song's keysounds and the unpacked directory is removed
// again. Use -dir to render from a directory that is already unpacked.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/fatih/color"

	"github.com/ik5/popnwav"
	"github.com/ik5/popnwav/formats/wav"
	"github.com/ik5/popnwav/internal/config"
	"github.com/ik5/popnwav/songpack"
)

const (
	exitOK = iota
	exitFailure
	exitCorrupt
)

var (
	info  = color.New(color.FgCyan)
	done  = color.New(color.FgGreen, color.Bold)
	warn  = color.New(color.FgYellow)
	fail  = color.New(color.FgRed, color.Bold)
	faint = color.New(color.Faint)
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Parse("popnwav", args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fail.Fprintf(stderr, "error: %v\n", err)
		return exitFailure
	}
	if cfg.ShowVersion {
		fmt.Fprintf(stdout, "popnwav version %s\n", config.Version)
		return exitOK
	}

	level := slog.LevelWarn
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if err := convert(ctx, cfg, logger, stdout, stderr); err != nil {
		fail.Fprintf(stderr, "error: %v\n", err)
		if popnwav.IsCorrupt(err) {
			return exitCorrupt
		}
		return exitFailure
	}
	return exitOK
}

func convert(ctx context.Context, cfg *config.Config, logger *slog.Logger, stdout, stderr io.Writer) error {
	pkg, err := openPackage(ctx, cfg, logger, stdout)
	if err != nil {
		return err
	}
	if cfg.Dir == "" {
		defer func() {
			if err := pkg.Cleanup(); err != nil {
				warn.Fprintf(stderr, "could not remove %s: %v\n", pkg.Dir, err)
			}
		}()
	}

	info.Fprintf(stdout, "difficulty: %s\n", cfg.Difficulty)
	chart, err := pkg.ReadChart(cfg.Difficulty)
	if err != nil {
		return err
	}
	archive, err := pkg.ReadArchive()
	if err != nil {
		return err
	}

	opts := popnwav.DefaultOptions()
	opts.Workers = cfg.Workers
	opts.Logger = logger

	res, err := popnwav.Render(ctx, archive, chart, opts)
	if err != nil {
		return err
	}

	out := cfg.OutputPath(res.Name)
	if err := writeWAV(out, opts, res.Timeline.Samples); err != nil {
		return err
	}

	if res.Skipped > 0 {
		warn.Fprintf(stdout, "%d events referenced missing keysounds\n", res.Skipped)
	}
	faint.Fprintf(stdout, "%s, %d keysounds, %d events, %s\n",
		res.Generation, res.Keysounds, res.Events, res.Timeline.Duration())
	done.Fprintf(stdout, "wrote %s\n", out)
	return nil
}

func openPackage(ctx context.Context, cfg *config.Config, logger *slog.Logger, stdout io.Writer) (*songpack.Package, error) {
	if cfg.Dir != "" {
		info.Fprintf(stdout, "song directory: %s\n", cfg.Dir)
		return songpack.Open(cfg.Dir, cfg.SongName())
	}

	info.Fprintf(stdout, "ifs file: %s\n", cfg.IFSPath)
	tool := songpack.IFSTools{Binary: cfg.IFSTools}
	if cfg.Debug {
		tool.Stdout = stdout
	}

	var ex songpack.Extractor = tool
	pkg, err := ex.Extract(ctx, cfg.IFSPath)
	if err != nil {
		// a failed run can still leave a partial directory behind
		_ = (&songpack.Package{Dir: songpack.ExtractDir(cfg.IFSPath)}).Cleanup()
		return nil, err
	}
	logger.Debug("extracted", "dir", pkg.Dir, "charts", pkg.Available())

	if _, err := songpack.Open(pkg.Dir, pkg.Name); err != nil {
		_ = pkg.Cleanup()
		return nil, err
	}
	return pkg, nil
}

// writeWAV creates path and removes it again if writing fails.
func writeWAV(path string, opts popnwav.Options, samples []int32) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	err = wav.WritePCM(f, opts.OutputRate, opts.Channels, opts.BitDepth, samples)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
