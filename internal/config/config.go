// SPDX-License-Identifier: EPL-2.0

// Package config parses the popnwav command line.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/kennygrant/sanitize"

	"github.com/ik5/popnwav/songpack"
)

const Version = "0.1.0"

var (
	ErrNoInput               = errors.New("no .ifs file or -dir given")
	ErrTooManyArgs           = errors.New("too many arguments")
	ErrConflictingDifficulty = errors.New("more than one difficulty selected")
	ErrConflictingOutput     = errors.New("output given both as -o and as an argument")
	ErrWorkers               = errors.New("-workers must be at least 1")
)

// Config holds the settings of a single conversion.
type Config struct {
	// IFSPath is the game archive to extract. Empty when Dir is set.
	IFSPath string
	// Dir is an already extracted song directory.
	Dir        string
	Difficulty songpack.Difficulty
	// Output is the WAV path; empty means derive it with OutputPath.
	Output          string
	Workers         int
	Debug           bool
	NameFromArchive bool
	IFSTools        string
	ShowVersion     bool
}

// Parse reads args (without the program name). Flags and positional
// arguments may be mixed: popnwav song.ifs --hyper out.wav is accepted.
func Parse(name string, args []string, output io.Writer) (*Config, error) {
	cfg := &Config{}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)

	var difficulty string
	shortcuts := make(map[songpack.Difficulty]*bool, len(songpack.Difficulties))
	for _, d := range songpack.Difficulties {
		shortcuts[d] = fs.Bool(d.String(), false, "render the "+d.String()+" chart")
	}

	fs.StringVar(&difficulty, "difficulty", "", "chart to render: easy, normal, hyper or ex (default normal)")
	fs.StringVar(&difficulty, "d", "", "chart to render (shorthand)")

	fs.StringVar(&cfg.Output, "output", "", "output WAV file (default <name>_<difficulty>.wav)")
	fs.StringVar(&cfg.Output, "o", "", "output WAV file (shorthand)")

	fs.StringVar(&cfg.Dir, "dir", "", "already extracted song directory, skips ifstools")
	fs.IntVar(&cfg.Workers, "workers", runtime.NumCPU(), "keysounds decoded in parallel")
	fs.StringVar(&cfg.IFSTools, "ifstools", songpack.DefaultIFSTools, "ifstools binary")
	fs.BoolVar(&cfg.NameFromArchive, "name-from-archive", false, "name the output after the title stored in the archive")

	fs.BoolVar(&cfg.Debug, "debug", false, "enable debug output")

	fs.BoolVar(&cfg.ShowVersion, "version", false, "show version information")
	fs.BoolVar(&cfg.ShowVersion, "v", false, "show version information (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [flags] <file.ifs> [output.wav]\n", name)
		fmt.Fprintf(fs.Output(), "       %s [flags] -dir <song_ifs> [output.wav]\n\n", name)
		fs.PrintDefaults()
	}

	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			break
		}
		positional = append(positional, args[0])
		args = args[1:]
	}

	if cfg.ShowVersion {
		return cfg, nil
	}

	selected := 0
	if difficulty != "" {
		selected++
	} else {
		difficulty = songpack.Normal.String()
	}
	for _, d := range songpack.Difficulties {
		if *shortcuts[d] {
			selected++
			difficulty = d.String()
		}
	}
	if selected > 1 {
		return nil, ErrConflictingDifficulty
	}

	d, err := songpack.ParseDifficulty(difficulty)
	if err != nil {
		return nil, err
	}
	cfg.Difficulty = d

	if cfg.Dir == "" {
		if len(positional) == 0 {
			return nil, ErrNoInput
		}
		cfg.IFSPath, positional = positional[0], positional[1:]
	}

	switch len(positional) {
	case 0:
	case 1:
		if cfg.Output != "" {
			return nil, ErrConflictingOutput
		}
		cfg.Output = positional[0]
	default:
		return nil, fmt.Errorf("%w: %s", ErrTooManyArgs, strings.Join(positional, " "))
	}

	if cfg.Workers < 1 {
		return nil, ErrWorkers
	}
	return cfg, nil
}

// SongName is the base name shared by the archive and chart files.
func (c *Config) SongName() string {
	if c.Dir != "" {
		return strings.TrimSuffix(filepath.Base(filepath.Clean(c.Dir)), "_ifs")
	}
	return songpack.PackageName(c.IFSPath)
}

// OutputPath returns the WAV path. Unless -o was given it sits next to the
// input as <name>_<difficulty>.wav, where name is the song name or, with
// NameFromArchive, the archive title reduced to a safe file name.
func (c *Config) OutputPath(archiveName string) string {
	if c.Output != "" {
		return c.Output
	}

	dir := filepath.Dir(c.IFSPath)
	if c.Dir != "" {
		dir = filepath.Dir(filepath.Clean(c.Dir))
	}

	base := c.SongName()
	if c.NameFromArchive {
		// titles with no ASCII letters sanitize to nothing
		if n := sanitize.BaseName(archiveName); strings.Trim(n, "-") != "" {
			base = n
		}
	}
	return filepath.Join(dir, base+"_"+c.Difficulty.String()+".wav")
}
