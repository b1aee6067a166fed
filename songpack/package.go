// SPDX-License-Identifier: EPL-2.0

package songpack

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Package is an extracted song: Dir holds <Name>.2dx and one
// <Name>_<suffix>.bin per chart.
type Package struct {
	Dir  string
	Name string
}

// PackageName derives the song name from an .ifs path.
func PackageName(ifsPath string) string {
	base := filepath.Base(ifsPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ExtractDir is where ifstools unpacks ifsPath.
func ExtractDir(ifsPath string) string {
	return filepath.Join(filepath.Dir(ifsPath), PackageName(ifsPath)+"_ifs")
}

// Open checks that dir holds the archive of song name.
func Open(dir, name string) (*Package, error) {
	p := &Package{Dir: dir, Name: name}

	info, err := os.Stat(p.ArchivePath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoArchive, p.ArchivePath())
		}
		return nil, fmt.Errorf("%w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrNoArchive, p.ArchivePath())
	}
	return p, nil
}

func (p *Package) ArchivePath() string {
	return filepath.Join(p.Dir, p.Name+".2dx")
}

func (p *Package) ChartPath(d Difficulty) string {
	return filepath.Join(p.Dir, p.Name+"_"+d.Suffix()+".bin")
}

// Available lists the difficulties that have a chart file, easiest first.
func (p *Package) Available() []Difficulty {
	var out []Difficulty
	for _, d := range Difficulties {
		if info, err := os.Stat(p.ChartPath(d)); err == nil && !info.IsDir() {
			out = append(out, d)
		}
	}
	return out
}

func (p *Package) ReadArchive() ([]byte, error) {
	data, err := os.ReadFile(p.ArchivePath())
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return data, nil
}

// ReadChart loads the chart for d, returning a *MissingChartError when the
// package does not have one.
func (p *Package) ReadChart(d Difficulty) ([]byte, error) {
	data, err := os.ReadFile(p.ChartPath(d))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &MissingChartError{Requested: d, Available: p.Available()}
	}
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return data, nil
}

// Cleanup removes the extracted directory.
func (p *Package) Cleanup() error {
	if err := os.RemoveAll(p.Dir); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}
