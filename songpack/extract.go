// SPDX-License-Identifier: EPL-2.0

package songpack

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

const DefaultIFSTools = "ifstools"

// Extractor unpacks a game archive into a song package.
type Extractor interface {
	Extract(ctx context.Context, ifsPath string) (*Package, error)
}

// IFSTools runs the ifstools command line utility, which unpacks
// <dir>/<name>.ifs into <dir>/<name>_ifs.
type IFSTools struct {
	// Binary defaults to DefaultIFSTools, looked up in PATH.
	Binary string
	// Args are passed before the .ifs path.
	Args []string
	// Stdout receives the tool's progress output; nil discards it.
	Stdout io.Writer
}

func (t IFSTools) Extract(ctx context.Context, ifsPath string) (*Package, error) {
	bin := t.Binary
	if bin == "" {
		bin = DefaultIFSTools
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, append(append([]string{}, t.Args...), ifsPath)...)
	cmd.Stdout = t.Stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, &ExtractError{Path: ifsPath, Output: strings.TrimSpace(stderr.String()), Err: err}
	}

	pkg := &Package{Dir: ExtractDir(ifsPath), Name: PackageName(ifsPath)}
	if info, err := os.Stat(pkg.Dir); err != nil || !info.IsDir() {
		return nil, &ExtractError{
			Path: ifsPath,
			Err:  fmt.Errorf("no output directory %s", pkg.Dir),
		}
	}
	return pkg, nil
}
