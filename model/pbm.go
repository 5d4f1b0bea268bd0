package model

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// WritePBM writes the viewport as a plain (P1) PBM image. Living cells are
// written as 0 (white) and dead ones as 1 (black).
func WritePBM(w io.Writer, view Viewport, cells []Position) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P1\n%d %d\n", view.Width, view.Height)

	line := make([]byte, view.Width+1)
	line[view.Width] = '\n'
	for _, row := range view.Rasterize(cells) {
		for x, alive := range row {
			if alive {
				line[x] = '0'
			} else {
				line[x] = '1'
			}
		}
		bw.Write(line)
	}

	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "[WritePBM] failed to write image")
	}
	return nil
}

// PBMFileName returns the frame file name for a round
func PBMFileName(round int) string {
	return fmt.Sprintf("gol_%05d.pbm", round)
}

// ExportPBM writes one frame into dir, replacing an existing file
func ExportPBM(dir string, round int, view Viewport, cells []Position) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "[ExportPBM] failed to create dir: %+v", dir)
	}

	path := filepath.Join(dir, PBMFileName(round))
	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrapf(err, "[ExportPBM] failed to create file: %+v", path)
	}
	defer f.Close()

	if err := WritePBM(f, view, cells); err != nil {
		return "", errors.Wrapf(err, "[ExportPBM] file: %+v", path)
	}
	return path, nil
}
