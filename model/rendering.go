package model

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "

	macosClearCmd = "clear"
)

// Viewport is the window of the unbounded plane that gets drawn
type Viewport struct {
	Origin Position
	Width  int
	Height int
}

// Contains reports whether p falls inside the viewport
func (v Viewport) Contains(p Position) bool {
	return p.X >= v.Origin.X && p.X < v.Origin.X+v.Width &&
		p.Y >= v.Origin.Y && p.Y < v.Origin.Y+v.Height
}

// Rasterize returns the viewport as rows of booleans. Cells outside the
// viewport are skipped.
func (v Viewport) Rasterize(cells []Position) [][]bool {
	rows := make([][]bool, v.Height)
	for i := range rows {
		rows[i] = make([]bool, v.Width)
	}
	for _, p := range cells {
		if v.Contains(p) {
			rows[p.Y-v.Origin.Y][p.X-v.Origin.X] = true
		}
	}
	return rows
}

// TerminalRenderer implements basic terminal rendering
type TerminalRenderer struct {
	View Viewport
	Out  io.Writer
}

// NewTerminalRenderer returns a renderer writing to stdout
func NewTerminalRenderer(view Viewport) *TerminalRenderer {
	return &TerminalRenderer{View: view, Out: os.Stdout}
}

// Render draws the living cells inside the viewport
func (r *TerminalRenderer) Render(cells []Position) string {
	var b strings.Builder
	for _, row := range r.View.Rasterize(cells) {
		for _, alive := range row {
			if alive {
				b.WriteString(gridPosBlock)
			} else {
				b.WriteString(gridPosEmpty)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Display renders the cells to the renderer's output
func (r *TerminalRenderer) Display(cells []Position) {
	fmt.Fprint(r.Out, r.Render(cells))
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() {
	cmd := exec.Command(macosClearCmd)
	cmd.Stdout = r.Out
	if err := cmd.Run(); err != nil {
		fmt.Fprintln(r.Out, "Error clearing terminal:", err)
	}
}
