// Package terminal estimates the pixel size of the terminal window the
// overlay will be shown in.
package terminal

import (
	"golang.org/x/term"
)

// Approximate cell geometry used to turn a character grid into pixels.
const (
	CellWidth  = 10
	CellHeight = 20

	DefaultColumns = 80
	DefaultRows    = 24
)

// CanvasSize returns an estimated pixel size for the first of fds that is
// a terminal, using CellWidth x CellHeight pixels per cell. When none of
// them is a terminal the 80x24 default grid is used.
//
// @example
// w, h := CanvasSize(int(os.Stdout.Fd()), int(os.Stderr.Fd()))
func CanvasSize(fds ...int) (width, height int) {
	for _, fd := range fds {
		if !term.IsTerminal(fd) {
			continue
		}
		cols, rows, err := term.GetSize(fd)
		if err != nil {
			continue
		}
		return FromCells(cols, rows)
	}
	return FromCells(DefaultColumns, DefaultRows)
}

// FromCells converts a character grid to pixels. Non-positive counts fall
// back to the default grid dimension.
func FromCells(cols, rows int) (width, height int) {
	if cols <= 0 {
		cols = DefaultColumns
	}
	if rows <= 0 {
		rows = DefaultRows
	}
	return cols * CellWidth, rows * CellHeight
}
