package pipegen

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"crosswarped.com/pipegen/pkg/primitives"
)

// ErrOutOfBounds reports a coordinate outside the grid.
var ErrOutOfBounds = errors.New("pipegen: coordinates out of bounds")

// Grid is a square board of cells, each holding what is still known about
// its tile.
//
// Cells are stored row-major: (x, y) lives at y*size+x, and y grows
// downward.
type Grid struct {
	size  int
	cells []primitives.Domain
}

// NewGrid returns a size×size grid with every cell undetermined over the
// full tile set.
func NewGrid(size int) *Grid {
	cells := make([]primitives.Domain, size*size)
	for i := range cells {
		cells[i] = primitives.FullDomain()
	}
	return &Grid{size: size, cells: cells}
}

// Size returns the grid's side length.
func (g *Grid) Size() int {
	return g.size
}

// Cell returns the cell at (x, y).
func (g *Grid) Cell(x, y int) (primitives.Domain, error) {
	if x < 0 || x >= g.size || y < 0 || y >= g.size {
		return nil, fmt.Errorf("cell (%d, %d): %w", x, y, ErrOutOfBounds)
	}
	return g.cells[y*g.size+x], nil
}

// SetCell replaces the cell at (x, y).
func (g *Grid) SetCell(x, y int, d primitives.Domain) error {
	if x < 0 || x >= g.size || y < 0 || y >= g.size {
		return fmt.Errorf("cell (%d, %d): %w", x, y, ErrOutOfBounds)
	}
	g.cells[y*g.size+x] = d
	return nil
}

// TotalUncertainty sums the uncertainty of every cell. It fails with the
// coordinate of the first contradictory cell in sweep order.
func (g *Grid) TotalUncertainty() (int, error) {
	total := 0
	for i, cell := range g.cells {
		n, err := cell.Uncertainty()
		if err != nil {
			return 0, fmt.Errorf("cell (%d, %d): %w", i%g.size, i/g.size, err)
		}
		total += n
	}
	return total, nil
}

// Solved reports whether every cell is fixed.
func (g *Grid) Solved() bool {
	for _, cell := range g.cells {
		if _, ok := cell.DefiniteTile(); !ok {
			return false
		}
	}
	return true
}

// FirstContradiction returns the coordinate of the first contradictory cell
// in sweep order.
func (g *Grid) FirstContradiction() (x, y int, ok bool) {
	for i, cell := range g.cells {
		if primitives.IsContradiction(cell) {
			return i % g.size, i / g.size, true
		}
	}
	return 0, 0, false
}

// Repr renders the grid one row per line: a fixed cell shows its tile
// glyph, an undetermined cell its candidate count, and a contradictory
// cell "!".
func (g *Grid) Repr() string {
	lines := make([]string, g.size)
	var row strings.Builder
	for y := range g.size {
		row.Reset()
		for x := range g.size {
			row.WriteString(renderCell(g.cells[y*g.size+x]))
		}
		lines[y] = row.String()
	}
	return strings.Join(lines, "\n")
}

func renderCell(d primitives.Domain) string {
	if t, ok := d.DefiniteTile(); ok {
		return t.Glyph()
	}
	n, err := d.Uncertainty()
	if err != nil {
		return "!"
	}
	return strconv.Itoa(n)
}

func (g *Grid) DebugString() string {
	return fmt.Sprintf("Grid{size: %d, cells: %v}", g.size, g.cells)
}
