package primitives

import (
	"fmt"
	"iter"
	"sync"
)

// Tile is one of the closed set of pipe-segment orientations. Tile names
// list the arms present: B(ottom), L(eft), T(op), R(ight).
type Tile uint8

const (
	TileEmpty Tile = iota
	TileBL
	TileBLT
	TileBLR
	TileBT
	TileBTR
	TileBR
	TileLT
	TileLTR
	TileLR
	TileTR
	TileBLTR

	tileBound
)

// TileCount is the number of tile orientations.
const TileCount = int(tileBound)

type tileInfo struct {
	name   string
	glyph  string
	left   bool
	right  bool
	top    bool
	bottom bool
	weight int
}

var tileTable = [TileCount]tileInfo{
	TileEmpty: {name: "empty", glyph: "   ", weight: 5},
	TileBL:    {name: "bl", glyph: "━┓ ", left: true, bottom: true, weight: 5},
	TileBLT:   {name: "blt", glyph: "━┫ ", left: true, top: true, bottom: true, weight: 5},
	TileBLR:   {name: "blr", glyph: "━┳━", left: true, right: true, bottom: true, weight: 2},
	TileBT:    {name: "bt", glyph: " ┃ ", top: true, bottom: true, weight: 3},
	TileBTR:   {name: "btr", glyph: " ┣━", right: true, top: true, bottom: true, weight: 2},
	TileBR:    {name: "br", glyph: " ┏━", right: true, bottom: true, weight: 3},
	TileLT:    {name: "lt", glyph: "━┛ ", left: true, top: true, weight: 3},
	TileLTR:   {name: "ltr", glyph: "━┻━", left: true, right: true, top: true, weight: 2},
	TileLR:    {name: "lr", glyph: "━━━", left: true, right: true, weight: 3},
	TileTR:    {name: "tr", glyph: " ┗━", right: true, top: true, weight: 3},
	TileBLTR:  {name: "bltr", glyph: "━╋━", left: true, right: true, top: true, bottom: true, weight: 1},
}

// AllTiles returns the closed set of tile orientations in declaration order.
func AllTiles() iter.Seq[Tile] {
	return func(yield func(Tile) bool) {
		for i := range TileCount {
			if !yield(Tile(i)) {
				return
			}
		}
	}
}

// ConnectsLeft reports whether the tile has a left arm.
func (t Tile) ConnectsLeft() bool {
	return tileTable[t].left
}

// ConnectsRight reports whether the tile has a right arm.
func (t Tile) ConnectsRight() bool {
	return tileTable[t].right
}

// ConnectsTop reports whether the tile has a top arm.
func (t Tile) ConnectsTop() bool {
	return tileTable[t].top
}

// ConnectsBottom reports whether the tile has a bottom arm.
func (t Tile) ConnectsBottom() bool {
	return tileTable[t].bottom
}

// Weight returns the tile's default selection weight.
func (t Tile) Weight() int {
	return tileTable[t].weight
}

// Glyph returns the tile's three-rune display string.
func (t Tile) Glyph() string {
	return tileTable[t].glyph
}

func (t Tile) String() string {
	if int(t) >= TileCount {
		return "unknown"
	}
	return tileTable[t].name
}

// ParseTile returns the tile named by String.
func ParseTile(name string) (Tile, error) {
	for t := range AllTiles() {
		if tileTable[t].name == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown tile %q", name)
}

// Weights maps each tile to its selection weight for collapse sampling.
// Weights are expected to be positive.
type Weights [TileCount]int

// DefaultWeights returns the built-in per-tile selection weights.
func DefaultWeights() Weights {
	var w Weights
	for t := range AllTiles() {
		w[t] = t.Weight()
	}
	return w
}

// Side identifies one edge of a cell. The vertical axis grows downward, so
// SideBottom is the neighbor at y+1.
type Side int

const (
	SideLeft Side = iota
	SideRight
	SideTop
	SideBottom
)

// AllSides returns the four sides in declaration order.
func AllSides() []Side {
	return []Side{SideLeft, SideRight, SideTop, SideBottom}
}

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	}
	return "unknown"
}

// Opposite returns the same edge seen from the neighbor's perspective.
func (s Side) Opposite() Side {
	switch s {
	case SideLeft:
		return SideRight
	case SideRight:
		return SideLeft
	case SideTop:
		return SideBottom
	case SideBottom:
		return SideTop
	}
	panic("BUG: invalid side")
}

// Offset returns the coordinate delta of the neighbor on s.
func (s Side) Offset() (dx, dy int) {
	switch s {
	case SideLeft:
		return -1, 0
	case SideRight:
		return 1, 0
	case SideTop:
		return 0, -1
	case SideBottom:
		return 0, 1
	}
	panic("BUG: invalid side")
}

// FitsLeft reports whether b can sit as a's left neighbor: a's left arm
// must meet b's right arm, or both must be absent.
func FitsLeft(a, b Tile) bool {
	return a.ConnectsLeft() == b.ConnectsRight()
}

// FitsBottom reports whether b can sit as a's bottom neighbor.
func FitsBottom(a, b Tile) bool {
	return a.ConnectsBottom() == b.ConnectsTop()
}

// FitsRight mirrors FitsLeft with the operands swapped.
func FitsRight(a, b Tile) bool {
	return FitsLeft(b, a)
}

// FitsTop mirrors FitsBottom with the operands swapped.
func FitsTop(a, b Tile) bool {
	return FitsBottom(b, a)
}

// Fits reports whether b can sit as a's neighbor on the given side.
func Fits(side Side, a, b Tile) bool {
	switch side {
	case SideLeft:
		return FitsLeft(a, b)
	case SideRight:
		return FitsRight(a, b)
	case SideTop:
		return FitsTop(a, b)
	case SideBottom:
		return FitsBottom(a, b)
	}
	panic("BUG: invalid side")
}

var (
	fitMasksOnce sync.Once

	// fitMasks[side][t] is the set of tiles accepted as t's neighbor on side.
	fitMasks [4][TileCount]TileSet
)

func ensureFitMasks() {
	fitMasksOnce.Do(func() {
		for _, side := range AllSides() {
			for a := range AllTiles() {
				var set TileSet
				for b := range AllTiles() {
					if Fits(side, a, b) {
						set = set.With(b)
					}
				}
				fitMasks[side][a] = set
			}
		}
	})
}

// CompatibleSet returns the tiles that accept at least one member of with
// as their neighbor on the given side.
func CompatibleSet(side Side, with TileSet) TileSet {
	ensureFitMasks()
	var out TileSet
	for t := range AllTiles() {
		if fitMasks[side][t]&with != 0 {
			out = out.With(t)
		}
	}
	return out
}
