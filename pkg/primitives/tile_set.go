package primitives

import (
	"fmt"
	"iter"
	"math/bits"
	"strings"
)

// TileSet efficiently represents a set of tile orientations.
type TileSet uint16

// FullTileSet returns the set of all tile orientations.
func FullTileSet() TileSet {
	return TileSet(1)<<TileCount - 1
}

// Contains checks if t is in the set.
func (s TileSet) Contains(t Tile) bool {
	return s&(1<<t) != 0
}

// With returns the set with t added.
func (s TileSet) With(t Tile) TileSet {
	return s | 1<<t
}

// Without returns the set with t removed.
func (s TileSet) Without(t Tile) TileSet {
	return s &^ (1 << t)
}

// Count returns the number of tiles in the set.
func (s TileSet) Count() int {
	return bits.OnesCount16(uint16(s))
}

// IsFull checks if the set holds every tile orientation.
func (s TileSet) IsFull() bool {
	return s == FullTileSet()
}

// First returns the lowest-ordered tile in the set.
func (s TileSet) First() (Tile, bool) {
	if s == 0 {
		return 0, false
	}
	return Tile(bits.TrailingZeros16(uint16(s))), true
}

// Tiles returns the set's members in tile order.
func (s TileSet) Tiles() iter.Seq[Tile] {
	return func(yield func(Tile) bool) {
		b := uint16(s)
		for b != 0 {
			if !yield(Tile(bits.TrailingZeros16(b))) {
				return
			}
			b &= b - 1
		}
	}
}

func (s TileSet) String() string {
	names := make([]string, 0, s.Count())
	for t := range s.Tiles() {
		names = append(names, t.String())
	}
	return fmt.Sprintf("TileSet(%s)", strings.Join(names, ", "))
}
