package primitives

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// ErrContradiction reports a cell with no remaining tile that satisfies its
// constraints.
var ErrContradiction = errors.New("pipegen: contradiction: no tile satisfies the cell's constraints")

type sealed = any

// Domain represents what is known about a single grid cell: fixed to one
// tile, undetermined among a candidate set, or contradictory.
type Domain interface {
	sealed // This interface is not meant to be implemented outside this package.

	// Uncertainty returns the number of ways the cell could still be
	// resolved: 0 once fixed, the candidate count while undetermined. It
	// fails with ErrContradiction for a contradictory cell.
	Uncertainty() (int, error)

	// Candidates returns the set of tiles the cell could still take.
	Candidates() TileSet

	// DefiniteTile returns the cell's tile once fixed.
	DefiniteTile() (Tile, bool)

	// Collapse resolves an undetermined cell to a single tile, drawn from
	// its candidates with probability proportional to the given weights.
	// Fixed and contradictory cells are returned unchanged.
	Collapse(rng *rand.Rand, w Weights) Domain

	// Narrow filters the cell to the candidates in allowed. An
	// undetermined cell narrowed to one candidate becomes fixed; narrowed
	// to none it becomes a contradiction, as does a fixed cell whose tile
	// is not allowed.
	Narrow(allowed TileSet) Domain

	String() string
}

// IsContradiction reports whether d is the contradictory state.
func IsContradiction(d Domain) bool {
	_, is := d.(*Contradiction)
	return is
}

// Contradiction is the terminal state of a cell with no remaining tile.
type Contradiction struct{}

var contradiction = &Contradiction{}

// MakeContradiction returns the shared contradictory cell value.
func MakeContradiction() *Contradiction {
	return contradiction
}

func (c *Contradiction) Uncertainty() (int, error) {
	return 0, ErrContradiction
}

func (c *Contradiction) Candidates() TileSet {
	return 0
}

func (c *Contradiction) DefiniteTile() (Tile, bool) {
	return 0, false
}

func (c *Contradiction) Collapse(rng *rand.Rand, w Weights) Domain {
	return c
}

func (c *Contradiction) Narrow(allowed TileSet) Domain {
	return c
}

func (c *Contradiction) String() string {
	return "Contradiction()"
}

// Fixed is a cell resolved to exactly one tile.
type Fixed struct {
	tile Tile
}

// MakeFixed returns a cell fixed to t.
func MakeFixed(t Tile) *Fixed {
	return &Fixed{tile: t}
}

// Tile returns the resolved tile.
func (f *Fixed) Tile() Tile {
	return f.tile
}

func (f *Fixed) Uncertainty() (int, error) {
	return 0, nil
}

func (f *Fixed) Candidates() TileSet {
	return TileSet(0).With(f.tile)
}

func (f *Fixed) DefiniteTile() (Tile, bool) {
	return f.tile, true
}

func (f *Fixed) Collapse(rng *rand.Rand, w Weights) Domain {
	return f
}

func (f *Fixed) Narrow(allowed TileSet) Domain {
	if allowed.Contains(f.tile) {
		return f
	}
	return MakeContradiction()
}

func (f *Fixed) String() string {
	return fmt.Sprintf("Fixed(%s)", f.tile)
}

// Undetermined is a cell still choosing among two or more candidates.
type Undetermined struct {
	set TileSet
}

// MakeUndetermined returns a cell over the given candidates, normalizing
// degenerate sets: empty becomes a contradiction and a singleton becomes
// fixed.
func MakeUndetermined(set TileSet) Domain {
	switch set.Count() {
	case 0:
		return MakeContradiction()
	case 1:
		t, _ := set.First()
		return MakeFixed(t)
	}
	return &Undetermined{set: set}
}

// FullDomain returns the initial state of every cell: undetermined over the
// full tile set.
func FullDomain() Domain {
	return &Undetermined{set: FullTileSet()}
}

func (u *Undetermined) Uncertainty() (int, error) {
	return u.set.Count(), nil
}

func (u *Undetermined) Candidates() TileSet {
	return u.set
}

func (u *Undetermined) DefiniteTile() (Tile, bool) {
	return 0, false
}

func (u *Undetermined) Collapse(rng *rand.Rand, w Weights) Domain {
	// A well-formed Undetermined is never empty; guard anyway.
	if u.set == 0 {
		return MakeContradiction()
	}

	total := 0
	for t := range u.set.Tiles() {
		total += w[t]
	}
	if total <= 0 {
		// Every candidate carries zero weight; fall back to a uniform draw.
		pick := rng.IntN(u.set.Count())
		for t := range u.set.Tiles() {
			if pick == 0 {
				return MakeFixed(t)
			}
			pick--
		}
		panic("BUG: uniform draw exhausted the candidate set")
	}

	pick := rng.IntN(total)
	for t := range u.set.Tiles() {
		pick -= w[t]
		if pick < 0 {
			return MakeFixed(t)
		}
	}
	panic("BUG: weighted draw exhausted the candidate set")
}

func (u *Undetermined) Narrow(allowed TileSet) Domain {
	next := u.set & allowed
	if next == u.set {
		return u
	}
	return MakeUndetermined(next)
}

func (u *Undetermined) String() string {
	return fmt.Sprintf("Undetermined(%d)", u.set.Count())
}
