package primitives

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func TestMakeUndetermined(t *testing.T) {
	if d := MakeUndetermined(TileSet(0)); !IsContradiction(d) {
		t.Errorf("MakeUndetermined(empty) = %v, want a contradiction", d)
	}

	d := MakeUndetermined(TileSet(0).With(TileBT))
	if tile, ok := d.DefiniteTile(); !ok || tile != TileBT {
		t.Errorf("MakeUndetermined(singleton) = %v, want Fixed(bt)", d)
	}

	d = MakeUndetermined(TileSet(0).With(TileBT).With(TileLR))
	if n, err := d.Uncertainty(); err != nil || n != 2 {
		t.Errorf("Uncertainty() = (%d, %v), want (2, nil)", n, err)
	}
}

func TestUncertainty(t *testing.T) {
	if n, err := FullDomain().Uncertainty(); err != nil || n != TileCount {
		t.Errorf("FullDomain().Uncertainty() = (%d, %v), want (%d, nil)", n, err, TileCount)
	}
	if n, err := MakeFixed(TileBL).Uncertainty(); err != nil || n != 0 {
		t.Errorf("Fixed.Uncertainty() = (%d, %v), want (0, nil)", n, err)
	}
	if _, err := MakeContradiction().Uncertainty(); !errors.Is(err, ErrContradiction) {
		t.Errorf("Contradiction.Uncertainty() error = %v, want ErrContradiction", err)
	}
}

func TestCandidates(t *testing.T) {
	if got, want := MakeFixed(TileTR).Candidates(), TileSet(0).With(TileTR); got != want {
		t.Errorf("Fixed.Candidates() = %v, want %v", got, want)
	}
	if got := MakeContradiction().Candidates(); got != 0 {
		t.Errorf("Contradiction.Candidates() = %v, want the empty set", got)
	}
	if got := FullDomain().Candidates(); !got.IsFull() {
		t.Errorf("FullDomain().Candidates() = %v, want the full set", got)
	}
}

func TestNarrow(t *testing.T) {
	full := FullDomain()
	if got := full.Narrow(FullTileSet()); got != full {
		t.Errorf("Narrow(full) = %v, want the receiver unchanged", got)
	}

	pair := TileSet(0).With(TileBL).With(TileTR)
	d := full.Narrow(pair)
	if n, err := d.Uncertainty(); err != nil || n != 2 {
		t.Errorf("narrowed Uncertainty() = (%d, %v), want (2, nil)", n, err)
	}

	if tile, ok := d.Narrow(TileSet(0).With(TileTR)).DefiniteTile(); !ok || tile != TileTR {
		t.Errorf("narrowing to a singleton = (%v, %v), want Fixed(tr)", tile, ok)
	}
	if !IsContradiction(full.Narrow(TileSet(0))) {
		t.Error("narrowing to the empty set did not produce a contradiction")
	}

	fixed := MakeFixed(TileBL)
	if got := fixed.Narrow(pair); got != fixed {
		t.Errorf("Fixed.Narrow(allowing set) = %v, want the receiver", got)
	}
	if !IsContradiction(fixed.Narrow(TileSet(0).With(TileTR))) {
		t.Error("Fixed.Narrow(excluding set) did not produce a contradiction")
	}

	c := MakeContradiction()
	if got := c.Narrow(FullTileSet()); !IsContradiction(got) {
		t.Errorf("Contradiction.Narrow(full) = %v, want a contradiction", got)
	}
}

func TestCollapse(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 1024))
	d := FullDomain().Collapse(rng, DefaultWeights())
	if _, ok := d.DefiniteTile(); !ok {
		t.Fatalf("Collapse() = %v, want a fixed cell", d)
	}

	if got := d.Collapse(rng, DefaultWeights()); got != d {
		t.Errorf("Collapse() on a fixed cell = %v, want the receiver", got)
	}

	c := MakeContradiction()
	if got := c.Collapse(rng, DefaultWeights()); !IsContradiction(got) {
		t.Errorf("Collapse() on a contradiction = %v, want the receiver", got)
	}
}

func TestCollapseHonorsWeights(t *testing.T) {
	// With all the weight on one candidate, the draw can only pick it.
	var w Weights
	w[TileBT] = 7

	rng := rand.New(rand.NewPCG(1, 2))
	set := TileSet(0).With(TileEmpty).With(TileBT).With(TileBLTR)
	for range 20 {
		d := MakeUndetermined(set).Collapse(rng, w)
		if tile, ok := d.DefiniteTile(); !ok || tile != TileBT {
			t.Fatalf("Collapse() = %v, want Fixed(bt)", d)
		}
	}
}

func TestCollapseZeroWeights(t *testing.T) {
	// All-zero weights fall back to a uniform draw.
	rng := rand.New(rand.NewPCG(7, 9))
	set := TileSet(0).With(TileBL).With(TileTR)
	d := MakeUndetermined(set).Collapse(rng, Weights{})
	tile, ok := d.DefiniteTile()
	if !ok {
		t.Fatalf("Collapse() = %v, want a fixed cell", d)
	}
	if !set.Contains(tile) {
		t.Errorf("Collapse() fixed %v, want a member of %v", tile, set)
	}
}

func TestCollapseDeterministic(t *testing.T) {
	a := FullDomain().Collapse(rand.New(rand.NewPCG(42, 1024)), DefaultWeights())
	b := FullDomain().Collapse(rand.New(rand.NewPCG(42, 1024)), DefaultWeights())
	if a.String() != b.String() {
		t.Errorf("same-seed collapses differ: %v vs %v", a, b)
	}
}

func TestDomainString(t *testing.T) {
	tests := []struct {
		d    Domain
		want string
	}{
		{MakeFixed(TileBL), "Fixed(bl)"},
		{MakeContradiction(), "Contradiction()"},
		{FullDomain(), "Undetermined(12)"},
	}
	for _, tt := range tests {
		if got := tt.d.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
