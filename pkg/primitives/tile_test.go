package primitives

import (
	"fmt"
	"testing"
)

func TestTileCount(t *testing.T) {
	if TileCount != 12 {
		t.Errorf("TileCount = %d, want 12", TileCount)
	}
	count := 0
	for range AllTiles() {
		count++
	}
	if count != TileCount {
		t.Errorf("AllTiles() yielded %d tiles, want %d", count, TileCount)
	}
}

func TestTileTable(t *testing.T) {
	for tile := range AllTiles() {
		t.Run(tile.String(), func(t *testing.T) {
			if tile.String() == "" || tile.String() == "unknown" {
				t.Errorf("String() = %q, want a tile name", tile.String())
			}
			if got := len([]rune(tile.Glyph())); got != 3 {
				t.Errorf("Glyph() = %q with %d runes, want 3", tile.Glyph(), got)
			}
			if tile.Weight() <= 0 {
				t.Errorf("Weight() = %d, want positive", tile.Weight())
			}
		})
	}
}

func TestTileString(t *testing.T) {
	tests := []struct {
		tile Tile
		want string
	}{
		{TileEmpty, "empty"},
		{TileBL, "bl"},
		{TileLTR, "ltr"},
		{TileBLTR, "bltr"},
		{Tile(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.tile.String(); got != tt.want {
			t.Errorf("Tile(%d).String() = %q, want %q", uint8(tt.tile), got, tt.want)
		}
	}
}

func TestParseTile(t *testing.T) {
	for tile := range AllTiles() {
		got, err := ParseTile(tile.String())
		if err != nil {
			t.Errorf("ParseTile(%q) failed: %v", tile.String(), err)
			continue
		}
		if got != tile {
			t.Errorf("ParseTile(%q) = %v, want %v", tile.String(), got, tile)
		}
	}
	if _, err := ParseTile("spiral"); err == nil {
		t.Error(`ParseTile("spiral") succeeded, want error`)
	}
}

func TestConnectivity(t *testing.T) {
	tests := []struct {
		tile                     Tile
		left, right, top, bottom bool
	}{
		{TileEmpty, false, false, false, false},
		{TileBL, true, false, false, true},
		{TileBLT, true, false, true, true},
		{TileBLR, true, true, false, true},
		{TileBT, false, false, true, true},
		{TileBTR, false, true, true, true},
		{TileBR, false, true, false, true},
		{TileLT, true, false, true, false},
		{TileLTR, true, true, true, false},
		{TileLR, true, true, false, false},
		{TileTR, false, true, true, false},
		{TileBLTR, true, true, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.tile.String(), func(t *testing.T) {
			if got := tt.tile.ConnectsLeft(); got != tt.left {
				t.Errorf("ConnectsLeft() = %v, want %v", got, tt.left)
			}
			if got := tt.tile.ConnectsRight(); got != tt.right {
				t.Errorf("ConnectsRight() = %v, want %v", got, tt.right)
			}
			if got := tt.tile.ConnectsTop(); got != tt.top {
				t.Errorf("ConnectsTop() = %v, want %v", got, tt.top)
			}
			if got := tt.tile.ConnectsBottom(); got != tt.bottom {
				t.Errorf("ConnectsBottom() = %v, want %v", got, tt.bottom)
			}
		})
	}
}

func TestDefaultWeights(t *testing.T) {
	w := DefaultWeights()
	for tile := range AllTiles() {
		if w[tile] != tile.Weight() {
			t.Errorf("DefaultWeights()[%v] = %d, want %d", tile, w[tile], tile.Weight())
		}
	}
	if w[TileBLTR] >= w[TileEmpty] {
		t.Errorf("bltr weight %d should be below empty weight %d", w[TileBLTR], w[TileEmpty])
	}
}

func TestFits(t *testing.T) {
	tests := []struct {
		side Side
		a, b Tile
		want bool
	}{
		{SideLeft, TileLR, TileLR, true},
		{SideLeft, TileLR, TileEmpty, false},
		{SideLeft, TileEmpty, TileEmpty, true},
		{SideLeft, TileEmpty, TileBT, true},
		{SideRight, TileLR, TileBT, false},
		{SideRight, TileLR, TileBLT, true},
		{SideBottom, TileBT, TileBT, true},
		{SideBottom, TileBT, TileEmpty, false},
		{SideTop, TileBT, TileLT, false},
		{SideTop, TileLT, TileBR, true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v_%v_%v", tt.side, tt.a, tt.b), func(t *testing.T) {
			if got := Fits(tt.side, tt.a, tt.b); got != tt.want {
				t.Errorf("Fits(%v, %v, %v) = %v, want %v", tt.side, tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestFitsMirrors(t *testing.T) {
	for a := range AllTiles() {
		for b := range AllTiles() {
			if got, want := FitsRight(a, b), FitsLeft(b, a); got != want {
				t.Errorf("FitsRight(%v, %v) = %v, want FitsLeft(%v, %v) = %v", a, b, got, b, a, want)
			}
			if got, want := FitsTop(a, b), FitsBottom(b, a); got != want {
				t.Errorf("FitsTop(%v, %v) = %v, want FitsBottom(%v, %v) = %v", a, b, got, b, a, want)
			}
		}
	}
}

func TestSideString(t *testing.T) {
	tests := []struct {
		side Side
		want string
	}{
		{SideLeft, "left"},
		{SideRight, "right"},
		{SideTop, "top"},
		{SideBottom, "bottom"},
		{Side(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.side.String(); got != tt.want {
			t.Errorf("Side(%d).String() = %q, want %q", int(tt.side), got, tt.want)
		}
	}
}

func TestSideOpposite(t *testing.T) {
	tests := []struct {
		side Side
		want Side
	}{
		{SideLeft, SideRight},
		{SideRight, SideLeft},
		{SideTop, SideBottom},
		{SideBottom, SideTop},
	}
	for _, tt := range tests {
		if got := tt.side.Opposite(); got != tt.want {
			t.Errorf("%v.Opposite() = %v, want %v", tt.side, got, tt.want)
		}
	}
}

func TestSideOffset(t *testing.T) {
	if dx, dy := SideBottom.Offset(); dx != 0 || dy != 1 {
		t.Errorf("SideBottom.Offset() = (%d, %d), want (0, 1)", dx, dy)
	}
	for _, side := range AllSides() {
		dx, dy := side.Offset()
		ox, oy := side.Opposite().Offset()
		if dx+ox != 0 || dy+oy != 0 {
			t.Errorf("%v and %v offsets do not cancel: (%d, %d) vs (%d, %d)", side, side.Opposite(), dx, dy, ox, oy)
		}
		if dx*dx+dy*dy != 1 {
			t.Errorf("%v.Offset() = (%d, %d), want a unit step", side, dx, dy)
		}
	}
}

func TestCompatibleSet(t *testing.T) {
	// TileEmpty's right edge is a wall, so only wall-left tiles accept it
	// on their left.
	got := CompatibleSet(SideLeft, TileSet(0).With(TileEmpty))
	want := TileSet(0).With(TileEmpty).With(TileBT).With(TileBTR).With(TileBR).With(TileTR)
	if got != want {
		t.Errorf("CompatibleSet(SideLeft, {empty}) = %v, want %v", got, want)
	}

	if got := CompatibleSet(SideRight, FullTileSet()); !got.IsFull() {
		t.Errorf("CompatibleSet(SideRight, full) = %v, want the full set", got)
	}

	if got := CompatibleSet(SideTop, TileSet(0)); got != 0 {
		t.Errorf("CompatibleSet(SideTop, empty) = %v, want the empty set", got)
	}
}
