package pipegen

import (
	"context"
	"fmt"
	"math/rand/v2"

	"crosswarped.com/pipegen/pkg/primitives"
)

// Solver drives a grid to full determination by repeatedly fixing the
// lowest-uncertainty cell and propagating edge constraints to a fixed
// point.
type Solver struct {
	weights primitives.Weights

	rand *rand.Rand
}

// NewSolver returns a solver drawing tiles with the given weights. All
// randomness, for both tile sampling and tie-breaking, comes from rng, so
// runs with an identical source are identical.
func NewSolver(w primitives.Weights, rng *rand.Rand) *Solver {
	return &Solver{weights: w, rand: rng}
}

// Solve runs collapse/propagate cycles on g until every cell is fixed or a
// contradiction halts the run. The grid keeps its last-evaluated state, so
// it can be rendered after an error.
func (s *Solver) Solve(ctx context.Context, g *Grid) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		collapsed, err := g.CollapseLowestUncertaintyCell(s.rand, s.weights)
		if err != nil {
			return err
		}
		if !collapsed {
			return nil
		}

		// Sweep until the total uncertainty stops changing between
		// consecutive sweeps.
		prev := -1
		for {
			if err := g.Propagate(); err != nil {
				return err
			}
			total, err := g.TotalUncertainty()
			if err != nil {
				return err
			}
			if total == prev {
				break
			}
			prev = total
		}
	}
}

// Generate allocates a size×size grid and solves it. The grid is returned
// even when the error is non-nil.
func (s *Solver) Generate(ctx context.Context, size int) (*Grid, error) {
	g := NewGrid(size)
	return g, s.Solve(ctx, g)
}

// CollapseLowestUncertaintyCell fixes one cell, chosen uniformly at random
// among those tied at the minimum uncertainty, skipping cells that are
// already fixed. It returns false when no undetermined cell remains and
// fails on the first contradictory cell in sweep order.
func (g *Grid) CollapseLowestUncertaintyCell(rng *rand.Rand, w primitives.Weights) (bool, error) {
	least := 0
	var opts []int
	for i, cell := range g.cells {
		n, err := cell.Uncertainty()
		if err != nil {
			return false, fmt.Errorf("cell (%d, %d): %w", i%g.size, i/g.size, err)
		}
		if n == 0 {
			continue
		}
		if least == 0 || n < least {
			least = n
			opts = opts[:0]
		}
		if n == least {
			opts = append(opts, i)
		}
	}

	if len(opts) == 0 {
		return false, nil
	}

	idx := opts[rng.IntN(len(opts))]
	g.cells[idx] = g.cells[idx].Collapse(rng, w)
	return true, nil
}

// Propagate performs one constraint sweep, left to right then top to
// bottom, narrowing each cell to the tiles at least one candidate of each
// populated neighbor can sit against. Cells are updated in place, so
// narrowings made earlier in the sweep constrain the cells after them.
// Encountering a contradictory cell, current or neighbor, fails the sweep
// with that cell's coordinate. Reaching a fixed point takes repeated calls.
func (g *Grid) Propagate() error {
	for y := range g.size {
		for x := range g.size {
			cell := g.cells[y*g.size+x]
			if primitives.IsContradiction(cell) {
				return fmt.Errorf("cell (%d, %d): %w", x, y, primitives.ErrContradiction)
			}

			allowed := primitives.FullTileSet()
			for _, side := range primitives.AllSides() {
				dx, dy := side.Offset()
				nx, ny := x+dx, y+dy
				if nx < 0 || nx >= g.size || ny < 0 || ny >= g.size {
					// A missing neighbor imposes no constraint.
					continue
				}
				neighbor := g.cells[ny*g.size+nx]
				if primitives.IsContradiction(neighbor) {
					return fmt.Errorf("cell (%d, %d): %w", nx, ny, primitives.ErrContradiction)
				}
				allowed &= primitives.CompatibleSet(side, neighbor.Candidates())
			}

			g.cells[y*g.size+x] = cell.Narrow(allowed)
		}
	}
	return nil
}
