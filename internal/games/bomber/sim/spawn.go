package sim

import (
	"math/rand"

	"github.com/vovakirdan/tui-bomber/internal/core"
	"github.com/vovakirdan/tui-bomber/internal/games/bomber/levels"
	"github.com/vovakirdan/tui-bomber/internal/games/bomber/world"
)

// sampleCell draws uniformly random interior cells until valid accepts one
// or the attempt budget runs out.
func sampleCell(rng *rand.Rand, g *world.Grid, attempts int, valid func(world.Cell) bool) (world.Cell, bool) {
	if g.Width() < 3 || g.Height() < 3 {
		return world.Cell{}, false
	}
	for i := 0; i < attempts; i++ {
		c := world.Cell{
			Col: 1 + rng.Intn(g.Width()-2),
			Row: 1 + rng.Intn(g.Height()-2),
		}
		if valid(c) {
			return c, true
		}
	}
	return world.Cell{}, false
}

// scanCell returns the first valid cell scanning from the bottom-right corner.
func scanCell(g *world.Grid, valid func(world.Cell) bool) (world.Cell, bool) {
	for row := g.Height() - 1; row >= 0; row-- {
		for col := g.Width() - 1; col >= 0; col-- {
			c := world.Cell{Col: col, Row: row}
			if valid(c) {
				return c, true
			}
		}
	}
	return world.Cell{}, false
}

// inExclusion reports whether c lies in the square of side 2n-1 around start.
func inExclusion(c, start world.Cell, n int) bool {
	return core.Abs(c.Col-start.Col) < n && core.Abs(c.Row-start.Row) < n
}

// portalFallback is the fixed tile used when no random portal cell is
// accepted. It is never a blocking tile while the grid has a free cell.
func portalFallback(g *world.Grid) world.Cell {
	return levels.PortalCell(g)
}
