// Package levels is the level data source of the bomber game: built-in
// layouts, YAML level files and the destructible seeding policy.
package levels

import (
	"fmt"
	"math/rand"

	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/tui-bomber/internal/games/bomber/world"
)

// Level is a wall layout plus the policy used to seed destructible blocks.
type Level struct {
	ID       string
	Name     string
	Layout   []string
	Density  float64      // Chance that a free, non-safe cell gets a block
	Safe     []world.Cell // Cells kept free of seeded blocks
	Start    world.Cell   // Player spawn tile
	Enemies  int          // Fixed enemy count, 0 uses the level formula
	FilePath string       // Empty for built-in levels
}

// Size returns the layout dimensions in tiles.
func (l Level) Size() (int, int) {
	w := 0
	for _, row := range l.Layout {
		w = max(w, len([]rune(row)))
	}
	return w, len(l.Layout)
}

// Build parses the layout and seeds destructible blocks with rng.
// Cells are visited in row-major order so equal seeds give equal grids.
func (l Level) Build(tileSize float64, rng *rand.Rand) (*world.Grid, error) {
	g, err := world.FromLayout(l.Layout, tileSize)
	if err != nil {
		return nil, fmt.Errorf("levels: build %s: %w", l.ID, err)
	}
	if g.HasBlockingTileAt(l.Start.Col, l.Start.Row) {
		return nil, fmt.Errorf("levels: build %s: start %d,%d is blocked", l.ID, l.Start.Col, l.Start.Row)
	}

	safe := mapset.New[world.Cell]()
	safe.Put(l.Start)
	safe.Put(PortalCell(g))
	for _, c := range l.Safe {
		safe.Put(c)
	}

	for row := 0; row < g.Height(); row++ {
		for col := 0; col < g.Width(); col++ {
			c := world.Cell{Col: col, Row: row}
			if g.HasBlockingTileAt(col, row) || safe.Has(c) {
				continue
			}
			if rng.Float64() < l.Density {
				g.SetBlock(col, row)
			}
		}
	}
	return g, nil
}

// PortalCell returns the fixed portal tile of g: the inner bottom-right
// corner, or the first free tile scanning back from it when that corner is
// blocked. Build never seeds a block on it.
func PortalCell(g *world.Grid) world.Cell {
	corner := world.Cell{Col: g.Width() - 2, Row: g.Height() - 2}
	if !g.HasBlockingTileAt(corner.Col, corner.Row) {
		return corner
	}
	for row := g.Height() - 2; row > 0; row-- {
		for col := g.Width() - 2; col > 0; col-- {
			if !g.HasBlockingTileAt(col, row) {
				return world.Cell{Col: col, Row: row}
			}
		}
	}
	return corner
}

// DefaultSafe returns the spawn tile and its right and lower neighbours.
func DefaultSafe(start world.Cell) []world.Cell {
	return []world.Cell{start, start.Add(0, 1), start.Add(1, 0)}
}
