package sim

import "github.com/vovakirdan/tui-bomber/internal/games/bomber/world"

// Blast is the outcome of one detonation.
type Blast struct {
	Origin    world.Cell
	Segments  []world.Cell // Center first, then each ray outward
	Cleared   []world.Cell // Blocks removed by this blast
	ChainHits int          // One per block destroyed
}

// Propagate casts the four blast rays from origin up to rng tiles.
//
// A wall (or the map edge) stops a ray before its tile. A destructible block
// receives a segment, is cleared and absorbs the ray. Open floor receives a
// segment and the ray continues. Grid.ClearAt is the only mutation.
func Propagate(g *world.Grid, origin world.Cell, rng int) Blast {
	b := Blast{
		Origin:   origin,
		Segments: []world.Cell{origin},
	}
	for _, d := range cardinals {
		dc, dr := d.Delta()
	ray:
		for dist := 1; dist <= rng; dist++ {
			c := origin.Add(dc*dist, dr*dist)
			switch g.TileAt(c.Col, c.Row) {
			case world.TileWall:
				break ray
			case world.TileBlock:
				b.Segments = append(b.Segments, c)
				if g.ClearAt(c.Col, c.Row) {
					b.Cleared = append(b.Cleared, c)
					b.ChainHits++
				}
				break ray
			default:
				b.Segments = append(b.Segments, c)
			}
		}
	}
	return b
}
