// Package world holds the static tile map of a bomber level.
package world

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-bomber/internal/core"
)

// Tile is the kind of one map cell.
type Tile uint8

const (
	TileEmpty Tile = iota
	TileWall       // Indestructible
	TileBlock      // Destructible, cleared by blasts
)

// String returns the layout glyph of the tile.
func (t Tile) String() string {
	switch t {
	case TileWall:
		return "#"
	case TileBlock:
		return "+"
	default:
		return "."
	}
}

// Cell is an integer grid coordinate.
type Cell struct {
	Col, Row int
}

// Add returns the cell offset by (dc, dr).
func (c Cell) Add(dc, dr int) Cell {
	return Cell{Col: c.Col + dc, Row: c.Row + dr}
}

// Grid is a fixed-size tile map. Only destructible blocks ever change, and
// only through ClearAt.
type Grid struct {
	width    int
	height   int
	tileSize float64
	tiles    []Tile
}

// New creates an empty grid of width×height tiles of tileSize pixels.
func New(width, height int, tileSize float64) *Grid {
	return &Grid{
		width:    width,
		height:   height,
		tileSize: tileSize,
		tiles:    make([]Tile, width*height),
	}
}

// FromLayout parses an ASCII layout: '#' wall, '+' destructible block,
// '.' or ' ' floor. Short rows are padded with floor.
func FromLayout(lines []string, tileSize float64) (*Grid, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("world: empty layout")
	}
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	if width == 0 {
		return nil, fmt.Errorf("world: empty layout")
	}

	g := New(width, len(lines), tileSize)
	for row, line := range lines {
		for col, r := range []rune(line) {
			switch r {
			case '#':
				g.set(col, row, TileWall)
			case '+':
				g.set(col, row, TileBlock)
			case '.', ' ':
			default:
				return nil, fmt.Errorf("world: unknown tile %q at %d,%d", r, col, row)
			}
		}
	}
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// TileSize returns the edge length of one tile in pixels.
func (g *Grid) TileSize() float64 { return g.tileSize }

// InBounds reports whether (col, row) lies on the map.
func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && col < g.width && row >= 0 && row < g.height
}

// TileAt returns the tile at (col, row). Out-of-bounds cells read as walls.
func (g *Grid) TileAt(col, row int) Tile {
	if !g.InBounds(col, row) {
		return TileWall
	}
	return g.tiles[row*g.width+col]
}

// HasBlockingTileAt reports whether (col, row) is a wall, a block or off the map.
func (g *Grid) HasBlockingTileAt(col, row int) bool {
	return g.TileAt(col, row) != TileEmpty
}

// ClearAt removes a destructible block and reports whether one was there.
// Walls, floor and out-of-bounds cells are left untouched.
func (g *Grid) ClearAt(col, row int) bool {
	if g.TileAt(col, row) != TileBlock {
		return false
	}
	g.tiles[row*g.width+col] = TileEmpty
	return true
}

// SetBlock places a destructible block on an empty cell. It is used while
// seeding a level and reports whether the block was placed.
func (g *Grid) SetBlock(col, row int) bool {
	if !g.InBounds(col, row) || g.TileAt(col, row) != TileEmpty {
		return false
	}
	g.set(col, row, TileBlock)
	return true
}

func (g *Grid) set(col, row int, t Tile) {
	g.tiles[row*g.width+col] = t
}

// Blocks counts the remaining destructible blocks.
func (g *Grid) Blocks() int {
	n := 0
	for _, t := range g.tiles {
		if t == TileBlock {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	c := New(g.width, g.height, g.tileSize)
	copy(c.tiles, g.tiles)
	return c
}

// CellAt returns the cell containing the pixel point p.
func (g *Grid) CellAt(p core.Vec) Cell {
	return Cell{
		Col: int(math.Floor(p.X / g.tileSize)),
		Row: int(math.Floor(p.Y / g.tileSize)),
	}
}

// CellCenter returns the pixel center of c.
func (g *Grid) CellCenter(c Cell) core.Vec {
	return core.Vec{
		X: (float64(c.Col) + 0.5) * g.tileSize,
		Y: (float64(c.Row) + 0.5) * g.tileSize,
	}
}

// CellBox returns the pixel box covered by c.
func (g *Grid) CellBox(c Cell) core.Box {
	return core.Box{
		MinX: float64(c.Col) * g.tileSize,
		MinY: float64(c.Row) * g.tileSize,
		MaxX: float64(c.Col+1) * g.tileSize,
		MaxY: float64(c.Row+1) * g.tileSize,
	}
}

// CellsUnder calls fn for every cell overlapped by b with positive area.
func (g *Grid) CellsUnder(b core.Box, fn func(Cell)) {
	minCol := int(math.Floor(b.MinX / g.tileSize))
	minRow := int(math.Floor(b.MinY / g.tileSize))
	maxCol := int(math.Ceil(b.MaxX/g.tileSize)) - 1
	maxRow := int(math.Ceil(b.MaxY/g.tileSize)) - 1
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			fn(Cell{Col: col, Row: row})
		}
	}
}

// Overlaps reports whether b overlaps any cell for which blocked returns true.
func (g *Grid) Overlaps(b core.Box, blocked func(Cell) bool) bool {
	hit := false
	g.CellsUnder(b, func(c Cell) {
		if !hit && blocked(c) {
			hit = true
		}
	})
	return hit
}

// Layout renders the grid back into ASCII rows.
func (g *Grid) Layout() []string {
	rows := make([]string, g.height)
	for row := 0; row < g.height; row++ {
		var sb strings.Builder
		for col := 0; col < g.width; col++ {
			sb.WriteString(g.TileAt(col, row).String())
		}
		rows[row] = sb.String()
	}
	return rows
}
