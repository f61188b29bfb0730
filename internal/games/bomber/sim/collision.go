package sim

import (
	"github.com/vovakirdan/tui-bomber/internal/core"
	"github.com/vovakirdan/tui-bomber/internal/games/bomber/world"
)

// maxStep bounds the distance tested per collision probe, in pixels.
const maxStep = 1.0

// move translates a size×size box centered at pos by delta, one axis at a
// time. Each axis advances in small probes and stops at the first probe
// that would enter a blocked cell. Cells the box already overlaps never
// block it, so an entity caught under a fresh bomb can walk out.
func move(g *world.Grid, pos core.Vec, size float64, delta core.Vec, blocked func(world.Cell) bool) (core.Vec, bool, bool) {
	pos, hitX := stepAxis(g, pos, size, delta.X, true, blocked)
	pos, hitY := stepAxis(g, pos, size, delta.Y, false, blocked)
	return pos, hitX, hitY
}

func stepAxis(g *world.Grid, pos core.Vec, size, d float64, horizontal bool, blocked func(world.Cell) bool) (core.Vec, bool) {
	remaining := d
	for abs(remaining) > 1e-9 {
		step := core.ClampF(remaining, -maxStep, maxStep)
		next := pos
		if horizontal {
			next.X += step
		} else {
			next.Y += step
		}
		if entersBlocked(g, pos, next, size, blocked) {
			return pos, true
		}
		pos = next
		remaining -= step
	}
	return pos, false
}

func entersBlocked(g *world.Grid, from, to core.Vec, size float64, blocked func(world.Cell) bool) bool {
	current := core.BoxAround(from, size, size)
	return g.Overlaps(core.BoxAround(to, size, size), func(c world.Cell) bool {
		if !blocked(c) {
			return false
		}
		return !current.Intersects(g.CellBox(c))
	})
}

// touchesCells reports whether b overlaps any cell in the set.
func touchesCells(g *world.Grid, b core.Box, has func(world.Cell) bool) bool {
	return g.Overlaps(b, has)
}
