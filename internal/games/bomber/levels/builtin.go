package levels

import (
	"strings"

	"github.com/vovakirdan/tui-bomber/internal/games/bomber/world"
)

var defaultStart = world.Cell{Col: 1, Row: 1}

// Default returns the classic level: a walled border with pillars on every
// even cell. It is the fallback whenever requested level data is missing.
func Default(width, height int, density float64) Level {
	return Level{
		ID:      "classic",
		Name:    "Classic",
		Layout:  pillarLayout(width, height, 2),
		Density: density,
		Safe:    DefaultSafe(defaultStart),
		Start:   defaultStart,
	}
}

// Builtins returns the levels shipped with the game, in play order.
func Builtins(width, height int, density float64) []Level {
	return []Level{
		Default(width, height, density),
		{
			ID:      "courtyard",
			Name:    "Courtyard",
			Layout:  pillarLayout(width, height, 4),
			Density: density + 0.1,
			Safe:    DefaultSafe(defaultStart),
			Start:   defaultStart,
		},
		{
			ID:      "fortress",
			Name:    "Fortress",
			Layout:  fortressLayout(width, height),
			Density: density,
			Safe:    DefaultSafe(defaultStart),
			Start:   defaultStart,
		},
	}
}

// pillarLayout draws the border and a wall wherever both coordinates are
// multiples of step.
func pillarLayout(width, height, step int) []string {
	rows := make([]string, height)
	for y := 0; y < height; y++ {
		var sb strings.Builder
		for x := 0; x < width; x++ {
			switch {
			case x == 0 || y == 0 || x == width-1 || y == height-1:
				sb.WriteByte('#')
			case x%step == 0 && y%step == 0:
				sb.WriteByte('#')
			default:
				sb.WriteByte('.')
			}
		}
		rows[y] = sb.String()
	}
	return rows
}

// fortressLayout is the classic layout with a walled keep in the middle,
// open on its four sides.
func fortressLayout(width, height int) []string {
	grid := make([][]byte, height)
	for y, row := range pillarLayout(width, height, 2) {
		grid[y] = []byte(row)
	}

	left, right := width/2-4, width/2+4
	top, bottom := height/2-3, height/2+3
	if left < 2 || top < 2 {
		return pillarLayout(width, height, 2)
	}
	for x := left; x <= right; x++ {
		grid[top][x] = '#'
		grid[bottom][x] = '#'
	}
	for y := top; y <= bottom; y++ {
		grid[y][left] = '#'
		grid[y][right] = '#'
	}
	midX, midY := width/2, height/2
	for _, gate := range [][2]int{{midX, top}, {midX, bottom}, {left, midY}, {right, midY}} {
		grid[gate[1]][gate[0]] = '.'
	}
	for y := top + 1; y < bottom; y++ {
		for x := left + 1; x < right; x++ {
			grid[y][x] = '.'
		}
	}

	rows := make([]string, height)
	for y := range grid {
		rows[y] = string(grid[y])
	}
	return rows
}
