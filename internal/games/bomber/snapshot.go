package bomber

import (
	"math"

	"github.com/vovakirdan/tui-bomber/internal/games/bomber/sim"
	"github.com/vovakirdan/tui-bomber/internal/games/bomber/world"
)

// Snapshot contains the observable game state for replay checks.
// Uses primitive types only for stable hashing.
type Snapshot struct {
	Tick        uint64
	Mode        int
	State       string
	LevelIndex  int
	LevelNumber int
	Cycle       int
	Phase       int
	ClockMS     int64

	Score       int
	Lives       int
	SessionXP   int
	PlayerX     int // Rounded pixels
	PlayerY     int
	Range       int
	Speed       int
	MaxBombs    int
	ActiveBombs int

	// Each enemy is 4 ints: X, Y, State, Hard
	EnemyData []int
	// Each bomb is 3 ints: Col, Row, Range
	BombData []int
	// Each segment is 2 ints: Col, Row
	SegmentData []int
	// Each item is 4 ints: Kind, Col, Row, State
	ItemData []int
	// Portal Col, Row or -1, -1 while hidden
	PortalCol int
	PortalRow int

	// One int per tile, row-major
	Tiles []int
}

// Snapshot returns the current game state.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:        g.tick,
		Mode:        int(g.mode),
		State:       g.state,
		LevelIndex:  g.levelIndex,
		LevelNumber: g.levelNumber,
		Cycle:       g.cycle,
		PortalCol:   -1,
		PortalRow:   -1,
	}
	s := g.session
	if s == nil {
		return snap
	}

	p := s.Player()
	snap.Phase = int(s.Phase())
	snap.ClockMS = s.Now().Milliseconds()
	snap.Score = s.Score()
	snap.Lives = p.Lives()
	snap.SessionXP = s.SessionXP()
	snap.PlayerX = round(p.Pos().X)
	snap.PlayerY = round(p.Pos().Y)
	snap.Range = p.Range()
	snap.Speed = round(p.Speed())
	snap.MaxBombs = p.MaxBombs()
	snap.ActiveBombs = p.ActiveBombs()

	for _, e := range s.Enemies() {
		hard := 0
		if e.Hard() {
			hard = 1
		}
		snap.EnemyData = append(snap.EnemyData, round(e.Pos().X), round(e.Pos().Y), int(e.State()), hard)
	}
	for _, b := range s.Bombs() {
		snap.BombData = append(snap.BombData, b.Cell().Col, b.Cell().Row, b.Range())
	}
	for _, seg := range s.Segments() {
		snap.SegmentData = append(snap.SegmentData, seg.Cell().Col, seg.Cell().Row)
	}
	for _, it := range s.Items() {
		snap.ItemData = append(snap.ItemData, int(it.ItemKind()), it.Cell().Col, it.Cell().Row, int(it.State()))
	}
	if portal := s.Portal(); portal.Active() {
		snap.PortalCol = portal.Cell().Col
		snap.PortalRow = portal.Cell().Row
	}

	grid := s.Grid()
	snap.Tiles = make([]int, 0, grid.Width()*grid.Height())
	for row := 0; row < grid.Height(); row++ {
		for col := 0; col < grid.Width(); col++ {
			snap.Tiles = append(snap.Tiles, int(grid.TileAt(col, row)))
		}
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	for _, v := range []int{
		snap.Mode, snap.LevelIndex, snap.LevelNumber, snap.Cycle, snap.Phase,
		snap.Score, snap.Lives, snap.SessionXP, snap.PlayerX, snap.PlayerY,
		snap.Range, snap.Speed, snap.MaxBombs, snap.ActiveBombs,
		snap.PortalCol, snap.PortalRow,
	} {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	h = h*31 + uint64(snap.ClockMS) //#nosec G115 -- hash computation
	for _, c := range snap.State {
		h = h*31 + uint64(c)
	}

	for _, data := range [][]int{snap.EnemyData, snap.BombData, snap.SegmentData, snap.ItemData, snap.Tiles} {
		h = h*31 + uint64(len(data))
		for _, v := range data {
			h = h*31 + uint64(v) //#nosec G115 -- hash computation
		}
	}
	return h
}

// TileCount returns how many tiles of kind t the snapshot holds.
func (snap *Snapshot) TileCount(t world.Tile) int {
	n := 0
	for _, v := range snap.Tiles {
		if v == int(t) {
			n++
		}
	}
	return n
}

// PhaseName returns the session phase recorded in the snapshot.
func (snap *Snapshot) PhaseName() string {
	return sim.Phase(snap.Phase).String()
}

func round(v float64) int {
	return int(math.Round(v))
}
