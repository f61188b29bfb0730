package bomber

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-bomber/internal/core"
	"github.com/vovakirdan/tui-bomber/internal/games/bomber/sim"
	"github.com/vovakirdan/tui-bomber/internal/games/bomber/world"
)

// Glyphs
const (
	WallChar   = '█'
	BlockChar  = '▒'
	FloorChar  = ' '
	BombChar   = '●'
	FlameChar  = '*'
	PlayerChar = '@'
	EnemyChar  = 'e'
	HardChar   = 'E'
	CorpseChar = 'x'
	PortalChar = 'O'
	RangeChar  = 'r'
	SpeedChar  = 's'
	CapChar    = 'b'
)

const (
	hudRows     = 2
	flickerTick = 100 * time.Millisecond
)

var itemGlyphs = map[sim.ItemKind]rune{
	sim.ItemRange: RangeChar,
	sim.ItemSpeed: SpeedChar,
	sim.ItemBombs: CapChar,
}

// Render draws the HUD, the board and any overlay message.
func (g *Game) Render(dst *core.Screen) {
	if g.session == nil {
		dst.DrawTextCentered(dst.Height()/2, "No level loaded")
		return
	}
	s := g.session
	grid := s.Grid()

	cw := 2
	if dst.Width() < grid.Width()*2+2 {
		cw = 1
	}
	boardW := grid.Width()*cw + 2
	boardH := grid.Height() + 2
	if dst.Width() < boardW || dst.Height() < boardH+hudRows {
		dst.DrawTextCentered(dst.Height()/2, "Terminal too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("need %dx%d", boardW, boardH+hudRows))
		return
	}

	ox := (dst.Width() - boardW) / 2
	oy := hudRows
	g.drawHUD(dst, ox)
	dst.DrawBox(core.NewRect(ox, oy, boardW, boardH), core.ColorGray)

	b := board{dst: dst, x: ox + 1, y: oy + 1, cw: cw, grid: grid}
	b.tiles()

	now := s.Now()
	if p := s.Portal(); p.Active() {
		b.mark(p.Cell(), PortalChar, core.ColorBrightCyan)
	}
	for _, it := range s.Items() {
		if it.Visible(now) {
			b.mark(it.Cell(), itemGlyphs[it.ItemKind()], core.ColorBrightGreen)
		}
	}
	for _, bomb := range s.Bombs() {
		color := core.ColorRed
		if bomb.FuseLeft(now) < time.Second && (now/flickerTick)%2 == 0 {
			color = core.ColorBrightRed
		}
		b.mark(bomb.Cell(), BombChar, color)
	}
	for _, seg := range s.Segments() {
		b.put(seg.Cell(), FlameChar, core.ColorOrange)
	}
	for _, e := range s.Corpses() {
		b.mark(grid.CellAt(e.Pos()), CorpseChar, core.ColorGray)
	}
	for _, e := range s.Enemies() {
		glyph, color := EnemyChar, core.ColorMagenta
		if e.Hard() {
			glyph, color = HardChar, core.ColorBrightRed
		}
		b.mark(grid.CellAt(e.Pos()), glyph, color)
	}

	p := s.Player()
	if p.Alive() && !(p.Invulnerable(now) && (now/flickerTick)%2 == 1) {
		b.mark(grid.CellAt(p.Pos()), PlayerChar, core.ColorBrightWhite)
	}

	g.drawOverlay(dst, oy+boardH/2)
}

func (g *Game) drawHUD(dst *core.Screen, x int) {
	st := g.State()
	p := g.session.Player()
	line := fmt.Sprintf("Score %d  Lives %d  Level %d  XP %d", st.Score, st.Lives, st.Level, st.SessionXP)
	dst.DrawTextColored(x, 0, line, core.ColorBrightWhite)

	stats := fmt.Sprintf("Bombs %d/%d  Range %d  Speed %.0f  Enemies %d",
		p.MaxBombs()-p.ActiveBombs(), p.MaxBombs(), p.Range(), p.Speed(), len(g.session.Enemies()))
	if g.lastAward > 0 {
		stats += fmt.Sprintf("  +%d XP awarded", g.lastAward)
	}
	dst.DrawTextColored(x, 1, stats, core.ColorGray)
}

func (g *Game) drawOverlay(dst *core.Screen, y int) {
	switch {
	case g.paused:
		dst.DrawTextCenteredColored(y, " PAUSED ", core.ColorBrightYellow)
		dst.DrawTextCenteredColored(y+1, " P to resume ", core.ColorGray)
	case g.state == StateTransition:
		dst.DrawTextCenteredColored(y, fmt.Sprintf(" LEVEL %d CLEARED ", g.levelNumber), core.ColorBrightGreen)
		dst.DrawTextCenteredColored(y+1, " get ready... ", core.ColorGray)
	case g.state == StateWin:
		dst.DrawTextCenteredColored(y, " ALL LEVELS CLEARED ", core.ColorBrightGreen)
		dst.DrawTextCenteredColored(y+1, fmt.Sprintf(" final score %d  R to play again ", g.carry.Score), core.ColorGray)
	case g.state == StateGameOver:
		dst.DrawTextCenteredColored(y, " GAME OVER ", core.ColorBrightRed)
		dst.DrawTextCenteredColored(y+1, " R to restart  Q to quit ", core.ColorGray)
	case g.session.Phase() == sim.PhaseRespawning:
		dst.DrawTextCenteredColored(y, " OUCH ", core.ColorBrightRed)
	}
}

// board maps grid cells onto screen cells.
type board struct {
	dst  *core.Screen
	x, y int
	cw   int
	grid *world.Grid
}

func (b board) put(c world.Cell, r rune, color core.Color) {
	if !b.grid.InBounds(c.Col, c.Row) {
		return
	}
	x := b.x + c.Col*b.cw
	for i := 0; i < b.cw; i++ {
		b.dst.SetColored(x+i, b.y+c.Row, r, color)
	}
}

// mark draws an entity glyph in the first column of the cell.
func (b board) mark(c world.Cell, r rune, color core.Color) {
	if !b.grid.InBounds(c.Col, c.Row) {
		return
	}
	x := b.x + c.Col*b.cw
	b.dst.SetColored(x, b.y+c.Row, r, color)
	for i := 1; i < b.cw; i++ {
		b.dst.Set(x+i, b.y+c.Row, FloorChar)
	}
}

func (b board) tiles() {
	for row := 0; row < b.grid.Height(); row++ {
		for col := 0; col < b.grid.Width(); col++ {
			c := world.Cell{Col: col, Row: row}
			switch b.grid.TileAt(col, row) {
			case world.TileWall:
				b.put(c, WallChar, core.ColorGray)
			case world.TileBlock:
				b.put(c, BlockChar, core.ColorYellow)
			default:
				b.put(c, FloorChar, core.ColorDefault)
			}
		}
	}
}
