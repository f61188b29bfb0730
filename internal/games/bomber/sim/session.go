package sim

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/tui-bomber/internal/config"
	"github.com/vovakirdan/tui-bomber/internal/core"
	"github.com/vovakirdan/tui-bomber/internal/games/bomber/levels"
	"github.com/vovakirdan/tui-bomber/internal/games/bomber/world"
	"github.com/vovakirdan/tui-bomber/internal/progression"
)

// Phase is the coarse state of a session.
type Phase uint8

const (
	PhasePlaying Phase = iota
	PhaseRespawning
	PhaseCleared
	PhaseGameOver
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseRespawning:
		return "respawning"
	case PhaseCleared:
		return "cleared"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Done reports whether the session has ended.
func (p Phase) Done() bool {
	return p == PhaseCleared || p == PhaseGameOver
}

// Input is the per-tick control snapshot.
type Input struct {
	Dir       Direction
	PlaceBomb bool
}

// InputFromFrame converts a platform input frame.
func InputFromFrame(f core.InputFrame) Input {
	return Input{
		Dir:       DirectionFromAction(f.Held),
		PlaceBomb: f.Has(core.ActionPlaceBomb),
	}
}

// Options configures a new session.
type Options struct {
	Config      config.BomberConfig
	Level       levels.Level
	LevelNumber int // 1-based
	Difficulty  string
	Carry       Carry
	Seed        int64
	TickRate    int // Ticks per second, 60 when zero
	Reporter    progression.Reporter
	Logger      *log.Logger
	// DifficultyMgr scales enemies per level. Nil builds one from Config.
	DifficultyMgr *config.DifficultyManager
}

// StartingCarry returns the carry of a fresh run.
func StartingCarry(cfg config.BomberConfig) Carry {
	return Carry{
		Lives:    cfg.Player.Lives,
		MaxBombs: cfg.Player.StartBombs,
		Speed:    cfg.Player.Speed,
		Range:    cfg.Player.StartRange,
	}
}

// Session is the controller of one level playthrough. It owns every entity,
// the session clock and the action log. Nothing else mutates them.
type Session struct {
	id          string
	cfg         config.BomberConfig
	level       levels.Level
	levelNumber int
	difficulty  string
	logger      *log.Logger
	reporter    progression.Reporter
	policy      progression.Policy

	rng   *rand.Rand
	grid  *world.Grid
	sched *Scheduler
	dt    time.Duration
	log   *progression.Log

	nextID   EntityID
	entities map[EntityID]Entity
	player   *Player
	bombs    []*Bomb
	bombAt   map[world.Cell]*Bomb
	segments []*Segment
	enemies  []*Enemy
	corpses  []*Enemy
	items    []*Item
	portal   Portal

	phase     Phase
	score     int
	sessionXP int
	deaths    int
	reported  bool
	report    progression.SessionReport
	events    []Event
}

// NewSession builds the level grid, places the player and spawns enemies.
func NewSession(opts Options) (*Session, error) {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	tick := opts.TickRate
	if tick <= 0 {
		tick = 60
	}
	levelNumber := max(opts.LevelNumber, 1)
	carry := opts.Carry
	if carry.Lives <= 0 {
		carry = StartingCarry(cfg)
	}
	dm := opts.DifficultyMgr
	if dm == nil {
		dm = config.NewDifficultyManager(cfg.Difficulty)
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	grid, err := opts.Level.Build(float64(cfg.Map.TileSize), rng)
	if err != nil {
		return nil, fmt.Errorf("sim: new session: %w", err)
	}

	s := &Session{
		id:          uuid.NewString(),
		cfg:         cfg,
		level:       opts.Level,
		levelNumber: levelNumber,
		difficulty:  opts.Difficulty,
		logger:      logger,
		reporter:    opts.Reporter,
		policy:      cfg.Rewards.Policy(),
		rng:         rng,
		grid:        grid,
		sched:       NewScheduler(),
		dt:          time.Second / time.Duration(tick),
		log:         progression.NewLog(config.Millis(cfg.Player.HeartbeatMS)),
		entities:    make(map[EntityID]Entity),
		bombAt:      make(map[world.Cell]*Bomb),
		score:       carry.Score,
	}

	spawn := grid.CellCenter(opts.Level.Start)
	s.player = &Player{
		id:       s.newID(),
		pos:      spawn,
		spawn:    spawn,
		size:     cfg.Player.Hitbox,
		speed:    min(carry.Speed, cfg.Player.MaxSpeed),
		rng:      min(carry.Range, cfg.Player.MaxRange),
		maxBombs: min(carry.MaxBombs, cfg.Player.MaxBombs),
		lives:    carry.Lives,
		alive:    true,
		caps: PowerCaps{
			Range:     cfg.Player.MaxRange,
			Speed:     cfg.Player.MaxSpeed,
			SpeedStep: cfg.Player.SpeedStep,
			Bombs:     cfg.Player.MaxBombs,
		},
	}
	s.entities[s.player.id] = s.player

	s.spawnEnemies(s.enemyCount(dm), s.enemyParams(dm))
	if len(s.enemies) == 0 {
		s.spawnPortal()
	}

	logger.Debug("session started",
		"session", s.id,
		"level", opts.Level.ID,
		"number", levelNumber,
		"enemies", len(s.enemies),
		"blocks", grid.Blocks(),
	)
	return s, nil
}

func (s *Session) newID() EntityID {
	s.nextID++
	return s.nextID
}

func (s *Session) now() time.Duration {
	return s.sched.Now()
}

func (s *Session) emit(kind EventKind, id EntityID, cell world.Cell) {
	s.events = append(s.events, Event{Kind: kind, Entity: id, Cell: cell})
}

// record logs an action and adds its value to the HUD XP counter.
func (s *Session) record(t progression.ActionType, ctx *progression.ActionContext) {
	s.log.Record(t, s.now(), ctx)
	s.sessionXP += s.policy.Value(t)
}

func (s *Session) enemyCount(dm *config.DifficultyManager) int {
	n := s.level.Enemies
	if n <= 0 {
		n = s.cfg.Enemies.BaseCount + s.cfg.Enemies.PerLevel*s.levelNumber
	}
	n += dm.ExtraEnemies(s.levelNumber)
	if s.cfg.Enemies.MaxCount > 0 {
		n = min(n, s.cfg.Enemies.MaxCount)
	}
	return n
}

func (s *Session) enemyParams(dm *config.DifficultyManager) EnemyParams {
	e := s.cfg.Enemies
	return EnemyParams{
		Speed:        dm.EnemySpeed(e.Speed, s.levelNumber),
		Size:         e.Hitbox,
		TurnInterval: config.Millis(e.TurnIntervalMS),
		TurnChance:   e.TurnChance,
		Leash:        e.LeashDistance,
	}
}

func (s *Session) hardEnemies() bool {
	from := s.cfg.Enemies.HardFromLevel
	return from > 0 && s.levelNumber >= from
}

func (s *Session) spawnEnemies(n int, base EnemyParams) {
	occupied := mapset.New[world.Cell]()
	start := s.level.Start
	valid := func(c world.Cell) bool {
		return !s.grid.HasBlockingTileAt(c.Col, c.Row) &&
			!occupied.Has(c) &&
			!inExclusion(c, start, s.cfg.Enemies.SpawnExclusion)
	}

	for i := 0; i < n; i++ {
		c, ok := sampleCell(s.rng, s.grid, s.cfg.Enemies.SpawnAttempts, valid)
		if !ok {
			c, ok = scanCell(s.grid, valid)
		}
		if !ok {
			s.logger.Warn("no free cell for enemy", "level", s.level.ID, "index", i)
			break
		}
		occupied.Put(c)

		params := base
		if s.hardEnemies() && i%2 == 1 {
			params.Hard = true
			params.Speed *= 1 + s.cfg.Enemies.HardSpeedBoost
		}
		dir := cardinals[s.rng.Intn(len(cardinals))]
		e := NewEnemy(s.newID(), s.grid.CellCenter(c), dir, params, s.now())
		s.enemies = append(s.enemies, e)
		s.entities[e.id] = e
	}
}

func (s *Session) spawnPortal() {
	if s.portal.Active() {
		return
	}
	from := s.player.pos
	c, ok := sampleCell(s.rng, s.grid, s.cfg.Portal.SpawnAttempts, func(c world.Cell) bool {
		return !s.grid.HasBlockingTileAt(c.Col, c.Row) &&
			s.grid.CellCenter(c).Dist(from) >= s.cfg.Portal.MinDistance
	})
	if !ok {
		c = portalFallback(s.grid)
		s.logger.Debug("portal placement fell back", "col", c.Col, "row", c.Row)
	}
	id := s.newID()
	if s.portal.spawn(id, c, s.grid.CellBox(c), s.now()) {
		s.entities[id] = &s.portal
		s.emit(EventPortalSpawned, id, c)
	}
}

// Step advances the session by one tick and returns the events it produced.
// A finished session ignores input and returns nil.
func (s *Session) Step(in Input) []Event {
	if s.phase.Done() || s.sched.Closed() {
		return nil
	}
	s.events = s.events[:0]

	s.sched.Advance(s.dt)

	if s.phase == PhasePlaying {
		s.guard(s.player, func() { s.applyInput(in) })
	}
	s.updateEntities()
	if s.phase == PhasePlaying {
		s.resolve()
	}
	s.purge()

	if len(s.events) == 0 {
		return nil
	}
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

func (s *Session) env() *Env {
	return &Env{
		Now:       s.now(),
		DT:        s.dt,
		Grid:      s.grid,
		Rand:      s.rng,
		Target:    s.player.pos,
		HasTarget: s.player.alive,
		Blocked:   s.blockedForEnemy,
	}
}

func (s *Session) blockedForEnemy(c world.Cell) bool {
	if s.grid.HasBlockingTileAt(c.Col, c.Row) {
		return true
	}
	_, ok := s.bombAt[c]
	return ok
}

func (s *Session) blockedForPlayer(c world.Cell) bool {
	if s.grid.HasBlockingTileAt(c.Col, c.Row) {
		return true
	}
	b, ok := s.bombAt[c]
	return ok && !b.ownerInside
}

func (s *Session) applyInput(in Input) {
	p := s.player
	if in.Dir != DirNone {
		p.facing = in.Dir
		dist := p.speed * s.dt.Seconds()
		delta := in.Dir.Vec().Scale(dist)
		pos, hitX, hitY := move(s.grid, p.pos, p.size, delta, s.blockedForPlayer)
		p.pos = pos
		if hitX || hitY {
			s.cornerAssist(in.Dir, dist)
		}
		s.log.Heartbeat(s.now())
	}

	for _, b := range s.bombs {
		if b.ownerInside && !p.Bounds().Intersects(b.box) {
			b.ownerInside = false
		}
	}

	if in.PlaceBomb {
		s.placeBomb()
	}
}

// cornerAssist slides a blocked player toward the centerline of its lane
// when it is nearly aligned with an open corridor ahead.
func (s *Session) cornerAssist(dir Direction, dist float64) {
	p := s.player
	tol := s.cfg.Player.CornerTolerance
	if tol <= 0 {
		return
	}
	cell := s.grid.CellAt(p.pos)
	center := s.grid.CellCenter(cell)
	dc, dr := dir.Delta()
	if s.blockedForPlayer(cell.Add(dc, dr)) {
		return
	}

	var off float64
	if dir.Horizontal() {
		off = center.Y - p.pos.Y
	} else {
		off = center.X - p.pos.X
	}
	if off == 0 || abs(off) > tol {
		return
	}
	nudge := core.ClampF(off, -dist, dist)
	delta := core.Vec{X: nudge}
	if dir.Horizontal() {
		delta = core.Vec{Y: nudge}
	}
	p.pos, _, _ = move(s.grid, p.pos, p.size, delta, s.blockedForPlayer)
}

func (s *Session) placeBomb() {
	p := s.player
	if p.activeBombs >= p.maxBombs {
		return
	}
	cell := s.grid.CellAt(p.pos)
	if s.grid.HasBlockingTileAt(cell.Col, cell.Row) {
		return
	}
	if _, taken := s.bombAt[cell]; taken {
		return
	}

	now := s.now()
	fuse := config.Millis(s.cfg.Bomb.FuseMS)
	b := &Bomb{
		id:          s.newID(),
		owner:       p.id,
		cell:        cell,
		box:         s.grid.CellBox(cell),
		rng:         p.rng,
		placedAt:    now,
		fuseAt:      now + fuse,
		ownerInside: true,
	}
	b.fuse = s.sched.After(fuse, func() {
		s.guard(b, func() { s.detonate(b) })
	})
	p.activeBombs++
	s.bombs = append(s.bombs, b)
	s.bombAt[cell] = b
	s.entities[b.id] = b

	s.record(progression.ActionBombPlaced, progression.CellContext(cell.Col, cell.Row))
	s.emit(EventBombPlaced, b.id, cell)
}

// releaseBomb cancels the fuse of b, frees its tile and returns the slot
// to its owner.
func (s *Session) releaseBomb(b *Bomb) {
	s.sched.Cancel(b.fuse)
	if s.bombAt[b.cell] == b {
		delete(s.bombAt, b.cell)
	}
	if b.owner == s.player.id && s.player.activeBombs > 0 {
		s.player.activeBombs--
	}
}

// detonate runs the blast of b. Bombs covered by the new segments detonate
// within the same call.
func (s *Session) detonate(b *Bomb) {
	if !b.begin() {
		return
	}
	s.releaseBomb(b)
	s.emit(EventBombDetonated, b.id, b.cell)

	blast := Propagate(s.grid, b.cell, b.rng)
	for _, c := range blast.Cleared {
		s.onBlockDestroyed(c)
	}
	for i := 0; i < blast.ChainHits; i++ {
		c := blast.Cleared[i]
		s.record(progression.ActionChainHit, progression.CellContext(c.Col, c.Row))
	}

	expires := s.now() + config.Millis(s.cfg.Bomb.ExplosionMS)
	for _, c := range blast.Segments {
		seg := &Segment{
			id:        s.newID(),
			cell:      c,
			box:       s.grid.CellBox(c),
			expiresAt: expires,
		}
		s.segments = append(s.segments, seg)
		s.entities[seg.id] = seg
	}
	b.state = BombConsumed

	for _, c := range blast.Segments {
		if other, ok := s.bombAt[c]; ok {
			s.detonate(other)
		}
	}
}

func (s *Session) onBlockDestroyed(c world.Cell) {
	s.record(progression.ActionBlockDestroyed, progression.CellContext(c.Col, c.Row))
	s.emit(EventBlockDestroyed, 0, c)

	if s.rng.Float64() >= s.cfg.Items.DropChance {
		return
	}
	kind := ItemKind(s.rng.Intn(int(itemKinds)))
	timing := ItemTiming{
		Invulnerable: config.Millis(s.cfg.Items.InvulnerableMS),
		Warning:      config.Millis(s.cfg.Items.WarningMS),
		Lifetime:     config.Millis(s.cfg.Items.LifetimeMS),
	}
	box := core.BoxAround(s.grid.CellCenter(c), s.cfg.Items.Hitbox, s.cfg.Items.Hitbox)
	it := NewItem(s.newID(), kind, c, box, timing, s.now())
	s.items = append(s.items, it)
	s.entities[it.id] = it
	s.emit(EventItemDropped, it.id, c)
}

func (s *Session) updateEntities() {
	env := s.env()
	if s.phase == PhasePlaying {
		for _, e := range s.enemies {
			s.guard(e, func() { e.Update(env) })
		}
	}
	for _, it := range s.items {
		s.guard(it, func() { it.Update(env) })
	}
	for _, seg := range s.segments {
		s.guard(seg, func() { seg.Update(env) })
	}
}

// resolve is the broad phase: cells under live segments are collected into
// a set and tested against bombs, enemies, items and the player, followed
// by the player contact checks.
func (s *Session) resolve() {
	hot := s.hotCells()
	if hot.Size() > 0 {
		for _, b := range s.bombs {
			if b.Alive() && hot.Has(b.cell) {
				s.guard(b, func() { s.detonate(b) })
			}
		}
		hot = s.hotCells()

		for _, e := range s.enemies {
			if e.Alive() && touchesCells(s.grid, e.Bounds(), hot.Has) {
				s.killEnemy(e)
			}
		}
		for _, it := range s.items {
			if it.Alive() && touchesCells(s.grid, it.box, hot.Has) && it.HitByBlast(s.now()) {
				s.emit(EventItemDestroyed, it.id, it.cell)
			}
		}
		if s.cfg.Bomb.HurtsPlayer && touchesCells(s.grid, s.player.Bounds(), hot.Has) {
			s.hitPlayer()
		}
	}

	p := s.player
	if !p.alive || s.phase != PhasePlaying {
		return
	}
	pb := p.Bounds()
	for _, e := range s.enemies {
		if e.Alive() && e.Bounds().Intersects(pb) {
			s.hitPlayer()
			break
		}
	}
	if !p.alive {
		return
	}

	for _, it := range s.items {
		if it.Alive() && it.box.Intersects(pb) && it.Collect(s.now()) {
			p.Apply(it.kind)
			s.score += s.cfg.Scoring.Item
			s.record(progression.ActionItemCollected, progression.EntityContext(uint64(it.id), it.cell.Col, it.cell.Row))
			s.emit(EventItemCollected, it.id, it.cell)
		}
	}

	if s.portal.Active() && s.portal.box.Intersects(pb) {
		s.completeLevel()
	}
}

func (s *Session) hotCells() mapset.Set[world.Cell] {
	hot := mapset.New[world.Cell]()
	for _, seg := range s.segments {
		if seg.Alive() {
			hot.Put(seg.cell)
		}
	}
	return hot
}

func (s *Session) killEnemy(e *Enemy) {
	now := s.now()
	if !e.Die(now) {
		return
	}
	cell := s.grid.CellAt(e.pos)
	s.score += s.cfg.Scoring.Enemy
	kind := progression.ActionEnemyKilled
	if e.Hard() {
		kind = progression.ActionHardEnemyKill
	}
	s.record(kind, progression.EntityContext(uint64(e.id), cell.Col, cell.Row))
	s.emit(EventEnemyKilled, e.id, cell)

	s.corpses = append(s.corpses, e)
	s.sched.After(config.Millis(s.cfg.Enemies.CorpseMS), func() {
		s.corpses = removeEnemy(s.corpses, e)
	})
}

func (s *Session) hitPlayer() {
	p := s.player
	if !p.alive || s.phase != PhasePlaying || p.Invulnerable(s.now()) {
		return
	}
	p.alive = false
	p.lives--
	s.deaths++
	cell := s.grid.CellAt(p.pos)
	s.emit(EventPlayerDied, p.id, cell)
	s.logger.Debug("player died", "session", s.id, "lives", p.lives)

	if p.lives > 0 {
		s.phase = PhaseRespawning
		s.sched.After(config.Millis(s.cfg.Player.RespawnDelayMS), s.respawn)
		return
	}
	s.phase = PhaseGameOver
	s.emit(EventGameOver, p.id, cell)
	s.finish(progression.OutcomeFailed)
}

func (s *Session) respawn() {
	if s.phase != PhaseRespawning {
		return
	}
	p := s.player
	p.pos = p.spawn
	p.alive = true
	p.facing = DirNone
	p.invulnUntil = s.now() + config.Millis(s.cfg.Player.InvulnerableMS)
	s.phase = PhasePlaying
	s.emit(EventPlayerRespawned, p.id, s.level.Start)
}

func (s *Session) completeLevel() {
	if s.phase != PhasePlaying {
		return
	}
	s.phase = PhaseCleared
	s.score += s.cfg.Scoring.Level
	s.record(progression.ActionLevelCleared, progression.CellContext(s.portal.cell.Col, s.portal.cell.Row))
	s.emit(EventLevelCleared, s.portal.id, s.portal.cell)
	s.finish(progression.OutcomeCleared)
}

// finish flushes the log and hands the report to the collaborator. It runs
// at most once per session and stops every pending timer.
func (s *Session) finish(outcome progression.Outcome) {
	if s.reported {
		return
	}
	s.reported = true
	actions, _ := s.log.Flush()
	s.report = progression.SessionReport{
		SessionID:       s.id,
		Level:           s.levelNumber,
		Difficulty:      s.difficulty,
		Outcome:         outcome,
		Score:           s.score,
		Deaths:          s.deaths,
		DurationSeconds: s.now().Seconds(),
		Actions:         actions,
	}
	s.sched.Close()

	s.logger.Info("session finished",
		"session", s.id,
		"outcome", outcome,
		"level", s.levelNumber,
		"score", s.score,
		"deaths", s.deaths,
		"actions", len(actions),
	)
	if s.reporter == nil {
		return
	}
	func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("reporter panicked", "session", s.id, "err", r)
			}
		}()
		s.reporter.Report(s.report)
	}()
}

// Abandon ends a running session early, reporting it as abandoned.
// It is a no-op once the session has been reported.
func (s *Session) Abandon() {
	if s.phase.Done() {
		return
	}
	s.finish(progression.OutcomeAbandoned)
}

// Close cancels every pending timer. The session cannot be stepped afterwards.
func (s *Session) Close() {
	s.sched.Close()
}

func (s *Session) purge() {
	s.enemies = filterAlive(s.enemies)
	if len(s.enemies) == 0 && !s.portal.Active() && s.phase == PhasePlaying {
		s.spawnPortal()
	}

	bombs := s.bombs[:0]
	for _, b := range s.bombs {
		if b.state == BombConsumed {
			delete(s.entities, b.id)
			if s.bombAt[b.cell] == b {
				delete(s.bombAt, b.cell)
			}
			continue
		}
		bombs = append(bombs, b)
	}
	s.bombs = bombs
	s.segments = filterAlive(s.segments)
	s.items = filterAlive(s.items)

	for id, e := range s.entities {
		if e.Kind() == KindPlayer || e.Kind() == KindPortal {
			continue
		}
		if e.Kind() == KindBomb {
			if e.(*Bomb).state != BombConsumed {
				continue
			}
		} else if e.Alive() {
			continue
		}
		delete(s.entities, id)
	}
}

func filterAlive[T Entity](list []T) []T {
	out := list[:0]
	for _, e := range list {
		if e.Alive() {
			out = append(out, e)
		}
	}
	clear(list[len(out):])
	return out
}

func removeEnemy(list []*Enemy, target *Enemy) []*Enemy {
	for i, e := range list {
		if e == target {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// guard runs fn and turns a panic into disabling the entity.
func (s *Session) guard(e Entity, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("entity fault, disabling",
				"session", s.id,
				"id", e.ID(),
				"kind", e.Kind(),
				"err", r,
			)
			if b, ok := e.(*Bomb); ok && b.state == BombArmed {
				s.releaseBomb(b)
			}
			if d, ok := e.(Disabler); ok {
				d.Disable()
			}
		}
	}()
	fn()
}

// ID returns the session id sent with the report.
func (s *Session) ID() string { return s.id }

// Grid returns the level grid.
func (s *Session) Grid() *world.Grid { return s.grid }

// Level returns the level definition.
func (s *Session) Level() levels.Level { return s.level }

// LevelNumber returns the 1-based level number.
func (s *Session) LevelNumber() int { return s.levelNumber }

// Player returns the player.
func (s *Session) Player() *Player { return s.player }

// Bombs returns the bombs still on the board.
func (s *Session) Bombs() []*Bomb { return s.bombs }

// Segments returns the live explosion segments.
func (s *Session) Segments() []*Segment { return s.segments }

// Enemies returns the live enemies.
func (s *Session) Enemies() []*Enemy { return s.enemies }

// Corpses returns recently killed enemies kept for drawing.
func (s *Session) Corpses() []*Enemy { return s.corpses }

// Items returns the items on the board.
func (s *Session) Items() []*Item { return s.items }

// Portal returns the level exit.
func (s *Session) Portal() *Portal { return &s.portal }

// Phase returns the session phase.
func (s *Session) Phase() Phase { return s.phase }

// Score returns the HUD score including the carried score.
func (s *Session) Score() int { return s.score }

// SessionXP returns the uncapped XP collected so far.
func (s *Session) SessionXP() int { return s.sessionXP }

// Deaths returns the number of lives lost in this session.
func (s *Session) Deaths() int { return s.deaths }

// Now returns the session clock.
func (s *Session) Now() time.Duration { return s.now() }

// Reported reports whether the session report has been issued.
func (s *Session) Reported() bool { return s.reported }

// Report returns the issued report. Only meaningful once Reported is true.
func (s *Session) Report() progression.SessionReport { return s.report }

// LogLen returns the number of unflushed log entries.
func (s *Session) LogLen() int { return s.log.Len() }

// PendingTimers returns the number of scheduled callbacks.
func (s *Session) PendingTimers() int { return s.sched.Pending() }

// Entity looks up an entity by id.
func (s *Session) Entity(id EntityID) (Entity, bool) {
	e, ok := s.entities[id]
	return e, ok
}

// EntityCount returns the size of the ownership map.
func (s *Session) EntityCount() int { return len(s.entities) }

// Carry returns the progression to hand to the next level.
func (s *Session) Carry() Carry {
	return Carry{
		Score:    s.score,
		Lives:    s.player.lives,
		MaxBombs: s.player.maxBombs,
		Speed:    s.player.speed,
		Range:    s.player.rng,
	}
}
