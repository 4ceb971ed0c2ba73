// Package game is the session engine: lifecycle, the turn scheduler, and
// intent resolution. One Engine drives one session. All state lives on a
// single command loop; public operations enqueue onto it and wait, so
// callers never race the loop and timers fire against consistent state.
package game

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/arenaforge/arena-api/internal/agents"
	"github.com/arenaforge/arena-api/internal/ai"
	"github.com/arenaforge/arena-api/internal/entities/arena"
	"github.com/arenaforge/arena-api/internal/errors"
	"github.com/arenaforge/arena-api/internal/pkg/clock"
	"github.com/arenaforge/arena-api/internal/pkg/idgen"
	"github.com/arenaforge/arena-api/internal/repositories/sessions"
	"github.com/arenaforge/arena-api/internal/roguelike"
	"github.com/arenaforge/arena-api/internal/rules"
	"github.com/arenaforge/arena-api/internal/safety"
	"github.com/arenaforge/arena-api/internal/scheduler"
	"github.com/arenaforge/arena-api/internal/sequencer"
)

// Timer keys on the scheduler
const (
	timerSession   = "session"
	timerEnding    = "ending"
	timerInterTurn = "inter_turn"
	timerExplore   = "explore"
	timerDMPrompt  = "dm_timeout"
	timerTurn      = "turn:" // + turn ID
)

// Timing bundles every duration the engine schedules with
type Timing struct {
	SessionDuration   time.Duration
	EndingGrace       time.Duration
	PlayerTurnTimeout time.Duration
	DMTimeout         time.Duration
	InterTurnDelay    time.Duration

	// ExplorationInterval is how often the DM is re-prompted while no
	// combat is running. Zero means the default of 3 seconds.
	ExplorationInterval time.Duration
}

// Config holds the engine dependencies
type Config struct {
	Sequencer *sequencer.Sequencer
	Archive   sessions.Repository
	Gateway   agents.Gateway
	Scheduler scheduler.Scheduler
	Clock     clock.Clock
	IDGen     idgen.Generator
	Roller    dice.Roller
	Timing    Timing

	// Filter defaults to the built-in block list
	Filter *safety.Filter

	// Deciders for tokens without a live agent. EnemyAI and NPCAI default
	// to the built-in deciders; PlayerAI defaults to nil, which makes
	// agentless players defend.
	EnemyAI  ai.Decider
	NPCAI    ai.Decider
	PlayerAI ai.Decider

	Logger *slog.Logger
}

// Validate ensures the configuration is usable
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Sequencer == nil {
		vb.RequiredField("Sequencer")
	}
	if c.Archive == nil {
		vb.RequiredField("Archive")
	}
	if c.Gateway == nil {
		vb.RequiredField("Gateway")
	}
	if c.Scheduler == nil {
		vb.RequiredField("Scheduler")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.IDGen == nil {
		vb.RequiredField("IDGen")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.Timing.SessionDuration <= 0 {
		vb.Field("Timing.SessionDuration", "must be positive")
	}
	if c.Timing.EndingGrace <= 0 {
		vb.Field("Timing.EndingGrace", "must be positive")
	}
	if c.Timing.PlayerTurnTimeout <= 0 {
		vb.Field("Timing.PlayerTurnTimeout", "must be positive")
	}
	if c.Timing.DMTimeout <= 0 {
		vb.Field("Timing.DMTimeout", "must be positive")
	}
	if c.Timing.InterTurnDelay < 0 {
		vb.Field("Timing.InterTurnDelay", "must not be negative")
	}
	return vb.Build()
}

// startingPotions is the party's shared potion pool per session
const startingPotions = 3

// Engine drives one session from lobby to its terminal event
type Engine struct {
	log     *slog.Logger
	seq     *sequencer.Sequencer
	archive sessions.Repository
	gateway agents.Gateway
	sched   scheduler.Scheduler
	clk     clock.Clock
	ids     idgen.Generator
	roller  dice.Roller
	filter  *safety.Filter
	timing  Timing

	enemyAI  ai.Decider
	npcAI    ai.Decider
	playerAI ai.Decider

	cmds      chan func()
	done      chan struct{}
	closeOnce sync.Once

	// Everything below is confined to the command loop
	session         *arena.Session
	grid            *arena.GridMap
	tokens          []*arena.Token
	items           map[arena.Position]string
	combat          arena.CombatState
	run             *roguelike.Run
	potions         int
	pendingSkill    string
	pendingDC       int
	dmAgentID       string
	currentTurnID   string
	currentPromptID string
	processedTurns  map[string]bool
}

// New creates an engine and starts its command loop
func New(cfg *Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	timing := cfg.Timing
	if timing.ExplorationInterval == 0 {
		timing.ExplorationInterval = 3 * time.Second
	}
	filter := cfg.Filter
	if filter == nil {
		filter = safety.New()
	}
	enemyAI := cfg.EnemyAI
	if enemyAI == nil {
		enemyAI = ai.NewEnemyDecider()
	}
	npcAI := cfg.NPCAI
	if npcAI == nil {
		npcAI = ai.NewNPCDecider()
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	e := &Engine{
		log:            log,
		seq:            cfg.Sequencer,
		archive:        cfg.Archive,
		gateway:        cfg.Gateway,
		sched:          cfg.Scheduler,
		clk:            cfg.Clock,
		ids:            cfg.IDGen,
		roller:         cfg.Roller,
		filter:         filter,
		timing:         timing,
		enemyAI:        enemyAI,
		npcAI:          npcAI,
		playerAI:       cfg.PlayerAI,
		cmds:           make(chan func(), 64),
		done:           make(chan struct{}),
		items:          make(map[arena.Position]string),
		processedTurns: make(map[string]bool),
	}
	go e.loop()
	return e, nil
}

func (e *Engine) loop() {
	for {
		select {
		case fn := <-e.cmds:
			fn()
		case <-e.done:
			return
		}
	}
}

// do runs fn on the command loop and waits for it
func (e *Engine) do(fn func()) {
	finished := make(chan struct{})
	select {
	case e.cmds <- func() {
		fn()
		close(finished)
	}:
	case <-e.done:
		return
	}
	select {
	case <-finished:
	case <-e.done:
	}
}

// Close stops the loop and cancels every pending timer. The session is
// not ended; use EndSession for an orderly shutdown first.
func (e *Engine) Close() {
	e.closeOnce.Do(func() {
		e.sched.CancelAll()
		close(e.done)
	})
}

// CreateSessionInput configures a new session
type CreateSessionInput struct {
	Genre string
	Title string

	// MapRows overrides the built-in arena. Ignored for roguelike runs,
	// which generate their own floors.
	MapRows []string

	// DMAgentID attaches a dungeon-master agent. Empty means the engine
	// narrates with stock text.
	DMAgentID string

	// Roguelike makes the session a floor-based run
	Roguelike bool
}

// CreateSessionOutput returns the created session record
type CreateSessionOutput struct {
	Session *arena.Session
}

// CreateSession opens a session in LOBBY
func (e *Engine) CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}
	if input.Genre == "" {
		return nil, errors.InvalidArgument("genre cannot be empty")
	}

	var out *CreateSessionOutput
	var opErr error
	e.do(func() {
		if e.session != nil {
			opErr = errors.FailedPrecondition("engine already has a session")
			return
		}

		sess := &arena.Session{
			ID:        e.ids.Generate(),
			Genre:     input.Genre,
			Title:     input.Title,
			State:     arena.StateLobby,
			CreatedAt: e.clk.Now(),
		}
		if _, err := e.archive.Save(ctx, sessions.SaveInput{Session: sess}); err != nil {
			opErr = errors.Wrap(err, "failed to save session")
			return
		}

		e.session = sess
		e.dmAgentID = input.DMAgentID
		e.potions = startingPotions
		rows := input.MapRows
		if len(rows) == 0 {
			rows = defaultArena()
		}
		e.grid = arena.NewGridMap(rows)
		e.indexItems()
		if input.Roguelike {
			run, err := roguelike.NewRun(&roguelike.Config{Board: (*board)(e)})
			if err != nil {
				opErr = err
				e.session = nil
				return
			}
			e.run = run
		}

		e.emit(ctx, arena.EventSessionCreated, &arena.SessionCreatedPayload{
			SessionID: sess.ID,
			Genre:     sess.Genre,
			Title:     sess.Title,
		})
		copied := *sess
		out = &CreateSessionOutput{Session: &copied}
	})
	return out, opErr
}

// AddPlayerInput adds a party member while the session is in LOBBY
type AddPlayerInput struct {
	Name  string
	Class string

	// AgentID attaches a live agent. Empty means the engine's player
	// decider (or defend) acts for the token.
	AgentID string
}

// AddPlayerOutput returns the created token ID
type AddPlayerOutput struct {
	TokenID string
}

// AddPlayer joins a party member to the lobby
func (e *Engine) AddPlayer(ctx context.Context, input *AddPlayerInput) (*AddPlayerOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}
	if input.Name == "" {
		return nil, errors.InvalidArgument("name cannot be empty")
	}
	cs, ok := rules.ClassTable[input.Class]
	if !ok {
		return nil, errors.InvalidArgumentf("unknown class %q", input.Class)
	}

	var out *AddPlayerOutput
	var opErr error
	e.do(func() {
		if e.session == nil {
			opErr = errors.FailedPrecondition("no session")
			return
		}
		if e.session.State != arena.StateLobby {
			opErr = errors.FailedPrecondition("session already started")
			return
		}

		token := &arena.Token{
			ID:    e.ids.Generate(),
			Name:  input.Name,
			HP:    cs.HP,
			MaxHP: cs.HP,
			AC:    cs.AC,
			Spd:   cs.Move,
			Variant: &arena.PlayerVariant{
				Class:   input.Class,
				AgentID: input.AgentID,
				Level:   1,
			},
		}
		e.tokens = append(e.tokens, token)

		e.emit(ctx, arena.EventLobbyStatus, &arena.LobbyStatusPayload{
			Players: e.views(e.party()),
			Ready:   true,
		})
		out = &AddPlayerOutput{TokenID: token.ID}
	})
	return out, opErr
}

// AddNPCInput adds a friendly non-player token to the lobby
type AddNPCInput struct {
	Name string
	Role string
}

// AddNPCOutput returns the created token ID
type AddNPCOutput struct {
	TokenID string
}

// AddNPC joins a friendly NPC to the lobby. The DM acts through it with
// npc_action intents; otherwise the built-in decider runs it.
func (e *Engine) AddNPC(ctx context.Context, input *AddNPCInput) (*AddNPCOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}
	if input.Name == "" {
		return nil, errors.InvalidArgument("name cannot be empty")
	}

	var out *AddNPCOutput
	var opErr error
	e.do(func() {
		if e.session == nil {
			opErr = errors.FailedPrecondition("no session")
			return
		}
		if e.session.State != arena.StateLobby {
			opErr = errors.FailedPrecondition("session already started")
			return
		}

		token := &arena.Token{
			ID:      e.ids.Generate(),
			Name:    input.Name,
			HP:      rules.NPCStats.HP,
			MaxHP:   rules.NPCStats.HP,
			AC:      rules.NPCStats.AC,
			Spd:     rules.DefaultMove,
			Variant: &arena.NPCVariant{Role: input.Role},
		}
		e.tokens = append(e.tokens, token)
		out = &AddNPCOutput{TokenID: token.ID}
	})
	return out, opErr
}

// StartSession transitions LOBBY to LIVE: spawns land on the grid, the
// session timer arms, and either the roguelike run opens floor one or the
// DM prompt loop begins.
func (e *Engine) StartSession(ctx context.Context) error {
	var opErr error
	e.do(func() {
		if e.session == nil {
			opErr = errors.FailedPrecondition("no session")
			return
		}
		if !e.session.CanStart() {
			opErr = errors.FailedPreconditionf("session is %s", e.session.State)
			return
		}
		if len(e.party()) == 0 {
			opErr = errors.FailedPrecondition("session has no players")
			return
		}

		e.session.State = arena.StateLive
		e.session.StartedAt = e.clk.Now()
		e.saveSession(ctx)

		e.emit(ctx, arena.EventSessionStarted, &arena.SessionStartedPayload{
			Genre: e.session.Genre,
			Title: e.session.Title,
		})
		e.sched.Schedule(timerSession, e.timing.SessionDuration, func() {
			e.do(func() { e.triggerEnding(context.Background()) })
		})

		if e.run != nil {
			e.run.Start()
			return
		}

		e.placeLobbyTokens(ctx)
		e.emitMapState(ctx)
		e.promptDM(ctx)
	})
	return opErr
}

// placeLobbyTokens consumes the map's spawn markers: party and NPCs at
// the player markers, stock grunts at the enemy markers.
func (e *Engine) placeLobbyTokens(ctx context.Context) {
	playerSpawns, enemySpawns := e.grid.Spawns()

	friendly := append(e.party(), e.npcs()...)
	for i, t := range friendly {
		if i < len(playerSpawns) {
			t.Pos = playerSpawns[i]
			continue
		}
		extra := rules.FindSpawnPositions(e.grid, rules.OccupiedSet(e.tokens, t.ID), 1)
		if len(extra) > 0 {
			t.Pos = extra[0]
		}
	}

	for _, p := range enemySpawns {
		e.spawnEnemy(ctx, rules.EnemyGrunt, &p)
	}
}

// spawnEnemy creates an enemy token at the given position, or at a free
// spawn spot when the position is missing or blocked. Returns nil when
// the map is at the enemy cap.
func (e *Engine) spawnEnemy(ctx context.Context, archetype string, at *arena.Position) *arena.Token {
	if len(e.livingEnemies()) >= rules.MaxEnemiesOnMap {
		return nil
	}
	stats, ok := rules.EnemyTable[archetype]
	if !ok {
		archetype = rules.EnemyGrunt
		stats = rules.EnemyTable[archetype]
	}

	occupied := rules.OccupiedSet(e.tokens, "")
	pos := arena.Position{}
	if at != nil && e.grid.Walkable(*at) && !occupied[*at] {
		pos = *at
	} else {
		spots := rules.FindSpawnPositions(e.grid, occupied, 1)
		if len(spots) == 0 {
			return nil
		}
		pos = spots[0]
	}

	token := &arena.Token{
		ID:      e.ids.Generate(),
		Name:    e.enemyName(archetype),
		Pos:     pos,
		HP:      stats.HP,
		MaxHP:   stats.HP,
		AC:      stats.AC,
		Spd:     rules.DefaultMove,
		Variant: &arena.EnemyVariant{Archetype: archetype},
	}
	e.tokens = append(e.tokens, token)

	// Reinforcements arriving mid-fight act at the back of the order
	if e.combat.Active {
		roll, err := e.roller.Roll(20)
		if err != nil {
			roll = 10
		}
		e.combat.Order = append(e.combat.Order, arena.InitiativeEntry{
			TokenID: token.ID,
			Roll:    roll + rules.InitiativeOtherBonus,
		})
	}
	return token
}

// enemyName skins the archetype for the genre, numbering duplicates
func (e *Engine) enemyName(archetype string) string {
	base := rules.EnemyName(archetype, e.session.Genre)
	n := 0
	for _, t := range e.tokens {
		if v := t.Enemy(); v != nil && v.Archetype == archetype {
			n++
		}
	}
	if n == 0 {
		return base
	}
	return base + " " + strconv.Itoa(n+1)
}

// triggerEnding moves LIVE to ENDING and arms the grace timer
func (e *Engine) triggerEnding(ctx context.Context) {
	if e.session == nil || e.session.State != arena.StateLive {
		return
	}
	e.session.State = arena.StateEnding
	e.saveSession(ctx)
	e.emit(ctx, arena.EventSessionEnding, &arena.SessionEndingPayload{
		Reason: arena.EndTimeLimit,
		Grace:  e.timing.EndingGrace.String(),
	})
	e.sched.Schedule(timerEnding, e.timing.EndingGrace, func() {
		e.do(func() { e.endSession(context.Background(), arena.EndTimeLimit) })
	})
}

// endSession is the terminal transition. Idempotent.
func (e *Engine) endSession(ctx context.Context, reason arena.EndReason) {
	if e.session == nil || e.session.State == arena.StateEnded {
		return
	}
	e.session.State = arena.StateEnded
	e.session.EndReason = reason
	e.session.EndedAt = e.clk.Now()
	e.saveSession(ctx)

	e.sched.CancelAll()
	e.combat.Reset()
	e.currentTurnID = ""

	e.emit(ctx, arena.EventSessionEnded, &arena.SessionEndedPayload{Reason: reason})
	e.seq.CloseSession(e.session.ID)
}

// EndSessionInput names the reason for an externally requested end
type EndSessionInput struct {
	Reason arena.EndReason
}

// EndSession ends the session from outside the engine (demo completion,
// operator shutdown).
func (e *Engine) EndSession(ctx context.Context, input *EndSessionInput) error {
	if input == nil || input.Reason == "" {
		return errors.InvalidArgument("reason cannot be empty")
	}
	var opErr error
	e.do(func() {
		if e.session == nil {
			opErr = errors.FailedPrecondition("no session")
			return
		}
		e.endSession(ctx, input.Reason)
	})
	return opErr
}

// CheckSkillInput names the roller and the skill for an out-of-combat
// check.
type CheckSkillInput struct {
	TokenID string
	Skill   string
}

// CheckSkill performs a skill check outside combat, against the DM's
// pending DC when one is set.
func (e *Engine) CheckSkill(ctx context.Context, input *CheckSkillInput) error {
	if input == nil || input.TokenID == "" {
		return errors.InvalidArgument("token ID cannot be empty")
	}
	var opErr error
	e.do(func() {
		if e.session == nil || e.session.Finished() {
			opErr = errors.FailedPrecondition("session is not running")
			return
		}
		if e.combat.Active {
			opErr = errors.FailedPrecondition("skill checks during combat spend the turn")
			return
		}
		token := e.tokenByID(input.TokenID)
		if token == nil || !token.Alive() {
			opErr = errors.NotFoundf("token %s", input.TokenID)
			return
		}
		e.resolveSkillCheck(ctx, token, input.Skill)
	})
	return opErr
}

// ChooseRewardInput picks one of a token's offered reward options
type ChooseRewardInput struct {
	TokenID string
	Reward  string
}

// ChooseReward resolves an open roguelike reward offer
func (e *Engine) ChooseReward(ctx context.Context, input *ChooseRewardInput) error {
	if input == nil || input.TokenID == "" || input.Reward == "" {
		return errors.InvalidArgument("token ID and reward cannot be empty")
	}
	var opErr error
	e.do(func() {
		if e.session == nil || e.session.Finished() {
			opErr = errors.FailedPrecondition("session is not running")
			return
		}
		if e.run == nil {
			opErr = errors.FailedPrecondition("session is not a roguelike run")
			return
		}
		token := e.tokenByID(input.TokenID)
		if token == nil {
			opErr = errors.NotFoundf("token %s", input.TokenID)
			return
		}
		opErr = e.run.ChooseReward(token, input.Reward)
	})
	return opErr
}

// Subscribe attaches a live event stream consumer starting at fromSeq
func (e *Engine) Subscribe(ctx context.Context, fromSeq int64) (*sequencer.Subscription, error) {
	id := e.sessionID()
	if id == "" {
		return nil, errors.FailedPrecondition("no session")
	}
	return e.seq.Subscribe(ctx, id, fromSeq)
}

// Catchup bulk-reads the session stream from fromSeq
func (e *Engine) Catchup(ctx context.Context, fromSeq int64) (*sequencer.CatchupOutput, error) {
	id := e.sessionID()
	if id == "" {
		return nil, errors.FailedPrecondition("no session")
	}
	return e.seq.Catchup(ctx, id, fromSeq)
}

func (e *Engine) sessionID() string {
	var id string
	e.do(func() {
		if e.session != nil {
			id = e.session.ID
		}
	})
	return id
}

// Snapshot is a deep copy of the engine's state for inspection
type Snapshot struct {
	Session arena.Session
	Rows    []string
	Tokens  []*arena.Token
	Combat  arena.CombatState
	Potions int
	Floor   int
}

// Snapshot copies the current state off the command loop
func (e *Engine) Snapshot() *Snapshot {
	var snap *Snapshot
	e.do(func() {
		if e.session == nil {
			return
		}
		snap = &Snapshot{
			Session: *e.session,
			Combat:  e.combat,
			Potions: e.potions,
		}
		snap.Combat.Order = append([]arena.InitiativeEntry(nil), e.combat.Order...)
		if e.grid != nil {
			snap.Rows = append([]string(nil), e.grid.Rows...)
		}
		for _, t := range e.tokens {
			copied := *t
			copied.Statuses = append([]arena.Status(nil), t.Statuses...)
			switch v := t.Variant.(type) {
			case *arena.PlayerVariant:
				pv := *v
				copied.Variant = &pv
			case *arena.EnemyVariant:
				ev := *v
				copied.Variant = &ev
			case *arena.NPCVariant:
				nv := *v
				copied.Variant = &nv
			}
			snap.Tokens = append(snap.Tokens, &copied)
		}
		if e.run != nil {
			snap.Floor = e.run.Floor()
		}
	})
	return snap
}

// emit appends to the session stream, logging instead of failing the
// turn when storage rejects the event.
func (e *Engine) emit(ctx context.Context, evType arena.EventType, payload interface{}) {
	if e.session == nil {
		return
	}
	if _, err := e.seq.Emit(ctx, e.session.ID, evType, payload); err != nil {
		e.log.Error("failed to emit event",
			"session_id", e.session.ID,
			"type", string(evType),
			"error", err,
		)
	}
}

func (e *Engine) saveSession(ctx context.Context) {
	if _, err := e.archive.Save(ctx, sessions.SaveInput{Session: e.session}); err != nil {
		e.log.Error("failed to save session", "session_id", e.session.ID, "error", err)
	}
}

func (e *Engine) emitMapState(ctx context.Context) {
	e.emit(ctx, arena.EventMapState, &arena.MapStatePayload{
		Rows:   append([]string(nil), e.grid.Rows...),
		Tokens: e.views(e.tokens),
	})
}

func (e *Engine) views(tokens []*arena.Token) []arena.TokenView {
	out := make([]arena.TokenView, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, arena.ViewOf(t))
	}
	return out
}

// Token set accessors. All loop-confined.

func (e *Engine) party() []*arena.Token {
	var out []*arena.Token
	for _, t := range e.tokens {
		if t.IsPlayer() {
			out = append(out, t)
		}
	}
	return out
}

func (e *Engine) npcs() []*arena.Token {
	var out []*arena.Token
	for _, t := range e.tokens {
		if t.Variant.Kind() == arena.KindNPC {
			out = append(out, t)
		}
	}
	return out
}

func (e *Engine) enemies() []*arena.Token {
	var out []*arena.Token
	for _, t := range e.tokens {
		if t.IsEnemy() {
			out = append(out, t)
		}
	}
	return out
}

func (e *Engine) livingEnemies() []*arena.Token {
	var out []*arena.Token
	for _, t := range e.enemies() {
		if t.Alive() {
			out = append(out, t)
		}
	}
	return out
}

func (e *Engine) livingParty() []*arena.Token {
	var out []*arena.Token
	for _, t := range e.party() {
		if t.Alive() {
			out = append(out, t)
		}
	}
	return out
}

func (e *Engine) tokenByID(id string) *arena.Token {
	for _, t := range e.tokens {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (e *Engine) tokenByAgent(agentID string) *arena.Token {
	for _, t := range e.tokens {
		if v := t.Player(); v != nil && v.AgentID == agentID {
			return t
		}
	}
	return nil
}

// indexItems assigns a pickup kind to every item tile on the grid,
// cycling through the table so maps need not spell kinds out.
func (e *Engine) indexItems() {
	e.items = make(map[arena.Position]string)
	kinds := []string{rules.ItemHPPotion, rules.ItemAtkBoost, rules.ItemDefBoost, rules.ItemSpdBoost}
	i := 0
	for y := 0; y < e.grid.Height; y++ {
		for x := 0; x < e.grid.Width; x++ {
			p := arena.Position{X: x, Y: y}
			if e.grid.TileAt(p) == arena.TileItem {
				e.items[p] = kinds[i%len(kinds)]
				i++
			}
		}
	}
}

// defaultArena is the stock 14x14 map used when a session supplies none
func defaultArena() []string {
	return []string{
		"##############",
		"#S...........#",
		"#....#..#....#",
		"#S...#..#...M#",
		"#....#..#....#",
		"#............#",
		"#S..~....!..M#",
		"#....~.......#",
		"#....#..#....#",
		"#S...#..#...M#",
		"#....#..#....#",
		"#.......!....#",
		"#............#",
		"##############",
	}
}
