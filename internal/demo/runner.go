// Package demo drives fully autonomous showcase sessions against a live
// engine: scripted narration beats, scripted DM intents, and the demo
// player decider doing the fighting. The runner only uses the engine's
// public operations, so a demo session exercises the same paths a real
// one does.
package demo

import (
	"context"
	"log/slog"
	"time"

	"github.com/arenaforge/arena-api/internal/entities/arena"
	"github.com/arenaforge/arena-api/internal/errors"
	"github.com/arenaforge/arena-api/internal/orchestrators/game"
	"github.com/arenaforge/arena-api/internal/roguelike"
	"github.com/arenaforge/arena-api/internal/rules"
)

// Delays are written at full speed and scaled down by DelayScale, with a
// floor so events stay readable on a live stream.
const (
	defaultDelayScale = 0.35
	minDelay          = 120 * time.Millisecond
)

// Beat lengths in milliseconds before scaling
const (
	narrationBeat = 900
	speechBeat    = 700
	combatTick    = 400
	runTick       = 500
)

// Config holds the runner dependencies
type Config struct {
	Engine *game.Engine

	// DelayScale multiplies every scripted delay. Zero means the default
	// of 0.35; values are clamped to [0.1, 1].
	DelayScale float64

	Logger *slog.Logger
}

// Validate ensures the configuration is usable
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.DelayScale < 0 {
		vb.Field("DelayScale", "must not be negative")
	}
	return vb.Build()
}

// Runner plays one showcase session on its engine
type Runner struct {
	engine *game.Engine
	scale  float64
	log    *slog.Logger

	nextSeq int64
	beats   map[phase]int
}

// New creates a demo runner
func New(cfg *Config) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	scale := cfg.DelayScale
	if scale == 0 {
		scale = defaultDelayScale
	}
	if scale < 0.1 {
		scale = 0.1
	}
	if scale > 1 {
		scale = 1
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Runner{
		engine:  cfg.Engine,
		scale:   scale,
		log:     log,
		nextSeq: 1,
		beats:   make(map[phase]int),
	}, nil
}

// errSessionOver stops a watch loop when the session ended under it
var errSessionOver = errors.FailedPrecondition("session ended")

// partyMember is one scripted party slot
type partyMember struct {
	name  string
	class string
}

var demoParty = []partyMember{
	{name: "로보캅", class: rules.ClassFighter},
	{name: "비전", class: rules.ClassCleric},
	{name: "T-800", class: rules.ClassRogue},
}

// Run plays the standard two-encounter showcase: intro, exploration with
// a stealth check, a first wave with a reinforcement, a breather, a
// second heavier wave, then an orderly demo_complete ending.
func (r *Runner) Run(ctx context.Context, genre string) error {
	if _, ok := narration[genre]; !ok {
		genre = rules.GenreFactory
	}

	created, err := r.engine.CreateSession(ctx, &game.CreateSessionInput{
		Genre:   genre,
		Title:   titles[genre],
		MapRows: demoArena(),
	})
	if err != nil {
		return errors.Wrap(err, "failed to create demo session")
	}
	r.log.Info("demo session created", "session_id", created.Session.ID, "genre", genre)

	tokens := make(map[string]string, len(demoParty))
	for _, m := range demoParty {
		out, err := r.engine.AddPlayer(ctx, &game.AddPlayerInput{Name: m.name, Class: m.class})
		if err != nil {
			return errors.Wrapf(err, "failed to add %s", m.name)
		}
		tokens[m.class] = out.TokenID
	}

	if err := r.engine.StartSession(ctx); err != nil {
		return errors.Wrap(err, "failed to start demo session")
	}

	if err := r.playOpening(ctx, genre, tokens); err != nil {
		return r.settle(ctx, err)
	}

	// First wave: two grunts on the far side, one more mid-fight
	if err := r.narrate(ctx, genre, phaseCombatStart); err != nil {
		return r.settle(ctx, err)
	}
	wave1 := []arena.DMIntent{
		{Type: arena.DMSpawnEnemy, Archetype: rules.EnemyGrunt, At: &arena.Position{X: 11, Y: 2}},
		{Type: arena.DMSpawnEnemy, Archetype: rules.EnemyGrunt, At: &arena.Position{X: 11, Y: 4}},
		{Type: arena.DMRequestCombatStart},
	}
	if err := r.applyAll(ctx, wave1); err != nil {
		return r.settle(ctx, err)
	}
	if err := r.watchCombat(ctx, rules.EnemyGrunt); err != nil {
		return r.settle(ctx, err)
	}

	if err := r.narrate(ctx, genre, phaseBetweenRounds); err != nil {
		return r.settle(ctx, err)
	}
	if err := r.say(ctx, "비전", speechFor(rules.ClassCleric, 1)); err != nil {
		return r.settle(ctx, err)
	}

	// Second wave: a brute with spitter support, another brute mid-fight
	if err := r.narrate(ctx, genre, phaseCombatStart); err != nil {
		return r.settle(ctx, err)
	}
	wave2 := []arena.DMIntent{
		{Type: arena.DMSpawnEnemy, Archetype: rules.EnemyBrute, At: &arena.Position{X: 11, Y: 9}},
		{Type: arena.DMSpawnEnemy, Archetype: rules.EnemySpitter, At: &arena.Position{X: 11, Y: 11}},
		{Type: arena.DMRequestCombatStart},
	}
	if err := r.applyAll(ctx, wave2); err != nil {
		return r.settle(ctx, err)
	}
	if err := r.watchCombat(ctx, rules.EnemyBrute); err != nil {
		return r.settle(ctx, err)
	}

	if err := r.narrate(ctx, genre, phaseEnding); err != nil {
		return r.settle(ctx, err)
	}
	if err := r.narrate(ctx, genre, phaseEnding); err != nil {
		return r.settle(ctx, err)
	}

	r.log.Info("demo complete", "session_id", created.Session.ID)
	return r.engine.EndSession(ctx, &game.EndSessionInput{Reason: arena.EndDemoComplete})
}

// playOpening runs the scripted pre-combat beats
func (r *Runner) playOpening(ctx context.Context, genre string, tokens map[string]string) error {
	if err := r.narrate(ctx, genre, phaseIntro); err != nil {
		return err
	}
	if err := r.narrate(ctx, genre, phaseIntro); err != nil {
		return err
	}
	for _, m := range demoParty {
		if err := r.say(ctx, m.name, speechFor(m.class, 0)); err != nil {
			return err
		}
	}
	if err := r.narrate(ctx, genre, phaseExploration); err != nil {
		return err
	}

	// The rogue scouts ahead against a DM-set DC
	err := r.engine.ApplyDMIntent(ctx, arena.DMIntent{Type: arena.DMSetDC, Skill: "stealth", DC: 15})
	if err != nil {
		return err
	}
	err = r.engine.CheckSkill(ctx, &game.CheckSkillInput{TokenID: tokens[rules.ClassRogue], Skill: "stealth"})
	if err != nil {
		return err
	}
	return r.sleep(ctx, narrationBeat)
}

// RunRoguelike plays an autonomous descent: the engine and run drive the
// floors, the runner narrates floor openings and takes reward offers.
func (r *Runner) RunRoguelike(ctx context.Context) error {
	created, err := r.engine.CreateSession(ctx, &game.CreateSessionInput{
		Genre:     rules.GenreFactory,
		Title:     "끝없는 하강",
		Roguelike: true,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create roguelike session")
	}
	r.log.Info("roguelike demo session created", "session_id", created.Session.ID)

	for _, m := range demoParty {
		if _, err := r.engine.AddPlayer(ctx, &game.AddPlayerInput{Name: m.name, Class: m.class}); err != nil {
			return errors.Wrapf(err, "failed to add %s", m.name)
		}
	}
	if err := r.engine.StartSession(ctx); err != nil {
		return errors.Wrap(err, "failed to start roguelike session")
	}

	for {
		if err := r.sleep(ctx, runTick); err != nil {
			return err
		}
		evs, err := r.pollEvents(ctx)
		if err != nil {
			return err
		}
		for _, ev := range evs {
			switch ev.Type {
			case arena.EventFloorStarted:
				var p arena.FloorStartedPayload
				if err := ev.DecodePayload(&p); err != nil {
					continue
				}
				r.log.Info("floor started", "floor", p.Floor)
				_ = r.engine.ApplyDMIntent(ctx, arena.DMIntent{
					Type: arena.DMNarrate,
					Text: floorLine(p.Floor, roguelike.MaxFloors),
				})

			case arena.EventRewardOffered:
				var p arena.RewardOfferedPayload
				if err := ev.DecodePayload(&p); err != nil || len(p.Options) == 0 {
					continue
				}
				_ = r.engine.ChooseReward(ctx, &game.ChooseRewardInput{
					TokenID: p.TokenID,
					Reward:  p.Options[0],
				})

			case arena.EventRunEnded:
				var p arena.RunEndedPayload
				if err := ev.DecodePayload(&p); err != nil {
					continue
				}
				r.log.Info("run ended", "victory", p.Victory, "floor", p.Floor)

			case arena.EventSessionEnded:
				return nil
			}
		}
	}
}

// watchCombat follows the stream until the current encounter resolves,
// spawning one reinforcement when round two opens.
func (r *Runner) watchCombat(ctx context.Context, reinforcement string) error {
	started := false
	reinforced := reinforcement == ""
	lastRound := 1

	for {
		if err := r.sleep(ctx, combatTick); err != nil {
			return err
		}
		evs, err := r.pollEvents(ctx)
		if err != nil {
			return err
		}
		for _, ev := range evs {
			switch ev.Type {
			case arena.EventCombatStarted:
				started = true

			case arena.EventTurnChanged:
				var p arena.TurnChangedPayload
				if err := ev.DecodePayload(&p); err != nil {
					continue
				}
				if p.Round > lastRound {
					lastRound = p.Round
					if !reinforced && p.Round >= 2 {
						reinforced = true
						_ = r.engine.ApplyDMIntent(ctx, arena.DMIntent{
							Type:      arena.DMSpawnEnemy,
							Archetype: reinforcement,
						})
					}
				}

			case arena.EventCombatEnded:
				if !started {
					continue
				}
				var p arena.CombatEndedPayload
				if err := ev.DecodePayload(&p); err == nil {
					r.log.Info("encounter resolved", "victory", p.Victory, "reason", p.Reason)
				}
				return nil

			case arena.EventSessionEnded:
				return errSessionOver
			}
		}
	}
}

// settle turns a mid-script session end into a clean return: the engine
// already emitted the terminal event, so the demo just stops.
func (r *Runner) settle(ctx context.Context, err error) error {
	if errors.Is(err, errSessionOver) || errors.IsFailedPrecondition(err) {
		r.log.Info("demo session ended mid-script")
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// narrate plays one DM line of the phase, round-robin within its pool
func (r *Runner) narrate(ctx context.Context, genre string, ph phase) error {
	pool := narration[genre][ph]
	if len(pool) == 0 {
		return nil
	}
	line := pool[r.beats[ph]%len(pool)]
	r.beats[ph]++
	if err := r.engine.ApplyDMIntent(ctx, arena.DMIntent{Type: arena.DMNarrate, Text: line}); err != nil {
		return err
	}
	return r.sleep(ctx, narrationBeat)
}

// say plays one in-character line through the content filter
func (r *Runner) say(ctx context.Context, from, text string) error {
	if text == "" {
		return nil
	}
	if err := r.engine.Say(ctx, from, text); err != nil {
		return err
	}
	return r.sleep(ctx, speechBeat)
}

func (r *Runner) applyAll(ctx context.Context, intents []arena.DMIntent) error {
	for _, intent := range intents {
		if err := r.engine.ApplyDMIntent(ctx, intent); err != nil {
			return err
		}
	}
	return nil
}

// pollEvents reads the stream since the last poll. A compacted catch-up
// can replay part of the tail, so already-seen sequences are dropped.
func (r *Runner) pollEvents(ctx context.Context) ([]*arena.GameEvent, error) {
	out, err := r.engine.Catchup(ctx, r.nextSeq)
	if err != nil {
		return nil, err
	}
	var evs []*arena.GameEvent
	for _, ev := range out.Events {
		if ev.Seq < r.nextSeq {
			continue
		}
		evs = append(evs, ev)
		r.nextSeq = ev.Seq + 1
	}
	return evs, nil
}

// sleep waits for a scaled beat or the context
func (r *Runner) sleep(ctx context.Context, ms int) error {
	d := time.Duration(float64(ms)*r.scale) * time.Millisecond
	if d < minDelay {
		d = minDelay
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// demoArena is the showcase map: party spawns on the left, open ground
// with cover pillars in the middle, pickups and hazards on the flanks.
// Enemy waves are scripted, so the map carries no enemy markers.
func demoArena() []string {
	return []string{
		"##############",
		"#S...........#",
		"#S...#..#....#",
		"#S...#..#....#",
		"#....#..#....#",
		"#......!.....#",
		"#..~.........#",
		"#.........~..#",
		"#....#..#....#",
		"#....#..#....#",
		"#....#..#..!.#",
		"#............#",
		"#............#",
		"##############",
	}
}
