package game

import (
	"context"

	"github.com/arenaforge/arena-api/internal/entities/arena"
	"github.com/arenaforge/arena-api/internal/roguelike"
	"github.com/arenaforge/arena-api/internal/rules"
)

// board exposes the engine to a roguelike run. The run only ever calls
// in from code already on the command loop, so these methods touch loop
// state directly.
type board Engine

var _ roguelike.Board = (*board)(nil)

func (b *board) engine() *Engine { return (*Engine)(b) }

// Emit appends an event to the session stream
func (b *board) Emit(evType arena.EventType, payload interface{}) {
	b.engine().emit(context.Background(), evType, payload)
}

// Party returns the player tokens, dead included
func (b *board) Party() []*arena.Token {
	return b.engine().party()
}

// InstallFloor swaps in a generated floor: the party moves to its spawn
// markers, the floor's opposition replaces all previous enemies and
// NPCs, and a fresh map snapshot goes out.
func (b *board) InstallFloor(f *roguelike.Floor) {
	e := b.engine()
	ctx := context.Background()

	e.grid = f.Map
	e.items = make(map[arena.Position]string, len(f.Items))
	for p, kind := range f.Items {
		e.items[p] = kind
	}

	e.tokens = e.party()
	playerSpawns, enemySpawns := e.grid.Spawns()
	for i, t := range e.tokens {
		if i < len(playerSpawns) {
			t.Pos = playerSpawns[i]
			continue
		}
		extra := rules.FindSpawnPositions(e.grid, rules.OccupiedSet(e.tokens, t.ID), 1)
		if len(extra) > 0 {
			t.Pos = extra[0]
		}
	}

	for i, archetype := range f.Archetypes {
		var at *arena.Position
		if i < len(enemySpawns) {
			at = &enemySpawns[i]
		}
		e.spawnEnemy(ctx, archetype, at)
	}

	e.emitMapState(ctx)
}

// BeginCombat rolls initiative on the installed floor
func (b *board) BeginCombat() {
	b.engine().startCombat(context.Background())
}

// FinishRun ends the session once the run resolved
func (b *board) FinishRun(victory bool) {
	e := b.engine()
	reason := arena.EndRoguelikeComplete
	if !victory {
		reason = arena.EndDefeat
	}
	e.endSession(context.Background(), reason)
}
