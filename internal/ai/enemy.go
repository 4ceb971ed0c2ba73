package ai

import (
	"github.com/arenaforge/arena-api/internal/entities/arena"
	"github.com/arenaforge/arena-api/internal/rules"
)

// EnemyDecider drives hostile tokens. Ranged archetypes keep distance
// and shoot when they have line of sight; the rest close to melee.
type EnemyDecider struct{}

// NewEnemyDecider returns the enemy decision function
func NewEnemyDecider() *EnemyDecider { return &EnemyDecider{} }

var _ Decider = (*EnemyDecider)(nil)

// Decide picks the enemy's intent for this turn
func (d *EnemyDecider) Decide(view *View) arena.Intent {
	target := nearest(view.Self, view.Enemies)
	if target == nil {
		return defend()
	}

	dist := rules.Manhattan(view.Self.Pos, target.Pos)

	if v := view.Self.Enemy(); v != nil {
		if es, ok := rules.EnemyTable[v.Archetype]; ok && es.Ranged {
			if dist <= rules.RangedRange && dist > 1 &&
				rules.HasLineOfSight(view.Map, view.Self.Pos, target.Pos) {
				return arena.Intent{Type: arena.IntentRangedAttack, TargetID: target.ID}
			}
		}
	}

	if dist <= 1 {
		return arena.Intent{Type: arena.IntentAttack, TargetID: target.ID}
	}
	to := target.Pos
	return arena.Intent{Type: arena.IntentMove, To: &to}
}
