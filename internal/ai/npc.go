package ai

import (
	"github.com/arenaforge/arena-api/internal/entities/arena"
	"github.com/arenaforge/arena-api/internal/rules"
)

// NPCDecider drives friendly non-player tokens: stay close to the party
// and swing at adjacent enemies.
type NPCDecider struct{}

// NewNPCDecider returns the NPC decision function
func NewNPCDecider() *NPCDecider { return &NPCDecider{} }

var _ Decider = (*NPCDecider)(nil)

// Decide picks the NPC's intent for this turn
func (d *NPCDecider) Decide(view *View) arena.Intent {
	target := nearest(view.Self, view.Enemies)
	if target == nil {
		return defend()
	}

	dist := rules.Manhattan(view.Self.Pos, target.Pos)
	if dist <= 1 {
		return arena.Intent{Type: arena.IntentAttack, TargetID: target.ID}
	}
	if dist <= rules.RangedRange {
		to := target.Pos
		return arena.Intent{Type: arena.IntentMove, To: &to}
	}
	// Too far from the fight: hold position
	return defend()
}
