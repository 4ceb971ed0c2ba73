package ai

import (
	"github.com/arenaforge/arena-api/internal/entities/arena"
	"github.com/arenaforge/arena-api/internal/rules"
)

// DemoPlayerDecider drives party members in autonomous sessions with
// class-based heuristics: the fighter tanks, the cleric heals and keeps
// ranged distance, the rogue chases damage.
type DemoPlayerDecider struct{}

// NewDemoPlayerDecider returns the demo player decision function
func NewDemoPlayerDecider() *DemoPlayerDecider { return &DemoPlayerDecider{} }

var _ Decider = (*DemoPlayerDecider)(nil)

// Decide picks the player's intent for this turn
func (d *DemoPlayerDecider) Decide(view *View) arena.Intent {
	self := view.Self
	v := self.Player()
	if v == nil {
		return defend()
	}

	target := nearest(self, view.Enemies)
	if target == nil {
		return defend()
	}
	dist := rules.Manhattan(self.Pos, target.Pos)

	switch v.Class {
	case rules.ClassFighter:
		if self.HP*5 < self.MaxHP { // below 20%
			return defend()
		}
		if dist <= 1 {
			return arena.Intent{Type: arena.IntentAttack, TargetID: target.ID}
		}
		to := target.Pos
		return arena.Intent{Type: arena.IntentMove, To: &to}

	case rules.ClassCleric:
		if ally := weakestAlly(view.Allies); ally != nil {
			return arena.Intent{Type: arena.IntentHeal, TargetID: ally.ID}
		}
		if self.HP*2 < self.MaxHP {
			return arena.Intent{Type: arena.IntentHeal, TargetID: self.ID}
		}
		if dist <= rules.RangedRange {
			if !rules.HasLineOfSight(view.Map, self.Pos, target.Pos) {
				to := target.Pos
				return arena.Intent{Type: arena.IntentMove, To: &to}
			}
			return arena.Intent{Type: arena.IntentSpellAttack, TargetID: target.ID}
		}
		// Close to spell range but never to melee
		to := arena.Position{X: target.Pos.X - 4, Y: self.Pos.Y}
		return arena.Intent{Type: arena.IntentMove, To: &to}

	case rules.ClassRogue:
		if self.HP*4 < self.MaxHP { // below 25%
			return defend()
		}
		if dist <= 1 {
			return arena.Intent{Type: arena.IntentAttack, TargetID: target.ID}
		}
		to := target.Pos
		return arena.Intent{Type: arena.IntentMove, To: &to}

	default:
		return defend()
	}
}

// weakestAlly returns the living ally below half HP with the lowest HP
// ratio, nil when everyone is healthy.
func weakestAlly(allies []*arena.Token) *arena.Token {
	var weakest *arena.Token
	for _, a := range allies {
		if !a.Alive() || a.HP*2 >= a.MaxHP {
			continue
		}
		if weakest == nil || a.HP*weakest.MaxHP < weakest.HP*a.MaxHP {
			weakest = a
		}
	}
	return weakest
}
