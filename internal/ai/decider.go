// Package ai provides decision functions for tokens that act without a
// live agent: enemies, friendly NPCs, demo-driven players, and
// Lua-scripted experiments. Deciders are synchronous and never block the
// session loop.
package ai

import (
	"github.com/arenaforge/arena-api/internal/entities/arena"
	"github.com/arenaforge/arena-api/internal/rules"
)

// View is everything a decider may look at when picking an intent
type View struct {
	Self    *arena.Token
	Allies  []*arena.Token
	Enemies []*arena.Token
	Map     *arena.GridMap
	Round   int
}

// Decider chooses an intent for one turn
type Decider interface {
	Decide(view *View) arena.Intent
}

// DeciderFunc adapts a function to the Decider interface
type DeciderFunc func(view *View) arena.Intent

// Decide implements Decider
func (f DeciderFunc) Decide(view *View) arena.Intent { return f(view) }

// nearest returns the closest of the candidates to self, nil when none
// are alive.
func nearest(self *arena.Token, candidates []*arena.Token) *arena.Token {
	var best *arena.Token
	bestDist := 0
	for _, c := range candidates {
		if !c.Alive() {
			continue
		}
		d := rules.Manhattan(self.Pos, c.Pos)
		if best == nil || d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best
}

func defend() arena.Intent {
	return arena.Intent{Type: arena.IntentDefend}
}
