package rules

import (
	"github.com/arenaforge/arena-api/internal/entities/arena"
)

// Combat tuning constants
const (
	RangedRange     = 5
	MaxEnemiesOnMap = 6
	DefaultMove     = 6

	InitiativePlayerBonus = 2
	InitiativeOtherBonus  = 1
)

// Player classes
const (
	ClassFighter = "fighter"
	ClassCleric  = "cleric"
	ClassRogue   = "rogue"
)

// Enemy archetypes
const (
	EnemyGrunt   = "grunt"
	EnemySpitter = "spitter"
	EnemyBrute   = "brute"
)

// ClassStats is the baseline stat line for a player class
type ClassStats struct {
	HP         int
	AC         int
	Move       int
	ToHitBonus int
	MeleeDice  string
	RangedDice string
	Skills     map[string]int
}

// ClassTable maps class name to stats
var ClassTable = map[string]ClassStats{
	ClassFighter: {
		HP: 30, AC: 16, Move: 6, ToHitBonus: 5,
		MeleeDice: "1d8+3", RangedDice: "1d6+1",
		Skills: map[string]int{"athletics": 5, "intimidation": 3},
	},
	ClassCleric: {
		HP: 24, AC: 14, Move: 6, ToHitBonus: 3,
		MeleeDice: "1d6+2", RangedDice: "1d8+2",
		Skills: map[string]int{"medicine": 5, "insight": 4, "religion": 3},
	},
	ClassRogue: {
		HP: 22, AC: 15, Move: 7, ToHitBonus: 5,
		MeleeDice: "1d6+3", RangedDice: "1d6+3",
		Skills: map[string]int{"stealth": 5, "acrobatics": 4, "perception": 3},
	},
}

// EnemyStats is the baseline stat line for an enemy archetype
type EnemyStats struct {
	HP         int
	AC         int
	ToHitBonus int
	MeleeDice  string
	RangedDice string
	Ranged     bool
	XP         int
}

// EnemyTable maps archetype to stats
var EnemyTable = map[string]EnemyStats{
	EnemyGrunt:   {HP: 12, AC: 12, ToHitBonus: 3, MeleeDice: "1d6+1", RangedDice: "1d4", XP: 10},
	EnemySpitter: {HP: 8, AC: 11, ToHitBonus: 3, MeleeDice: "1d4", RangedDice: "1d6", Ranged: true, XP: 15},
	EnemyBrute:   {HP: 20, AC: 13, ToHitBonus: 4, MeleeDice: "1d8+2", RangedDice: "1d4", XP: 25},
}

// NPCStats is the stat line for friendly non-player tokens
var NPCStats = struct {
	HP         int
	AC         int
	ToHitBonus int
	MeleeDice  string
}{HP: 15, AC: 12, ToHitBonus: 3, MeleeDice: "1d6+1"}

// AttackSpec is what an attack resolves with
type AttackSpec struct {
	ToHitBonus int
	DamageDice string
}

// TokenAttackSpec returns the attack spec for a token's melee or ranged
// attack, falling back to an unarmed strike for unknown classes.
func TokenAttackSpec(t *arena.Token, ranged bool) AttackSpec {
	switch v := t.Variant.(type) {
	case *arena.PlayerVariant:
		cs, ok := ClassTable[v.Class]
		if !ok {
			return AttackSpec{ToHitBonus: 2, DamageDice: "1d4"}
		}
		dice := cs.MeleeDice
		if ranged {
			dice = cs.RangedDice
		}
		return AttackSpec{ToHitBonus: cs.ToHitBonus + WeaponBonus(v.Weapon), DamageDice: dice}
	case *arena.EnemyVariant:
		es, ok := EnemyTable[v.Archetype]
		if !ok {
			es = EnemyTable[EnemyGrunt]
		}
		dice := es.MeleeDice
		if ranged {
			dice = es.RangedDice
		}
		return AttackSpec{ToHitBonus: es.ToHitBonus, DamageDice: dice}
	default:
		return AttackSpec{ToHitBonus: NPCStats.ToHitBonus, DamageDice: NPCStats.MeleeDice}
	}
}

// SkillBonus returns the token's bonus for a named skill, zero when
// untrained.
func SkillBonus(t *arena.Token, skill string) int {
	v := t.Player()
	if v == nil {
		return 0
	}
	cs, ok := ClassTable[v.Class]
	if !ok {
		return 0
	}
	return cs.Skills[skill]
}

// ClassSkills lists the trained skills of a class in no particular order
func ClassSkills(class string) []string {
	cs, ok := ClassTable[class]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(cs.Skills))
	for name := range cs.Skills {
		out = append(out, name)
	}
	return out
}

// MoveBudget returns how many tiles a token may move this turn, before
// any speed boost.
func MoveBudget(t *arena.Token) int {
	if v := t.Player(); v != nil {
		if cs, ok := ClassTable[v.Class]; ok {
			return cs.Move
		}
	}
	return DefaultMove
}
