package arena

import "github.com/KirkDiggler/rpg-toolkit/core"

// Compile-time check that tokens can be handed to toolkit helpers
var _ core.Entity = (*Token)(nil)

// Position is a cell coordinate on the grid
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// TokenKind discriminates the token variants on the wire
type TokenKind string

// Token kinds
const (
	KindPlayer TokenKind = "player"
	KindEnemy  TokenKind = "enemy"
	KindNPC    TokenKind = "npc"
)

// Variant carries the kind-specific data of a token. Exactly one of
// PlayerVariant, EnemyVariant, or NPCVariant backs each token; consumers
// type-switch on it.
type Variant interface {
	Kind() TokenKind
}

// PlayerVariant is a party member driven by an agent (or a decision
// function when no agent is attached).
type PlayerVariant struct {
	Class   string `json:"class"`
	AgentID string `json:"agent_id,omitempty"`
	XP      int    `json:"xp"`
	Level   int    `json:"level"`
	Weapon  string `json:"weapon,omitempty"`
	Armor   string `json:"armor,omitempty"`
}

// Kind implements Variant
func (v *PlayerVariant) Kind() TokenKind { return KindPlayer }

// EnemyVariant is a hostile token driven by the built-in enemy AI
type EnemyVariant struct {
	Archetype string `json:"archetype"`
}

// Kind implements Variant
func (v *EnemyVariant) Kind() TokenKind { return KindEnemy }

// NPCVariant is a friendly non-player token the DM may act through
type NPCVariant struct {
	Role string `json:"role,omitempty"`
}

// Kind implements Variant
func (v *NPCVariant) Kind() TokenKind { return KindNPC }

// Token is a creature on the grid
type Token struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Pos      Position `json:"pos"`
	HP       int      `json:"hp"`
	MaxHP    int      `json:"max_hp"`
	AC       int      `json:"ac"`
	Atk      int      `json:"atk"`
	Spd      int      `json:"spd"`
	Statuses []Status `json:"statuses,omitempty"`
	Variant  Variant  `json:"-"`
}

// GetID implements core.Entity
func (t *Token) GetID() string { return t.ID }

// GetType implements core.Entity
func (t *Token) GetType() string { return string(t.Variant.Kind()) }

// Alive reports whether the token has hit points left
func (t *Token) Alive() bool { return t.HP > 0 }

// IsPlayer reports whether the token is a party member
func (t *Token) IsPlayer() bool { return t.Variant.Kind() == KindPlayer }

// IsEnemy reports whether the token is hostile
func (t *Token) IsEnemy() bool { return t.Variant.Kind() == KindEnemy }

// Player returns the player variant, or nil for other kinds
func (t *Token) Player() *PlayerVariant {
	if v, ok := t.Variant.(*PlayerVariant); ok {
		return v
	}
	return nil
}

// Enemy returns the enemy variant, or nil for other kinds
func (t *Token) Enemy() *EnemyVariant {
	if v, ok := t.Variant.(*EnemyVariant); ok {
		return v
	}
	return nil
}

// HasStatus reports whether any status of the given kind is present
func (t *Token) HasStatus(kind StatusKind) bool {
	for _, st := range t.Statuses {
		if st.Kind == kind {
			return true
		}
	}
	return false
}

// AddStatus appends a status record
func (t *Token) AddStatus(st Status) {
	t.Statuses = append(t.Statuses, st)
}

// ConsumeStatus removes one instance of the given kind, reporting
// whether one was present. Stacked statuses burn one at a time.
func (t *Token) ConsumeStatus(kind StatusKind) bool {
	for i, st := range t.Statuses {
		if st.Kind == kind {
			t.Statuses = append(t.Statuses[:i], t.Statuses[i+1:]...)
			if len(t.Statuses) == 0 {
				t.Statuses = nil
			}
			return true
		}
	}
	return false
}

// ApplyDamage reduces HP, clamped at zero, and returns the new value
func (t *Token) ApplyDamage(dmg int) int {
	t.HP -= dmg
	if t.HP < 0 {
		t.HP = 0
	}
	return t.HP
}

// ApplyHeal raises HP, clamped at MaxHP, and returns the new value
func (t *Token) ApplyHeal(amount int) int {
	t.HP += amount
	if t.HP > t.MaxHP {
		t.HP = t.MaxHP
	}
	return t.HP
}
