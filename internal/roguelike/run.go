// Package roguelike layers a multi-floor run on top of a live session:
// floor progression, experience and levels, between-floor rest, and
// equipment rewards. The run never touches the grid directly; it drives
// the session through the Board interface and the session calls back in
// on combat outcomes.
package roguelike

import (
	"math"

	"github.com/arenaforge/arena-api/internal/entities/arena"
	"github.com/arenaforge/arena-api/internal/errors"
	"github.com/arenaforge/arena-api/internal/rules"
)

// XP needed to reach the next level is level * xpPerLevel
const xpPerLevel = 50

// Level-up growth per level. AC only rises on even levels.
const (
	levelUpHP  = 5
	levelUpAtk = 1
)

// Board is the slice of a live session a run drives
type Board interface {
	// Emit appends an event to the session stream
	Emit(evType arena.EventType, payload interface{})

	// Party returns the player tokens, dead included
	Party() []*arena.Token

	// InstallFloor swaps in a generated floor: new grid, enemies at the
	// spawn markers, party at theirs, then a fresh map snapshot.
	InstallFloor(f *Floor)

	// BeginCombat rolls initiative on the installed floor
	BeginCombat()

	// FinishRun ends the session after the run resolved
	FinishRun(victory bool)
}

// Config holds the run dependencies
type Config struct {
	Board Board

	// RewardEvery offers equipment after each Nth floor. Zero means the
	// default of 3.
	RewardEvery int
}

// Validate ensures the configuration is usable
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Board == nil {
		vb.RequiredField("Board")
	}
	if c.RewardEvery < 0 {
		vb.Field("RewardEvery", "must not be negative")
	}
	return vb.Build()
}

// Run is the state of one roguelike descent
type Run struct {
	board       Board
	rewardEvery int

	floor    int
	finished bool
	victory  bool

	// pending reward options per token, cleared on choice
	pending map[string][]string
}

// NewRun creates a run. Call Start to open the first floor.
func NewRun(cfg *Config) (*Run, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	rewardEvery := cfg.RewardEvery
	if rewardEvery == 0 {
		rewardEvery = 3
	}
	return &Run{
		board:       cfg.Board,
		rewardEvery: rewardEvery,
		pending:     make(map[string][]string),
	}, nil
}

// Floor reports the current floor number, zero before Start
func (r *Run) Floor() int { return r.floor }

// Finished reports whether the run has resolved
func (r *Run) Finished() bool { return r.finished }

// Victory reports the outcome once finished
func (r *Run) Victory() bool { return r.victory }

// Start opens floor one
func (r *Run) Start() {
	r.floor = 1
	r.openFloor()
}

func (r *Run) openFloor() {
	r.board.Emit(arena.EventFloorStarted, &arena.FloorStartedPayload{Floor: r.floor})
	r.board.InstallFloor(GenerateFloor(r.floor))
	r.board.BeginCombat()
}

// OnFloorCleared advances the run after the floor's last enemy fell:
// rest, rewards on reward floors, then the next floor or victory.
func (r *Run) OnFloorCleared() {
	if r.finished {
		return
	}
	r.board.Emit(arena.EventFloorCleared, &arena.FloorClearedPayload{Floor: r.floor})

	r.rest()

	if r.floor%r.rewardEvery == 0 && r.floor < MaxFloors {
		r.offerRewards()
	}

	if r.floor >= MaxFloors {
		r.end(true)
		return
	}
	r.floor++
	r.openFloor()
}

// OnPartyDefeated ends the run in defeat
func (r *Run) OnPartyDefeated() {
	if r.finished {
		return
	}
	r.end(false)
}

func (r *Run) end(victory bool) {
	r.finished = true
	r.victory = victory
	r.board.Emit(arena.EventRunEnded, &arena.RunEndedPayload{Victory: victory, Floor: r.floor})
	r.board.FinishRun(victory)
}

// rest heals every party member by a quarter of max HP between floors.
// Downed members get back up at the healed value.
func (r *Run) rest() {
	for _, t := range r.board.Party() {
		heal := int(math.Ceil(float64(t.MaxHP) * 0.25))
		before := t.HP
		after := t.ApplyHeal(heal)
		if after == before {
			continue
		}
		r.board.Emit(arena.EventHPChanged, &arena.HPChangedPayload{
			TokenID: t.ID,
			HP:      after,
			MaxHP:   t.MaxHP,
			Delta:   after - before,
			Reason:  "rest",
		})
	}
}

// OnEnemyKilled awards the archetype's XP to the killer and applies any
// level gained.
func (r *Run) OnEnemyKilled(killer *arena.Token, archetype string) {
	if r.finished || killer == nil {
		return
	}
	v := killer.Player()
	if v == nil {
		return
	}

	stats, ok := rules.EnemyTable[archetype]
	if !ok {
		return
	}
	v.XP += stats.XP
	r.board.Emit(arena.EventXPGained, &arena.XPGainedPayload{
		TokenID: killer.ID,
		Amount:  stats.XP,
		Total:   v.XP,
	})

	for v.XP >= v.Level*xpPerLevel {
		r.levelUp(killer, v)
	}
}

func (r *Run) levelUp(t *arena.Token, v *arena.PlayerVariant) {
	v.Level++
	t.MaxHP += levelUpHP
	t.ApplyHeal(levelUpHP)
	t.Atk += levelUpAtk
	if v.Level%2 == 0 {
		t.AC++
	}
	r.board.Emit(arena.EventLevelUp, &arena.LevelUpPayload{
		TokenID: t.ID,
		Level:   v.Level,
		MaxHP:   t.MaxHP,
		Atk:     t.Atk,
		AC:      t.AC,
	})
}

// offerRewards puts one weapon and one armor piece of the floor's tier in
// front of each living party member.
func (r *Run) offerRewards() {
	tier := r.floor / r.rewardEvery
	weapons := rules.WeaponRewards()
	armors := rules.ArmorRewards()
	if tier > len(weapons) {
		tier = len(weapons)
	}
	options := []string{weapons[tier-1], armors[tier-1]}

	for _, t := range r.board.Party() {
		if !t.Alive() {
			continue
		}
		r.pending[t.ID] = append([]string(nil), options...)
		r.board.Emit(arena.EventRewardOffered, &arena.RewardOfferedPayload{
			TokenID: t.ID,
			Options: options,
		})
	}
}

// PendingRewards returns the open offers, keyed by token ID
func (r *Run) PendingRewards() map[string][]string {
	out := make(map[string][]string, len(r.pending))
	for id, options := range r.pending {
		out[id] = append([]string(nil), options...)
	}
	return out
}

// ChooseReward equips the picked option on the token and closes its
// offer. Weapons raise to-hit through the attack spec; armor raises AC in
// place.
func (r *Run) ChooseReward(t *arena.Token, reward string) error {
	options, ok := r.pending[t.ID]
	if !ok {
		return errors.NotFoundf("no reward offer open for token %s", t.ID)
	}
	valid := false
	for _, opt := range options {
		if opt == reward {
			valid = true
			break
		}
	}
	if !valid {
		return errors.InvalidArgumentf("reward %q is not among the offered options", reward)
	}
	v := t.Player()
	if v == nil {
		return errors.InvalidArgument("only party members carry equipment")
	}
	delete(r.pending, t.ID)

	r.board.Emit(arena.EventRewardChosen, &arena.RewardChosenPayload{TokenID: t.ID, Reward: reward})

	slot := "weapon"
	if rules.ArmorBonus(reward) > 0 {
		slot = "armor"
		t.AC += rules.ArmorBonus(reward) - rules.ArmorBonus(v.Armor)
		v.Armor = reward
	} else {
		v.Weapon = reward
	}
	r.board.Emit(arena.EventEquipmentChanged, &arena.EquipmentChangedPayload{
		TokenID: t.ID,
		Slot:    slot,
		Item:    reward,
	})
	return nil
}

// AutoChooseRewards takes the first option of every open offer. Demo runs
// use it so offers never dangle.
func (r *Run) AutoChooseRewards() {
	for _, t := range r.board.Party() {
		if options, ok := r.pending[t.ID]; ok && len(options) > 0 {
			_ = r.ChooseReward(t, options[0])
		}
	}
}
