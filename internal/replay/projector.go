// Package replay folds a session's event stream back into arena state.
// Every state change the engine makes is visible on the stream, so a
// projector fed the same events arrives at the same map, tokens, and
// combat standing the live session ended with. The archive replay view
// is built on this.
package replay

import (
	"github.com/arenaforge/arena-api/internal/entities/arena"
	"github.com/arenaforge/arena-api/internal/errors"
)

// TokenState is the projected view of one token
type TokenState struct {
	ID    string
	Name  string
	Kind  string
	Pos   arena.Position
	HP    int
	MaxHP int
	AC    int
}

// CombatState is the projected view of the encounter
type CombatState struct {
	Active    bool
	Round     int
	CurrentID string
}

// State is everything a stream projects to
type State struct {
	SessionID string
	Genre     string
	Title     string
	Session   arena.SessionState
	EndReason arena.EndReason

	Rows   []string
	Tokens map[string]*TokenState
	Combat CombatState
	Floor  int

	// LastSeq is the sequence of the last applied event
	LastSeq int64
}

// Projector applies events in sequence order. The first event may start
// anywhere (a compacted bootstrap tail is a valid starting point); after
// that the stream must be gapless.
type Projector struct {
	state State
}

// New creates an empty projector
func New() *Projector {
	return &Projector{state: State{Tokens: make(map[string]*TokenState)}}
}

// Project folds a whole event slice and returns the final state
func Project(evs []*arena.GameEvent) (*State, error) {
	p := New()
	for _, ev := range evs {
		if err := p.Apply(ev); err != nil {
			return nil, err
		}
	}
	return p.State(), nil
}

// State returns the projected state. The projector keeps ownership; apply
// no further events while reading it.
func (p *Projector) State() *State { return &p.state }

// Apply folds one event into the state
func (p *Projector) Apply(ev *arena.GameEvent) error {
	if ev == nil {
		return errors.InvalidArgument("event cannot be nil")
	}
	if p.state.LastSeq != 0 && ev.Seq != p.state.LastSeq+1 {
		return errors.InvalidArgumentf("gap in stream: seq %d after %d", ev.Seq, p.state.LastSeq)
	}

	if err := p.apply(ev); err != nil {
		return errors.Wrapf(err, "failed to apply seq %d (%s)", ev.Seq, ev.Type)
	}
	p.state.LastSeq = ev.Seq
	return nil
}

func (p *Projector) apply(ev *arena.GameEvent) error {
	switch ev.Type {
	case arena.EventSessionCreated:
		var pl arena.SessionCreatedPayload
		if err := ev.DecodePayload(&pl); err != nil {
			return err
		}
		p.state.SessionID = pl.SessionID
		p.state.Genre = pl.Genre
		p.state.Title = pl.Title
		p.state.Session = arena.StateLobby

	case arena.EventSessionStarted:
		p.state.Session = arena.StateLive

	case arena.EventSessionEnding:
		p.state.Session = arena.StateEnding

	case arena.EventSessionEnded:
		var pl arena.SessionEndedPayload
		if err := ev.DecodePayload(&pl); err != nil {
			return err
		}
		p.state.Session = arena.StateEnded
		p.state.EndReason = pl.Reason
		p.state.Combat = CombatState{}

	case arena.EventMapState:
		var pl arena.MapStatePayload
		if err := ev.DecodePayload(&pl); err != nil {
			return err
		}
		p.state.Rows = pl.Rows
		// A map snapshot is authoritative: tokens it omits are gone
		p.state.Tokens = make(map[string]*TokenState, len(pl.Tokens))
		for _, v := range pl.Tokens {
			p.state.Tokens[v.ID] = &TokenState{
				ID:    v.ID,
				Name:  v.Name,
				Kind:  v.Kind,
				Pos:   v.Pos,
				HP:    v.HP,
				MaxHP: v.MaxHP,
				AC:    v.AC,
			}
		}

	case arena.EventTokenMoved:
		var pl arena.TokenMovedPayload
		if err := ev.DecodePayload(&pl); err != nil {
			return err
		}
		if t, ok := p.state.Tokens[pl.TokenID]; ok {
			t.Pos = pl.To
		}

	case arena.EventHPChanged:
		var pl arena.HPChangedPayload
		if err := ev.DecodePayload(&pl); err != nil {
			return err
		}
		if t, ok := p.state.Tokens[pl.TokenID]; ok {
			t.HP = pl.HP
			t.MaxHP = pl.MaxHP
		}

	case arena.EventLevelUp:
		var pl arena.LevelUpPayload
		if err := ev.DecodePayload(&pl); err != nil {
			return err
		}
		if t, ok := p.state.Tokens[pl.TokenID]; ok {
			t.MaxHP = pl.MaxHP
			t.AC = pl.AC
		}

	case arena.EventCombatStarted:
		var pl arena.CombatStartedPayload
		if err := ev.DecodePayload(&pl); err != nil {
			return err
		}
		p.state.Combat = CombatState{Active: true, Round: pl.Round}

	case arena.EventTurnChanged:
		var pl arena.TurnChangedPayload
		if err := ev.DecodePayload(&pl); err != nil {
			return err
		}
		p.state.Combat.Round = pl.Round
		p.state.Combat.CurrentID = pl.TokenID

	case arena.EventCombatEnded:
		p.state.Combat = CombatState{}

	case arena.EventFloorStarted:
		var pl arena.FloorStartedPayload
		if err := ev.DecodePayload(&pl); err != nil {
			return err
		}
		p.state.Floor = pl.Floor
	}

	// Narration, rolls, and the other audit events carry no state
	return nil
}
