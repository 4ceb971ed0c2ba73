package arena

import (
	"encoding/json"
	"time"
)

// EventType identifies a game event on the session stream
type EventType string

// Event types
const (
	EventSessionCreated   EventType = "session_created"
	EventLobbyStatus      EventType = "lobby_status"
	EventSessionStarted   EventType = "session_started"
	EventMapState         EventType = "map_state"
	EventTokenMoved       EventType = "token_moved"
	EventHPChanged        EventType = "hp_changed"
	EventDiceRolled       EventType = "dice_rolled"
	EventAttackResolved   EventType = "attack_resolved"
	EventCombatStarted    EventType = "combat_started"
	EventCombatEnded      EventType = "combat_ended"
	EventTurnChanged      EventType = "turn_changed"
	EventChatMessage      EventType = "chat_message"
	EventContentFiltered  EventType = "content_filtered"
	EventSessionEnding    EventType = "session_ending"
	EventSessionEnded     EventType = "session_ended"
	EventFloorStarted     EventType = "floor_started"
	EventFloorCleared     EventType = "floor_cleared"
	EventXPGained         EventType = "xp_gained"
	EventLevelUp          EventType = "level_up"
	EventRunEnded         EventType = "run_ended"
	EventRewardOffered    EventType = "reward_offered"
	EventRewardChosen     EventType = "reward_chosen"
	EventEquipmentChanged EventType = "equipment_changed"
)

// GameEvent is one entry on a session's event stream. Seq is assigned by
// the sequencer: gapless, monotonic, starting at 1 per session.
type GameEvent struct {
	Seq       int64           `json:"seq"`
	SessionID string          `json:"session_id"`
	Type      EventType       `json:"type"`
	At        time.Time       `json:"at"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// DecodePayload unmarshals the payload into out
func (e *GameEvent) DecodePayload(out interface{}) error {
	if len(e.Payload) == 0 {
		return nil
	}
	return json.Unmarshal(e.Payload, out)
}

// TokenView is the wire rendering of a token for map_state payloads and
// agent turn views.
type TokenView struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Kind     string   `json:"kind"`
	Pos      Position `json:"pos"`
	HP       int      `json:"hp"`
	MaxHP    int      `json:"max_hp"`
	AC       int      `json:"ac"`
	Statuses []string `json:"statuses,omitempty"`
}

// ViewOf renders a token for the wire
func ViewOf(t *Token) TokenView {
	return TokenView{
		ID:       t.ID,
		Name:     t.Name,
		Kind:     string(t.Variant.Kind()),
		Pos:      t.Pos,
		HP:       t.HP,
		MaxHP:    t.MaxHP,
		AC:       t.AC,
		Statuses: WireStatuses(t.Statuses),
	}
}

// SessionCreatedPayload announces a new session
type SessionCreatedPayload struct {
	SessionID string `json:"session_id"`
	Genre     string `json:"genre"`
	Title     string `json:"title"`
}

// LobbyStatusPayload reports lobby composition
type LobbyStatusPayload struct {
	Players []TokenView `json:"players"`
	Ready   bool        `json:"ready"`
}

// SessionStartedPayload marks the LOBBY to LIVE transition
type SessionStartedPayload struct {
	Genre string `json:"genre"`
	Title string `json:"title"`
}

// MapStatePayload is a full snapshot of the grid and tokens
type MapStatePayload struct {
	Rows   []string    `json:"rows"`
	Tokens []TokenView `json:"tokens"`
}

// TokenMovedPayload reports a completed move
type TokenMovedPayload struct {
	TokenID string   `json:"token_id"`
	From    Position `json:"from"`
	To      Position `json:"to"`
}

// HPChangedPayload reports a hit point change
type HPChangedPayload struct {
	TokenID string `json:"token_id"`
	HP      int    `json:"hp"`
	MaxHP   int    `json:"max_hp"`
	Delta   int    `json:"delta"`
	Reason  string `json:"reason,omitempty"`
}

// DiceRolledPayload reports a visible roll
type DiceRolledPayload struct {
	TokenID  string `json:"token_id,omitempty"`
	Notation string `json:"notation"`
	Rolls    []int  `json:"rolls"`
	Total    int    `json:"total"`
	Reason   string `json:"reason,omitempty"`
	DC       int    `json:"dc,omitempty"`
	Success  *bool  `json:"success,omitempty"`
}

// AttackResolvedPayload reports an attack outcome
type AttackResolvedPayload struct {
	AttackerID string `json:"attacker_id"`
	TargetID   string `json:"target_id"`
	Kind       string `json:"kind"`
	Hit        bool   `json:"hit"`
	ToHit      int    `json:"to_hit,omitempty"`
	AC         int    `json:"ac,omitempty"`
	Damage     int    `json:"damage"`
}

// CombatStartedPayload carries the rolled initiative order
type CombatStartedPayload struct {
	Order []InitiativeEntry `json:"order"`
	Round int               `json:"round"`
}

// CombatEndedPayload reports the encounter outcome
type CombatEndedPayload struct {
	Victory bool   `json:"victory"`
	Reason  string `json:"reason"`
}

// TurnChangedPayload announces whose turn begins
type TurnChangedPayload struct {
	TokenID string `json:"token_id"`
	Round   int    `json:"round"`
}

// ChatMessagePayload is narration or speech
type ChatMessagePayload struct {
	From string `json:"from"`
	Text string `json:"text"`
}

// ContentFilteredPayload records that a message was sanitized
type ContentFilteredPayload struct {
	From     string `json:"from"`
	Original string `json:"original"`
	Policy   string `json:"policy"`
}

// SessionEndingPayload starts the ending grace period
type SessionEndingPayload struct {
	Reason EndReason `json:"reason"`
	Grace  string    `json:"grace"`
}

// SessionEndedPayload is the terminal event of a session
type SessionEndedPayload struct {
	Reason EndReason `json:"reason"`
}

// FloorStartedPayload opens a roguelike floor
type FloorStartedPayload struct {
	Floor int `json:"floor"`
}

// FloorClearedPayload closes a roguelike floor
type FloorClearedPayload struct {
	Floor int `json:"floor"`
}

// XPGainedPayload reports experience awarded
type XPGainedPayload struct {
	TokenID string `json:"token_id"`
	Amount  int    `json:"amount"`
	Total   int    `json:"total"`
}

// LevelUpPayload reports a level gain with the new stat line
type LevelUpPayload struct {
	TokenID string `json:"token_id"`
	Level   int    `json:"level"`
	MaxHP   int    `json:"max_hp"`
	Atk     int    `json:"atk"`
	AC      int    `json:"ac"`
}

// RunEndedPayload reports the roguelike run outcome
type RunEndedPayload struct {
	Victory bool `json:"victory"`
	Floor   int  `json:"floor"`
}

// RewardOfferedPayload offers equipment choices after a floor
type RewardOfferedPayload struct {
	TokenID string   `json:"token_id"`
	Options []string `json:"options"`
}

// RewardChosenPayload records the pick
type RewardChosenPayload struct {
	TokenID string `json:"token_id"`
	Reward  string `json:"reward"`
}

// EquipmentChangedPayload reports a gear change
type EquipmentChangedPayload struct {
	TokenID string `json:"token_id"`
	Slot    string `json:"slot"`
	Item    string `json:"item"`
}
