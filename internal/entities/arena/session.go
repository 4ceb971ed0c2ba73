// Package arena provides the core data structures for the combat arena.
package arena

import "time"

// SessionState is the lifecycle state of a session
type SessionState string

// Session lifecycle states
const (
	StateLobby  SessionState = "LOBBY"
	StateLive   SessionState = "LIVE"
	StateEnding SessionState = "ENDING"
	StateEnded  SessionState = "ENDED"
)

// EndReason explains why a session ended
type EndReason string

// End reasons
const (
	EndTimeLimit         EndReason = "time_limit"
	EndPartyDefeated     EndReason = "party_defeated"
	EndDemoComplete      EndReason = "demo_complete"
	EndRoguelikeComplete EndReason = "roguelike_complete"
	EndDefeat            EndReason = "defeat"
	EndVictory           EndReason = "victory"
)

// Session is the archival record of a game session
type Session struct {
	ID        string       `json:"id"`
	Genre     string       `json:"genre"`
	Title     string       `json:"title"`
	State     SessionState `json:"state"`
	EndReason EndReason    `json:"end_reason,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	StartedAt time.Time    `json:"started_at,omitzero"`
	EndedAt   time.Time    `json:"ended_at,omitzero"`
}

// CanStart reports whether the session may transition to LIVE
func (s *Session) CanStart() bool {
	return s.State == StateLobby
}

// Finished reports whether the session reached a terminal state
func (s *Session) Finished() bool {
	return s.State == StateEnded
}
