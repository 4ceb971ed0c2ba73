package arena

import (
	"fmt"
	"strconv"
	"strings"
)

// StatusKind identifies a combat status effect
type StatusKind string

// Status kinds. The boost kinds are timed and tick down at the bearer's
// turn start; the rest are one-shot flags consumed on use.
const (
	StatusAtkBoost StatusKind = "atk_boost"
	StatusDefBoost StatusKind = "def_boost"
	StatusSpdBoost StatusKind = "spd_boost"

	StatusDefend  StatusKind = "defend_-3"
	StatusProtect StatusKind = "protect_one_hit_-5"
	StatusACBoost StatusKind = "ac_boost_2"
)

// Timed reports whether the kind decays by turns
func (k StatusKind) Timed() bool {
	switch k {
	case StatusAtkBoost, StatusDefBoost, StatusSpdBoost:
		return true
	}
	return false
}

// Status is a structured status record. Remaining is the number of the
// bearer's turn starts left before a timed status expires; it is zero for
// one-shot flags.
type Status struct {
	Kind      StatusKind `json:"kind"`
	Remaining int        `json:"remaining,omitempty"`
}

// NewTimed builds a timed status with the given turn count
func NewTimed(kind StatusKind, turns int) Status {
	return Status{Kind: kind, Remaining: turns}
}

// NewFlag builds a one-shot status flag
func NewFlag(kind StatusKind) Status {
	return Status{Kind: kind}
}

// WireString renders the status in its event-stream form, e.g.
// "atk_boost:2" for timed statuses and the bare kind for flags.
func (s Status) WireString() string {
	if s.Kind.Timed() {
		return fmt.Sprintf("%s:%d", s.Kind, s.Remaining)
	}
	return string(s.Kind)
}

// ParseStatus parses the wire form back into a structured record
func ParseStatus(raw string) (Status, error) {
	if kind, count, ok := strings.Cut(raw, ":"); ok {
		n, err := strconv.Atoi(count)
		if err != nil {
			return Status{}, fmt.Errorf("bad status count %q: %w", raw, err)
		}
		return Status{Kind: StatusKind(kind), Remaining: n}, nil
	}
	return Status{Kind: StatusKind(raw)}, nil
}

// WireStatuses renders a status list for event payloads
func WireStatuses(statuses []Status) []string {
	if len(statuses) == 0 {
		return nil
	}
	out := make([]string, len(statuses))
	for i, st := range statuses {
		out[i] = st.WireString()
	}
	return out
}
