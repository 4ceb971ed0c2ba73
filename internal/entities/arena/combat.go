package arena

// InitiativeEntry is one slot in the combat order
type InitiativeEntry struct {
	TokenID string `json:"token_id"`
	Roll    int    `json:"roll"`
}

// CombatState tracks the active encounter, if any
type CombatState struct {
	Active    bool              `json:"active"`
	Order     []InitiativeEntry `json:"order,omitempty"`
	TurnIndex int               `json:"turn_index"`
	Round     int               `json:"round"`
}

// Current returns the token id whose turn it is, or "" outside combat
func (c *CombatState) Current() string {
	if !c.Active || c.TurnIndex < 0 || c.TurnIndex >= len(c.Order) {
		return ""
	}
	return c.Order[c.TurnIndex].TokenID
}

// Reset clears the encounter
func (c *CombatState) Reset() {
	*c = CombatState{}
}
