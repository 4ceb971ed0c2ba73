package arena

import "time"

// YourTurn prompts a player agent for its action. The agent must answer
// with a TurnAction echoing TurnID before Deadline or the turn times out.
type YourTurn struct {
	TurnID   string    `json:"turn_id"`
	TokenID  string    `json:"token_id"`
	Deadline time.Time `json:"deadline"`
	View     TurnView  `json:"view"`
}

// DMPrompt asks the dungeon-master agent for its next move
type DMPrompt struct {
	PromptID string    `json:"prompt_id"`
	Deadline time.Time `json:"deadline"`
	Scene    string    `json:"scene"`
	Skills   []string  `json:"skills"`
	View     TurnView  `json:"view"`
}

// TurnView is what an agent sees when deciding
type TurnView struct {
	Rows     []string    `json:"rows"`
	Self     TokenView   `json:"self,omitzero"`
	Allies   []TokenView `json:"allies,omitempty"`
	Enemies  []TokenView `json:"enemies,omitempty"`
	NPCs     []TokenView `json:"npcs,omitempty"`
	Round    int         `json:"round"`
	InCombat bool        `json:"in_combat"`
}

// TurnAction is the agent's reply to YourTurn
type TurnAction struct {
	TurnID string `json:"turn_id"`
	Intent Intent `json:"intent"`
}

// DMReply is the dungeon-master agent's reply to DMPrompt
type DMReply struct {
	PromptID string     `json:"prompt_id"`
	Intents  []DMIntent `json:"intents"`
}
