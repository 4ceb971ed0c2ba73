package arena

// IntentType identifies a player action
type IntentType string

// Player intent types
const (
	IntentMove         IntentType = "move"
	IntentAttack       IntentType = "attack"
	IntentRangedAttack IntentType = "ranged_attack"
	IntentSpellAttack  IntentType = "spell_attack"
	IntentHeal         IntentType = "heal"
	IntentProtect      IntentType = "protect"
	IntentSkillCheck   IntentType = "skill_check"
	IntentUsePotion    IntentType = "use_potion"
	IntentDefend       IntentType = "defend"
	IntentTalk         IntentType = "talk"
)

// Intent is a declared player (or NPC) action for one turn. Unset fields
// are ignored for types that do not use them.
type Intent struct {
	Type      IntentType `json:"type"`
	TargetID  string     `json:"target_id,omitempty"`
	To        *Position  `json:"to,omitempty"`
	Skill     string     `json:"skill,omitempty"`
	Utterance string     `json:"utterance,omitempty"`
}

// DMIntentType identifies a dungeon-master action
type DMIntentType string

// DM intent types
const (
	DMNarrate            DMIntentType = "narrate"
	DMSetDC              DMIntentType = "set_dc"
	DMSpawnEnemy         DMIntentType = "spawn_enemy"
	DMRequestCombatStart DMIntentType = "request_combat_start"
	DMRequestCombatEnd   DMIntentType = "request_combat_end"
	DMNPCAction          DMIntentType = "npc_action"
)

// DMIntent is a declared dungeon-master action
type DMIntent struct {
	Type      DMIntentType `json:"type"`
	Text      string       `json:"text,omitempty"`
	Skill     string       `json:"skill,omitempty"`
	DC        int          `json:"dc,omitempty"`
	Archetype string       `json:"archetype,omitempty"`
	At        *Position    `json:"at,omitempty"`
	ActorID   string       `json:"actor_id,omitempty"`
	Action    *Intent      `json:"action,omitempty"`
}
