package rules

// Genres the arena ships with
const (
	GenreFactory    = "factory"
	GenreDatacenter = "datacenter"
	GenreCity       = "city"
)

// EnemySkins maps archetype to the display name used per genre
var EnemySkins = map[string]map[string]string{
	EnemyGrunt: {
		GenreFactory:    "조립로봇",
		GenreDatacenter: "보안봇",
		GenreCity:       "순찰드론",
	},
	EnemySpitter: {
		GenreFactory:    "용접드론",
		GenreDatacenter: "감시드론",
		GenreCity:       "저격드론",
	},
	EnemyBrute: {
		GenreFactory:    "파쇄기",
		GenreDatacenter: "서버가디언",
		GenreCity:       "경비메카",
	},
}

// EnemyName returns the genre-skinned display name for an archetype,
// falling back to the archetype itself.
func EnemyName(archetype, genre string) string {
	if skins, ok := EnemySkins[archetype]; ok {
		if name, ok := skins[genre]; ok {
			return name
		}
	}
	return archetype
}

// Item pickup types placed on the map as '!' tiles
const (
	ItemHPPotion = "hp_potion"
	ItemAtkBoost = "atk_boost"
	ItemDefBoost = "def_boost"
	ItemSpdBoost = "spd_boost"
)

// ItemPickupInfo describes a pickup for system narration
type ItemPickupInfo struct {
	Name        string
	Icon        string
	Description string
}

// ItemPickupTable maps pickup type to display info
var ItemPickupTable = map[string]ItemPickupInfo{
	ItemHPPotion: {Name: "회복 포션", Icon: "🧪", Description: "HP 30% 회복"},
	ItemAtkBoost: {Name: "공격 강화 칩", Icon: "⚔️", Description: "2턴간 공격 +2"},
	ItemDefBoost: {Name: "방어 강화 칩", Icon: "🛡️", Description: "2턴간 피격 AC +2"},
	ItemSpdBoost: {Name: "가속 모듈", Icon: "⚡", Description: "2턴간 이동 +2"},
}
