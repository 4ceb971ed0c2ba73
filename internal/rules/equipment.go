package rules

// Reward equipment offered between roguelike floors. Weapons add to-hit,
// armor adds AC.
var weaponBonuses = map[string]int{
	"강화 블레이드":  1,
	"플라즈마 커터": 2,
	"입자 가속포":  2,
}

var armorBonuses = map[string]int{
	"강화 플레이트": 1,
	"반응 장갑":   2,
	"위상 차폐막":  2,
}

// WeaponBonus returns the to-hit bonus of an equipped weapon
func WeaponBonus(name string) int {
	return weaponBonuses[name]
}

// ArmorBonus returns the AC bonus of an equipped armor piece
func ArmorBonus(name string) int {
	return armorBonuses[name]
}

// WeaponRewards lists weapon names offerable as floor rewards
func WeaponRewards() []string {
	return []string{"강화 블레이드", "플라즈마 커터", "입자 가속포"}
}

// ArmorRewards lists armor names offerable as floor rewards
func ArmorRewards() []string {
	return []string{"강화 플레이트", "반응 장갑", "위상 차폐막"}
}
