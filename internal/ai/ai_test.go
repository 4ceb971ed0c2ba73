package ai_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arenaforge/arena-api/internal/ai"
	"github.com/arenaforge/arena-api/internal/entities/arena"
	"github.com/arenaforge/arena-api/internal/rules"
)

func openMap() *arena.GridMap {
	return arena.NewGridMap([]string{
		"##########",
		"#........#",
		"#........#",
		"#........#",
		"##########",
	})
}

func player(id, class string, pos arena.Position, hp, maxHP int) *arena.Token {
	return &arena.Token{
		ID: id, Name: id, Pos: pos, HP: hp, MaxHP: maxHP, AC: 14,
		Variant: &arena.PlayerVariant{Class: class},
	}
}

func enemy(id, archetype string, pos arena.Position, hp int) *arena.Token {
	return &arena.Token{
		ID: id, Name: id, Pos: pos, HP: hp, MaxHP: hp, AC: 12,
		Variant: &arena.EnemyVariant{Archetype: archetype},
	}
}

func TestEnemyDecider_MeleeClosesDistance(t *testing.T) {
	d := ai.NewEnemyDecider()
	self := enemy("e1", rules.EnemyGrunt, arena.Position{X: 1, Y: 1}, 12)
	target := player("p1", rules.ClassFighter, arena.Position{X: 7, Y: 2}, 30, 30)

	intent := d.Decide(&ai.View{Self: self, Enemies: []*arena.Token{target}, Map: openMap()})
	require.Equal(t, arena.IntentMove, intent.Type)
	assert.Equal(t, target.Pos, *intent.To)
}

func TestEnemyDecider_MeleeAttacksAdjacent(t *testing.T) {
	d := ai.NewEnemyDecider()
	self := enemy("e1", rules.EnemyGrunt, arena.Position{X: 2, Y: 1}, 12)
	target := player("p1", rules.ClassFighter, arena.Position{X: 3, Y: 1}, 30, 30)

	intent := d.Decide(&ai.View{Self: self, Enemies: []*arena.Token{target}, Map: openMap()})
	assert.Equal(t, arena.IntentAttack, intent.Type)
	assert.Equal(t, "p1", intent.TargetID)
}

func TestEnemyDecider_SpitterShootsAtRange(t *testing.T) {
	d := ai.NewEnemyDecider()
	self := enemy("e1", rules.EnemySpitter, arena.Position{X: 1, Y: 1}, 8)
	target := player("p1", rules.ClassFighter, arena.Position{X: 4, Y: 1}, 30, 30)

	intent := d.Decide(&ai.View{Self: self, Enemies: []*arena.Token{target}, Map: openMap()})
	assert.Equal(t, arena.IntentRangedAttack, intent.Type)
}

func TestEnemyDecider_NoTargetsDefends(t *testing.T) {
	d := ai.NewEnemyDecider()
	self := enemy("e1", rules.EnemyGrunt, arena.Position{X: 1, Y: 1}, 12)

	intent := d.Decide(&ai.View{Self: self, Map: openMap()})
	assert.Equal(t, arena.IntentDefend, intent.Type)
}

func TestDemoPlayer_FighterTanks(t *testing.T) {
	d := ai.NewDemoPlayerDecider()
	m := openMap()

	self := player("p1", rules.ClassFighter, arena.Position{X: 2, Y: 1}, 30, 30)
	foe := enemy("e1", rules.EnemyGrunt, arena.Position{X: 3, Y: 1}, 12)

	intent := d.Decide(&ai.View{Self: self, Enemies: []*arena.Token{foe}, Map: m})
	assert.Equal(t, arena.IntentAttack, intent.Type)

	// Critically low fighter turtles up
	self.HP = 5
	intent = d.Decide(&ai.View{Self: self, Enemies: []*arena.Token{foe}, Map: m})
	assert.Equal(t, arena.IntentDefend, intent.Type)
}

func TestDemoPlayer_ClericHealsWeakAlly(t *testing.T) {
	d := ai.NewDemoPlayerDecider()

	self := player("p2", rules.ClassCleric, arena.Position{X: 1, Y: 1}, 24, 24)
	hurt := player("p1", rules.ClassFighter, arena.Position{X: 2, Y: 1}, 10, 30)
	foe := enemy("e1", rules.EnemyGrunt, arena.Position{X: 4, Y: 1}, 12)

	intent := d.Decide(&ai.View{
		Self:    self,
		Allies:  []*arena.Token{hurt},
		Enemies: []*arena.Token{foe},
		Map:     openMap(),
	})
	require.Equal(t, arena.IntentHeal, intent.Type)
	assert.Equal(t, "p1", intent.TargetID)
}

func TestDemoPlayer_ClericPrefersSpellAtRange(t *testing.T) {
	d := ai.NewDemoPlayerDecider()

	self := player("p2", rules.ClassCleric, arena.Position{X: 1, Y: 1}, 24, 24)
	foe := enemy("e1", rules.EnemyGrunt, arena.Position{X: 4, Y: 1}, 12)

	intent := d.Decide(&ai.View{Self: self, Enemies: []*arena.Token{foe}, Map: openMap()})
	assert.Equal(t, arena.IntentSpellAttack, intent.Type)
}

func TestLuaDecider_WellFormedIntent(t *testing.T) {
	script := `
function decide(view)
  if #view.enemies > 0 then
    return { type = "attack", target_id = view.enemies[1].id }
  end
  return { type = "defend" }
end`
	d, err := ai.NewLuaDecider(script)
	require.NoError(t, err)
	defer d.Close()

	self := player("p1", rules.ClassFighter, arena.Position{X: 1, Y: 1}, 30, 30)
	foe := enemy("e1", rules.EnemyGrunt, arena.Position{X: 2, Y: 1}, 12)

	intent := d.Decide(&ai.View{Self: self, Enemies: []*arena.Token{foe}, Map: openMap()})
	assert.Equal(t, arena.IntentAttack, intent.Type)
	assert.Equal(t, "e1", intent.TargetID)
}

func TestLuaDecider_MoveIntent(t *testing.T) {
	script := `
function decide(view)
  return { type = "move", to = { x = 3, y = 2 } }
end`
	d, err := ai.NewLuaDecider(script)
	require.NoError(t, err)
	defer d.Close()

	self := player("p1", rules.ClassFighter, arena.Position{X: 1, Y: 1}, 30, 30)
	intent := d.Decide(&ai.View{Self: self, Map: openMap()})
	require.Equal(t, arena.IntentMove, intent.Type)
	assert.Equal(t, arena.Position{X: 3, Y: 2}, *intent.To)
}

func TestLuaDecider_MalformedReturnDefends(t *testing.T) {
	script := `
function decide(view)
  return "not a table"
end`
	d, err := ai.NewLuaDecider(script)
	require.NoError(t, err)
	defer d.Close()

	self := player("p1", rules.ClassFighter, arena.Position{X: 1, Y: 1}, 30, 30)
	intent := d.Decide(&ai.View{Self: self, Map: openMap()})
	assert.Equal(t, arena.IntentDefend, intent.Type)
}

func TestLuaDecider_RuntimeErrorDefends(t *testing.T) {
	script := `
function decide(view)
  error("boom")
end`
	d, err := ai.NewLuaDecider(script)
	require.NoError(t, err)
	defer d.Close()

	self := player("p1", rules.ClassFighter, arena.Position{X: 1, Y: 1}, 30, 30)
	intent := d.Decide(&ai.View{Self: self, Map: openMap()})
	assert.Equal(t, arena.IntentDefend, intent.Type)
}

func TestLuaDecider_MissingDecideRejected(t *testing.T) {
	_, err := ai.NewLuaDecider(`x = 1`)
	require.Error(t, err)
}
