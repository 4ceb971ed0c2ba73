package roguelike

import (
	"strings"

	"github.com/arenaforge/arena-api/internal/entities/arena"
	"github.com/arenaforge/arena-api/internal/rules"
)

// MaxFloors is the depth of a full run. Clearing the last floor wins.
const MaxFloors = 10

// Floor is one generated level of a run
type Floor struct {
	Number     int
	Map        *arena.GridMap
	Items      map[arena.Position]string
	Archetypes []string
}

// GenerateFloor builds the level for a floor number. Generation is
// deterministic so a run can be replayed from its event stream alone.
func GenerateFloor(number int) *Floor {
	width, height := 14, 10
	if number == MaxFloors {
		width = 18
	}

	rows := make([]string, height)
	for y := 0; y < height; y++ {
		if y == 0 || y == height-1 {
			rows[y] = strings.Repeat(string(arena.TileWall), width)
			continue
		}
		rows[y] = string(arena.TileWall) + strings.Repeat(string(arena.TileFloor), width-2) + string(arena.TileWall)
	}
	m := arena.NewGridMap(rows)

	// Pillar columns split the floor into rooms, leaving the middle rows
	// open so every tile stays reachable.
	if number >= 2 {
		for _, x := range []int{4 + number%3, 8 + number%2} {
			for _, y := range []int{2, 3, 6, 7} {
				m.SetTile(arena.Position{X: x, Y: y}, arena.TileWall)
			}
		}
	}

	hazards := number
	if hazards > 4 {
		hazards = 4
	}
	for i := 0; i < hazards; i++ {
		placeGlyph(m, arena.Position{X: 3 + i*2, Y: 5}, arena.TileHazard)
	}

	items := make(map[arena.Position]string)
	kinds := []string{rules.ItemHPPotion, rules.ItemAtkBoost, rules.ItemDefBoost, rules.ItemSpdBoost}
	itemCount := 1 + number/4
	if itemCount > 3 {
		itemCount = 3
	}
	for i := 0; i < itemCount; i++ {
		p := placeGlyph(m, arena.Position{X: width - 3 - i*2, Y: height - 3}, arena.TileItem)
		if p != nil {
			items[*p] = kinds[(number+i)%len(kinds)]
		}
	}

	placeGlyph(m, arena.Position{X: width - 2, Y: 1}, arena.TileExit)

	for i, y := range []int{2, 4, 6} {
		_ = i
		m.SetTile(arena.Position{X: 1, Y: y}, arena.MarkPlayerSpawn)
	}

	archetypes := floorArchetypes(number)
	spawnSpots := []arena.Position{
		{X: width - 2, Y: 3}, {X: width - 2, Y: 5}, {X: width - 2, Y: 7},
		{X: width - 3, Y: 2}, {X: width - 3, Y: 4}, {X: width - 3, Y: 6},
	}
	for i := range archetypes {
		m.SetTile(spawnSpots[i], arena.MarkEnemySpawn)
	}

	return &Floor{Number: number, Map: m, Items: items, Archetypes: archetypes}
}

// floorArchetypes scales the opposition with depth. Spitters join from
// floor 3, brutes from floor 5; the last floor is a boss pack.
func floorArchetypes(number int) []string {
	count := 2 + number/2
	if count > rules.MaxEnemiesOnMap {
		count = rules.MaxEnemiesOnMap
	}

	if number == MaxFloors {
		pack := []string{
			rules.EnemyBrute, rules.EnemyBrute, rules.EnemySpitter,
			rules.EnemyGrunt, rules.EnemyGrunt, rules.EnemyGrunt,
		}
		return pack[:count]
	}

	out := make([]string, 0, count)
	for i := 0; i < count; i++ {
		switch {
		case number >= 5 && i == count-1:
			out = append(out, rules.EnemyBrute)
		case number >= 3 && i%2 == 1:
			out = append(out, rules.EnemySpitter)
		default:
			out = append(out, rules.EnemyGrunt)
		}
	}
	return out
}

// placeGlyph writes the glyph on the nearest plain floor tile at or left
// of start, returning where it landed.
func placeGlyph(m *arena.GridMap, start arena.Position, glyph rune) *arena.Position {
	for x := start.X; x > 0; x-- {
		p := arena.Position{X: x, Y: start.Y}
		if m.TileAt(p) == arena.TileFloor {
			m.SetTile(p, glyph)
			return &p
		}
	}
	return nil
}
