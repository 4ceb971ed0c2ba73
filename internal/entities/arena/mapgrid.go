package arena

import "strings"

// Map glyphs. S and M are spawn markers consumed at session start.
const (
	TileWall   = '#'
	TileFloor  = '.'
	TileHazard = '~'
	TileDoor   = '+'
	TileItem   = '!'
	TileExit   = 'E'

	MarkPlayerSpawn = 'S'
	MarkEnemySpawn  = 'M'
)

// GridMap is the tactical grid. Rows are equal-length strings of glyphs.
type GridMap struct {
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Rows   []string `json:"rows"`
}

// NewGridMap builds a map from glyph rows
func NewGridMap(rows []string) *GridMap {
	w := 0
	if len(rows) > 0 {
		w = len(rows[0])
	}
	return &GridMap{Width: w, Height: len(rows), Rows: append([]string(nil), rows...)}
}

// InBounds reports whether the position lies on the grid
func (m *GridMap) InBounds(p Position) bool {
	return p.X >= 0 && p.X < m.Width && p.Y >= 0 && p.Y < m.Height
}

// TileAt returns the glyph at p, or a wall for out-of-bounds reads
func (m *GridMap) TileAt(p Position) rune {
	if !m.InBounds(p) {
		return TileWall
	}
	return rune(m.Rows[p.Y][p.X])
}

// SetTile replaces the glyph at p
func (m *GridMap) SetTile(p Position, glyph rune) {
	if !m.InBounds(p) {
		return
	}
	row := []rune(m.Rows[p.Y])
	row[p.X] = glyph
	m.Rows[p.Y] = string(row)
}

// Walkable reports whether a token may stand on the tile at p
func (m *GridMap) Walkable(p Position) bool {
	switch m.TileAt(p) {
	case TileWall:
		return false
	}
	return true
}

// BlocksSight reports whether the tile at p blocks line of sight
func (m *GridMap) BlocksSight(p Position) bool {
	return m.TileAt(p) == TileWall
}

// Spawns returns the player and enemy spawn markers and clears them to
// floor tiles.
func (m *GridMap) Spawns() (players, enemies []Position) {
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			p := Position{X: x, Y: y}
			switch m.TileAt(p) {
			case MarkPlayerSpawn:
				players = append(players, p)
				m.SetTile(p, TileFloor)
			case MarkEnemySpawn:
				enemies = append(enemies, p)
				m.SetTile(p, TileFloor)
			}
		}
	}
	return players, enemies
}

// Clone returns a deep copy of the map
func (m *GridMap) Clone() *GridMap {
	return NewGridMap(m.Rows)
}

// String renders the map one row per line
func (m *GridMap) String() string {
	return strings.Join(m.Rows, "\n")
}
