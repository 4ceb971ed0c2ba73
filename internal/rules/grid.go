package rules

import (
	"github.com/arenaforge/arena-api/internal/entities/arena"
)

// Manhattan returns the taxicab distance between two cells
func Manhattan(a, b arena.Position) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// HasLineOfSight walks a Bresenham line between the two cells and reports
// whether any intermediate tile blocks sight. Endpoints never block.
func HasLineOfSight(m *arena.GridMap, from, to arena.Position) bool {
	x0, y0 := from.X, from.Y
	x1, y1 := to.X, to.Y

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		if x0 == x1 && y0 == y1 {
			return true
		}
		if (x0 != from.X || y0 != from.Y) && m.BlocksSight(arena.Position{X: x0, Y: y0}) {
			return false
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

var steps = []arena.Position{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}

// CoerceMove finds the best reachable cell toward the requested target
// within the movement budget. Movement is 4-directional over walkable,
// unoccupied tiles. If the target is unreachable the closest reachable
// cell (by distance to the target, ties broken by fewer steps) wins; if
// nothing improves, the start position comes back unchanged.
func CoerceMove(m *arena.GridMap, from, to arena.Position, budget int, occupied map[arena.Position]bool) arena.Position {
	if budget <= 0 {
		return from
	}

	type node struct {
		pos  arena.Position
		dist int
	}

	visited := map[arena.Position]int{from: 0}
	queue := []node{{pos: from, dist: 0}}

	best := from
	bestDist := Manhattan(from, to)
	bestSteps := 0

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		d := Manhattan(cur.pos, to)
		if d < bestDist || (d == bestDist && cur.dist < bestSteps) {
			best = cur.pos
			bestDist = d
			bestSteps = cur.dist
		}
		if cur.pos == to {
			break
		}
		if cur.dist == budget {
			continue
		}

		for _, st := range steps {
			next := arena.Position{X: cur.pos.X + st.X, Y: cur.pos.Y + st.Y}
			if _, seen := visited[next]; seen {
				continue
			}
			if !m.Walkable(next) || occupied[next] {
				continue
			}
			visited[next] = cur.dist + 1
			queue = append(queue, node{pos: next, dist: cur.dist + 1})
		}
	}

	return best
}

// FindSpawnPositions picks up to count free floor cells for new enemies,
// scanning from the far side of the map and spacing the picks out.
func FindSpawnPositions(m *arena.GridMap, occupied map[arena.Position]bool, count int) []arena.Position {
	var out []arena.Position
	if count <= 0 {
		return out
	}

	for x := m.Width - 2; x >= 1 && len(out) < count; x-- {
		for y := 1; y < m.Height-1 && len(out) < count; y += 2 {
			p := arena.Position{X: x, Y: y}
			if m.TileAt(p) != arena.TileFloor || occupied[p] {
				continue
			}
			taken := false
			for _, prev := range out {
				if prev == p {
					taken = true
					break
				}
			}
			if !taken {
				out = append(out, p)
			}
		}
	}
	return out
}

// OccupiedSet builds the occupancy set of living tokens, excluding the
// moving token itself.
func OccupiedSet(tokens []*arena.Token, exceptID string) map[arena.Position]bool {
	occ := make(map[arena.Position]bool, len(tokens))
	for _, t := range tokens {
		if t.Alive() && t.ID != exceptID {
			occ[t.Pos] = true
		}
	}
	return occ
}
