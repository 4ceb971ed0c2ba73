// Package rules holds the combat math: dice notation, grid geometry, and
// the stat tables that drive attack and skill resolution.
package rules

import (
	"regexp"
	"strconv"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/arenaforge/arena-api/internal/errors"
)

// notationRegex matches dice notation like "1d20", "2d4+2"
var notationRegex = regexp.MustCompile(`^(\d+)d(\d+)(?:\+(\d+))?$`)

// Notation is a parsed dice expression
type Notation struct {
	Count    int
	Size     int
	Modifier int
}

// ParseNotation parses strings like "2d4+2"
func ParseNotation(raw string) (Notation, error) {
	m := notationRegex.FindStringSubmatch(raw)
	if m == nil {
		return Notation{}, errors.InvalidArgumentf("invalid dice notation: %s", raw)
	}

	count, err := strconv.Atoi(m[1])
	if err != nil || count < 1 || count > 100 {
		return Notation{}, errors.InvalidArgumentf("invalid dice count: %s", m[1])
	}
	size, err := strconv.Atoi(m[2])
	if err != nil || size < 2 || size > 1000 {
		return Notation{}, errors.InvalidArgumentf("invalid dice size: %s", m[2])
	}
	mod := 0
	if m[3] != "" {
		mod, err = strconv.Atoi(m[3])
		if err != nil {
			return Notation{}, errors.InvalidArgumentf("invalid modifier: %s", m[3])
		}
	}

	return Notation{Count: count, Size: size, Modifier: mod}, nil
}

// RollNotation rolls the expression with the given roller and returns the
// individual rolls plus the modified total.
func RollNotation(roller dice.Roller, raw string) (rolls []int, total int, err error) {
	n, err := ParseNotation(raw)
	if err != nil {
		return nil, 0, err
	}

	rolls, err = roller.RollN(n.Count, n.Size)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "failed to roll %s", raw)
	}

	total = n.Modifier
	for _, r := range rolls {
		total += r
	}
	return rolls, total, nil
}

// Allowed skill check difficulty classes
var allowedDCs = []int{10, 15, 20}

// DefaultDC is used when neither a hint nor a pending DC is set
const DefaultDC = 10

// CoerceDC snaps a requested DC to the nearest allowed value. Zero and
// negative inputs fall back to the default.
func CoerceDC(dc int) int {
	if dc <= 0 {
		return DefaultDC
	}
	best := allowedDCs[0]
	for _, a := range allowedDCs[1:] {
		if abs(dc-a) < abs(dc-best) {
			best = a
		}
	}
	return best
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
