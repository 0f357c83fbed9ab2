// Package flagquiz defines the core domain types of the flag quiz and the
// pure operations over them: tier selection, answer matching and
// description lookup.
package flagquiz

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTier = errors.New("invalid tier")
	ErrEmptyTier   = errors.New("no flags available for tier")
)

// Tier is a difficulty level. Tiers are played in ascending order.
type Tier int

const (
	TierEasy   Tier = 1
	TierMedium Tier = 2
	TierHard   Tier = 3
)

// Tiers lists every tier in play order.
var Tiers = []Tier{TierEasy, TierMedium, TierHard}

func (t Tier) Valid() bool {
	return t >= TierEasy && t <= TierHard
}

// Key is the name of the tier in a catalog document.
func (t Tier) Key() string {
	switch t {
	case TierEasy:
		return "easy"
	case TierMedium:
		return "medium"
	case TierHard:
		return "hard"
	default:
		return ""
	}
}

// Label is the name shown to the player.
func (t Tier) Label() string {
	switch t {
	case TierEasy:
		return "Easy"
	case TierMedium:
		return "Medium"
	case TierHard:
		return "Hard"
	default:
		return fmt.Sprintf("Level %d", int(t))
	}
}

func (t Tier) String() string { return t.Label() }

// ParseTier maps a catalog key back to its tier.
func ParseTier(key string) (Tier, error) {
	for _, t := range Tiers {
		if t.Key() == key {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidTier, key)
}

type Entry struct {
	Country     string `json:"country" yaml:"country"`
	Description string `json:"description" yaml:"description"`
}

// Catalog groups flag entries by tier. It is built once at startup and
// must not be modified afterwards.
type Catalog map[Tier][]Entry

// Len returns the number of entries across all tiers.
func (c Catalog) Len() int {
	n := 0
	for _, entries := range c {
		n += len(entries)
	}
	return n
}
