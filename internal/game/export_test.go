package game

import "github.com/playperu/flagquiz/internal/flagquiz"

// WithTiers overrides the tier sequence so tests can reach an invalid tier.
func WithTiers(tiers ...flagquiz.Tier) Option {
	return func(g *Game) { g.tiers = tiers }
}
