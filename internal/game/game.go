// Package game runs one flag quiz: three tiers in order, a cumulative budget
// of wrong answers, and a final won/lost outcome.
//
// State transitions per turn:
//   - correct: Correct++, TierIndex++, the active question is dropped.
//   - incorrect: Wrong++, the active question is kept and asked again.
//
// The game ends when every tier is passed or the budget is spent.
package game

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/playperu/flagquiz/internal/flagquiz"
)

// MaxWrong is the default wrong-answer budget.
const MaxWrong = 3

type Outcome string

const (
	OutcomeWon        Outcome = "won"
	OutcomeLost       Outcome = "lost"
	OutcomeEndedEarly Outcome = "ended early"
)

// State is the session bookkeeping of one game.
type State struct {
	TierIndex int
	Wrong     int
	Correct   int
}

type Result struct {
	State   State
	Outcome Outcome
}

type Option func(*Game)

// WithMaxWrong sets the wrong-answer budget. Values below 1 are ignored.
func WithMaxWrong(n int) Option {
	return func(g *Game) {
		if n >= 1 {
			g.maxWrong = n
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(g *Game) { g.logger = logger }
}

type Game struct {
	catalog  flagquiz.Catalog
	chooser  flagquiz.Chooser
	prompter Prompter
	logger   *slog.Logger
	maxWrong int
	tiers    []flagquiz.Tier

	state  State
	active *Question
}

func New(catalog flagquiz.Catalog, chooser flagquiz.Chooser, prompter Prompter, opts ...Option) *Game {
	g := &Game{
		catalog:  catalog,
		chooser:  chooser,
		prompter: prompter,
		logger:   slog.Default(),
		maxWrong: MaxWrong,
		tiers:    flagquiz.Tiers,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Game) State() State { return g.state }

func (g *Game) MaxWrong() int { return g.maxWrong }

// Done reports whether the loop condition no longer holds.
func (g *Game) Done() bool {
	return g.state.TierIndex >= len(g.tiers) || g.state.Wrong >= g.maxWrong
}

// Step plays one turn. It is a no-op once the game is done.
func (g *Game) Step(ctx context.Context) error {
	if g.Done() {
		return nil
	}

	tier := g.tiers[g.state.TierIndex]
	if g.active == nil {
		entry, err := flagquiz.Select(tier, g.catalog, g.chooser)
		if err != nil {
			return fmt.Errorf("selecting %s flag: %w", tier.Key(), err)
		}
		g.active = NewQuestion(entry, tier)
		g.logger.Debug("question selected", "tier", tier.Key(), "country", entry.Country)
	}

	correct, err := g.active.Ask(ctx, g.prompter)
	if err != nil {
		return fmt.Errorf("asking %s question: %w", tier.Key(), err)
	}

	if correct {
		g.state.Correct++
		g.state.TierIndex++
		g.active = nil
		g.logger.Info("tier passed", "tier", tier.Key(), "correct", g.state.Correct)
		return nil
	}

	g.state.Wrong++
	g.logger.Info("wrong answer", "tier", tier.Key(), "wrong", g.state.Wrong, "max_wrong", g.maxWrong)
	if g.state.Wrong < g.maxWrong {
		g.prompter.Show(fmt.Sprintf(
			"Wrong answers so far: %d/%d. You will stay at the same difficulty level and try again.",
			g.state.Wrong, g.maxWrong,
		))
	}
	return nil
}

// Run plays the whole game and reports its outcome.
func (g *Game) Run(ctx context.Context) (Result, error) {
	g.prompter.Show("Welcome to the Flag Guessing Game!")
	g.prompter.Show("You will try to guess flags at three difficulty levels: easy, medium, and hard.")
	g.prompter.Show(fmt.Sprintf("You can make at most %d wrong answers in total.\n", g.maxWrong))

	for !g.Done() {
		if err := ctx.Err(); err != nil {
			return Result{State: g.state}, err
		}
		if err := g.Step(ctx); err != nil {
			return Result{State: g.state}, err
		}
	}

	res := Result{State: g.state, Outcome: g.outcome()}
	switch res.Outcome {
	case OutcomeWon:
		g.prompter.Show("\nCongratulations, you won!")
	case OutcomeLost:
		g.prompter.Show(fmt.Sprintf("\nGame over! You reached %d wrong answers.", g.state.Wrong))
	default:
		g.logger.Warn("game ended outside its loop invariant",
			"tier_index", g.state.TierIndex, "wrong", g.state.Wrong, "correct", g.state.Correct)
		g.prompter.Show("\nGame ended before completion.")
	}
	g.logger.Info("game finished", "outcome", string(res.Outcome),
		"correct", g.state.Correct, "wrong", g.state.Wrong)
	return res, nil
}

func (g *Game) outcome() Outcome {
	return OutcomeFor(g.state, len(g.tiers), g.maxWrong)
}

// OutcomeFor classifies a finished state. OutcomeEndedEarly is only
// returned for states the game loop cannot produce.
func OutcomeFor(s State, tiers, maxWrong int) Outcome {
	switch {
	case s.Correct == tiers:
		return OutcomeWon
	case s.Wrong >= maxWrong:
		return OutcomeLost
	default:
		return OutcomeEndedEarly
	}
}
