package game

import (
	"context"
	"fmt"

	"github.com/playperu/flagquiz/internal/flagquiz"
)

// Prompter is how a game talks to the player.
type Prompter interface {
	// Show prints one line of output.
	Show(msg string)
	// Ask prints prompt and reads one line. ok is false when no answer could
	// be read, for example at end of input.
	Ask(ctx context.Context, prompt string) (answer string, ok bool, err error)
}

// Question binds one catalog entry to the tier it was drawn for. The same
// question is asked again after a wrong answer.
type Question struct {
	Entry flagquiz.Entry
	Tier  flagquiz.Tier
}

func NewQuestion(entry flagquiz.Entry, tier flagquiz.Tier) *Question {
	return &Question{Entry: entry, Tier: tier}
}

// Present shows the description and reads a guess. A nil answer means the
// player gave none.
func (q *Question) Present(ctx context.Context, p Prompter) (*string, error) {
	p.Show(fmt.Sprintf("\n%s flag:", q.Tier.Label()))
	p.Show("Description: " + q.Entry.Description)

	answer, ok, err := p.Ask(ctx, "Your guess (country name): ")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &answer, nil
}

// Evaluate checks answer and tells the player how it went.
func (q *Question) Evaluate(p Prompter, answer *string) bool {
	if flagquiz.Matches(answer, q.Entry.Country) {
		p.Show("Correct!")
		return true
	}
	p.Show("Incorrect. The correct answer was: " + q.Entry.Country)
	return false
}

// Ask presents the question once and evaluates the reply.
func (q *Question) Ask(ctx context.Context, p Prompter) (bool, error) {
	answer, err := q.Present(ctx, p)
	if err != nil {
		return false, err
	}
	return q.Evaluate(p, answer), nil
}
