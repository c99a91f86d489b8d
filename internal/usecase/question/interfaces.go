package question

import "context"

// AnswerGenerator turns a prompt into answer text. Blocked content is
// reported with entity.ErrContentBlocked.
type AnswerGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
