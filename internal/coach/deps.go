package coach

import (
	"context"

	"github.com/2beens/fitcoach/internal/events"
)

//go:generate mockgen -source=$GOFILE -destination=deps_mocks_test.go -package=coach_test

type textGenerator interface {
	Configured() bool
	Generate(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

type eventPublisher interface {
	Publish(ctx context.Context, item events.LoggedItem) error
}
