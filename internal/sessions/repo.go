package sessions

import (
	"context"

	"hirelens/internal/llm"
)

// Store persists sessions keyed by ID.
type Store interface {
	Get(ctx context.Context, id string) (Session, error)
	Put(ctx context.Context, s Session) error
	AppendChat(ctx context.Context, id string, msgs ...llm.Message) error
}
