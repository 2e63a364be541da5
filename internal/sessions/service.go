package sessions

import (
	"context"

	"github.com/google/uuid"

	"hirelens/internal/analyses"
	"hirelens/internal/llm"
)

// Service creates and reads sessions.
type Service struct {
	Store Store
	NewID func() string
}

// NewService constructs a Service backed by store.
func NewService(store Store) *Service {
	return &Service{Store: store, NewID: uuid.NewString}
}

// Create opens a session for a finished analysis with an empty chat history.
func (s *Service) Create(ctx context.Context, analysis analyses.Result) (Session, error) {
	sess := Session{
		ID:          s.NewID(),
		Analysis:    analysis.Clone(),
		ChatHistory: []llm.Message{},
	}
	if err := s.Store.Put(ctx, sess); err != nil {
		return Session{}, err
	}
	return s.Store.Get(ctx, sess.ID)
}

// Get returns a session by ID.
func (s *Service) Get(ctx context.Context, id string) (Session, error) {
	return s.Store.Get(ctx, id)
}
