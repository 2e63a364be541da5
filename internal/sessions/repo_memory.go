package sessions

import (
	"context"
	"sync"
	"time"

	"hirelens/internal/llm"
)

// MemoryStore keeps sessions for the lifetime of the process.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]Session
	now  func() time.Time
}

// NewMemoryStore constructs a MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]Session),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Get returns a copy of the session.
func (r *MemoryStore) Get(ctx context.Context, id string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}
	if id == "" {
		return Session{}, ErrMissingID
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.data[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	return s.clone(), nil
}

// Put stores or replaces a session.
func (r *MemoryStore) Put(ctx context.Context, s Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.ID == "" {
		return ErrMissingID
	}
	now := r.now()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = now
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[s.ID] = s.clone()
	return nil
}

// AppendChat adds messages to the end of the session's history.
func (r *MemoryStore) AppendChat(ctx context.Context, id string, msgs ...llm.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if id == "" {
		return ErrMissingID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.data[id]
	if !ok {
		return ErrNotFound
	}
	history := make([]llm.Message, 0, len(s.ChatHistory)+len(msgs))
	history = append(history, s.ChatHistory...)
	history = append(history, msgs...)
	s.ChatHistory = history
	s.UpdatedAt = r.now()
	r.data[id] = s
	return nil
}

var _ Store = (*MemoryStore)(nil)
