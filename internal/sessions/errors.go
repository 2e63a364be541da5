package sessions

import "errors"

var (
	ErrNotFound  = errors.New("session not found")
	ErrMissingID = errors.New("session id is required")
)
