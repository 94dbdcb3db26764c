package session

import (
	"context"
	"errors"
)

// ErrNoSession is returned when a session id is unknown or expired.
var ErrNoSession = errors.New("no such session")

// Flash is a one-shot notice rendered on the next page view.
type Flash struct {
	Category string `json:"category"` // success, danger, info
	Message  string `json:"message"`
}

// Store keeps server-side session state keyed by an opaque id held in
// a browser cookie. A session may be anonymous (user id 0): flash
// messages work before login. Implementations: memory for the
// single-node default, redis when sessions must survive restarts.
type Store interface {
	// Create opens an anonymous session and returns its id.
	Create(ctx context.Context) (string, error)
	// SetUser binds a user to the session after a successful login.
	SetUser(ctx context.Context, sid string, userID uint) error
	// UserID returns the bound user id, 0 if the session is anonymous.
	UserID(ctx context.Context, sid string) (uint, error)
	// ClearUser logs the session out but keeps it alive for flashes.
	ClearUser(ctx context.Context, sid string) error
	// Destroy removes the session entirely.
	Destroy(ctx context.Context, sid string) error
	PushFlash(ctx context.Context, sid string, f Flash) error
	// PopFlashes returns and clears pending flashes, oldest first.
	PopFlashes(ctx context.Context, sid string) ([]Flash, error)
}
