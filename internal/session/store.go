package session

import (
	"context"
	"errors"
	"time"
)

// ErrNoSession is returned by Current when the session does not exist or
// holds no token.
var ErrNoSession = errors.New("no session")

// DefaultTTL is how long a server-side session row lives. Tokens inside the
// session expire on their own, much sooner.
const DefaultTTL = 7 * 24 * time.Hour

// Store is the server-side half of Session Binding: at most one token per
// session ID.
type Store interface {
	// Bind stores the token under the session ID, replacing any prior token.
	Bind(ctx context.Context, sessionID, token string) error
	// Current returns the bound token, or ErrNoSession.
	Current(ctx context.Context, sessionID string) (string, error)
	// Clear destroys the session state. Clearing a missing session is not an error.
	Clear(ctx context.Context, sessionID string) error
	// DeleteExpired removes sessions past their expiry and reports how many went away.
	DeleteExpired(ctx context.Context) (int64, error)
}
