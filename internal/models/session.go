package models

import "time"

// Session is the server-side state behind the session cookie. It holds at
// most one token; an empty Token means the client has a cookie but is logged
// out. Token presence does not imply validity, verification happens on every
// request.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
