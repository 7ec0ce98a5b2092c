package dockb

import (
	"context"
	"net/http"
)

// Credentials are the immutable portal credentials handed to each
// authentication strategy. Strategies must not mutate shared state; each one
// builds its own requests from these values.
type Credentials struct {
	Email    string
	Username string
	Password string
}

// Session is the ephemeral artifact of a successful authentication attempt:
// a bearer token, a set of session cookies, or both. A session is owned by a
// single scrape run and is never persisted or reused; every refresh
// re-authenticates from scratch.
type Session struct {
	Token   string
	Cookies []*http.Cookie

	// Strategy names the strategy that produced the session, for logging.
	Strategy string
}

// Anonymous reports whether the session carries no credential artifact.
// A nil session is anonymous; the pipeline degrades to unauthenticated
// crawling of public pages in that case.
func (s *Session) Anonymous() bool {
	return s == nil || (s.Token == "" && len(s.Cookies) == 0)
}

// AuthStrategy is one candidate technique for presenting credentials to the
// portal. Authenticate returns a non-nil session on success and an error
// (normally EUNAUTHORIZED) when the portal rejects the attempt.
type AuthStrategy interface {
	// Name identifies the strategy in logs (e.g., "json-body").
	Name() string

	Authenticate(ctx context.Context, creds Credentials) (*Session, error)
}

// Authenticator produces a session for a scrape run, typically by trying an
// ordered list of strategies until one yields a success signal.
type Authenticator interface {
	Authenticate(ctx context.Context, creds Credentials) (*Session, error)
}
