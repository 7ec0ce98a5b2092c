// Package auth implements the portal authentication strategies.
//
// The portal's login flow has changed more than once, so authentication is a
// chain of independent strategies tried in a fixed order until one yields a
// success signal. Each strategy takes immutable credentials and builds its
// own requests; there is no shared mutable header state between attempts.
package auth

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/asafar/dockb"
)

// Ensure Chain implements dockb.Authenticator at compile time.
var _ dockb.Authenticator = (*Chain)(nil)

// Chain tries strategies in order and returns the first session produced.
type Chain struct {
	strategies []dockb.AuthStrategy
	metrics    dockb.Metrics
}

// NewChain creates a Chain trying the given strategies in order.
func NewChain(strategies ...dockb.AuthStrategy) *Chain {
	return &Chain{strategies: strategies}
}

// WithMetrics attaches per-strategy attempt counters and returns the chain.
func (c *Chain) WithMetrics(m dockb.Metrics) *Chain {
	c.metrics = m
	return c
}

// Authenticate runs the chain. It returns EUNAUTHORIZED if no strategy
// succeeds; callers treat that as a signal to continue unauthenticated, not
// as a pipeline failure.
func (c *Chain) Authenticate(ctx context.Context, creds dockb.Credentials) (*dockb.Session, error) {
	if creds.Password == "" {
		return nil, dockb.Errorf(dockb.EUNAUTHORIZED, "no credentials configured")
	}

	for _, s := range c.strategies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sess, err := s.Authenticate(ctx, creds)
		ok := err == nil && !sess.Anonymous()
		if c.metrics != nil {
			c.metrics.ObserveAuthAttempt(s.Name(), ok)
		}
		if !ok {
			continue
		}
		sess.Strategy = s.Name()
		return sess, nil
	}
	return nil, dockb.Errorf(dockb.EUNAUTHORIZED, "no authentication strategy succeeded")
}

// maxAuthBody bounds how much of a login response is read when probing for a
// token.
const maxAuthBody = 1 << 20

// sessionFromResponse inspects a login response for a success artifact: a
// bearer token field in a JSON body, or session cookies. Returns nil if the
// response carries neither.
func sessionFromResponse(resp *http.Response) *dockb.Session {
	if resp.StatusCode != http.StatusOK {
		return nil
	}

	sess := &dockb.Session{Cookies: resp.Cookies()}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxAuthBody))
	if err == nil {
		sess.Token = tokenFromJSON(body)
	}

	if sess.Anonymous() {
		return nil
	}
	return sess
}

// tokenFromJSON extracts a bearer token from common response shapes:
// {"token": ...}, {"access_token": ...}, or the same nested under "data".
func tokenFromJSON(body []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if tok := tokenField(payload); tok != "" {
		return tok
	}
	if data, ok := payload["data"].(map[string]any); ok {
		return tokenField(data)
	}
	return ""
}

func tokenField(m map[string]any) string {
	for _, field := range []string{"token", "access_token", "jwt"} {
		if tok, ok := m[field].(string); ok && tok != "" {
			return tok
		}
	}
	return ""
}
