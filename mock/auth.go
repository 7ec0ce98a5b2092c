package mock

import (
	"context"

	"github.com/asafar/dockb"
)

var _ dockb.Authenticator = (*Authenticator)(nil)

// Authenticator is a mock implementation of dockb.Authenticator.
type Authenticator struct {
	AuthenticateFn func(ctx context.Context, creds dockb.Credentials) (*dockb.Session, error)
}

func (a *Authenticator) Authenticate(ctx context.Context, creds dockb.Credentials) (*dockb.Session, error) {
	return a.AuthenticateFn(ctx, creds)
}

var _ dockb.AuthStrategy = (*AuthStrategy)(nil)

// AuthStrategy is a mock implementation of dockb.AuthStrategy.
type AuthStrategy struct {
	NameFn         func() string
	AuthenticateFn func(ctx context.Context, creds dockb.Credentials) (*dockb.Session, error)
}

func (s *AuthStrategy) Name() string {
	return s.NameFn()
}

func (s *AuthStrategy) Authenticate(ctx context.Context, creds dockb.Credentials) (*dockb.Session, error) {
	return s.AuthenticateFn(ctx, creds)
}
