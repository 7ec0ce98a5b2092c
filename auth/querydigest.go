package auth

import (
	"context"
	"crypto/md5"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/asafar/dockb"
)

var _ dockb.AuthStrategy = (*QueryDigest)(nil)

// QueryDigest presents the username and a one-way hash of the password as
// URL query parameters, the way the vendor's device firmware login works.
// The digest is the MD5 of the password as an uppercase hex string.
type QueryDigest struct {
	client   *http.Client
	loginURL string
}

// NewQueryDigest creates the strategy against the given absolute login URL.
func NewQueryDigest(client *http.Client, loginURL string) *QueryDigest {
	if client == nil {
		client = http.DefaultClient
	}
	return &QueryDigest{client: client, loginURL: loginURL}
}

// Name identifies the strategy in logs.
func (s *QueryDigest) Name() string { return "query-digest" }

// Authenticate issues the digest login request.
func (s *QueryDigest) Authenticate(ctx context.Context, creds dockb.Credentials) (*dockb.Session, error) {
	username := creds.Username
	if username == "" {
		username = creds.Email
	}
	if username == "" {
		return nil, dockb.Errorf(dockb.EUNAUTHORIZED, "query-digest: no username")
	}

	q := url.Values{}
	q.Set("username", username)
	q.Set("password", PasswordDigest(creds.Password))

	sep := "?"
	if strings.Contains(s.loginURL, "?") {
		sep = "&"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.loginURL+sep+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, dockb.Errorf(dockb.EUNAVAILABLE, "query-digest: %v", err)
	}
	defer resp.Body.Close()

	if sess := sessionFromResponse(resp); sess != nil {
		return sess, nil
	}
	return nil, dockb.Errorf(dockb.EUNAUTHORIZED, "query-digest: rejected with status %d", resp.StatusCode)
}

// PasswordDigest returns the uppercase hex MD5 digest the portal's
// device-style login endpoint expects.
func PasswordDigest(password string) string {
	sum := md5.Sum([]byte(password))
	return strings.ToUpper(fmt.Sprintf("%x", sum))
}
