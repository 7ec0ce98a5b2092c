package auth

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/asafar/dockb"
)

var _ dockb.AuthStrategy = (*FormDiscovery)(nil)

// FormDiscovery is the last-resort strategy: fetch the login page, locate
// the first form element, classify its inputs by type/name heuristics, and
// submit it using the form's own declared method and action. It handles
// portals whose login flow none of the fixed-endpoint strategies match.
type FormDiscovery struct {
	client  *http.Client
	pageURL string
}

// NewFormDiscovery creates the strategy against the page expected to carry a
// login form.
func NewFormDiscovery(client *http.Client, pageURL string) *FormDiscovery {
	if client == nil {
		client = http.DefaultClient
	}
	return &FormDiscovery{client: client, pageURL: pageURL}
}

// Name identifies the strategy in logs.
func (s *FormDiscovery) Name() string { return "form-discovery" }

// Authenticate discovers and submits the login form.
func (s *FormDiscovery) Authenticate(ctx context.Context, creds dockb.Credentials) (*dockb.Session, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.pageURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, dockb.Errorf(dockb.EUNAVAILABLE, "form-discovery: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, dockb.Errorf(dockb.EUNAVAILABLE, "form-discovery: login page status %d", resp.StatusCode)
	}

	form, err := parseLoginForm(resp.Body, s.pageURL)
	if err != nil {
		return nil, err
	}

	values := form.Fill(creds)
	submit, err := http.NewRequestWithContext(ctx, form.Method, form.Action, strings.NewReader(values.Encode()))
	if err != nil {
		return nil, err
	}
	submit.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	loginResp, err := s.client.Do(submit)
	if err != nil {
		return nil, dockb.Errorf(dockb.EUNAVAILABLE, "form-discovery: %v", err)
	}
	defer loginResp.Body.Close()

	if sess := sessionFromResponse(loginResp); sess != nil {
		return sess, nil
	}
	return nil, dockb.Errorf(dockb.EUNAUTHORIZED, "form-discovery: rejected with status %d", loginResp.StatusCode)
}

// loginForm is the first form found on a login page, classified into an
// identity field, a secret field, and hidden pass-through values.
type loginForm struct {
	Action        string
	Method        string
	IdentityField string
	SecretField   string
	Hidden        url.Values
}

// parseLoginForm locates the first <form> in the HTML and classifies its
// inputs: email/username/login-ish names (or type=email) become the identity
// field, type=password the secret field, and hidden inputs are passed
// through unchanged.
func parseLoginForm(r io.Reader, pageURL string) (*loginForm, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, dockb.Errorf(dockb.EINVALID, "form-discovery: unparseable login page: %v", err)
	}

	sel := doc.Find("form").First()
	if sel.Length() == 0 {
		return nil, dockb.Errorf(dockb.ENOTFOUND, "form-discovery: no form on login page")
	}

	form := &loginForm{
		Method: http.MethodPost,
		Hidden: url.Values{},
	}
	if method, ok := sel.Attr("method"); ok && method != "" {
		form.Method = strings.ToUpper(method)
	}

	action, _ := sel.Attr("action")
	form.Action = resolveAction(pageURL, action)

	sel.Find("input").Each(func(_ int, input *goquery.Selection) {
		name, _ := input.Attr("name")
		if name == "" {
			return
		}
		typ, _ := input.Attr("type")
		typ = strings.ToLower(typ)

		switch {
		case typ == "hidden":
			value, _ := input.Attr("value")
			form.Hidden.Set(name, value)
		case typ == "password" || looksLikeSecret(name):
			if form.SecretField == "" {
				form.SecretField = name
			}
		case typ == "email" || looksLikeIdentity(name):
			if form.IdentityField == "" {
				form.IdentityField = name
			}
		}
	})

	if form.IdentityField == "" || form.SecretField == "" {
		return nil, dockb.Errorf(dockb.ENOTFOUND, "form-discovery: form has no recognizable credential fields")
	}
	return form, nil
}

// Fill produces the submission values for the classified form.
func (f *loginForm) Fill(creds dockb.Credentials) url.Values {
	values := url.Values{}
	for name, vals := range f.Hidden {
		for _, v := range vals {
			values.Add(name, v)
		}
	}

	identity := creds.Email
	if identity == "" {
		identity = creds.Username
	}
	values.Set(f.IdentityField, identity)
	values.Set(f.SecretField, creds.Password)
	return values
}

func looksLikeIdentity(name string) bool {
	name = strings.ToLower(name)
	return strings.Contains(name, "email") ||
		strings.Contains(name, "username") ||
		strings.Contains(name, "login")
}

func looksLikeSecret(name string) bool {
	return strings.Contains(strings.ToLower(name), "password")
}

// resolveAction resolves a form action against the login page URL.
// An empty action submits back to the page itself.
func resolveAction(pageURL, action string) string {
	if action == "" {
		return pageURL
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return action
	}
	ref, err := url.Parse(action)
	if err != nil {
		return pageURL
	}
	return base.ResolveReference(ref).String()
}
