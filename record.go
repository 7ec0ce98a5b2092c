package dockb

import "strings"

// Known HTTP verbs that the extraction passes recognize.
var KnownVerbs = []string{"GET", "POST", "PUT", "DELETE", "PATCH"}

// MethodRecord is one documented API method extracted from the portal.
// It is deliberately loose: the source site is not under our control, so a
// record with no HTTP method or endpoint (descriptive-only) is legal, as are
// partial parameter tables and non-JSON example payloads.
type MethodRecord struct {
	Key         string      `json:"key"`
	Name        string      `json:"name,omitempty"`
	HTTPMethod  string      `json:"method,omitempty"`
	Endpoint    string      `json:"endpoint,omitempty"`
	Description string      `json:"description,omitempty"`
	Parameters  []Parameter `json:"parameters"`
	Example     string      `json:"example,omitempty"`
	Response    string      `json:"response,omitempty"`
	SourceURL   string      `json:"sourceUrl,omitempty"`
}

// Parameter is one row of a method's parameter table, in source order.
// Required carries the raw table cell text ("yes", "optional", ...) rather
// than a parsed bool because the source tables are free-form.
type Parameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    string `json:"required"`
}

// Validate returns an error if the record cannot be stored.
func (r *MethodRecord) Validate() error {
	if r.Key == "" {
		return Errorf(EINVALID, "record key required")
	}
	return nil
}

// Normalize canonicalizes the record in place: the key is cleaned, the verb
// is uppercased, and the parameter slice is made non-nil so the persisted
// JSON always carries a list.
func (r *MethodRecord) Normalize() {
	r.Key = NormalizeKey(r.Key)
	r.HTTPMethod = strings.ToUpper(strings.TrimSpace(r.HTTPMethod))
	if r.Parameters == nil {
		r.Parameters = []Parameter{}
	}
}

// NormalizeKey cleans a candidate record key: surrounding whitespace, quoting
// and trailing sentence punctuation are stripped. Returns "" if nothing
// usable remains, in which case the record must be discarded rather than
// stored under an empty key.
func NormalizeKey(key string) string {
	key = strings.TrimSpace(key)
	key = strings.Trim(key, "`'\"")
	key = strings.TrimRight(key, ".,;:!?")
	return strings.TrimSpace(key)
}

// EndpointPrefix returns the grouping key for a record: the first path
// segment of the endpoint (the text between the first and second slash).
// Records with no endpoint fall into the sentinel group "other".
func (r *MethodRecord) EndpointPrefix() string {
	ep := r.Endpoint
	if ep == "" || !strings.Contains(ep, "/") {
		return "other"
	}
	seg := strings.TrimPrefix(ep, "/")
	if i := strings.IndexByte(seg, '/'); i >= 0 {
		seg = seg[:i]
	}
	if seg == "" {
		return "other"
	}
	return seg
}
