package dockb

import (
	"sort"
	"strings"
	"sync/atomic"
	"time"
)

// DuplicatePolicy controls what happens when two pages produce a record for
// the same key within one scrape run. The scraper variants this tool grew out
// of disagreed on the behavior, so it is configuration rather than a constant.
type DuplicatePolicy int

const (
	// FirstWins keeps the first record stored under a key and drops later
	// duplicates. This preserves provenance of the first, typically most
	// general, documentation hit and is the default.
	FirstWins DuplicatePolicy = iota

	// LastWins lets a later record overwrite an earlier one under the same key.
	LastWins
)

// Snapshot is one complete record set produced by a scrape run (or loaded
// from disk). It preserves insertion order. A snapshot is built off to the
// side and must not be mutated after it has been published to a
// KnowledgeBase; readers receive the pointer as-is.
type Snapshot struct {
	records    map[string]MethodRecord
	keys       []string
	lastUpdate time.Time
}

// NewSnapshot returns an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{records: make(map[string]MethodRecord)}
}

// Add stores a record under its key according to the duplicate policy.
// The record is normalized first; records whose key normalizes to "" are
// discarded. Returns true if the snapshot changed.
func (s *Snapshot) Add(rec MethodRecord, policy DuplicatePolicy) bool {
	rec.Normalize()
	if rec.Validate() != nil {
		return false
	}
	if _, ok := s.records[rec.Key]; ok {
		if policy == FirstWins {
			return false
		}
		s.records[rec.Key] = rec // LastWins: key order keeps first position
		return true
	}
	s.records[rec.Key] = rec
	s.keys = append(s.keys, rec.Key)
	return true
}

// Len returns the number of records.
func (s *Snapshot) Len() int {
	return len(s.records)
}

// Get returns the record stored under key.
func (s *Snapshot) Get(key string) (MethodRecord, bool) {
	rec, ok := s.records[key]
	return rec, ok
}

// Keys returns all keys in insertion order. The returned slice is a copy.
func (s *Snapshot) Keys() []string {
	keys := make([]string, len(s.keys))
	copy(keys, s.keys)
	return keys
}

// Records returns all records in insertion order.
func (s *Snapshot) Records() []MethodRecord {
	recs := make([]MethodRecord, 0, len(s.keys))
	for _, k := range s.keys {
		recs = append(recs, s.records[k])
	}
	return recs
}

// LastUpdate returns when this snapshot's data was produced or persisted.
func (s *Snapshot) LastUpdate() time.Time {
	return s.lastUpdate
}

// SetLastUpdate stamps the snapshot. Called by the store on load (file
// mtime) and by the pipeline after a successful refresh.
func (s *Snapshot) SetLastUpdate(t time.Time) {
	s.lastUpdate = t
}

// Group is a presentation grouping of record keys sharing an endpoint prefix.
type Group struct {
	Prefix string
	Keys   []string
}

// Stats summarizes a snapshot for status reporting.
type Stats struct {
	Records        int
	LastUpdate     time.Time
	WithParameters int
	WithExamples   int
}

// KnowledgeBase holds the current snapshot behind an atomic pointer.
// A refresh builds a complete new snapshot and calls Replace; a reader
// therefore always observes either the whole pre-refresh set or the whole
// post-refresh set, never a partially repopulated mapping. A refresh that
// fails before completing leaves the existing snapshot untouched.
type KnowledgeBase struct {
	snap atomic.Pointer[Snapshot]
}

// NewKnowledgeBase returns a knowledge base holding an empty snapshot.
func NewKnowledgeBase() *KnowledgeBase {
	kb := &KnowledgeBase{}
	kb.snap.Store(NewSnapshot())
	return kb
}

// Replace atomically swaps in a new snapshot. Nil snapshots are ignored.
func (kb *KnowledgeBase) Replace(s *Snapshot) {
	if s == nil {
		return
	}
	kb.snap.Store(s)
}

// Snapshot returns the current snapshot. The caller must treat it as
// read-only.
func (kb *KnowledgeBase) Snapshot() *Snapshot {
	return kb.snap.Load()
}

// Search returns records whose key, endpoint, description or name contains
// the query, case-insensitively, in insertion order. Result size capping is
// the caller's concern.
func (kb *KnowledgeBase) Search(query string) []MethodRecord {
	q := strings.ToLower(query)
	snap := kb.Snapshot()

	var matches []MethodRecord
	for _, key := range snap.keys {
		rec := snap.records[key]
		if strings.Contains(strings.ToLower(rec.Key), q) ||
			strings.Contains(strings.ToLower(rec.Endpoint), q) ||
			strings.Contains(strings.ToLower(rec.Description), q) ||
			strings.Contains(strings.ToLower(rec.Name), q) {
			matches = append(matches, rec)
		}
	}
	return matches
}

// Details returns the record stored under exactly this key. Callers that
// want fuzzy lookup fall back to Search and take the first hit.
func (kb *KnowledgeBase) Details(key string) (MethodRecord, bool) {
	return kb.Snapshot().Get(key)
}

// Keys returns all record keys in insertion order.
func (kb *KnowledgeBase) Keys() []string {
	return kb.Snapshot().Keys()
}

// GroupByPrefix groups record keys by the first path segment of their
// endpoint, for presentation. Groups and the keys within them are sorted.
func (kb *KnowledgeBase) GroupByPrefix() []Group {
	snap := kb.Snapshot()

	byPrefix := make(map[string][]string)
	for _, key := range snap.keys {
		rec := snap.records[key]
		prefix := rec.EndpointPrefix()
		byPrefix[prefix] = append(byPrefix[prefix], key)
	}

	prefixes := make([]string, 0, len(byPrefix))
	for p := range byPrefix {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)

	groups := make([]Group, 0, len(prefixes))
	for _, p := range prefixes {
		keys := byPrefix[p]
		sort.Strings(keys)
		groups = append(groups, Group{Prefix: p, Keys: keys})
	}
	return groups
}

// Stats returns aggregate counts for the current snapshot.
func (kb *KnowledgeBase) Stats() Stats {
	snap := kb.Snapshot()

	st := Stats{
		Records:    snap.Len(),
		LastUpdate: snap.lastUpdate,
	}
	for _, rec := range snap.records {
		if len(rec.Parameters) > 0 {
			st.WithParameters++
		}
		if rec.Example != "" {
			st.WithExamples++
		}
	}
	return st
}
