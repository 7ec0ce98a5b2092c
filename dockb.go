// Package dockb maintains a local knowledge base of vendor API documentation
// scraped from a developer portal whose structure is not under our control.
// A refresh cycle authenticates against the portal (best effort), fetches a
// worklist of candidate documentation pages, heuristically extracts API method
// records from each page, and atomically swaps the resulting record set into
// the knowledge base, which is then queryable by keyword and exposed over a
// tool-calling interface.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, goquery/, sqlite/).
package dockb
