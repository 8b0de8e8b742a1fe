// Package pagestore persists raw HTML snapshots in a SQLite file.
//
// Pages are keyed by (collection, id) and inserted at most once, so a
// re-run scrape fetches only what is missing. A runs table records one
// row per scrape invocation for provenance.
package pagestore
