// Package normalize converts raw scraped result rows into the canonical
// runner schema. Each result site publishes its own column set and its own
// name, hometown, and division formats, so the package carries one
// normalizer per source format plus the shared string heuristics they are
// built from.
package normalize
