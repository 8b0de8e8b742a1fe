// Package runner defines the canonical runner record shared by every
// pipeline stage, the CSV codec that persists it, and the clock-time
// conversions used when normalizing raw race results.
package runner
