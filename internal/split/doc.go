// Package split locates the bib-number boundary between two runner
// populations with different finish-time variance, typically the seam
// between time-qualified entries and charity entries in a seeded marathon.
//
// The finder is a pure computation over in-memory samples: no I/O, no
// retries, and a deterministic result for a given input.
package split
