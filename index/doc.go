// Package index provides an exact inner-product vector index over candidate
// records. Records are embedded in a single all-or-nothing batch, vectors are
// L2-normalized so inner product equals cosine similarity, and search is a
// full linear scan, which stays fast at typical candidate dataset sizes and
// returns exact rather than approximate neighbors.
package index
