// Package normalize prepares raw candidate records for indexing.
//
// The Normalizer type implements a fixed, deterministic pipeline:
//   - Clean: whitespace and capitalization hygiene, provenance defaults
//   - Dedupe: stable first-occurrence deduplication by identity key
//   - TagSkills: keyword-based skill category tagging
//   - Summarise: short pipe-delimited per-record summaries
//
// The pipeline never fails on a malformed record; missing fields are omitted
// from derived output rather than raising errors.
package normalize
