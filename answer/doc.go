// Package answer shapes ranked search hits into a recruiter-facing response:
// generated prose, per-candidate relevance justifications, and a citation
// list. The text-generation service only supplies prose; all tiering and
// citation logic is local and deterministic.
package answer
