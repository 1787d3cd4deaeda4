// Package repositories implements SQLite persistence for cached summaries.
//
// Key Implementations:
//   - [SummaryRepository] : CRUD over the summaries table with URL lookups and expiry pruning
//   - [SummaryCache] : an in-memory layer (go-cache) in front of the repository used by the server
//
// Sequence numbers provide stable, human-readable ordering (e.g. summary #15) independent of UUIDs and creation timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
