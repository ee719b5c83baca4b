// Package history implements conversation history storage.
//
// The in-memory store backs single-process use (CLI, tests). The SQLite
// store persists transcripts across runs. The Redis store enables sharing
// sessions across multiple server instances. All three satisfy
// domain.HistoryStore; messages are kept in chronological append order.
package history
