// Package domain defines the core domain types and interfaces.
//
// This package holds the sentiment value objects (Score, Summary, Label),
// the classification thresholds and the cross-cutting interfaces (Lexicon,
// HistoryStore, Responder). No implementation code - just contracts.
// Prevents circular imports by keeping interfaces on the consumer side.
package domain
