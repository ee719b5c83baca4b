// Package sentiment implements the two-tier sentiment analysis core.
//
// The Scorer computes per-text polarity scores from a valence lexicon with
// rule-based modifiers (negation, degree adverbs, punctuation emphasis,
// contrastive conjunctions). The Aggregator scores whole conversations and
// derives a qualitative mood trend. Both are pure and deterministic; the
// lexicon tables are read-only after load, so all calls are safe for
// concurrent use without locking.
package sentiment
