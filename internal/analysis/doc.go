// Package analysis derives secondary conversation metrics from per-message
// sentiment results: engagement insights, turning points and directional
// trend classification. It consumes the sentiment core but never duplicates
// its mood-trend logic.
package analysis
