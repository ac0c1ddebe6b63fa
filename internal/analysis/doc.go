// Package analysis turns sentiment-labeled posts into the tables the
// dashboard renders: bucketed counts, a summary, a recent feed and the join
// against a price series. Every function is pure and total; empty input
// produces an empty result, never an error.
package analysis
