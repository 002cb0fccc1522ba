// Package scheduler provides the two execution contexts the statistics
// pipeline runs on: a bounded background pool for blocking work (io) and
// a single serial loop for folding results into view state (ui).
//
// Immediate runs work inline on the caller's goroutine; tests inject it
// for both contexts to make a pipeline fully synchronous.
package scheduler
