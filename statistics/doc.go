// Package statistics implements the task statistics screen as a
// unidirectional pipeline:
//
//	Intent -> Route -> Action -> Processor -> Result* -> Reduce -> ViewState
//
// Intents come from the UI surface. The router maps each one to exactly
// one action; the processor turns an action into a finite sequence of
// results, running the blocking fetch on the io scheduler and handing
// results to the ui scheduler; the reducer folds results into the latest
// ViewState, which the StateStream replays to subscribers.
//
// Results are folded in the order they are delivered on the ui scheduler,
// not the order their intents were submitted. When two loads overlap, the
// one that completes last determines the counts shown.
package statistics
