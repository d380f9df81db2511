// Package service implements the reminder scheduler: the decision
// function that turns a classified task into a show/don't-show answer,
// and the state transitions driven by presentation-layer events
// (shown, closed-with-reason, force-show, cleanup).
//
// Scheduler operations are total: they never return errors to their
// callers. Unexpected conditions are logged and degrade toward not
// spamming the user — except unknown task IDs, which fail open toward
// showing.
package service
