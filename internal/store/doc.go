// Package store owns all mutable scheduling state of the reminder
// engine: the per-task notification records (snoozes, done marks,
// reshow bookkeeping) and the set of currently visible notification
// handles.
//
// Every operation is a single critical section; callers never observe
// a partially updated map. The store is the only object shared between
// the polling goroutine and the presentation layer's callback path.
package store
