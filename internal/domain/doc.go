// Package domain contains the core entities of the reminder engine:
// tasks as delivered by the task source, urgency categories, close
// reasons reported by the presentation layer, and the notification
// records the engine tracks between polls.
//
// Types in this package carry no behavior beyond validation and are
// safe to copy; all mutable scheduling state lives in the store.
package domain
