// Package events carries user actions from the presentation layer back
// into the reminder engine. The presentation layer runs on its own
// event loop; it reports opens and closes asynchronously by emitting
// events, and the engine reacts through registered handlers without
// either side knowing the other's concrete type.
package events
