// Package classify implements the pure task classification used by the
// reminder engine: assigning an urgency category to a task from its
// overdue flag and due date, and building the title/body summary shown
// in a notification.
//
// All functions are side-effect free and never fail: malformed or
// missing data degrades to CategoryCurrent and best-effort text.
package classify
