// Package task runs the engine's poll loop. The coordinator
// periodically pulls the task set from the source, classifies it,
// asks the scheduler which notifications to surface, and hands them
// to the notifier. It also owns the runtime controls: pause with
// auto-resume, an immediate forced check, and graceful shutdown.
package task
