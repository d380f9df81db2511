// Package api exposes the engine's diagnostics and control surface
// over HTTP: health and status probes, runtime controls (pause,
// resume, forced check) and the callback endpoints the presentation
// layer uses to report user actions on notifications.
package api
