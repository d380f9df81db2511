package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/lsoft/planfix-reminder/internal/domain"
	"github.com/lsoft/planfix-reminder/internal/events"
	"github.com/lsoft/planfix-reminder/internal/store"
	"github.com/lsoft/planfix-reminder/internal/task"
)

// Engine is the coordinator surface the API drives.
type Engine interface {
	Status() task.Snapshot
	CheckNow(ctx context.Context) error
	Pause(d time.Duration)
	Resume()
}

// Tracker exposes the scheduler's store-level diagnostics and the
// emergency reset.
type Tracker interface {
	Stats() store.Stats
	ClearAll()
}

// Handler serves the diagnostics and control endpoints.
type Handler struct {
	engine    Engine
	tracker   Tracker
	emitter   events.EventEmitter
	validator *validator.Validate
	logger    *slog.Logger
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(engine Engine, tracker Tracker, emitter events.EventEmitter, logger *slog.Logger) *Handler {
	return &Handler{
		engine:    engine,
		tracker:   tracker,
		emitter:   emitter,
		validator: validator.New(),
		logger:    logger.With("component", "api"),
	}
}

// NewRouter builds the HTTP routing tree.
func NewRouter(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.Health)
	r.Get("/status", h.Status)

	r.Route("/control", func(r chi.Router) {
		r.Post("/check-now", h.CheckNow)
		r.Post("/pause", h.Pause)
		r.Post("/resume", h.Resume)
		r.Post("/clear", h.Clear)
	})

	r.Route("/events", func(r chi.Router) {
		r.Post("/closed", h.NotificationClosed)
		r.Post("/opened", h.TaskOpened)
	})

	return r
}

// Health handles the liveness probe.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, MessageResponse{Message: "ok"})
}

// Status handles GET /status.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, StatusResponse{
		Engine: h.engine.Status(),
		Store:  h.tracker.Stats(),
	})
}

// CheckNow handles POST /control/check-now. The forced cycle runs
// synchronously so the response reflects its outcome.
func (h *Handler) CheckNow(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.CheckNow(r.Context()); err != nil {
		h.logger.Error("forced check failed", "error", err)
		respondWithError(w, http.StatusBadGateway, "forced check failed: task source unavailable")
		return
	}
	respondWithJSON(w, http.StatusOK, MessageResponse{Message: "check complete"})
}

// Pause handles POST /control/pause?minutes=N.
func (h *Handler) Pause(w http.ResponseWriter, r *http.Request) {
	minutes := 30
	if raw := r.URL.Query().Get("minutes"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondWithError(w, http.StatusBadRequest, "minutes must be a positive integer")
			return
		}
		minutes = parsed
	}

	h.engine.Pause(time.Duration(minutes) * time.Minute)
	respondWithJSON(w, http.StatusOK, MessageResponse{Message: "paused for " + strconv.Itoa(minutes) + " minutes"})
}

// Resume handles POST /control/resume.
func (h *Handler) Resume(w http.ResponseWriter, r *http.Request) {
	h.engine.Resume()
	respondWithJSON(w, http.StatusOK, MessageResponse{Message: "resumed"})
}

// Clear handles POST /control/clear: the emergency reset of all
// tracking state.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	h.tracker.ClearAll()
	respondWithJSON(w, http.StatusOK, MessageResponse{Message: "tracking state cleared"})
}

// NotificationClosed handles the presentation callback for a dismissed
// notification.
func (h *Handler) NotificationClosed(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeAction(w, r)
	if !ok {
		return
	}

	reason := domain.CloseReason(req.Reason)
	if req.Reason == "" {
		reason = domain.CloseReasonManual
	}

	event := events.NewNotificationClosedEvent(req.TaskID, reason)
	if err := h.emitter.EmitEvent(r.Context(), event); err != nil {
		h.logger.Error("failed to process closure event",
			"task_id", req.TaskID,
			"error", err)
		respondWithError(w, http.StatusInternalServerError, "failed to process event")
		return
	}
	respondWithJSON(w, http.StatusAccepted, MessageResponse{Message: "event accepted"})
}

// TaskOpened handles the presentation callback for an opened task.
func (h *Handler) TaskOpened(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeAction(w, r)
	if !ok {
		return
	}

	event := events.NewTaskOpenedEvent(req.TaskID)
	if err := h.emitter.EmitEvent(r.Context(), event); err != nil {
		h.logger.Error("failed to process open event",
			"task_id", req.TaskID,
			"error", err)
		respondWithError(w, http.StatusInternalServerError, "failed to process event")
		return
	}
	respondWithJSON(w, http.StatusAccepted, MessageResponse{Message: "event accepted"})
}

func (h *Handler) decodeAction(w http.ResponseWriter, r *http.Request) (NotificationActionRequest, bool) {
	var req NotificationActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request format")
		return req, false
	}
	if err := h.validator.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, "validation error: "+err.Error())
		return req, false
	}
	return req, true
}

func respondWithJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondWithError(w http.ResponseWriter, status int, message string) {
	respondWithJSON(w, status, ErrorResponse{Error: message})
}
