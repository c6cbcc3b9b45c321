package formapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/regform/pkg/broadcast"
	"github.com/dmitrymomot/regform/pkg/form"
	"github.com/dmitrymomot/regform/pkg/logger"
	"github.com/dmitrymomot/regform/pkg/registration"
	"github.com/dmitrymomot/regform/pkg/submission"
	"github.com/dmitrymomot/regform/pkg/validator"
)

// Engine is the subset of registration.Engine the handler drives.
type Engine interface {
	Registry() *form.Registry
	OnFieldChange(field form.FieldName, value form.Value)
	OnSubmitRequested(ctx context.Context) (submission.Outcome, error)
	OnNotificationDismissed(ctx context.Context) bool
	Snapshot() registration.Snapshot
	Subscribe(ctx context.Context) broadcast.Subscriber[registration.Snapshot]
}

// SubmitResult is the body of a submit response.
type SubmitResult struct {
	Outcome  submission.Outcome    `json:"outcome"`
	Snapshot registration.Snapshot `json:"snapshot"`
}

// Handler serves the registration form API.
type Handler struct {
	engine Engine
	logger *slog.Logger
}

// New creates a Handler for engine.
func New(engine Engine, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{engine: engine, logger: log.With(logger.Component("formapi"))}
}

// Register mounts the routes on r.
func (h *Handler) Register(r chi.Router) {
	r.Get("/state", h.handleState)
	r.Put("/fields/{field}", h.handleFieldChange)
	r.Post("/submit", h.handleSubmit)
	r.Delete("/notification", h.handleDismiss)
	r.Get("/events", h.handleEvents)
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, http.StatusOK, h.engine.Snapshot())
}

func (h *Handler) handleFieldChange(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := chi.URLParam(r, "field")
	field, ok := h.engine.Registry().Lookup(name)
	if !ok {
		h.logger.WarnContext(ctx, "Unknown field", logger.Field(name))
		writeError(w, http.StatusNotFound, "unknown_field", ErrUnknownField, nil)
		return
	}

	var value form.Value
	if err := datastar.ReadSignals(r, &value); err != nil {
		h.logger.WarnContext(ctx, "Invalid field signals", logger.Field(name), logger.Error(err))
		writeError(w, http.StatusBadRequest, "invalid_signals", ErrInvalidSignals, nil)
		return
	}

	h.engine.OnFieldChange(field, value)
	h.respond(w, r, http.StatusOK, h.engine.Snapshot())
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	outcome, err := h.engine.OnSubmitRequested(ctx)
	result := SubmitResult{Outcome: outcome, Snapshot: h.engine.Snapshot()}

	switch {
	case err == nil:
		h.respond(w, r, http.StatusOK, result)
	case errors.Is(err, submission.ErrFormInvalid):
		writeError(w, http.StatusUnprocessableEntity, "form_invalid", submission.ErrFormInvalid, invalidFields(err))
	case errors.Is(err, submission.ErrDeliveryFailed):
		writeError(w, http.StatusBadGateway, "delivery_failed", submission.ErrDeliveryFailed, nil)
	default:
		h.logger.ErrorContext(ctx, "Submit failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", errors.New("internal error"), nil)
	}
}

func (h *Handler) handleDismiss(w http.ResponseWriter, r *http.Request) {
	if !h.engine.OnNotificationDismissed(r.Context()) {
		writeError(w, http.StatusNotFound, "not_found", ErrNothingToDismiss, nil)
		return
	}
	if isDataStar(r) {
		h.respond(w, r, http.StatusOK, h.engine.Snapshot())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if _, ok := w.(http.Flusher); !ok {
		writeError(w, http.StatusInternalServerError, "stream_unsupported", ErrStreamUnsupported, nil)
		return
	}

	sub := h.engine.Subscribe(ctx)
	defer sub.Close()

	sse := datastar.NewSSE(w, r)
	if err := patchSignals(sse, h.engine.Snapshot()); err != nil {
		h.logger.DebugContext(ctx, "Event stream closed", logger.Error(err))
		return
	}

	messages := sub.Receive(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			if err := patchSignals(sse, msg.Data); err != nil {
				h.logger.DebugContext(ctx, "Event stream closed", logger.Error(err))
				return
			}
		}
	}
}

// respond writes v as a datastar signal patch or as JSON.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, status int, v any) {
	if isDataStar(r) {
		if err := patchSignals(datastar.NewSSE(w, r), v); err != nil {
			h.logger.WarnContext(r.Context(), "Failed to patch signals", logger.Error(err))
		}
		return
	}
	writeData(w, status, v)
}

// invalidFields lists the message of every failing field, touched or not.
func invalidFields(err error) map[string]string {
	errs := validator.ExtractValidationErrors(err)
	details := make(map[string]string, len(errs))
	for _, field := range errs.Fields() {
		details[field] = errs.Get(field)[0]
	}
	return details
}
