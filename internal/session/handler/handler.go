// Package handler exposes session records over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"edupath/internal/platform/middleware"
	sessionModel "edupath/internal/session/models"
	"edupath/internal/transport/http/shared"
	id "edupath/pkg/domain"
	dErrors "edupath/pkg/domain-errors"
)

// Store reads stored session records.
type Store interface {
	Get(ctx context.Context, sessionID id.SessionID) (*sessionModel.Session, error)
}

// Handler handles session endpoints.
type Handler struct {
	logger *slog.Logger
	store  Store
}

// New creates a session Handler.
func New(store Store, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, store: store}
}

// Register registers the session routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	sessionRouter := chi.NewRouter()
	sessionRouter.Use(middleware.Recovery(h.logger))
	sessionRouter.Use(middleware.RequestID)
	sessionRouter.Use(middleware.Logger(h.logger))
	sessionRouter.Use(middleware.Timeout(15 * time.Second))
	sessionRouter.Get("/{sessionID}", h.handleGet)

	r.Mount("/sessions", sessionRouter)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID, err := id.ParseSessionID(chi.URLParam(r, "sessionID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	session, err := h.store.Get(ctx, sessionID)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			shared.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "failed to load session",
			"request_id", middleware.GetRequestID(ctx),
			"session_id", sessionID.String(),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to load session"))
		return
	}
	shared.WriteJSON(w, http.StatusOK, session)
}
