// Package handler exposes student profile submission over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/go-chi/chi/v5"

	"edupath/internal/platform/middleware"
	studentModel "edupath/internal/student/models"
	"edupath/internal/student/service"
	"edupath/internal/transport/http/shared"
	id "edupath/pkg/domain"
	dErrors "edupath/pkg/domain-errors"
)

// ProfileService processes and resolves student profiles.
type ProfileService interface {
	Process(ctx context.Context, sessionID id.SessionID, input service.ProfileInput) (*studentModel.Profile, error)
	Resolve(ctx context.Context, sessionID id.SessionID) (*studentModel.Profile, error)
}

// profileRequest wraps the profile payload with its session binding.
type profileRequest struct {
	SessionID string `json:"session_id" valid:"required,uuid"`
	service.ProfileInput
}

// Handler handles student profile endpoints.
type Handler struct {
	logger   *slog.Logger
	profiles ProfileService
}

// New creates a student Handler.
func New(profiles ProfileService, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, profiles: profiles}
}

// Register registers the student routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	studentRouter := chi.NewRouter()
	studentRouter.Use(middleware.Recovery(h.logger))
	studentRouter.Use(middleware.RequestID)
	studentRouter.Use(middleware.Logger(h.logger))
	studentRouter.Use(middleware.Timeout(15 * time.Second))
	studentRouter.Use(middleware.ContentTypeJSON)
	studentRouter.Post("/profile", h.handleProfile)
	studentRouter.Get("/profile/{sessionID}", h.handleGetProfile)

	r.Mount("/students", studentRouter)
}

func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid profile request",
			"request_id", requestID, "error", err.Error())
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if _, err := govalidator.ValidateStruct(req); err != nil {
		shared.WriteError(w, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid profile request"))
		return
	}

	sessionID, err := id.ParseSessionID(req.SessionID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	profile, err := h.profiles.Process(ctx, sessionID, req.ProfileInput)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeInvalidInput) {
			shared.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "failed to process profile",
			"request_id", requestID,
			"session_id", sessionID.String(),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to process profile"))
		return
	}
	shared.WriteJSON(w, http.StatusOK, profile)
}

func (h *Handler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID, err := id.ParseSessionID(chi.URLParam(r, "sessionID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	profile, err := h.profiles.Resolve(ctx, sessionID)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			shared.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "failed to load profile",
			"request_id", middleware.GetRequestID(ctx),
			"session_id", sessionID.String(),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to load profile"))
		return
	}
	shared.WriteJSON(w, http.StatusOK, profile)
}
