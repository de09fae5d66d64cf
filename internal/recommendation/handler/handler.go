// Package handler exposes the recommendation pipeline over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/go-chi/chi/v5"

	catalogModel "edupath/internal/catalog/models"
	"edupath/internal/orchestrator"
	"edupath/internal/platform/middleware"
	recModel "edupath/internal/recommendation/models"
	"edupath/internal/transport/http/shared"
	id "edupath/pkg/domain"
	dErrors "edupath/pkg/domain-errors"
)

// Pipeline runs recommendation sessions.
type Pipeline interface {
	Run(ctx context.Context, sessionID id.SessionID, filters catalogModel.Filters) (*orchestrator.Result, error)
}

// OutputStore reads stored recommendation outputs.
type OutputStore interface {
	GetBySession(ctx context.Context, sessionID id.SessionID) (*recModel.Output, error)
}

// generateRequest is the wire shape for starting a pipeline run.
type generateRequest struct {
	SessionID string `json:"session_id" valid:"required,uuid"`

	DegreeType    string `json:"degree_type,omitempty"`
	InstitutionID string `json:"institution_id,omitempty" valid:"uuid,optional"`
	Faculty       string `json:"faculty,omitempty"`
	Region        string `json:"region,omitempty"`
}

// Handler handles recommendation endpoints.
type Handler struct {
	logger   *slog.Logger
	pipeline Pipeline
	outputs  OutputStore
}

// New creates a recommendation Handler.
func New(pipeline Pipeline, outputs OutputStore, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, pipeline: pipeline, outputs: outputs}
}

// Register registers the recommendation routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	recRouter := chi.NewRouter()
	recRouter.Use(middleware.Recovery(h.logger))
	recRouter.Use(middleware.RequestID)
	recRouter.Use(middleware.Logger(h.logger))
	recRouter.Use(middleware.Timeout(2 * time.Minute))
	recRouter.Use(middleware.ContentTypeJSON)
	recRouter.Post("/generate", h.handleGenerate)
	recRouter.Get("/session/{sessionID}", h.handleGetBySession)

	r.Mount("/recommendations", recRouter)
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid generate request",
			"request_id", requestID, "error", err.Error())
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if _, err := govalidator.ValidateStruct(req); err != nil {
		shared.WriteError(w, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid generate request"))
		return
	}

	sessionID, err := id.ParseSessionID(req.SessionID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	filters := catalogModel.Filters{
		DegreeType: req.DegreeType,
		Faculty:    req.Faculty,
		Region:     req.Region,
	}
	if req.InstitutionID != "" {
		instID, err := id.ParseInstitutionID(req.InstitutionID)
		if err != nil {
			shared.WriteError(w, err)
			return
		}
		filters.InstitutionID = instID
	}

	result, err := h.pipeline.Run(ctx, sessionID, filters)
	if err != nil {
		h.logger.ErrorContext(ctx, "pipeline run failed",
			"request_id", requestID,
			"session_id", sessionID.String(),
			"error", err.Error(),
		)
		// A failed run still carries its session record: the failing stage,
		// the stage log, and timestamps. Return it so the caller does not
		// need a second lookup to learn what went wrong.
		if result != nil && result.Session != nil {
			shared.WriteJSON(w, shared.StatusOf(err), result)
			return
		}
		if dErrors.Is(err, dErrors.CodeNotFound) || dErrors.Is(err, dErrors.CodeInvalidInput) {
			shared.WriteError(w, err)
			return
		}
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "recommendation generation failed"))
		return
	}

	shared.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleGetBySession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID, err := id.ParseSessionID(chi.URLParam(r, "sessionID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	output, err := h.outputs.GetBySession(ctx, sessionID)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			shared.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "failed to load recommendations",
			"request_id", middleware.GetRequestID(ctx),
			"session_id", sessionID.String(),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to load recommendations"))
		return
	}
	shared.WriteJSON(w, http.StatusOK, output)
}
