// Package handler exposes the catalog over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	catalogModel "edupath/internal/catalog/models"
	"edupath/internal/platform/middleware"
	"edupath/internal/transport/http/shared"
	id "edupath/pkg/domain"
	dErrors "edupath/pkg/domain-errors"
)

// Service defines the catalog operations the handler needs.
type Service interface {
	Institutions(ctx context.Context, region string) ([]catalogModel.Institution, error)
	Institution(ctx context.Context, instID id.InstitutionID) (*catalogModel.Institution, error)
	CandidatePrograms(ctx context.Context, filters catalogModel.Filters) ([]catalogModel.Candidate, error)
	Program(ctx context.Context, programID id.ProgramID) (*catalogModel.Candidate, error)
}

// Handler handles catalog endpoints.
type Handler struct {
	logger  *slog.Logger
	catalog Service
}

// New creates a catalog Handler.
func New(catalog Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, catalog: catalog}
}

// Register registers the catalog routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	catalogRouter := chi.NewRouter()
	catalogRouter.Use(middleware.Recovery(h.logger))
	catalogRouter.Use(middleware.RequestID)
	catalogRouter.Use(middleware.Logger(h.logger))
	catalogRouter.Use(middleware.Timeout(15 * time.Second))
	catalogRouter.Get("/institutions", h.handleListInstitutions)
	catalogRouter.Get("/institutions/{institutionID}", h.handleGetInstitution)
	catalogRouter.Get("/programs", h.handleListPrograms)
	catalogRouter.Get("/programs/{programID}", h.handleGetProgram)

	r.Mount("/catalog", catalogRouter)
}

func (h *Handler) handleListInstitutions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	institutions, err := h.catalog.Institutions(ctx, r.URL.Query().Get("region"))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list institutions",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to list institutions"))
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"institutions": institutions})
}

func (h *Handler) handleGetInstitution(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	instID, err := id.ParseInstitutionID(chi.URLParam(r, "institutionID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	inst, err := h.catalog.Institution(ctx, instID)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			shared.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get institution",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to get institution"))
		return
	}
	shared.WriteJSON(w, http.StatusOK, inst)
}

func (h *Handler) handleListPrograms(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	filters := catalogModel.Filters{
		DegreeType: q.Get("degree_type"),
		Faculty:    q.Get("faculty"),
		Region:     q.Get("region"),
	}
	if raw := q.Get("institution_id"); raw != "" {
		instID, err := id.ParseInstitutionID(raw)
		if err != nil {
			shared.WriteError(w, err)
			return
		}
		filters.InstitutionID = instID
	}

	candidates, err := h.catalog.CandidatePrograms(ctx, filters)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list programs",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to list programs"))
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"programs": candidates})
}

func (h *Handler) handleGetProgram(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	programID, err := id.ParseProgramID(chi.URLParam(r, "programID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	candidate, err := h.catalog.Program(ctx, programID)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			shared.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get program",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to get program"))
		return
	}
	shared.WriteJSON(w, http.StatusOK, candidate)
}
