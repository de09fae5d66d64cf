// Package handler exposes job-market queries over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	catalogModel "edupath/internal/catalog/models"
	marketModel "edupath/internal/market/models"
	"edupath/internal/platform/middleware"
	"edupath/internal/transport/http/shared"
	id "edupath/pkg/domain"
	dErrors "edupath/pkg/domain-errors"
)

// Service defines the market operations the handler needs.
type Service interface {
	Analyze(ctx context.Context, candidates []catalogModel.Candidate) (*marketModel.Insights, error)
	Sectors(ctx context.Context) ([]marketModel.Sector, error)
	Sector(ctx context.Context, sectorID id.SectorID) (*marketModel.Sector, error)
	Skills(ctx context.Context, filters marketModel.SkillFilters) ([]marketModel.Skill, error)
	CareerPaths(ctx context.Context, sectorID id.SectorID) ([]marketModel.CareerPath, error)
}

// Handler handles market endpoints.
type Handler struct {
	logger *slog.Logger
	market Service
}

// New creates a market Handler.
func New(market Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, market: market}
}

// Register registers the market routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	marketRouter := chi.NewRouter()
	marketRouter.Use(middleware.Recovery(h.logger))
	marketRouter.Use(middleware.RequestID)
	marketRouter.Use(middleware.Logger(h.logger))
	marketRouter.Use(middleware.Timeout(15 * time.Second))
	marketRouter.Get("/insights", h.handleInsights)
	marketRouter.Get("/sectors", h.handleListSectors)
	marketRouter.Get("/sectors/{sectorID}", h.handleGetSector)
	marketRouter.Get("/skills", h.handleListSkills)
	marketRouter.Get("/careers", h.handleListCareerPaths)

	r.Mount("/market", marketRouter)
}

// handleInsights serves the market-wide view: high-demand sectors, trending
// skills, entrepreneurship opportunities, and salary bands, without any
// per-program analysis.
func (h *Handler) handleInsights(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	insights, err := h.market.Analyze(ctx, nil)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to build market insights",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to build market insights"))
		return
	}
	shared.WriteJSON(w, http.StatusOK, insights)
}

func (h *Handler) handleListSectors(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sectors, err := h.market.Sectors(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list sectors",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to list sectors"))
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{
		"sectors":     sectors,
		"total_found": len(sectors),
	})
}

func (h *Handler) handleGetSector(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sectorID, err := id.ParseSectorID(chi.URLParam(r, "sectorID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	sector, err := h.market.Sector(ctx, sectorID)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			shared.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get sector",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to get sector"))
		return
	}
	shared.WriteJSON(w, http.StatusOK, sector)
}

func (h *Handler) handleListSkills(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filters := marketModel.SkillFilters{
		Category: r.URL.Query().Get("category"),
		Trend:    r.URL.Query().Get("trend"),
	}
	skills, err := h.market.Skills(ctx, filters)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list skills",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to list skills"))
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{
		"skills":      skills,
		"total_found": len(skills),
	})
}

func (h *Handler) handleListCareerPaths(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var sectorID id.SectorID
	if raw := r.URL.Query().Get("sector_id"); raw != "" {
		parsed, err := id.ParseSectorID(raw)
		if err != nil {
			shared.WriteError(w, err)
			return
		}
		sectorID = parsed
	}

	paths, err := h.market.CareerPaths(ctx, sectorID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list career paths",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to list career paths"))
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{
		"career_paths": paths,
		"total_found":  len(paths),
	})
}
