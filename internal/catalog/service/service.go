// Package service exposes read operations over the academic catalog. The
// catalog stage of a pipeline run pulls its candidate set from here.
package service

import (
	"context"
	"log/slog"
	"strings"

	catalogModel "edupath/internal/catalog/models"
	id "edupath/pkg/domain"
	dErrors "edupath/pkg/domain-errors"
)

// Store abstracts catalog persistence.
type Store interface {
	GetInstitution(ctx context.Context, instID id.InstitutionID) (*catalogModel.Institution, error)
	ListInstitutions(ctx context.Context, region string) ([]catalogModel.Institution, error)
	GetProgram(ctx context.Context, programID id.ProgramID) (*catalogModel.Program, error)
	ListPrograms(ctx context.Context, filters catalogModel.Filters) ([]catalogModel.Program, error)
}

// Service serves catalog queries.
type Service struct {
	store  Store
	logger *slog.Logger
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// New creates a catalog service.
func New(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "catalog store is required")
	}
	svc := &Service{store: store}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// CandidatePrograms returns active programs joined with their institutions,
// in stable catalog order. A region filter applies to the institution. A
// program whose institution is missing or inactive is skipped rather than
// failing the whole listing.
func (s *Service) CandidatePrograms(ctx context.Context, filters catalogModel.Filters) ([]catalogModel.Candidate, error) {
	programs, err := s.store.ListPrograms(ctx, filters)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list programs")
	}

	institutions := make(map[id.InstitutionID]*catalogModel.Institution)
	candidates := make([]catalogModel.Candidate, 0, len(programs))
	for _, p := range programs {
		inst, ok := institutions[p.InstitutionID]
		if !ok {
			inst, err = s.store.GetInstitution(ctx, p.InstitutionID)
			if err != nil {
				if dErrors.HasCode(err, dErrors.CodeNotFound) {
					if s.logger != nil {
						s.logger.WarnContext(ctx, "program references unknown institution",
							"program_code", p.Code,
							"institution_id", p.InstitutionID.String(),
						)
					}
					institutions[p.InstitutionID] = nil
					continue
				}
				return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load institution")
			}
			institutions[p.InstitutionID] = inst
		}
		if inst == nil || !inst.IsActive {
			continue
		}
		if filters.Region != "" && !strings.Contains(strings.ToLower(inst.Region), strings.ToLower(filters.Region)) {
			continue
		}
		candidates = append(candidates, catalogModel.Candidate{Program: p, Institution: *inst})
	}
	return candidates, nil
}

// Institutions lists active institutions, optionally filtered by region.
func (s *Service) Institutions(ctx context.Context, region string) ([]catalogModel.Institution, error) {
	return s.store.ListInstitutions(ctx, region)
}

// Institution returns one institution by ID.
func (s *Service) Institution(ctx context.Context, instID id.InstitutionID) (*catalogModel.Institution, error) {
	return s.store.GetInstitution(ctx, instID)
}

// Program returns one program joined with its institution.
func (s *Service) Program(ctx context.Context, programID id.ProgramID) (*catalogModel.Candidate, error) {
	program, err := s.store.GetProgram(ctx, programID)
	if err != nil {
		return nil, err
	}
	inst, err := s.store.GetInstitution(ctx, program.InstitutionID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load institution for program")
	}
	return &catalogModel.Candidate{Program: *program, Institution: *inst}, nil
}
