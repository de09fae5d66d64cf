// Package store persists the academic catalog. Reads hand out copies so a
// pipeline run can treat its snapshot as immutable.
package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	catalogModel "edupath/internal/catalog/models"
	id "edupath/pkg/domain"
	dErrors "edupath/pkg/domain-errors"
)

// InMemory holds catalog records behind a mutex. Insertion order of programs
// is preserved because downstream ranking breaks ties by catalog order.
type InMemory struct {
	mu           sync.RWMutex
	institutions map[id.InstitutionID]catalogModel.Institution
	programs     []catalogModel.Program
}

// NewInMemory creates an empty catalog store.
func NewInMemory() *InMemory {
	return &InMemory{institutions: make(map[id.InstitutionID]catalogModel.Institution)}
}

// PutInstitution adds or replaces an institution.
func (s *InMemory) PutInstitution(_ context.Context, inst catalogModel.Institution) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.institutions[inst.ID] = inst
	return nil
}

// PutProgram appends or replaces a program, keeping catalog order stable.
func (s *InMemory) PutProgram(_ context.Context, program catalogModel.Program) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.programs {
		if s.programs[i].ID == program.ID {
			s.programs[i] = program
			return nil
		}
	}
	s.programs = append(s.programs, program)
	return nil
}

// GetInstitution returns one institution or CodeNotFound.
func (s *InMemory) GetInstitution(_ context.Context, instID id.InstitutionID) (*catalogModel.Institution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inst, ok := s.institutions[instID]
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "institution not found")
	}
	clone := inst
	return &clone, nil
}

// ListInstitutions returns active institutions, optionally filtered by region.
func (s *InMemory) ListInstitutions(_ context.Context, region string) ([]catalogModel.Institution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]catalogModel.Institution, 0, len(s.institutions))
	for _, inst := range s.institutions {
		if !inst.IsActive {
			continue
		}
		if region != "" && !strings.Contains(strings.ToLower(inst.Region), strings.ToLower(region)) {
			continue
		}
		out = append(out, inst)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

// GetProgram returns one program or CodeNotFound.
func (s *InMemory) GetProgram(_ context.Context, programID id.ProgramID) (*catalogModel.Program, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.programs {
		if s.programs[i].ID == programID {
			clone := s.programs[i]
			return &clone, nil
		}
	}
	return nil, dErrors.New(dErrors.CodeNotFound, "program not found")
}

// ListPrograms returns active programs matching the filters, in catalog order.
func (s *InMemory) ListPrograms(_ context.Context, filters catalogModel.Filters) ([]catalogModel.Program, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]catalogModel.Program, 0, len(s.programs))
	for _, p := range s.programs {
		if !p.IsActive {
			continue
		}
		if filters.DegreeType != "" && p.DegreeType != filters.DegreeType {
			continue
		}
		if !filters.InstitutionID.IsNil() && p.InstitutionID != filters.InstitutionID {
			continue
		}
		if filters.Faculty != "" && !strings.Contains(strings.ToLower(p.Faculty), strings.ToLower(filters.Faculty)) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}
