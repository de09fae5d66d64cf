// Package store persists job-market data. Analyzer queries are expressed as
// store methods so the memory and PostgreSQL backends stay interchangeable.
package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	marketModel "edupath/internal/market/models"
	id "edupath/pkg/domain"
	dErrors "edupath/pkg/domain-errors"
)

// InMemory holds market records behind a mutex.
type InMemory struct {
	mu          sync.RWMutex
	sectors     []marketModel.Sector
	skills      []marketModel.Skill
	careerPaths []marketModel.CareerPath
}

// NewInMemory creates an empty market store.
func NewInMemory() *InMemory {
	return &InMemory{}
}

// PutSector adds or replaces a sector.
func (s *InMemory) PutSector(_ context.Context, sector marketModel.Sector) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.sectors {
		if s.sectors[i].ID == sector.ID {
			s.sectors[i] = sector
			return nil
		}
	}
	s.sectors = append(s.sectors, sector)
	return nil
}

// PutSkill adds or replaces a skill.
func (s *InMemory) PutSkill(_ context.Context, skill marketModel.Skill) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.skills {
		if s.skills[i].ID == skill.ID {
			s.skills[i] = skill
			return nil
		}
	}
	s.skills = append(s.skills, skill)
	return nil
}

// PutCareerPath adds or replaces a career path.
func (s *InMemory) PutCareerPath(_ context.Context, path marketModel.CareerPath) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.careerPaths {
		if s.careerPaths[i].ID == path.ID {
			s.careerPaths[i] = path
			return nil
		}
	}
	s.careerPaths = append(s.careerPaths, path)
	return nil
}

// GetSector returns one active sector or CodeNotFound.
func (s *InMemory) GetSector(_ context.Context, sectorID id.SectorID) (*marketModel.Sector, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.sectors {
		if s.sectors[i].ID == sectorID && s.sectors[i].IsActive {
			clone := s.sectors[i]
			return &clone, nil
		}
	}
	return nil, dErrors.New(dErrors.CodeNotFound, "sector not found")
}

// ListSectors returns all active sectors.
func (s *InMemory) ListSectors(_ context.Context) ([]marketModel.Sector, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]marketModel.Sector, 0, len(s.sectors))
	for _, sec := range s.sectors {
		if sec.IsActive {
			out = append(out, sec)
		}
	}
	return out, nil
}

// HighDemandSectors returns up to limit active sectors with high or very high
// demand, most growth first.
func (s *InMemory) HighDemandSectors(_ context.Context, limit int) ([]marketModel.Sector, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []marketModel.Sector
	for _, sec := range s.sectors {
		if !sec.IsActive {
			continue
		}
		if sec.DemandLevel == marketModel.DemandHigh || sec.DemandLevel == marketModel.DemandVeryHigh {
			out = append(out, sec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].GrowthRate > out[j].GrowthRate })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// EntrepreneurshipSectors returns up to limit active sectors at or above
// minScore, highest score first.
func (s *InMemory) EntrepreneurshipSectors(_ context.Context, minScore, limit int) ([]marketModel.Sector, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []marketModel.Sector
	for _, sec := range s.sectors {
		if sec.IsActive && sec.EntrepreneurshipScore >= minScore {
			out = append(out, sec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EntrepreneurshipScore > out[j].EntrepreneurshipScore
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// GovernmentPrioritySectors returns active priority sectors, biggest GDP
// contribution first.
func (s *InMemory) GovernmentPrioritySectors(_ context.Context) ([]marketModel.Sector, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []marketModel.Sector
	for _, sec := range s.sectors {
		if sec.IsActive && sec.GovernmentPriority {
			out = append(out, sec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ContributionToGDP > out[j].ContributionToGDP
	})
	return out, nil
}

// SectorsWithSalaryData returns active sectors carrying a salary range.
func (s *InMemory) SectorsWithSalaryData(_ context.Context) ([]marketModel.Sector, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []marketModel.Sector
	for _, sec := range s.sectors {
		if sec.IsActive && sec.AverageSalaryRange != nil {
			out = append(out, sec)
		}
	}
	return out, nil
}

// TrendingSkills returns up to limit active skills that are growing or
// emerging with high demand, ordered by salary impact.
func (s *InMemory) TrendingSkills(_ context.Context, limit int) ([]marketModel.Skill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []marketModel.Skill
	for _, sk := range s.skills {
		if !sk.IsActive {
			continue
		}
		if sk.Trend != "growing" && sk.Trend != "emerging" {
			continue
		}
		if sk.DemandLevel != marketModel.DemandHigh && sk.DemandLevel != marketModel.DemandVeryHigh {
			continue
		}
		out = append(out, sk)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SalaryImpact > out[j].SalaryImpact })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ListSkills returns active skills matching the filters, highest salary
// impact first.
func (s *InMemory) ListSkills(_ context.Context, filters marketModel.SkillFilters) ([]marketModel.Skill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []marketModel.Skill
	for _, sk := range s.skills {
		if !sk.IsActive {
			continue
		}
		if filters.Category != "" && sk.Category != filters.Category {
			continue
		}
		if filters.Trend != "" && sk.Trend != filters.Trend {
			continue
		}
		out = append(out, sk)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SalaryImpact > out[j].SalaryImpact })
	return out, nil
}

// FindCareerPath returns the first active career path whose name contains the
// query, case-insensitively, or CodeNotFound.
func (s *InMemory) FindCareerPath(_ context.Context, name string) (*marketModel.CareerPath, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	needle := strings.ToLower(name)
	for i := range s.careerPaths {
		p := s.careerPaths[i]
		if p.IsActive && strings.Contains(strings.ToLower(p.Name), needle) {
			clone := p
			return &clone, nil
		}
	}
	return nil, dErrors.New(dErrors.CodeNotFound, "career path not found")
}

// ListCareerPaths returns active career paths, optionally sector-filtered.
func (s *InMemory) ListCareerPaths(_ context.Context, sectorID id.SectorID) ([]marketModel.CareerPath, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []marketModel.CareerPath
	for _, p := range s.careerPaths {
		if !p.IsActive {
			continue
		}
		if !sectorID.IsNil() && p.SectorID != sectorID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}
