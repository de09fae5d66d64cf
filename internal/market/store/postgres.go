package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	marketModel "edupath/internal/market/models"
	id "edupath/pkg/domain"
	dErrors "edupath/pkg/domain-errors"
)

// Postgres persists job-market data. Salary bands and capital tiers are
// stored as JSONB, list columns as text arrays.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed market store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const sectorColumns = `
	id, name, name_fr, description, description_fr, growth_rate,
	employment_size, demand_level, skill_shortage, contribution_to_gdp,
	average_salary_range, entrepreneurship_score, startup_capital_required,
	related_programs, required_skills, government_priority,
	development_programs, is_active, created_at`

// GetSector returns one active sector, or CodeNotFound.
func (s *Postgres) GetSector(ctx context.Context, sectorID id.SectorID) (*marketModel.Sector, error) {
	query := "SELECT" + sectorColumns + " FROM job_sectors WHERE id = $1 AND is_active"
	sector, err := scanSector(s.db.QueryRowContext(ctx, query, uuid.UUID(sectorID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dErrors.New(dErrors.CodeNotFound, "sector not found")
		}
		return nil, fmt.Errorf("get sector: %w", err)
	}
	return sector, nil
}

// ListSectors returns all active sectors.
func (s *Postgres) ListSectors(ctx context.Context) ([]marketModel.Sector, error) {
	query := "SELECT" + sectorColumns + " FROM job_sectors WHERE is_active ORDER BY name"
	return s.querySectors(ctx, query)
}

// HighDemandSectors returns active high-demand sectors, most growth first.
func (s *Postgres) HighDemandSectors(ctx context.Context, limit int) ([]marketModel.Sector, error) {
	query := "SELECT" + sectorColumns + ` FROM job_sectors
		WHERE is_active AND demand_level IN ('high', 'very_high')
		ORDER BY growth_rate DESC LIMIT $1`
	return s.querySectors(ctx, query, limit)
}

// EntrepreneurshipSectors returns active sectors at or above minScore.
func (s *Postgres) EntrepreneurshipSectors(ctx context.Context, minScore, limit int) ([]marketModel.Sector, error) {
	query := "SELECT" + sectorColumns + ` FROM job_sectors
		WHERE is_active AND entrepreneurship_score >= $1
		ORDER BY entrepreneurship_score DESC LIMIT $2`
	return s.querySectors(ctx, query, minScore, limit)
}

// GovernmentPrioritySectors returns active priority sectors by GDP share.
func (s *Postgres) GovernmentPrioritySectors(ctx context.Context) ([]marketModel.Sector, error) {
	query := "SELECT" + sectorColumns + ` FROM job_sectors
		WHERE is_active AND government_priority
		ORDER BY contribution_to_gdp DESC`
	return s.querySectors(ctx, query)
}

// SectorsWithSalaryData returns active sectors carrying a salary range.
func (s *Postgres) SectorsWithSalaryData(ctx context.Context) ([]marketModel.Sector, error) {
	query := "SELECT" + sectorColumns + ` FROM job_sectors
		WHERE is_active AND average_salary_range IS NOT NULL`
	return s.querySectors(ctx, query)
}

func (s *Postgres) querySectors(ctx context.Context, query string, args ...any) ([]marketModel.Sector, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sectors: %w", err)
	}
	defer rows.Close()

	var out []marketModel.Sector
	for rows.Next() {
		sector, err := scanSector(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sector: %w", err)
		}
		out = append(out, *sector)
	}
	return out, rows.Err()
}

const skillColumns = `
	id, name, name_fr, category, description, demand_level, trend,
	difficulty_level, learning_time_months, certification_available,
	salary_impact, freelance_potential, remote_work_compatible,
	tools_technologies, is_active, created_at`

// TrendingSkills returns growing or emerging high-demand skills.
func (s *Postgres) TrendingSkills(ctx context.Context, limit int) ([]marketModel.Skill, error) {
	query := "SELECT" + skillColumns + ` FROM skills
		WHERE is_active
			AND trend IN ('growing', 'emerging')
			AND demand_level IN ('high', 'very_high')
		ORDER BY salary_impact DESC LIMIT $1`
	return s.querySkills(ctx, query, limit)
}

// ListSkills returns active skills matching the filters by salary impact.
func (s *Postgres) ListSkills(ctx context.Context, filters marketModel.SkillFilters) ([]marketModel.Skill, error) {
	query := "SELECT" + skillColumns + " FROM skills WHERE is_active"
	var args []any
	if filters.Category != "" {
		args = append(args, filters.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filters.Trend != "" {
		args = append(args, filters.Trend)
		query += fmt.Sprintf(" AND trend = $%d", len(args))
	}
	query += " ORDER BY salary_impact DESC"
	return s.querySkills(ctx, query, args...)
}

func (s *Postgres) querySkills(ctx context.Context, query string, args ...any) ([]marketModel.Skill, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query skills: %w", err)
	}
	defer rows.Close()

	var out []marketModel.Skill
	for rows.Next() {
		var (
			skill   marketModel.Skill
			skillID uuid.UUID
		)
		err := rows.Scan(
			&skillID, &skill.Name, &skill.NameFr, &skill.Category,
			&skill.Description, &skill.DemandLevel, &skill.Trend,
			&skill.DifficultyLevel, &skill.LearningTimeMonths,
			&skill.CertificationAvailable, &skill.SalaryImpact,
			&skill.FreelancePotential, &skill.RemoteWorkCompatible,
			pq.Array(&skill.ToolsTechnologies), &skill.IsActive, &skill.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan skill: %w", err)
		}
		skill.ID = id.SkillID(skillID)
		out = append(out, skill)
	}
	return out, rows.Err()
}

const careerPathColumns = `
	id, name, name_fr, description, sector_id, entry_level_positions,
	mid_level_positions, senior_level_positions, required_education,
	required_skills, preferred_skills, entry_salary_range, mid_salary_range,
	senior_salary_range, job_availability, work_life_balance, stress_level,
	creativity_required, travel_required, is_active, created_at`

// FindCareerPath returns the first active career path whose name matches,
// case-insensitively, or CodeNotFound.
func (s *Postgres) FindCareerPath(ctx context.Context, name string) (*marketModel.CareerPath, error) {
	query := "SELECT" + careerPathColumns + ` FROM career_paths
		WHERE is_active AND name ILIKE $1 ORDER BY name LIMIT 1`
	path, err := scanCareerPath(s.db.QueryRowContext(ctx, query, "%"+name+"%"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dErrors.New(dErrors.CodeNotFound, "career path not found")
		}
		return nil, fmt.Errorf("find career path: %w", err)
	}
	return path, nil
}

// ListCareerPaths returns active career paths, optionally sector-filtered.
func (s *Postgres) ListCareerPaths(ctx context.Context, sectorID id.SectorID) ([]marketModel.CareerPath, error) {
	query := "SELECT" + careerPathColumns + " FROM career_paths WHERE is_active"
	var args []any
	if !sectorID.IsNil() {
		args = append(args, uuid.UUID(sectorID))
		query += " AND sector_id = $1"
	}
	query += " ORDER BY name"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list career paths: %w", err)
	}
	defer rows.Close()

	var out []marketModel.CareerPath
	for rows.Next() {
		path, err := scanCareerPath(rows)
		if err != nil {
			return nil, fmt.Errorf("scan career path: %w", err)
		}
		out = append(out, *path)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSector(row scanner) (*marketModel.Sector, error) {
	var (
		sector      marketModel.Sector
		sectorID    uuid.UUID
		salaryJSON  []byte
		capitalJSON []byte
	)
	err := row.Scan(
		&sectorID, &sector.Name, &sector.NameFr, &sector.Description,
		&sector.DescriptionFr, &sector.GrowthRate, &sector.EmploymentSize,
		&sector.DemandLevel, &sector.SkillShortage, &sector.ContributionToGDP,
		&salaryJSON, &sector.EntrepreneurshipScore, &capitalJSON,
		pq.Array(&sector.RelatedPrograms), pq.Array(&sector.RequiredSkills),
		&sector.GovernmentPriority, pq.Array(&sector.DevelopmentPrograms),
		&sector.IsActive, &sector.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	sector.ID = id.SectorID(sectorID)
	if len(salaryJSON) > 0 {
		if err := json.Unmarshal(salaryJSON, &sector.AverageSalaryRange); err != nil {
			return nil, fmt.Errorf("unmarshal salary range: %w", err)
		}
	}
	if len(capitalJSON) > 0 {
		if err := json.Unmarshal(capitalJSON, &sector.StartupCapital); err != nil {
			return nil, fmt.Errorf("unmarshal startup capital: %w", err)
		}
	}
	return &sector, nil
}

func scanCareerPath(row scanner) (*marketModel.CareerPath, error) {
	var (
		path       marketModel.CareerPath
		pathID     uuid.UUID
		sectorID   uuid.UUID
		entryJSON  []byte
		midJSON    []byte
		seniorJSON []byte
	)
	err := row.Scan(
		&pathID, &path.Name, &path.NameFr, &path.Description, &sectorID,
		pq.Array(&path.EntryLevelPositions), pq.Array(&path.MidLevelPositions),
		pq.Array(&path.SeniorLevelPositions), pq.Array(&path.RequiredEducation),
		pq.Array(&path.RequiredSkills), pq.Array(&path.PreferredSkills),
		&entryJSON, &midJSON, &seniorJSON,
		&path.JobAvailability, &path.WorkLifeBalance, &path.StressLevel,
		&path.CreativityRequired, &path.TravelRequired, &path.IsActive,
		&path.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	path.ID = id.CareerPathID(pathID)
	path.SectorID = id.SectorID(sectorID)
	if len(entryJSON) > 0 {
		if err := json.Unmarshal(entryJSON, &path.EntrySalaryRange); err != nil {
			return nil, fmt.Errorf("unmarshal entry salary range: %w", err)
		}
	}
	if len(midJSON) > 0 {
		if err := json.Unmarshal(midJSON, &path.MidSalaryRange); err != nil {
			return nil, fmt.Errorf("unmarshal mid salary range: %w", err)
		}
	}
	if len(seniorJSON) > 0 {
		if err := json.Unmarshal(seniorJSON, &path.SeniorSalaryRange); err != nil {
			return nil, fmt.Errorf("unmarshal senior salary range: %w", err)
		}
	}
	return &path, nil
}
