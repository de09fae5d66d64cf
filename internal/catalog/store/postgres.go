package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	catalogModel "edupath/internal/catalog/models"
	id "edupath/pkg/domain"
	dErrors "edupath/pkg/domain-errors"
)

// Postgres persists the catalog. Program listing preserves insertion order
// via the created_at/code sort so ranking tie-breaks stay deterministic.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed catalog store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const institutionColumns = `
	id, code, name, name_fr, type, city, region, website,
	language_instruction, established_year, is_active, created_at`

// GetInstitution loads one institution row, or CodeNotFound.
func (s *Postgres) GetInstitution(ctx context.Context, instID id.InstitutionID) (*catalogModel.Institution, error) {
	query := "SELECT" + institutionColumns + " FROM institutions WHERE id = $1"
	row := s.db.QueryRowContext(ctx, query, uuid.UUID(instID))
	inst, err := scanInstitution(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dErrors.New(dErrors.CodeNotFound, "institution not found")
		}
		return nil, fmt.Errorf("get institution: %w", err)
	}
	return inst, nil
}

// ListInstitutions returns active institutions, optionally region-filtered.
func (s *Postgres) ListInstitutions(ctx context.Context, region string) ([]catalogModel.Institution, error) {
	query := "SELECT" + institutionColumns + " FROM institutions WHERE is_active ORDER BY code"
	args := []any{}
	if region != "" {
		query = "SELECT" + institutionColumns + " FROM institutions WHERE is_active AND region ILIKE $1 ORDER BY code"
		args = append(args, "%"+region+"%")
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list institutions: %w", err)
	}
	defer rows.Close()

	var out []catalogModel.Institution
	for rows.Next() {
		inst, err := scanInstitution(rows)
		if err != nil {
			return nil, fmt.Errorf("scan institution: %w", err)
		}
		out = append(out, *inst)
	}
	return out, rows.Err()
}

const programColumns = `
	id, institution_id, code, name, name_fr, degree_type, duration_years,
	faculty, department, minimum_ol_points, minimum_al_points,
	minimum_french_average, required_subjects, description, career_prospects,
	tuition_fee_fcfa, employment_rate, average_starting_salary,
	is_competitive, entrance_exam_required, language_instruction, is_active,
	created_at`

// GetProgram loads one program row, or CodeNotFound.
func (s *Postgres) GetProgram(ctx context.Context, programID id.ProgramID) (*catalogModel.Program, error) {
	query := "SELECT" + programColumns + " FROM programs WHERE id = $1"
	row := s.db.QueryRowContext(ctx, query, uuid.UUID(programID))
	program, err := scanProgram(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dErrors.New(dErrors.CodeNotFound, "program not found")
		}
		return nil, fmt.Errorf("get program: %w", err)
	}
	return program, nil
}

// ListPrograms returns active programs matching the filters in stable
// catalog order.
func (s *Postgres) ListPrograms(ctx context.Context, filters catalogModel.Filters) ([]catalogModel.Program, error) {
	var (
		conditions = []string{"is_active"}
		args       []any
	)
	if filters.DegreeType != "" {
		args = append(args, filters.DegreeType)
		conditions = append(conditions, fmt.Sprintf("degree_type = $%d", len(args)))
	}
	if !filters.InstitutionID.IsNil() {
		args = append(args, uuid.UUID(filters.InstitutionID))
		conditions = append(conditions, fmt.Sprintf("institution_id = $%d", len(args)))
	}
	if filters.Faculty != "" {
		args = append(args, "%"+filters.Faculty+"%")
		conditions = append(conditions, fmt.Sprintf("faculty ILIKE $%d", len(args)))
	}

	query := "SELECT" + programColumns + " FROM programs WHERE " +
		strings.Join(conditions, " AND ") + " ORDER BY created_at, code"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list programs: %w", err)
	}
	defer rows.Close()

	var out []catalogModel.Program
	for rows.Next() {
		program, err := scanProgram(rows)
		if err != nil {
			return nil, fmt.Errorf("scan program: %w", err)
		}
		out = append(out, *program)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanInstitution(row scanner) (*catalogModel.Institution, error) {
	var (
		inst   catalogModel.Institution
		instID uuid.UUID
	)
	err := row.Scan(
		&instID, &inst.Code, &inst.Name, &inst.NameFr, &inst.Type, &inst.City,
		&inst.Region, &inst.Website, &inst.LanguageInstruction,
		&inst.EstablishedYear, &inst.IsActive, &inst.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	inst.ID = id.InstitutionID(instID)
	return &inst, nil
}

func scanProgram(row scanner) (*catalogModel.Program, error) {
	var (
		program   catalogModel.Program
		programID uuid.UUID
		instID    uuid.UUID
	)
	err := row.Scan(
		&programID, &instID, &program.Code, &program.Name, &program.NameFr,
		&program.DegreeType, &program.DurationYears, &program.Faculty,
		&program.Department, &program.MinOLevelPoints, &program.MinALevelPoints,
		&program.MinFrenchAverage, pq.Array(&program.RequiredSubjects),
		&program.Description, pq.Array(&program.CareerProspects),
		&program.TuitionFeeFCFA, &program.EmploymentRate,
		&program.AverageStartingSalary, &program.IsCompetitive,
		&program.EntranceExamRequired, &program.LanguageInstruction,
		&program.IsActive, &program.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	program.ID = id.ProgramID(programID)
	program.InstitutionID = id.InstitutionID(instID)
	return &program, nil
}
