// Package models defines the academic catalog records. Catalog data is
// immutable within a pipeline run; stores hand out copies, never shared
// references.
package models

import (
	"time"

	id "edupath/pkg/domain"
)

// Institution is a university or professional school in the catalog.
type Institution struct {
	ID                  id.InstitutionID `json:"id"`
	Code                string           `json:"code"`
	Name                string           `json:"name"`
	NameFr              string           `json:"name_fr,omitempty"`
	Type                string           `json:"type"` // public or private
	City                string           `json:"city"`
	Region              string           `json:"region"`
	Website             string           `json:"website,omitempty"`
	LanguageInstruction string           `json:"language_instruction"` // english, french, bilingual
	EstablishedYear     int              `json:"established_year,omitempty"`
	IsActive            bool             `json:"is_active"`
	CreatedAt           time.Time        `json:"created_at"`
}

// Program is one degree program offered by an institution. Requirement
// thresholds of zero mean "no requirement" for that track.
type Program struct {
	ID            id.ProgramID     `json:"id"`
	InstitutionID id.InstitutionID `json:"institution_id"`
	Code          string           `json:"code"`
	Name          string           `json:"name"`
	NameFr        string           `json:"name_fr,omitempty"`
	DegreeType    string           `json:"degree_type"` // bachelor, master, doctorate
	DurationYears int              `json:"duration_years"`
	Faculty       string           `json:"faculty"`
	Department    string           `json:"department"`

	MinOLevelPoints  int      `json:"minimum_ol_points"`
	MinALevelPoints  int      `json:"minimum_al_points"`
	MinFrenchAverage float64  `json:"minimum_french_average"`
	RequiredSubjects []string `json:"required_subjects"`

	Description           string   `json:"description,omitempty"`
	CareerProspects       []string `json:"career_prospects"`
	TuitionFeeFCFA        int      `json:"tuition_fee_fcfa"`
	EmploymentRate        float64  `json:"employment_rate,omitempty"`
	AverageStartingSalary int      `json:"average_starting_salary,omitempty"`

	IsCompetitive        bool   `json:"is_competitive"`
	EntranceExamRequired bool   `json:"entrance_exam_required"`
	LanguageInstruction  string `json:"language_instruction"`
	IsActive             bool   `json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
}

// Candidate pairs a program with its owning institution for downstream
// scoring (location and language factors come from the institution).
type Candidate struct {
	Program     Program     `json:"program"`
	Institution Institution `json:"institution"`
}

// Filters narrows a candidate program listing.
type Filters struct {
	DegreeType    string           `json:"degree_type,omitempty"`
	InstitutionID id.InstitutionID `json:"institution_id,omitempty"`
	Faculty       string           `json:"faculty,omitempty"`
	Region        string           `json:"region,omitempty"`
}
