// Package models defines eligibility verdicts and scored recommendations.
package models

import (
	"time"

	marketModel "edupath/internal/market/models"
	id "edupath/pkg/domain"
)

// EligibilityVerdict is the outcome of checking one student against one
// program's entry requirements.
type EligibilityVerdict struct {
	Eligible            bool     `json:"eligible"`
	Score               float64  `json:"score"`
	MatchReasons        []string `json:"match_reasons"`
	MissingRequirements []string `json:"missing_requirements"`
	Recommendations     []string `json:"recommendations"`
}

// FullyEligible reports whether the student met every requirement.
func (v EligibilityVerdict) FullyEligible() bool {
	return v.Eligible && len(v.MissingRequirements) == 0
}

// ComponentScores holds the six scoring dimensions, each 0 to 100.
type ComponentScores struct {
	AcademicFit      float64 `json:"academic_fit"`
	CareerProspects  float64 `json:"career_prospects"`
	SalaryPotential  float64 `json:"salary_potential"`
	Entrepreneurship float64 `json:"entrepreneurship"`
	PersonalInterest float64 `json:"personal_interest"`
	Accessibility    float64 `json:"accessibility"`
}

// Values returns the dimensions in a fixed order, for variance and
// high-score calculations.
func (c ComponentScores) Values() []float64 {
	return []float64{
		c.AcademicFit, c.CareerProspects, c.SalaryPotential,
		c.Entrepreneurship, c.PersonalInterest, c.Accessibility,
	}
}

// ScoredRecommendation is one ranked program recommendation. Immutable after
// creation except RankingPosition, which is reassigned after the full set is
// sorted, and EnrichedAdvice, which the enrichment stage may fill in later.
type ScoredRecommendation struct {
	ProgramID       id.ProgramID `json:"program_id"`
	ProgramName     string       `json:"program_name"`
	ProgramCode     string       `json:"program_code"`
	InstitutionName string       `json:"university_name"`
	DegreeType      string       `json:"degree_type"`
	DurationYears   int          `json:"duration_years"`
	Faculty         string       `json:"faculty"`

	MatchScore      float64 `json:"match_score"`
	ConfidenceScore float64 `json:"confidence_score"`
	RankingPosition int     `json:"ranking_position"`

	ComponentScores ComponentScores    `json:"component_scores"`
	Eligibility     EligibilityVerdict `json:"eligibility"`

	Reasons             []string `json:"reasons"`
	Pros                []string `json:"pros"`
	Cons                []string `json:"cons"`
	RequirementsMet     []string `json:"requirements_met"`
	RequirementsMissing []string `json:"requirements_missing"`

	CareerProspects    []string                   `json:"career_prospects"`
	EmploymentOutlook  string                     `json:"employment_outlook"`
	SalaryExpectations *marketModel.SalaryEstimate `json:"salary_expectations,omitempty"`

	PreparationTips     []string `json:"preparation_tips"`
	RecommendedSubjects []string `json:"recommended_subjects"`
	SkillGaps           []string `json:"skill_gaps"`

	EnrichedAdvice string `json:"enriched_advice,omitempty"`
}

// Output is the full result of one recommendation run. TotalAnalyzed counts
// every candidate considered; TotalRecommended counts only the survivors.
type Output struct {
	SessionID        id.SessionID           `json:"session_id"`
	Recommendations  []ScoredRecommendation `json:"recommendations"`
	TotalAnalyzed    int                    `json:"total_analyzed"`
	TotalRecommended int                    `json:"total_recommended"`
	GeneratedAt      time.Time              `json:"generated_at"`
}
