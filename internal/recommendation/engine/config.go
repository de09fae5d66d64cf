// Package engine implements eligibility evaluation, multi-criteria scoring,
// and ranking of candidate programs.
package engine

import (
	dErrors "edupath/pkg/domain-errors"
)

// ConfigVersion tags the scoring configuration shipped with this build.
const ConfigVersion = "1.0"

// Weights distributes the match score across the six dimensions. They must
// sum to 1.
type Weights struct {
	AcademicFit      float64 `json:"academic_fit"`
	CareerProspects  float64 `json:"career_prospects"`
	SalaryPotential  float64 `json:"salary_potential"`
	Entrepreneurship float64 `json:"entrepreneurship"`
	PersonalInterest float64 `json:"personal_interest"`
	Accessibility    float64 `json:"accessibility"`
}

// SalaryTier maps a minimum mid-career salary to a score.
type SalaryTier struct {
	MinSalary int     `json:"min_salary"`
	Score     float64 `json:"score"`
}

// TuitionTier maps a maximum tuition fee to a score adjustment.
type TuitionTier struct {
	MaxFee     int     `json:"max_fee"`
	Adjustment float64 `json:"adjustment"`
}

// Config is the tunable scoring configuration. It is injected at
// construction so the tables can change without touching scoring code.
type Config struct {
	Version string  `json:"version"`
	Weights Weights `json:"weights"`

	// MaxRecommendations truncates the ranked list.
	MaxRecommendations int `json:"max_recommendations"`

	// SalaryTiers score the market's mid-career estimate; StartingSalaryTiers
	// apply when only the program's own starting salary is known. Both are
	// checked top down, first tier whose MinSalary is met wins.
	SalaryTiers         []SalaryTier `json:"salary_tiers"`
	StartingSalaryTiers []SalaryTier `json:"starting_salary_tiers"`

	// TuitionTiers adjust accessibility, checked top down, first tier whose
	// MaxFee covers the program wins. Fees above every tier use
	// TuitionExpensivePenalty.
	TuitionTiers            []TuitionTier `json:"tuition_tiers"`
	TuitionExpensivePenalty float64       `json:"tuition_expensive_penalty"`

	// BusinessKeywords flag career prospects with entrepreneurship upside.
	BusinessKeywords []string `json:"business_keywords"`
}

// DefaultConfig returns the shipped scoring configuration.
func DefaultConfig() Config {
	return Config{
		Version: ConfigVersion,
		Weights: Weights{
			AcademicFit:      0.35,
			CareerProspects:  0.25,
			SalaryPotential:  0.15,
			Entrepreneurship: 0.10,
			PersonalInterest: 0.10,
			Accessibility:    0.05,
		},
		MaxRecommendations: 10,
		SalaryTiers: []SalaryTier{
			{MinSalary: 1200000, Score: 100},
			{MinSalary: 800000, Score: 80},
			{MinSalary: 500000, Score: 60},
			{MinSalary: 300000, Score: 40},
			{MinSalary: 0, Score: 20},
		},
		StartingSalaryTiers: []SalaryTier{
			{MinSalary: 800000, Score: 90},
			{MinSalary: 500000, Score: 70},
			{MinSalary: 300000, Score: 50},
			{MinSalary: 0, Score: 30},
		},
		TuitionTiers: []TuitionTier{
			{MaxFee: 50000, Adjustment: 20},
			{MaxFee: 100000, Adjustment: 10},
			{MaxFee: 200000, Adjustment: 0},
		},
		TuitionExpensivePenalty: -15,
		BusinessKeywords:        []string{"entrepreneur", "business", "manager", "consultant", "analyst"},
	}
}

// Validate checks the configuration invariants.
func (c Config) Validate() error {
	sum := c.Weights.AcademicFit + c.Weights.CareerProspects + c.Weights.SalaryPotential +
		c.Weights.Entrepreneurship + c.Weights.PersonalInterest + c.Weights.Accessibility
	if sum < 0.999 || sum > 1.001 {
		return dErrors.Newf(dErrors.CodeInvariantViolation, "scoring weights sum to %.3f, want 1", sum)
	}
	if c.MaxRecommendations <= 0 {
		return dErrors.New(dErrors.CodeInvariantViolation, "max recommendations must be positive")
	}
	if len(c.SalaryTiers) == 0 || len(c.StartingSalaryTiers) == 0 {
		return dErrors.New(dErrors.CodeInvariantViolation, "salary tiers are required")
	}
	return nil
}
