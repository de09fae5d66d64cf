// Package models defines job-market records and the insight shapes produced
// by market analysis.
package models

import (
	"time"

	id "edupath/pkg/domain"
)

// Demand levels used by sectors, skills, and career paths.
const (
	DemandLow      = "low"
	DemandMedium   = "medium"
	DemandHigh     = "high"
	DemandVeryHigh = "very_high"
)

// Growth potential buckets for a program's career outlook.
const (
	GrowthDeclining = "declining"
	GrowthStable    = "stable"
	GrowthGrowing   = "growing"
)

// SalaryBand is a min/max salary range in FCFA.
type SalaryBand struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// StartupCapital marks which capital tiers are viable for starting a business
// in a sector.
type StartupCapital struct {
	Low    bool `json:"low"`
	Medium bool `json:"medium"`
	High   bool `json:"high"`
}

// Sector is one segment of the job market.
type Sector struct {
	ID                    id.SectorID    `json:"id"`
	Name                  string         `json:"name"`
	NameFr                string         `json:"name_fr,omitempty"`
	Description           string         `json:"description,omitempty"`
	DescriptionFr         string         `json:"description_fr,omitempty"`
	GrowthRate            float64        `json:"growth_rate"`
	EmploymentSize        int            `json:"employment_size"`
	DemandLevel           string         `json:"demand_level"`
	SkillShortage         bool           `json:"skill_shortage"`
	ContributionToGDP     float64        `json:"contribution_to_gdp"`
	AverageSalaryRange    *SalaryBand    `json:"average_salary_range,omitempty"`
	EntrepreneurshipScore int            `json:"entrepreneurship_score"`
	StartupCapital        StartupCapital `json:"startup_capital_required"`
	RelatedPrograms       []string       `json:"related_programs,omitempty"`
	RequiredSkills        []string       `json:"required_skills,omitempty"`
	GovernmentPriority    bool           `json:"government_priority"`
	DevelopmentPrograms   []string       `json:"development_programs,omitempty"`
	IsActive              bool           `json:"is_active"`
	CreatedAt             time.Time      `json:"created_at"`
}

// Skill is a marketable skill tracked for recommendations.
type Skill struct {
	ID                     id.SkillID    `json:"id"`
	Name                   string        `json:"name"`
	NameFr                 string        `json:"name_fr,omitempty"`
	Category               string        `json:"category"` // technical, soft, creative
	Description            string        `json:"description,omitempty"`
	DemandLevel            string        `json:"demand_level"`
	Trend                  string        `json:"trend"` // growing, stable, declining, emerging
	DifficultyLevel        string        `json:"difficulty_level,omitempty"`
	LearningTimeMonths     int           `json:"learning_time_months,omitempty"`
	CertificationAvailable bool          `json:"certification_available"`
	SalaryImpact           float64       `json:"salary_impact"` // percent uplift
	FreelancePotential     bool          `json:"freelance_potential"`
	RemoteWorkCompatible   bool          `json:"remote_work_compatible"`
	RelatedSectors         []id.SectorID `json:"related_sectors,omitempty"`
	ToolsTechnologies      []string      `json:"tools_technologies,omitempty"`
	IsActive               bool          `json:"is_active"`
	CreatedAt              time.Time     `json:"created_at"`
}

// CareerPath describes one career trajectory within a sector.
type CareerPath struct {
	ID                   id.CareerPathID `json:"id"`
	Name                 string          `json:"name"`
	NameFr               string          `json:"name_fr,omitempty"`
	Description          string          `json:"description,omitempty"`
	SectorID             id.SectorID     `json:"sector_id"`
	EntryLevelPositions  []string        `json:"entry_level_positions,omitempty"`
	MidLevelPositions    []string        `json:"mid_level_positions,omitempty"`
	SeniorLevelPositions []string        `json:"senior_level_positions,omitempty"`
	RequiredEducation    []string        `json:"required_education,omitempty"`
	RequiredSkills       []string        `json:"required_skills,omitempty"`
	PreferredSkills      []string        `json:"preferred_skills,omitempty"`
	EntrySalaryRange     *SalaryBand     `json:"entry_salary_range,omitempty"`
	MidSalaryRange       *SalaryBand     `json:"mid_salary_range,omitempty"`
	SeniorSalaryRange    *SalaryBand     `json:"senior_salary_range,omitempty"`
	JobAvailability      string          `json:"job_availability,omitempty"`
	WorkLifeBalance      int             `json:"work_life_balance,omitempty"`
	StressLevel          int             `json:"stress_level,omitempty"`
	CreativityRequired   int             `json:"creativity_required,omitempty"`
	TravelRequired       bool            `json:"travel_required"`
	IsActive             bool            `json:"is_active"`
	CreatedAt            time.Time       `json:"created_at"`
}

// CareerProspect pairs a matched career path with its sector.
type CareerProspect struct {
	Path   CareerPath `json:"path"`
	Sector *Sector    `json:"sector,omitempty"`
}

// CareerAnalysis is the aggregated outlook for one program's career
// prospects. Defaults apply when no prospect matched a known career path.
type CareerAnalysis struct {
	Prospects             []CareerProspect `json:"prospects"`
	AverageDemand         string           `json:"average_demand"`
	GrowthPotential       string           `json:"growth_potential"`
	EntrepreneurshipScore int              `json:"entrepreneurship_score"`
}

// DefaultCareerAnalysis is the outlook used when nothing matched.
func DefaultCareerAnalysis() CareerAnalysis {
	return CareerAnalysis{
		Prospects:             []CareerProspect{},
		AverageDemand:         DemandMedium,
		GrowthPotential:       GrowthStable,
		EntrepreneurshipScore: 50,
	}
}

// SalaryEstimate is the entry/mid/senior expectation for one program, FCFA.
type SalaryEstimate struct {
	Entry  int `json:"entry"`
	Mid    int `json:"mid"`
	Senior int `json:"senior"`
}

// EntrepreneurshipOpportunity is a high-potential sector with concrete
// startup guidance attached.
type EntrepreneurshipOpportunity struct {
	Sector                 Sector   `json:"sector"`
	StartupRecommendations []string `json:"startup_recommendations"`
}

// SalaryExpectations aggregates salary data across the candidate set.
type SalaryExpectations struct {
	ProgramSalaries map[id.ProgramID]SalaryEstimate `json:"program_salaries"`
	SectorAverages  map[string]SalaryBand           `json:"sector_averages"`
	OverallRange    SalaryBand                      `json:"overall_range"`
}

// Insights is the full market-analysis output consumed by the scoring stage.
type Insights struct {
	CareerOutlook                 map[id.ProgramID]CareerAnalysis `json:"career_outlook"`
	SkillRecommendations          []Skill                         `json:"skill_recommendations"`
	SectorAnalysis                []Sector                        `json:"sector_analysis"`
	EntrepreneurshipOpportunities []EntrepreneurshipOpportunity   `json:"entrepreneurship_opportunities"`
	GovernmentPriorities          []Sector                        `json:"government_priorities"`
	SalaryExpectations            SalaryExpectations              `json:"salary_expectations"`
	AnalyzedAt                    time.Time                       `json:"analysis_timestamp"`
}

// Empty reports whether the insights carry no usable market data. The scoring
// stage falls back to neutral market scores when this is true.
func (in *Insights) Empty() bool {
	return in == nil || (len(in.CareerOutlook) == 0 && len(in.SectorAnalysis) == 0 &&
		len(in.SalaryExpectations.ProgramSalaries) == 0)
}

// SkillFilters narrows a skill listing.
type SkillFilters struct {
	Category string `json:"category,omitempty"`
	Trend    string `json:"trend,omitempty"`
}
