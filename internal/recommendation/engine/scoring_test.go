package engine

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	catalogModel "edupath/internal/catalog/models"
	marketModel "edupath/internal/market/models"
	recModel "edupath/internal/recommendation/models"
	studentModel "edupath/internal/student/models"
	id "edupath/pkg/domain"
)

type ScoringSuite struct {
	suite.Suite
	engine *Engine
}

func TestScoringSuite(t *testing.T) {
	suite.Run(t, new(ScoringSuite))
}

func (s *ScoringSuite) SetupTest() {
	var err error
	s.engine, err = New(DefaultConfig())
	s.Require().NoError(err)
}

func insightsWith(programID id.ProgramID, outlook marketModel.CareerAnalysis, estimate *marketModel.SalaryEstimate) *marketModel.Insights {
	in := &marketModel.Insights{
		CareerOutlook: map[id.ProgramID]marketModel.CareerAnalysis{programID: outlook},
		SalaryExpectations: marketModel.SalaryExpectations{
			ProgramSalaries: map[id.ProgramID]marketModel.SalaryEstimate{},
		},
	}
	if estimate != nil {
		in.SalaryExpectations.ProgramSalaries[programID] = *estimate
	}
	return in
}

// =============================================================================
// Component Scores
// =============================================================================

func (s *ScoringSuite) TestCareerProspectsScore() {
	s.Run("very high demand growing sector with strong employment", func() {
		program := catalogModel.Program{EmploymentRate: 85}
		outlook := marketModel.CareerAnalysis{
			AverageDemand:   marketModel.DemandVeryHigh,
			GrowthPotential: marketModel.GrowthGrowing,
		}
		// 100 + 20 + 15 clamps to 100.
		s.InDelta(100, careerProspectsScore(program, outlook), 0.001)
	})

	s.Run("low demand declining sector with weak employment", func() {
		program := catalogModel.Program{EmploymentRate: 40}
		outlook := marketModel.CareerAnalysis{
			AverageDemand:   marketModel.DemandLow,
			GrowthPotential: marketModel.GrowthDeclining,
		}
		// 25 - 20 - 10 = -5 clamps to 0.
		s.InDelta(0, careerProspectsScore(program, outlook), 0.001)
	})

	s.Run("neutral default outlook scores 50", func() {
		s.InDelta(50, careerProspectsScore(catalogModel.Program{}, marketModel.DefaultCareerAnalysis()), 0.001)
	})
}

func (s *ScoringSuite) TestSalaryPotentialScore() {
	programID := id.ProgramID(uuid.New())
	program := catalogModel.Program{ID: programID}

	s.Run("market mid-career estimate drives the tier", func() {
		insights := insightsWith(programID, marketModel.DefaultCareerAnalysis(),
			&marketModel.SalaryEstimate{Mid: 1300000})
		s.InDelta(100, s.engine.salaryPotentialScore(program, insights), 0.001)

		insights = insightsWith(programID, marketModel.DefaultCareerAnalysis(),
			&marketModel.SalaryEstimate{Mid: 600000})
		s.InDelta(60, s.engine.salaryPotentialScore(program, insights), 0.001)
	})

	s.Run("starting salary applies when the market is silent", func() {
		withSalary := program
		withSalary.AverageStartingSalary = 550000
		s.InDelta(70, s.engine.salaryPotentialScore(withSalary, nil), 0.001)
	})

	s.Run("no salary data at all is neutral", func() {
		s.InDelta(50, s.engine.salaryPotentialScore(program, nil), 0.001)
	})
}

func (s *ScoringSuite) TestEntrepreneurshipScore() {
	s.Run("business-flavored prospects earn alignment bonuses", func() {
		program := catalogModel.Program{
			CareerProspects: []string{"Business Manager", "IT Consultant"},
		}
		outlook := marketModel.CareerAnalysis{EntrepreneurshipScore: 60}
		// 60 + 3 keyword hits (business, manager, consultant) * 10 clamps to 100.
		s.InDelta(90, s.engine.entrepreneurshipScore(program, outlook), 0.001)
	})

	s.Run("caps at 100", func() {
		program := catalogModel.Program{
			CareerProspects: []string{"Business Manager", "Business Analyst", "Entrepreneur"},
		}
		outlook := marketModel.CareerAnalysis{EntrepreneurshipScore: 85}
		s.InDelta(100, s.engine.entrepreneurshipScore(program, outlook), 0.001)
	})
}

func (s *ScoringSuite) TestPersonalInterestScore() {
	now := s.engine.now()
	profile, err := studentModel.NewProfile(id.NewSessionID(), studentModel.ExamSystemGCE, now)
	s.Require().NoError(err)

	program := catalogModel.Program{
		Name:            "Computer Science",
		Description:     "Software engineering and computing fundamentals",
		CareerProspects: []string{"Software Developer", "Systems Analyst"},
	}

	s.Run("no stated preferences is neutral", func() {
		s.InDelta(50, personalInterestScore(profile, program), 0.001)
	})

	s.Run("interests in program text and matching preferences stack", func() {
		withPrefs := *profile
		withPrefs.Interests = []string{"computer", "software"}
		withPrefs.CareerPreferences = []string{"developer"}
		// 50 + 15 + 15 + 20 = 100.
		s.InDelta(100, personalInterestScore(&withPrefs, program), 0.001)
	})

	s.Run("each preference matches at most once", func() {
		withPrefs := *profile
		withPrefs.CareerPreferences = []string{"analyst"}
		s.InDelta(70, personalInterestScore(&withPrefs, program), 0.001)
	})
}

func (s *ScoringSuite) TestAccessibilityScore() {
	now := s.engine.now()
	profile, err := studentModel.NewProfile(id.NewSessionID(), studentModel.ExamSystemGCE, now)
	s.Require().NoError(err)
	profile.LocationPreferences = []string{"Centre"}

	s.Run("cheap bilingual local program scores high", func() {
		candidate := catalogModel.Candidate{
			Program: catalogModel.Program{
				TuitionFeeFCFA:      50000,
				LanguageInstruction: "bilingual",
			},
			Institution: catalogModel.Institution{Region: "Centre"},
		}
		// 70 + 20 tuition + 15 location + 10 language clamps to 100.
		s.InDelta(100, s.engine.accessibilityScore(profile, candidate), 0.001)
	})

	s.Run("expensive competitive exam program is penalized", func() {
		candidate := catalogModel.Candidate{
			Program: catalogModel.Program{
				TuitionFeeFCFA:       500000,
				LanguageInstruction:  "french",
				IsCompetitive:        true,
				EntranceExamRequired: true,
			},
			Institution: catalogModel.Institution{Region: "Littoral"},
		}
		// 70 - 15 expensive + 10 language - 10 competitive - 10 exam = 45.
		// "en" is a substring of "french", so the language bonus still lands.
		s.InDelta(45, s.engine.accessibilityScore(profile, candidate), 0.001)
	})

	s.Run("missing language defaults to bilingual", func() {
		candidate := catalogModel.Candidate{
			Program:     catalogModel.Program{},
			Institution: catalogModel.Institution{},
		}
		// 70 + 10 language; no tuition data, no location match.
		s.InDelta(80, s.engine.accessibilityScore(profile, candidate), 0.001)
	})
}

// =============================================================================
// Confidence
// =============================================================================

func (s *ScoringSuite) TestConfidenceScore() {
	s.Run("uniform strong scores push confidence up", func() {
		scores := recModel.ComponentScores{
			AcademicFit: 85, CareerProspects: 85, SalaryPotential: 85,
			Entrepreneurship: 85, PersonalInterest: 85, Accessibility: 85,
		}
		verdict := recModel.EligibilityVerdict{Eligible: true}
		// Base 80 (fully eligible), zero variance, +5 per dimension = 110, clamped.
		s.InDelta(100, confidenceScore(scores, verdict), 0.001)
	})

	s.Run("scattered scores erode confidence", func() {
		scores := recModel.ComponentScores{
			AcademicFit: 100, CareerProspects: 0, SalaryPotential: 100,
			Entrepreneurship: 0, PersonalInterest: 100, Accessibility: 0,
		}
		verdict := recModel.EligibilityVerdict{
			Eligible:            true,
			MissingRequirements: []string{"Required subject: Chemistry"},
		}
		// Base 60, variance penalty capped at 20, +5 for each of three >= 80.
		s.InDelta(55, confidenceScore(scores, verdict), 0.001)
	})

	s.Run("never drops below the floor", func() {
		scores := recModel.ComponentScores{
			AcademicFit: 100, CareerProspects: 0, SalaryPotential: 100,
			Entrepreneurship: 0, PersonalInterest: 0, Accessibility: 0,
		}
		verdict := recModel.EligibilityVerdict{
			MissingRequirements: []string{"a", "b", "c"},
		}
		s.GreaterOrEqual(confidenceScore(scores, verdict), 10.0)
	})
}

// =============================================================================
// Outlook and Preparation
// =============================================================================

func (s *ScoringSuite) TestEmploymentOutlook() {
	cases := []struct {
		demand, growth, want string
	}{
		{marketModel.DemandVeryHigh, marketModel.GrowthGrowing, "Excellent"},
		{marketModel.DemandHigh, marketModel.GrowthGrowing, "Very Good"},
		{marketModel.DemandVeryHigh, marketModel.GrowthStable, "Very Good"},
		{marketModel.DemandMedium, marketModel.GrowthStable, "Fair"},
		{marketModel.DemandLow, marketModel.GrowthDeclining, "Poor"},
		{marketModel.DemandHigh, marketModel.GrowthDeclining, "Fair"}, // unmapped pair
	}
	for _, tc := range cases {
		outlook := marketModel.CareerAnalysis{AverageDemand: tc.demand, GrowthPotential: tc.growth}
		s.Equal(tc.want, employmentOutlook(outlook), "%s/%s", tc.demand, tc.growth)
	}
}

func (s *ScoringSuite) TestCareerOutlookFor() {
	programID := id.ProgramID(uuid.New())

	s.Run("nil insights fall back to the neutral default", func() {
		outlook := careerOutlookFor(nil, programID)
		s.Equal(marketModel.DemandMedium, outlook.AverageDemand)
		s.Equal(marketModel.GrowthStable, outlook.GrowthPotential)
		s.Equal(50, outlook.EntrepreneurshipScore)
	})

	s.Run("known program uses its analyzed outlook", func() {
		insights := insightsWith(programID, marketModel.CareerAnalysis{
			AverageDemand:   marketModel.DemandVeryHigh,
			GrowthPotential: marketModel.GrowthGrowing,
		}, nil)
		outlook := careerOutlookFor(insights, programID)
		s.Equal(marketModel.DemandVeryHigh, outlook.AverageDemand)
	})
}

func (s *ScoringSuite) TestBuildPreparation() {
	program := catalogModel.Program{
		RequiredSubjects:     []string{"Mathematics", "Physics"},
		CareerProspects:      []string{"Software Developer", "Business Manager"},
		IsCompetitive:        true,
		EntranceExamRequired: true,
	}
	verdict := recModel.EligibilityVerdict{
		MissingRequirements: []string{
			"Need 3 more A-Level points",
			"Required subject: Chemistry",
		},
	}

	tips, subjects, skills := buildPreparation(program, verdict)

	s.Contains(tips, "Focus on improving grades in core subjects")
	s.Contains(tips, "Prepare thoroughly for competitive entrance exams")
	s.Contains(tips, "Practice past entrance exam questions")

	s.Equal([]string{"Chemistry", "Mathematics", "Physics"}, subjects)

	s.Contains(skills, "Programming")
	s.Contains(skills, "Leadership")
	// Dedupe keeps first-seen order with no repeats.
	seen := map[string]int{}
	for _, skill := range skills {
		seen[skill]++
	}
	for skill, count := range seen {
		s.Equal(1, count, "skill %q duplicated", skill)
	}
}

func (s *ScoringSuite) TestBuildReasoning() {
	program := catalogModel.Program{TuitionFeeFCFA: 30000}
	scores := recModel.ComponentScores{
		AcademicFit: 90, CareerProspects: 85, SalaryPotential: 85,
		Entrepreneurship: 75, PersonalInterest: 75, Accessibility: 90,
	}
	verdict := recModel.EligibilityVerdict{Eligible: true}

	reasons, pros, cons := buildReasoning(scores, verdict, program)

	s.Contains(reasons, "Excellent academic fit based on your grades and subjects")
	s.Contains(reasons, "Outstanding career opportunities in this field")
	s.Contains(reasons, "Great potential for starting your own business")
	s.Contains(pros, "Very affordable tuition fees")
	s.Empty(cons)
}
