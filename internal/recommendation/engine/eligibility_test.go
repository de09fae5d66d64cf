package engine

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	catalogModel "edupath/internal/catalog/models"
	studentModel "edupath/internal/student/models"
	id "edupath/pkg/domain"
)

type EligibilitySuite struct {
	suite.Suite
	now time.Time
}

func TestEligibilitySuite(t *testing.T) {
	suite.Run(t, new(EligibilitySuite))
}

func (s *EligibilitySuite) SetupTest() {
	s.now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func (s *EligibilitySuite) gceProfile(ol, al map[string]string) *studentModel.Profile {
	profile, err := studentModel.NewProfile(id.NewSessionID(), studentModel.ExamSystemGCE, s.now)
	s.Require().NoError(err)
	if ol != nil {
		s.Require().NoError(profile.SetOLevelResults(ol, s.now))
	}
	if al != nil {
		s.Require().NoError(profile.SetALevelResults(al, s.now))
	}
	return profile
}

func (s *EligibilitySuite) frenchProfile(bepc, bac map[string]float64) *studentModel.Profile {
	profile, err := studentModel.NewProfile(id.NewSessionID(), studentModel.ExamSystemFrench, s.now)
	s.Require().NoError(err)
	if bepc != nil {
		s.Require().NoError(profile.SetBEPCResults(bepc, s.now))
	}
	if bac != nil {
		s.Require().NoError(profile.SetBacResults(bac, s.now))
	}
	return profile
}

// =============================================================================
// GCE Track
// =============================================================================

func (s *EligibilitySuite) TestEvaluateGCE() {
	program := catalogModel.Program{
		ID:               id.ProgramID(uuid.New()),
		Name:             "Computer Science",
		MinOLevelPoints:  9,
		MinALevelPoints:  6,
		RequiredSubjects: []string{"Mathematics", "Physics", "Chemistry"},
	}

	s.Run("meeting every requirement yields full eligibility at 100", func() {
		profile := s.gceProfile(
			map[string]string{"Mathematics": "A", "Physics": "A", "Chemistry": "A", "English": "A"},
			map[string]string{"Mathematics": "A", "Physics": "B"},
		)

		verdict := Evaluate(profile, program)
		s.True(verdict.Eligible)
		s.True(verdict.FullyEligible())
		// 20 O-Level + 30 A-Level + 30 subjects + 20 overlap + 25 full bonus, capped.
		s.InDelta(100, verdict.Score, 0.001)
		s.Empty(verdict.MissingRequirements)
		s.Contains(verdict.MatchReasons, "All required subjects completed")
	})

	s.Run("A-Level shortfall is conditionally eligible below the cap", func() {
		profile := s.gceProfile(
			map[string]string{"Mathematics": "A", "Physics": "A", "Chemistry": "A", "English": "A"},
			map[string]string{"Mathematics": "B"},
		)

		verdict := Evaluate(profile, program)
		s.True(verdict.Eligible)
		s.False(verdict.FullyEligible())
		s.Require().Len(verdict.MissingRequirements, 1)
		s.Equal("Need 2 more A-Level points", verdict.MissingRequirements[0])
		// 20 O-Level - 20 A-Level penalty + 30 subjects + 20 overlap = 50.
		s.InDelta(50, verdict.Score, 0.001)
		s.LessOrEqual(verdict.Score, 75.0)
	})

	s.Run("conditional score never exceeds the 75 ceiling", func() {
		richProgram := program
		richProgram.IsCompetitive = true
		profile := s.gceProfile(
			map[string]string{"Mathematics": "A", "Physics": "A", "Chemistry": "A", "English": "A"},
			map[string]string{"Mathematics": "A"},
		)
		// A-Level at 5 points misses the minimum of 6 but earns the
		// competitive bonus, so the raw score would exceed the ceiling.
		verdict := Evaluate(profile, richProgram)
		s.True(verdict.Eligible)
		s.False(verdict.FullyEligible())
		s.LessOrEqual(verdict.Score, 75.0)
	})

	s.Run("three or more gaps make the student ineligible", func() {
		profile := s.gceProfile(map[string]string{"History": "C"}, nil)

		verdict := Evaluate(profile, program)
		s.False(verdict.Eligible)
		s.GreaterOrEqual(len(verdict.MissingRequirements), 3)
	})

	s.Run("subject overlap earns partial credit for missed subjects", func() {
		profile := s.gceProfile(
			map[string]string{"Mathematics": "A", "Physics": "A", "English": "A"},
			map[string]string{"Mathematics": "A", "Physics": "B"},
		)

		verdict := Evaluate(profile, program)
		s.True(verdict.Eligible)
		s.Contains(verdict.MissingRequirements, "Required subject: Chemistry")
		// 20 + 30 + 20 present subjects + 2/3 of 20 overlap = 83.33, capped at 75.
		s.InDelta(75, verdict.Score, 0.001)
	})

	s.Run("competitive program without A-Levels adds a recommendation", func() {
		openProgram := catalogModel.Program{
			ID:              id.ProgramID(uuid.New()),
			MinOLevelPoints: 6,
			IsCompetitive:   true,
		}
		profile := s.gceProfile(map[string]string{"Mathematics": "A", "Physics": "A"}, nil)

		verdict := Evaluate(profile, openProgram)
		s.True(verdict.Eligible)
		s.Contains(verdict.Recommendations, "Consider completing A-Levels for better chances")
	})

	s.Run("zero thresholds impose no requirement", func() {
		openProgram := catalogModel.Program{ID: id.ProgramID(uuid.New())}
		profile := s.gceProfile(map[string]string{"Art": "C"}, nil)

		verdict := Evaluate(profile, openProgram)
		s.True(verdict.Eligible)
		s.True(verdict.FullyEligible())
	})
}

// =============================================================================
// French Track
// =============================================================================

func (s *EligibilitySuite) TestEvaluateFrench() {
	program := catalogModel.Program{
		ID:               id.ProgramID(uuid.New()),
		Name:             "Licence Informatique",
		MinFrenchAverage: 12.0,
	}

	s.Run("Bac average above the minimum is fully eligible", func() {
		profile := s.frenchProfile(nil, map[string]float64{"Maths": 15, "Physique": 13})

		verdict := Evaluate(profile, program)
		s.True(verdict.Eligible)
		s.True(verdict.FullyEligible())
		// 40 average + 20 Bac + 25 full bonus = 85.
		s.InDelta(85, verdict.Score, 0.001)
		s.Contains(verdict.MatchReasons, "Has Baccalauréat qualification")
	})

	s.Run("average shortfall is conditional with the penalty applied", func() {
		profile := s.frenchProfile(nil, map[string]float64{"Maths": 10, "Physique": 10})

		verdict := Evaluate(profile, program)
		s.True(verdict.Eligible)
		s.False(verdict.FullyEligible())
		s.Require().Len(verdict.MissingRequirements, 1)
		s.Equal("Need 2.0 points higher average", verdict.MissingRequirements[0])
		// max(0, 0-20) + 20 Bac = 20.
		s.InDelta(20, verdict.Score, 0.001)
	})

	s.Run("BEPC-only students earn the smaller qualification bonus", func() {
		openProgram := catalogModel.Program{ID: id.ProgramID(uuid.New())}
		profile := s.frenchProfile(map[string]float64{"Maths": 14}, nil)

		verdict := Evaluate(profile, openProgram)
		s.True(verdict.Eligible)
		s.Contains(verdict.MatchReasons, "Has BEPC qualification")
		// 10 BEPC + 25 full bonus = 35.
		s.InDelta(35, verdict.Score, 0.001)
	})
}

// =============================================================================
// Guard Rails
// =============================================================================

func (s *EligibilitySuite) TestEvaluateUnknownSystem() {
	profile := &studentModel.Profile{ExamSystem: "wassce"}
	verdict := Evaluate(profile, catalogModel.Program{ID: id.ProgramID(uuid.New())})
	s.False(verdict.Eligible)
	s.Equal([]string{"Valid exam system required"}, verdict.MissingRequirements)
}
