package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	id "edupath/pkg/domain"
	dErrors "edupath/pkg/domain-errors"
)

type ProfileSuite struct {
	suite.Suite
	now time.Time
}

func TestProfileSuite(t *testing.T) {
	suite.Run(t, new(ProfileSuite))
}

func (s *ProfileSuite) SetupTest() {
	s.now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func (s *ProfileSuite) newProfile(system ExamSystem) *Profile {
	profile, err := NewProfile(id.NewSessionID(), system, s.now)
	s.Require().NoError(err)
	return profile
}

func (s *ProfileSuite) TestNewProfile() {
	s.Run("rejects unknown exam systems", func() {
		_, err := NewProfile(id.NewSessionID(), "ib", s.now)
		s.Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("defaults the language preference to english", func() {
		profile := s.newProfile(ExamSystemGCE)
		s.Equal("en", profile.LanguagePreference)
		s.False(profile.ProfileCompleted)
	})
}

func (s *ProfileSuite) TestSetOLevelResults() {
	profile := s.newProfile(ExamSystemGCE)

	s.Run("computes points on the O-Level scale", func() {
		err := profile.SetOLevelResults(map[string]string{
			"Mathematics": "A", // 3
			"Physics":     "B", // 2
			"Chemistry":   "C", // 1
			"Biology":     "D", // 0
		}, s.now)
		s.Require().NoError(err)
		s.Equal(6, profile.OLevelPoints)
	})

	s.Run("normalizes grade casing and whitespace", func() {
		err := profile.SetOLevelResults(map[string]string{"Mathematics": " a "}, s.now)
		s.Require().NoError(err)
		s.Equal("A", profile.OLevelResults["Mathematics"])
		s.Equal(3, profile.OLevelPoints)
	})

	s.Run("rejects grades off the scale", func() {
		err := profile.SetOLevelResults(map[string]string{"Mathematics": "O"}, s.now)
		s.Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func (s *ProfileSuite) TestSetALevelResults() {
	profile := s.newProfile(ExamSystemGCE)

	s.Run("computes points on the wider A-Level scale", func() {
		err := profile.SetALevelResults(map[string]string{
			"Mathematics": "A", // 5
			"Physics":     "C", // 3
			"Chemistry":   "E", // 1
		}, s.now)
		s.Require().NoError(err)
		s.Equal(9, profile.ALevelPoints)
	})

	s.Run("accepts the O grade at A-Level only", func() {
		s.NoError(profile.SetALevelResults(map[string]string{"Physics": "O"}, s.now))
		s.Equal(0, profile.ALevelPoints)
	})
}

func (s *ProfileSuite) TestFrenchResults() {
	profile := s.newProfile(ExamSystemFrench)

	s.Run("rejects grades outside 0 to 20", func() {
		err := profile.SetBacResults(map[string]float64{"Mathématiques": 21}, s.now)
		s.Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

		err = profile.SetBEPCResults(map[string]float64{"Français": -1}, s.now)
		s.Error(err)
	})

	s.Run("averages Bac grades", func() {
		err := profile.SetBacResults(map[string]float64{
			"Mathématiques": 16,
			"Physique":      12,
			"Français":      14,
		}, s.now)
		s.Require().NoError(err)
		s.InDelta(14.0, profile.FrenchAverage, 0.001)
	})

	s.Run("BEPC results do not move the average", func() {
		s.Require().NoError(profile.SetBEPCResults(map[string]float64{"Histoire": 8}, s.now))
		s.InDelta(14.0, profile.FrenchAverage, 0.001)
	})
}

func (s *ProfileSuite) TestSubjectSet() {
	profile := s.newProfile(ExamSystemGCE)
	s.Require().NoError(profile.SetOLevelResults(map[string]string{"Mathematics": "A", "Physics": "B"}, s.now))
	s.Require().NoError(profile.SetALevelResults(map[string]string{"Mathematics": "B", "Chemistry": "C"}, s.now))

	subjects := profile.SubjectSet()
	s.Len(subjects, 3)
	s.Contains(subjects, "Mathematics")
	s.Contains(subjects, "Physics")
	s.Contains(subjects, "Chemistry")
}

func (s *ProfileSuite) TestHasSufficientData() {
	s.Run("GCE needs at least one result map", func() {
		profile := s.newProfile(ExamSystemGCE)
		s.False(profile.HasSufficientData())
		s.Require().NoError(profile.SetALevelResults(map[string]string{"Mathematics": "A"}, s.now))
		s.True(profile.HasSufficientData())
	})

	s.Run("french needs BEPC or Bac results", func() {
		profile := s.newProfile(ExamSystemFrench)
		s.False(profile.HasSufficientData())
		s.Require().NoError(profile.SetBEPCResults(map[string]float64{"Français": 12}, s.now))
		s.True(profile.HasSufficientData())
	})
}
