// Package models defines the student profile aggregate for both Cameroonian
// grading tracks.
//
// Invariants:
//   - ExamSystem is exactly one of gce or french
//   - GCE grades are enumerated letters; French grades are numeric 0–20
//   - Derived points/averages are recomputed on every raw-result write and
//     never stored stale
package models

import (
	"strings"
	"time"

	id "edupath/pkg/domain"
	dErrors "edupath/pkg/domain-errors"
)

// ExamSystem is the grading track a student was examined under.
type ExamSystem string

const (
	ExamSystemGCE    ExamSystem = "gce"
	ExamSystemFrench ExamSystem = "french"
)

// GCELevel distinguishes Ordinary from Advanced level results.
type GCELevel string

const (
	GCEOrdinary GCELevel = "ol"
	GCEAdvanced GCELevel = "al"
)

// Point values per grade letter. A-Levels carry a wider scale than O-Levels.
var (
	oLevelGradePoints = map[string]int{"A": 3, "B": 2, "C": 1, "D": 0, "E": 0, "F": 0}
	aLevelGradePoints = map[string]int{"A": 5, "B": 4, "C": 3, "D": 2, "E": 1, "O": 0, "F": 0}
)

// Profile is the aggregate root for one student's academic record and
// preferences, keyed by the session that created it.
type Profile struct {
	ID        id.StudentID `json:"id"`
	SessionID id.SessionID `json:"session_id"`

	Name               string     `json:"name,omitempty"`
	Email              string     `json:"email,omitempty"`
	LanguagePreference string     `json:"language_preference"`
	ExamSystem         ExamSystem `json:"exam_system"`

	// Raw results. Only the maps matching ExamSystem are populated.
	OLevelResults map[string]string  `json:"ol_results,omitempty"`
	ALevelResults map[string]string  `json:"al_results,omitempty"`
	BEPCResults   map[string]float64 `json:"bepc_results,omitempty"`
	BacResults    map[string]float64 `json:"bac_results,omitempty"`

	// Derived values, recomputed by the Set* methods.
	OLevelPoints  int     `json:"ol_points"`
	ALevelPoints  int     `json:"al_points"`
	FrenchAverage float64 `json:"french_average"`

	Interests           []string `json:"interests,omitempty"`
	CareerPreferences   []string `json:"career_preferences,omitempty"`
	LocationPreferences []string `json:"location_preferences,omitempty"`

	ProfileCompleted bool      `json:"profile_completed"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewProfile constructs a profile bound to a session.
func NewProfile(sessionID id.SessionID, system ExamSystem, now time.Time) (*Profile, error) {
	if system != ExamSystemGCE && system != ExamSystemFrench {
		return nil, dErrors.Newf(dErrors.CodeInvalidInput, "exam system must be %q or %q", ExamSystemGCE, ExamSystemFrench)
	}
	return &Profile{
		ID:                 id.NewStudentID(),
		SessionID:          sessionID,
		ExamSystem:         system,
		LanguagePreference: "en",
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

// ValidateGCEGrades checks every grade letter against the scale for the given
// level and returns the normalized (upper-cased) result map.
func ValidateGCEGrades(results map[string]string, level GCELevel) (map[string]string, error) {
	scale := oLevelGradePoints
	if level == GCEAdvanced {
		scale = aLevelGradePoints
	}

	validated := make(map[string]string, len(results))
	for subject, grade := range results {
		grade = strings.ToUpper(strings.TrimSpace(grade))
		if _, ok := scale[grade]; !ok {
			return nil, dErrors.Newf(dErrors.CodeInvalidInput,
				"invalid GCE %s grade %q for subject %q", strings.ToUpper(string(level)), grade, subject)
		}
		validated[subject] = grade
	}
	return validated, nil
}

// ValidateFrenchGrades checks every numeric grade against the 0–20 scale.
func ValidateFrenchGrades(results map[string]float64) (map[string]float64, error) {
	validated := make(map[string]float64, len(results))
	for subject, grade := range results {
		if grade < 0 || grade > 20 {
			return nil, dErrors.Newf(dErrors.CodeInvalidInput,
				"french grade must be between 0 and 20 for subject %q", subject)
		}
		validated[subject] = grade
	}
	return validated, nil
}

// SetOLevelResults validates and stores O-Level results, recomputing points.
func (p *Profile) SetOLevelResults(results map[string]string, now time.Time) error {
	validated, err := ValidateGCEGrades(results, GCEOrdinary)
	if err != nil {
		return err
	}
	p.OLevelResults = validated
	p.OLevelPoints = gcePoints(validated, oLevelGradePoints)
	p.UpdatedAt = now
	return nil
}

// SetALevelResults validates and stores A-Level results, recomputing points.
func (p *Profile) SetALevelResults(results map[string]string, now time.Time) error {
	validated, err := ValidateGCEGrades(results, GCEAdvanced)
	if err != nil {
		return err
	}
	p.ALevelResults = validated
	p.ALevelPoints = gcePoints(validated, aLevelGradePoints)
	p.UpdatedAt = now
	return nil
}

// SetBEPCResults validates and stores BEPC results.
func (p *Profile) SetBEPCResults(results map[string]float64, now time.Time) error {
	validated, err := ValidateFrenchGrades(results)
	if err != nil {
		return err
	}
	p.BEPCResults = validated
	p.UpdatedAt = now
	return nil
}

// SetBacResults validates and stores Baccalauréat results, recomputing the
// average. The average derives from Bac results only; BEPC counts toward
// subject coverage but not the average.
func (p *Profile) SetBacResults(results map[string]float64, now time.Time) error {
	validated, err := ValidateFrenchGrades(results)
	if err != nil {
		return err
	}
	p.BacResults = validated
	p.FrenchAverage = frenchAverage(validated)
	p.UpdatedAt = now
	return nil
}

func gcePoints(results map[string]string, scale map[string]int) int {
	total := 0
	for _, grade := range results {
		total += scale[grade]
	}
	return total
}

func frenchAverage(results map[string]float64) float64 {
	if len(results) == 0 {
		return 0
	}
	sum := 0.0
	for _, grade := range results {
		sum += grade
	}
	return sum / float64(len(results))
}

// SubjectSet returns the union of subject names across all result maps for
// required-subject matching.
func (p *Profile) SubjectSet() map[string]struct{} {
	subjects := make(map[string]struct{})
	for s := range p.OLevelResults {
		subjects[s] = struct{}{}
	}
	for s := range p.ALevelResults {
		subjects[s] = struct{}{}
	}
	for s := range p.BEPCResults {
		subjects[s] = struct{}{}
	}
	for s := range p.BacResults {
		subjects[s] = struct{}{}
	}
	return subjects
}

// HasSufficientData reports whether the profile carries enough results to be
// scored against the catalog.
func (p *Profile) HasSufficientData() bool {
	switch p.ExamSystem {
	case ExamSystemGCE:
		return len(p.OLevelResults) > 0 || len(p.ALevelResults) > 0
	case ExamSystemFrench:
		return len(p.BEPCResults) > 0 || len(p.BacResults) > 0
	default:
		return false
	}
}
