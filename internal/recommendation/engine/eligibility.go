package engine

import (
	"fmt"

	catalogModel "edupath/internal/catalog/models"
	recModel "edupath/internal/recommendation/models"
	studentModel "edupath/internal/student/models"
)

// Eligibility scoring constants. These are heuristic tuning values kept for
// behavioral parity; changing them changes every downstream ranking.
const (
	oLevelMetBonus           = 20
	oLevelShortPenalty       = 10
	aLevelMetBonus           = 30
	aLevelShortPenalty       = 20
	frenchAvgMetBonus        = 40
	frenchAvgPenalty         = 20
	subjectPresentBonus      = 10
	competitiveALBonus       = 15
	bacBonus                 = 20
	bepcOnlyBonus            = 10
	fullEligibilityBonus     = 25
	conditionalScoreCap      = 75
	maxMissingForConditional = 2
	subjectMatchBonusMax     = 20
)

// Evaluate checks one student against one program's entry requirements and
// returns the verdict. A verdict with 1 or 2 missing requirements is
// conditionally eligible with its score capped; 3 or more is ineligible.
func Evaluate(profile *studentModel.Profile, program catalogModel.Program) recModel.EligibilityVerdict {
	verdict := recModel.EligibilityVerdict{
		MatchReasons:        []string{},
		MissingRequirements: []string{},
		Recommendations:     []string{},
	}

	switch profile.ExamSystem {
	case studentModel.ExamSystemGCE:
		evaluateGCE(profile, program, &verdict)
	case studentModel.ExamSystemFrench:
		evaluateFrench(profile, program, &verdict)
	default:
		verdict.MissingRequirements = append(verdict.MissingRequirements, "Valid exam system required")
		return verdict
	}

	finalizeVerdict(&verdict)
	return verdict
}

func evaluateGCE(profile *studentModel.Profile, program catalogModel.Program, verdict *recModel.EligibilityVerdict) {
	if program.MinOLevelPoints > 0 {
		if profile.OLevelPoints >= program.MinOLevelPoints {
			verdict.MatchReasons = append(verdict.MatchReasons,
				fmt.Sprintf("Meets O-Level requirement (%d/%d points)", profile.OLevelPoints, program.MinOLevelPoints))
			verdict.Score += oLevelMetBonus
		} else {
			verdict.MissingRequirements = append(verdict.MissingRequirements,
				fmt.Sprintf("Need %d more O-Level points", program.MinOLevelPoints-profile.OLevelPoints))
			verdict.Score = max(0, verdict.Score-oLevelShortPenalty)
		}
	}

	if program.MinALevelPoints > 0 {
		if profile.ALevelPoints >= program.MinALevelPoints {
			verdict.MatchReasons = append(verdict.MatchReasons,
				fmt.Sprintf("Meets A-Level requirement (%d/%d points)", profile.ALevelPoints, program.MinALevelPoints))
			verdict.Score += aLevelMetBonus
		} else {
			verdict.MissingRequirements = append(verdict.MissingRequirements,
				fmt.Sprintf("Need %d more A-Level points", program.MinALevelPoints-profile.ALevelPoints))
			verdict.Score = max(0, verdict.Score-aLevelShortPenalty)
		}
	}

	subjects := profile.SubjectSet()
	checkRequiredSubjects(subjects, program.RequiredSubjects, verdict)

	if program.IsCompetitive {
		if profile.ALevelPoints > 0 {
			verdict.Score += competitiveALBonus
			verdict.MatchReasons = append(verdict.MatchReasons, "Has A-Level results for competitive program")
		} else {
			verdict.Recommendations = append(verdict.Recommendations, "Consider completing A-Levels for better chances")
		}
	}

	// Partial credit for subject overlap, applied before the verdict caps so
	// a conditional verdict never exceeds its ceiling.
	if len(program.RequiredSubjects) > 0 {
		matched := 0
		for _, required := range program.RequiredSubjects {
			if _, ok := subjects[required]; ok {
				matched++
			}
		}
		verdict.Score += float64(matched) / float64(len(program.RequiredSubjects)) * subjectMatchBonusMax
	}
}

func evaluateFrench(profile *studentModel.Profile, program catalogModel.Program, verdict *recModel.EligibilityVerdict) {
	if program.MinFrenchAverage > 0 {
		if profile.FrenchAverage >= program.MinFrenchAverage {
			verdict.MatchReasons = append(verdict.MatchReasons,
				fmt.Sprintf("Meets average requirement (%.1f/%.1f)", profile.FrenchAverage, program.MinFrenchAverage))
			verdict.Score += frenchAvgMetBonus
		} else {
			verdict.MissingRequirements = append(verdict.MissingRequirements,
				fmt.Sprintf("Need %.1f points higher average", program.MinFrenchAverage-profile.FrenchAverage))
			verdict.Score = max(0, verdict.Score-frenchAvgPenalty)
		}
	}

	checkRequiredSubjects(profile.SubjectSet(), program.RequiredSubjects, verdict)

	if len(profile.BacResults) > 0 {
		verdict.Score += bacBonus
		verdict.MatchReasons = append(verdict.MatchReasons, "Has Baccalauréat qualification")
	} else if len(profile.BEPCResults) > 0 {
		verdict.Score += bepcOnlyBonus
		verdict.MatchReasons = append(verdict.MatchReasons, "Has BEPC qualification")
	}
}

func checkRequiredSubjects(subjects map[string]struct{}, required []string, verdict *recModel.EligibilityVerdict) {
	if len(required) == 0 {
		return
	}
	var missing []string
	for _, subject := range required {
		if _, ok := subjects[subject]; ok {
			verdict.Score += subjectPresentBonus
		} else {
			missing = append(missing, subject)
		}
	}
	if len(missing) > 0 {
		for _, subject := range missing {
			verdict.MissingRequirements = append(verdict.MissingRequirements, "Required subject: "+subject)
		}
	} else {
		verdict.MatchReasons = append(verdict.MatchReasons, "All required subjects completed")
	}
}

func finalizeVerdict(verdict *recModel.EligibilityVerdict) {
	switch {
	case len(verdict.MissingRequirements) == 0:
		verdict.Eligible = true
		verdict.Score = min(100, verdict.Score+fullEligibilityBonus)
	case len(verdict.MissingRequirements) <= maxMissingForConditional:
		verdict.Eligible = true
		verdict.Score = min(conditionalScoreCap, verdict.Score)
	}
}
