package engine

import (
	"strings"

	catalogModel "edupath/internal/catalog/models"
	marketModel "edupath/internal/market/models"
	recModel "edupath/internal/recommendation/models"
	studentModel "edupath/internal/student/models"
	id "edupath/pkg/domain"
)

// score computes the six component scores for one eligible candidate.
func (e *Engine) score(
	profile *studentModel.Profile,
	candidate catalogModel.Candidate,
	insights *marketModel.Insights,
	verdict recModel.EligibilityVerdict,
) recModel.ComponentScores {
	outlook := careerOutlookFor(insights, candidate.Program.ID)
	return recModel.ComponentScores{
		AcademicFit:      academicFitScore(profile, candidate.Program, verdict),
		CareerProspects:  careerProspectsScore(candidate.Program, outlook),
		SalaryPotential:  e.salaryPotentialScore(candidate.Program, insights),
		Entrepreneurship: e.entrepreneurshipScore(candidate.Program, outlook),
		PersonalInterest: personalInterestScore(profile, candidate.Program),
		Accessibility:    e.accessibilityScore(profile, candidate),
	}
}

// careerOutlookFor returns the market outlook for a program, or the neutral
// default when market analysis was skipped or found nothing.
func careerOutlookFor(insights *marketModel.Insights, programID id.ProgramID) marketModel.CareerAnalysis {
	if insights != nil {
		if outlook, ok := insights.CareerOutlook[programID]; ok {
			return outlook
		}
	}
	return marketModel.DefaultCareerAnalysis()
}

// academicFitScore starts from the eligibility score, rewards a clean sweep
// of requirements, and adds a subject-overlap bonus.
func academicFitScore(profile *studentModel.Profile, program catalogModel.Program, verdict recModel.EligibilityVerdict) float64 {
	score := verdict.Score

	if verdict.FullyEligible() {
		score += 20
	}

	if len(program.RequiredSubjects) > 0 {
		subjects := profile.SubjectSet()
		matched := 0
		for _, required := range program.RequiredSubjects {
			if _, ok := subjects[required]; ok {
				matched++
			}
		}
		score += float64(matched) / float64(len(program.RequiredSubjects)) * 15
	}

	return min(100, score)
}

// careerProspectsScore converts market demand, growth trend, and the
// program's own employment rate into a score.
func careerProspectsScore(program catalogModel.Program, outlook marketModel.CareerAnalysis) float64 {
	score := 50.0
	switch outlook.AverageDemand {
	case marketModel.DemandLow:
		score = 25
	case marketModel.DemandMedium:
		score = 50
	case marketModel.DemandHigh:
		score = 75
	case marketModel.DemandVeryHigh:
		score = 100
	}

	switch outlook.GrowthPotential {
	case marketModel.GrowthGrowing:
		score += 20
	case marketModel.GrowthDeclining:
		score -= 20
	}

	if program.EmploymentRate > 0 {
		switch {
		case program.EmploymentRate >= 80:
			score += 15
		case program.EmploymentRate >= 60:
			score += 10
		default:
			score -= 10
		}
	}

	return clamp(score, 0, 100)
}

// salaryPotentialScore prefers the market's mid-career estimate, falls back
// to the program's own starting salary, then to neutral.
func (e *Engine) salaryPotentialScore(program catalogModel.Program, insights *marketModel.Insights) float64 {
	if insights != nil {
		if estimate, ok := insights.SalaryExpectations.ProgramSalaries[program.ID]; ok {
			for _, tier := range e.cfg.SalaryTiers {
				if estimate.Mid >= tier.MinSalary {
					return tier.Score
				}
			}
		}
	}

	if program.AverageStartingSalary > 0 {
		for _, tier := range e.cfg.StartingSalaryTiers {
			if program.AverageStartingSalary >= tier.MinSalary {
				return tier.Score
			}
		}
	}

	return 50
}

// entrepreneurshipScore takes the sector's entrepreneurship score and
// rewards business-flavored career prospects.
func (e *Engine) entrepreneurshipScore(program catalogModel.Program, outlook marketModel.CareerAnalysis) float64 {
	score := float64(outlook.EntrepreneurshipScore)

	alignment := 0
	for _, prospect := range program.CareerProspects {
		lowered := strings.ToLower(prospect)
		for _, keyword := range e.cfg.BusinessKeywords {
			if strings.Contains(lowered, keyword) {
				alignment++
			}
		}
	}
	score += float64(alignment) * 10

	return min(100, score)
}

// personalInterestScore rewards interest keywords found in the program text
// and career preferences found in prospect labels. Neutral when the student
// stated no preferences.
func personalInterestScore(profile *studentModel.Profile, program catalogModel.Program) float64 {
	if len(profile.Interests) == 0 && len(profile.CareerPreferences) == 0 {
		return 50
	}

	score := 50.0
	programText := strings.ToLower(program.Name + " " + program.Description)

	for _, interest := range profile.Interests {
		if interest != "" && strings.Contains(programText, strings.ToLower(interest)) {
			score += 15
		}
	}

	for _, preference := range profile.CareerPreferences {
		if preference == "" {
			continue
		}
		lowered := strings.ToLower(preference)
		for _, prospect := range program.CareerProspects {
			if strings.Contains(strings.ToLower(prospect), lowered) {
				score += 20
				break
			}
		}
	}

	return min(100, score)
}

// accessibilityScore weighs tuition, location, language, and admission
// hurdles.
func (e *Engine) accessibilityScore(profile *studentModel.Profile, candidate catalogModel.Candidate) float64 {
	score := 70.0
	program := candidate.Program

	if program.TuitionFeeFCFA > 0 {
		applied := false
		for _, tier := range e.cfg.TuitionTiers {
			if program.TuitionFeeFCFA <= tier.MaxFee {
				score += tier.Adjustment
				applied = true
				break
			}
		}
		if !applied {
			score += e.cfg.TuitionExpensivePenalty
		}
	}

	region := candidate.Institution.Region
	if len(profile.LocationPreferences) > 0 && region != "" {
		loweredRegion := strings.ToLower(region)
		for _, pref := range profile.LocationPreferences {
			if pref != "" && strings.Contains(loweredRegion, strings.ToLower(pref)) {
				score += 15
				break
			}
		}
	}

	language := program.LanguageInstruction
	if language == "" {
		language = "bilingual"
	}
	if language == "bilingual" || strings.Contains(language, profile.LanguagePreference) {
		score += 10
	}

	if program.IsCompetitive {
		score -= 10
	}
	if program.EntranceExamRequired {
		score -= 10
	}

	return clamp(score, 0, 100)
}

// confidenceScore expresses trust in a recommendation. Eligibility sets the
// base; scattered dimension scores erode it and strong ones reinforce it.
func confidenceScore(scores recModel.ComponentScores, verdict recModel.EligibilityVerdict) float64 {
	var base float64
	switch {
	case verdict.FullyEligible():
		base = 80
	case verdict.Eligible:
		base = 60
	default:
		base = 30
	}

	values := scores.Values()
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var variance float64
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))
	base -= min(20, variance/100)

	for _, v := range values {
		if v >= 80 {
			base += 5
		}
	}

	return clamp(base, 10, 100)
}

// buildReasoning produces the reason/pro/con lists from fixed score
// thresholds. The thresholds carry the meaning; the wording is presentation.
func buildReasoning(scores recModel.ComponentScores, verdict recModel.EligibilityVerdict, program catalogModel.Program) (reasons, pros, cons []string) {
	reasons, pros, cons = []string{}, []string{}, []string{}

	switch {
	case scores.AcademicFit >= 80:
		reasons = append(reasons, "Excellent academic fit based on your grades and subjects")
		pros = append(pros, "You meet or exceed all academic requirements")
	case scores.AcademicFit >= 60:
		reasons = append(reasons, "Good academic match with your current qualifications")
	default:
		cons = append(cons, "Academic requirements may be challenging to meet")
	}

	switch {
	case scores.CareerProspects >= 80:
		reasons = append(reasons, "Outstanding career opportunities in this field")
		pros = append(pros, "High demand for graduates in the job market")
	case scores.CareerProspects >= 60:
		reasons = append(reasons, "Good employment prospects after graduation")
	default:
		cons = append(cons, "Limited job opportunities in this field")
	}

	switch {
	case scores.SalaryPotential >= 80:
		pros = append(pros, "High earning potential throughout your career")
	case scores.SalaryPotential >= 60:
		pros = append(pros, "Good salary expectations for graduates")
	default:
		cons = append(cons, "Below-average salary expectations")
	}

	if scores.Entrepreneurship >= 70 {
		reasons = append(reasons, "Great potential for starting your own business")
		pros = append(pros, "Skills gained are valuable for entrepreneurship")
	}

	if scores.PersonalInterest >= 70 {
		reasons = append(reasons, "Aligns well with your interests and career goals")
		pros = append(pros, "You're likely to enjoy studying and working in this field")
	}

	if scores.Accessibility >= 70 {
		pros = append(pros, "Accessible program with reasonable requirements")
	} else {
		cons = append(cons, "May have accessibility challenges (cost, location, or competition)")
	}

	if program.IsCompetitive {
		cons = append(cons, "Highly competitive admission process")
	}
	if program.EntranceExamRequired {
		cons = append(cons, "Requires entrance examination")
	}
	if program.TuitionFeeFCFA <= 50000 {
		pros = append(pros, "Very affordable tuition fees")
	} else if program.TuitionFeeFCFA >= 200000 {
		cons = append(cons, "High tuition fees")
	}

	return reasons, pros, cons
}

// outlookLabels maps (demand, growth) to a human-readable employment
// outlook. Pairs not listed fall back to "Fair".
var outlookLabels = map[[2]string]string{
	{marketModel.DemandVeryHigh, marketModel.GrowthGrowing}: "Excellent",
	{marketModel.DemandHigh, marketModel.GrowthGrowing}:     "Very Good",
	{marketModel.DemandMedium, marketModel.GrowthGrowing}:   "Good",
	{marketModel.DemandVeryHigh, marketModel.GrowthStable}:  "Very Good",
	{marketModel.DemandHigh, marketModel.GrowthStable}:      "Good",
	{marketModel.DemandMedium, marketModel.GrowthStable}:    "Fair",
	{marketModel.DemandLow, marketModel.GrowthStable}:       "Limited",
	{marketModel.DemandLow, marketModel.GrowthDeclining}:    "Poor",
}

// employmentOutlook labels the program's market outlook.
func employmentOutlook(outlook marketModel.CareerAnalysis) string {
	if label, ok := outlookLabels[[2]string{outlook.AverageDemand, outlook.GrowthPotential}]; ok {
		return label
	}
	return "Fair"
}

// buildPreparation derives study guidance from the verdict and the program's
// career prospects.
func buildPreparation(program catalogModel.Program, verdict recModel.EligibilityVerdict) (tips, subjects, skills []string) {
	tips = []string{}

	for _, requirement := range verdict.MissingRequirements {
		lowered := strings.ToLower(requirement)
		switch {
		case strings.Contains(lowered, "points"):
			tips = append(tips, "Focus on improving grades in core subjects")
		case strings.Contains(lowered, "subject"):
			subject := requirement
			if idx := strings.LastIndex(requirement, ": "); idx >= 0 {
				subject = requirement[idx+2:]
			}
			subjects = append(subjects, subject)
		}
	}

	subjects = append(subjects, program.RequiredSubjects...)

	if program.IsCompetitive {
		tips = append(tips, "Prepare thoroughly for competitive entrance exams", "Consider taking preparatory courses")
	}
	if program.EntranceExamRequired {
		tips = append(tips, "Practice past entrance exam questions", "Join study groups for exam preparation")
	}

	for _, prospect := range program.CareerProspects {
		lowered := strings.ToLower(prospect)
		switch {
		case strings.Contains(lowered, "software") || strings.Contains(lowered, "computer"):
			skills = append(skills, "Programming", "Problem Solving", "Computer Skills")
		case strings.Contains(lowered, "business") || strings.Contains(lowered, "manager"):
			skills = append(skills, "Leadership", "Communication", "Business Analysis")
		case strings.Contains(lowered, "engineer"):
			skills = append(skills, "Technical Skills", "Mathematics", "Design Thinking")
		}
	}

	return tips, dedupe(subjects), dedupe(skills)
}

// dedupe removes duplicates preserving first-seen order.
func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
