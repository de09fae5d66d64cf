package engine

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"time"

	catalogModel "edupath/internal/catalog/models"
	marketModel "edupath/internal/market/models"
	"edupath/internal/platform/metrics"
	recModel "edupath/internal/recommendation/models"
	studentModel "edupath/internal/student/models"
	id "edupath/pkg/domain"
	dErrors "edupath/pkg/domain-errors"
)

// Engine evaluates, scores, and ranks candidate programs for a student.
type Engine struct {
	cfg     Config
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// Option configures the Engine.
type Option func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithMetrics sets the Prometheus instruments.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates a scoring engine with the given configuration.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Generate runs the full scoring pipeline: evaluate eligibility per
// candidate, drop ineligible programs, score the survivors, sort by match
// score, and keep the top N with dense 1-based ranks. An empty candidate set
// yields an empty output, not an error; ties keep catalog order because the
// sort is stable.
func (e *Engine) Generate(
	ctx context.Context,
	sessionID id.SessionID,
	profile *studentModel.Profile,
	candidates []catalogModel.Candidate,
	insights *marketModel.Insights,
) (*recModel.Output, error) {
	if profile == nil {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "student profile is required")
	}

	out := &recModel.Output{
		SessionID:       sessionID,
		Recommendations: []recModel.ScoredRecommendation{},
		TotalAnalyzed:   len(candidates),
		GeneratedAt:     e.now().UTC(),
	}

	for _, candidate := range candidates {
		select {
		case <-ctx.Done():
			return nil, dErrors.Wrap(ctx.Err(), dErrors.CodeUnavailable, "recommendation generation canceled")
		default:
		}

		verdict := Evaluate(profile, candidate.Program)
		switch {
		case verdict.FullyEligible():
			e.metrics.IncVerdict("full")
		case verdict.Eligible:
			e.metrics.IncVerdict("conditional")
		default:
			e.metrics.IncVerdict("ineligible")
		}
		if !verdict.Eligible {
			continue
		}
		out.Recommendations = append(out.Recommendations, e.recommend(profile, candidate, insights, verdict))
	}

	sort.SliceStable(out.Recommendations, func(i, j int) bool {
		return out.Recommendations[i].MatchScore > out.Recommendations[j].MatchScore
	})
	if len(out.Recommendations) > e.cfg.MaxRecommendations {
		out.Recommendations = out.Recommendations[:e.cfg.MaxRecommendations]
	}
	for i := range out.Recommendations {
		out.Recommendations[i].RankingPosition = i + 1
	}
	out.TotalRecommended = len(out.Recommendations)
	if e.metrics != nil {
		e.metrics.RecommendationsGenerated.Add(float64(out.TotalRecommended))
	}

	if e.logger != nil {
		e.logger.InfoContext(ctx, "recommendations generated",
			"session_id", sessionID.String(),
			"total_analyzed", out.TotalAnalyzed,
			"total_recommended", out.TotalRecommended,
			"config_version", e.cfg.Version,
		)
	}
	return out, nil
}

// recommend assembles one scored recommendation for an eligible candidate.
func (e *Engine) recommend(
	profile *studentModel.Profile,
	candidate catalogModel.Candidate,
	insights *marketModel.Insights,
	verdict recModel.EligibilityVerdict,
) recModel.ScoredRecommendation {
	scores := e.score(profile, candidate, insights, verdict)

	matchScore := scores.AcademicFit*e.cfg.Weights.AcademicFit +
		scores.CareerProspects*e.cfg.Weights.CareerProspects +
		scores.SalaryPotential*e.cfg.Weights.SalaryPotential +
		scores.Entrepreneurship*e.cfg.Weights.Entrepreneurship +
		scores.PersonalInterest*e.cfg.Weights.PersonalInterest +
		scores.Accessibility*e.cfg.Weights.Accessibility

	reasons, pros, cons := buildReasoning(scores, verdict, candidate.Program)
	tips, subjects, skills := buildPreparation(candidate.Program, verdict)
	outlook := careerOutlookFor(insights, candidate.Program.ID)

	rec := recModel.ScoredRecommendation{
		ProgramID:       candidate.Program.ID,
		ProgramName:     candidate.Program.Name,
		ProgramCode:     candidate.Program.Code,
		InstitutionName: candidate.Institution.Name,
		DegreeType:      candidate.Program.DegreeType,
		DurationYears:   candidate.Program.DurationYears,
		Faculty:         candidate.Program.Faculty,

		MatchScore:      round2(matchScore),
		ConfidenceScore: round2(confidenceScore(scores, verdict)),

		ComponentScores: scores,
		Eligibility:     verdict,

		Reasons:             reasons,
		Pros:                pros,
		Cons:                cons,
		RequirementsMet:     verdict.MatchReasons,
		RequirementsMissing: verdict.MissingRequirements,

		CareerProspects:   candidate.Program.CareerProspects,
		EmploymentOutlook: employmentOutlook(outlook),

		PreparationTips:     tips,
		RecommendedSubjects: subjects,
		SkillGaps:           skills,
	}

	if insights != nil {
		if estimate, ok := insights.SalaryExpectations.ProgramSalaries[candidate.Program.ID]; ok {
			rec.SalaryExpectations = &estimate
		}
	}
	return rec
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
