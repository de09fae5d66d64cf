package enrichment

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	recModel "edupath/internal/recommendation/models"
	studentModel "edupath/internal/student/models"
	id "edupath/pkg/domain"
)

// detailLimit bounds per-program generation to the top ranked entries.
const detailLimit = 3

// ContentGenerator produces text for a prompt. *Generator satisfies it; tests
// substitute fakes.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// ProgramAdvice is the generated detail for one recommended program.
type ProgramAdvice struct {
	ProgramID          id.ProgramID `json:"program_id"`
	PersonalizedAdvice string       `json:"personalized_advice"`
	StudyGuideSummary  string       `json:"study_guide_summary"`
}

// Content is the full enrichment payload attached to a session's output.
type Content struct {
	GeneralAdvice  string          `json:"general_advice"`
	StudyTips      []string        `json:"study_tips"`
	CareerPlanning string          `json:"career_planning"`
	Programs       []ProgramAdvice `json:"recommendations"`
	Fallback       bool            `json:"fallback,omitempty"`
}

// Enricher generates advisory content behind a circuit breaker. When the
// generator is absent, failing, or tripped, bundled fallback content is
// returned instead; Enrich never returns an error to the pipeline.
type Enricher struct {
	generator ContentGenerator
	cache     *Cache
	breaker   *gobreaker.CircuitBreaker[string]
	logger    *slog.Logger
}

// Option configures the Enricher.
type Option func(*Enricher)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Enricher) { e.logger = logger }
}

// WithCache sets the Redis content cache.
func WithCache(cache *Cache) Option {
	return func(e *Enricher) { e.cache = cache }
}

// New creates an enricher. A nil generator is allowed and yields fallback
// content for every request.
func New(generator ContentGenerator, opts ...Option) *Enricher {
	e := &Enricher{generator: generator}
	for _, opt := range opts {
		opt(e)
	}
	e.breaker = gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:    "gemini-enrichment",
		Timeout: 60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if e.logger != nil {
				e.logger.Warn("enrichment breaker state change",
					"breaker", name, "from", from.String(), "to", to.String())
			}
		},
	})
	return e
}

// Enrich generates advisory content for the student and their top
// recommendations. Individual generation failures fall back per section; the
// returned content is always usable.
func (e *Enricher) Enrich(ctx context.Context, profile *studentModel.Profile, recs []recModel.ScoredRecommendation) *Content {
	language := normalizeLanguage(profile.LanguagePreference)

	content := &Content{
		GeneralAdvice:  e.textSection(ctx, "general_advice", profile, language, generalAdvicePrompt(profile, language), fallbackGeneralAdvice[language]),
		CareerPlanning: e.textSection(ctx, "career_planning", profile, language, careerPlanningPrompt(profile, language), fallbackCareerPlanning[language]),
	}
	content.StudyTips = e.studyTips(ctx, profile, language)

	limit := min(detailLimit, len(recs))
	for _, rec := range recs[:limit] {
		content.Programs = append(content.Programs, e.programAdvice(ctx, profile, rec, language))
	}

	content.Fallback = e.generator == nil
	return content
}

// textSection resolves one free-text section: cache, then generator, then
// fallback.
func (e *Enricher) textSection(ctx context.Context, kind string, profile *studentModel.Profile, language, prompt, fallback string) string {
	key := Key(kind, profile, language)
	if cached := e.cache.Get(ctx, key); cached != "" {
		return cached
	}

	generated, err := e.generate(ctx, prompt)
	if err != nil {
		if e.logger != nil {
			e.logger.WarnContext(ctx, "enrichment generation failed, using fallback",
				"section", kind, "error", err.Error())
		}
		return fallback
	}
	e.cache.Set(ctx, key, generated)
	return generated
}

// studyTips generates the tip list, expecting a JSON array in the response.
func (e *Enricher) studyTips(ctx context.Context, profile *studentModel.Profile, language string) []string {
	key := Key("study_tips", profile, language)
	if cached := e.cache.Get(ctx, key); cached != "" {
		var tips []string
		if err := json.Unmarshal([]byte(cached), &tips); err == nil {
			return tips
		}
	}

	generated, err := e.generate(ctx, studyTipsPrompt(profile, language))
	if err == nil {
		if tips := extractJSONList(generated); len(tips) > 0 {
			if payload, err := json.Marshal(tips); err == nil {
				e.cache.Set(ctx, key, string(payload))
			}
			return tips
		}
	}
	return fallbackStudyTips[language]
}

// programAdvice generates the per-program detail for one recommendation.
func (e *Enricher) programAdvice(ctx context.Context, profile *studentModel.Profile, rec recModel.ScoredRecommendation, language string) ProgramAdvice {
	advice := ProgramAdvice{ProgramID: rec.ProgramID}

	key := Key("recommendation:"+rec.ProgramCode, profile, language)
	if cached := e.cache.Get(ctx, key); cached != "" {
		if err := json.Unmarshal([]byte(cached), &advice); err == nil {
			advice.ProgramID = rec.ProgramID
			return advice
		}
	}

	if generated, err := e.generate(ctx, programAdvicePrompt(rec, language)); err == nil {
		advice.PersonalizedAdvice = strings.TrimSpace(generated)
	}
	if generated, err := e.generate(ctx, studyGuidePrompt(rec, language)); err == nil {
		advice.StudyGuideSummary = strings.TrimSpace(generated)
	}

	if advice.PersonalizedAdvice == "" {
		advice.PersonalizedAdvice = fallbackProgramAdvice(rec.InstitutionName, language)
	}
	if advice.StudyGuideSummary == "" {
		advice.StudyGuideSummary = fallbackStudyGuide[language]
	}

	if payload, err := json.Marshal(advice); err == nil {
		e.cache.Set(ctx, key, string(payload))
	}
	return advice
}

// generate runs one prompt through the circuit breaker.
func (e *Enricher) generate(ctx context.Context, prompt string) (string, error) {
	if e.generator == nil {
		return "", errGeneratorUnavailable
	}
	return e.breaker.Execute(func() (string, error) {
		return e.generator.GenerateContent(ctx, prompt)
	})
}

// extractJSONList pulls the first JSON array out of a model response that
// may carry surrounding prose.
func extractJSONList(content string) []string {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start < 0 || end <= start {
		return nil
	}
	var tips []string
	if err := json.Unmarshal([]byte(content[start:end+1]), &tips); err != nil {
		return nil
	}
	return tips
}

func normalizeLanguage(pref string) string {
	if strings.HasPrefix(strings.ToLower(pref), "fr") {
		return "fr"
	}
	return "en"
}
