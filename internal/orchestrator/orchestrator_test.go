package orchestrator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	catalogModel "edupath/internal/catalog/models"
	"edupath/internal/enrichment"
	marketModel "edupath/internal/market/models"
	recModel "edupath/internal/recommendation/models"
	sessionModel "edupath/internal/session/models"
	sessionStore "edupath/internal/session/store"
	studentModel "edupath/internal/student/models"
	id "edupath/pkg/domain"
	dErrors "edupath/pkg/domain-errors"
	auditMemory "edupath/pkg/platform/audit/store/memory"
)

// ===== Fakes =====

type fakeProfiles struct {
	profile *studentModel.Profile
	err     error
}

func (f *fakeProfiles) Resolve(context.Context, id.SessionID) (*studentModel.Profile, error) {
	return f.profile, f.err
}

type fakeCatalog struct {
	candidates []catalogModel.Candidate
	err        error
}

func (f *fakeCatalog) CandidatePrograms(context.Context, catalogModel.Filters) ([]catalogModel.Candidate, error) {
	return f.candidates, f.err
}

type fakeMarket struct {
	insights *marketModel.Insights
	err      error
	called   bool
}

func (f *fakeMarket) Analyze(context.Context, []catalogModel.Candidate) (*marketModel.Insights, error) {
	f.called = true
	return f.insights, f.err
}

// fakeRecommender emits one recommendation per candidate and captures the
// insights it was handed.
type fakeRecommender struct {
	err      error
	insights *marketModel.Insights
}

func (f *fakeRecommender) Generate(_ context.Context, sessionID id.SessionID, _ *studentModel.Profile, candidates []catalogModel.Candidate, insights *marketModel.Insights) (*recModel.Output, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.insights = insights
	output := &recModel.Output{SessionID: sessionID, TotalAnalyzed: len(candidates)}
	for _, c := range candidates {
		output.Recommendations = append(output.Recommendations, recModel.ScoredRecommendation{
			ProgramID:   c.Program.ID,
			ProgramName: c.Program.Name,
		})
	}
	output.TotalRecommended = len(output.Recommendations)
	return output, nil
}

type fakeSink struct {
	err   error
	saved *recModel.Output
}

func (f *fakeSink) Save(_ context.Context, output *recModel.Output) error {
	if f.err != nil {
		return f.err
	}
	f.saved = output
	return nil
}

type fakeEnricher struct {
	content *enrichment.Content
}

func (f *fakeEnricher) Enrich(context.Context, *studentModel.Profile, []recModel.ScoredRecommendation) *enrichment.Content {
	return f.content
}

// ===== Suite =====

type OrchestratorSuite struct {
	suite.Suite
	now       time.Time
	sessionID id.SessionID
	profile   *studentModel.Profile
	sessions  *sessionStore.InMemory
	audits    *auditMemory.Store
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorSuite))
}

func (s *OrchestratorSuite) SetupTest() {
	s.now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.sessionID = id.NewSessionID()
	s.sessions = sessionStore.NewInMemory(time.Hour, sessionStore.WithClock(func() time.Time { return s.now }))
	s.audits = auditMemory.New()

	var err error
	s.profile, err = studentModel.NewProfile(s.sessionID, studentModel.ExamSystemGCE, s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.profile.SetOLevelResults(map[string]string{
		"Mathematics": "A", "Physics": "A", "Chemistry": "A",
	}, s.now))
}

func (s *OrchestratorSuite) candidate(name string) catalogModel.Candidate {
	return catalogModel.Candidate{
		Program: catalogModel.Program{
			ID:            id.ProgramID(uuid.New()),
			Code:          "CS-" + name,
			Name:          name,
			DegreeType:    "bachelor",
			DurationYears: 3,
			IsActive:      true,
		},
		Institution: catalogModel.Institution{
			ID:       id.InstitutionID(uuid.New()),
			Name:     "University of Buea",
			IsActive: true,
		},
	}
}

func (s *OrchestratorSuite) build(
	profiles ProfileResolver,
	catalog CatalogSource,
	market MarketSource,
	engine Recommender,
	opts ...Option,
) *Orchestrator {
	opts = append(opts,
		WithClock(func() time.Time { return s.now }),
		WithAuditPublisher(s.audits),
	)
	o, err := New(profiles, catalog, market, engine, s.sessions, opts...)
	s.Require().NoError(err)
	return o
}

func (s *OrchestratorSuite) auditActions() []string {
	events := s.audits.Events()
	actions := make([]string, 0, len(events))
	for _, e := range events {
		actions = append(actions, e.Action)
	}
	return actions
}

func (s *OrchestratorSuite) TestNew() {
	_, err := New(nil, &fakeCatalog{}, &fakeMarket{}, &fakeRecommender{}, s.sessions)
	s.Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
}

func (s *OrchestratorSuite) TestRunHappyPath() {
	candidates := []catalogModel.Candidate{s.candidate("Computer Science")}
	insights := &marketModel.Insights{}
	engine := &fakeRecommender{}
	advice := &enrichment.Content{
		GeneralAdvice: "stay curious",
		Programs: []enrichment.ProgramAdvice{{
			ProgramID:          candidates[0].Program.ID,
			PersonalizedAdvice: "a strong fit for your grades",
		}},
	}
	o := s.build(
		&fakeProfiles{profile: s.profile},
		&fakeCatalog{candidates: candidates},
		&fakeMarket{insights: insights},
		engine,
		WithEnricher(&fakeEnricher{content: advice}),
	)

	result, err := o.Run(context.Background(), s.sessionID, catalogModel.Filters{})
	s.Require().NoError(err)

	s.Run("session reaches completed with no degraded stages", func() {
		s.True(result.Success)
		s.Equal(sessionModel.StateCompleted, result.Session.State)
		s.Empty(result.Session.Metadata.DegradedStages)
		s.Equal(1, result.Session.Metadata.TotalAnalyzed)
		s.Equal(1, result.Session.Metadata.TotalRecommended)
	})

	s.Run("market insights are part of the result", func() {
		s.Same(insights, result.Insights)
	})

	s.Run("every stage is logged as completed", func() {
		stages := make([]string, 0, len(result.Session.Stages))
		for _, event := range result.Session.Stages {
			s.Equal(sessionModel.StageOutcomeCompleted, event.Outcome)
			stages = append(stages, event.Stage)
		}
		s.Equal([]string{StageProfile, StageCatalog, StageMarket, StageRecommend, StageEnrich}, stages)
	})

	s.Run("insights reach the recommender", func() {
		s.Same(insights, engine.insights)
	})

	s.Run("enrichment advice is attached to the matching recommendation", func() {
		s.Require().Len(result.Output.Recommendations, 1)
		s.Equal("a strong fit for your grades", result.Output.Recommendations[0].EnrichedAdvice)
		s.Same(advice, result.Enrichment)
	})

	s.Run("the stored session matches the returned one", func() {
		stored, err := o.Session(context.Background(), s.sessionID)
		s.Require().NoError(err)
		s.Equal(sessionModel.StateCompleted, stored.State)
	})

	s.Run("audit events follow the lifecycle order", func() {
		s.Equal([]string{
			"session_started",
			"stage_completed", "stage_completed", "stage_completed", "stage_completed", "stage_completed",
			"session_completed",
		}, s.auditActions())
	})
}

func (s *OrchestratorSuite) TestRunProfileFailureIsFatal() {
	cause := dErrors.New(dErrors.CodeNotFound, "profile not found for session")
	o := s.build(
		&fakeProfiles{err: cause},
		&fakeCatalog{},
		&fakeMarket{},
		&fakeRecommender{},
	)

	result, err := o.Run(context.Background(), s.sessionID, catalogModel.Filters{})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	s.Run("the failed session rides along with the error", func() {
		s.Require().NotNil(result)
		s.False(result.Success)
		s.Nil(result.Output)
		s.Equal(sessionModel.StateFailed, result.Session.State)
		s.Equal(StageProfile, result.Session.FailedStage)
	})

	stored, getErr := o.Session(context.Background(), s.sessionID)
	s.Require().NoError(getErr)
	s.Equal(sessionModel.StateFailed, stored.State)
	s.Equal(StageProfile, stored.FailedStage)
	s.Contains(s.auditActions(), "session_failed")
}

func (s *OrchestratorSuite) TestRunDegradedCatalog() {
	market := &fakeMarket{}
	o := s.build(
		&fakeProfiles{profile: s.profile},
		&fakeCatalog{err: errors.New("catalog store unavailable")},
		market,
		&fakeRecommender{},
	)

	result, err := o.Run(context.Background(), s.sessionID, catalogModel.Filters{})
	s.Require().NoError(err)

	s.Equal(sessionModel.StateCompleted, result.Session.State)
	s.Equal([]string{StageCatalog}, result.Session.Metadata.DegradedStages)
	s.Empty(result.Output.Recommendations)

	s.Run("market analysis is skipped with no candidates", func() {
		s.False(market.called)
		var detail string
		for _, event := range result.Session.Stages {
			if event.Stage == StageMarket {
				detail = event.Detail
			}
		}
		s.Equal("skipped: no candidates", detail)
	})
}

func (s *OrchestratorSuite) TestRunDegradedMarket() {
	engine := &fakeRecommender{insights: &marketModel.Insights{}}
	o := s.build(
		&fakeProfiles{profile: s.profile},
		&fakeCatalog{candidates: []catalogModel.Candidate{s.candidate("Nursing")}},
		&fakeMarket{err: errors.New("market store unavailable")},
		engine,
	)

	result, err := o.Run(context.Background(), s.sessionID, catalogModel.Filters{})
	s.Require().NoError(err)

	s.Equal(sessionModel.StateCompleted, result.Session.State)
	s.Equal([]string{StageMarket}, result.Session.Metadata.DegradedStages)
	s.Nil(engine.insights, "the recommender substitutes neutral defaults for nil insights")
	s.Nil(result.Insights, "a degraded market stage yields no insights in the result")
	s.Len(result.Output.Recommendations, 1)
	s.Contains(s.auditActions(), "stage_degraded")
}

func (s *OrchestratorSuite) TestRunRecommenderFailureIsFatal() {
	o := s.build(
		&fakeProfiles{profile: s.profile},
		&fakeCatalog{candidates: []catalogModel.Candidate{s.candidate("Law")}},
		&fakeMarket{insights: &marketModel.Insights{}},
		&fakeRecommender{err: errors.New("weights out of balance")},
	)

	result, err := o.Run(context.Background(), s.sessionID, catalogModel.Filters{})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal), "uncoded stage errors are wrapped as internal")
	s.Require().NotNil(result)
	s.False(result.Success)
	s.Equal(StageRecommend, result.Session.FailedStage)

	stored, getErr := o.Session(context.Background(), s.sessionID)
	s.Require().NoError(getErr)
	s.Equal(StageRecommend, stored.FailedStage)
}

func (s *OrchestratorSuite) TestRunSinkFailureDoesNotAbort() {
	sink := &fakeSink{err: errors.New("postgres down")}
	o := s.build(
		&fakeProfiles{profile: s.profile},
		&fakeCatalog{candidates: []catalogModel.Candidate{s.candidate("Medicine")}},
		&fakeMarket{insights: &marketModel.Insights{}},
		&fakeRecommender{},
		WithSink(sink),
	)

	result, err := o.Run(context.Background(), s.sessionID, catalogModel.Filters{})
	s.Require().NoError(err)
	s.Equal(sessionModel.StateCompleted, result.Session.State)

	var persistOutcome string
	for _, event := range result.Session.Stages {
		if event.Stage == StagePersist {
			persistOutcome = event.Outcome
		}
	}
	s.Equal(sessionModel.StageOutcomeDegraded, persistOutcome)
}

func (s *OrchestratorSuite) TestRunSinkReceivesOutput() {
	sink := &fakeSink{}
	o := s.build(
		&fakeProfiles{profile: s.profile},
		&fakeCatalog{candidates: []catalogModel.Candidate{s.candidate("Agronomy")}},
		&fakeMarket{insights: &marketModel.Insights{}},
		&fakeRecommender{},
		WithSink(sink),
	)

	result, err := o.Run(context.Background(), s.sessionID, catalogModel.Filters{})
	s.Require().NoError(err)
	s.Require().NotNil(sink.saved)
	s.Equal(result.Output.SessionID, sink.saved.SessionID)
}
