package orchestrator

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	catalogModel "edupath/internal/catalog/models"
	"edupath/internal/enrichment"
	marketModel "edupath/internal/market/models"
	"edupath/internal/platform/metrics"
	recModel "edupath/internal/recommendation/models"
	sessionModel "edupath/internal/session/models"
	studentModel "edupath/internal/student/models"
	id "edupath/pkg/domain"
	dErrors "edupath/pkg/domain-errors"
	"edupath/pkg/platform/audit"
)

// Stage names recorded in session logs, metrics, and audit events.
const (
	StageProfile   = "profile"
	StageCatalog   = "catalog"
	StageMarket    = "market"
	StageRecommend = "recommend"
	StagePersist   = "persist"
	StageEnrich    = "enrich"
)

const defaultStageTimeout = 30 * time.Second

// Result is the outcome of one pipeline run, successful or failed. Failed
// runs carry only the session record, whose FailedStage and stage log name
// what went wrong; Insights is nil when the market stage degraded or was
// skipped.
type Result struct {
	Success    bool                  `json:"success"`
	Session    *sessionModel.Session `json:"session"`
	Output     *recModel.Output      `json:"output,omitempty"`
	Insights   *marketModel.Insights `json:"market_insights,omitempty"`
	Enrichment *enrichment.Content   `json:"enrichment,omitempty"`
}

// Orchestrator runs the pipeline stages in order. Profile resolution and
// recommendation generation are fatal; catalog, market, persistence, and
// enrichment degrade to empty or neutral values so the run continues.
type Orchestrator struct {
	profiles ProfileResolver
	catalog  CatalogSource
	market   MarketSource
	engine   Recommender
	sink     RecommendationSink
	enricher Enricher
	sessions SessionStore

	publisher    audit.Publisher
	logger       *slog.Logger
	metrics      *metrics.Metrics
	tracer       trace.Tracer
	stageTimeout time.Duration
	now          func() time.Time
}

// Option configures the Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) { o.logger = logger }
}

// WithMetrics sets the Prometheus instruments.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

// WithAuditPublisher sets the lifecycle event publisher.
func WithAuditPublisher(p audit.Publisher) Option {
	return func(o *Orchestrator) { o.publisher = p }
}

// WithEnricher enables the optional enrichment stage.
func WithEnricher(e Enricher) Option {
	return func(o *Orchestrator) { o.enricher = e }
}

// WithSink enables best-effort persistence of outputs.
func WithSink(s RecommendationSink) Option {
	return func(o *Orchestrator) { o.sink = s }
}

// WithStageTimeout caps each stage's wall time.
func WithStageTimeout(d time.Duration) Option {
	return func(o *Orchestrator) { o.stageTimeout = d }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// New creates an orchestrator. Profile resolver, catalog, market, engine,
// and session store are mandatory.
func New(
	profiles ProfileResolver,
	catalog CatalogSource,
	market MarketSource,
	engine Recommender,
	sessions SessionStore,
	opts ...Option,
) (*Orchestrator, error) {
	if profiles == nil || catalog == nil || market == nil || engine == nil || sessions == nil {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "orchestrator dependencies are incomplete")
	}
	o := &Orchestrator{
		profiles:     profiles,
		catalog:      catalog,
		market:       market,
		engine:       engine,
		sessions:     sessions,
		tracer:       otel.Tracer("edupath/orchestrator"),
		stageTimeout: defaultStageTimeout,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// Run executes the full pipeline for a session. The returned error is
// non-nil only for fatal stage failures; degraded runs return a completed
// session whose stage log names the degraded stages.
func (o *Orchestrator) Run(ctx context.Context, sessionID id.SessionID, filters catalogModel.Filters) (*Result, error) {
	ctx, span := o.tracer.Start(ctx, "pipeline.run",
		trace.WithAttributes(attribute.String("session_id", sessionID.String())))
	defer span.End()

	session := sessionModel.NewSession(sessionID, o.now().UTC())
	o.persistSession(ctx, session)
	o.emit(ctx, audit.Event{SessionID: sessionID, Action: audit.ActionSessionStarted})
	if o.metrics != nil {
		o.metrics.PipelinesStarted.Inc()
	}

	// Stage 1: profile resolution. Fatal.
	profile, err := resolveStage(o, ctx, session, StageProfile, sessionModel.StateProfileResolved,
		func(sctx context.Context) (*studentModel.Profile, error) {
			return o.profiles.Resolve(sctx, sessionID)
		})
	if err != nil {
		return &Result{Session: session}, o.fail(ctx, session, StageProfile, err)
	}

	// Stage 2: catalog fetch. Degraded runs continue with zero candidates,
	// which later yields zero recommendations, not an error.
	candidates, err := resolveStage(o, ctx, session, StageCatalog, sessionModel.StateProgramsFetched,
		func(sctx context.Context) ([]catalogModel.Candidate, error) {
			return o.catalog.CandidatePrograms(sctx, filters)
		})
	if err != nil {
		candidates = nil
		o.degrade(ctx, session, StageCatalog, sessionModel.StateProgramsFetched, err)
	}

	// Stage 3: market analysis. Degraded runs continue with nil insights;
	// the engine substitutes neutral defaults.
	var insights *marketModel.Insights
	if len(candidates) > 0 {
		insights, err = resolveStage(o, ctx, session, StageMarket, sessionModel.StateMarketAnalyzed,
			func(sctx context.Context) (*marketModel.Insights, error) {
				return o.market.Analyze(sctx, candidates)
			})
		if err != nil {
			insights = nil
			o.degrade(ctx, session, StageMarket, sessionModel.StateMarketAnalyzed, err)
		}
	} else {
		o.advance(ctx, session, sessionModel.StateMarketAnalyzed)
		session.RecordStage(sessionModel.StageEvent{
			Stage: StageMarket, Outcome: sessionModel.StageOutcomeCompleted,
			Detail: "skipped: no candidates", At: o.now().UTC(),
		})
	}

	// Stage 4: recommendation generation. Fatal.
	output, err := resolveStage(o, ctx, session, StageRecommend, sessionModel.StateRecommended,
		func(sctx context.Context) (*recModel.Output, error) {
			return o.engine.Generate(sctx, sessionID, profile, candidates, insights)
		})
	if err != nil {
		return &Result{Session: session}, o.fail(ctx, session, StageRecommend, err)
	}

	// Best-effort persistence of the scored output.
	if o.sink != nil {
		if err := o.sink.Save(ctx, output); err != nil {
			session.RecordStage(sessionModel.StageEvent{
				Stage: StagePersist, Outcome: sessionModel.StageOutcomeDegraded,
				Detail: err.Error(), At: o.now().UTC(),
			})
			o.metrics.IncDegraded(StagePersist)
			if o.logger != nil {
				o.logger.WarnContext(ctx, "failed to persist recommendations",
					"session_id", sessionID.String(), "error", err.Error())
			}
		}
	}

	// Stage 5: enrichment. Optional and never fatal.
	var enriched *enrichment.Content
	if o.enricher != nil {
		enriched, _ = resolveStage(o, ctx, session, StageEnrich, sessionModel.StateEnriched,
			func(sctx context.Context) (*enrichment.Content, error) {
				return o.enricher.Enrich(sctx, profile, output.Recommendations), nil
			})
		attachAdvice(output, enriched)
	}

	session.Metadata.TotalAnalyzed = output.TotalAnalyzed
	session.Metadata.TotalRecommended = output.TotalRecommended
	if err := session.AdvanceTo(sessionModel.StateCompleted, o.now().UTC()); err != nil {
		return &Result{Session: session}, err
	}
	o.persistSession(ctx, session)
	o.emit(ctx, audit.Event{SessionID: sessionID, Action: audit.ActionSessionCompleted})
	if o.metrics != nil {
		o.metrics.PipelinesCompleted.Inc()
	}
	if o.logger != nil {
		o.logger.InfoContext(ctx, "pipeline completed",
			"session_id", sessionID.String(),
			"total_analyzed", output.TotalAnalyzed,
			"total_recommended", output.TotalRecommended,
			"degraded_stages", session.Metadata.DegradedStages,
		)
	}
	return &Result{
		Success:    true,
		Session:    session,
		Output:     output,
		Insights:   insights,
		Enrichment: enriched,
	}, nil
}

// Session returns the stored session record.
func (o *Orchestrator) Session(ctx context.Context, sessionID id.SessionID) (*sessionModel.Session, error) {
	return o.sessions.Get(ctx, sessionID)
}

// resolveStage runs one stage under its own span and timeout, records the
// outcome on success, and returns the stage error untouched so the caller
// decides between fatal and degraded handling.
func resolveStage[T any](
	o *Orchestrator,
	ctx context.Context,
	session *sessionModel.Session,
	stage string,
	next sessionModel.State,
	fn func(context.Context) (T, error),
) (T, error) {
	sctx, cancel := context.WithTimeout(ctx, o.stageTimeout)
	defer cancel()

	sctx, span := o.tracer.Start(sctx, "pipeline."+stage)
	defer span.End()

	start := o.now()
	result, err := fn(sctx)
	elapsed := o.now().Sub(start)
	o.metrics.ObserveStage(stage, elapsed)
	if err != nil {
		span.RecordError(err)
		return result, err
	}

	o.advance(ctx, session, next)
	session.RecordStage(sessionModel.StageEvent{
		Stage: stage, Outcome: sessionModel.StageOutcomeCompleted,
		Duration: elapsed, At: o.now().UTC(),
	})
	o.persistSession(ctx, session)
	o.emit(ctx, audit.Event{SessionID: session.ID, Action: audit.ActionStageCompleted, Stage: stage})
	return result, nil
}

// degrade records a non-fatal stage failure and moves the session forward
// anyway.
func (o *Orchestrator) degrade(ctx context.Context, session *sessionModel.Session, stage string, next sessionModel.State, err error) {
	o.advance(ctx, session, next)
	session.RecordStage(sessionModel.StageEvent{
		Stage: stage, Outcome: sessionModel.StageOutcomeDegraded,
		Detail: err.Error(), At: o.now().UTC(),
	})
	o.persistSession(ctx, session)
	o.metrics.IncDegraded(stage)
	o.emit(ctx, audit.Event{SessionID: session.ID, Action: audit.ActionStageDegraded, Stage: stage, Reason: err.Error()})
	if o.logger != nil {
		o.logger.WarnContext(ctx, "pipeline stage degraded",
			"session_id", session.ID.String(), "stage", stage, "error", err.Error())
	}
}

// fail moves the session to failed, records the failing stage, and returns
// the fatal error wrapped for the caller.
func (o *Orchestrator) fail(ctx context.Context, session *sessionModel.Session, stage string, err error) error {
	session.RecordStage(sessionModel.StageEvent{
		Stage: stage, Outcome: sessionModel.StageOutcomeFailed,
		Detail: err.Error(), At: o.now().UTC(),
	})
	session.Fail(stage, err, o.now().UTC())
	o.persistSession(ctx, session)
	o.emit(ctx, audit.Event{SessionID: session.ID, Action: audit.ActionSessionFailed, Stage: stage, Reason: err.Error()})
	if o.metrics != nil {
		o.metrics.PipelinesFailed.Inc()
	}
	if o.logger != nil {
		o.logger.ErrorContext(ctx, "pipeline failed",
			"session_id", session.ID.String(), "stage", stage, "error", err.Error())
	}
	var coded *dErrors.Error
	if errors.As(err, &coded) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, stage+" stage failed")
}

// advance moves the session state forward, tolerating repeats when a
// degraded predecessor already advanced it.
func (o *Orchestrator) advance(ctx context.Context, session *sessionModel.Session, next sessionModel.State) {
	if err := session.AdvanceTo(next, o.now().UTC()); err != nil {
		if o.logger != nil {
			o.logger.WarnContext(ctx, "session transition rejected",
				"session_id", session.ID.String(), "error", err.Error())
		}
	}
}

// persistSession stores the session, logging on failure. Session storage
// problems never abort a run.
func (o *Orchestrator) persistSession(ctx context.Context, session *sessionModel.Session) {
	if err := o.sessions.Put(ctx, session); err != nil && o.logger != nil {
		o.logger.WarnContext(ctx, "failed to persist session",
			"session_id", session.ID.String(), "error", err.Error())
	}
}

// emit publishes one audit event, best effort.
func (o *Orchestrator) emit(ctx context.Context, event audit.Event) {
	if o.publisher == nil {
		return
	}
	event.Timestamp = o.now().UTC()
	if err := o.publisher.Emit(ctx, event); err != nil && o.logger != nil {
		o.logger.WarnContext(ctx, "failed to emit audit event",
			"session_id", event.SessionID.String(), "action", event.Action, "error", err.Error())
	}
}

// attachAdvice copies per-program enrichment onto the matching
// recommendations.
func attachAdvice(output *recModel.Output, content *enrichment.Content) {
	if content == nil {
		return
	}
	byProgram := make(map[id.ProgramID]string, len(content.Programs))
	for _, advice := range content.Programs {
		byProgram[advice.ProgramID] = advice.PersonalizedAdvice
	}
	for i := range output.Recommendations {
		if advice, ok := byProgram[output.Recommendations[i].ProgramID]; ok {
			output.Recommendations[i].EnrichedAdvice = advice
		}
	}
}
