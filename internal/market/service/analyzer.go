// Package service analyzes the job market for a candidate program set. The
// market stage of a pipeline run is degradable: its failure empties the
// insights, it never aborts the run.
package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	catalogModel "edupath/internal/catalog/models"
	marketModel "edupath/internal/market/models"
	id "edupath/pkg/domain"
	dErrors "edupath/pkg/domain-errors"
)

// Store abstracts job-market persistence.
type Store interface {
	GetSector(ctx context.Context, sectorID id.SectorID) (*marketModel.Sector, error)
	ListSectors(ctx context.Context) ([]marketModel.Sector, error)
	HighDemandSectors(ctx context.Context, limit int) ([]marketModel.Sector, error)
	EntrepreneurshipSectors(ctx context.Context, minScore, limit int) ([]marketModel.Sector, error)
	GovernmentPrioritySectors(ctx context.Context) ([]marketModel.Sector, error)
	SectorsWithSalaryData(ctx context.Context) ([]marketModel.Sector, error)
	TrendingSkills(ctx context.Context, limit int) ([]marketModel.Skill, error)
	ListSkills(ctx context.Context, filters marketModel.SkillFilters) ([]marketModel.Skill, error)
	FindCareerPath(ctx context.Context, name string) (*marketModel.CareerPath, error)
	ListCareerPaths(ctx context.Context, sectorID id.SectorID) ([]marketModel.CareerPath, error)
}

const (
	highDemandLimit          = 5
	trendingSkillLimit       = 10
	entrepreneurshipMinScore = 70
	entrepreneurshipLimit    = 5
)

// demandScores converts a categorical demand level to a numeric score for
// averaging across a program's prospects.
var demandScores = map[string]float64{
	marketModel.DemandLow:      25,
	marketModel.DemandMedium:   50,
	marketModel.DemandHigh:     75,
	marketModel.DemandVeryHigh: 100,
}

// defaultSalaryTable maps career keywords to expected salary points in FCFA.
// Matching is a case-insensitive substring test against a prospect title.
var defaultSalaryTable = map[string]marketModel.SalaryEstimate{
	"Software Developer": {Entry: 300000, Mid: 800000, Senior: 1500000},
	"Engineer":           {Entry: 350000, Mid: 900000, Senior: 1800000},
	"Medical Doctor":     {Entry: 500000, Mid: 1200000, Senior: 2500000},
	"Business Manager":   {Entry: 250000, Mid: 700000, Senior: 1500000},
	"Teacher":            {Entry: 150000, Mid: 300000, Senior: 600000},
	"Lawyer":             {Entry: 300000, Mid: 800000, Senior: 2000000},
}

// fallbackSalary applies when no career prospect matched the table.
var fallbackSalary = marketModel.SalaryEstimate{Entry: 200000, Mid: 500000, Senior: 1000000}

// overallSalaryRange bounds salary expectations market-wide, FCFA.
var overallSalaryRange = marketModel.SalaryBand{Min: 150000, Max: 2000000}

// Analyzer produces market insights for a candidate program set.
type Analyzer struct {
	store       Store
	logger      *slog.Logger
	salaryTable map[string]marketModel.SalaryEstimate
	now         func() time.Time
}

// Option configures the Analyzer.
type Option func(*Analyzer)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) { a.logger = logger }
}

// WithSalaryTable overrides the career salary table.
func WithSalaryTable(table map[string]marketModel.SalaryEstimate) Option {
	return func(a *Analyzer) { a.salaryTable = table }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) { a.now = now }
}

// New creates a market analyzer.
func New(store Store, opts ...Option) (*Analyzer, error) {
	if store == nil {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "market store is required")
	}
	a := &Analyzer{store: store, salaryTable: defaultSalaryTable, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Analyze builds market insights for the candidates. Per-program career
// analysis runs sequentially against the store; the four market-wide queries
// fan out concurrently.
func (a *Analyzer) Analyze(ctx context.Context, candidates []catalogModel.Candidate) (*marketModel.Insights, error) {
	insights := &marketModel.Insights{
		CareerOutlook: make(map[id.ProgramID]marketModel.CareerAnalysis, len(candidates)),
		SalaryExpectations: marketModel.SalaryExpectations{
			ProgramSalaries: make(map[id.ProgramID]marketModel.SalaryEstimate, len(candidates)),
			SectorAverages:  make(map[string]marketModel.SalaryBand),
			OverallRange:    overallSalaryRange,
		},
		AnalyzedAt: a.now().UTC(),
	}

	for _, c := range candidates {
		if len(c.Program.CareerProspects) == 0 {
			continue
		}
		analysis, err := a.analyzeProgramCareers(ctx, c.Program.CareerProspects)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "analyze program careers")
		}
		insights.CareerOutlook[c.Program.ID] = analysis
		insights.SalaryExpectations.ProgramSalaries[c.Program.ID] = a.estimateSalary(c.Program.CareerProspects)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sectors, err := a.store.HighDemandSectors(gctx, highDemandLimit)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "high demand sectors")
		}
		insights.SectorAnalysis = sectors
		return nil
	})
	g.Go(func() error {
		skills, err := a.store.TrendingSkills(gctx, trendingSkillLimit)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "trending skills")
		}
		insights.SkillRecommendations = skills
		return nil
	})
	g.Go(func() error {
		sectors, err := a.store.EntrepreneurshipSectors(gctx, entrepreneurshipMinScore, entrepreneurshipLimit)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "entrepreneurship sectors")
		}
		opportunities := make([]marketModel.EntrepreneurshipOpportunity, 0, len(sectors))
		for _, sec := range sectors {
			opportunities = append(opportunities, marketModel.EntrepreneurshipOpportunity{
				Sector:                 sec,
				StartupRecommendations: startupRecommendations(sec),
			})
		}
		insights.EntrepreneurshipOpportunities = opportunities
		return nil
	})
	g.Go(func() error {
		sectors, err := a.store.GovernmentPrioritySectors(gctx)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "government priority sectors")
		}
		insights.GovernmentPriorities = sectors
		return nil
	})
	g.Go(func() error {
		sectors, err := a.store.SectorsWithSalaryData(gctx)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "sector salary data")
		}
		for _, sec := range sectors {
			if sec.AverageSalaryRange != nil {
				insights.SalaryExpectations.SectorAverages[sec.Name] = *sec.AverageSalaryRange
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if a.logger != nil {
		a.logger.InfoContext(ctx, "market analysis complete",
			"programs_analyzed", len(insights.CareerOutlook),
			"high_demand_sectors", len(insights.SectorAnalysis),
			"trending_skills", len(insights.SkillRecommendations),
		)
	}
	return insights, nil
}

// analyzeProgramCareers aggregates demand, growth, and entrepreneurship
// across the prospects that match a known career path. Unmatched prospects
// are ignored; if none match, the defaults stand.
func (a *Analyzer) analyzeProgramCareers(ctx context.Context, prospects []string) (marketModel.CareerAnalysis, error) {
	analysis := marketModel.DefaultCareerAnalysis()

	var (
		totalDemand           float64
		totalGrowth           float64
		totalEntrepreneurship float64
		analyzed              int
	)
	for _, name := range prospects {
		path, err := a.store.FindCareerPath(ctx, name)
		if err != nil {
			if dErrors.HasCode(err, dErrors.CodeNotFound) {
				continue
			}
			return analysis, err
		}

		prospect := marketModel.CareerProspect{Path: *path}
		sector, err := a.store.GetSector(ctx, path.SectorID)
		if err != nil && !dErrors.HasCode(err, dErrors.CodeNotFound) {
			return analysis, err
		}
		if sector != nil {
			prospect.Sector = sector

			demand, ok := demandScores[sector.DemandLevel]
			if !ok {
				demand = 50
			}
			totalDemand += demand

			if sector.GrowthRate != 0 {
				totalGrowth += clamp(sector.GrowthRate*10+50, 0, 100)
			} else {
				totalGrowth += 50
			}
			totalEntrepreneurship += float64(sector.EntrepreneurshipScore)
			analyzed++
		}
		analysis.Prospects = append(analysis.Prospects, prospect)
	}

	if analyzed > 0 {
		avgDemand := totalDemand / float64(analyzed)
		avgGrowth := totalGrowth / float64(analyzed)

		switch {
		case avgDemand >= 80:
			analysis.AverageDemand = marketModel.DemandVeryHigh
		case avgDemand >= 65:
			analysis.AverageDemand = marketModel.DemandHigh
		case avgDemand >= 35:
			analysis.AverageDemand = marketModel.DemandMedium
		default:
			analysis.AverageDemand = marketModel.DemandLow
		}

		switch {
		case avgGrowth >= 70:
			analysis.GrowthPotential = marketModel.GrowthGrowing
		case avgGrowth >= 30:
			analysis.GrowthPotential = marketModel.GrowthStable
		default:
			analysis.GrowthPotential = marketModel.GrowthDeclining
		}

		analysis.EntrepreneurshipScore = int(totalEntrepreneurship / float64(analyzed))
	}
	return analysis, nil
}

// estimateSalary averages the table rows matched by the prospects, falling
// back to a default range when nothing matches. Each prospect matches at
// most one table row.
func (a *Analyzer) estimateSalary(prospects []string) marketModel.SalaryEstimate {
	var (
		totalEntry, totalMid, totalSenior int
		matches                           int
	)
	for _, prospect := range prospects {
		lowered := strings.ToLower(prospect)
		for key, estimate := range a.salaryTable {
			if strings.Contains(lowered, strings.ToLower(key)) {
				totalEntry += estimate.Entry
				totalMid += estimate.Mid
				totalSenior += estimate.Senior
				matches++
				break
			}
		}
	}
	if matches == 0 {
		return fallbackSalary
	}
	return marketModel.SalaryEstimate{
		Entry:  totalEntry / matches,
		Mid:    totalMid / matches,
		Senior: totalSenior / matches,
	}
}

// startupRecommendations derives concrete guidance from a sector's viable
// capital tiers and entrepreneurship score.
func startupRecommendations(sector marketModel.Sector) []string {
	var recs []string
	if sector.StartupCapital.Low {
		recs = append(recs, "Consider low-capital digital services")
	}
	if sector.StartupCapital.Medium {
		recs = append(recs, "Explore medium-investment manufacturing")
	}
	if sector.StartupCapital.High {
		recs = append(recs, "Plan for high-capital infrastructure projects")
	}
	if sector.EntrepreneurshipScore >= 80 {
		recs = append(recs, "Excellent entrepreneurship potential - consider business incubators")
	}
	return recs
}

// Sectors lists active sectors.
func (a *Analyzer) Sectors(ctx context.Context) ([]marketModel.Sector, error) {
	return a.store.ListSectors(ctx)
}

// Sector returns one sector by ID.
func (a *Analyzer) Sector(ctx context.Context, sectorID id.SectorID) (*marketModel.Sector, error) {
	return a.store.GetSector(ctx, sectorID)
}

// Skills lists active skills matching the filters.
func (a *Analyzer) Skills(ctx context.Context, filters marketModel.SkillFilters) ([]marketModel.Skill, error) {
	return a.store.ListSkills(ctx, filters)
}

// CareerPaths lists active career paths, optionally sector-filtered.
func (a *Analyzer) CareerPaths(ctx context.Context, sectorID id.SectorID) ([]marketModel.CareerPath, error) {
	return a.store.ListCareerPaths(ctx, sectorID)
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
