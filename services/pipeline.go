package services

import (
	"time"

	"github.com/google/uuid"

	"offer-enrichment/config"
	"offer-enrichment/models"
	"offer-enrichment/utils"
)

// RunResult is the enriched table and the report of one run.
type RunResult struct {
	Offers []*models.EnrichedOffer
	Report *models.RunReport
}

// Pipeline chains the enrichment stages. Each stage takes the previous
// stage's full output and returns a new table; no stage mutates its input.
type Pipeline struct {
	cfg    *config.Config
	logger *utils.Logger

	cleaner    *Cleaner
	domains    *DomainClassifier
	clusters   *ClusterEngine
	demand     *DemandClassifier
	salary     *SalaryScorer
	popularity *PopularityScorer
}

// NewPipeline wires every stage from cfg. cfg must have passed Validate.
func NewPipeline(cfg *config.Config, logger *utils.Logger) *Pipeline {
	pool := utils.NewWorkerPool(cfg.Workers, 0)
	domains := NewDomainClassifier(cfg.DomainRules, logger, pool)
	return &Pipeline{
		cfg:        cfg,
		logger:     logger,
		cleaner:    NewCleaner(logger, pool),
		domains:    domains,
		clusters:   NewClusterEngine(cfg, domains.Categories(), logger),
		demand:     NewDemandClassifier(cfg, logger),
		salary:     NewSalaryScorer(logger, pool),
		popularity: NewPopularityScorer(logger),
	}
}

// Run enriches raw and returns one output row per input row. Any failure
// aborts the run with a *StageError.
func (p *Pipeline) Run(raw []*models.RawOffer) (*RunResult, error) {
	start := time.Now()
	report := &models.RunReport{RunID: uuid.NewString(), Offers: len(raw)}
	p.logger.Info("[pipeline] Run %s over %d offers (cluster=%s, labels=%s)",
		report.RunID, len(raw), p.cfg.ClusterAlgorithm, p.cfg.LabelPolicy)

	if len(raw) == 0 {
		p.logger.Warn("[pipeline] No offers to enrich, writing an empty table")
		return &RunResult{Offers: []*models.EnrichedOffer{}, Report: report}, nil
	}

	cleaned := p.cleaner.Clean(raw)
	tagged := p.domains.Apply(cleaned)

	clustered, clusterReport, err := p.clusters.Run(tagged)
	if err != nil {
		return nil, &StageError{Stage: StageCluster, Err: err}
	}
	report.Clusters = clusterReport

	labelled, demandReport, err := p.demand.Run(clustered)
	if err != nil {
		return nil, &StageError{Stage: StageDemand, Err: err}
	}
	report.Demand = demandReport

	scored := p.salary.Score(labelled)
	final := p.popularity.Score(scored)

	p.logger.Info("[pipeline] Run %s enriched %d offers in %s",
		report.RunID, len(final), time.Since(start).Round(time.Millisecond))
	return &RunResult{Offers: final, Report: report}, nil
}
