// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"time"

	"plan-recommender/internal/cache"
	"plan-recommender/internal/common/config"
	"plan-recommender/internal/common/logger"
	"plan-recommender/internal/common/metrics"
	"plan-recommender/internal/common/observability"
	"plan-recommender/internal/dataset"
	"plan-recommender/internal/engine/catalog"
	"plan-recommender/internal/engine/report"
	"plan-recommender/internal/export"
	"plan-recommender/internal/models"
	"plan-recommender/internal/notify"
)

// Indexer ships finished report rows to a search backend.
type Indexer interface {
	IndexBatch(ctx context.Context, runID string, rows []models.ReportRow) error
}

// Pipeline wires one full run: load dataset, derive the plan catalog, score
// every customer, export the reports and announce completion. Only the
// source and reporter are mandatory; cache, indexer and notifier are
// optional extras.
type Pipeline struct {
	cfg      config.Config
	source   dataset.Source
	reporter *report.Reporter
	cache    *cache.CatalogCache
	indexer  Indexer
	notifier *notify.Notifier
	obs      *observability.Observability
	logger   logger.Logger
}

type Options struct {
	Source   dataset.Source
	Reporter *report.Reporter
	Cache    *cache.CatalogCache
	Indexer  Indexer
	Notifier *notify.Notifier
	Obs      *observability.Observability
}

func New(cfg config.Config, opts Options, log logger.Logger) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		source:   opts.Source,
		reporter: opts.Reporter,
		cache:    opts.Cache,
		indexer:  opts.Indexer,
		notifier: opts.Notifier,
		obs:      opts.Obs,
		logger:   log.WithFields(map[string]interface{}{"component": "pipeline"}),
	}
}

// RunResult aggregates everything one run produced.
type RunResult struct {
	Batch    *models.BatchResult
	Best     []models.ReportRow
	Catalog  []models.PlanRecord
	RowErrs  []dataset.RowError
	Notified []notify.Result
}

// Run executes one end to end batch. Export and notification failures are
// logged but do not fail the run once scoring has succeeded.
func (p *Pipeline) Run(ctx context.Context) (*RunResult, error) {
	start := time.Now()
	defer func() {
		if p.obs != nil {
			p.obs.RecordBatchDuration(context.Background(), time.Since(start), "completed")
		}
	}()

	customers, rowErrs, err := p.source.Load(ctx)
	if err != nil {
		p.recordRun("failed")
		return nil, err
	}
	metrics.DatasetRows.Set(float64(len(customers)))
	for _, re := range rowErrs {
		p.logger.Warn("dropped unparseable dataset row", map[string]interface{}{
			"row":    re.Row,
			"column": re.Column,
			"error":  re.Err.Error(),
		})
	}

	plans := p.deriveCatalog(ctx, customers)
	metrics.CatalogPlans.Set(float64(len(plans)))

	batch, err := p.reporter.GenerateAll(ctx, customers, plans, p.cfg.Recommender.TopK)
	if err != nil {
		p.recordRun("failed")
		return nil, err
	}

	best := report.BestPerCustomer(batch.Rows)

	result := &RunResult{
		Batch:   batch,
		Best:    best,
		Catalog: plans,
		RowErrs: rowErrs,
	}

	p.exportAll(ctx, result)

	if p.notifier != nil {
		result.Notified = p.notifier.Notify(ctx, notify.BatchSummary{
			RunID:          batch.RunID,
			Source:         p.source.Name(),
			CustomersTotal: len(customers),
			CustomersScore: len(customers) - len(batch.Skipped),
			Skipped:        len(batch.Skipped),
			Rows:           len(batch.Rows),
		})
	}

	p.recordRun("success")
	return result, nil
}

func (p *Pipeline) deriveCatalog(ctx context.Context, customers []models.CustomerRecord) []models.PlanRecord {
	if p.cache == nil {
		return catalog.Build(customers)
	}

	fingerprint := cache.Fingerprint(customers)
	if plans, ok := p.cache.Get(ctx, fingerprint); ok {
		return plans
	}

	plans := catalog.Build(customers)
	p.cache.Put(ctx, fingerprint, plans)
	return plans
}

func (p *Pipeline) exportAll(ctx context.Context, result *RunResult) {
	exp := p.cfg.Export

	if exp.ReportPath != "" {
		if err := export.SaveReportCSV(exp.ReportPath, result.Batch.Rows); err != nil {
			p.logger.WithError(err).Error("report export failed", map[string]interface{}{"path": exp.ReportPath})
		}
	}
	if exp.BestPath != "" {
		if err := export.SaveReportCSV(exp.BestPath, result.Best); err != nil {
			p.logger.WithError(err).Error("best-plan export failed", map[string]interface{}{"path": exp.BestPath})
		}
	}
	if exp.CatalogPath != "" {
		if err := export.SaveCatalogCSV(exp.CatalogPath, result.Catalog); err != nil {
			p.logger.WithError(err).Error("catalog export failed", map[string]interface{}{"path": exp.CatalogPath})
		}
	}

	if p.indexer != nil {
		if err := p.indexer.IndexBatch(ctx, result.Batch.RunID, result.Batch.Rows); err != nil {
			p.logger.WithError(err).Error("report indexing failed", map[string]interface{}{
				"runId": result.Batch.RunID,
			})
		}
	}
}

func (p *Pipeline) recordRun(status string) {
	if p.obs != nil {
		p.obs.RecordBatchProcessed(context.Background(), status)
	}
}
