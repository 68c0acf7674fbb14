// Package pipeline orchestrates fetch → fingerprint → extract → persist for
// batches of sources, with per-university retention trimming.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ivywatch/internal/extract"
	"ivywatch/internal/fingerprint"
	"ivywatch/internal/model"
	"ivywatch/internal/registry"
	"ivywatch/internal/store"
	"ivywatch/internal/worker"
)

// Pipeline drives many independent scrape operations against one store.
type Pipeline struct {
	fetcher *Fetcher
	store   store.Store
	cfg     *model.Config
}

// New creates a pipeline. The gate is shared by every fetch the pipeline
// issues, across all workers.
func New(cfg *model.Config, st store.Store) *Pipeline {
	gate := worker.NewGate(cfg.HTTP.RequestDelay)
	return &Pipeline{
		fetcher: NewFetcher(cfg.HTTP, gate),
		store:   st,
		cfg:     cfg,
	}
}

// scrapeResult is the outcome of one source's fetch/extract.
type scrapeResult struct {
	source   model.Source
	snapshot *model.Snapshot
	err      error
}

func (r *scrapeResult) GetError() error { return r.err }

// scrapeJob runs one source on the worker pool.
type scrapeJob struct {
	source model.Source
	p      *Pipeline
}

func (j *scrapeJob) Execute(ctx context.Context) worker.Result {
	snap, err := j.p.scrapeOne(ctx, j.source)
	return &scrapeResult{source: j.source, snapshot: snap, err: err}
}

// scrapeOne fetches a source and builds an unsaved snapshot from it.
func (p *Pipeline) scrapeOne(ctx context.Context, src model.Source) (*model.Snapshot, error) {
	body, err := p.fetcher.Fetch(ctx, src.URL)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(extract.ForPageType(src.PageType, body))
	if err != nil {
		return nil, fmt.Errorf("encode extraction: %w", err)
	}

	return &model.Snapshot{
		University:  src.University,
		PageType:    src.PageType,
		URL:         src.URL,
		ExtractedAt: time.Now().UTC(),
		ContentHash: fingerprint.Hash(body),
		Payload:     payload,
	}, nil
}

// Run processes every source independently: a failed fetch is recorded and
// never aborts the batch. Persistence is serialized after all scrapes so
// every insert/skip decision is final before retention trims each
// university down to the configured cap. Only storage failures are fatal.
func (p *Pipeline) Run(ctx context.Context, sources []model.Source) (*model.RunReport, error) {
	report := &model.RunReport{TotalSources: len(sources)}

	pool := worker.NewPool(ctx, p.cfg.Pipeline.Concurrency)
	pool.Start()
	for _, src := range sources {
		pool.Submit(&scrapeJob{source: src, p: p})
	}
	results := pool.Wait()

	for _, r := range results {
		res := r.(*scrapeResult)
		if res.err != nil {
			report.Errors++
			continue
		}
		switch err := p.store.Insert(ctx, res.snapshot); {
		case err == nil:
			report.SavedNewRecords++
		case errors.Is(err, store.ErrDuplicate):
			report.SkippedDuplicates++
		default:
			return report, fmt.Errorf("insert snapshot for %s: %w", res.source.URL, err)
		}
	}

	if err := p.trim(ctx, registry.Universities(sources)); err != nil {
		return report, err
	}

	return report, nil
}

// RunOne rescrapes a single source on demand, outside the batch cycle.
// Retention is not applied.
func (p *Pipeline) RunOne(ctx context.Context, src model.Source) (*model.RunReport, error) {
	report := &model.RunReport{TotalSources: 1}

	snap, err := p.scrapeOne(ctx, src)
	if err != nil {
		report.Errors++
		return report, nil
	}

	switch err := p.store.Insert(ctx, snap); {
	case err == nil:
		report.SavedNewRecords++
	case errors.Is(err, store.ErrDuplicate):
		report.SkippedDuplicates++
	default:
		return report, fmt.Errorf("insert snapshot for %s: %w", src.URL, err)
	}
	return report, nil
}

// trim keeps only the newest MaxRecordsPerUniversity snapshots for each
// university, across all its page types.
func (p *Pipeline) trim(ctx context.Context, universities []string) error {
	keep := p.cfg.Retention.MaxRecordsPerUniversity
	for _, uni := range universities {
		snaps, err := p.store.ListByUniversity(ctx, uni)
		if err != nil {
			return fmt.Errorf("list snapshots for %s: %w", uni, err)
		}
		if len(snaps) <= keep {
			continue
		}
		for _, old := range snaps[keep:] {
			if err := p.store.Delete(ctx, old.ID); err != nil {
				return fmt.Errorf("delete snapshot %s: %w", old.ID, err)
			}
		}
	}
	return nil
}
