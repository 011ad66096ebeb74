package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/user/zameen-scraper/internal/entity"
	"github.com/user/zameen-scraper/internal/repository"
)

// previewRows is how many raw rows the report shows.
const previewRows = 10

// Report is everything the presentation layer renders after a run.
type Report struct {
	Summary entity.RunSummary
	Preview []entity.ListingRecord
	Counts  []entity.CityCount
	Ranges  []entity.PriceRangeCount
	Stats   []entity.CityStats
}

// Reporter presents a finished run.
type Reporter interface {
	Render(r *Report) error
}

// Pipeline runs discovery, cleaning and analysis once.
type Pipeline interface {
	Run(ctx context.Context) (*entity.RunSummary, error)
}

type pipeline struct {
	runID     string
	discovery CityDiscovery
	dataset   repository.DatasetRepository
	reporter  Reporter
	logger    *zap.Logger
}

// NewPipeline wires the stages of one scraping run.
func NewPipeline(
	runID string,
	discovery CityDiscovery,
	dataset repository.DatasetRepository,
	reporter Reporter,
	logger *zap.Logger,
) Pipeline {
	return &pipeline{
		runID:     runID,
		discovery: discovery,
		dataset:   dataset,
		reporter:  reporter,
		logger:    logger,
	}
}

// Run scrapes the cities, then cleans and analyses whatever the raw dataset
// holds. Discovery ending early is not fatal; the partial dataset is still processed.
func (p *pipeline) Run(ctx context.Context) (*entity.RunSummary, error) {
	summary := &entity.RunSummary{RunID: p.runID}

	state, err := p.discovery.Discover(ctx)
	if state != nil {
		summary.Cities = state.Entries
	}
	if err != nil {
		p.logger.Warn("city discovery stopped early", zap.Int("cities", len(summary.Cities)), zap.Error(err))
	}

	// Discovery may have used up the run deadline; the offline stages still run.
	ctx = context.WithoutCancel(ctx)

	raw, err := p.dataset.ReadRaw(ctx)
	if err != nil {
		return summary, fmt.Errorf("read raw dataset: %w", err)
	}
	summary.RawRows = len(raw)

	cleaned := Clean(raw)
	summary.CleanRows = len(cleaned)
	if err := p.dataset.WriteCleaned(ctx, cleaned); err != nil {
		return summary, fmt.Errorf("write cleaned dataset: %w", err)
	}
	p.logger.Info("dataset cleaned",
		zap.Int("raw_rows", summary.RawRows),
		zap.Int("clean_rows", summary.CleanRows),
		zap.Int("removed", summary.RawRows-summary.CleanRows),
	)

	rows := PriceListings(cleaned, p.logger)
	report := &Report{
		Summary: *summary,
		Preview: raw[:min(previewRows, len(raw))],
		Counts:  CountByCity(rows),
		Ranges:  RangesByCity(rows),
		Stats:   StatsByCity(rows),
	}
	if err := p.reporter.Render(report); err != nil {
		return summary, fmt.Errorf("render report: %w", err)
	}
	return summary, nil
}
