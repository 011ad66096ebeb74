package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/user/zameen-scraper/internal/entity"
	"github.com/user/zameen-scraper/internal/repository"
	"github.com/user/zameen-scraper/pkg/metrics"
	"github.com/user/zameen-scraper/pkg/utils"
)

// PaginationWalker collects the listings of one city across its results pages.
type PaginationWalker interface {
	Walk(ctx context.Context, entry entity.CityEntry) ([]entity.ListingRecord, error)
}

type paginationWalker struct {
	fetcher   repository.PageFetcher
	extractor repository.FieldExtractor
	maxPages  int
	logger    *zap.Logger
}

// NewPaginationWalker creates a walker that visits at most maxPages pages per city.
func NewPaginationWalker(
	fetcher repository.PageFetcher,
	extractor repository.FieldExtractor,
	maxPages int,
	logger *zap.Logger,
) PaginationWalker {
	return &paginationWalker{
		fetcher:   fetcher,
		extractor: extractor,
		maxPages:  maxPages,
		logger:    logger,
	}
}

// Walk visits pages 1..maxPages of entry in order and stops early at the
// first page showing the no-results sentinel. Any fetch or parse error aborts
// the walk; records gathered before it are discarded.
func (w *paginationWalker) Walk(ctx context.Context, entry entity.CityEntry) ([]entity.ListingRecord, error) {
	// Reject a malformed entry URL before touching the browser.
	if _, err := utils.PageURL(entry.EntryURL, 1); err != nil {
		return nil, err
	}

	var records []entity.ListingRecord
	for p := 1; p <= w.maxPages; p++ {
		pageURL, err := utils.PageURL(entry.EntryURL, p)
		if err != nil {
			return nil, err
		}

		log := w.logger.With(zap.String("city", entry.Name), zap.String("url", pageURL), zap.Int("page", p))
		start := time.Now()

		batch, done, err := w.fetchPage(ctx, pageURL)
		metrics.PageFetchDuration.WithLabelValues(entry.Name).Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.PagesFetchedTotal.WithLabelValues(entry.Name, "error").Inc()
			return nil, fmt.Errorf("%w: %s page %d: %w", repository.ErrPageFetch, entry.Name, p, err)
		}
		if done {
			metrics.PagesFetchedTotal.WithLabelValues(entry.Name, "no_results").Inc()
			log.Info("no more results")
			break
		}

		page := Align(batch, entry.Name)
		for field, n := range DroppedFields(batch) {
			if n > 0 {
				metrics.AlignmentDropped.WithLabelValues(field).Add(float64(n))
				log.Debug("unpaired field values dropped", zap.String("field", field), zap.Int("count", n))
			}
		}
		metrics.PagesFetchedTotal.WithLabelValues(entry.Name, "listings").Inc()
		metrics.ListingsScrapedTotal.WithLabelValues(entry.Name).Add(float64(len(page)))
		log.Info("page scraped", zap.Int("listings", len(page)))

		records = append(records, page...)
	}
	return records, nil
}

// fetchPage loads pageURL and extracts its fields. done is true when the page
// carries the no-results sentinel.
func (w *paginationWalker) fetchPage(ctx context.Context, pageURL string) (batch entity.RawFieldBatch, done bool, err error) {
	if err = w.fetcher.Navigate(ctx, pageURL); err != nil {
		return batch, false, err
	}
	markup, err := w.fetcher.CurrentDocument(ctx)
	if err != nil {
		return batch, false, err
	}
	empty, err := w.extractor.HasNoResults(markup)
	if err != nil {
		return batch, false, err
	}
	if empty {
		return batch, true, nil
	}
	batch, err = w.extractor.Extract(markup)
	return batch, false, err
}
