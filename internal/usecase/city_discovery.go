package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/user/zameen-scraper/internal/entity"
	"github.com/user/zameen-scraper/internal/repository"
	"github.com/user/zameen-scraper/pkg/metrics"
)

// DiscoveryState is what the discovery loop has learned so far.
type DiscoveryState struct {
	// Counter is the index of the next candidate in the city selector.
	Counter int
	// Entries are the recorded cities in discovery order.
	Entries []entity.CityEntry
}

// CityDiscovery walks the portal's city selector until enough distinct cities are scraped.
type CityDiscovery interface {
	Discover(ctx context.Context) (*DiscoveryState, error)
}

type discoveryStep string

const (
	stepOpenSelector     discoveryStep = "open_selector"
	stepSelectCandidate  discoveryStep = "select_candidate"
	stepConfirmSelection discoveryStep = "confirm_selection"
	stepCaptureURL       discoveryStep = "capture_url"
	stepRecordCity       discoveryStep = "record_city"
)

type cityDiscovery struct {
	ui     repository.PortalUI
	cities repository.CitySetRepository
	walker PaginationWalker
	sink   repository.DatasetSink
	target int
	policy RetryPolicy
	logger *zap.Logger
}

// NewCityDiscovery creates a discovery loop that stops after target distinct cities.
func NewCityDiscovery(
	ui repository.PortalUI,
	cities repository.CitySetRepository,
	walker PaginationWalker,
	sink repository.DatasetSink,
	target int,
	policy RetryPolicy,
	logger *zap.Logger,
) CityDiscovery {
	return &cityDiscovery{
		ui:     ui,
		cities: cities,
		walker: walker,
		sink:   sink,
		target: target,
		policy: policy,
		logger: logger,
	}
}

// Discover runs iterations until target cities are recorded. Each iteration
// starts again from the home page. A failed iteration is retried according to
// the policy; when the policy gives up the state gathered so far is returned
// together with the error.
func (d *cityDiscovery) Discover(ctx context.Context) (*DiscoveryState, error) {
	state := &DiscoveryState{}
	failures := 0

	for len(state.Entries) < d.target {
		if err := ctx.Err(); err != nil {
			return state, err
		}

		err := d.iterate(ctx, state)
		if err == nil {
			failures = 0
			continue
		}

		if ctx.Err() != nil || !d.policy.retryable(err) {
			return state, err
		}
		failures++
		if failures >= d.policy.MaxAttempts {
			return state, fmt.Errorf("discovery gave up after %d consecutive failures: %w", failures, err)
		}

		metrics.DiscoveryRetries.WithLabelValues(errorKind(err)).Inc()
		d.logger.Warn("discovery iteration failed, retrying",
			zap.Int("attempt", failures),
			zap.Int("counter", state.Counter),
			zap.Error(err),
		)
		if err := d.policy.wait(ctx, failures); err != nil {
			return state, err
		}
	}

	d.logger.Info("city discovery finished", zap.Int("cities", len(state.Entries)), zap.Int("candidates_inspected", state.Counter))
	return state, nil
}

// iterate performs one pass over the selector and advances state.Counter on success.
func (d *cityDiscovery) iterate(ctx context.Context, state *DiscoveryState) error {
	if err := d.ui.OpenCitySelector(ctx); err != nil {
		return fmt.Errorf("%s: %w", stepOpenSelector, err)
	}
	candidates, err := d.ui.CityCandidates(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", stepSelectCandidate, err)
	}
	if state.Counter >= len(candidates) {
		return fmt.Errorf("%s: index %d of %d: %w", stepSelectCandidate, state.Counter, len(candidates), repository.ErrCandidatesExhausted)
	}

	name := strings.TrimSpace(candidates[state.Counter])
	if name == "" {
		d.logger.Debug("skipping unnamed city candidate", zap.Int("counter", state.Counter))
		state.Counter++
		return nil
	}
	seen, err := d.cities.Contains(ctx, name)
	if err != nil {
		return fmt.Errorf("%s: %w", stepSelectCandidate, err)
	}
	if seen {
		d.logger.Debug("skipping city already discovered", zap.String("city", name))
		state.Counter++
		return nil
	}

	if err := d.ui.SelectCity(ctx, state.Counter); err != nil {
		return fmt.Errorf("%s %q: %w", stepConfirmSelection, name, err)
	}
	if err := d.ui.ConfirmSelection(ctx); err != nil {
		return fmt.Errorf("%s %q: %w", stepConfirmSelection, name, err)
	}
	entryURL, err := d.ui.CurrentURL(ctx)
	if err != nil {
		return fmt.Errorf("%s %q: %w", stepCaptureURL, name, err)
	}

	entry := entity.CityEntry{Name: name, EntryURL: entryURL}
	d.scrape(ctx, entry)

	if err := d.cities.Add(ctx, name); err != nil {
		return fmt.Errorf("%s %q: %w", stepRecordCity, name, err)
	}
	state.Entries = append(state.Entries, entry)
	state.Counter++
	metrics.CitiesDiscovered.Set(float64(len(state.Entries)))
	d.logger.Info("city recorded", zap.String("city", name), zap.String("url", entryURL))
	return nil
}

// scrape walks the city and hands its records to the sink. Failures are logged, not returned.
func (d *cityDiscovery) scrape(ctx context.Context, entry entity.CityEntry) {
	records, err := d.walker.Walk(ctx, entry)
	if err != nil {
		metrics.CityWalkFailures.WithLabelValues(entry.Name).Inc()
		d.logger.Error("city walk failed", zap.String("city", entry.Name), zap.String("url", entry.EntryURL), zap.Error(err))
		return
	}
	if err := d.sink.Append(ctx, entry.Name, records); err != nil {
		d.logger.Error("failed to store city listings", zap.String("city", entry.Name), zap.Int("listings", len(records)), zap.Error(err))
		return
	}
	d.logger.Info("city scraped", zap.String("city", entry.Name), zap.Int("listings", len(records)))
}
