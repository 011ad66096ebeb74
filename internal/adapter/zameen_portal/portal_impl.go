package zameen_portal

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/user/zameen-scraper/internal/repository"
)

const defaultPollInterval = 250 * time.Millisecond

// Config locates the city selector on the portal's home page.
type Config struct {
	HomeURL      string
	CityDropdown string
	CityButtons  string
	FindButton   string
	// WaitTimeout bounds every wait for an element or a page change.
	WaitTimeout time.Duration
	// PollInterval is how often ConfirmSelection checks for the results page. Zero means 250ms.
	PollInterval time.Duration
}

type portal struct {
	fetcher  repository.PageFetcher
	homeURL  string
	dropdown repository.Selector
	buttons  repository.Selector
	find     repository.Selector
	timeout  time.Duration
	poll     time.Duration
	logger   *zap.Logger
}

// NewPortal builds the city selector flow on top of fetcher.
func NewPortal(fetcher repository.PageFetcher, cfg Config, logger *zap.Logger) repository.PortalUI {
	poll := cfg.PollInterval
	if poll <= 0 {
		poll = defaultPollInterval
	}
	return &portal{
		fetcher:  fetcher,
		homeURL:  cfg.HomeURL,
		dropdown: repository.SelectorFor(cfg.CityDropdown),
		buttons:  repository.SelectorFor(cfg.CityButtons),
		find:     repository.SelectorFor(cfg.FindButton),
		timeout:  cfg.WaitTimeout,
		poll:     poll,
		logger:   logger,
	}
}

func (p *portal) OpenCitySelector(ctx context.Context) error {
	if err := p.fetcher.Navigate(ctx, p.homeURL); err != nil {
		return err
	}
	if err := p.fetcher.WaitUntil(ctx, repository.Condition{Target: p.dropdown, Kind: repository.Clickable}, p.timeout); err != nil {
		return err
	}
	if err := p.fetcher.Click(ctx, p.dropdown); err != nil {
		return err
	}
	return p.fetcher.WaitUntil(ctx, repository.Condition{Target: p.buttons, Kind: repository.Visible}, p.timeout)
}

func (p *portal) CityCandidates(ctx context.Context) ([]string, error) {
	names, err := p.fetcher.Texts(ctx, p.buttons)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("city candidates", zap.Strings("names", names))
	return names, nil
}

func (p *portal) SelectCity(ctx context.Context, i int) error {
	return p.fetcher.ClickNth(ctx, p.buttons, i)
}

// ConfirmSelection clicks the find button and waits until the browser has left the current page.
func (p *portal) ConfirmSelection(ctx context.Context) error {
	before, err := p.fetcher.CurrentURL(ctx)
	if err != nil {
		return err
	}
	if err := p.fetcher.WaitUntil(ctx, repository.Condition{Target: p.find, Kind: repository.Clickable}, p.timeout); err != nil {
		return err
	}
	if err := p.fetcher.Click(ctx, p.find); err != nil {
		return err
	}

	waitCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	ticker := time.NewTicker(p.poll)
	defer ticker.Stop()
	for {
		now, err := p.fetcher.CurrentURL(waitCtx)
		if err == nil && now != before {
			return nil
		}
		select {
		case <-waitCtx.Done():
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("%w: results page did not load within %s", repository.ErrTransientUI, p.timeout)
		case <-ticker.C:
		}
	}
}

func (p *portal) CurrentURL(ctx context.Context) (string, error) {
	return p.fetcher.CurrentURL(ctx)
}
