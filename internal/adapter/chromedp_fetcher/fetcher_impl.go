package chromedp_fetcher

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/user/zameen-scraper/internal/repository"
)

// Options configures the browser process.
type Options struct {
	Headless    bool
	UserAgent   string
	// ProxyServer is passed to Chrome as --proxy-server when set, e.g. "http://proxy:8080".
	ProxyServer string
	Logger      *zap.Logger
}

// ChromedpFetcher drives a single Chrome tab. Calls must not overlap.
type ChromedpFetcher struct {
	tabCtx      context.Context
	tabCancel   context.CancelFunc
	allocCancel context.CancelFunc
	logger      *zap.Logger
	closeOnce   sync.Once
	closeErr    error
}

// NewChromedpFetcher launches Chrome and opens a blank tab. A browser that
// cannot be started is reported immediately.
func NewChromedpFetcher(opts Options) (repository.PageFetcher, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(opts.UserAgent))
	}
	if opts.ProxyServer != "" {
		allocOpts = append(allocOpts, chromedp.ProxyServer(opts.ProxyServer))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)

	tabCtx, tabCancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(logger.Sugar().Debugf))
	// An empty Run starts the browser.
	if err := chromedp.Run(tabCtx); err != nil {
		tabCancel()
		allocCancel()
		return nil, fmt.Errorf("start browser: %w", err)
	}

	return &ChromedpFetcher{
		tabCtx:      tabCtx,
		tabCancel:   tabCancel,
		allocCancel: allocCancel,
		logger:      logger,
	}, nil
}

// run executes actions in the tab, bounded by ctx's deadline and cancellation.
func (f *ChromedpFetcher) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(f.tabCtx)
	defer cancel()
	if deadline, ok := ctx.Deadline(); ok {
		var cancelDeadline context.CancelFunc
		runCtx, cancelDeadline = context.WithDeadline(runCtx, deadline)
		defer cancelDeadline()
	}
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	err := chromedp.Run(runCtx, actions...)
	if err != nil && ctx.Err() != nil {
		return fmt.Errorf("%w: %v", ctx.Err(), err)
	}
	return err
}

func (f *ChromedpFetcher) Navigate(ctx context.Context, url string) error {
	start := time.Now()
	if err := f.run(ctx, chromedp.Navigate(url), chromedp.WaitReady("body", chromedp.ByQuery)); err != nil {
		return fmt.Errorf("%w: %s: %w", repository.ErrNavigation, url, err)
	}
	f.logger.Debug("page loaded", zap.String("url", url), zap.Duration("took", time.Since(start)))
	return nil
}

func (f *ChromedpFetcher) CurrentDocument(ctx context.Context) (string, error) {
	var html string
	if err := f.run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}
	return html, nil
}

func (f *ChromedpFetcher) WaitUntil(ctx context.Context, cond repository.Condition, timeout time.Duration) error {
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	by := queryOption(cond.Target, false)
	actions := []chromedp.Action{chromedp.WaitVisible(cond.Target.Expr, by)}
	if cond.Kind == repository.Clickable {
		actions = append(actions, chromedp.WaitEnabled(cond.Target.Expr, by))
	}
	if err := f.run(waitCtx, actions...); err != nil {
		return fmt.Errorf("%w: waiting for %q: %w", repository.ErrTransientUI, cond.Target.Expr, err)
	}
	return nil
}

func (f *ChromedpFetcher) CurrentURL(ctx context.Context) (string, error) {
	var loc string
	if err := f.run(ctx, chromedp.Location(&loc)); err != nil {
		return "", fmt.Errorf("read location: %w", err)
	}
	return loc, nil
}

func (f *ChromedpFetcher) Click(ctx context.Context, sel repository.Selector) error {
	if err := f.run(ctx, chromedp.Click(sel.Expr, queryOption(sel, false))); err != nil {
		return fmt.Errorf("%w: click %q: %w", repository.ErrTransientUI, sel.Expr, err)
	}
	return nil
}

// ClickNth resolves every match of sel and clicks the i-th node.
func (f *ChromedpFetcher) ClickNth(ctx context.Context, sel repository.Selector, i int) error {
	var nodes []*cdp.Node
	if err := f.run(ctx, chromedp.Nodes(sel.Expr, &nodes, queryOption(sel, true))); err != nil {
		return fmt.Errorf("%w: resolve %q: %w", repository.ErrTransientUI, sel.Expr, err)
	}
	if i < 0 || i >= len(nodes) {
		return fmt.Errorf("%w: %q matched %d elements, wanted index %d", repository.ErrTransientUI, sel.Expr, len(nodes), i)
	}
	if err := f.run(ctx, chromedp.MouseClickNode(nodes[i])); err != nil {
		return fmt.Errorf("%w: click %q[%d]: %w", repository.ErrTransientUI, sel.Expr, i, err)
	}
	return nil
}

const (
	cssTextsJS   = `Array.from(document.querySelectorAll(%s)).map(e => e.textContent.trim())`
	xpathTextsJS = `(() => {
	const r = document.evaluate(%s, document, null, XPathResult.ORDERED_NODE_SNAPSHOT_TYPE, null);
	const out = [];
	for (let i = 0; i < r.snapshotLength; i++) out.push(r.snapshotItem(i).textContent.trim());
	return out;
})()`
)

// Texts reads element texts with a script so an empty match does not block.
func (f *ChromedpFetcher) Texts(ctx context.Context, sel repository.Selector) ([]string, error) {
	script := cssTextsJS
	if sel.Kind == repository.ByXPath {
		script = xpathTextsJS
	}
	var texts []string
	if err := f.run(ctx, chromedp.Evaluate(fmt.Sprintf(script, strconv.Quote(sel.Expr)), &texts)); err != nil {
		return nil, fmt.Errorf("%w: read texts of %q: %w", repository.ErrTransientUI, sel.Expr, err)
	}
	return texts, nil
}

// Close shuts the tab and the browser process.
func (f *ChromedpFetcher) Close() error {
	f.closeOnce.Do(func() {
		f.closeErr = chromedp.Cancel(f.tabCtx)
		f.tabCancel()
		f.allocCancel()
	})
	return f.closeErr
}

func queryOption(sel repository.Selector, all bool) chromedp.QueryOption {
	switch {
	case sel.Kind == repository.ByXPath:
		return chromedp.BySearch
	case all:
		return chromedp.ByQueryAll
	default:
		return chromedp.ByQuery
	}
}
