package repository

import (
	"context"
	"strings"
	"time"
)

// SelectorKind tells the fetcher how to interpret a selector expression.
type SelectorKind int

const (
	ByCSS SelectorKind = iota
	ByXPath
)

// Selector addresses one or more elements of the current document.
type Selector struct {
	Expr string
	Kind SelectorKind
}

// CSS is shorthand for a CSS selector.
func CSS(expr string) Selector { return Selector{Expr: expr, Kind: ByCSS} }

// XPath is shorthand for an XPath selector.
func XPath(expr string) Selector { return Selector{Expr: expr, Kind: ByXPath} }

// SelectorFor treats expressions starting with "/" or "(" as XPath and anything else as CSS.
func SelectorFor(expr string) Selector {
	expr = strings.TrimSpace(expr)
	if strings.HasPrefix(expr, "/") || strings.HasPrefix(expr, "(") {
		return XPath(expr)
	}
	return CSS(expr)
}

// ConditionKind is the readiness state WaitUntil blocks on.
type ConditionKind int

const (
	Visible ConditionKind = iota
	Clickable
)

// Condition is a readiness check on the element(s) matched by Target.
type Condition struct {
	Target Selector
	Kind   ConditionKind
}

// PageFetcher is the browser-automation capability the scraper drives serially.
type PageFetcher interface {
	// Navigate loads url in the current tab and waits for the document to be ready.
	Navigate(ctx context.Context, url string) error
	// CurrentDocument returns the rendered markup of the current page.
	CurrentDocument(ctx context.Context) (string, error)
	// WaitUntil blocks until cond holds or timeout elapses.
	WaitUntil(ctx context.Context, cond Condition, timeout time.Duration) error
	// CurrentURL returns the location of the current page.
	CurrentURL(ctx context.Context) (string, error)
	// Click clicks the first element matched by sel.
	Click(ctx context.Context, sel Selector) error
	// ClickNth clicks the i-th element matched by sel.
	ClickNth(ctx context.Context, sel Selector, i int) error
	// Texts returns the trimmed text of every element matched by sel.
	Texts(ctx context.Context, sel Selector) ([]string, error)
	// Close releases the browser. It is safe to call more than once.
	Close() error
}
