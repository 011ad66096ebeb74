package repository

import "errors"

var (
	// ErrTransientUI means a UI element was missing, stale or not clickable.
	ErrTransientUI = errors.New("transient ui error")
	// ErrNavigation means the browser failed to load a page.
	ErrNavigation = errors.New("navigation failed")
	// ErrPageFetch means a results page could not be fetched or parsed during a city walk.
	ErrPageFetch = errors.New("page fetch failed")
	// ErrURLFormat means an entry URL does not end in a single-digit page number followed by .html.
	ErrURLFormat = errors.New("unexpected entry url format")
	// ErrDataFormat means a price string matched neither the Lakh nor the Crore pattern.
	ErrDataFormat = errors.New("unrecognised price format")
	// ErrCandidatesExhausted means the city selector has fewer entries than the discovery loop needs.
	ErrCandidatesExhausted = errors.New("city candidates exhausted")
	// ErrMissingColumn means a dataset file lacks one of the fixed columns.
	ErrMissingColumn = errors.New("dataset column missing")
)
