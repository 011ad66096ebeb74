package repository

import "github.com/user/zameen-scraper/internal/entity"

// FieldExtractor pulls listing fields out of a rendered results page.
type FieldExtractor interface {
	// Extract returns the four field sequences of the page in document order.
	Extract(markup string) (entity.RawFieldBatch, error)
	// HasNoResults reports whether the page shows the "no property found" sentinel.
	HasNoResults(markup string) (bool, error)
}
