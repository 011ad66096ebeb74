package repository

import (
	"context"

	"github.com/user/zameen-scraper/internal/entity"
)

// DatasetSink receives the records of a city once its walk is complete.
type DatasetSink interface {
	// Append stores records for city. It is a no-op for an empty slice.
	Append(ctx context.Context, city string, records []entity.ListingRecord) error
}

// DatasetRepository reads the raw dataset back and persists the cleaned one.
type DatasetRepository interface {
	// ReadRaw loads every row of the raw dataset file.
	ReadRaw(ctx context.Context) ([]entity.ListingRecord, error)
	// WriteCleaned replaces the cleaned dataset file with rows.
	WriteCleaned(ctx context.Context, rows []entity.ListingRecord) error
}
