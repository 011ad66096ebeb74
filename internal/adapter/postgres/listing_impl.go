package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/zameen-scraper/internal/entity"
	"github.com/user/zameen-scraper/internal/repository"
)

const schemaSQL = `
	CREATE TABLE IF NOT EXISTS listings (
		id         BIGSERIAL PRIMARY KEY,
		run_id     TEXT        NOT NULL,
		title      TEXT        NOT NULL,
		location   TEXT        NOT NULL,
		price      TEXT        NOT NULL,
		details    TEXT        NOT NULL,
		city       TEXT        NOT NULL,
		scraped_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS listings_run_city_idx ON listings (run_id, city);
`

const insertListingSQL = `
	INSERT INTO listings (run_id, title, location, price, details, city)
	VALUES ($1, $2, $3, $4, $5, $6);
`

// ListingRepoImpl mirrors every appended city batch into the listings table.
type ListingRepoImpl struct {
	db    *pgxpool.Pool
	runID string
}

// NewListingRepo returns a sink tagging rows with runID.
func NewListingRepo(db *pgxpool.Pool, runID string) *ListingRepoImpl {
	return &ListingRepoImpl{db: db, runID: runID}
}

var _ repository.DatasetSink = (*ListingRepoImpl)(nil)

// EnsureSchema creates the listings table if it does not exist.
func (r *ListingRepoImpl) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create listings schema: %w", err)
	}
	return nil
}

// Append inserts records in one transaction; either the whole city batch lands or none of it.
func (r *ListingRepoImpl) Append(ctx context.Context, city string, records []entity.ListingRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin listings tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := listingBatch(r.runID, records)
	br := tx.SendBatch(ctx, batch)
	for range records {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("insert listings for %s: %w", city, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("insert listings for %s: %w", city, err)
	}
	return tx.Commit(ctx)
}

func listingBatch(runID string, records []entity.ListingRecord) *pgx.Batch {
	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(insertListingSQL, runID, rec.Title, rec.Location, rec.PriceText, rec.Details, rec.City)
	}
	return batch
}
