package csv_dataset

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/zameen-scraper/internal/entity"
	"github.com/user/zameen-scraper/internal/repository"
)

func newTestDataset(t *testing.T) (*Dataset, string, string) {
	t.Helper()
	dir := t.TempDir()
	raw := filepath.Join(dir, "raw.csv")
	clean := filepath.Join(dir, "clean.csv")
	return NewDataset(raw, clean), raw, clean
}

func listing(title, city string) entity.ListingRecord {
	return entity.ListingRecord{Title: title, Location: "DHA, " + city, PriceText: "1.5 Crore", Details: "5 Beds", City: city}
}

func TestAppendWritesHeaderOnce(t *testing.T) {
	ds, raw, _ := newTestDataset(t)
	ctx := context.Background()

	require.NoError(t, ds.Append(ctx, "Lahore", []entity.ListingRecord{listing("A", "Lahore"), listing("B", "Lahore")}))
	require.NoError(t, ds.Append(ctx, "Karachi", []entity.ListingRecord{listing("C", "Karachi")}))

	data, err := os.ReadFile(raw)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Title,Location,Price,Details,City", lines[0])
	assert.Equal(t, 1, strings.Count(string(data), "Title,Location,Price,Details,City"))
	assert.Equal(t, `C,"DHA, Karachi",1.5 Crore,5 Beds,Karachi`, lines[3])
}

func TestAppendEmptyIsNoop(t *testing.T) {
	ds, raw, _ := newTestDataset(t)

	require.NoError(t, ds.Append(context.Background(), "Lahore", nil))

	_, err := os.Stat(raw)
	assert.True(t, os.IsNotExist(err))
}

func TestReadRawRoundTrip(t *testing.T) {
	ds, _, _ := newTestDataset(t)
	ctx := context.Background()
	want := []entity.ListingRecord{listing("A", "Lahore"), listing("B, with comma", "Karachi")}
	require.NoError(t, ds.Append(ctx, "Lahore", want))

	got, err := ds.ReadRaw(ctx)

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReadRawMissingFile(t *testing.T) {
	ds, _, _ := newTestDataset(t)

	got, err := ds.ReadRaw(context.Background())

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReadRawMissingColumn(t *testing.T) {
	ds, raw, _ := newTestDataset(t)
	require.NoError(t, os.WriteFile(raw, []byte("Title,Location,Price,City\nA,B,1 Crore,Lahore\n"), 0o644))

	_, err := ds.ReadRaw(context.Background())

	assert.ErrorIs(t, err, repository.ErrMissingColumn)
}

func TestReadRawReorderedColumns(t *testing.T) {
	ds, raw, _ := newTestDataset(t)
	require.NoError(t, os.WriteFile(raw, []byte("City,Title,Price,Location,Details\nLahore,House,2 Crore,DHA,4 Beds\n"), 0o644))

	got, err := ds.ReadRaw(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []entity.ListingRecord{{Title: "House", Location: "DHA", PriceText: "2 Crore", Details: "4 Beds", City: "Lahore"}}, got)
}

func TestWriteCleanedTruncates(t *testing.T) {
	ds, _, clean := newTestDataset(t)
	ctx := context.Background()

	require.NoError(t, ds.WriteCleaned(ctx, []entity.ListingRecord{listing("A", "Lahore"), listing("B", "Lahore")}))
	require.NoError(t, ds.WriteCleaned(ctx, []entity.ListingRecord{listing("C", "Karachi")}))

	data, err := os.ReadFile(clean)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Title,Location,Price,Details,City", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "C,"))
}
