package csv_dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/user/zameen-scraper/internal/entity"
	"github.com/user/zameen-scraper/internal/repository"
)

// Dataset stores listings in two CSV files: the raw file grows across cities
// and the cleaned file is rewritten from scratch.
type Dataset struct {
	rawPath   string
	cleanPath string
}

// NewDataset returns a dataset over rawPath and cleanPath.
func NewDataset(rawPath, cleanPath string) *Dataset {
	return &Dataset{rawPath: rawPath, cleanPath: cleanPath}
}

var (
	_ repository.DatasetSink       = (*Dataset)(nil)
	_ repository.DatasetRepository = (*Dataset)(nil)
)

// Append adds records to the raw file. The header is written only when the file is empty.
func (d *Dataset) Append(ctx context.Context, _ string, records []entity.ListingRecord) error {
	if len(records) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.OpenFile(d.rawPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open raw dataset: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat raw dataset: %w", err)
	}
	if err := writeRows(f, records, info.Size() == 0); err != nil {
		return fmt.Errorf("append raw dataset: %w", err)
	}
	return f.Close()
}

// ReadRaw loads the raw file. A file that does not exist yet yields no rows.
func (d *Dataset) ReadRaw(ctx context.Context) ([]entity.ListingRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(d.rawPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open raw dataset: %w", err)
	}
	defer f.Close()

	return readRows(f)
}

// WriteCleaned replaces the cleaned file with a header and rows.
func (d *Dataset) WriteCleaned(ctx context.Context, rows []entity.ListingRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.OpenFile(d.cleanPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open cleaned dataset: %w", err)
	}
	defer f.Close()

	if err := writeRows(f, rows, true); err != nil {
		return fmt.Errorf("write cleaned dataset: %w", err)
	}
	return f.Close()
}

func writeRows(w io.Writer, rows []entity.ListingRecord, header bool) error {
	cw := csv.NewWriter(w)
	if header {
		if err := cw.Write(entity.DatasetColumns); err != nil {
			return err
		}
	}
	for _, r := range rows {
		if err := cw.Write(r.Row()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// readRows maps columns by header name, so column order in the file does not matter.
func readRows(r io.Reader) ([]entity.ListingRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	cols := make([]int, len(entity.DatasetColumns))
	for i, name := range entity.DatasetColumns {
		pos, ok := idx[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", repository.ErrMissingColumn, name)
		}
		cols[i] = pos
	}

	var out []entity.ListingRecord
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		field := func(i int) string {
			if cols[i] < len(rec) {
				return rec[cols[i]]
			}
			return ""
		}
		out = append(out, entity.ListingRecord{
			Title:     field(0),
			Location:  field(1),
			PriceText: field(2),
			Details:   field(3),
			City:      field(4),
		})
	}
	return out, nil
}
