package usecase

import (
	"context"

	"github.com/user/zameen-scraper/internal/entity"
	"github.com/user/zameen-scraper/internal/repository"
)

type multiSink []repository.DatasetSink

// NewMultiSink fans records out to every sink in order and stops at the first error.
func NewMultiSink(sinks ...repository.DatasetSink) repository.DatasetSink {
	return multiSink(sinks)
}

func (m multiSink) Append(ctx context.Context, city string, records []entity.ListingRecord) error {
	if len(records) == 0 {
		return nil
	}
	for _, s := range m {
		if err := s.Append(ctx, city, records); err != nil {
			return err
		}
	}
	return nil
}
