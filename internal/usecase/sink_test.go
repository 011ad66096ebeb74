package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/user/zameen-scraper/internal/entity"
)

func TestMultiSinkFansOut(t *testing.T) {
	a, b := &recordingSink{}, &recordingSink{}
	records := []entity.ListingRecord{rec("T", "L", "1 Crore", "D", "Lahore")}

	err := NewMultiSink(a, b).Append(context.Background(), "Lahore", records)

	assert.NoError(t, err)
	assert.Equal(t, records, a.calls["Lahore"])
	assert.Equal(t, records, b.calls["Lahore"])
}

func TestMultiSinkStopsAtFirstError(t *testing.T) {
	boom := errors.New("disk full")
	a, b := &recordingSink{err: boom}, &recordingSink{}

	err := NewMultiSink(a, b).Append(context.Background(), "Lahore", []entity.ListingRecord{rec("T", "L", "P", "D", "Lahore")})

	assert.ErrorIs(t, err, boom)
	assert.Empty(t, b.order)
}

func TestMultiSinkSkipsEmptyBatch(t *testing.T) {
	a := &recordingSink{err: errors.New("must not be called")}
	assert.NoError(t, NewMultiSink(a).Append(context.Background(), "Lahore", nil))
}
