package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/user/zameen-scraper/internal/entity"
	"github.com/user/zameen-scraper/internal/repository"
)

type stubDiscovery struct {
	state *DiscoveryState
	err   error
}

func (s stubDiscovery) Discover(context.Context) (*DiscoveryState, error) { return s.state, s.err }

type memDataset struct {
	raw     []entity.ListingRecord
	readErr error
	cleaned []entity.ListingRecord
}

func (d *memDataset) ReadRaw(context.Context) ([]entity.ListingRecord, error) {
	return d.raw, d.readErr
}

func (d *memDataset) WriteCleaned(_ context.Context, rows []entity.ListingRecord) error {
	d.cleaned = rows
	return nil
}

type captureReporter struct{ got *Report }

func (c *captureReporter) Render(r *Report) error {
	c.got = r
	return nil
}

func TestPipelineRun(t *testing.T) {
	dup := rec("House", "DHA", "2 Crore", "5 beds", "Lahore")
	dataset := &memDataset{raw: []entity.ListingRecord{
		dup,
		dup,
		rec("Flat", "Clifton", "80 Lakh", "2 beds", "Karachi"),
		rec("Plot", "", "30 Lakh", "1 kanal", "Lahore"),
	}}
	entries := []entity.CityEntry{{Name: "Lahore"}, {Name: "Karachi"}}
	reporter := &captureReporter{}

	p := NewPipeline("run-1", stubDiscovery{state: &DiscoveryState{Entries: entries}}, dataset, reporter, zap.NewNop())
	summary, err := p.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "run-1", summary.RunID)
	assert.Equal(t, entries, summary.Cities)
	assert.Equal(t, 4, summary.RawRows)
	assert.Equal(t, 2, summary.CleanRows)
	assert.Len(t, dataset.cleaned, 2)

	require.NotNil(t, reporter.got)
	assert.Len(t, reporter.got.Preview, 4)
	assert.Len(t, reporter.got.Counts, 2)
	assert.Len(t, reporter.got.Stats, 2)
	assert.Equal(t, *summary, reporter.got.Summary)
}

func TestPipelineContinuesAfterPartialDiscovery(t *testing.T) {
	discovered := []entity.CityEntry{{Name: "Lahore"}}
	disc := stubDiscovery{state: &DiscoveryState{Entries: discovered}, err: repository.ErrCandidatesExhausted}
	dataset := &memDataset{raw: []entity.ListingRecord{rec("House", "DHA", "2 Crore", "5 beds", "Lahore")}}

	summary, err := NewPipeline("run-2", disc, dataset, &captureReporter{}, zap.NewNop()).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, discovered, summary.Cities)
	assert.Equal(t, 1, summary.CleanRows)
}

func TestPipelineFailsOnUnreadableDataset(t *testing.T) {
	dataset := &memDataset{readErr: repository.ErrMissingColumn}
	reporter := &captureReporter{}

	_, err := NewPipeline("run-3", stubDiscovery{state: &DiscoveryState{}}, dataset, reporter, zap.NewNop()).Run(context.Background())

	assert.True(t, errors.Is(err, repository.ErrMissingColumn))
	assert.Nil(t, reporter.got)
}

func TestPipelinePreviewIsCapped(t *testing.T) {
	var raw []entity.ListingRecord
	for i := 0; i < 25; i++ {
		raw = append(raw, rec("House", "DHA", "2 Crore", "5 beds", "Lahore"))
	}
	reporter := &captureReporter{}

	_, err := NewPipeline("run-4", stubDiscovery{state: &DiscoveryState{}}, &memDataset{raw: raw}, reporter, zap.NewNop()).Run(context.Background())

	require.NoError(t, err)
	assert.Len(t, reporter.got.Preview, previewRows)
}
