package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/zameen-scraper/internal/entity"
	"github.com/user/zameen-scraper/internal/usecase"
)

func sampleReport() *usecase.Report {
	return &usecase.Report{
		Summary: entity.RunSummary{
			RunID:     "3f2c",
			Cities:    []entity.CityEntry{{Name: "Lahore"}, {Name: "Karachi"}},
			RawRows:   1200,
			CleanRows: 1150,
		},
		Preview: []entity.ListingRecord{
			{Title: "10 Marla House", Location: "DHA Phase 6, Lahore", PriceText: "4.5 Crore", Details: "5 Beds", City: "Lahore"},
		},
		Counts: []entity.CityCount{
			{City: "Lahore", Count: 750, Percent: 65.2},
			{City: "Karachi", Count: 400, Percent: 34.8},
		},
		Ranges: []entity.PriceRangeCount{
			{City: "Karachi", Range: "50 Lakh - 1 Crore", Count: 12},
			{City: "Lahore", Range: "2 Crore - 5 Crore", Count: 30},
		},
		Stats: []entity.CityStats{
			{City: "Karachi", Count: 400, PricedCount: 0},
			{City: "Lahore", Count: 750, PricedCount: 700, Mean: 12_500_000, Max: 95_000_000, Min: 3_000_000},
		},
	}
}

func TestRenderIncludesEverySection(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewRenderer(&buf).Render(sampleReport()))

	out := buf.String()
	for _, want := range []string{
		"Run", "3f2c", "Lahore, Karachi", "1,200", "1,150",
		"First rows of the raw dataset", "10 Marla House",
		"Properties per city", "65.2%", "34.8%",
		"Price ranges by city", "< 50 Lakh", "> 5 Crore",
		"Price statistics by city (PKR)", "12,500,000", "95,000,000", "3,000,000",
	} {
		assert.Contains(t, out, want)
	}
}

func TestStatsWithoutPricesShowDash(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{})

	out := r.statsTable([]entity.CityStats{{City: "Quetta", Count: 3}}).Render()

	assert.Contains(t, out, "Quetta")
	assert.Contains(t, out, noValue)
}

func TestBarScalesWithShare(t *testing.T) {
	assert.Empty(t, bar(0))
	assert.Equal(t, barWidth/2, len([]rune(bar(50))))
	assert.Equal(t, barWidth, len([]rune(bar(100))))
}
