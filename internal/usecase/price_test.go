package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/zameen-scraper/internal/repository"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"75 Lakh", 7_500_000},
		{"1.25 Crore", 12_500_000},
		{"PKR\n4.2 Crore", 42_000_000},
		{"PKR 95Lakh", 9_500_000},
		// Lakh is matched before Crore.
		{"1 Crore 20 Lakh", 2_000_000},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePrice(tt.in)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.0001)
		})
	}
}

func TestParsePriceMissingUnit(t *testing.T) {
	for _, in := range []string{"PKR 50", "", "Call for price", ". Lakh"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParsePrice(in)
			assert.ErrorIs(t, err, repository.ErrDataFormat)
		})
	}
}

func TestRangeLabel(t *testing.T) {
	assert.Equal(t, "< 50 Lakh", RangeLabel(5_000_000))
	assert.Equal(t, "50 Lakh - 1 Crore", RangeLabel(5_000_001))
	assert.Equal(t, "1 Crore - 2 Crore", RangeLabel(12_500_000))
	assert.Equal(t, "2 Crore - 5 Crore", RangeLabel(42_000_000))
	assert.Equal(t, "> 5 Crore", RangeLabel(1_000_000_000))
	assert.Equal(t, "", RangeLabel(0))
	assert.Equal(t, "", RangeLabel(2_000_000_000))
}
