package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/user/zameen-scraper/internal/entity"
)

func rec(title, location, price, details, city string) entity.ListingRecord {
	return entity.ListingRecord{Title: title, Location: location, PriceText: price, Details: details, City: city}
}

func TestCleanRemovesDuplicatesAndNulls(t *testing.T) {
	a := rec("House A", "DHA", "1 Crore", "new", "Lahore")
	b := rec("House B", "Clifton", "75 Lakh", "sea view", "Karachi")
	c := rec("House C", "F-7", "3.5 Crore", "corner", "Islamabad")

	raw := []entity.ListingRecord{
		a,
		b,
		a,
		rec("House D", "", "50 Lakh", "x", "Lahore"),
		rec("House E", "Gulberg", "NaN", "x", "Lahore"),
		c,
		rec(" ", "Gulberg", "20 Lakh", "x", "Lahore"),
		b,
	}

	got := Clean(raw)

	assert.Equal(t, []entity.ListingRecord{a, b, c}, got)
}

func TestCleanProperties(t *testing.T) {
	raw := []entity.ListingRecord{
		rec("T1", "L1", "P1", "D1", "C1"),
		rec("T1", "L1", "P1", "D1", "C2"),
		rec("T1", "L1", "P1", "D1", "C1"),
		rec("T2", "N/A", "P2", "D2", "C1"),
		rec("T3", "L3", "P3", "D3", "C1"),
	}

	got := Clean(raw)

	seen := map[entity.ListingRecord]bool{}
	for _, r := range got {
		assert.False(t, seen[r], "duplicate row %v", r)
		seen[r] = true
		assert.False(t, hasNull(r), "null field in %v", r)
	}
	for _, r := range raw {
		if !hasNull(r) {
			assert.True(t, seen[r], "row %v missing from output", r)
		}
	}
}

func TestCleanEmpty(t *testing.T) {
	assert.Empty(t, Clean(nil))
}
