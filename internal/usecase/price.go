package usecase

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/user/zameen-scraper/internal/repository"
)

const (
	lakh  = 100_000
	crore = 10_000_000
)

var (
	lakhPattern  = regexp.MustCompile(`([\d.]+)\s*Lakh`)
	crorePattern = regexp.MustCompile(`([\d.]+)\s*Crore`)
)

// PriceRange is a right-inclusive price bin in rupees: (Low, High].
type PriceRange struct {
	Low   float64
	High  float64
	Label string
}

// PriceRanges are the bins used by the price-by-city breakdown.
var PriceRanges = []PriceRange{
	{0, 5_000_000, "< 50 Lakh"},
	{5_000_000, 10_000_000, "50 Lakh - 1 Crore"},
	{10_000_000, 20_000_000, "1 Crore - 2 Crore"},
	{20_000_000, 50_000_000, "2 Crore - 5 Crore"},
	{50_000_000, 1_000_000_000, "> 5 Crore"},
}

// ParsePrice converts a listing price such as "PKR 75 Lakh" or "1.25 Crore" to
// rupees. The Lakh pattern is tried first. Anything else yields ErrDataFormat.
func ParsePrice(s string) (float64, error) {
	if m := lakhPattern.FindStringSubmatch(s); m != nil {
		return scale(s, m[1], lakh)
	}
	if m := crorePattern.FindStringSubmatch(s); m != nil {
		return scale(s, m[1], crore)
	}
	return 0, fmt.Errorf("%w: %q", repository.ErrDataFormat, s)
}

func scale(s, amount string, unit float64) (float64, error) {
	v, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", repository.ErrDataFormat, s, err)
	}
	return v * unit, nil
}

// RangeLabel returns the label of the bin containing price, or "" if none does.
func RangeLabel(price float64) string {
	for _, r := range PriceRanges {
		if price > r.Low && price <= r.High {
			return r.Label
		}
	}
	return ""
}
