package usecase

import (
	"errors"
	"sort"

	"go.uber.org/zap"

	"github.com/user/zameen-scraper/internal/entity"
	"github.com/user/zameen-scraper/internal/repository"
)

// maxPriceSamples bounds how many unparsed price strings are quoted in the summary log line.
const maxPriceSamples = 5

// PriceListings converts the price text of every row. Rows whose price has no
// recognised unit are kept with HasPrice false.
func PriceListings(rows []entity.ListingRecord, logger *zap.Logger) []entity.PricedListing {
	out := make([]entity.PricedListing, 0, len(rows))
	var samples []string
	missing := 0
	for _, r := range rows {
		p := entity.PricedListing{ListingRecord: r}
		price, err := ParsePrice(r.PriceText)
		switch {
		case err == nil:
			p.Price = price
			p.HasPrice = true
			p.PriceRange = RangeLabel(price)
		case errors.Is(err, repository.ErrDataFormat):
			missing++
			if len(samples) < maxPriceSamples {
				samples = append(samples, r.PriceText)
			}
			logger.Debug("price treated as missing", zap.String("city", r.City), zap.String("title", r.Title), zap.Error(err))
		}
		out = append(out, p)
	}
	if missing > 0 {
		logger.Warn("prices without a Lakh or Crore unit treated as missing",
			zap.Int("count", missing),
			zap.Strings("samples", samples),
		)
	}
	return out
}

// CountByCity returns the number of listings per city, largest first, with each city's share in percent.
func CountByCity(rows []entity.PricedListing) []entity.CityCount {
	counts := make(map[string]int)
	for _, r := range rows {
		counts[r.City]++
	}

	out := make([]entity.CityCount, 0, len(counts))
	for city, n := range counts {
		out = append(out, entity.CityCount{
			City:    city,
			Count:   n,
			Percent: 100 * float64(n) / float64(len(rows)),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].City < out[j].City
		}
		return out[i].Count > out[j].Count
	})
	return out
}

// StatsByCity computes mean, max and min of the parsed prices per city, ordered by city name.
// Missing prices are skipped.
func StatsByCity(rows []entity.PricedListing) []entity.CityStats {
	byCity := make(map[string]*entity.CityStats)
	sums := make(map[string]float64)
	for _, r := range rows {
		s, ok := byCity[r.City]
		if !ok {
			s = &entity.CityStats{City: r.City}
			byCity[r.City] = s
		}
		s.Count++
		if !r.HasPrice {
			continue
		}
		if s.PricedCount == 0 || r.Price > s.Max {
			s.Max = r.Price
		}
		if s.PricedCount == 0 || r.Price < s.Min {
			s.Min = r.Price
		}
		s.PricedCount++
		sums[r.City] += r.Price
	}

	out := make([]entity.CityStats, 0, len(byCity))
	for city, s := range byCity {
		if s.PricedCount > 0 {
			s.Mean = sums[city] / float64(s.PricedCount)
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].City < out[j].City })
	return out
}

// RangesByCity counts listings per city and price bin. Bins with no listings
// are omitted; cities are ordered by name and bins in PriceRanges order.
func RangesByCity(rows []entity.PricedListing) []entity.PriceRangeCount {
	type key struct{ city, label string }
	counts := make(map[key]int)
	cities := make(map[string]struct{})
	for _, r := range rows {
		if r.PriceRange == "" {
			continue
		}
		counts[key{r.City, r.PriceRange}]++
		cities[r.City] = struct{}{}
	}

	names := make([]string, 0, len(cities))
	for c := range cities {
		names = append(names, c)
	}
	sort.Strings(names)

	var out []entity.PriceRangeCount
	for _, city := range names {
		for _, pr := range PriceRanges {
			if n := counts[key{city, pr.Label}]; n > 0 {
				out = append(out, entity.PriceRangeCount{City: city, Range: pr.Label, Count: n})
			}
		}
	}
	return out
}
