package usecase

import "github.com/user/zameen-scraper/internal/entity"

// Align pairs the i-th element of each field sequence into a record for city.
// Exactly min(len) records are produced; the tail of any longer sequence is
// dropped. Pairing is purely positional, so a listing that lacks an optional
// field shifts every later pairing on the page.
func Align(batch entity.RawFieldBatch, city string) []entity.ListingRecord {
	n := alignedLen(batch)
	records := make([]entity.ListingRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, entity.ListingRecord{
			Title:     batch.Titles[i],
			Location:  batch.Locations[i],
			PriceText: batch.Prices[i],
			Details:   batch.Details[i],
			City:      city,
		})
	}
	return records
}

// DroppedFields reports, per field, how many values Align discards.
func DroppedFields(batch entity.RawFieldBatch) map[string]int {
	n := alignedLen(batch)
	return map[string]int{
		"title":    len(batch.Titles) - n,
		"location": len(batch.Locations) - n,
		"price":    len(batch.Prices) - n,
		"details":  len(batch.Details) - n,
	}
}

func alignedLen(batch entity.RawFieldBatch) int {
	return min(len(batch.Titles), len(batch.Locations), len(batch.Prices), len(batch.Details))
}
