package entity

// DatasetColumns is the fixed column order of every dataset file.
var DatasetColumns = []string{"Title", "Location", "Price", "Details", "City"}

// RawFieldBatch holds the four field sequences extracted from one results page.
// The sequences are independent and may differ in length.
type RawFieldBatch struct {
	Titles    []string
	Locations []string
	Prices    []string
	Details   []string
}

// ListingRecord is one aligned dataset row.
type ListingRecord struct {
	Title     string
	Location  string
	PriceText string
	Details   string
	City      string
}

// Row returns the record in DatasetColumns order.
func (r ListingRecord) Row() []string {
	return []string{r.Title, r.Location, r.PriceText, r.Details, r.City}
}

// PricedListing is a cleaned record with its price converted to rupees.
type PricedListing struct {
	ListingRecord
	Price      float64
	HasPrice   bool
	PriceRange string // empty when the price is missing or outside every bin
}
