package entity

// CityCount is the number of cleaned listings for a city and its share of the dataset.
type CityCount struct {
	City    string
	Count   int
	Percent float64
}

// CityStats aggregates parsed prices for one city. Mean, Max and Min are only
// meaningful when PricedCount > 0.
type CityStats struct {
	City        string
	Count       int
	PricedCount int
	Mean        float64
	Max         float64
	Min         float64
}

// PriceRangeCount is the number of listings of a city falling in a price bin.
type PriceRangeCount struct {
	City  string
	Range string
	Count int
}

// RunSummary describes the outcome of one pipeline run.
type RunSummary struct {
	RunID     string
	Cities    []CityEntry
	RawRows   int
	CleanRows int
}
