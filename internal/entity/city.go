package entity

// CityEntry is a discovered city and the URL of its first results page.
type CityEntry struct {
	Name     string
	EntryURL string
}
