package repository

import "context"

// PortalUI is the portal's city selector, expressed as the steps the discovery loop takes.
type PortalUI interface {
	// OpenCitySelector loads the home page and opens the city dropdown.
	OpenCitySelector(ctx context.Context) error
	// CityCandidates lists the city names currently offered by the open dropdown.
	CityCandidates(ctx context.Context) ([]string, error)
	// SelectCity clicks the i-th candidate.
	SelectCity(ctx context.Context, i int) error
	// ConfirmSelection submits the search for the selected city and waits for the results page.
	ConfirmSelection(ctx context.Context) error
	// CurrentURL returns the URL of the page the browser is on.
	CurrentURL(ctx context.Context) (string, error)
}
