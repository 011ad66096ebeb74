package repository

import "context"

// CitySetRepository tracks the city names already discovered during the current run.
type CitySetRepository interface {
	// Contains reports whether name was already added.
	Contains(ctx context.Context, name string) (bool, error)
	// Add records name. Adding an existing name is a no-op.
	Add(ctx context.Context, name string) error
	// Len returns the number of distinct names recorded.
	Len(ctx context.Context) (int, error)
}
