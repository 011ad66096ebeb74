package memory

import (
	"context"
	"sync"

	"github.com/user/zameen-scraper/internal/repository"
)

// CitySet is an in-process set of discovered city names.
type CitySet struct {
	mu    sync.RWMutex
	names map[string]struct{}
}

// NewCitySet returns an empty set.
func NewCitySet() repository.CitySetRepository {
	return &CitySet{names: make(map[string]struct{})}
}

func (s *CitySet) Contains(_ context.Context, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.names[name]
	return ok, nil
}

func (s *CitySet) Add(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.names[name] = struct{}{}
	return nil
}

func (s *CitySet) Len(context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.names), nil
}
