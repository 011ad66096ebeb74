package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/user/zameen-scraper/internal/repository"
)

const (
	citySetKeyFormat = "scraper:run:%s:cities"
	citySetExpiry    = 24 * time.Hour
)

// CitySetRepoImpl keeps the discovered cities of one run in a Redis set.
type CitySetRepoImpl struct {
	client *redis.Client
	key    string
}

// NewCitySetRepo returns a set scoped to runID, so runs never see each other's cities.
func NewCitySetRepo(client *redis.Client, runID string) repository.CitySetRepository {
	return &CitySetRepoImpl{client: client, key: fmt.Sprintf(citySetKeyFormat, runID)}
}

func (r *CitySetRepoImpl) Contains(ctx context.Context, name string) (bool, error) {
	ok, err := r.client.SIsMember(ctx, r.key, name).Result()
	if err != nil {
		return false, fmt.Errorf("check city %q: %w", name, err)
	}
	return ok, nil
}

// Add inserts name and refreshes the expiry of the run's set.
func (r *CitySetRepoImpl) Add(ctx context.Context, name string) error {
	pipe := r.client.TxPipeline()
	pipe.SAdd(ctx, r.key, name)
	pipe.Expire(ctx, r.key, citySetExpiry)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("add city %q: %w", name, err)
	}
	return nil
}

func (r *CitySetRepoImpl) Len(ctx context.Context) (int, error) {
	n, err := r.client.SCard(ctx, r.key).Result()
	if err != nil {
		return 0, fmt.Errorf("count cities: %w", err)
	}
	return int(n), nil
}
