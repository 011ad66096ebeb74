package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestCitySetAddContains(t *testing.T) {
	client, mr := newTestClient(t)
	ctx := context.Background()
	set := NewCitySetRepo(client, "run-a")

	ok, err := set.Contains(ctx, "Lahore")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, set.Add(ctx, "Lahore"))
	require.NoError(t, set.Add(ctx, "Lahore"))
	require.NoError(t, set.Add(ctx, "Karachi"))

	ok, err = set.Contains(ctx, "Lahore")
	require.NoError(t, err)
	assert.True(t, ok)

	n, err := set.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.Equal(t, citySetExpiry, mr.TTL("scraper:run:run-a:cities"))
}

func TestCitySetIsScopedByRun(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, NewCitySetRepo(client, "run-a").Add(ctx, "Lahore"))

	ok, err := NewCitySetRepo(client, "run-b").Contains(ctx, "Lahore")
	require.NoError(t, err)
	assert.False(t, ok)
}
