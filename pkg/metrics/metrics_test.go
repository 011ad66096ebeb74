package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitIsIdempotent(t *testing.T) {
	Init()
	first := ListingsScrapedTotal
	Init()

	assert.Same(t, first, ListingsScrapedTotal)
}

func TestWriteTextfile(t *testing.T) {
	Init()
	ListingsScrapedTotal.WithLabelValues("Lahore").Add(3)

	path := filepath.Join(t.TempDir(), "scraper.prom")
	require.NoError(t, WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `scraper_listings_scraped_total{city="Lahore"}`)
	assert.GreaterOrEqual(t, testutil.ToFloat64(ListingsScrapedTotal.WithLabelValues("Lahore")), 3.0)
}
