package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	PagesFetchedTotal    *prometheus.CounterVec
	PageFetchDuration    *prometheus.HistogramVec
	ListingsScrapedTotal *prometheus.CounterVec
	AlignmentDropped     *prometheus.CounterVec
	CityWalkFailures     *prometheus.CounterVec
	DiscoveryRetries     *prometheus.CounterVec
	CitiesDiscovered     prometheus.Gauge

	once sync.Once
)

// Init registers the collectors with the default registry. Calling it again is a no-op.
func Init() {
	once.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		)

		PagesFetchedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scraper_pages_fetched_total",
				Help: "Total number of results pages fetched.",
			},
			[]string{"city", "outcome"}, // outcome: listings, no_results, error
		)

		PageFetchDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "scraper_page_fetch_duration_seconds",
				Help:    "Duration of fetching and parsing one results page.",
				Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40},
			},
			[]string{"city"},
		)

		ListingsScrapedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scraper_listings_scraped_total",
				Help: "Total number of aligned listing records produced.",
			},
			[]string{"city"},
		)

		AlignmentDropped = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scraper_alignment_dropped_fields_total",
				Help: "Field values discarded because their sequence was longer than the shortest one.",
			},
			[]string{"field"},
		)

		CityWalkFailures = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scraper_city_walk_failures_total",
				Help: "City walks aborted by a page fetch or parse error.",
			},
			[]string{"city"},
		)

		DiscoveryRetries = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scraper_discovery_retries_total",
				Help: "Discovery iterations restarted after an error.",
			},
			[]string{"kind"}, // kind: transient_ui, navigation, timeout, other
		)

		CitiesDiscovered = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "scraper_cities_discovered",
				Help: "Number of distinct cities discovered in this run.",
			},
		)
	})
}

// WriteTextfile dumps the default registry in the node_exporter textfile format.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
