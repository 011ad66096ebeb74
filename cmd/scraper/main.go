package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/user/zameen-scraper/internal/adapter/chromedp_fetcher"
	"github.com/user/zameen-scraper/internal/adapter/csv_dataset"
	"github.com/user/zameen-scraper/internal/adapter/goquery_extractor"
	"github.com/user/zameen-scraper/internal/adapter/memory"
	"github.com/user/zameen-scraper/internal/adapter/postgres"
	redis_adapter "github.com/user/zameen-scraper/internal/adapter/redis"
	"github.com/user/zameen-scraper/internal/adapter/zameen_portal"
	"github.com/user/zameen-scraper/internal/delivery/http/handler"
	"github.com/user/zameen-scraper/internal/delivery/http/router"
	"github.com/user/zameen-scraper/internal/delivery/report"
	"github.com/user/zameen-scraper/internal/repository"
	"github.com/user/zameen-scraper/internal/usecase"
	"github.com/user/zameen-scraper/pkg/config"
	"github.com/user/zameen-scraper/pkg/logger"
	"github.com/user/zameen-scraper/pkg/metrics"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "scraper:", err)
		os.Exit(1)
	}
}

// run is separate from main so that deferred cleanup runs before the process exits.
func run() error {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// --- Logger ---
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	// --- Metrics ---
	metrics.Init()
	if cfg.MetricsTextfile != "" {
		defer func() {
			if err := metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
				log.Error("failed to write metrics textfile", zap.String("path", cfg.MetricsTextfile), zap.Error(err))
			}
		}()
	}

	runID := uuid.NewString()
	log = log.With(zap.String("run_id", runID))
	startedAt := time.Now()
	log.Info("scraper starting", zap.String("home_url", cfg.HomeURL), zap.Int("cities", cfg.NumCities), zap.Int("max_pages", cfg.MaxPages))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, cfg.RunTimeout())
	defer cancel()

	// --- HTTP Server ---
	if cfg.HTTPAddr != "" {
		server := &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router.New(handler.NewHandler(runID, startedAt, log), log),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  120 * time.Second,
		}
		go func() {
			log.Info("starting metrics server", zap.String("addr", cfg.HTTPAddr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server stopped", zap.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(shutdownCtx)
		}()
	}

	// --- Browser ---
	fetcher, err := chromedp_fetcher.NewChromedpFetcher(chromedp_fetcher.Options{
		Headless:    cfg.Headless,
		UserAgent:   cfg.UserAgent,
		ProxyServer: cfg.ProxyServer,
		Logger:      log.Named("browser"),
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := fetcher.Close(); err != nil {
			log.Warn("failed to close browser", zap.Error(err))
		}
	}()

	// --- Repositories ---
	dataset := csv_dataset.NewDataset(cfg.RawCSVPath, cfg.CleanCSVPath)
	sinks := []repository.DatasetSink{dataset}

	var cities repository.CitySetRepository = memory.NewCitySet()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		cities = redis_adapter.NewCitySetRepo(rdb, runID)
		log.Info("redis connection established")
	}

	if cfg.PostgresURL != "" {
		dbpool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			return fmt.Errorf("connect to postgres: %w", err)
		}
		defer dbpool.Close()
		listings := postgres.NewListingRepo(dbpool, runID)
		if err := listings.EnsureSchema(ctx); err != nil {
			return err
		}
		sinks = append(sinks, listings)
		log.Info("postgres connection pool established")
	}

	extractor, err := goquery_extractor.NewExtractor(goquery_extractor.Selectors{
		Title:         cfg.Selectors.Title,
		Price:         cfg.Selectors.Price,
		Location:      cfg.Selectors.Location,
		Details:       cfg.Selectors.Details,
		Summary:       cfg.Selectors.Summary,
		NoResultsText: cfg.Selectors.NoResultsText,
	})
	if err != nil {
		return err
	}
	portal := zameen_portal.NewPortal(fetcher, zameen_portal.Config{
		HomeURL:      cfg.HomeURL,
		CityDropdown: cfg.Selectors.CityDropdown,
		CityButtons:  cfg.Selectors.CityButtons,
		FindButton:   cfg.Selectors.FindButton,
		WaitTimeout:  cfg.UIWaitTimeout(),
	}, log.Named("portal"))

	// --- Use Cases ---
	walker := usecase.NewPaginationWalker(fetcher, extractor, cfg.MaxPages, log.Named("walker"))
	discovery := usecase.NewCityDiscovery(
		portal,
		cities,
		walker,
		usecase.NewMultiSink(sinks...),
		cfg.NumCities,
		usecase.RetryPolicy{MaxAttempts: cfg.DiscoveryMaxAttempts, Backoff: cfg.DiscoveryBackoff()},
		log.Named("discovery"),
	)
	pipeline := usecase.NewPipeline(runID, discovery, dataset, report.NewRenderer(os.Stdout), log)

	summary, err := pipeline.Run(ctx)
	if err != nil {
		return err
	}
	log.Info("scraper finished",
		zap.Int("cities", len(summary.Cities)),
		zap.Int("raw_rows", summary.RawRows),
		zap.Int("clean_rows", summary.CleanRows),
		zap.Duration("took", time.Since(startedAt)),
	)
	return nil
}
