package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the run parameters of the scraper.
type Config struct {
	HomeURL      string `mapstructure:"HOME_URL"`
	NumCities    int    `mapstructure:"NUM_CITIES"`
	MaxPages     int    `mapstructure:"MAX_PAGES"`
	RawCSVPath   string `mapstructure:"RAW_CSV_PATH"`
	CleanCSVPath string `mapstructure:"CLEAN_CSV_PATH"`
	LogLevel     string `mapstructure:"LOG_LEVEL"`

	Headless             bool   `mapstructure:"HEADLESS"`
	UserAgent            string `mapstructure:"USER_AGENT"`
	ProxyServer          string `mapstructure:"PROXY_SERVER"`
	UIWaitTimeoutSeconds int    `mapstructure:"UI_WAIT_TIMEOUT_SECONDS"`
	RunTimeoutMinutes    int    `mapstructure:"RUN_TIMEOUT_MINUTES"`

	DiscoveryMaxAttempts int `mapstructure:"DISCOVERY_MAX_ATTEMPTS"`
	DiscoveryBackoffMS   int `mapstructure:"DISCOVERY_BACKOFF_MS"`

	PostgresURL   string `mapstructure:"POSTGRES_URL"`
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	HTTPAddr        string `mapstructure:"HTTP_ADDR"`
	MetricsTextfile string `mapstructure:"METRICS_TEXTFILE"`

	Selectors `mapstructure:",squash"`
}

// Selectors are the portal-specific element queries. Class names on the portal
// are generated, so they are overridable without a rebuild.
type Selectors struct {
	Title         string `mapstructure:"SELECTOR_TITLE"`
	Price         string `mapstructure:"SELECTOR_PRICE"`
	Location      string `mapstructure:"SELECTOR_LOCATION"`
	Details       string `mapstructure:"SELECTOR_DETAILS"`
	Summary       string `mapstructure:"SELECTOR_SUMMARY"`
	NoResultsText string `mapstructure:"NO_RESULTS_TEXT"`
	CityDropdown  string `mapstructure:"SELECTOR_CITY_DROPDOWN"`
	CityButtons   string `mapstructure:"SELECTOR_CITY_BUTTONS"`
	FindButton    string `mapstructure:"SELECTOR_FIND_BUTTON"`
}

var defaults = map[string]any{
	"HOME_URL":                "https://www.zameen.com/",
	"NUM_CITIES":              5,
	"MAX_PAGES":               4,
	"RAW_CSV_PATH":            "zameenScrappedData.csv",
	"CLEAN_CSV_PATH":          "zameenCleanedData.csv",
	"LOG_LEVEL":               "info",
	"HEADLESS":                true,
	"USER_AGENT":              "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"PROXY_SERVER":            "",
	"UI_WAIT_TIMEOUT_SECONDS": 20,
	"RUN_TIMEOUT_MINUTES":     60,
	"DISCOVERY_MAX_ATTEMPTS":  10,
	"DISCOVERY_BACKOFF_MS":    500,
	"POSTGRES_URL":            "",
	"REDIS_ADDR":              "",
	"REDIS_PASSWORD":          "",
	"REDIS_DB":                0,
	"HTTP_ADDR":               "",
	"METRICS_TEXTFILE":        "",
	"SELECTOR_TITLE":          "h2.c0df3811",
	"SELECTOR_PRICE":          `span[aria-label="Price"]`,
	"SELECTOR_LOCATION":       "div._162e6469",
	"SELECTOR_DETAILS":        "span.b779b320",
	"SELECTOR_SUMMARY":        "span._5264eceb",
	"NO_RESULTS_TEXT":         "No property found",
	"SELECTOR_CITY_DROPDOWN":  `//*[@id="body-wrapper"]/header/div[6]/div/div[2]/div[2]/div[1]/div[1]/div/div`,
	"SELECTOR_CITY_BUTTONS":   ".ede17658 button",
	"SELECTOR_FIND_BUTTON":    `//*[@id="body-wrapper"]/header/div[6]/div/div[2]/div[2]/div[1]/a`,
}

// Load reads configuration from an optional .env file and the environment.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	// A missing .env is fine; the environment and defaults still apply.
	_ = v.ReadInConfig()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.HomeURL == "" {
		errs = append(errs, errors.New("HOME_URL must not be empty"))
	}
	if c.NumCities <= 0 {
		errs = append(errs, fmt.Errorf("NUM_CITIES must be positive, got %d", c.NumCities))
	}
	if c.MaxPages <= 0 {
		errs = append(errs, fmt.Errorf("MAX_PAGES must be positive, got %d", c.MaxPages))
	}
	if c.RawCSVPath == "" || c.CleanCSVPath == "" {
		errs = append(errs, errors.New("RAW_CSV_PATH and CLEAN_CSV_PATH must be set"))
	}
	if c.RawCSVPath != "" && c.RawCSVPath == c.CleanCSVPath {
		errs = append(errs, errors.New("RAW_CSV_PATH and CLEAN_CSV_PATH must differ"))
	}
	if c.UIWaitTimeoutSeconds <= 0 {
		errs = append(errs, fmt.Errorf("UI_WAIT_TIMEOUT_SECONDS must be positive, got %d", c.UIWaitTimeoutSeconds))
	}
	if c.DiscoveryMaxAttempts <= 0 {
		errs = append(errs, fmt.Errorf("DISCOVERY_MAX_ATTEMPTS must be positive, got %d", c.DiscoveryMaxAttempts))
	}
	return errors.Join(errs...)
}

func (c *Config) UIWaitTimeout() time.Duration {
	return time.Duration(c.UIWaitTimeoutSeconds) * time.Second
}

func (c *Config) RunTimeout() time.Duration {
	return time.Duration(c.RunTimeoutMinutes) * time.Minute
}

func (c *Config) DiscoveryBackoff() time.Duration {
	return time.Duration(c.DiscoveryBackoffMS) * time.Millisecond
}
