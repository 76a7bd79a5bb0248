// Package sources fetches the external context lines the chat adapters pass
// to the language models: weather, forecasts, air quality and NASA imagery
// captions.
package sources

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ecohealth/sentinel/internal/config"
	"github.com/go-resty/resty/v2"
	"github.com/redis/go-redis/v9"
)

// ErrSkipped marks a source that is not configured. Adapters drop it silently.
var ErrSkipped = errors.New("source not configured")

// Fetcher produces one line of context for a location. An empty location
// means the source's default.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context, location string) (string, error)
}

// Catalog holds every configured source.
type Catalog struct {
	Weather  Fetcher
	Forecast Fetcher
	Tomorrow Fetcher
	NASA     Fetcher
	EPA      Fetcher
	AQI      Fetcher
}

// NewCatalog builds the sources from cfg. When rdb is non-nil, results are
// cached in Redis for cfg.CacheTTL.
func NewCatalog(cfg config.SourcesConfig, rdb *redis.Client) *Catalog {
	api := func(base string) *resty.Client {
		c := resty.New().
			SetTimeout(cfg.RequestTimeout).
			SetHeader("Accept", "application/json")
		if base != "" {
			c.SetBaseURL(strings.TrimRight(base, "/"))
		}
		return c
	}
	c := &Catalog{
		Weather:  &OpenWeatherCurrent{client: api(cfg.OpenWeatherURL), apiKey: cfg.OpenWeatherKey, defaultCity: cfg.DefaultCity},
		Forecast: &OpenWeatherForecast{client: api(cfg.OpenWeatherURL), apiKey: cfg.OpenWeatherKey, defaultCity: cfg.DefaultCity},
		Tomorrow: &TomorrowRealtime{client: api(cfg.TomorrowURL), apiKey: cfg.TomorrowKey, defaultLocation: cfg.DefaultLocation},
		NASA:     &NASAAPOD{client: api(cfg.NASAURL), apiKey: cfg.NASAKey},
		EPA:      &EPAAirQuality{client: api(""), url: cfg.EPAURL},
		AQI:      &AirQualityIndex{client: api(""), url: cfg.AQIURL},
	}
	if rdb != nil && cfg.CacheTTL > 0 {
		c.Weather = Cached(c.Weather, rdb, cfg.CacheTTL)
		c.Forecast = Cached(c.Forecast, rdb, cfg.CacheTTL)
		c.Tomorrow = Cached(c.Tomorrow, rdb, cfg.CacheTTL)
		c.NASA = Cached(c.NASA, rdb, cfg.CacheTTL)
		c.EPA = Cached(c.EPA, rdb, cfg.CacheTTL)
		c.AQI = Cached(c.AQI, rdb, cfg.CacheTTL)
	}
	return c
}

// Agriculture lists the sources consulted for farm questions, in prompt order.
func (c *Catalog) Agriculture() []Fetcher {
	return []Fetcher{c.Weather, c.Forecast, c.Tomorrow}
}

// Environment lists the sources consulted for environmental questions, in prompt order.
func (c *Catalog) Environment() []Fetcher {
	return []Fetcher{c.NASA, c.EPA, c.Weather, c.AQI}
}

func get(ctx context.Context, client *resty.Client, path string, params map[string]string, out interface{}) error {
	resp, err := client.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(out).
		Get(path)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("GET %s returned %d", path, resp.StatusCode())
	}
	return nil
}
