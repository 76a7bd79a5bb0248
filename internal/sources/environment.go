package sources

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// NASAAPOD reports the NASA astronomy picture of the day caption.
type NASAAPOD struct {
	client *resty.Client
	apiKey string
}

func (n *NASAAPOD) Name() string { return "nasa_apod" }

func (n *NASAAPOD) Fetch(ctx context.Context, _ string) (string, error) {
	if n.apiKey == "" {
		return "", ErrSkipped
	}
	var out struct {
		Title       string `json:"title"`
		Explanation string `json:"explanation"`
	}
	if err := get(ctx, n.client, "/planetary/apod", map[string]string{"api_key": n.apiKey}, &out); err != nil {
		return "", err
	}
	if out.Title == "" {
		return "", fmt.Errorf("nasa apod: empty title")
	}
	return fmt.Sprintf("NASA Climate Insight: %s - %s", out.Title, out.Explanation), nil
}

// EPAAirQuality reports the first PM2.5 reading of the EPA envirofacts feed.
type EPAAirQuality struct {
	client *resty.Client
	url    string
}

func (e *EPAAirQuality) Name() string { return "epa_pm25" }

func (e *EPAAirQuality) Fetch(ctx context.Context, _ string) (string, error) {
	if e.url == "" {
		return "", ErrSkipped
	}
	var out []map[string]interface{}
	if err := get(ctx, e.client, e.url, nil, &out); err != nil {
		return "", err
	}
	if len(out) == 0 {
		return "", fmt.Errorf("epa: no readings")
	}
	v, ok := out[0]["Value"]
	if !ok {
		v, ok = out[0]["value"]
	}
	if !ok {
		return "", fmt.Errorf("epa: reading has no value")
	}
	return fmt.Sprintf("EPA Air Quality: PM2.5 level around %v", v), nil
}

// AirQualityIndex reads an OpenWeather-style air pollution endpoint.
type AirQualityIndex struct {
	client *resty.Client
	url    string
}

func (a *AirQualityIndex) Name() string { return "aqi" }

func (a *AirQualityIndex) Fetch(ctx context.Context, _ string) (string, error) {
	if a.url == "" {
		return "", ErrSkipped
	}
	var out struct {
		List []struct {
			Main struct {
				AQI int `json:"aqi"`
			} `json:"main"`
		} `json:"list"`
	}
	if err := get(ctx, a.client, a.url, nil, &out); err != nil {
		return "", err
	}
	if len(out.List) == 0 {
		return "", fmt.Errorf("aqi: empty list")
	}
	return fmt.Sprintf("Air Quality Index: %d", out.List[0].Main.AQI), nil
}
