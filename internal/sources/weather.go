package sources

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/go-resty/resty/v2"
)

type owmCondition struct {
	Description string `json:"description"`
}

type owmMain struct {
	Temp     float64 `json:"temp"`
	TempMin  float64 `json:"temp_min"`
	TempMax  float64 `json:"temp_max"`
	Humidity float64 `json:"humidity"`
}

// owmQuery addresses OpenWeather by city name or by "lat,lon".
func owmQuery(location, apiKey string) map[string]string {
	q := map[string]string{"appid": apiKey, "units": "metric"}
	if lat, lon, ok := strings.Cut(location, ","); ok {
		q["lat"] = strings.TrimSpace(lat)
		q["lon"] = strings.TrimSpace(lon)
	} else {
		q["q"] = location
	}
	return q
}

// OpenWeatherCurrent reports current conditions.
type OpenWeatherCurrent struct {
	client      *resty.Client
	apiKey      string
	defaultCity string
}

func (w *OpenWeatherCurrent) Name() string { return "openweather_current" }

func (w *OpenWeatherCurrent) Fetch(ctx context.Context, location string) (string, error) {
	if w.apiKey == "" {
		return "", ErrSkipped
	}
	if location == "" {
		location = w.defaultCity
	}
	var out struct {
		Name    string         `json:"name"`
		Weather []owmCondition `json:"weather"`
		Main    owmMain        `json:"main"`
	}
	if err := get(ctx, w.client, "/data/2.5/weather", owmQuery(location, w.apiKey), &out); err != nil {
		return "", err
	}
	if len(out.Weather) == 0 {
		return "", fmt.Errorf("openweather: empty conditions")
	}
	name := out.Name
	if name == "" {
		name = location
	}
	return fmt.Sprintf("Weather in %s: %s, Temp: %.1f°C, Humidity: %.0f%%", name, out.Weather[0].Description, out.Main.Temp, out.Main.Humidity), nil
}

// OpenWeatherForecast summarises the next 24 hours of the 5-day forecast.
type OpenWeatherForecast struct {
	client      *resty.Client
	apiKey      string
	defaultCity string
}

func (w *OpenWeatherForecast) Name() string { return "openweather_forecast" }

func (w *OpenWeatherForecast) Fetch(ctx context.Context, location string) (string, error) {
	if w.apiKey == "" {
		return "", ErrSkipped
	}
	if location == "" {
		location = w.defaultCity
	}
	q := owmQuery(location, w.apiKey)
	q["cnt"] = "8"
	var out struct {
		List []struct {
			Main    owmMain        `json:"main"`
			Weather []owmCondition `json:"weather"`
			Pop     float64        `json:"pop"`
		} `json:"list"`
	}
	if err := get(ctx, w.client, "/data/2.5/forecast", q, &out); err != nil {
		return "", err
	}
	if len(out.List) == 0 {
		return "", fmt.Errorf("openweather forecast: no periods")
	}
	lo, hi, pop := math.Inf(1), math.Inf(-1), 0.0
	for _, p := range out.List {
		lo = math.Min(lo, p.Main.TempMin)
		hi = math.Max(hi, p.Main.TempMax)
		pop = math.Max(pop, p.Pop)
	}
	return fmt.Sprintf("Forecast for %s (next 24h): %.1f-%.1f°C, max chance of rain %.0f%%", location, lo, hi, pop*100), nil
}

// TomorrowRealtime reports Tomorrow.io realtime values.
type TomorrowRealtime struct {
	client          *resty.Client
	apiKey          string
	defaultLocation string
}

func (t *TomorrowRealtime) Name() string { return "tomorrow_realtime" }

func (t *TomorrowRealtime) Fetch(ctx context.Context, location string) (string, error) {
	if t.apiKey == "" {
		return "", ErrSkipped
	}
	if location == "" {
		location = t.defaultLocation
	}
	var out struct {
		Data struct {
			Values struct {
				Temperature              float64 `json:"temperature"`
				Humidity                 float64 `json:"humidity"`
				PrecipitationProbability float64 `json:"precipitationProbability"`
				WindSpeed                float64 `json:"windSpeed"`
			} `json:"values"`
		} `json:"data"`
	}
	params := map[string]string{"location": location, "apikey": t.apiKey, "units": "metric"}
	if err := get(ctx, t.client, "/v4/weather/realtime", params, &out); err != nil {
		return "", err
	}
	v := out.Data.Values
	return fmt.Sprintf("Tomorrow.io realtime: Temp %.1f°C, Humidity %.0f%%, Precipitation probability %.0f%%, Wind %.1f m/s",
		v.Temperature, v.Humidity, v.PrecipitationProbability, v.WindSpeed), nil
}
