package environment

import (
	"context"
	"testing"
	"time"

	"github.com/ecohealth/sentinel/internal/apperr"
	"github.com/ecohealth/sentinel/internal/models"
	"github.com/ecohealth/sentinel/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, now time.Time) *Service {
	t.Helper()
	s := NewService(repository.NewMemoryBackend())
	s.now = func() time.Time { return now }
	return s
}

func TestCalculateCarbon(t *testing.T) {
	s := newService(t, time.Now())
	ctx := context.Background()

	cases := []struct {
		activity string
		value    float64
		kg       float64
	}{
		{"electricity", 100, 50},
		{"Gasoline", 10, 23},
		{"flight", 2, 180},
		{"car", 100, 12},
		{"public_transport", 100, 4},
		{"travel", 10, 2},
		{"unknown", 7, 7},
	}
	for _, tc := range cases {
		got, err := s.CalculateCarbon(ctx, CarbonInput{ActivityType: tc.activity, Value: tc.value, Unit: "unit"})
		require.NoError(t, err, tc.activity)
		assert.Equal(t, tc.kg, got.Result.CarbonEmissionKg, tc.activity)
		assert.Equal(t, "kg CO2e", got.Result.Unit)
	}

	got, err := s.CalculateCarbon(ctx, CarbonInput{ActivityType: "electricity", Value: 420})
	require.NoError(t, err)
	assert.Equal(t, 210.0, got.Result.CarbonEmissionKg)
	assert.Equal(t, 0.21, got.Result.CarbonEmissionTons)
	assert.Equal(t, 10.0, got.Result.TreesToOffset)

	_, err = s.CalculateCarbon(ctx, CarbonInput{ActivityType: "car", Value: -1})
	require.Equal(t, 400, apperr.StatusOf(err))
}

func TestLogWaste(t *testing.T) {
	s := newService(t, time.Now())
	ctx := context.Background()

	l, err := s.LogWaste(ctx, WasteInput{WasteType: "Metal", Quantity: 10, Unit: "kg"})
	require.NoError(t, err)
	assert.Equal(t, 0.85, l.RecyclingRate)
	assert.InDelta(t, 8.5, l.RecyclableAmount, 1e-9)
	assert.InDelta(t, 21.25, l.EnvironmentalImpact.CO2SavedKg, 1e-9)
	assert.InDelta(t, 42.5, l.EnvironmentalImpact.EnergySavedKwh, 1e-9)
	assert.InDelta(t, 6.8, l.EnvironmentalImpact.LandfillSpaceSavedM3, 1e-9)

	l, err = s.LogWaste(ctx, WasteInput{WasteType: "textile", Quantity: 10})
	require.NoError(t, err)
	assert.Equal(t, 0.3, l.RecyclingRate)

	logs, err := s.WasteLogs(ctx, 1)
	require.NoError(t, err)
	require.Len(t, logs, 1)
}

func TestDashboardCountsToday(t *testing.T) {
	today := time.Date(2026, 5, 4, 15, 0, 0, 0, time.UTC)
	s := newService(t, today.AddDate(0, 0, -1))
	ctx := context.Background()

	_, err := s.LogWaste(ctx, WasteInput{WasteType: "paper", Quantity: 100})
	require.NoError(t, err)

	s.now = func() time.Time { return today }
	_, err = s.LogWaste(ctx, WasteInput{WasteType: "glass", Quantity: 4})
	require.NoError(t, err)
	_, err = s.CalculateCarbon(ctx, CarbonInput{ActivityType: "gasoline", Value: 10})
	require.NoError(t, err)
	_, err = s.PredictDisaster(ctx, DisasterInput{DisasterType: "flood", Location: "Assam"})
	require.NoError(t, err)
	require.NoError(t, s.disasters.Insert(ctx, &models.DisasterPrediction{DisasterType: "wildfire", Location: "Uttarakhand", RiskLevel: "high", Probability: 0.9}))

	d, err := s.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3.0, d["waste_recycled_today"])
	assert.Equal(t, 23.0, d["carbon_footprint_today"])
	assert.Equal(t, int64(1), d["active_alerts"])
}

func TestPredictDisaster(t *testing.T) {
	s := newService(t, time.Now())
	p, err := s.PredictDisaster(context.Background(), DisasterInput{DisasterType: "cyclone", Location: "Odisha"})
	require.NoError(t, err)
	assert.Equal(t, "moderate", p.RiskLevel)
	assert.Equal(t, 0.65, p.Probability)
	assert.Equal(t, "next 7 days", p.TimeWindow)
	assert.NotEmpty(t, p.ID)
	assert.Len(t, p.Recommendations, 4)
}

func TestStaticViews(t *testing.T) {
	s := newService(t, time.Now())
	assert.Equal(t, "µg/m³", s.PollutionHeatmap("").Unit)
	assert.Equal(t, "ppm", s.PollutionHeatmap("no2").Unit)
	assert.Len(t, s.PollutionHeatmap("").Locations, 5)
	assert.Equal(t, "Global", ClimatePredictionsFor("").Location)
	assert.Equal(t, 80.9, RenewableEnergy()["efficiency_percentage"])
}
