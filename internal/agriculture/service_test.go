package agriculture

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/ecohealth/sentinel/internal/apperr"
	"github.com/ecohealth/sentinel/internal/jitter"
	"github.com/ecohealth/sentinel/internal/mlclient"
	"github.com/ecohealth/sentinel/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 30, 9, 0, 0, 0, time.UTC)

func newService(t *testing.T) *Service {
	t.Helper()
	s := NewService(repository.NewMemoryBackend(), jitter.Seeded(11))
	s.now = func() time.Time { return fixedNow }
	return s
}

type stubClassifier struct {
	got string
	err error
}

func (c *stubClassifier) DetectDisease(ctx context.Context, filename string, image io.Reader) (*mlclient.Detection, error) {
	b, _ := io.ReadAll(image)
	c.got = string(b)
	if c.err != nil {
		return nil, c.err
	}
	return &mlclient.Detection{DiseaseName: "Powdery Mildew", Confidence: 0.77, Severity: "Medium"}, nil
}

type memImages struct {
	keys []string
	fail bool
}

func (m *memImages) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if m.fail {
		return errors.New("bucket offline")
	}
	m.keys = append(m.keys, key)
	return nil
}

func TestMarketForecast(t *testing.T) {
	s := newService(t)
	f, err := s.MarketForecast("", 3)
	require.NoError(t, err)
	require.Equal(t, "General", f.CropType)
	require.Equal(t, "3 days", f.ForecastPeriod)
	require.Len(t, f.Forecast, 3)
	require.Equal(t, "2026-03-30", f.Forecast[0].Date)
	require.Equal(t, "2026-04-01", f.Forecast[2].Date)
	for _, p := range f.Forecast {
		assert.GreaterOrEqual(t, p.PredictedPrice, 45.0)
		assert.LessOrEqual(t, p.PredictedPrice, 60.0)
		assert.GreaterOrEqual(t, p.Confidence, 0.75)
		assert.LessOrEqual(t, p.Confidence, 0.95)
	}

	for _, days := range []int{0, 31, -2} {
		_, err := s.MarketForecast("wheat", days)
		require.Error(t, err)
		require.Equal(t, 400, apperr.StatusOf(err))
	}
}

func TestWeather(t *testing.T) {
	s := newService(t)
	w, err := s.Weather("", 14)
	require.NoError(t, err)
	require.Equal(t, "Current Location", w.Location)
	require.Len(t, w.Forecast, 14)
	for _, d := range w.Forecast {
		assert.True(t, d.Temperature.Min >= 20 && d.Temperature.Min <= 25)
		assert.True(t, d.Temperature.Max >= 28 && d.Temperature.Max <= 35)
		assert.True(t, d.Humidity >= 60 && d.Humidity <= 85)
		assert.Contains(t, conditions, d.Condition)
	}
	_, err = s.Weather("Pune", 15)
	require.Equal(t, 400, apperr.StatusOf(err))
}

func TestDetectDisease_Simulated(t *testing.T) {
	s := newService(t)
	res, err := s.DetectDisease(context.Background(), DetectInput{CropType: "tomato"})
	require.NoError(t, err)
	require.Equal(t, "simulated", res.Source)
	require.NotEmpty(t, res.ID)
	require.Contains(t, []string{"Late Blight", "Leaf Rust", "Healthy"}, res.DiseaseName)
	require.False(t, res.ImageStored)
}

func TestDetectDisease_ModelAndStorage(t *testing.T) {
	cls := &stubClassifier{}
	imgs := &memImages{}
	s := newService(t).WithClassifier(cls).WithImageStore(imgs)

	res, err := s.DetectDisease(context.Background(), DetectInput{
		CropType: "grape", Filename: "leaf.jpg", ContentType: "image/jpeg", Image: strings.NewReader("jpegbytes"),
	})
	require.NoError(t, err)
	require.Equal(t, "model", res.Source)
	require.Equal(t, "Powdery Mildew", res.DiseaseName)
	require.Equal(t, "jpegbytes", cls.got)
	require.True(t, res.ImageStored)
	require.Len(t, imgs.keys, 1)
	require.Equal(t, imgs.keys[0], res.ImageKey)
}

func TestDetectDisease_FailuresFallBack(t *testing.T) {
	s := newService(t).
		WithClassifier(&stubClassifier{err: errors.New("timeout")}).
		WithImageStore(&memImages{fail: true})

	res, err := s.DetectDisease(context.Background(), DetectInput{Filename: "a.png", Image: strings.NewReader("png")})
	require.NoError(t, err)
	require.Equal(t, "simulated", res.Source)
	require.False(t, res.ImageStored)
	require.Empty(t, res.ImageKey)
}

func TestSchedulesAndDashboard(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	r, err := s.SmartSchedule(ctx, ScheduleInput{FarmID: "farm-1", CropType: "rice", AreaSize: 2})
	require.NoError(t, err)
	require.Len(t, r.Schedule, 3)
	require.Equal(t, 1500.0, r.TotalWeeklyWater)
	require.Len(t, r.Recommendations, 3)
	_, err = s.SmartSchedule(ctx, ScheduleInput{FarmID: "farm-2", CropType: "rice", AreaSize: 1})
	require.NoError(t, err)

	all, err := s.Schedules(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	one, err := s.Schedules(ctx, "farm-1")
	require.NoError(t, err)
	require.Len(t, one, 1)
	require.Equal(t, r.ID, one[0].ID)

	_, err = s.DetectDisease(ctx, DetectInput{})
	require.NoError(t, err)

	d, err := s.Dashboard(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), d.Stats["total_farms"])
	require.Equal(t, int64(1), d.Stats["total_crops"])
	require.Equal(t, int64(1), d.Stats["recent_detections"])
	require.Equal(t, int64(15), d.Stats["active_schedules"])
	require.Len(t, d.RecentActivity, 1)
	require.Equal(t, "disease_detection", d.RecentActivity[0]["type"])
	require.Len(t, d.Alerts, 1)
}

func TestFertilizerAndPests(t *testing.T) {
	s := newService(t)
	p, err := s.Fertilizer(context.Background(), FertilizerInput{CropType: "wheat", SoilType: "loam", AreaSize: 4})
	require.NoError(t, err)
	require.Equal(t, 2.0, p.RecommendedFertilizers[0].QuantityKg)
	require.Equal(t, 8.0, p.RecommendedFertilizers[1].QuantityKg)
	require.Equal(t, 600.0, p.EstimatedCost)
	require.Equal(t, []int{1, 3, 4}, []int{p.ApplicationSchedule[0].Week, p.ApplicationSchedule[1].Week, p.ApplicationSchedule[2].Week})

	plan := s.PestControl(PestInput{CropType: "cotton"})
	require.Equal(t, "Aphids", plan.IdentifiedPests[0].Name)
	require.Equal(t, "Imidacloprid", plan.ChemicalSolutions[0].Name)
	require.Equal(t, "Whitefly", s.PestControl(PestInput{CropType: "cotton", PestType: "Whitefly"}).IdentifiedPests[0].Name)
}
