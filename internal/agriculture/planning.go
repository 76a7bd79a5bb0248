package agriculture

import (
	"context"
	"fmt"

	"github.com/ecohealth/sentinel/internal/apperr"
	"github.com/ecohealth/sentinel/internal/jitter"
	"github.com/ecohealth/sentinel/internal/models"
	"github.com/ecohealth/sentinel/internal/repository"
)

const dateLayout = "2006-01-02"

type PricePoint struct {
	Date           string  `json:"date"`
	PredictedPrice float64 `json:"predicted_price"`
	Confidence     float64 `json:"confidence"`
}

type MarketForecast struct {
	CropType        string       `json:"crop_type"`
	ForecastPeriod  string       `json:"forecast_period"`
	Forecast        []PricePoint `json:"forecast"`
	Trend           string       `json:"trend"`
	Recommendations []string     `json:"recommendations"`
}

// MarketForecast projects prices for the next days (1 to 30) around a base of 50.
func (s *Service) MarketForecast(cropType string, days int) (*MarketForecast, error) {
	if days < 1 || days > 30 {
		return nil, apperr.BadRequest("days must be between 1 and 30")
	}
	if cropType == "" {
		cropType = "General"
	}
	today := s.now().UTC()
	points := make([]PricePoint, 0, days)
	for i := 0; i < days; i++ {
		points = append(points, PricePoint{
			Date:           today.AddDate(0, 0, i).Format(dateLayout),
			PredictedPrice: jitter.Round2(50 + s.rnd.Uniform(-5, 10)),
			Confidence:     jitter.Round2(s.rnd.Uniform(0.75, 0.95)),
		})
	}
	return &MarketForecast{
		CropType:       cropType,
		ForecastPeriod: fmt.Sprintf("%d days", days),
		Forecast:       points,
		Trend:          "increasing",
		Recommendations: []string{
			"Consider selling in the next 5-7 days for optimal prices",
			"Monitor market trends daily",
		},
	}, nil
}

type TempRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type WeatherDay struct {
	Date         string    `json:"date"`
	Temperature  TempRange `json:"temperature"`
	Humidity     int       `json:"humidity"`
	RainfallMM   float64   `json:"rainfall_mm"`
	WindSpeedKMH float64   `json:"wind_speed_kmh"`
	Condition    string    `json:"condition"`
}

type WeatherForecast struct {
	Location string              `json:"location"`
	Forecast []WeatherDay        `json:"forecast"`
	Alerts   []map[string]string `json:"alerts"`
}

var conditions = []string{"Sunny", "Partly Cloudy", "Cloudy", "Rainy"}

// Weather returns a synthetic outlook for 1 to 14 days.
func (s *Service) Weather(location string, days int) (*WeatherForecast, error) {
	if days < 1 || days > 14 {
		return nil, apperr.BadRequest("days must be between 1 and 14")
	}
	if location == "" {
		location = "Current Location"
	}
	today := s.now().UTC()
	out := make([]WeatherDay, 0, days)
	for i := 0; i < days; i++ {
		out = append(out, WeatherDay{
			Date:         today.AddDate(0, 0, i).Format(dateLayout),
			Temperature:  TempRange{Min: s.rnd.Intn(20, 25), Max: s.rnd.Intn(28, 35)},
			Humidity:     s.rnd.Intn(60, 85),
			RainfallMM:   jitter.Round1(s.rnd.Uniform(0, 20)),
			WindSpeedKMH: jitter.Round1(s.rnd.Uniform(5, 20)),
			Condition:    conditions[s.rnd.Pick(len(conditions))],
		})
	}
	return &WeatherForecast{
		Location: location,
		Forecast: out,
		Alerts:   []map[string]string{{"type": "info", "message": "Favorable conditions for irrigation"}},
	}, nil
}

type ScheduleInput struct {
	FarmID   string  `json:"farm_id" binding:"required"`
	CropType string  `json:"crop_type" binding:"required"`
	AreaSize float64 `json:"area_size" binding:"required,gt=0"`
	SoilType string  `json:"soil_type"`
}

type ScheduleResult struct {
	ID               string                  `json:"id"`
	Schedule         []models.IrrigationSlot `json:"schedule"`
	TotalWeeklyWater float64                 `json:"total_weekly_water"`
	Recommendations  []string                `json:"recommendations"`
}

// SmartSchedule stores a three-day weekly irrigation plan for a farm.
func (s *Service) SmartSchedule(ctx context.Context, in ScheduleInput) (*ScheduleResult, error) {
	slots := make([]models.IrrigationSlot, 0, 3)
	var total float64
	for _, day := range []string{"Monday", "Wednesday", "Friday"} {
		slots = append(slots, models.IrrigationSlot{Day: day, Time: "06:00", DurationMinutes: 30, WaterAmountLiters: 500})
		total += 500
	}
	plan := &models.IrrigationSchedule{
		FarmID:           in.FarmID,
		CropType:         in.CropType,
		AreaSize:         in.AreaSize,
		SoilType:         in.SoilType,
		Schedule:         slots,
		TotalWeeklyWater: total,
		Active:           true,
		CreatedAt:        s.now().UTC(),
	}
	if err := s.schedules.Insert(ctx, plan); err != nil {
		return nil, fmt.Errorf("save schedule: %w", err)
	}
	return &ScheduleResult{
		ID:               plan.ID,
		Schedule:         plan.Schedule,
		TotalWeeklyWater: plan.TotalWeeklyWater,
		Recommendations: []string{
			"Adjust schedule based on rainfall",
			"Monitor soil moisture levels",
			"Consider drip irrigation for better efficiency",
		},
	}, nil
}

// Schedules lists active plans, optionally for one farm.
func (s *Service) Schedules(ctx context.Context, farmID string) ([]models.IrrigationSchedule, error) {
	q := repository.Query{
		Filters: []repository.Filter{repository.Where("active", repository.Eq, true)},
		SortBy:  "created_at",
		Desc:    true,
		Limit:   50,
	}
	if farmID != "" {
		q.Filters = append(q.Filters, repository.Where("farm_id", repository.Eq, farmID))
	}
	return s.schedules.Find(ctx, q)
}

type FertilizerInput struct {
	CropType string  `json:"crop_type" binding:"required"`
	SoilType string  `json:"soil_type" binding:"required"`
	AreaSize float64 `json:"area_size" binding:"required,gt=0"`
}

// Fertilizer stores and returns a dosage plan scaled by area.
func (s *Service) Fertilizer(ctx context.Context, in FertilizerInput) (*models.FertilizerPlan, error) {
	plan := &models.FertilizerPlan{
		CropType: in.CropType,
		SoilType: in.SoilType,
		AreaSize: in.AreaSize,
		RecommendedFertilizers: []models.FertilizerDose{
			{Name: "NPK 20-20-20", QuantityKg: in.AreaSize * 0.5, ApplicationMethod: "Broadcast", Frequency: "Every 2 weeks"},
			{Name: "Organic Compost", QuantityKg: in.AreaSize * 2, ApplicationMethod: "Top dressing", Frequency: "Monthly"},
		},
		ApplicationSchedule: []models.FertilizerStep{
			{Week: 1, Fertilizer: "NPK 20-20-20", Amount: "50% of recommended"},
			{Week: 3, Fertilizer: "NPK 20-20-20", Amount: "50% of recommended"},
			{Week: 4, Fertilizer: "Organic Compost", Amount: "Full dose"},
		},
		EstimatedCost: in.AreaSize * 150,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.plans.Insert(ctx, plan); err != nil {
		return nil, fmt.Errorf("save fertilizer plan: %w", err)
	}
	return plan, nil
}

type PestInput struct {
	CropType     string  `json:"crop_type" binding:"required"`
	PestType     string  `json:"pest_type"`
	AffectedArea float64 `json:"affected_area"`
}

type Pest struct {
	Name           string   `json:"name"`
	Severity       string   `json:"severity"`
	ControlMethods []string `json:"control_methods"`
}

type ChemicalSolution struct {
	Name        string `json:"name"`
	Dosage      string `json:"dosage"`
	Precautions string `json:"precautions"`
}

type PestPlan struct {
	CropType           string             `json:"crop_type"`
	IdentifiedPests    []Pest             `json:"identified_pests"`
	PreventiveMeasures []string           `json:"preventive_measures"`
	OrganicSolutions   []string           `json:"organic_solutions"`
	ChemicalSolutions  []ChemicalSolution `json:"chemical_solutions"`
}

func (s *Service) PestControl(in PestInput) *PestPlan {
	pest := in.PestType
	if pest == "" {
		pest = "Aphids"
	}
	return &PestPlan{
		CropType: in.CropType,
		IdentifiedPests: []Pest{{
			Name:     pest,
			Severity: "Medium",
			ControlMethods: []string{
				"Neem oil spray",
				"Introduce beneficial insects (ladybugs)",
				"Remove infected plant parts",
			},
		}},
		PreventiveMeasures: []string{
			"Regular crop inspection",
			"Maintain field hygiene",
			"Use pest-resistant varieties",
			"Implement crop rotation",
		},
		OrganicSolutions: []string{"Neem oil", "Garlic spray", "Companion planting"},
		ChemicalSolutions: []ChemicalSolution{{
			Name:        "Imidacloprid",
			Dosage:      "0.5ml per liter",
			Precautions: "Wear protective gear, avoid use before harvest",
		}},
	}
}
