package environment

import "time"

type ClimateRisk struct {
	Risk        string `json:"risk"`
	Probability string `json:"probability"`
	Impact      string `json:"impact"`
}

type ClimateOutlook struct {
	TemperatureChange string `json:"temperature_change"`
	Precipitation     string `json:"precipitation"`
	ExtremeEvents     string `json:"extreme_events"`
}

type ClimatePredictions struct {
	Location             string                    `json:"location"`
	CurrentTemperature   float64                   `json:"current_temperature"`
	Predictions          map[string]ClimateOutlook `json:"predictions"`
	ClimateRisks         []ClimateRisk             `json:"climate_risks"`
	AdaptationStrategies []string                  `json:"adaptation_strategies"`
}

func ClimatePredictionsFor(location string) *ClimatePredictions {
	if location == "" {
		location = "Global"
	}
	return &ClimatePredictions{
		Location:           location,
		CurrentTemperature: 26.5,
		Predictions: map[string]ClimateOutlook{
			"1_month":  {"+0.5°C", "above average", "low probability"},
			"3_months": {"+1.2°C", "below average", "moderate probability"},
			"1_year":   {"+1.8°C", "variable", "high probability"},
		},
		ClimateRisks: []ClimateRisk{
			{"Heat waves", "high", "severe"},
			{"Drought", "moderate", "moderate"},
			{"Flooding", "low", "high"},
		},
		AdaptationStrategies: []string{
			"Improve water conservation",
			"Enhance urban green spaces",
			"Upgrade infrastructure resilience",
		},
	}
}

type HeatPoint struct {
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Value  float64 `json:"value"`
	Status string  `json:"status"`
}

type Heatmap struct {
	Pollutant string            `json:"pollutant"`
	Unit      string            `json:"unit"`
	Timestamp time.Time         `json:"timestamp"`
	Locations []HeatPoint       `json:"locations"`
	Legend    map[string]string `json:"legend"`
}

// PollutionHeatmap returns sensor readings around the monitored city. PM2.5
// is reported in µg/m³, everything else in ppm.
func (s *Service) PollutionHeatmap(pollutant string) *Heatmap {
	if pollutant == "" {
		pollutant = "pm2.5"
	}
	unit := "ppm"
	if pollutant == "pm2.5" {
		unit = "µg/m³"
	}
	return &Heatmap{
		Pollutant: pollutant,
		Unit:      unit,
		Timestamp: s.now().UTC(),
		Locations: []HeatPoint{
			{22.8046, 86.2029, 95, "moderate"},
			{22.7867, 86.1845, 120, "unhealthy"},
			{22.8156, 86.2234, 75, "good"},
			{22.7956, 86.2123, 105, "moderate"},
			{22.8234, 86.1967, 145, "unhealthy"},
		},
		Legend: map[string]string{
			"good":           "0-50",
			"moderate":       "51-100",
			"unhealthy":      "101-150",
			"very_unhealthy": "151-200",
			"hazardous":      "201+",
		},
	}
}

// RenewableEnergy reports generation against capacity in MW.
func RenewableEnergy() map[string]interface{} {
	return map[string]interface{}{
		"current_generation":    map[string]int{"solar": 450, "wind": 320, "hydro": 890, "biomass": 120, "total": 1780},
		"capacity":              map[string]int{"solar": 600, "wind": 450, "hydro": 1000, "biomass": 150, "total": 2200},
		"efficiency_percentage": 80.9,
		"co2_avoided_today":     2450,
		"daily_trends": []map[string]interface{}{
			{"hour": "00:00", "generation": 890},
			{"hour": "06:00", "generation": 1200},
			{"hour": "12:00", "generation": 1780},
			{"hour": "18:00", "generation": 1450},
			{"hour": "23:00", "generation": 920},
		},
		"recommendations": []string{
			"Increase solar panel installation",
			"Optimize wind turbine placement",
			"Implement battery storage systems",
		},
	}
}
