package models

import "time"

type CarbonResult struct {
	CarbonEmissionKg   float64  `bson:"carbon_emission_kg" json:"carbon_emission_kg"`
	CarbonEmissionTons float64  `bson:"carbon_emission_tons" json:"carbon_emission_tons"`
	TreesToOffset      float64  `bson:"trees_to_offset" json:"trees_to_offset"`
	CarbonFootprint    float64  `bson:"carbon_footprint" json:"carbon_footprint"`
	Unit               string   `bson:"unit" json:"unit"`
	Recommendations    []string `bson:"recommendations" json:"recommendations"`
}

type CarbonCalculation struct {
	Base         `bson:",inline"`
	ActivityType string       `bson:"activity_type" json:"activity_type"`
	Value        float64      `bson:"value" json:"value"`
	Unit         string       `bson:"unit" json:"unit"`
	Result       CarbonResult `bson:"result" json:"result"`
	Timestamp    time.Time    `bson:"timestamp" json:"timestamp"`
}

type DisasterPrediction struct {
	Base                `bson:",inline"`
	DisasterType        string    `bson:"disaster_type" json:"disaster_type"`
	Location            string    `bson:"location" json:"location"`
	RiskLevel           string    `bson:"risk_level" json:"risk_level"`
	Probability         float64   `bson:"probability" json:"probability"`
	TimeWindow          string    `bson:"time_window" json:"time_window"`
	SeverityEstimate    string    `bson:"severity_estimate" json:"severity_estimate"`
	AffectedRadiusKm    float64   `bson:"affected_radius_km" json:"affected_radius_km"`
	PredictionTimestamp time.Time `bson:"prediction_timestamp" json:"prediction_timestamp"`
}

type WasteImpact struct {
	CO2SavedKg           float64 `bson:"co2_saved_kg" json:"co2_saved_kg"`
	EnergySavedKwh       float64 `bson:"energy_saved_kwh" json:"energy_saved_kwh"`
	LandfillSpaceSavedM3 float64 `bson:"landfill_space_saved_m3" json:"landfill_space_saved_m3"`
}

type WasteLog struct {
	Base                `bson:",inline"`
	WasteType           string      `bson:"waste_type" json:"waste_type"`
	Quantity            float64     `bson:"quantity" json:"quantity"`
	Unit                string      `bson:"unit" json:"unit"`
	RecyclableAmount    float64     `bson:"recyclable_amount" json:"recyclable_amount"`
	RecyclingRate       float64     `bson:"recycling_rate" json:"recycling_rate"`
	EnvironmentalImpact WasteImpact `bson:"environmental_impact" json:"environmental_impact"`
	Timestamp           time.Time   `bson:"timestamp" json:"timestamp"`
}
