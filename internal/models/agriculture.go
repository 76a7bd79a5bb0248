package models

import "time"

type DiseaseDetection struct {
	Base            `bson:",inline"`
	DiseaseName     string    `bson:"disease_name" json:"disease_name"`
	Confidence      float64   `bson:"confidence" json:"confidence"`
	Severity        string    `bson:"severity" json:"severity"`
	Recommendations []string  `bson:"recommendations" json:"recommendations"`
	CropType        string    `bson:"crop_type,omitempty" json:"crop_type,omitempty"`
	ImageName       string    `bson:"image_name,omitempty" json:"image_name,omitempty"`
	ImageKey        string    `bson:"image_key,omitempty" json:"image_key,omitempty"`
	Source          string    `bson:"source" json:"source"`
	DetectedAt      time.Time `bson:"detected_at" json:"detected_at"`
}

type IrrigationSlot struct {
	Day               string  `bson:"day" json:"day"`
	Time              string  `bson:"time" json:"time"`
	DurationMinutes   int     `bson:"duration_minutes" json:"duration_minutes"`
	WaterAmountLiters float64 `bson:"water_amount_liters" json:"water_amount_liters"`
}

type IrrigationSchedule struct {
	Base             `bson:",inline"`
	FarmID           string           `bson:"farm_id" json:"farm_id"`
	CropType         string           `bson:"crop_type" json:"crop_type"`
	AreaSize         float64          `bson:"area_size" json:"area_size"`
	SoilType         string           `bson:"soil_type,omitempty" json:"soil_type,omitempty"`
	Schedule         []IrrigationSlot `bson:"schedule" json:"schedule"`
	TotalWeeklyWater float64          `bson:"total_weekly_water" json:"total_weekly_water"`
	Active           bool             `bson:"active" json:"active"`
	CreatedAt        time.Time        `bson:"created_at" json:"created_at"`
}

type FertilizerDose struct {
	Name              string  `bson:"name" json:"name"`
	QuantityKg        float64 `bson:"quantity_kg" json:"quantity_kg"`
	ApplicationMethod string  `bson:"application_method" json:"application_method"`
	Frequency         string  `bson:"frequency" json:"frequency"`
}

type FertilizerStep struct {
	Week       int    `bson:"week" json:"week"`
	Fertilizer string `bson:"fertilizer" json:"fertilizer"`
	Amount     string `bson:"amount" json:"amount"`
}

type FertilizerPlan struct {
	Base                   `bson:",inline"`
	CropType               string           `bson:"crop_type" json:"crop_type"`
	SoilType               string           `bson:"soil_type" json:"soil_type"`
	AreaSize               float64          `bson:"area_size" json:"area_size"`
	RecommendedFertilizers []FertilizerDose `bson:"recommended_fertilizers" json:"recommended_fertilizers"`
	ApplicationSchedule    []FertilizerStep `bson:"application_schedule" json:"application_schedule"`
	EstimatedCost          float64          `bson:"estimated_cost" json:"estimated_cost"`
	CreatedAt              time.Time        `bson:"created_at" json:"created_at"`
}
