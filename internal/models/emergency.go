package models

import "time"

type Notification struct {
	Base      `bson:",inline"`
	Title     string    `bson:"title" json:"title"`
	Message   string    `bson:"message" json:"message"`
	Priority  string    `bson:"priority" json:"priority"`
	Read      bool      `bson:"read" json:"read"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

type Prediction struct {
	Base              `bson:",inline"`
	Type              string    `bson:"type" json:"type"`
	RiskLevel         string    `bson:"riskLevel" json:"riskLevel"`
	Probability       float64   `bson:"probability" json:"probability"`
	Timeframe         string    `bson:"timeframe,omitempty" json:"timeframe,omitempty"`
	Factors           []string  `bson:"factors" json:"factors"`
	RecommendedAction string    `bson:"recommendedAction,omitempty" json:"recommendedAction,omitempty"`
	Confidence        float64   `bson:"confidence,omitempty" json:"confidence,omitempty"`
	AffectedArea      string    `bson:"affectedArea,omitempty" json:"affectedArea,omitempty"`
	EstimatedCases    string    `bson:"estimatedCases,omitempty" json:"estimatedCases,omitempty"`
	Timestamp         time.Time `bson:"timestamp" json:"timestamp"`
}

type EmergencyMetrics struct {
	Base            `bson:",inline"`
	CurrentLoad     float64   `bson:"currentLoad" json:"currentLoad"`
	PredictedPeak   float64   `bson:"predictedPeak" json:"predictedPeak"`
	AvgResponseTime float64   `bson:"avgResponseTime" json:"avgResponseTime"`
	BedAvailability float64   `bson:"bedAvailability" json:"bedAvailability"`
	Timestamp       time.Time `bson:"timestamp" json:"timestamp"`
}
