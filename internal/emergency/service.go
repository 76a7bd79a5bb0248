// Package emergency tracks hospital load metrics, outbreak predictions and
// the notifications raised for high-risk predictions.
package emergency

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ecohealth/sentinel/internal/models"
	"github.com/ecohealth/sentinel/internal/repository"
)

// A High prediction above this probability (percent) raises a notification.
const alertProbability = 75

type Service struct {
	metrics       repository.Collection[models.EmergencyMetrics]
	predictions   repository.Collection[models.Prediction]
	notifications repository.Collection[models.Notification]
	now           func() time.Time
}

func NewService(b *repository.Backend) *Service {
	return &Service{
		metrics:       repository.For[models.EmergencyMetrics](b, models.EmergencyMetricsLog),
		predictions:   repository.For[models.Prediction](b, models.Predictions),
		notifications: repository.For[models.Notification](b, models.Notifications),
		now:           time.Now,
	}
}

// Metrics returns the latest snapshot, or baseline figures when none exist.
func (s *Service) Metrics(ctx context.Context) (*models.EmergencyMetrics, error) {
	m, err := s.metrics.FindOne(ctx, repository.Query{SortBy: "timestamp", Desc: true})
	if errors.Is(err, repository.ErrNotFound) {
		return &models.EmergencyMetrics{
			CurrentLoad:     23,
			PredictedPeak:   45,
			AvgResponseTime: 8.5,
			BedAvailability: 76,
			Timestamp:       s.now().UTC(),
		}, nil
	}
	return m, err
}

type MetricsInput struct {
	CurrentLoad     float64 `json:"currentLoad" binding:"gte=0"`
	PredictedPeak   float64 `json:"predictedPeak" binding:"gte=0"`
	AvgResponseTime float64 `json:"avgResponseTime" binding:"gte=0"`
	BedAvailability float64 `json:"bedAvailability" binding:"gte=0,lte=100"`
}

func (s *Service) RecordMetrics(ctx context.Context, in MetricsInput) (*models.EmergencyMetrics, error) {
	m := &models.EmergencyMetrics{
		CurrentLoad:     in.CurrentLoad,
		PredictedPeak:   in.PredictedPeak,
		AvgResponseTime: in.AvgResponseTime,
		BedAvailability: in.BedAvailability,
		Timestamp:       s.now().UTC(),
	}
	if err := s.metrics.Insert(ctx, m); err != nil {
		return nil, fmt.Errorf("save metrics: %w", err)
	}
	return m, nil
}

// NormalizeRiskLevel capitalises the first letter; "" and "all" mean no filter.
func NormalizeRiskLevel(level string) string {
	level = strings.TrimSpace(level)
	if level == "" || strings.EqualFold(level, "all") {
		return ""
	}
	return strings.ToUpper(level[:1]) + level[1:]
}

// Predictions returns the ten newest predictions, optionally for one risk level.
func (s *Service) Predictions(ctx context.Context, riskLevel string) ([]models.Prediction, error) {
	q := repository.Query{SortBy: "timestamp", Desc: true, Limit: 10}
	if lvl := NormalizeRiskLevel(riskLevel); lvl != "" {
		q.Filters = append(q.Filters, repository.Where("riskLevel", repository.Eq, lvl))
	}
	return s.predictions.Find(ctx, q)
}

type PredictionInput struct {
	Type              string   `json:"type" binding:"required"`
	RiskLevel         string   `json:"riskLevel" binding:"required"`
	Probability       float64  `json:"probability" binding:"gte=0,lte=100"`
	Timeframe         string   `json:"timeframe"`
	Factors           []string `json:"factors"`
	RecommendedAction string   `json:"recommendedAction"`
	Confidence        float64  `json:"confidence"`
	AffectedArea      string   `json:"affectedArea"`
	EstimatedCases    string   `json:"estimatedCases"`
}

// RecordPrediction stores a prediction and notifies when it is High with a
// probability above 75 percent.
func (s *Service) RecordPrediction(ctx context.Context, in PredictionInput) (*models.Prediction, error) {
	factors := in.Factors
	if factors == nil {
		factors = []string{}
	}
	p := &models.Prediction{
		Type:              in.Type,
		RiskLevel:         NormalizeRiskLevel(in.RiskLevel),
		Probability:       in.Probability,
		Timeframe:         in.Timeframe,
		Factors:           factors,
		RecommendedAction: in.RecommendedAction,
		Confidence:        in.Confidence,
		AffectedArea:      in.AffectedArea,
		EstimatedCases:    in.EstimatedCases,
		Timestamp:         s.now().UTC(),
	}
	if err := s.predictions.Insert(ctx, p); err != nil {
		return nil, fmt.Errorf("save prediction: %w", err)
	}
	if p.RiskLevel == "High" && p.Probability > alertProbability {
		n := &models.Notification{
			Title:     "High Risk Alert",
			Message:   fmt.Sprintf("%s predicted with %s%% probability", p.Type, strconv.FormatFloat(p.Probability, 'f', -1, 64)),
			Priority:  "high",
			Timestamp: s.now().UTC(),
		}
		if err := s.notifications.Insert(ctx, n); err != nil {
			return nil, fmt.Errorf("save notification: %w", err)
		}
	}
	return p, nil
}

// Notifications returns the twenty newest notifications.
func (s *Service) Notifications(ctx context.Context) ([]models.Notification, error) {
	return s.notifications.Find(ctx, repository.Query{SortBy: "timestamp", Desc: true, Limit: 20})
}
