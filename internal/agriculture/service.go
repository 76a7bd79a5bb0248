// Package agriculture serves the farm dashboard, disease detection and the
// planning endpoints (irrigation, fertilizer, pest control, market and
// weather outlooks).
package agriculture

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ecohealth/sentinel/internal/apperr"
	"github.com/ecohealth/sentinel/internal/jitter"
	"github.com/ecohealth/sentinel/internal/mlclient"
	"github.com/ecohealth/sentinel/internal/models"
	"github.com/ecohealth/sentinel/internal/repository"
	"github.com/ecohealth/sentinel/internal/storage"
	"github.com/ecohealth/sentinel/pkg/logger"
)

const maxImageBytes = 10 << 20

// Classifier labels a leaf image.
type Classifier interface {
	DetectDisease(ctx context.Context, filename string, image io.Reader) (*mlclient.Detection, error)
}

// ImageStore keeps uploaded images.
type ImageStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
}

type Service struct {
	detections repository.Collection[models.DiseaseDetection]
	schedules  repository.Collection[models.IrrigationSchedule]
	plans      repository.Collection[models.FertilizerPlan]
	rnd        *jitter.Source
	classifier Classifier
	images     ImageStore
	now        func() time.Time
}

func NewService(b *repository.Backend, rnd *jitter.Source) *Service {
	return &Service{
		detections: repository.For[models.DiseaseDetection](b, models.DiseaseDetections),
		schedules:  repository.For[models.IrrigationSchedule](b, models.IrrigationSchedules),
		plans:      repository.For[models.FertilizerPlan](b, models.FertilizerPlans),
		rnd:        rnd,
		now:        time.Now,
	}
}

// WithClassifier routes detections through an external model.
func (s *Service) WithClassifier(c Classifier) *Service {
	s.classifier = c
	return s
}

// WithImageStore keeps a copy of every uploaded image.
func (s *Service) WithImageStore(st ImageStore) *Service {
	s.images = st
	return s
}

type Dashboard struct {
	Stats          map[string]int64         `json:"stats"`
	RecentActivity []map[string]interface{} `json:"recent_activity"`
	Alerts         []map[string]string      `json:"alerts"`
}

func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	weekAgo := s.now().UTC().AddDate(0, 0, -7)
	recent, err := s.detections.Count(ctx, repository.Query{
		Filters: []repository.Filter{repository.Where("detected_at", repository.Gte, weekAgo)},
	})
	if err != nil {
		return nil, fmt.Errorf("count detections: %w", err)
	}
	latest, err := s.detections.Find(ctx, repository.Query{SortBy: "detected_at", Desc: true, Limit: 5})
	if err != nil {
		return nil, fmt.Errorf("recent detections: %w", err)
	}
	active, err := s.schedules.Find(ctx, repository.Query{
		Filters: []repository.Filter{repository.Where("active", repository.Eq, true)},
	})
	if err != nil {
		return nil, fmt.Errorf("active schedules: %w", err)
	}
	farms, crops := map[string]struct{}{}, map[string]struct{}{}
	for _, sc := range active {
		farms[sc.FarmID] = struct{}{}
		crops[sc.CropType] = struct{}{}
	}

	activity := make([]map[string]interface{}, 0, len(latest))
	for _, d := range latest {
		activity = append(activity, map[string]interface{}{
			"id":        d.ID,
			"type":      "disease_detection",
			"disease":   d.DiseaseName,
			"timestamp": d.DetectedAt,
		})
	}
	return &Dashboard{
		Stats: map[string]int64{
			"total_farms":       int64(len(farms)),
			"total_crops":       int64(len(crops)),
			"recent_detections": recent,
			"active_schedules":  15,
		},
		RecentActivity: activity,
		Alerts: []map[string]string{
			{"type": "warning", "message": "Weather alert: Heavy rain expected", "severity": "medium"},
		},
	}, nil
}

// DetectInput describes an uploaded leaf image. Image may be nil when the
// client only sends a crop type.
type DetectInput struct {
	CropType    string
	Filename    string
	ContentType string
	Image       io.Reader
}

type DetectResult struct {
	models.DiseaseDetection
	ImageStored bool `json:"image_stored"`
}

var knownDiseases = []mlclient.Detection{
	{DiseaseName: "Late Blight", Confidence: 0.92, Severity: "High", Recommendations: []string{
		"Apply fungicide immediately",
		"Remove infected leaves",
		"Improve air circulation",
		"Reduce irrigation frequency",
	}},
	{DiseaseName: "Leaf Rust", Confidence: 0.85, Severity: "Medium", Recommendations: []string{
		"Apply appropriate fungicide",
		"Monitor spread closely",
		"Maintain proper plant spacing",
	}},
	{DiseaseName: "Healthy", Confidence: 0.95, Severity: "None", Recommendations: []string{
		"Continue current maintenance",
		"Regular monitoring recommended",
	}},
}

// DetectDisease classifies the image with the external model when one is
// configured, otherwise picks a simulated verdict. Upload and model failures
// are logged and never fail the request.
func (s *Service) DetectDisease(ctx context.Context, in DetectInput) (*DetectResult, error) {
	var data []byte
	if in.Image != nil {
		b, err := io.ReadAll(io.LimitReader(in.Image, maxImageBytes+1))
		if err != nil {
			return nil, apperr.Wrap(http.StatusBadRequest, "Could not read image", err)
		}
		if len(b) > maxImageBytes {
			return nil, apperr.BadRequest("Image exceeds 10MB limit")
		}
		data = b
	}

	rec := &models.DiseaseDetection{
		CropType:   in.CropType,
		ImageName:  in.Filename,
		DetectedAt: s.now().UTC(),
	}
	res := &DetectResult{}

	if len(data) > 0 && s.images != nil {
		key := storage.ObjectKey("crops", in.Filename)
		if err := s.images.Put(ctx, key, bytes.NewReader(data), int64(len(data)), in.ContentType); err != nil {
			logger.Warnf("crop image not stored: %v", err)
		} else {
			rec.ImageKey = key
			res.ImageStored = true
		}
	}

	verdict, source := s.classify(ctx, in.Filename, data)
	rec.DiseaseName = verdict.DiseaseName
	rec.Confidence = verdict.Confidence
	rec.Severity = verdict.Severity
	rec.Recommendations = verdict.Recommendations
	rec.Source = source

	if err := s.detections.Insert(ctx, rec); err != nil {
		return nil, fmt.Errorf("save detection: %w", err)
	}
	res.DiseaseDetection = *rec
	return res, nil
}

func (s *Service) classify(ctx context.Context, filename string, data []byte) (mlclient.Detection, string) {
	if s.classifier != nil && len(data) > 0 {
		d, err := s.classifier.DetectDisease(ctx, filename, bytes.NewReader(data))
		if err == nil {
			return *d, "model"
		}
		logger.Warnf("disease model unavailable, using simulated detection: %v", err)
	}
	return knownDiseases[s.rnd.Pick(len(knownDiseases))], "simulated"
}
