// Package mlclient talks to the Python inference service that classifies crop
// leaf images and scores symptom lists.
package mlclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ecohealth/sentinel/internal/config"
	"github.com/go-resty/resty/v2"
)

// ErrNotConfigured is returned when no service URL is set.
var ErrNotConfigured = errors.New("ml service not configured")

// Detection is the classifier's verdict for one image.
type Detection struct {
	DiseaseName     string   `json:"disease_name"`
	Confidence      float64  `json:"confidence"`
	Severity        string   `json:"severity"`
	Recommendations []string `json:"recommendations"`
}

// Condition is one candidate diagnosis.
type Condition struct {
	Name        string  `json:"name"`
	Probability float64 `json:"probability"`
	Description string  `json:"description,omitempty"`
}

type Client struct {
	http *resty.Client
}

// New returns a client for cfg.BaseURL, or nil when it is empty. A nil
// *Client is safe to call and always returns ErrNotConfigured.
func New(cfg config.MLConfig) *Client {
	if cfg.BaseURL == "" {
		return nil
	}
	return &Client{http: resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")}
}

// DetectDisease uploads an image for classification.
func (c *Client) DetectDisease(ctx context.Context, filename string, image io.Reader) (*Detection, error) {
	if c == nil {
		return nil, ErrNotConfigured
	}
	var out Detection
	resp, err := c.http.R().
		SetContext(ctx).
		SetFileReader("file", filename, image).
		SetResult(&out).
		Post("/agriculture/crop-disease-detection")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	if out.DiseaseName == "" {
		return nil, errors.New("ml service returned no disease name")
	}
	return &out, nil
}

// Diagnose scores a symptom list.
func (c *Client) Diagnose(ctx context.Context, symptoms []string) ([]Condition, error) {
	if c == nil {
		return nil, ErrNotConfigured
	}
	var out struct {
		PossibleConditions []Condition `json:"possible_conditions"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{"symptoms": symptoms}).
		SetResult(&out).
		Post("/healthcare/diagnosis-assistant")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return out.PossibleConditions, nil
}

func check(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("ml service: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("ml service: %s", resp.Status())
	}
	return nil
}
