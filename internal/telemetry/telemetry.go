// Package telemetry ingests vital sign readings published by bedside and
// wearable monitors over MQTT.
package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ecohealth/sentinel/internal/config"
	"github.com/ecohealth/sentinel/internal/healthcare"
	"github.com/ecohealth/sentinel/pkg/logger"
	mqtt "github.com/eclipse/paho.mqtt.golang"
)

var ErrNotConfigured = errors.New("mqtt broker not configured")

// Recorder stores a reading and evaluates it for alerts.
type Recorder interface {
	RecordVitals(ctx context.Context, in healthcare.VitalsInput) (*healthcare.VitalsResult, error)
}

// Handler turns one MQTT message into a stored reading.
type Handler struct {
	rec     Recorder
	timeout time.Duration
}

func NewHandler(rec Recorder) *Handler {
	return &Handler{rec: rec, timeout: 5 * time.Second}
}

// Handle decodes a JSON reading. The patient id defaults to the last topic
// segment, so monitors can publish to ecohealth/vitals/<patient>.
func (h *Handler) Handle(ctx context.Context, topic string, payload []byte) error {
	var in healthcare.VitalsInput
	if err := json.Unmarshal(payload, &in); err != nil {
		return fmt.Errorf("decode reading on %s: %w", topic, err)
	}
	if in.PatientID == "" {
		if i := strings.LastIndex(topic, "/"); i >= 0 && i < len(topic)-1 {
			in.PatientID = topic[i+1:]
		}
	}
	if in.PatientID == "" || in.HeartRate <= 0 || in.Temperature <= 0 || in.OxygenSaturation <= 0 {
		return fmt.Errorf("incomplete reading on %s", topic)
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()
	res, err := h.rec.RecordVitals(ctx, in)
	if err != nil {
		return fmt.Errorf("record reading for %s: %w", in.PatientID, err)
	}
	if len(res.Alerts) > 0 {
		logger.Warnf("telemetry alert patient=%s: %s", in.PatientID, strings.Join(res.Alerts, ", "))
	}
	return nil
}

// Subscriber keeps an MQTT session open on the vitals topic.
type Subscriber struct {
	client mqtt.Client
	topic  string
}

// Subscribe connects to cfg.Broker and routes every message on cfg.Topic to h.
func Subscribe(cfg config.MQTTConfig, h *Handler) (*Subscriber, error) {
	if cfg.Broker == "" {
		return nil, ErrNotConfigured
	}
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetCleanSession(true).
		SetConnectTimeout(10 * time.Second)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	topic := cfg.Topic
	// resubscribe after every reconnect
	opts.SetOnConnectHandler(func(c mqtt.Client) {
		tok := c.Subscribe(topic, 1, func(_ mqtt.Client, msg mqtt.Message) {
			if err := h.Handle(context.Background(), msg.Topic(), msg.Payload()); err != nil {
				logger.Warnf("telemetry message dropped: %v", err)
			}
		})
		if tok.Wait() && tok.Error() != nil {
			logger.Errorf("subscribe %s: %v", topic, tok.Error())
			return
		}
		logger.Infof("telemetry subscribed to %s on %s", topic, cfg.Broker)
	})

	client := mqtt.NewClient(opts)
	if tok := client.Connect(); tok.Wait() && tok.Error() != nil {
		return nil, fmt.Errorf("connect to mqtt broker: %w", tok.Error())
	}
	return &Subscriber{client: client, topic: topic}, nil
}

func (s *Subscriber) Close() {
	if s == nil {
		return
	}
	s.client.Unsubscribe(s.topic).WaitTimeout(time.Second)
	s.client.Disconnect(250)
}
