package chatbot

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/ecohealth/sentinel/pkg/metrics"
)

// Request is a chat turn as received from a client. Domain comes from the
// path segment when present, otherwise from the body.
type Request struct {
	Domain    string `json:"domain"`
	Message   string `json:"message"`
	Location  string `json:"location"`
	SessionID string `json:"sessionId"`
}

// Router selects the adapter for a request's domain.
type Router struct {
	adapters map[Domain]Adapter
}

func NewRouter(adapters ...Adapter) *Router {
	r := &Router{adapters: make(map[Domain]Adapter, len(adapters))}
	for _, a := range adapters {
		r.adapters[a.Domain()] = a
	}
	return r
}

// Validate checks domain and message before any adapter runs.
func (r *Router) Validate(req Request) (Domain, error) {
	d, err := ParseDomain(req.Domain)
	if err != nil {
		metrics.ChatRequests.WithLabelValues("unknown", "invalid").Inc()
		return "", err
	}
	if _, ok := r.adapters[d]; !ok {
		return "", ErrInvalidDomain
	}
	text := strings.TrimSpace(req.Message)
	if text == "" {
		metrics.ChatRequests.WithLabelValues(string(d), "invalid").Inc()
		return "", ErrMessageRequired
	}
	if utf8.RuneCountInString(text) > MaxMessageLength {
		metrics.ChatRequests.WithLabelValues(string(d), "invalid").Inc()
		return "", ErrMessageTooLong
	}
	return d, nil
}

// Dispatch validates req and returns the selected adapter's reply.
func (r *Router) Dispatch(ctx context.Context, req Request) (string, error) {
	d, err := r.Validate(req)
	if err != nil {
		return "", err
	}
	return r.adapters[d].Reply(ctx, Message{Text: strings.TrimSpace(req.Message), Location: strings.TrimSpace(req.Location)}), nil
}
