package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ecohealth/sentinel/internal/config"
	"github.com/ecohealth/sentinel/pkg/logger"
	"github.com/ecohealth/sentinel/pkg/metrics"
)

// Clients holds the process-wide provider pair. Built once at startup and
// shared read-only by every chat adapter.
type Clients struct {
	Primary   Provider
	Secondary Provider
	// Timeout bounds each individual provider call. Zero means no extra bound.
	Timeout time.Duration
}

// NewClients builds Gemini (primary) and OpenAI (secondary) from cfg. A
// provider whose key is missing is kept as an always-failing stand-in so the
// fallback order stays intact.
func NewClients(ctx context.Context, cfg config.LLMConfig) *Clients {
	c := &Clients{Timeout: cfg.Timeout}

	if g, err := NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel); err != nil {
		logger.Warnf("primary LLM provider disabled: %v", err)
		c.Primary = unavailable{name: "gemini"}
	} else {
		c.Primary = g
	}

	if o, err := NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL); err != nil {
		logger.Warnf("secondary LLM provider disabled: %v", err)
		c.Secondary = unavailable{name: "openai"}
	} else {
		c.Secondary = o
	}
	return c
}

// Complete asks the primary provider and falls back to the secondary one when
// the primary errors or answers with only whitespace. The first non-blank
// reply wins; when neither produces one the returned error wraps ErrNoReply.
func (c *Clients) Complete(ctx context.Context, primary, secondary Request) (string, error) {
	reply, errPrimary := c.call(ctx, c.Primary, primary)
	if errPrimary == nil {
		return reply, nil
	}
	logger.Warnf("primary provider %s failed, falling back: %v", c.Primary.Name(), errPrimary)

	reply, errSecondary := c.call(ctx, c.Secondary, secondary)
	if errSecondary == nil {
		return reply, nil
	}
	return "", fmt.Errorf("%w: %w", ErrNoReply, errors.Join(errPrimary, errSecondary))
}

func (c *Clients) call(ctx context.Context, p Provider, req Request) (string, error) {
	if p == nil {
		return "", ErrNotConfigured
	}
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	reply, err := p.Generate(ctx, req)
	switch {
	case err != nil:
		metrics.ProviderCalls.WithLabelValues(p.Name(), "error").Inc()
		return "", fmt.Errorf("%s: %w", p.Name(), err)
	case strings.TrimSpace(reply) == "":
		metrics.ProviderCalls.WithLabelValues(p.Name(), "blank").Inc()
		return "", fmt.Errorf("%s: %w", p.Name(), ErrBlankReply)
	}
	metrics.ProviderCalls.WithLabelValues(p.Name(), "ok").Inc()
	return reply, nil
}
