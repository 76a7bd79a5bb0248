package chatbot

import (
	"context"
	"time"

	"github.com/ecohealth/sentinel/internal/llm"
	"github.com/ecohealth/sentinel/internal/sources"
	"github.com/ecohealth/sentinel/pkg/logger"
	"github.com/ecohealth/sentinel/pkg/metrics"
)

// Message is one inbound chat turn.
type Message struct {
	Text     string
	Location string
}

// Adapter answers messages for one domain. Reply never fails: when no
// provider answers it returns the domain's apology.
type Adapter interface {
	Domain() Domain
	Reply(ctx context.Context, msg Message) string
}

// Completer runs the primary/secondary provider chain.
type Completer interface {
	Complete(ctx context.Context, primary, secondary llm.Request) (string, error)
}

type bot struct {
	domain        Domain
	fetchers      []sources.Fetcher
	prompts       promptSet
	apology       string
	llm           Completer
	gatherTimeout time.Duration
}

func (b *bot) Domain() Domain { return b.domain }

func (b *bot) Reply(ctx context.Context, msg Message) string {
	realData := gatherContext(ctx, b.fetchers, msg.Location, b.gatherTimeout)
	reply, err := b.llm.Complete(ctx,
		b.prompts.primary(msg.Text, realData),
		b.prompts.secondary(msg.Text, realData))
	if err != nil {
		logger.Errorf("%s bot: %v", b.domain, err)
		metrics.ChatRequests.WithLabelValues(string(b.domain), "apology").Inc()
		return b.apology
	}
	metrics.ChatRequests.WithLabelValues(string(b.domain), "ok").Inc()
	return reply
}

// NewAgricultureBot consults current weather, the short-range forecast and
// Tomorrow.io before asking the models.
func NewAgricultureBot(c Completer, catalog *sources.Catalog, gatherTimeout time.Duration) Adapter {
	return &bot{
		domain:        Agriculture,
		fetchers:      catalog.Agriculture(),
		prompts:       agriculturePrompts,
		apology:       "Sorry, I couldn't fetch agriculture advice at this time.",
		llm:           c,
		gatherTimeout: gatherTimeout,
	}
}

// NewEnvironmentBot consults NASA, EPA, current weather and the AQI feed.
func NewEnvironmentBot(c Completer, catalog *sources.Catalog, gatherTimeout time.Duration) Adapter {
	return &bot{
		domain:        Environment,
		fetchers:      catalog.Environment(),
		prompts:       environmentPrompts,
		apology:       "Sorry, I couldn't fetch environmental advice at this time.",
		llm:           c,
		gatherTimeout: gatherTimeout,
	}
}

// NewHealthcareBot asks the models directly; no external context is gathered.
func NewHealthcareBot(c Completer) Adapter {
	return &bot{
		domain:  Healthcare,
		prompts: healthcarePrompts,
		apology: "Sorry, I couldn't fetch healthcare advice at this time.",
		llm:     c,
	}
}
