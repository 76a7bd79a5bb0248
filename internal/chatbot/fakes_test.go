package chatbot

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ecohealth/sentinel/internal/llm"
	"github.com/ecohealth/sentinel/internal/sources"
)

type fakeFetcher struct {
	name  string
	line  string
	err   error
	delay time.Duration

	mu       sync.Mutex
	location string
}

func (f *fakeFetcher) Name() string { return f.name }

func (f *fakeFetcher) Fetch(ctx context.Context, location string) (string, error) {
	f.mu.Lock()
	f.location = location
	f.mu.Unlock()
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.line, f.err
}

// fakeCompleter records the prompts and answers with reply or err.
type fakeCompleter struct {
	reply     string
	err       error
	primary   llm.Request
	secondary llm.Request
	calls     int
}

func (f *fakeCompleter) Complete(ctx context.Context, primary, secondary llm.Request) (string, error) {
	f.calls++
	f.primary, f.secondary = primary, secondary
	return f.reply, f.err
}

var errDown = errors.New("upstream down")

func fakeCatalog(fetchers ...sources.Fetcher) *sources.Catalog {
	c := &sources.Catalog{}
	for i, f := range fetchers {
		switch i {
		case 0:
			c.Weather = f
		case 1:
			c.Forecast = f
		case 2:
			c.Tomorrow = f
		}
	}
	return c
}
