package chatbot

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ecohealth/sentinel/internal/sources"
	"github.com/ecohealth/sentinel/pkg/logger"
	"github.com/ecohealth/sentinel/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

// gatherContext runs every fetcher concurrently under one timeout and joins
// the lines that succeeded, in fetcher order. A failing fetcher is logged and
// contributes nothing; it never cancels its siblings.
func gatherContext(ctx context.Context, fetchers []sources.Fetcher, location string, timeout time.Duration) string {
	if len(fetchers) == 0 {
		return ""
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	lines := make([]string, len(fetchers))
	var eg errgroup.Group
	for i, f := range fetchers {
		if f == nil {
			continue
		}
		eg.Go(func() error {
			line, err := f.Fetch(ctx, location)
			switch {
			case errors.Is(err, sources.ErrSkipped):
				metrics.ContextFetches.WithLabelValues(f.Name(), "skipped").Inc()
			case err != nil:
				metrics.ContextFetches.WithLabelValues(f.Name(), "error").Inc()
				logger.Warnf("%s context fetch failed: %v", f.Name(), err)
			default:
				metrics.ContextFetches.WithLabelValues(f.Name(), "ok").Inc()
				lines[i] = strings.TrimSpace(line)
			}
			return nil
		})
	}
	_ = eg.Wait()

	var b strings.Builder
	for _, l := range lines {
		if l == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(l)
	}
	return b.String()
}
