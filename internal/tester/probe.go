package tester

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/promptbench/pkg/dispatch"
)

// Probe sends a bare GET to every registered endpoint with bounded
// concurrency. An endpoint is reachable when it answered at all, whatever
// the status or body.
func (t *tester) Probe(ctx context.Context) []ProbeResult {
	urls := t.endpoints.List(ctx)
	results := make([]ProbeResult, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(t.defaults.ProbeLimit)

	for i, u := range urls {
		g.Go(func() error {
			results[i] = t.probe(gctx, u)
			return nil
		})
	}
	g.Wait()

	return results
}

func (t *tester) probe(ctx context.Context, url string) ProbeResult {
	if t.defaults.ProbeWait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.defaults.ProbeWait)
		defer cancel()
	}

	start := time.Now()
	resp, err := t.dispatcher.Dispatch(ctx, dispatch.Request{URL: url, Method: "GET"})
	result := ProbeResult{URL: url, LatencyMS: time.Since(start).Milliseconds()}

	if err == nil {
		result.Reachable = true
		result.Status = resp.StatusCode
		return result
	}

	result.Error = err.Error()
	var derr *dispatch.Error
	if errors.As(err, &derr) && derr.Status != 0 {
		result.Reachable = true
		result.Status = derr.Status
	}

	t.logger.Debug("probe completed", "url", url, "reachable", result.Reachable, "error", err)
	return result
}
