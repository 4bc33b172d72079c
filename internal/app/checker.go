package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"wxr_validator/internal/models"
	"wxr_validator/internal/probe"
	"wxr_validator/internal/report"
	"wxr_validator/internal/urlset"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Checker probes URLs one at a time and records each outcome.
type Checker struct {
	prober  probe.Prober
	limiter *rate.Limiter
	agg     *report.Aggregator
	sink    report.Sink
	log     zerolog.Logger
}

func NewChecker(prober probe.Prober, delay time.Duration, agg *report.Aggregator, sink report.Sink, log zerolog.Logger) *Checker {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if delay > 0 {
		limiter = rate.NewLimiter(rate.Every(delay), 1)
	}
	return &Checker{
		prober:  prober,
		limiter: limiter,
		agg:     agg,
		sink:    sink,
		log:     log,
	}
}

// Check probes every entry of set. When byAttachment is set the entry keys
// are attachment ids and are quoted in failure messages.
func (c *Checker) Check(ctx context.Context, file string, set *urlset.Set, byAttachment bool) []models.Outcome {
	outcomes := make([]models.Outcome, 0, set.Len())
	for _, e := range set.Entries() {
		outcome := models.Outcome{File: file, URL: e.URL}
		if byAttachment {
			outcome.Key = e.Key
		}
		outcome.Err = c.probe(ctx, e.URL)

		c.agg.RecordOutcome(file, outcome.Success())
		if !outcome.Success() {
			attachment := ""
			if outcome.Key != "" {
				attachment = fmt.Sprintf(" (attachment ID %s)", outcome.Key)
			}
			c.sink.Warning("%s: Error retrieving %s%s; %s", file, outcome.URL, attachment, outcome.Err)
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

func (c *Checker) probe(ctx context.Context, urlStr string) string {
	if err := c.limiter.Wait(ctx); err != nil {
		return err.Error()
	}

	start := time.Now()
	resp, err := c.prober.Head(ctx, urlStr)

	event := c.log.Debug().Str("url", urlStr).Dur("elapsed", time.Since(start))
	if resp != nil {
		event = event.Int("status", resp.StatusCode)
	}
	event.Err(err).Msg("probe")

	return classify(resp, err)
}

// classify returns the failure message for a probe result, or "" on success.
func classify(resp *probe.Response, err error) string {
	switch {
	case err != nil:
		return err.Error()
	case resp == nil:
		return "Empty response"
	case resp.StatusCode != 0 && resp.StatusCode != http.StatusOK:
		return fmt.Sprintf("HTTP Response != 200: %d", resp.StatusCode)
	}
	return ""
}
