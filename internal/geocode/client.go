// Package geocode talks to the Census batch address geocoder.
package geocode

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/eviction-cares/internal/config"
)

// Options configures a Client
type Options struct {
	URL           string
	Benchmark     string
	BatchSize     int
	Concurrency   int
	Timeout       time.Duration
	MaxRetries    int
	RetryWait     time.Duration
	RetryMaxWait  time.Duration
	RatePerSecond float64
}

// OptionsFromConfig maps geocoder settings onto client options
func OptionsFromConfig(cfg config.GeocoderConfig) Options {
	return Options{
		URL:           cfg.URL,
		Benchmark:     cfg.Benchmark,
		BatchSize:     cfg.BatchSize,
		Concurrency:   cfg.Concurrency,
		Timeout:       cfg.Timeout,
		MaxRetries:    cfg.MaxRetries,
		RetryWait:     cfg.RetryWait,
		RetryMaxWait:  cfg.RetryMaxWait,
		RatePerSecond: cfg.RatePerSecond,
	}
}

// Client sends chunks of addresses to the batch geocoder
type Client struct {
	httpClient *resty.Client
	opts       Options
	cache      *Cache
	logger     *zap.Logger
}

// NewClient creates a client. cache may be nil.
func NewClient(opts Options, cache *Cache, logger *zap.Logger) *Client {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 5000
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}

	limit := rate.Inf
	if opts.RatePerSecond > 0 {
		limit = rate.Limit(opts.RatePerSecond)
	}
	limiter := rate.NewLimiter(limit, 1)

	// Every attempt waits its turn, retries included.
	httpClient := resty.New().
		SetTimeout(opts.Timeout).
		SetRetryCount(opts.MaxRetries).
		SetRetryWaitTime(opts.RetryWait).
		SetRetryMaxWaitTime(opts.RetryMaxWait).
		SetLogger(logger.Sugar()).
		AddRetryCondition(shouldRetry).
		OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return limiter.Wait(req.Context())
		})

	return &Client{
		httpClient: httpClient,
		opts:       opts,
		cache:      cache,
		logger:     logger,
	}
}

// shouldRetry treats transport errors, throttling, server errors and bodies
// that do not parse as transient.
func shouldRetry(resp *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	code := resp.StatusCode()
	if code == http.StatusTooManyRequests || code >= http.StatusInternalServerError {
		return true
	}
	if code == http.StatusOK {
		_, perr := parseResponse(resp.Body())
		return perr != nil
	}
	return false
}

// GeocodeAll geocodes inputs in chunks of BatchSize, at most Concurrency at a
// time. A chunk that still fails after retries does not fail the call: its
// ids are reported in Outcome.Failed. Only a cancelled context is an error.
func (c *Client) GeocodeAll(ctx context.Context, inputs []BatchInput) (*Outcome, error) {
	outcome := &Outcome{}

	hits, pending := c.cache.Lookup(ctx, inputs)
	outcome.CacheHits = len(hits)
	for _, res := range hits {
		if res.MatchStatus == StatusMatch && res.Location != nil {
			outcome.Results = append(outcome.Results, res)
		}
	}

	chunks := chunk(pending, c.opts.BatchSize)
	outcome.Requests = len(chunks)
	if len(chunks) == 0 {
		return outcome, nil
	}

	c.logger.Info("geocoding addresses",
		zap.Int("records", len(pending)),
		zap.Int("cache_hits", len(hits)),
		zap.Int("chunks", len(chunks)),
		zap.Int("concurrency", c.opts.Concurrency))

	results := make([][]BatchResult, len(chunks))
	failed := make([]bool, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Concurrency)
	for i, ch := range chunks {
		i, ch := i, ch
		g.Go(func() error {
			res, err := c.geocodeChunk(gctx, ch)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				c.logger.Warn("geocode chunk failed",
					zap.Int("chunk", i),
					zap.Int("records", len(ch)),
					zap.Error(err))
				failed[i] = true
				return nil
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("geocoding cancelled: %w", err)
	}

	for i, ch := range chunks {
		if failed[i] {
			outcome.FailedChunks++
			for _, in := range ch {
				outcome.Failed = append(outcome.Failed, in.ID)
			}
			continue
		}
		c.cache.Store(ctx, ch, results[i])
		for _, res := range results[i] {
			if res.MatchStatus == StatusMatch && res.Location != nil {
				outcome.Results = append(outcome.Results, res)
			}
		}
	}

	c.logger.Info("geocoding complete",
		zap.Int("matched", len(outcome.Results)),
		zap.Int("failed_records", len(outcome.Failed)),
		zap.Int("failed_chunks", outcome.FailedChunks))

	return outcome, nil
}

// geocodeChunk posts one chunk, relying on resty for retry with backoff.
// Response rows for ids that were not in the chunk are ignored.
func (c *Client) geocodeChunk(ctx context.Context, inputs []BatchInput) ([]BatchResult, error) {
	body, contentType, err := encodeRequest(inputs, c.opts.Benchmark)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetHeader("Accept", "text/csv").
		SetBody(body).
		Post(c.opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to call geocoder: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("geocoder returned status %d", resp.StatusCode())
	}

	parsed, err := parseResponse(resp.Body())
	if err != nil {
		return nil, err
	}

	requested := make(map[string]bool, len(inputs))
	for _, in := range inputs {
		requested[in.ID] = true
	}
	out := parsed[:0]
	for _, res := range parsed {
		if requested[res.ID] {
			out = append(out, res)
		}
	}
	return out, nil
}

func chunk(inputs []BatchInput, size int) [][]BatchInput {
	var out [][]BatchInput
	for start := 0; start < len(inputs); start += size {
		end := start + size
		if end > len(inputs) {
			end = len(inputs)
		}
		out = append(out, inputs[start:end])
	}
	return out
}
