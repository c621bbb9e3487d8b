package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/lustraclean/vitrine/pkg/models"
)

// Compile-time interface guard.
var _ RecordSource = (*HTTPSource)(nil)

// HTTPSource fetches service records from a JSON endpoint. Requests are
// rate-limited so rapid filter changes upstream cannot hammer the API.
type HTTPSource struct {
	url     string
	client  *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

// HTTPSourceOptions configures an HTTPSource.
type HTTPSourceOptions struct {
	// Timeout bounds a single fetch. Defaults to 10s.
	Timeout time.Duration
	// RequestsPerSecond caps outbound fetches. Defaults to 2.
	RequestsPerSecond float64
}

// NewHTTPSource creates an HTTPSource for the given endpoint URL.
func NewHTTPSource(url string, opts HTTPSourceOptions, logger *zap.Logger) *HTTPSource {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 2
	}
	return &HTTPSource{
		url:     url,
		client:  &http.Client{Timeout: opts.Timeout},
		limiter: rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1),
		logger:  logger,
	}
}

// FetchRecords performs a GET against the configured endpoint and decodes
// the JSON array of raw records.
func (s *HTTPSource) FetchRecords(ctx context.Context) ([]models.RawServiceRecord, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch records: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch records: unexpected status %d", resp.StatusCode)
	}

	var records []models.RawServiceRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}

	s.logger.Debug("fetched records",
		zap.Int("count", len(records)),
		zap.Duration("elapsed", time.Since(start)),
	)

	if len(records) == 0 {
		return nil, ErrEmptyResult
	}
	return records, nil
}
