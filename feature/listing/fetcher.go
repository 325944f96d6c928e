package listing

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"theaterwecker/core/metrics"
)

// Fetcher downloads one listing window per call.
type Fetcher struct {
	client  *resty.Client
	cfg     Config
	logger  *zap.Logger
	metrics *metrics.Recorder
}

// NewFetcher creates a Fetcher. Requests never retry and are bounded by
// cfg.TimeoutSeconds.
func NewFetcher(cfg Config, logger *zap.Logger, rec *metrics.Recorder) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Accept", "text/html")
	if cfg.UserAgent != "" {
		client.SetHeader("User-Agent", cfg.UserAgent)
	}

	return &Fetcher{client: client, cfg: cfg, logger: logger, metrics: rec}
}

// Fetch returns the raw document for w. Any transport error or non-200
// status is returned as a *FetchError.
func (f *Fetcher) Fetch(ctx context.Context, w Window) ([]byte, error) {
	req := f.client.R().SetContext(ctx)

	var (
		resp *resty.Response
		err  error
	)
	switch f.cfg.Mode {
	case ModeRepertoire:
		resp, err = req.
			SetPathParams(map[string]string{
				"year":  strconv.Itoa(w.Year),
				"month": strconv.Itoa(int(w.Month)),
			}).
			Get(f.cfg.RepertoireURL + "/{year}/{month}")
	default:
		resp, err = req.
			SetQueryParams(map[string]string{
				"month": w.MonthSlug(),
				"year":  strconv.Itoa(w.Year),
				"tip":   "1",
			}).
			Get(f.cfg.BaseURL)
	}

	if err != nil {
		f.metrics.FetchFailed()
		return nil, &FetchError{Window: w, Err: err}
	}
	if resp.StatusCode() != http.StatusOK {
		f.metrics.FetchFailed()
		return nil, &FetchError{Window: w, StatusCode: resp.StatusCode()}
	}

	f.metrics.FetchSucceeded()
	f.logger.Debug("Fetched listing window",
		zap.String("window", w.String()),
		zap.String("url", resp.Request.URL),
		zap.Int("bytes", len(resp.Body())))

	return resp.Body(), nil
}
