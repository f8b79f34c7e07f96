package httpclient

import (
	"context"
	"fmt"
	"time"

	"resty.dev/v3"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// HTTPClientConfig carries the knobs shared by every outbound API client.
type HTTPClientConfig struct {
	Timeout    time.Duration
	RateLimit  int // requests per minute
	MaxRetries int
	UserAgent  string
	XApiKey    string
}

// HTTPClient wraps resty with per-client rate limiting and API key injection.
type HTTPClient struct {
	client    *resty.Client
	logger    *zap.Logger
	limiter   *rate.Limiter
	userAgent string
}

func NewHTTPClient(cfg HTTPClientConfig, logger *zap.Logger) *HTTPClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 3
	}
	ratePerLimit := rate.Inf // unset limit means unthrottled
	if cfg.RateLimit > 0 {
		ratePerLimit = rate.Limit(float64(cfg.RateLimit) / 60)
	}
	limiter := rate.NewLimiter(ratePerLimit, 1)

	restyClient := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.MaxRetries).
		AddRequestMiddleware(func(c *resty.Client, r *resty.Request) error {
			limiterCtx, cancel := context.WithTimeout(r.Context(), cfg.Timeout)
			defer cancel()

			if err := limiter.Wait(limiterCtx); err != nil {
				logger.Warn("Rate limiter wait failed", zap.Error(err))
				return err
			}
			if cfg.UserAgent != "" {
				r.SetHeader("User-Agent", cfg.UserAgent)
			}
			if cfg.XApiKey != "" {
				r.SetHeader("X-API-Key", cfg.XApiKey)
			}
			logger.Debug("Outgoing request", zap.String("url", r.URL))
			return nil
		}).
		AddResponseMiddleware(func(c *resty.Client, resp *resty.Response) error {
			if resp.StatusCode() >= 400 {
				logger.Warn("HTTP request failed",
					zap.Int("status", resp.StatusCode()),
					zap.String("url", resp.Request.URL),
				)
			}
			return nil
		})

	return &HTTPClient{
		client:    restyClient,
		logger:    logger,
		limiter:   limiter,
		userAgent: cfg.UserAgent,
	}
}

// Get issues a GET request and decodes the JSON response into out.
func (c *HTTPClient) Get(ctx context.Context, url string, queryParams map[string]string, headers map[string]string, out interface{}) error {
	req := c.client.R().
		SetContext(ctx).
		SetQueryParams(queryParams).
		SetResult(out)

	if headers != nil {
		req.SetHeaders(headers)
	}

	resp, err := req.Get(url)

	if err != nil {
		c.logger.Error("HTTP GET request failed", zap.String("url", url), zap.Error(err))
		return err
	}

	if resp.StatusCode() >= 400 {
		return fmt.Errorf("non-2xx status code: %d", resp.StatusCode())
	}

	return nil
}

// PostJSON issues a POST request with a JSON body and decodes the response into out.
func (c *HTTPClient) PostJSON(ctx context.Context, url string, body interface{}, headers map[string]string, out interface{}) error {
	req := c.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(out)

	if headers != nil {
		req.SetHeaders(headers)
	}

	req.SetHeader("Content-Type", "application/json")

	resp, err := req.Post(url)

	if err != nil {
		c.logger.Error("HTTP POST JSON request failed", zap.String("url", url), zap.Error(err))
		return err
	}

	if resp.StatusCode() >= 400 {
		return fmt.Errorf("non-2xx status code: %d", resp.StatusCode())
	}

	return nil
}
