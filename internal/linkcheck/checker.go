// Package linkcheck audits the reachability of disclaimer source URLs. The
// audit is advisory: its results are reported next to the publish decision
// and never change it.
package linkcheck

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ppiankov/govgate/internal/cache"
	"github.com/ppiankov/govgate/internal/model"
	"github.com/ppiankov/govgate/internal/util"
	"github.com/ppiankov/govgate/internal/worker"
)

const (
	defaultMaxRetries = 3
	maxRedirects      = 3
	cacheNamespace    = "link"
)

// sleepFunc waits between retries (injectable for tests)
var sleepFunc = func(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Checker checks source URLs concurrently with per-host throttling
type Checker struct {
	httpClient *http.Client
	userAgent  string
	maxRetries int

	pool      *worker.Pool
	limiter   *worker.Limiter
	robots    *util.RobotsChecker
	authority *AuthorityClassifier
	cache     cache.Cache
	logger    *zap.Logger
}

// NewChecker builds a checker from configuration. store may be nil to
// disable caching and logger may be nil to discard logs.
func NewChecker(cfg *model.Config, store cache.Cache, logger *zap.Logger) *Checker {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	transport := util.NewTransport(cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy)
	if cfg.HTTP.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // operator opt-in
	}

	client := &http.Client{
		Timeout:   cfg.HTTP.Timeout,
		Transport: transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}

	maxRetries := cfg.LinkCheck.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	c := &Checker{
		httpClient: client,
		userAgent:  cfg.HTTP.UserAgent,
		maxRetries: maxRetries,
		pool:       worker.NewPool(cfg.Concurrency.LinkWorkers),
		limiter:    worker.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize),
		authority:  NewAuthorityClassifier(&cfg.Authority),
		cache:      store,
		logger:     logger,
	}
	if cfg.LinkCheck.RespectRobots {
		c.robots = util.NewRobotsChecker(cfg.HTTP.UserAgent, client, cfg.HTTP.Timeout)
	}
	return c
}

// Check audits every source that declares a URL. Results keep source order;
// sources without a URL are skipped.
func (c *Checker) Check(ctx context.Context, sources []model.DataSource) []model.LinkResult {
	var withURL []model.DataSource
	for _, s := range sources {
		if strings.TrimSpace(s.URL) != "" {
			withURL = append(withURL, s)
		}
	}
	if len(withURL) == 0 {
		return []model.LinkResult{}
	}

	return worker.Map(ctx, c.pool, withURL, c.checkSource)
}

func (c *Checker) checkSource(ctx context.Context, source model.DataSource) model.LinkResult {
	rawURL := strings.TrimSpace(source.URL)
	result := model.LinkResult{
		Source:    source.Name,
		URL:       rawURL,
		Authority: c.authority.Classify(rawURL),
	}

	// 1. Only absolute http(s) URLs are checked
	if parsed, err := url.Parse(rawURL); err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		result.Error = "not an http(s) URL"
		result.IsDead = true
		return result
	}

	// 2. Cache
	key := cache.Key(cacheNamespace, rawURL)
	if cached, ok := c.lookup(key); ok {
		cached.Source = source.Name
		cached.Cached = true
		return cached
	}

	// 3. robots.txt
	var crawlDelay time.Duration
	if c.robots != nil {
		allowed, delay, err := c.robots.CanFetch(ctx, rawURL)
		if err == nil && !allowed {
			result.Disallowed = true
			result.Error = "disallowed by robots.txt"
			c.store(key, result)
			return result
		}
		crawlDelay = delay
	}

	// 4. Throttle and request with retries
	if err := c.limiter.WaitWithDelay(ctx, rawURL, crawlDelay); err != nil {
		result.Error = fmt.Sprintf("rate limit: %v", err)
		return result
	}

	result = c.checkWithRetry(ctx, result)
	if ctx.Err() == nil {
		c.store(key, result)
	}

	c.logger.Debug("source checked",
		zap.String("url", rawURL),
		zap.Int("status", result.StatusCode),
		zap.Bool("accessible", result.IsAccessible),
		zap.String("authority", result.Authority.String()))
	return result
}

func (c *Checker) checkWithRetry(ctx context.Context, base model.LinkResult) model.LinkResult {
	var result model.LinkResult
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		var err error
		result, err = c.request(ctx, base, http.MethodHead)
		if err == nil && (result.StatusCode == http.StatusMethodNotAllowed || result.StatusCode == http.StatusNotImplemented) {
			result, err = c.request(ctx, base, http.MethodGet)
		}
		if ctx.Err() != nil || !retryable(result, err) || attempt == c.maxRetries-1 {
			return result
		}

		backoff := time.Duration(1<<uint(attempt)) * time.Second
		c.logger.Debug("retrying source", zap.String("url", base.URL), zap.Duration("backoff", backoff))
		if err := sleepFunc(ctx, backoff); err != nil {
			return result
		}
	}
	return result
}

// request performs one HTTP request; the returned error is the transport
// failure, already recorded on the result
func (c *Checker) request(ctx context.Context, base model.LinkResult, method string) (model.LinkResult, error) {
	result := base

	req, err := http.NewRequestWithContext(ctx, method, base.URL, nil)
	if err != nil {
		result.Error = fmt.Sprintf("create request: %v", err)
		result.IsDead = true
		return result, nil
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		result.Error = fmt.Sprintf("request failed: %v", err)
		result.IsDead = true
		return result, err
	}
	defer func() { _ = resp.Body.Close() }()
	if method == http.MethodGet {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	}

	result.StatusCode = resp.StatusCode
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 400:
		result.IsAccessible = true
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		result.IsDead = true
	}

	if final := resp.Request.URL.String(); final != base.URL {
		result.RedirectURL = final
	}

	if lm := resp.Header.Get("Last-Modified"); lm != "" {
		if t, err := http.ParseTime(lm); err == nil {
			result.LastModified = &t
		}
	}

	return result, nil
}

// retryable reports transient failures: 5xx, 429, timeouts and reset or refused connections
func retryable(result model.LinkResult, err error) bool {
	if result.StatusCode >= 500 || result.StatusCode == http.StatusTooManyRequests {
		return true
	}
	if err == nil {
		return false
	}
	return isTimeout(err) || errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET)
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func (c *Checker) lookup(key string) (model.LinkResult, bool) {
	if c.cache == nil {
		return model.LinkResult{}, false
	}
	raw, ok := c.cache.Get(key)
	if !ok {
		return model.LinkResult{}, false
	}
	var result model.LinkResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return model.LinkResult{}, false
	}
	return result, true
}

func (c *Checker) store(key string, result model.LinkResult) {
	if c.cache == nil {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	// Zero lets each layer apply its own TTL
	if err := c.cache.Set(key, raw, 0); err != nil {
		c.logger.Warn("cache write failed", zap.String("url", result.URL), zap.Error(err))
	}
}
