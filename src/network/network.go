package network

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"market-pulse/src/helpers"
	"market-pulse/src/interfaces"
	"market-pulse/src/logger"
	"market-pulse/src/models"
)

const maxBackoff = 5 * time.Second

type AsyncNetworkManager struct {
	Config       *models.MConfig
	ProxyManager interfaces.IProxyManager
	Limiter      *TokenBucket
	Logger       *logger.Logger

	mu     sync.RWMutex
	client *http.Client
}

// -----------------------------------------------------------------------------

func NewAsyncNetworkManager(cfg *models.MConfig, log *logger.Logger) *AsyncNetworkManager {
	var proxies []string
	if cfg.Network.Enabled {
		proxies = cfg.Network.Proxies
	}

	nm := &AsyncNetworkManager{
		Config:       cfg,
		ProxyManager: helpers.NewProxyManager(proxies, cfg.Network.UserAgent, log.Named("ProxyManager")),
		Limiter:      NewTokenBucket(cfg.Network.MaxRequestsPerSecond, cfg.Network.Burst),
		Logger:       log,
	}
	nm.client = nm.createClient()
	return nm
}

// -----------------------------------------------------------------------------

func (nm *AsyncNetworkManager) createClient() *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = 32

	if nm.ProxyManager.HasProxies() {
		proxyStr, err := nm.ProxyManager.GetCurrentProxy()
		if err == nil && proxyStr != "" {
			proxyURL, err := url.Parse(proxyStr)
			if err == nil {
				transport.Proxy = http.ProxyURL(proxyURL)
			}
		}
	}

	return &http.Client{
		Transport: transport,
		Timeout:   time.Duration(nm.Config.Network.RequestTimeout) * time.Second,
	}
}

// -----------------------------------------------------------------------------

func (nm *AsyncNetworkManager) httpClient() *http.Client {
	nm.mu.RLock()
	defer nm.mu.RUnlock()
	return nm.client
}

// -----------------------------------------------------------------------------

func (nm *AsyncNetworkManager) rotateProxy() {
	if !nm.ProxyManager.HasProxies() {
		return
	}

	nm.ProxyManager.RotateProxy()
	client := nm.createClient()

	nm.mu.Lock()
	nm.client = client
	nm.mu.Unlock()
}

// -----------------------------------------------------------------------------

func (nm *AsyncNetworkManager) backoff(attempt int) time.Duration {
	base := time.Duration(nm.Config.Network.RetryBackoffMs) * time.Millisecond
	if base <= 0 {
		return 0
	}
	d := base << (attempt - 1)
	if d > maxBackoff || d <= 0 {
		d = maxBackoff
	}
	return d
}

// -----------------------------------------------------------------------------

// Get performs a GET request with retries and proxy rotation. Failures are
// reported as *helpers.TransportError.
func (nm *AsyncNetworkManager) Get(ctx context.Context, urlStr string, params map[string]string) ([]byte, error) {
	reqURL, err := url.Parse(urlStr)
	if err != nil {
		return nil, helpers.NewTransportError("invalid url", 0, err)
	}

	q := reqURL.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	reqURL.RawQuery = q.Encode()
	finalURL := reqURL.String()

	maxRetries := nm.Config.Network.MaxRetries
	var lastErr error

	for i := 0; i <= maxRetries; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return nil, helpers.NewTransportError("request cancelled", 0, ctx.Err())
			case <-time.After(nm.backoff(i)):
			}
		}

		if err := nm.Limiter.Wait(ctx); err != nil {
			return nil, helpers.NewTransportError("rate limiter", 0, err)
		}

		body, terr, retry := nm.do(ctx, finalURL)
		if terr == nil {
			return body, nil
		}
		lastErr = terr
		nm.Logger.Debug("Request failed (attempt %d/%d): %v", i+1, maxRetries+1, terr)

		if !retry || ctx.Err() != nil {
			break
		}
	}

	return nil, lastErr
}

// -----------------------------------------------------------------------------

// do performs a single attempt and reports whether a failure is worth retrying.
func (nm *AsyncNetworkManager) do(ctx context.Context, finalURL string) ([]byte, *helpers.TransportError, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, finalURL, nil)
	if err != nil {
		return nil, helpers.NewTransportError("build request", 0, err), false
	}

	req.Header.Set("User-Agent", nm.ProxyManager.GetUserAgent())
	req.Header.Set("Accept", "application/json")

	resp, err := nm.httpClient().Do(req)
	if err != nil {
		return nil, helpers.NewTransportError("request failed", 0, err), true
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusForbidden:
		nm.Logger.Info("Request blocked (%d). Rotating proxy.", resp.StatusCode)
		nm.rotateProxy()
		return nil, helpers.NewTransportError(fmt.Sprintf("blocked (status %d)", resp.StatusCode), resp.StatusCode, nil), true
	case resp.StatusCode >= 500:
		return nil, helpers.NewTransportError(fmt.Sprintf("bad status: %d", resp.StatusCode), resp.StatusCode, nil), true
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, helpers.NewTransportError(fmt.Sprintf("bad status: %d", resp.StatusCode), resp.StatusCode, nil), false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, helpers.NewTransportError("read body", resp.StatusCode, err), true
	}
	return body, nil, false
}
