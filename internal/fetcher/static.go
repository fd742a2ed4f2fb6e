// Package fetcher is the static fallback for environments without a browser:
// it fetches product pages over plain HTTP and extracts signals from the
// served markup only. Lazy-loaded galleries and script-rendered size pickers
// are invisible here, which is why browser mode is the default.
package fetcher

import (
	"compress/flate"
	"compress/gzip"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/andybalholm/brotli"

	"github.com/wearstack/scout/internal/config"
	"github.com/wearstack/scout/internal/types"
)

// StaticFetcher loads product pages with net/http.
type StaticFetcher struct {
	client     *http.Client
	cfg        *config.FetcherConfig
	logger     *slog.Logger
	userAgents []string
	uaIndex    atomic.Int64
}

// NewStaticFetcher creates a static page fetcher.
func NewStaticFetcher(cfg *config.Config, logger *slog.Logger) (*StaticFetcher, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        cfg.Fetcher.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.Fetcher.MaxIdleConns / 2,
		IdleConnTimeout:     cfg.Fetcher.IdleConnTimeout,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: cfg.Fetcher.TLSInsecure,
		},
		DisableCompression: true, // We handle decompression ourselves (including brotli)
	}

	client := &http.Client{
		Transport: transport,
		Jar:       jar,
		Timeout:   cfg.Automation.NavigationTimeout,
	}

	return &StaticFetcher{
		client:     client,
		cfg:        &cfg.Fetcher,
		logger:     logger.With("component", "static_fetcher"),
		userAgents: cfg.Fetcher.UserAgents,
	}, nil
}

// Load fetches the URL and wraps the served markup as a page.
func (f *StaticFetcher) Load(ctx context.Context, url string) (*StaticPage, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, &types.FetchError{URL: url, Err: err, Retryable: false}
	}

	req.Header.Set("User-Agent", f.nextUserAgent())
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")
	req.Header.Set("Connection", "keep-alive")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &types.FetchError{URL: url, Err: err, Retryable: isRetryableError(err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &types.FetchError{
			URL:       url,
			Err:       fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
			Retryable: true,
		}
	}
	if resp.StatusCode >= 400 {
		return nil, &types.FetchError{
			URL:       url,
			Err:       fmt.Errorf("HTTP %d", resp.StatusCode),
			Retryable: false,
		}
	}

	var reader io.Reader = resp.Body
	if f.cfg.MaxBodySize > 0 {
		reader = io.LimitReader(reader, f.cfg.MaxBodySize)
	}

	reader, err = decompressReader(resp, reader)
	if err != nil {
		return nil, &types.FetchError{URL: url, Err: err, Retryable: false}
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, &types.FetchError{URL: url, Err: err, Retryable: true}
	}
	if len(body) == 0 {
		return nil, &types.FetchError{URL: url, Err: types.ErrEmptyResponse, Retryable: true}
	}

	f.logger.Debug("static fetch complete",
		"url", url,
		"status", resp.StatusCode,
		"size", len(body),
		"duration", time.Since(start),
	)

	return NewStaticPage(string(body))
}

// Close releases idle connections.
func (f *StaticFetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}

func (f *StaticFetcher) nextUserAgent() string {
	if len(f.userAgents) == 0 {
		return "Scout/" + config.Version
	}
	idx := f.uaIndex.Add(1) % int64(len(f.userAgents))
	return f.userAgents[idx]
}

// decompressReader wraps a reader with the appropriate decompressor.
// Handles gzip, deflate, and brotli (br) encodings.
func decompressReader(resp *http.Response, reader io.Reader) (io.Reader, error) {
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		return gzip.NewReader(reader)
	case "deflate":
		return flate.NewReader(reader), nil
	case "br":
		return brotli.NewReader(reader), nil
	default:
		return reader, nil
	}
}

// isRetryableError checks if a network error warrants a retry.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return true
	}
	if netErr, ok := err.(net.Error); ok {
		if netErr.Timeout() {
			return true
		}
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if errors.Is(opErr.Err, syscall.ECONNRESET) ||
			errors.Is(opErr.Err, syscall.ECONNREFUSED) {
			return true
		}
	}
	return false
}
