package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/wearstack/scout/internal/config"
	"github.com/wearstack/scout/internal/extract"
	"github.com/wearstack/scout/internal/types"
)

// Client owns a headless Chromium instance and opens one stealth page per
// product URL. Pages are never reused across requests; a storefront that
// fingerprints the session sees a fresh one each time.
type Client struct {
	browser *rod.Browser
	cfg     *config.AutomationConfig
	logger  *slog.Logger
}

// NewClient launches a headless browser and connects to it.
func NewClient(cfg *config.AutomationConfig, logger *slog.Logger) (*Client, error) {
	c := &Client{
		cfg:    cfg,
		logger: logger.With("component", "browser"),
	}

	launchURL, err := c.launch()
	if err != nil {
		return nil, fmt.Errorf("%w: launch: %v", types.ErrNoBrowser, err)
	}

	browser := rod.New().ControlURL(launchURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("%w: connect: %v", types.ErrNoBrowser, err)
	}
	c.browser = browser

	c.logger.Info("browser ready",
		"viewport", fmt.Sprintf("%dx%d", cfg.ViewportWidth, cfg.ViewportHeight),
		"navigation_timeout", cfg.NavigationTimeout,
	)

	return c, nil
}

func (c *Client) launch() (string, error) {
	l := launcher.New().
		Headless(true).
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Set("no-sandbox").
		Set("disable-setuid-sandbox").
		Set("disable-blink-features", "AutomationControlled")

	return l.Launch()
}

// Load opens a stealth page, emulates a mobile device, navigates to the URL,
// lets lazy-loaded content settle, and scrolls to trigger image loading. The
// returned session must be closed by the caller.
func (c *Client) Load(ctx context.Context, url string) (*Session, error) {
	page, err := stealth.Page(c.browser)
	if err != nil {
		return nil, &types.FetchError{URL: url, Err: fmt.Errorf("stealth page: %w", err), Retryable: true}
	}
	page = page.Context(ctx)

	s := &Session{page: page, logger: c.logger}

	if err := s.emulate(c.cfg); err != nil {
		s.Close()
		return nil, &types.FetchError{URL: url, Err: err, Retryable: true}
	}

	// Navigation failures and timeouts are tolerated: extraction runs
	// against whatever content made it into the page.
	if err := page.Timeout(c.cfg.NavigationTimeout).Navigate(url); err != nil {
		c.logger.Warn("navigation failed, extracting partial content", "url", url, "error", err)
	}

	if err := page.Timeout(c.cfg.NavigationTimeout).WaitStable(300 * time.Millisecond); err != nil {
		c.logger.Warn("page stability timeout, continuing", "url", url, "error", err)
	}

	time.Sleep(c.cfg.SettleDelay)
	s.scroll(c.cfg.ScrollCycles, c.cfg.ScrollDelay)

	return s, nil
}

// Close shuts down the browser.
func (c *Client) Close() error {
	if c.browser != nil {
		return c.browser.Close()
	}
	return nil
}

// Session is one rendered product page. It satisfies extract.Page.
type Session struct {
	page   *rod.Page
	logger *slog.Logger
}

func (s *Session) emulate(cfg *config.AutomationConfig) error {
	if cfg.UserAgent != "" {
		err := s.page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: cfg.UserAgent})
		if err != nil {
			return fmt.Errorf("set user agent: %w", err)
		}
	}

	err := s.page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             cfg.ViewportWidth,
		Height:            cfg.ViewportHeight,
		DeviceScaleFactor: 3,
		Mobile:            true,
	})
	if err != nil {
		return fmt.Errorf("set viewport: %w", err)
	}
	return nil
}

func (s *Session) scroll(cycles int, delay time.Duration) {
	for i := 0; i < cycles; i++ {
		if _, err := s.page.Eval(scrollByViewportJS); err != nil {
			s.logger.Warn("scroll eval failed", "error", err)
			return
		}
		time.Sleep(delay)
	}
}

// HTML returns the rendered document markup.
func (s *Session) HTML() (string, error) {
	return s.page.HTML()
}

// QueryText returns the trimmed text of the first selector that matches a
// non-empty element. Selectors starting with "//" are resolved as XPath.
func (s *Session) QueryText(selectors ...string) (string, bool) {
	for _, sel := range selectors {
		var (
			has bool
			el  *rod.Element
			err error
		)
		if strings.HasPrefix(sel, "//") {
			has, el, err = s.page.HasX(sel)
		} else {
			has, el, err = s.page.Has(sel)
		}
		if err != nil || !has {
			continue
		}
		text, err := el.Text()
		if err != nil {
			continue
		}
		if t := strings.TrimSpace(text); t != "" {
			return t, true
		}
	}
	return "", false
}

// ImageSignals evaluates the in-page collector and decodes its output.
func (s *Session) ImageSignals() ([]extract.ImageSignal, error) {
	obj, err := s.page.Eval(imageSignalsJS)
	if err != nil {
		return nil, fmt.Errorf("collect image signals: %w", err)
	}
	var signals []extract.ImageSignal
	if err := json.Unmarshal([]byte(obj.Value.Str()), &signals); err != nil {
		return nil, fmt.Errorf("decode image signals: %w", err)
	}
	return signals, nil
}

// SizeTokens evaluates the in-page collector and decodes its output.
func (s *Session) SizeTokens() ([]string, error) {
	obj, err := s.page.Eval(sizeTokensJS)
	if err != nil {
		return nil, fmt.Errorf("collect size tokens: %w", err)
	}
	var tokens []string
	if err := json.Unmarshal([]byte(obj.Value.Str()), &tokens); err != nil {
		return nil, fmt.Errorf("decode size tokens: %w", err)
	}
	return tokens, nil
}

// Close releases the page.
func (s *Session) Close() error {
	return s.page.Close()
}
