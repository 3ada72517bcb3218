// Package browser owns the shared Chrome connection. A Session resolves a
// connection mode once (CDP attach, persistent profile, or a fresh
// instance), hands out independent tabs to the scrapers, and is the only
// component that opens or closes the browser process.
package browser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"jobwerk/internal/logging"
)

type Mode string

const (
	ModeNew     Mode = "new"
	ModeCDP     Mode = "cdp"
	ModeProfile Mode = "profile"
)

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

type Options struct {
	// UseExisting asks for an already-authenticated session: CDP attach
	// first, persistent profile second. When false a disposable browser is
	// launched.
	UseExisting bool
	// CDPURL is the HTTP endpoint serving /json/version on the debugging
	// port, e.g. "http://127.0.0.1:9222/json/version".
	CDPURL     string
	ProfileDir string
	Headless   bool
}

// probeFunc fetches the websocket debugger URL from a CDP debugging
// endpoint. Split out so mode resolution is testable without Chrome.
type probeFunc func(url string) (string, error)

type Session struct {
	opts Options
	log  *logging.Logger

	probe probeFunc

	mu            sync.Mutex
	mode          Mode
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

func NewSession(opts Options, log *logging.Logger) *Session {
	if log == nil {
		log = logging.Nop()
	}
	return &Session{opts: opts, log: log, probe: probeCDP}
}

// resolveMode decides the connection mode without touching a browser.
// Fallback order when reuse is requested: CDP attach, then persistent
// profile, then a fresh instance. A probe failure is expected and not an
// error; reuse degrades, it never blocks searching.
func resolveMode(opts Options, probe probeFunc) (Mode, string) {
	if !opts.UseExisting {
		return ModeNew, ""
	}
	if opts.CDPURL != "" {
		ws, err := probe(opts.CDPURL)
		if err == nil && ws != "" {
			return ModeCDP, ws
		}
	}
	if opts.ProfileDir != "" {
		return ModeProfile, ""
	}
	return ModeNew, ""
}

// Acquire opens the browser connection. A second call while the connection
// is open is a no-op, so parallel adapters share one browser process.
func (s *Session) Acquire(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.browserCtx != nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	mode, wsURL := resolveMode(s.opts, s.probe)

	var allocCtx context.Context
	var allocCancel context.CancelFunc

	switch mode {
	case ModeCDP:
		allocCtx, allocCancel = chromedp.NewRemoteAllocator(context.Background(), wsURL)
		s.log.Info("attached to existing browser via CDP")
	case ModeProfile:
		// Profile mode runs visible: it reuses a human's login state and
		// the sites involved block obviously-headless sessions.
		allocCtx, allocCancel = chromedp.NewExecAllocator(context.Background(),
			append(chromedp.DefaultExecAllocatorOptions[:],
				chromedp.UserDataDir(s.opts.ProfileDir),
				chromedp.Flag("headless", false),
				chromedp.Flag("disable-blink-features", "AutomationControlled"),
			)...,
		)
		s.log.Info("launching browser with persistent profile", "dir", s.opts.ProfileDir)
	default:
		allocCtx, allocCancel = chromedp.NewExecAllocator(context.Background(),
			append(chromedp.DefaultExecAllocatorOptions[:],
				chromedp.Flag("headless", s.opts.Headless),
				chromedp.Flag("disable-gpu", true),
				chromedp.Flag("no-sandbox", true),
				chromedp.Flag("disable-dev-shm-usage", true),
				chromedp.Flag("disable-blink-features", "AutomationControlled"),
				chromedp.UserAgent(userAgent),
			)...,
		)
		s.log.Info("launching disposable browser", "headless", s.opts.Headless)
	}

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Running an empty task forces the browser to start (or the CDP attach
	// to complete). Failure here is fatal: nothing downstream can work.
	startCtx, startCancel := context.WithTimeout(browserCtx, 30*time.Second)
	defer startCancel()
	if err := chromedp.Run(startCtx); err != nil {
		browserCancel()
		allocCancel()
		return fmt.Errorf("browser: start failed (mode=%s): %w", mode, err)
	}

	s.mode = mode
	s.allocCancel = allocCancel
	s.browserCtx = browserCtx
	s.browserCancel = browserCancel
	return nil
}

func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// NewPage returns a fresh tab context. Each adapter gets its own tab so
// parallel searches never share navigation state. The caller must invoke
// the cancel func when done with the tab.
func (s *Session) NewPage(ctx context.Context) (context.Context, context.CancelFunc, error) {
	if err := s.Acquire(ctx); err != nil {
		return nil, nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tab, cancel := chromedp.NewContext(s.browserCtx)
	return tab, cancel, nil
}

// Close releases the browser and invalidates all pages issued from it.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.browserCancel != nil {
		s.browserCancel()
		s.browserCancel = nil
	}
	if s.allocCancel != nil {
		s.allocCancel()
		s.allocCancel = nil
	}
	s.browserCtx = nil
	s.mode = ""
}

// probeCDP reads the websocket debugger URL from a Chrome debugging port.
// Chrome must have been started with --remote-debugging-port=9222.
func probeCDP(url string) (string, error) {
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("browser: CDP probe returned %d", resp.StatusCode)
	}

	var body struct {
		WebSocketDebuggerURL string `json:"webSocketDebuggerUrl"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if strings.TrimSpace(body.WebSocketDebuggerURL) == "" {
		return "", errors.New("browser: CDP endpoint has no webSocketDebuggerUrl")
	}
	return body.WebSocketDebuggerURL, nil
}
