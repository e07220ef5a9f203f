// Package browser is the boundary between extractors and a headless browser.
// Extractors only see Page; sessions and navigation live here and belong to the caller.
package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrWaitTimeout is returned when WaitForSelector gives up.
var ErrWaitTimeout = errors.New("browser: wait for selector timed out")

// Page is an already-navigated document. Evaluate must only return plain values
// (strings, numbers, bools, maps, slices), never live DOM handles.
type Page interface {
	WaitForSelector(ctx context.Context, selector string, timeout time.Duration) error
	Evaluate(ctx context.Context, expression string) (any, error)
	URL() string
}

// Tab is a Page the caller owns and must close.
type Tab interface {
	Page
	Close() error
}

// Session opens tabs on one browser instance.
type Session interface {
	Open(ctx context.Context, url string) (Tab, error)
	Close() error
}

const (
	EnginePlaywright = "playwright"
	EngineChromedp   = "chromedp"
)

// Options configures a Session.
type Options struct {
	Headless          bool
	UserAgent         string
	NavigationTimeout time.Duration
}

const defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

// NewSession starts a browser with the named engine.
func NewSession(ctx context.Context, engine string, opts Options) (Session, error) {
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.NavigationTimeout <= 0 {
		opts.NavigationTimeout = 30 * time.Second
	}
	switch strings.ToLower(strings.TrimSpace(engine)) {
	case "", EnginePlaywright:
		return NewPlaywrightSession(opts)
	case EngineChromedp:
		return NewChromedpSession(ctx, opts)
	default:
		return nil, fmt.Errorf("unknown browser engine: %s", engine)
	}
}

// EvaluateString runs expression and requires a string result.
func EvaluateString(ctx context.Context, page Page, expression string) (string, error) {
	value, err := page.Evaluate(ctx, expression)
	if err != nil {
		return "", err
	}
	switch v := value.(type) {
	case string:
		return v, nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("browser: expected string result, got %T", value)
	}
}
