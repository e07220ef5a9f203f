package cmd

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/arome-jobs/jobwatch/internal/browser"
	"github.com/arome-jobs/jobwatch/internal/config"
	"github.com/arome-jobs/jobwatch/internal/models"
	"github.com/arome-jobs/jobwatch/internal/network"
	"github.com/arome-jobs/jobwatch/internal/scraper"
)

// extraction drives extractors. Browser sources get a tab navigated to the target
// first; API sources are called directly.
type extraction struct {
	registry *scraper.Registry
	session  browser.Session
}

func newExtraction(ctx *Context, proxiesFlag string) (*extraction, error) {
	proxies, err := config.LoadProxies(proxiesFlag)
	if err != nil {
		return nil, err
	}

	var rotator *network.Rotator
	if len(proxies) > 0 {
		rotator, err = network.NewRotator(proxies, 10*time.Minute)
		if err != nil {
			return nil, err
		}
	}

	registry, err := scraper.NewRegistry(rotator, scraper.Options{
		WaitTimeout: ctx.Config.WaitTimeout(),
		HTTPTimeout: ctx.Config.HTTPTimeout(),
	})
	if err != nil {
		return nil, err
	}

	return &extraction{
		registry: registry,
		session: &lazySession{
			engine: ctx.Config.BrowserEngine,
			opts:   browser.Options{Headless: ctx.Config.Headless},
		},
	}, nil
}

func (e *extraction) Close() error {
	if e.session == nil {
		return nil
	}
	return e.session.Close()
}

// resolveSource picks the source for a target: explicit flag, then inference, then
// the configured default.
func resolveSource(explicit, target, fallback string) (string, error) {
	if source := scraper.NormalizeSource(explicit); source != "" {
		return source, nil
	}
	if source := scraper.SourceForTarget(target); source != "" {
		return source, nil
	}
	if source := scraper.NormalizeSource(fallback); source != "" {
		return source, nil
	}
	return "", fmt.Errorf("cannot infer a source for %q; pass --source", target)
}

func (e *extraction) listings(ctx context.Context, source, target string) ([]models.ListingStub, error) {
	extractor, ok := e.registry.Listing(source)
	if !ok {
		return nil, fmt.Errorf("unknown source: %s", source)
	}

	t := scraper.Target{URL: target}
	if extractor.Kind() == scraper.KindBrowser {
		tab, err := e.session.Open(ctx, target)
		if err != nil {
			return nil, fmt.Errorf("%s: open %s: %w", source, target, err)
		}
		defer tab.Close()
		t.Page = tab
	}
	return extractor.ExtractListings(ctx, t)
}

func (e *extraction) detail(ctx context.Context, extractor scraper.DetailExtractor, url, externalID string) (models.JobDetail, error) {
	t := scraper.Target{URL: url, ExternalID: externalID}
	if extractor.Kind() == scraper.KindBrowser {
		tab, err := e.session.Open(ctx, url)
		if err != nil {
			return models.JobDetail{}, fmt.Errorf("%s: open %s: %w", extractor.Name(), url, err)
		}
		defer tab.Close()
		t.Page = tab
	}
	return extractor.ExtractDetail(ctx, t)
}

type detailOutcome struct {
	stub   models.ListingStub
	detail models.JobDetail
	err    error
}

// details runs the detail pass for stubs, in parallel for API sources and one page at a
// time for browser sources. One failed stub never affects another, except that the
// first configuration error is reused for the remaining stubs instead of calling out again.
func (e *extraction) details(ctx context.Context, source string, stubs []models.ListingStub, workers int) []detailOutcome {
	outcomes := make([]detailOutcome, len(stubs))
	extractor, ok := e.registry.Detail(source)
	if !ok {
		for i, stub := range stubs {
			outcomes[i] = detailOutcome{stub: stub, err: fmt.Errorf("unknown source: %s", source)}
		}
		return outcomes
	}

	if extractor.Kind() == scraper.KindBrowser || workers < 1 {
		workers = 1
	}

	var (
		mu       sync.Mutex
		fatalErr error
		group    errgroup.Group
	)
	group.SetLimit(workers)
	logger := zerolog.Ctx(ctx)

	for i, stub := range stubs {
		group.Go(func() error {
			mu.Lock()
			stopped := fatalErr
			mu.Unlock()
			if stopped == nil {
				stopped = ctx.Err()
			}
			if stopped != nil {
				outcomes[i] = detailOutcome{stub: stub, err: stopped}
				return nil
			}

			detail, err := e.detail(ctx, extractor, stub.ListingURL, stub.ExternalID)
			if err != nil {
				logger.Debug().Err(err).Str("source", source).Str("external_id", stub.ExternalID).Msg("detail failed")
				if scraper.IsConfigError(err) {
					mu.Lock()
					if fatalErr == nil {
						fatalErr = err
					}
					mu.Unlock()
				}
			}
			outcomes[i] = detailOutcome{stub: stub, detail: detail, err: err}
			return nil
		})
	}
	_ = group.Wait()
	return outcomes
}

// lazySession starts the browser on first use so API-only commands never launch one.
type lazySession struct {
	engine string
	opts   browser.Options

	mu      sync.Mutex
	session browser.Session
}

func (l *lazySession) Open(ctx context.Context, url string) (browser.Tab, error) {
	l.mu.Lock()
	if l.session == nil {
		session, err := browser.NewSession(ctx, l.engine, l.opts)
		if err != nil {
			l.mu.Unlock()
			return nil, err
		}
		l.session = session
	}
	session := l.session
	l.mu.Unlock()
	return session.Open(ctx, url)
}

func (l *lazySession) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.session == nil {
		return nil
	}
	err := l.session.Close()
	l.session = nil
	return err
}
