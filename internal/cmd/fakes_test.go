package cmd

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/arome-jobs/jobwatch/internal/browser"
	"github.com/arome-jobs/jobwatch/internal/models"
	"github.com/arome-jobs/jobwatch/internal/scraper"
)

// fakeAdapter answers listing and detail calls from maps keyed by target URL.
type fakeAdapter struct {
	name       string
	kind       scraper.Kind
	listings   map[string][]models.ListingStub
	listingErr map[string]error
	detailErr  map[string]error

	detailCalls atomic.Int32
	inFlight    atomic.Int32
	maxInFlight atomic.Int32
	sawPage     atomic.Bool
}

func (f *fakeAdapter) Name() string       { return f.name }
func (f *fakeAdapter) Kind() scraper.Kind { return f.kind }

func (f *fakeAdapter) ExtractListings(_ context.Context, target scraper.Target) ([]models.ListingStub, error) {
	if err := f.listingErr[target.URL]; err != nil {
		return nil, err
	}
	return f.listings[target.URL], nil
}

func (f *fakeAdapter) ExtractDetail(_ context.Context, target scraper.Target) (models.JobDetail, error) {
	f.detailCalls.Add(1)
	current := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		peak := f.maxInFlight.Load()
		if current <= peak || f.maxInFlight.CompareAndSwap(peak, current) {
			break
		}
	}
	if target.Page != nil {
		f.sawPage.Store(true)
	}
	time.Sleep(5 * time.Millisecond)

	if err := f.detailErr[target.ExternalID]; err != nil {
		return models.JobDetail{}, err
	}
	return models.JobDetail{
		Source:      f.name,
		ExternalID:  target.ExternalID,
		Title:       "Aromaticien " + target.ExternalID,
		Description: "<p>Création d'arômes</p>",
		Company:     "Arômes de Grasse",
		SourceURL:   target.URL,
	}, nil
}

type fakeTab struct{ url string }

func (t *fakeTab) WaitForSelector(context.Context, string, time.Duration) error { return nil }
func (t *fakeTab) Evaluate(context.Context, string) (any, error)                { return "", nil }
func (t *fakeTab) URL() string                                                  { return t.url }
func (t *fakeTab) Close() error                                                 { return nil }

type fakeSession struct {
	mu     sync.Mutex
	opened []string
	err    error
}

func (s *fakeSession) Open(_ context.Context, url string) (browser.Tab, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.mu.Lock()
	s.opened = append(s.opened, url)
	s.mu.Unlock()
	return &fakeTab{url: url}, nil
}

func (s *fakeSession) Close() error { return nil }

func newFakeExtraction(session browser.Session, adapters ...scraper.Adapter) *extraction {
	if session == nil {
		session = &fakeSession{err: errors.New("no browser in tests")}
	}
	return &extraction{registry: scraper.RegistryOf(adapters...), session: session}
}

func stubs(source string, ids ...string) []models.ListingStub {
	out := make([]models.ListingStub, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.ListingStub{
			Source:     source,
			ExternalID: id,
			Title:      "Aromaticien " + id,
			ListingURL: "https://example.test/jobs/" + id,
		})
	}
	return out
}
