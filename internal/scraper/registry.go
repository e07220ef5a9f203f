package scraper

import (
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/arome-jobs/jobwatch/internal/monitor"
	"github.com/arome-jobs/jobwatch/internal/network"
)

const (
	SiteHelloWork = "hellowork"
	SiteJSearch   = "jsearch"
	SiteLinkedIn  = "linkedin"
)

// Options tunes the adapters a Registry builds.
type Options struct {
	WaitTimeout time.Duration
	HTTPTimeout time.Duration
}

// Registry maps source keys to their extractors.
type Registry struct {
	listings map[string]ListingExtractor
	details  map[string]DetailExtractor
}

// NewRegistry builds every known adapter. Each API source gets its own HTTP client.
func NewRegistry(rotator *network.Rotator, opts Options) (*Registry, error) {
	makeClient := func() (*network.Client, error) {
		return network.NewClient(rotator, opts.HTTPTimeout)
	}

	jsearch, err := makeClient()
	if err != nil {
		return nil, err
	}
	linkedIn, err := makeClient()
	if err != nil {
		return nil, err
	}

	return RegistryOf(
		NewHelloWork(opts.WaitTimeout),
		NewJSearch(jsearch),
		NewLinkedIn(linkedIn),
	), nil
}

// RegistryOf builds a Registry from ready adapters, keyed by Name.
func RegistryOf(adapters ...Adapter) *Registry {
	r := &Registry{
		listings: make(map[string]ListingExtractor, len(adapters)),
		details:  make(map[string]DetailExtractor, len(adapters)),
	}
	for _, adapter := range adapters {
		key := NormalizeSource(adapter.Name())
		r.listings[key] = adapter
		r.details[key] = adapter
	}
	return r
}

func (r *Registry) Listing(key string) (ListingExtractor, bool) {
	extractor, ok := r.listings[NormalizeSource(key)]
	return extractor, ok
}

func (r *Registry) Detail(key string) (DetailExtractor, bool) {
	extractor, ok := r.details[NormalizeSource(key)]
	return extractor, ok
}

// Sources lists every key with a listing extractor, sorted.
func (r *Registry) Sources() []string {
	keys := make([]string, 0, len(r.listings))
	for key := range r.listings {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func NormalizeSource(source string) string {
	source = strings.ToLower(strings.TrimSpace(source))
	return strings.TrimPrefix(source, "www.")
}

func NormalizeSources(sources []string) []string {
	out := make([]string, 0, len(sources))
	for _, source := range sources {
		if source = NormalizeSource(source); source != "" {
			out = append(out, source)
		}
	}
	return out
}

// SourceForTarget infers a source key from a search target, or "" when nothing matches.
func SourceForTarget(target string) string {
	target = strings.TrimSpace(target)
	if monitor.IsEncoded(target) {
		return SiteLinkedIn
	}
	parsed, err := url.Parse(target)
	if err != nil {
		return ""
	}
	host := NormalizeSource(parsed.Hostname())
	switch {
	case host == "hellowork.com" || strings.HasSuffix(host, ".hellowork.com"):
		return SiteHelloWork
	case strings.Contains(host, "jsearch"):
		return SiteJSearch
	case host == "linkedin.com" || strings.HasSuffix(host, ".linkedin.com"):
		return SiteLinkedIn
	}
	return ""
}
