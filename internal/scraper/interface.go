package scraper

import (
	"context"

	"github.com/arome-jobs/jobwatch/internal/browser"
	"github.com/arome-jobs/jobwatch/internal/models"
)

// Kind tells the caller what a source needs before extraction can run.
type Kind string

const (
	// KindBrowser sources read an already-navigated Page.
	KindBrowser Kind = "browser"
	// KindAPI sources issue their own HTTP request from Target.URL.
	KindAPI Kind = "api"
)

// Target is what an extractor runs against. URL is a search URL, an encoded monitor
// parameter string, or a detail URL depending on the call. Page is set for browser sources.
type Target struct {
	URL        string
	ExternalID string
	Page       browser.Page
}

// ListingExtractor turns one search page or response into stubs, in source order,
// unique by ExternalID.
type ListingExtractor interface {
	Name() string
	Kind() Kind
	ExtractListings(ctx context.Context, target Target) ([]models.ListingStub, error)
}

// DetailExtractor turns one posting page or response into a full record.
type DetailExtractor interface {
	Name() string
	Kind() Kind
	ExtractDetail(ctx context.Context, target Target) (models.JobDetail, error)
}

// Adapter is a source that provides both passes.
type Adapter interface {
	ListingExtractor
	DetailExtractor
}
