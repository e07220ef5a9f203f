package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"golang.org/x/net/html"

	"github.com/arome-jobs/jobwatch/internal/browser"
	"github.com/arome-jobs/jobwatch/internal/models"
)

const (
	helloWorkBaseURL         = "https://www.hellowork.com"
	helloWorkListingSelector = `a[href*="/emplois/"]`
	helloWorkCardSelector    = "li, article"
	dataLayerScript          = `JSON.stringify(window.dataLayer || [])`

	DefaultWaitTimeout = 15 * time.Second
)

var (
	helloWorkIDPattern = regexp.MustCompile(`/emplois/(\d+)\.html`)
	contractLabelRe    = regexp.MustCompile(`(?:^|[^\p{L}])(CDI|CDD|Intérim|Interim|Stage|Alternance|Freelance)(?:[^\p{L}]|$)`)
	salaryLineRe       = regexp.MustCompile(`\d[\d .,]*k?\s*(?:€|EUR)?(?:\s*(?:-|–|à)\s*\d[\d .,]*k?\s*(?:€|EUR)?)?\s*/\s*(?:mois|an|heure|jour)\b`)
	// Free text then a department code, e.g. "Grasse - 06". Separators like "·", "|" or ","
	// end the free text, so the location is found inside combined lines too.
	locationRe         = regexp.MustCompile(`\p{L}[\p{L}\d'’ .()-]*?\s-\s(?:\d{2,3}|2[AB])\b`)
	companyAltPrefixes = []string{"recrutement", "logo"}

	dataLayerContractKeys = []string{"contract_type", "contractType", "type_contrat", "contrat"}
)

// HelloWork reads search results and postings from hellowork.com pages.
type HelloWork struct {
	waitTimeout time.Duration
}

func NewHelloWork(waitTimeout time.Duration) *HelloWork {
	if waitTimeout <= 0 {
		waitTimeout = DefaultWaitTimeout
	}
	return &HelloWork{waitTimeout: waitTimeout}
}

func (h *HelloWork) Name() string {
	return SiteHelloWork
}

func (h *HelloWork) Kind() Kind {
	return KindBrowser
}

func (h *HelloWork) ExtractListings(ctx context.Context, target Target) ([]models.ListingStub, error) {
	if target.Page == nil {
		return nil, fmt.Errorf("%s: %w", SiteHelloWork, ErrPageRequired)
	}
	h.waitFor(ctx, target.Page, helloWorkListingSelector)

	doc, err := pageDocument(ctx, target.Page)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", SiteHelloWork, err)
	}
	base := firstNonEmpty(target.Page.URL(), target.URL, helloWorkBaseURL)
	return parseHelloWorkListings(doc, base), nil
}

func (h *HelloWork) ExtractDetail(ctx context.Context, target Target) (models.JobDetail, error) {
	if target.Page == nil {
		return models.JobDetail{}, fmt.Errorf("%s: %w", SiteHelloWork, ErrPageRequired)
	}
	h.waitFor(ctx, target.Page, jsonLDSelector)

	doc, err := pageDocument(ctx, target.Page)
	if err != nil {
		return models.JobDetail{}, fmt.Errorf("%s: %w", SiteHelloWork, err)
	}
	posting := findJobPosting(doc)
	if posting == nil {
		return models.JobDetail{}, fmt.Errorf("%s: %w", SiteHelloWork, ErrNoStructuredData)
	}

	detail := detailFromJobPosting(posting)
	detail.Source = SiteHelloWork
	detail.SourceURL = firstNonEmpty(target.Page.URL(), detail.SourceURL, target.URL)
	detail.ExternalID = target.ExternalID
	if detail.ExternalID == "" {
		if match := helloWorkIDPattern.FindStringSubmatch(detail.SourceURL); len(match) > 1 {
			detail.ExternalID = match[1]
		}
	}
	detail.ContractType = contractTypeFromDataLayer(ctx, target.Page)
	return detail, nil
}

// waitFor gives the page a chance to render; on timeout the current DOM is used as-is.
func (h *HelloWork) waitFor(ctx context.Context, page browser.Page, selector string) {
	if err := page.WaitForSelector(ctx, selector, h.waitTimeout); err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("site", SiteHelloWork).Str("selector", selector).Msg("selector not found, reading current DOM")
	}
}

func parseHelloWorkListings(doc *goquery.Document, base string) []models.ListingStub {
	stubs := make([]models.ListingStub, 0)
	seen := make(map[string]struct{})

	doc.Find(helloWorkListingSelector).Each(func(_ int, anchor *goquery.Selection) {
		href := strings.TrimSpace(anchor.AttrOr("href", ""))
		match := helloWorkIDPattern.FindStringSubmatch(href)
		if len(match) < 2 {
			return
		}
		id := match[1]
		if _, ok := seen[id]; ok {
			return
		}
		title := cleanText(anchor.Find("h1, h2, h3, h4").First().Text())
		if title == "" {
			return
		}

		card := helloWorkCardForAnchor(anchor)
		lines := textLines(card)
		seen[id] = struct{}{}
		stubs = append(stubs, models.ListingStub{
			Source:         SiteHelloWork,
			ExternalID:     id,
			Title:          title,
			Company:        helloWorkCompany(card, title),
			Location:       matchLine(lines, title, locationRe),
			EmploymentType: contractLabel(lines, title),
			Salary:         matchLine(lines, title, salaryLineRe),
			ListingURL:     absoluteURL(base, href),
		})
	})

	return stubs
}

func helloWorkCardForAnchor(anchor *goquery.Selection) *goquery.Selection {
	if card := anchor.Closest(helloWorkCardSelector); card.Length() > 0 {
		return card
	}
	return anchor.Parent()
}

// textLines returns the card's text nodes in document order, whitespace-collapsed.
// Matching per node keeps adjacent fields from bleeding into each other.
func textLines(sel *goquery.Selection) []string {
	var lines []string
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		switch node.Type {
		case html.TextNode:
			if line := strings.Join(strings.Fields(node.Data), " "); line != "" {
				lines = append(lines, line)
			}
			return
		case html.ElementNode:
			if node.Data == "script" || node.Data == "style" {
				return
			}
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	for _, node := range sel.Nodes {
		walk(node)
	}
	return lines
}

func matchLine(lines []string, title string, re *regexp.Regexp) string {
	for _, line := range lines {
		if line == title {
			continue
		}
		if found := re.FindString(line); found != "" {
			return strings.TrimSpace(found)
		}
	}
	return ""
}

func contractLabel(lines []string, title string) string {
	for _, line := range lines {
		if line == title {
			continue
		}
		if match := contractLabelRe.FindStringSubmatch(line); len(match) > 1 {
			return match[1]
		}
	}
	return ""
}

func helloWorkCompany(card *goquery.Selection, title string) string {
	var company string
	card.Find("img[alt]").EachWithBreak(func(_ int, img *goquery.Selection) bool {
		alt := cleanText(img.AttrOr("alt", ""))
		lower := strings.ToLower(alt)
		for _, prefix := range companyAltPrefixes {
			if strings.HasPrefix(lower, prefix) {
				alt = strings.TrimSpace(alt[len(prefix):])
				alt = strings.TrimSpace(strings.TrimLeft(alt, ":-"))
				break
			}
		}
		if alt == "" || strings.EqualFold(alt, title) {
			return true
		}
		company = alt
		return false
	})
	return company
}

// contractTypeFromDataLayer reads the analytics dataLayer for a contract label.
// It is best-effort: any failure yields "".
func contractTypeFromDataLayer(ctx context.Context, page browser.Page) string {
	raw, err := browser.EvaluateString(ctx, page, dataLayerScript)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("site", SiteHelloWork).Msg("dataLayer unavailable")
		return ""
	}
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	var entries []any
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("site", SiteHelloWork).Msg("dataLayer is not a JSON array")
		return ""
	}
	for _, entry := range entries {
		fields, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		for _, key := range dataLayerContractKeys {
			if value := stringValue(fields[key]); value != "" {
				return value
			}
		}
	}
	return ""
}
