package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/arome-jobs/jobwatch/internal/browser"
	"github.com/arome-jobs/jobwatch/internal/models"
)

const documentHTMLScript = `document.documentElement.outerHTML`

// pageDocument pulls the rendered DOM out of the page as a string and parses it locally.
func pageDocument(ctx context.Context, page browser.Page) (*goquery.Document, error) {
	markup, err := browser.EvaluateString(ctx, page, documentHTMLScript)
	if err != nil {
		return nil, fmt.Errorf("read page html: %w", err)
	}
	return goquery.NewDocumentFromReader(strings.NewReader(markup))
}

func cleanText(value string) string {
	value = html.UnescapeString(value)
	return strings.Join(strings.Fields(value), " ")
}

func absoluteURL(base string, href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if strings.HasPrefix(href, "//") {
		return "https:" + href
	}
	baseURL, err := url.Parse(base)
	if err != nil || baseURL.Host == "" {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(ref).String()
}

func decodeJSONLD(raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "<!--")
	raw = strings.TrimSuffix(raw, "-->")
	raw = strings.TrimSpace(raw)
	raw = strings.ReplaceAll(raw, "\u2028", "")
	raw = strings.ReplaceAll(raw, "\u2029", "")

	var data any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, err
	}
	return data, nil
}

func stringValue(values ...any) string {
	for _, value := range values {
		switch v := value.(type) {
		case string:
			if strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v)
			}
		case float64:
			return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
		case int:
			return fmt.Sprintf("%d", v)
		case int64:
			return fmt.Sprintf("%d", v)
		case json.Number:
			return v.String()
		case map[string]any:
			if name := stringValue(v["name"]); name != "" {
				return name
			}
		}
	}
	return ""
}

// firstString returns the first non-empty string of a value that may be a string or a list.
func firstString(value any) string {
	if list, ok := value.([]any); ok {
		for _, item := range list {
			if s := stringValue(item); s != "" {
				return s
			}
		}
		return ""
	}
	return stringValue(value)
}

func mapValue(value any, key string) any {
	m, ok := value.(map[string]any)
	if !ok {
		return nil
	}
	return m[key]
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if v := strings.TrimSpace(value); v != "" {
			return v
		}
	}
	return ""
}

func joinNonEmpty(sep string, values ...string) string {
	parts := make([]string, 0, len(values))
	for _, value := range values {
		if v := strings.TrimSpace(value); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, sep)
}

// dedupeStubs keeps the first stub per ExternalID and drops stubs without one.
func dedupeStubs(stubs []models.ListingStub) []models.ListingStub {
	seen := make(map[string]struct{}, len(stubs))
	out := make([]models.ListingStub, 0, len(stubs))
	for _, stub := range stubs {
		if stub.ExternalID == "" {
			continue
		}
		if _, ok := seen[stub.ExternalID]; ok {
			continue
		}
		seen[stub.ExternalID] = struct{}{}
		out = append(out, stub)
	}
	return out
}
