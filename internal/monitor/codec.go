// Package monitor encodes the search parameters of parameter-driven sources into the
// single string a monitor stores where URL-based sources store their search URL.
package monitor

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// DatePosted is the recency filter understood by the LinkedIn jobs API.
type DatePosted string

const (
	PastMonth   DatePosted = "pastMonth"
	Past24Hours DatePosted = "past24Hours"
	PastWeek    DatePosted = "pastWeek"
)

const (
	// Scheme marks an encoded parameter string. It is not a real URL scheme.
	Scheme = "linkedin-api://"
	prefix = Scheme + "search?"

	// DefaultLocationID is LinkedIn's geo id for France.
	DefaultLocationID = "105015875"
	DefaultDatePosted = PastWeek
)

const (
	keyKeywords   = "keywords"
	keyLocationID = "locationId"
	keyDatePosted = "datePosted"
)

var (
	ErrNotEncoded        = errors.New("monitor: value is not an encoded parameter string")
	ErrInvalidDatePosted = errors.New("monitor: invalid datePosted")
)

// SearchParameters drives a search on a source that has no search URL of its own.
type SearchParameters struct {
	Keywords   string     `json:"keywords" yaml:"keywords"`
	LocationID string     `json:"location_id" yaml:"location_id"`
	DatePosted DatePosted `json:"date_posted" yaml:"date_posted"`
}

func (d DatePosted) Valid() bool {
	switch d {
	case PastMonth, Past24Hours, PastWeek:
		return true
	}
	return false
}

// Encode serializes p as-is; defaults are applied only by Decode.
func Encode(p SearchParameters) string {
	values := url.Values{}
	values.Set(keyKeywords, p.Keywords)
	values.Set(keyLocationID, p.LocationID)
	values.Set(keyDatePosted, string(p.DatePosted))
	return prefix + values.Encode()
}

// Decode is the inverse of Encode. Keys missing from value take their defaults.
func Decode(value string) (SearchParameters, error) {
	value = strings.TrimSpace(value)
	if !IsEncoded(value) {
		return SearchParameters{}, ErrNotEncoded
	}

	rest := strings.TrimPrefix(value, Scheme)
	if idx := strings.Index(rest, "?"); idx >= 0 {
		rest = rest[idx+1:]
	} else {
		rest = ""
	}

	values, err := url.ParseQuery(rest)
	if err != nil {
		return SearchParameters{}, fmt.Errorf("monitor: parse parameters: %w", err)
	}

	params := SearchParameters{
		Keywords:   values.Get(keyKeywords),
		LocationID: DefaultLocationID,
		DatePosted: DefaultDatePosted,
	}
	if values.Has(keyLocationID) {
		params.LocationID = values.Get(keyLocationID)
	}
	if values.Has(keyDatePosted) {
		params.DatePosted = DatePosted(values.Get(keyDatePosted))
		if !params.DatePosted.Valid() {
			return SearchParameters{}, fmt.Errorf("%w: %q", ErrInvalidDatePosted, params.DatePosted)
		}
	}
	return params, nil
}

// IsEncoded reports whether value holds encoded parameters rather than a URL.
func IsEncoded(value string) bool {
	return strings.HasPrefix(strings.TrimSpace(value), Scheme)
}
