// Package seen keeps a local history of listing stubs so repeated runs can report only
// postings that were not there before.
package seen

import (
	"strings"

	"github.com/arome-jobs/jobwatch/internal/models"
)

const keySeparator = "::"

// DiffStats captures stats for new-versus-history filtering.
type DiffStats struct {
	TotalNew    int
	TotalSeen   int
	InvalidNew  int
	InvalidSeen int
	Unseen      int
}

// InvalidSkipped returns the total invalid records skipped during comparison.
func (s DiffStats) InvalidSkipped() int {
	return s.InvalidNew + s.InvalidSeen
}

// MergeStats captures stats for history updates.
type MergeStats struct {
	TotalSeen    int
	TotalInput   int
	InvalidSeen  int
	InvalidInput int
	Added        int
	TotalOut     int
}

// InvalidSkipped returns the total invalid records skipped during merge.
func (s MergeStats) InvalidSkipped() int {
	return s.InvalidSeen + s.InvalidInput
}

// Key identifies a stub by source and source-assigned id. Ids are compared verbatim;
// aggregator ids are case-sensitive.
func Key(stub models.ListingStub) (string, bool) {
	source := strings.ToLower(strings.TrimSpace(stub.Source))
	id := strings.TrimSpace(stub.ExternalID)
	if source == "" || id == "" {
		return "", false
	}
	return source + keySeparator + id, true
}

// Diff returns stubs from newStubs whose key is absent from history.
func Diff(newStubs []models.ListingStub, history []models.ListingStub) ([]models.ListingStub, DiffStats) {
	stats := DiffStats{
		TotalNew:  len(newStubs),
		TotalSeen: len(history),
	}

	seenKeys := make(map[string]struct{}, len(history))
	for _, stub := range history {
		key, ok := Key(stub)
		if !ok {
			stats.InvalidSeen++
			continue
		}
		seenKeys[key] = struct{}{}
	}

	newKeys := make(map[string]struct{}, len(newStubs))
	unseen := make([]models.ListingStub, 0, len(newStubs))
	for _, stub := range newStubs {
		key, ok := Key(stub)
		if !ok {
			stats.InvalidNew++
			continue
		}
		if _, exists := newKeys[key]; exists {
			continue
		}
		newKeys[key] = struct{}{}
		if _, exists := seenKeys[key]; exists {
			continue
		}
		unseen = append(unseen, stub)
	}

	stats.Unseen = len(unseen)
	return unseen, stats
}

// Merge appends unseen input stubs to history. History entries win collisions and
// invalid history entries are carried over untouched.
func Merge(history []models.ListingStub, input []models.ListingStub) ([]models.ListingStub, MergeStats) {
	stats := MergeStats{
		TotalSeen:  len(history),
		TotalInput: len(input),
	}

	keys := make(map[string]struct{}, len(history)+len(input))
	out := make([]models.ListingStub, 0, len(history)+len(input))

	for _, stub := range history {
		key, ok := Key(stub)
		if !ok {
			stats.InvalidSeen++
			out = append(out, stub)
			continue
		}
		if _, exists := keys[key]; exists {
			continue
		}
		keys[key] = struct{}{}
		out = append(out, stub)
	}

	for _, stub := range input {
		key, ok := Key(stub)
		if !ok {
			stats.InvalidInput++
			continue
		}
		if _, exists := keys[key]; exists {
			continue
		}
		keys[key] = struct{}{}
		out = append(out, stub)
		stats.Added++
	}

	stats.TotalOut = len(out)
	return out, stats
}
