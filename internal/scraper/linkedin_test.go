package scraper

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arome-jobs/jobwatch/internal/monitor"
	"github.com/arome-jobs/jobwatch/internal/normalize"
	"github.com/arome-jobs/jobwatch/internal/vocab"
)

func TestLinkedInListings(t *testing.T) {
	t.Setenv(LinkedInKeyEnv, "secret")
	doer := &fakeDoer{body: `{"success":true,"message":"","data":[
	  {"id":"4012345678","title":"Aromaticien Senior","url":"https://www.linkedin.com/jobs/view/4012345678","company":{"name":"Robertet"},"location":"Grasse, Provence-Alpes-Côte d'Azur, France","type":"Full-time","postAt":"2026-10-01 10:00:00 +0000 UTC"},
	  {"id":4012345679,"title":"Parfumeur Junior","company":{"name":"Expressions Parfumées"},"location":"Grasse","type":"Internship"},
	  {"id":"4012345678","title":"Aromaticien Senior","company":{"name":"Robertet"}}
	]}`}

	target := Target{URL: monitor.Scheme + "search?keywords=aromaticien"}
	stubs, err := NewLinkedIn(doer).ExtractListings(context.Background(), target)
	require.NoError(t, err)
	require.Len(t, stubs, 2)

	query := doer.requests[0].URL.Query()
	assert.Equal(t, "/search-jobs-v2", doer.requests[0].URL.Path)
	assert.Equal(t, "aromaticien", query.Get("keywords"))
	assert.Equal(t, monitor.DefaultLocationID, query.Get("locationId"))
	assert.Equal(t, string(monitor.DefaultDatePosted), query.Get("datePosted"))
	assert.Equal(t, linkedInHost, doer.requests[0].Header.Get("x-rapidapi-host"))

	assert.Equal(t, SiteLinkedIn, stubs[0].Source)
	assert.Equal(t, "Robertet", stubs[0].Company)
	assert.Equal(t, "Full-time", stubs[0].EmploymentType)
	assert.Equal(t, "4012345679", stubs[1].ExternalID)
	assert.Equal(t, "https://www.linkedin.com/jobs/view/4012345679/", stubs[1].ListingURL)
}

func TestLinkedInListingsRequireEncodedTarget(t *testing.T) {
	t.Setenv(LinkedInKeyEnv, "secret")
	doer := &fakeDoer{}

	_, err := NewLinkedIn(doer).ExtractListings(context.Background(), Target{URL: "https://www.linkedin.com/jobs/search?keywords=x"})
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
	assert.ErrorIs(t, err, monitor.ErrNotEncoded)
	assert.Empty(t, doer.requests)
}

func TestLinkedInMissingKey(t *testing.T) {
	t.Setenv(LinkedInKeyEnv, "")

	_, err := NewLinkedIn(&fakeDoer{}).ExtractDetail(context.Background(), Target{ExternalID: "1"})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.True(t, IsConfigError(err))
}

func TestLinkedInDetail(t *testing.T) {
	t.Setenv(LinkedInKeyEnv, "secret")
	doer := &fakeDoer{body: `{"success":true,"message":"","data":{
	  "id":"4012345678","title":"Aromaticien Senior","description":"<p>Rejoignez notre laboratoire.</p>",
	  "company":{"name":"Robertet"},"location":"Grasse, France","type":"Full-time",
	  "formattedExperienceLevel":"Mid-Senior level","listedAt":1767225600000,"expireAt":1769904000000}}`}

	target := Target{URL: "https://www.linkedin.com/jobs/view/aromaticien-senior-at-robertet-4012345678/?trk=x", ExternalID: "999"}
	detail, err := NewLinkedIn(doer).ExtractDetail(context.Background(), target)
	require.NoError(t, err)

	assert.Equal(t, "/get-job-details", doer.requests[0].URL.Path)
	assert.Equal(t, "4012345678", doer.requests[0].URL.Query().Get("id"))

	assert.Equal(t, SiteLinkedIn, detail.Source)
	assert.Equal(t, "4012345678", detail.ExternalID)
	assert.Equal(t, "Full-time", detail.EmploymentType)
	assert.Equal(t, "CDI", detail.ContractType)
	assert.Equal(t, "2026-01-01T00:00:00Z", detail.PostedAt)
	assert.Equal(t, "2026-02-01T00:00:00Z", detail.ExpiresAt)
	require.NotNil(t, detail.ExperienceMonths)
	assert.Equal(t, 72, *detail.ExperienceMonths)
	assert.Equal(t, vocab.Experience6To10, normalize.MapExperienceLevel(detail.ExperienceMonths))
	assert.Equal(t, target.URL, detail.SourceURL)
}

func TestLinkedInJobID(t *testing.T) {
	cases := map[string]string{
		"https://www.linkedin.com/jobs/view/4012345678":                          "4012345678",
		"https://www.linkedin.com/jobs/view/flavorist-at-mane-4012345678/?a=b":   "4012345678",
		"https://www.linkedin.com/jobs/search/?currentJobId=3999&keywords=aroma": "3999",
		"https://www.linkedin.com/company/mane":                                  "",
		"":                                                                       "",
	}
	for in, want := range cases {
		assert.Equal(t, want, linkedInJobID(in), in)
	}
}

func TestLinkedInExperience(t *testing.T) {
	cases := map[string]int{
		"Internship":       0,
		"Entry level":      12,
		"Associate":        24,
		"Mid-Senior level": 72,
		"Director":         120,
		"Executive":        180,
	}
	for in, want := range cases {
		got := linkedInExperience(in)
		require.NotNil(t, got, in)
		assert.Equal(t, want, *got, in)
	}
	assert.Nil(t, linkedInExperience(""))
	assert.Nil(t, linkedInExperience("Not Applicable"))
}
