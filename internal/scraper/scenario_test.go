package scraper

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arome-jobs/jobwatch/internal/prefill"
	"github.com/arome-jobs/jobwatch/internal/vocab"
)

func TestHelloWorkDetailToPrefill(t *testing.T) {
	page := &fakePage{
		url: "https://www.hellowork.com/fr-fr/emplois/777.html",
		html: `<html><head><script type="application/ld+json">{"@context":"https://schema.org","@type":"JobPosting",
		  "title":"Flavorist","description":"<p>Développer des arômes.</p>",
		  "hiringOrganization":{"name":"Mane"},
		  "jobLocation":{"address":{"addressLocality":"Grasse","postalCode":"06130"}},
		  "employmentType":"FULL_TIME","validThrough":"2026-12-31T23:00:00Z"}</script></head><body></body></html>`,
	}

	detail, err := NewHelloWork(0).ExtractDetail(context.Background(), Target{Page: page})
	require.NoError(t, err)

	record := prefill.Project(detail)
	assert.Equal(t, string(vocab.FullTime), record.EmploymentType)
	assert.Equal(t, "Grasse (06130)", record.Location)
	assert.Equal(t, "Mane", record.CompanyName)
	assert.Equal(t, "Développer des arômes.", record.Description)
	assert.Equal(t, "hellowork.com", record.SourceWebsite)
	assert.Equal(t, "2026-12-31", record.ExpiresAt)
	assert.Empty(t, record.ExperienceLevel)
	assert.Equal(t, prefill.Industry, record.Industry)
}

func TestLinkedInDetailToPrefill(t *testing.T) {
	t.Setenv(LinkedInKeyEnv, "secret")
	doer := &fakeDoer{body: `{"success":true,"data":{"id":"55","title":"Évaluateur sensoriel","type":"Contract",
	  "formattedExperienceLevel":"Mid-Senior level","company":{"name":"Givaudan"}}}`}

	detail, err := NewLinkedIn(doer).ExtractDetail(context.Background(), Target{ExternalID: "55"})
	require.NoError(t, err)

	record := prefill.Project(detail)
	assert.Equal(t, string(vocab.CDD), record.EmploymentType, "contract label wins over the raw type")
	assert.Equal(t, string(vocab.Experience6To10), record.ExperienceLevel)
	assert.Equal(t, "linkedin.com", record.SourceWebsite)
}
