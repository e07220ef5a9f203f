package scraper

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arome-jobs/jobwatch/internal/browser"
)

const helloWorkSearchHTML = `<html><body><ul>
<li>
  <a href="/fr-fr/emplois/111.html"><h3> Aromaticien  H/F </h3></a>
  <img alt="Recrutement Firmenich" src="/logo.png">
  <div><span>Grasse - 06</span><span>CDI</span></div>
  <div><span>35 000 € / an</span></div>
</li>
<li>
  <article>
    <a href="/fr-fr/emplois/222.html"><h2>Évaluateur sensoriel</h2></a>
    <img alt="Logo Givaudan">
    <p>Argenteuil - 95</p>
    <p>Intérim</p>
  </article>
</li>
<li><a href="/fr-fr/emplois/111.html"><h3>Aromaticien H/F</h3></a></li>
<li>
  <a href="https://www.hellowork.com/fr-fr/emplois/333.html"><h4>Chef de projet</h4></a>
  <img alt="Chef de projet">
  <span>Ajaccio - 2A</span><span>Stage</span><span>1 200 € / mois</span>
</li>
<li>
  <a href="/fr-fr/emplois/555.html"><h3>Parfumeur junior</h3></a>
  <p>Vals-près-le-Puy - 43 · CDD · 2 000 € / mois</p>
</li>
<li><a href="/fr-fr/emplois/recherche.html">Voir plus</a></li>
<li><a href="/fr-fr/emplois/444.html"><img alt="Logo Mane"></a></li>
</ul></body></html>`

func TestHelloWorkListings(t *testing.T) {
	page := &fakePage{
		html: helloWorkSearchHTML,
		url:  "https://www.hellowork.com/fr-fr/emploi/recherche.html?k=aromaticien",
	}

	stubs, err := NewHelloWork(0).ExtractListings(context.Background(), Target{Page: page})
	require.NoError(t, err)
	require.Len(t, stubs, 4)
	assert.Equal(t, []string{helloWorkListingSelector}, page.waited)

	first := stubs[0]
	assert.Equal(t, SiteHelloWork, first.Source)
	assert.Equal(t, "111", first.ExternalID)
	assert.Equal(t, "Aromaticien H/F", first.Title)
	assert.Equal(t, "Firmenich", first.Company)
	assert.Equal(t, "Grasse - 06", first.Location)
	assert.Equal(t, "CDI", first.EmploymentType)
	assert.Equal(t, "35 000 € / an", first.Salary)
	assert.Equal(t, "https://www.hellowork.com/fr-fr/emplois/111.html", first.ListingURL)

	second := stubs[1]
	assert.Equal(t, "222", second.ExternalID)
	assert.Equal(t, "Givaudan", second.Company)
	assert.Equal(t, "Argenteuil - 95", second.Location)
	assert.Equal(t, "Intérim", second.EmploymentType)
	assert.Empty(t, second.Salary)

	third := stubs[2]
	assert.Equal(t, "333", third.ExternalID)
	assert.Empty(t, third.Company, "company equal to the title is dropped")
	assert.Equal(t, "Ajaccio - 2A", third.Location)
	assert.Equal(t, "Stage", third.EmploymentType)
	assert.Equal(t, "1 200 € / mois", third.Salary)

	fourth := stubs[3]
	assert.Equal(t, "555", fourth.ExternalID)
	assert.Equal(t, "Vals-près-le-Puy - 43", fourth.Location)
	assert.Equal(t, "CDD", fourth.EmploymentType)
	assert.Equal(t, "2 000 € / mois", fourth.Salary)
}

func TestHelloWorkListingsSelectorTimeout(t *testing.T) {
	page := &fakePage{
		html:    `<html><body><p>Aucune offre ne correspond</p></body></html>`,
		url:     "https://www.hellowork.com/fr-fr/emploi/recherche.html",
		waitErr: browser.ErrWaitTimeout,
	}

	stubs, err := NewHelloWork(0).ExtractListings(context.Background(), Target{Page: page})
	require.NoError(t, err)
	assert.NotNil(t, stubs)
	assert.Empty(t, stubs)
}

func TestHelloWorkRequiresPage(t *testing.T) {
	h := NewHelloWork(0)

	_, err := h.ExtractListings(context.Background(), Target{URL: "https://www.hellowork.com"})
	assert.ErrorIs(t, err, ErrPageRequired)

	_, err = h.ExtractDetail(context.Background(), Target{URL: "https://www.hellowork.com"})
	assert.ErrorIs(t, err, ErrPageRequired)
}

const helloWorkDetailHTML = `<html><head>
<script type="application/ld+json">{"@context":"https://schema.org","@type":"BreadcrumbList","itemListElement":[]}</script>
<script type="application/ld+json">{ not json </script>
<script type="application/ld+json">{"@context":"https://schema.org","@graph":[
  {"@type":"Organization","name":"HelloWork"},
  {"@type":["JobPosting"],
   "title":"Flavorist",
   "description":"<p>Créer des arômes <b>sucrés</b></p>",
   "hiringOrganization":{"@type":"Organization","name":"Mane"},
   "jobLocation":{"@type":"Place","address":{"@type":"PostalAddress","addressLocality":"Grasse","postalCode":"06130"}},
   "employmentType":["FULL_TIME","PART_TIME"],
   "baseSalary":{"@type":"MonetaryAmount","currency":"EUR","value":{"@type":"QuantitativeValue","minValue":40000,"maxValue":48000,"unitText":"YEAR"}},
   "datePosted":"2026-09-01T08:00:00+02:00",
   "validThrough":"2026-11-30T00:00:00+01:00",
   "experienceRequirements":{"@type":"OccupationalExperienceRequirements","monthsOfExperience":"36"},
   "url":"https://www.hellowork.com/fr-fr/emplois/555.html"}
]}</script>
</head><body><h1>Flavorist</h1></body></html>`

func TestHelloWorkDetail(t *testing.T) {
	page := &fakePage{
		html:      helloWorkDetailHTML,
		url:       "https://www.hellowork.com/fr-fr/emplois/555.html?from=search",
		dataLayer: `[{"event":"page_view"},{"type_contrat":"CDI","page_type":"offer"}]`,
	}

	detail, err := NewHelloWork(0).ExtractDetail(context.Background(), Target{Page: page})
	require.NoError(t, err)
	assert.Equal(t, []string{jsonLDSelector}, page.waited)

	assert.Equal(t, SiteHelloWork, detail.Source)
	assert.Equal(t, "555", detail.ExternalID)
	assert.Equal(t, "Flavorist", detail.Title)
	assert.Equal(t, "<p>Créer des arômes <b>sucrés</b></p>", detail.Description)
	assert.Equal(t, "Mane", detail.Company)
	assert.Equal(t, "Grasse (06130)", detail.Location)
	assert.Equal(t, "FULL_TIME", detail.EmploymentType)
	assert.Equal(t, "CDI", detail.ContractType)
	assert.Equal(t, "40000 - 48000 EUR / an", detail.Salary)
	assert.Equal(t, "2026-09-01T08:00:00+02:00", detail.PostedAt)
	assert.Equal(t, "2026-11-30T00:00:00+01:00", detail.ExpiresAt)
	require.NotNil(t, detail.ExperienceMonths)
	assert.Equal(t, 36, *detail.ExperienceMonths)
	assert.Equal(t, "https://www.hellowork.com/fr-fr/emplois/555.html?from=search", detail.SourceURL)
}

func TestHelloWorkDetailIgnoresDataLayerFailure(t *testing.T) {
	page := &fakePage{
		html:         helloWorkDetailHTML,
		dataLayerErr: errors.New("execution context was destroyed"),
	}

	detail, err := NewHelloWork(0).ExtractDetail(context.Background(), Target{Page: page, ExternalID: "555"})
	require.NoError(t, err)
	assert.Empty(t, detail.ContractType)
	assert.Equal(t, "555", detail.ExternalID)
	assert.Equal(t, "https://www.hellowork.com/fr-fr/emplois/555.html", detail.SourceURL, "falls back to the JSON-LD url")
}

func TestHelloWorkDetailWithoutJobPosting(t *testing.T) {
	cases := map[string]string{
		"other types only": `<html><head><script type="application/ld+json">{"@type":"WebPage"}</script></head><body></body></html>`,
		"no scripts":       `<html><head><title>Offre</title></head><body><h1>Flavorist</h1></body></html>`,
	}

	for name, html := range cases {
		page := &fakePage{
			html:    html,
			url:     "https://www.hellowork.com/fr-fr/emplois/556.html",
			waitErr: browser.ErrWaitTimeout,
		}

		_, err := NewHelloWork(0).ExtractDetail(context.Background(), Target{Page: page})
		assert.ErrorIs(t, err, ErrNoStructuredData, name)
	}
}
