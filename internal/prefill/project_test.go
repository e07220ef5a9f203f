package prefill

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arome-jobs/jobwatch/internal/models"
	"github.com/arome-jobs/jobwatch/internal/vocab"
)

func months(v int) *int { return &v }

func TestProject(t *testing.T) {
	detail := models.JobDetail{
		Source:           "hellowork",
		Title:            " Flavorist ",
		Description:      "<p>Créer des arômes</p><p>Poste basé à Grasse&nbsp;!</p>",
		Company:          "Mane",
		Location:         "Grasse (06130)",
		EmploymentType:   "FULL_TIME",
		Salary:           "40000 - 48000 EUR / an",
		ExpiresAt:        "2026-11-30T12:00:00Z",
		ExperienceMonths: months(36),
		SourceURL:        "https://www.hellowork.com/fr-fr/emplois/555.html",
	}

	record := Project(detail)

	assert.Equal(t, models.PrefillRecord{
		Title:           "Flavorist",
		Description:     "Créer des arômes\n\nPoste basé à Grasse !",
		CompanyName:     "Mane",
		Location:        "Grasse (06130)",
		EmploymentType:  string(vocab.FullTime),
		ExperienceLevel: string(vocab.Experience3To5),
		Salary:          "40000 - 48000 EUR / an",
		Industry:        Industry,
		SourceWebsite:   "hellowork.com",
		SourceURL:       "https://www.hellowork.com/fr-fr/emplois/555.html",
		ExpiresAt:       "2026-11-30",
	}, record)
}

func TestProjectContractTypeWins(t *testing.T) {
	record := Project(models.JobDetail{EmploymentType: "FULL_TIME", ContractType: "CDD"})
	assert.Equal(t, string(vocab.CDD), record.EmploymentType)
}

func TestProjectFallbacks(t *testing.T) {
	record := Project(models.JobDetail{
		EmploymentType: "Bénévolat",
		ExpiresAt:      "bientôt",
		SourceURL:      "::not a url",
	})

	assert.Empty(t, record.EmploymentType)
	assert.Empty(t, record.ExperienceLevel)
	assert.Empty(t, record.ExpiresAt)
	assert.Equal(t, DefaultSourceWebsite, record.SourceWebsite)
	assert.Equal(t, "::not a url", record.SourceURL)
	assert.Equal(t, Industry, record.Industry)
}

func TestProjectZeroValue(t *testing.T) {
	assert.NotPanics(t, func() {
		record := Project(models.JobDetail{})
		assert.Equal(t, DefaultSourceWebsite, record.SourceWebsite)
	})
}

func TestSourceWebsite(t *testing.T) {
	cases := map[string]string{
		"https://www.linkedin.com/jobs/view/1/": "linkedin.com",
		"https://jsearch.p.rapidapi.com/search": "jsearch.p.rapidapi.com",
		"HTTPS://WWW.HelloWork.com/x":           "hellowork.com",
		"/relative/path":                        DefaultSourceWebsite,
		"":                                      DefaultSourceWebsite,
	}
	for in, want := range cases {
		assert.Equal(t, want, SourceWebsite(in), in)
	}
}
