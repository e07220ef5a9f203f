// Package prefill projects a JobDetail onto the flat record used by listing-creation forms.
package prefill

import (
	"net/url"
	"strings"

	"github.com/arome-jobs/jobwatch/internal/models"
	"github.com/arome-jobs/jobwatch/internal/normalize"
)

const (
	Industry             = "Arômes, Parfums & Cosmétiques"
	DefaultSourceWebsite = "Autre"
)

// Project never fails: every field has a defined fallback.
func Project(detail models.JobDetail) models.PrefillRecord {
	return models.PrefillRecord{
		Title:           strings.TrimSpace(detail.Title),
		Description:     normalize.StripHTML(detail.Description),
		CompanyName:     strings.TrimSpace(detail.Company),
		Location:        strings.TrimSpace(detail.Location),
		EmploymentType:  string(normalize.MapEmploymentType(detail.ContractType, detail.EmploymentType)),
		ExperienceLevel: string(normalize.MapExperienceLevel(detail.ExperienceMonths)),
		Salary:          strings.TrimSpace(detail.Salary),
		Industry:        Industry,
		SourceWebsite:   SourceWebsite(detail.SourceURL),
		SourceURL:       detail.SourceURL,
		ExpiresAt:       expiryDate(detail.ExpiresAt),
	}
}

// SourceWebsite returns the URL host without "www.", or DefaultSourceWebsite.
func SourceWebsite(rawURL string) string {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return DefaultSourceWebsite
	}
	host := strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
	if host == "" {
		return DefaultSourceWebsite
	}
	return host
}

// expiryDate renders the UTC calendar date of value, or "" when it cannot be parsed.
func expiryDate(value string) string {
	ts, err := normalize.ParseTimestamp(value)
	if err != nil {
		return ""
	}
	return ts.UTC().Format("2006-01-02")
}
