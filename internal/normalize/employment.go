// Package normalize maps source vocabularies onto the canonical sets in package vocab.
// Every function here is total: unknown input yields the empty value, never an error.
package normalize

import (
	"strings"

	"github.com/arome-jobs/jobwatch/internal/vocab"
)

// contractTypes maps French contract labels. "IntÃ©rim" is how "Intérim" arrives from
// sources that double-encode UTF-8; it is kept as its own key on purpose.
var contractTypes = map[string]vocab.EmploymentType{
	"cdi":        vocab.CDI,
	"cdd":        vocab.CDD,
	"intérim":    vocab.Interim,
	"interim":    vocab.Interim,
	"intã©rim":   vocab.Interim,
	"stage":      vocab.Internship,
	"alternance": vocab.Alternance,
	"freelance":  vocab.Freelance,
}

var directLabels = map[string]vocab.EmploymentType{
	"full-time":  vocab.FullTime,
	"part-time":  vocab.PartTime,
	"contract":   vocab.Contract,
	"internship": vocab.Internship,
	"temporary":  vocab.CDD,
}

// schema.org JobPosting employmentType values.
var jsonLDTypes = map[string]vocab.EmploymentType{
	"FULL_TIME": vocab.FullTime,
	"PART_TIME": vocab.PartTime,
	"CONTRACT":  vocab.Contract,
	"TEMPORARY": vocab.CDD,
	"INTERN":    vocab.Internship,
	"VOLUNTEER": vocab.FullTime,
	"PER_DIEM":  vocab.Contract,
	"OTHER":     vocab.FullTime,
}

// MapEmploymentType resolves a canonical employment type. A recognised contractType always
// wins over employmentType; employmentType is tried as a plain label, then as a JSON-LD enum.
func MapEmploymentType(contractType, employmentType string) vocab.EmploymentType {
	if contract := strings.TrimSpace(contractType); contract != "" {
		if mapped, ok := contractTypes[strings.ToLower(contract)]; ok && mapped.Valid() {
			return mapped
		}
	}

	employment := strings.TrimSpace(employmentType)
	if employment == "" {
		return ""
	}
	if mapped, ok := directLabels[strings.ToLower(employment)]; ok {
		return mapped
	}
	if mapped, ok := jsonLDTypes[strings.ToUpper(employment)]; ok {
		return mapped
	}
	return ""
}
