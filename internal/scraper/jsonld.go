package scraper

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/arome-jobs/jobwatch/internal/models"
)

const jsonLDSelector = `script[type="application/ld+json"]`

// findJobPosting returns the first JobPosting node in document order across all
// JSON-LD blocks. Blocks that fail to decode are skipped.
func findJobPosting(doc *goquery.Document) map[string]any {
	var posting map[string]any
	doc.Find(jsonLDSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		data, err := decodeJSONLD(s.Text())
		if err != nil {
			return true
		}
		posting = jobPostingNode(data)
		return posting == nil
	})
	return posting
}

func jobPostingNode(data any) map[string]any {
	switch value := data.(type) {
	case []any:
		for _, item := range value {
			if node := jobPostingNode(item); node != nil {
				return node
			}
		}
	case map[string]any:
		if isJobPostingType(value["@type"]) {
			return value
		}
		if graph, ok := value["@graph"]; ok {
			if node := jobPostingNode(graph); node != nil {
				return node
			}
		}
		if main, ok := value["mainEntity"]; ok {
			return jobPostingNode(main)
		}
	}
	return nil
}

func isJobPostingType(value any) bool {
	switch v := value.(type) {
	case string:
		return strings.EqualFold(strings.TrimSpace(v), "JobPosting")
	case []any:
		for _, item := range v {
			if isJobPostingType(item) {
				return true
			}
		}
	}
	return false
}

func detailFromJobPosting(value map[string]any) models.JobDetail {
	detail := models.JobDetail{
		Title:          cleanText(stringValue(value["title"], value["name"])),
		Company:        stringValue(value["hiringOrganization"]),
		Location:       locationFromJSONLD(value["jobLocation"]),
		EmploymentType: firstString(value["employmentType"]),
		Salary:         salaryFromJSONLD(value["baseSalary"]),
		PostedAt:       stringValue(value["datePosted"]),
		ExpiresAt:      stringValue(value["validThrough"]),
		SourceURL:      stringValue(value["url"]),
	}
	if description, ok := value["description"].(string); ok {
		detail.Description = description
	}
	detail.ExperienceMonths = monthsOfExperience(value["experienceRequirements"])
	return detail
}

// salaryFromJSONLD renders a MonetaryAmount as "min - max CUR / période".
func salaryFromJSONLD(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case map[string]any:
		currency := stringValue(v["currency"])
		unit := stringValue(v["unitText"])
		var minValue, maxValue, exact string
		switch amount := v["value"].(type) {
		case map[string]any:
			minValue = stringValue(amount["minValue"])
			maxValue = stringValue(amount["maxValue"])
			exact = stringValue(amount["value"])
			unit = firstNonEmpty(stringValue(amount["unitText"]), unit)
		default:
			exact = stringValue(amount)
		}

		var text string
		switch {
		case minValue != "" && maxValue != "" && minValue != maxValue:
			text = minValue + " - " + maxValue
		case minValue != "":
			text = minValue
		case maxValue != "":
			text = maxValue
		default:
			text = exact
		}
		if text == "" {
			return ""
		}
		if currency != "" {
			text += " " + currency
		}
		if period := periodLabel(unit); period != "" {
			text += " / " + period
		}
		return text
	}
	return ""
}

func locationFromJSONLD(value any) string {
	switch v := value.(type) {
	case []any:
		for _, item := range v {
			if loc := locationFromJSONLD(item); loc != "" {
				return loc
			}
		}
	case map[string]any:
		switch address := v["address"].(type) {
		case map[string]any:
			return formatAddress(address)
		case string:
			return strings.TrimSpace(address)
		}
		return formatAddress(v)
	case string:
		return strings.TrimSpace(v)
	}
	return ""
}

// formatAddress renders "City (Postal)", degrading to whichever part is present.
func formatAddress(value map[string]any) string {
	city := stringValue(value["addressLocality"])
	postal := stringValue(value["postalCode"])
	switch {
	case city != "" && postal != "":
		return city + " (" + postal + ")"
	case city != "":
		return city
	case postal != "":
		return postal
	}
	return stringValue(value["addressRegion"])
}

func monthsOfExperience(value any) *int {
	switch v := value.(type) {
	case []any:
		for _, item := range v {
			if months := monthsOfExperience(item); months != nil {
				return months
			}
		}
	case map[string]any:
		raw, ok := v["monthsOfExperience"]
		if !ok {
			return nil
		}
		switch months := raw.(type) {
		case float64:
			n := int(months)
			return &n
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(months))
			if err != nil {
				return nil
			}
			return &n
		}
	}
	return nil
}

var periodLabels = map[string]string{
	"YEAR":    "an",
	"YEARLY":  "an",
	"ANNUAL":  "an",
	"MONTH":   "mois",
	"MONTHLY": "mois",
	"WEEK":    "semaine",
	"WEEKLY":  "semaine",
	"DAY":     "jour",
	"DAILY":   "jour",
	"HOUR":    "heure",
	"HOURLY":  "heure",
}

// periodLabel maps a schema.org unitText or aggregator pay period to its French label.
func periodLabel(unit string) string {
	return periodLabels[strings.ToUpper(strings.TrimSpace(unit))]
}
