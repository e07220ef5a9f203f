package scraper

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/arome-jobs/jobwatch/internal/models"
	"github.com/arome-jobs/jobwatch/internal/monitor"
	"github.com/arome-jobs/jobwatch/internal/network"
)

const (
	LinkedInKeyEnv = "LINKEDIN_API_KEY"

	linkedInHost    = "linkedin-data-api.p.rapidapi.com"
	linkedInBaseURL = "https://" + linkedInHost
	linkedInJobURL  = "https://www.linkedin.com/jobs/view/%s/"
)

var (
	linkedInViewIDPattern    = regexp.MustCompile(`/jobs/view/(?:[^/?#]*-)?(\d+)`)
	linkedInCurrentIDPattern = regexp.MustCompile(`[?&]currentJobId=(\d+)`)
)

// Approximate French contract labels for LinkedIn job types.
var linkedInContractTypes = map[string]string{
	"full-time":  "CDI",
	"contract":   "CDD",
	"temporary":  "Intérim",
	"internship": "Stage",
}

// Seniority labels in ascending order with the months they stand for.
var linkedInExperienceMonths = []struct {
	label  string
	months int
}{
	{"internship", 0},
	{"entry", 12},
	{"associate", 24},
	{"mid-senior", 72},
	{"director", 120},
	{"executive", 180},
}

// LinkedIn queries the LinkedIn Data API on RapidAPI.
type LinkedIn struct {
	client  network.Doer
	baseURL string
}

func NewLinkedIn(client network.Doer) *LinkedIn {
	return &LinkedIn{client: client, baseURL: linkedInBaseURL}
}

func (l *LinkedIn) Name() string {
	return SiteLinkedIn
}

func (l *LinkedIn) Kind() Kind {
	return KindAPI
}

type linkedInCompany struct {
	Name string `json:"name"`
}

type linkedInSearchResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Data    []linkedInJob `json:"data"`
}

type linkedInJob struct {
	ID       flexString      `json:"id"`
	Title    string          `json:"title"`
	URL      string          `json:"url"`
	Company  linkedInCompany `json:"company"`
	Location string          `json:"location"`
	Type     string          `json:"type"`
	PostAt   string          `json:"postAt"`
}

type linkedInDetailResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    linkedInJobDetail `json:"data"`
}

type linkedInJobDetail struct {
	ID                       flexString      `json:"id"`
	Title                    string          `json:"title"`
	Description              string          `json:"description"`
	URL                      string          `json:"url"`
	Company                  linkedInCompany `json:"company"`
	Location                 string          `json:"location"`
	Type                     string          `json:"type"`
	FormattedExperienceLevel string          `json:"formattedExperienceLevel"`
	ListedAt                 int64           `json:"listedAt"`
	OriginalListedAt         int64           `json:"originalListedAt"`
	ExpireAt                 int64           `json:"expireAt"`
}

// ExtractListings expects Target.URL to be an encoded monitor parameter string.
func (l *LinkedIn) ExtractListings(ctx context.Context, target Target) ([]models.ListingStub, error) {
	key, err := apiKey(SiteLinkedIn, LinkedInKeyEnv)
	if err != nil {
		return nil, err
	}
	params, err := monitor.Decode(target.URL)
	if err != nil {
		return nil, &ConfigError{Source: SiteLinkedIn, Key: "search_url", Err: err}
	}

	query := url.Values{}
	query.Set("keywords", params.Keywords)
	if params.LocationID != "" {
		query.Set("locationId", params.LocationID)
	}
	if params.DatePosted != "" {
		query.Set("datePosted", string(params.DatePosted))
	}
	query.Set("sort", "mostRecent")

	var resp linkedInSearchResponse
	endpoint := l.baseURL + "/search-jobs-v2?" + query.Encode()
	if err := getJSON(ctx, l.client, SiteLinkedIn, endpoint, rapidAPIHeaders(key, linkedInHost), &resp); err != nil {
		return nil, err
	}

	stubs := make([]models.ListingStub, 0, len(resp.Data))
	for _, job := range resp.Data {
		title := cleanText(job.Title)
		id := job.ID.String()
		if title == "" || id == "" {
			continue
		}
		stubs = append(stubs, models.ListingStub{
			Source:         SiteLinkedIn,
			ExternalID:     id,
			Title:          title,
			Company:        cleanText(job.Company.Name),
			Location:       cleanText(job.Location),
			EmploymentType: strings.TrimSpace(job.Type),
			ListingURL:     firstNonEmpty(job.URL, fmt.Sprintf(linkedInJobURL, id)),
		})
	}
	return dedupeStubs(stubs), nil
}

func (l *LinkedIn) ExtractDetail(ctx context.Context, target Target) (models.JobDetail, error) {
	key, err := apiKey(SiteLinkedIn, LinkedInKeyEnv)
	if err != nil {
		return models.JobDetail{}, err
	}
	id := firstNonEmpty(linkedInJobID(target.URL), target.ExternalID)
	if id == "" {
		return models.JobDetail{}, &ConfigError{Source: SiteLinkedIn, Key: "job id", Err: ErrInvalidTarget}
	}

	var resp linkedInDetailResponse
	endpoint := l.baseURL + "/get-job-details?" + url.Values{"id": {id}}.Encode()
	if err := getJSON(ctx, l.client, SiteLinkedIn, endpoint, rapidAPIHeaders(key, linkedInHost), &resp); err != nil {
		return models.JobDetail{}, err
	}
	job := resp.Data
	if job.Title == "" && job.ID == "" {
		return models.JobDetail{}, fmt.Errorf("%s: job %s: %w", SiteLinkedIn, id, ErrNotFound)
	}

	jobType := strings.TrimSpace(job.Type)
	return models.JobDetail{
		Source:           SiteLinkedIn,
		ExternalID:       firstNonEmpty(job.ID.String(), id),
		Title:            cleanText(job.Title),
		Description:      job.Description,
		Company:          cleanText(job.Company.Name),
		Location:         cleanText(job.Location),
		EmploymentType:   jobType,
		ContractType:     linkedInContractTypes[strings.ToLower(jobType)],
		PostedAt:         epochMillisToRFC3339(firstPositive(job.ListedAt, job.OriginalListedAt)),
		ExpiresAt:        epochMillisToRFC3339(job.ExpireAt),
		ExperienceMonths: linkedInExperience(job.FormattedExperienceLevel),
		SourceURL:        firstNonEmpty(target.URL, job.URL, fmt.Sprintf(linkedInJobURL, id)),
	}, nil
}

func linkedInJobID(raw string) string {
	if match := linkedInViewIDPattern.FindStringSubmatch(raw); len(match) > 1 {
		return match[1]
	}
	if match := linkedInCurrentIDPattern.FindStringSubmatch(raw); len(match) > 1 {
		return match[1]
	}
	return ""
}

func linkedInExperience(level string) *int {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		return nil
	}
	for _, entry := range linkedInExperienceMonths {
		if strings.Contains(level, entry.label) {
			months := entry.months
			return &months
		}
	}
	return nil
}

func epochMillisToRFC3339(ms int64) string {
	if ms <= 0 {
		return ""
	}
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}

func firstPositive(values ...int64) int64 {
	for _, value := range values {
		if value > 0 {
			return value
		}
	}
	return 0
}
