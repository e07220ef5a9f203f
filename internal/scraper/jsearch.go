package scraper

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/arome-jobs/jobwatch/internal/models"
	"github.com/arome-jobs/jobwatch/internal/network"
)

const (
	JSearchKeyEnv = "JSEARCH_API_KEY"

	jsearchHost    = "jsearch.p.rapidapi.com"
	jsearchBaseURL = "https://" + jsearchHost
)

// Query parameters forwarded from a monitor URL to the search endpoint.
var jsearchSearchParams = []string{
	"query", "page", "num_pages", "date_posted", "country", "language",
	"employment_types", "job_requirements", "remote_jobs_only", "radius",
}

// JSearch employment codes rendered in the schema.org spelling the normalizer knows.
var jsearchEmploymentTypes = map[string]string{
	"FULLTIME":   "FULL_TIME",
	"PARTTIME":   "PART_TIME",
	"CONTRACTOR": "CONTRACT",
	"INTERN":     "INTERN",
	"TEMPORARY":  "TEMPORARY",
}

// JSearch queries the JSearch aggregator on RapidAPI.
type JSearch struct {
	client  network.Doer
	baseURL string
}

func NewJSearch(client network.Doer) *JSearch {
	return &JSearch{client: client, baseURL: jsearchBaseURL}
}

func (j *JSearch) Name() string {
	return SiteJSearch
}

func (j *JSearch) Kind() Kind {
	return KindAPI
}

type jsearchResponse struct {
	Status string       `json:"status"`
	Data   []jsearchJob `json:"data"`
}

type jsearchJob struct {
	JobID              flexString        `json:"job_id"`
	Title              string            `json:"job_title"`
	EmployerName       string            `json:"employer_name"`
	Location           string            `json:"job_location"`
	City               string            `json:"job_city"`
	State              string            `json:"job_state"`
	Country            string            `json:"job_country"`
	EmploymentType     string            `json:"job_employment_type"`
	MinSalary          *float64          `json:"job_min_salary"`
	MaxSalary          *float64          `json:"job_max_salary"`
	SalaryCurrency     string            `json:"job_salary_currency"`
	SalaryPeriod       string            `json:"job_salary_period"`
	ApplyLink          string            `json:"job_apply_link"`
	GoogleLink         string            `json:"job_google_link"`
	Description        string            `json:"job_description"`
	PostedAtUTC        string            `json:"job_posted_at_datetime_utc"`
	ExpiresAtUTC       string            `json:"job_offer_expiration_datetime_utc"`
	RequiredExperience jsearchExperience `json:"job_required_experience"`
}

type jsearchExperience struct {
	Months               *int `json:"required_experience_in_months"`
	NoExperienceRequired bool `json:"no_experience_required"`
}

func (j *JSearch) ExtractListings(ctx context.Context, target Target) ([]models.ListingStub, error) {
	key, err := apiKey(SiteJSearch, JSearchKeyEnv)
	if err != nil {
		return nil, err
	}
	params, err := jsearchQuery(target.URL)
	if err != nil {
		return nil, err
	}

	var resp jsearchResponse
	endpoint := j.baseURL + "/search?" + params.Encode()
	if err := getJSON(ctx, j.client, SiteJSearch, endpoint, rapidAPIHeaders(key, jsearchHost), &resp); err != nil {
		return nil, err
	}

	stubs := make([]models.ListingStub, 0, len(resp.Data))
	for _, job := range resp.Data {
		title := cleanText(job.Title)
		if title == "" {
			continue
		}
		stubs = append(stubs, models.ListingStub{
			Source:         SiteJSearch,
			ExternalID:     job.JobID.String(),
			Title:          title,
			Company:        cleanText(job.EmployerName),
			Location:       job.location(),
			EmploymentType: jsearchEmploymentType(job.EmploymentType),
			Salary:         formatSalaryRange(job.MinSalary, job.MaxSalary, job.SalaryCurrency, job.SalaryPeriod),
			ListingURL:     firstNonEmpty(job.ApplyLink, job.GoogleLink, j.detailURL(job.JobID.String())),
		})
	}
	return dedupeStubs(stubs), nil
}

// ExtractDetail fetches one job by id. The id comes from Target.ExternalID or, failing
// that, a job_id query parameter on Target.URL.
func (j *JSearch) ExtractDetail(ctx context.Context, target Target) (models.JobDetail, error) {
	key, err := apiKey(SiteJSearch, JSearchKeyEnv)
	if err != nil {
		return models.JobDetail{}, err
	}
	id := firstNonEmpty(target.ExternalID, jsearchJobIDFromURL(target.URL))
	if id == "" {
		return models.JobDetail{}, &ConfigError{Source: SiteJSearch, Key: "job_id", Err: ErrInvalidTarget}
	}

	var resp jsearchResponse
	if err := getJSON(ctx, j.client, SiteJSearch, j.detailURL(id), rapidAPIHeaders(key, jsearchHost), &resp); err != nil {
		return models.JobDetail{}, err
	}
	if len(resp.Data) == 0 {
		return models.JobDetail{}, fmt.Errorf("%s: job %s: %w", SiteJSearch, id, ErrNotFound)
	}

	job := resp.Data[0]
	detail := models.JobDetail{
		Source:           SiteJSearch,
		ExternalID:       firstNonEmpty(job.JobID.String(), id),
		Title:            cleanText(job.Title),
		Description:      job.Description,
		Company:          cleanText(job.EmployerName),
		Location:         job.location(),
		EmploymentType:   jsearchEmploymentType(job.EmploymentType),
		Salary:           formatSalaryRange(job.MinSalary, job.MaxSalary, job.SalaryCurrency, job.SalaryPeriod),
		PostedAt:         job.PostedAtUTC,
		ExpiresAt:        job.ExpiresAtUTC,
		ExperienceMonths: job.RequiredExperience.months(),
		SourceURL:        firstNonEmpty(job.ApplyLink, job.GoogleLink, target.URL),
	}
	return detail, nil
}

func (j *JSearch) detailURL(id string) string {
	if id == "" {
		return ""
	}
	return j.baseURL + "/job-details?" + url.Values{"job_id": {id}}.Encode()
}

func (job jsearchJob) location() string {
	if loc := cleanText(job.Location); loc != "" {
		return loc
	}
	return joinNonEmpty(", ", job.City, job.State, job.Country)
}

func (e jsearchExperience) months() *int {
	if e.Months != nil {
		months := *e.Months
		return &months
	}
	if e.NoExperienceRequired {
		months := 0
		return &months
	}
	return nil
}

func jsearchEmploymentType(raw string) string {
	raw = strings.TrimSpace(raw)
	if first, _, found := strings.Cut(raw, ","); found {
		raw = strings.TrimSpace(first)
	}
	if mapped, ok := jsearchEmploymentTypes[strings.ToUpper(raw)]; ok {
		return mapped
	}
	return raw
}

func jsearchQuery(target string) (url.Values, error) {
	parsed, err := url.Parse(strings.TrimSpace(target))
	if err != nil {
		return nil, &ConfigError{Source: SiteJSearch, Key: "search_url", Err: fmt.Errorf("%w: %v", ErrInvalidTarget, err)}
	}
	query := parsed.Query()
	params := url.Values{}
	for _, name := range jsearchSearchParams {
		if value := strings.TrimSpace(query.Get(name)); value != "" {
			params.Set(name, value)
		}
	}
	if params.Get("query") == "" {
		return nil, &ConfigError{Source: SiteJSearch, Key: "query", Err: ErrInvalidTarget}
	}
	return params, nil
}

func jsearchJobIDFromURL(raw string) string {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(parsed.Query().Get("job_id"))
}
