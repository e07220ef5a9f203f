package models

// JobDetail is the full record of one posting. Dates are kept as the ISO-8601 strings
// the source provided. ContractType is a locale contract label exposed separately from
// EmploymentType by some sources.
type JobDetail struct {
	Source           string `json:"source"`
	ExternalID       string `json:"external_id,omitempty"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	Company          string `json:"company,omitempty"`
	Location         string `json:"location,omitempty"`
	EmploymentType   string `json:"employment_type,omitempty"`
	ContractType     string `json:"contract_type,omitempty"`
	Salary           string `json:"salary,omitempty"`
	PostedAt         string `json:"posted_at,omitempty"`
	ExpiresAt        string `json:"expires_at,omitempty"`
	ExperienceMonths *int   `json:"experience_months,omitempty"`
	SourceURL        string `json:"source_url"`
}
