package models

// PrefillRecord is the flat shape consumed by listing-creation forms.
type PrefillRecord struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	CompanyName     string `json:"company_name"`
	Location        string `json:"location"`
	EmploymentType  string `json:"employment_type"`
	ExperienceLevel string `json:"experience_level"`
	Salary          string `json:"salary"`
	Industry        string `json:"industry"`
	SourceWebsite   string `json:"source_website"`
	SourceURL       string `json:"source_url"`
	ExpiresAt       string `json:"expires_at"`
}
