package models

// ListingStub is one posting discovered on a search page or in a search response.
// EmploymentType is the raw source value; it is normalized later, never here.
type ListingStub struct {
	Source         string `json:"source"`
	ExternalID     string `json:"external_id"`
	Title          string `json:"title"`
	Company        string `json:"company,omitempty"`
	Location       string `json:"location,omitempty"`
	EmploymentType string `json:"employment_type,omitempty"`
	Salary         string `json:"salary,omitempty"`
	ListingURL     string `json:"listing_url"`
}
