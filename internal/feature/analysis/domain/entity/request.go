// Package entity defines the domain models for the analysis feature.
package entity

// UserRequest is a single question about a company.
type UserRequest struct {
	CompanyName string // Company to research
	Website     string // Optional company website used for disambiguation ("" when absent)
	Query       string // Free-text question from the user
}

// HasWebsite reports whether identity verification should run for this request.
func (r UserRequest) HasWebsite() bool {
	return r.Website != ""
}
