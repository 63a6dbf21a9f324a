package entity

// RouterResult is the routing decision for a request.
type RouterResult struct {
	Intent        Intent
	Reasoning     string
	SearchQueries []string
	// CompanyContext is the verified description passed on to specialists ("" when unset).
	CompanyContext string
}

// CompanyVerification is the outcome of website-based identity disambiguation.
type CompanyVerification struct {
	Verified           bool
	CompanyDescription string
	SimilarCompanies   []string // "Name: description" entries
	VerificationMethod string
}

// SearchResult is a single web search hit.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}
