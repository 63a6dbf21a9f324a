package entity

import "fmt"

// Intent is the category a user question is routed to.
type Intent string

const (
	IntentCompetitor Intent = "competitor_analysis"
	IntentFounder    Intent = "founder_lookup"
	IntentBusiness   Intent = "business_overview"
	IntentUnknown    Intent = "unknown"
)

// ParseIntent converts a raw router label into an Intent.
// Labels outside the fixed set are rejected.
func ParseIntent(s string) (Intent, error) {
	switch Intent(s) {
	case IntentCompetitor, IntentFounder, IntentBusiness, IntentUnknown:
		return Intent(s), nil
	}
	return "", fmt.Errorf("%q is not a valid intent", s)
}

// Label returns the human-readable label shown in progress events.
func (i Intent) Label() string {
	switch i {
	case IntentCompetitor:
		return "🏢 Competitor Analysis"
	case IntentFounder:
		return "👤 Founder Lookup"
	case IntentBusiness:
		return "📊 Business Overview"
	default:
		return "❓ Unknown"
	}
}
