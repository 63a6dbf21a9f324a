package usecase

import (
	"strings"

	"company_intel/internal/feature/analysis/domain/entity"
)

// formatSources renders search results as "Source: title (url)\ncontent" blocks separated by blank lines.
func formatSources(results []entity.SearchResult) string {
	blocks := make([]string, 0, len(results))
	for _, r := range results {
		blocks = append(blocks, "Source: "+r.Title+" ("+r.URL+")\n"+r.Content)
	}
	return strings.Join(blocks, "\n\n")
}

// truncateRunes cuts s to at most n runes.
func truncateRunes(s string, n int) string {
	if n < 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
