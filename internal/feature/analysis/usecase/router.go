package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"company_intel/internal/feature/analysis/domain/entity"
)

const (
	// VerifyResultsPerQuery は本人確認の各検索で取得する件数です。
	VerifyResultsPerQuery = 3
)

// Router classifies intent and disambiguates company identity.
type Router struct {
	llm      ChatModel
	searcher Searcher
}

// NewRouter は Router の新しいインスタンスを生成します。
func NewRouter(llm ChatModel, searcher Searcher) *Router {
	return &Router{llm: llm, searcher: searcher}
}

// verifyResponse mirrors the JSON object requested by verifyCompanySystemPrompt.
type verifyResponse struct {
	TargetCompany struct {
		Name               string `json:"name"`
		Description        string `json:"description"`
		Industry           string `json:"industry"`
		DistinguishingInfo string `json:"distinguishing_info"`
	} `json:"target_company"`
	SimilarCompanies []struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	} `json:"similar_companies"`
	Confidence string `json:"confidence"`
}

// routeResponse mirrors the JSON object requested by routerSystemPrompt.
// Pointers distinguish absent fields from empty ones; search_queries stays raw so that
// an explicit null can be told apart from an absent key.
type routeResponse struct {
	Intent        *string         `json:"intent"`
	Reasoning     *string         `json:"reasoning"`
	SearchQueries json.RawMessage `json:"search_queries"`
}

// VerificationQueries returns the two searches run by VerifyCompany, in order.
func VerificationQueries(company, website string) []string {
	return []string{
		fmt.Sprintf(`site:%s OR "%s" %s`, website, website, company),
		company + " company",
	}
}

// VerifyCompany uses the website to pin down which company the user means.
// It returns the verification outcome and every search result it looked at.
func (r *Router) VerifyCompany(ctx context.Context, company, website string) (entity.CompanyVerification, []entity.SearchResult, error) {
	var all []entity.SearchResult
	for _, q := range VerificationQueries(company, website) {
		results, err := r.searcher.Search(ctx, q, VerifyResultsPerQuery)
		if err != nil {
			return entity.CompanyVerification{}, nil, fmt.Errorf("verification search %q: %w", q, err)
		}
		all = append(all, results...)
	}

	if len(all) == 0 {
		return entity.CompanyVerification{
			Verified:           false,
			CompanyDescription: "Could not verify " + company,
			SimilarCompanies:   []string{},
			VerificationMethod: "no search results",
		}, nil, nil
	}

	userMsg := fmt.Sprintf(`Target Company: %s
Website: %s

Search Results:
%s

Analyze these results to identify the target company and any similarly-named companies.`, company, website, formatSources(all))

	raw, err := r.llm.Chat(ctx, chatJSON(verifyCompanySystemPrompt, userMsg))
	if err != nil {
		return entity.CompanyVerification{}, nil, fmt.Errorf("verify company: %w", err)
	}
	var data verifyResponse
	if err := parseJSONResponse(raw, &data); err != nil {
		return entity.CompanyVerification{}, nil, err
	}

	similar := make([]string, 0, len(data.SimilarCompanies))
	for _, s := range data.SimilarCompanies {
		if s.Name == "" {
			continue
		}
		similar = append(similar, s.Name+": "+s.Description)
	}

	var desc strings.Builder
	desc.WriteString(data.TargetCompany.Description)
	if data.TargetCompany.Industry != "" {
		fmt.Fprintf(&desc, " (Industry: %s)", data.TargetCompany.Industry)
	}
	if data.TargetCompany.DistinguishingInfo != "" {
		desc.WriteString(" - " + data.TargetCompany.DistinguishingInfo)
	}

	return entity.CompanyVerification{
		Verified:           data.Confidence == "high" || data.Confidence == "medium",
		CompanyDescription: desc.String(),
		SimilarCompanies:   similar,
		VerificationMethod: "website verification via " + website,
	}, all, nil
}

// Route asks the model what the user wants to know and which searches would answer it.
func (r *Router) Route(ctx context.Context, company, website, query, companyContext string) (entity.RouterResult, error) {
	site := website
	if site == "" {
		site = "not provided"
	}
	var contextInfo string
	if companyContext != "" {
		contextInfo = "\nVerified Company Context: " + companyContext
	}
	userMsg := fmt.Sprintf("Company: %s\nWebsite: %s%s\nUser's question: %s", company, site, contextInfo, query)

	raw, err := r.llm.Chat(ctx, chatJSON(routerSystemPrompt, userMsg))
	if err != nil {
		return entity.RouterResult{}, fmt.Errorf("route intent: %w", err)
	}
	var data routeResponse
	if err := parseJSONResponse(raw, &data); err != nil {
		return entity.RouterResult{}, err
	}

	if data.Intent == nil {
		return entity.RouterResult{}, fmt.Errorf("%w: intent", ErrMissingField)
	}
	if data.Reasoning == nil {
		return entity.RouterResult{}, fmt.Errorf("%w: reasoning", ErrMissingField)
	}
	intent, err := entity.ParseIntent(*data.Intent)
	if err != nil {
		return entity.RouterResult{}, fmt.Errorf("%w: %v", ErrUnknownIntent, err)
	}

	queries := []string{company + " " + query}
	if data.SearchQueries != nil {
		if bytes.Equal(bytes.TrimSpace(data.SearchQueries), []byte("null")) {
			return entity.RouterResult{}, fmt.Errorf("%w: search_queries is null", ErrInvalidLLMResponse)
		}
		var planned []string
		if err := json.Unmarshal(data.SearchQueries, &planned); err != nil {
			return entity.RouterResult{}, fmt.Errorf("%w: search_queries: %v", ErrInvalidLLMResponse, err)
		}
		queries = planned
	}

	return entity.RouterResult{
		Intent:         intent,
		Reasoning:      *data.Reasoning,
		SearchQueries:  queries,
		CompanyContext: companyContext,
	}, nil
}
