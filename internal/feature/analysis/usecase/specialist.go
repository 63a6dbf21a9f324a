package usecase

import (
	"context"
	"fmt"

	"company_intel/internal/feature/analysis/domain/entity"
)

// Specialist synthesizes search results into an answer for one intent.
type Specialist struct {
	Name   string // Agent name shown in events (e.g. "Competitor Agent")
	Intent entity.Intent

	systemPrompt string
	// question is the closing instruction; %s receives the company name.
	question string
	llm      ChatModel
}

// NewCompetitorAgent returns the specialist for competitor_analysis.
func NewCompetitorAgent(llm ChatModel) *Specialist {
	return &Specialist{
		Name:         "Competitor Agent",
		Intent:       entity.IntentCompetitor,
		systemPrompt: competitorSystemPrompt,
		question:     "who are the top 3 competitors of %s?",
		llm:          llm,
	}
}

// NewFounderAgent returns the specialist for founder_lookup.
func NewFounderAgent(llm ChatModel) *Specialist {
	return &Specialist{
		Name:         "Founder Agent",
		Intent:       entity.IntentFounder,
		systemPrompt: founderSystemPrompt,
		question:     "who founded %s and who leads it now?",
		llm:          llm,
	}
}

// NewBusinessAgent returns the specialist for business_overview.
func NewBusinessAgent(llm ChatModel) *Specialist {
	return &Specialist{
		Name:         "Business Agent",
		Intent:       entity.IntentBusiness,
		systemPrompt: businessSystemPrompt,
		question:     "provide a business overview of %s.",
		llm:          llm,
	}
}

// BuildUserMessage renders the prompt body for company. Identical inputs give identical output.
func (s *Specialist) BuildUserMessage(company string, results []entity.SearchResult, companyContext string) string {
	var contextInfo string
	if companyContext != "" {
		contextInfo = "\nVerified Company Context: " + companyContext + "\n"
	}
	return fmt.Sprintf("Company: %s%s\nSearch Results:\n%s\n\nBased on these search results, %s",
		company, contextInfo, formatSources(results), fmt.Sprintf(s.question, company))
}

// Synthesize makes one free-text LLM call over the collected results.
func (s *Specialist) Synthesize(ctx context.Context, company string, results []entity.SearchResult, companyContext string) (string, error) {
	answer, err := s.llm.Chat(ctx, ChatRequest{
		SystemPrompt: s.systemPrompt,
		UserMessage:  s.BuildUserMessage(company, results, companyContext),
	})
	if err != nil {
		return "", fmt.Errorf("%s synthesis failed for %q: %w", s.Name, company, err)
	}
	return answer, nil
}

// Specialists maps intents to their agents. Intents without an entry use the business agent.
type Specialists struct {
	byIntent map[entity.Intent]*Specialist
	fallback *Specialist
}

// NewSpecialists wires the three fixed specialists to llm.
func NewSpecialists(llm ChatModel) *Specialists {
	business := NewBusinessAgent(llm)
	return &Specialists{
		byIntent: map[entity.Intent]*Specialist{
			entity.IntentCompetitor: NewCompetitorAgent(llm),
			entity.IntentFounder:    NewFounderAgent(llm),
			entity.IntentBusiness:   business,
		},
		fallback: business,
	}
}

// For returns the specialist handling intent.
func (s *Specialists) For(intent entity.Intent) *Specialist {
	if sp, ok := s.byIntent[intent]; ok {
		return sp
	}
	return s.fallback
}
