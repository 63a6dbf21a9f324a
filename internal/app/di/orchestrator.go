package di

import (
	"time"

	"company_intel/internal/feature/analysis/usecase"
	"company_intel/internal/platform/env"
)

// DefaultEventDelay paces the event stream so clients can render each step.
const DefaultEventDelay = 100 * time.Millisecond

// NewOrchestrator wires the router, specialists and searcher into an Orchestrator.
// recorder may be nil.
func NewOrchestrator(llm usecase.ChatModel, searcher usecase.Searcher, recorder usecase.AnalysisRecorder) *usecase.Orchestrator {
	opts := []usecase.Option{
		usecase.WithEventDelay(env.GetDuration("EVENT_DELAY", DefaultEventDelay)),
	}
	if recorder != nil {
		opts = append(opts, usecase.WithRecorder(recorder))
	}
	return usecase.NewOrchestrator(
		usecase.NewRouter(llm, searcher),
		usecase.NewSpecialists(llm),
		searcher,
		opts...,
	)
}
