package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"company_intel/internal/feature/analysis/domain/entity"
)

const (
	// MaxSearchQueries は1リクエストで実行する検索クエリの上限です。
	MaxSearchQueries = 2
	// ResultsPerSearch は各検索で取得する件数です。
	ResultsPerSearch = 3

	maxSimilarShown   = 3
	contextPreviewLen = 100
	titlePreviewLen   = 60
	contentPreviewLen = 100
)

// Agent names used in events.
const (
	AgentRouter = "Router"
	AgentTavily = "Tavily"
	AgentSystem = "System"
)

// RunSummary describes a finished pipeline run.
type RunSummary struct {
	Request    entity.UserRequest
	Intent     entity.Intent // "" when routing never completed
	Agent      string        // specialist name, "" when dispatch never happened
	Answer     string
	Err        error // nil on success
	EventCount int
	StartedAt  time.Time
	Duration   time.Duration
}

// Succeeded reports whether the run ended with the done event.
func (s RunSummary) Succeeded() bool { return s.Err == nil }

// Orchestrator runs verification, routing, search and synthesis for one request at a time.
type Orchestrator struct {
	router      *Router
	specialists *Specialists
	searcher    Searcher
	recorder    AnalysisRecorder
	delay       time.Duration
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithRecorder stores a summary of every run. Recording errors are logged only.
func WithRecorder(r AnalysisRecorder) Option {
	return func(o *Orchestrator) { o.recorder = r }
}

// WithEventDelay paces the stream by sleeping d after each event (d/2 after per-item lines).
func WithEventDelay(d time.Duration) Option {
	return func(o *Orchestrator) { o.delay = d }
}

// NewOrchestrator は Orchestrator の新しいインスタンスを生成します。
func NewOrchestrator(router *Router, specialists *Specialists, searcher Searcher, opts ...Option) *Orchestrator {
	o := &Orchestrator{router: router, specialists: specialists, searcher: searcher}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run starts the pipeline for req and returns its event stream.
// The channel is closed after the terminal done or error event, or once ctx is cancelled.
func (o *Orchestrator) Run(ctx context.Context, req entity.UserRequest) <-chan entity.AgentEvent {
	out := make(chan entity.AgentEvent)
	go func() {
		defer close(out)

		run := &pipelineRun{ctx: ctx, out: out, delay: o.delay}
		summary := RunSummary{Request: req, StartedAt: time.Now()}

		err := o.execute(run, req, &summary)
		if err != nil && ctx.Err() == nil {
			// terminal event; pacing no longer matters
			_ = run.send(AgentSystem, entity.EventError, "❌ Error: "+err.Error())
		}

		summary.Err = err
		summary.EventCount = run.count
		summary.Duration = time.Since(summary.StartedAt)
		o.record(ctx, summary)
	}()
	return out
}

func (o *Orchestrator) record(ctx context.Context, summary RunSummary) {
	if !summary.Succeeded() {
		slog.Warn("analysis failed",
			"company", summary.Request.CompanyName, "intent", summary.Intent, "error", summary.Err)
	} else {
		slog.Info("analysis completed",
			"company", summary.Request.CompanyName, "intent", summary.Intent,
			"events", summary.EventCount, "duration", summary.Duration)
	}
	if o.recorder == nil {
		return
	}
	if err := o.recorder.Record(context.WithoutCancel(ctx), summary); err != nil {
		slog.Error("failed to record analysis", "company", summary.Request.CompanyName, "error", err)
	}
}

func (o *Orchestrator) execute(run *pipelineRun, req entity.UserRequest, summary *RunSummary) error {
	company, website, query := req.CompanyName, req.Website, req.Query
	ctx := run.ctx

	// Step 0: identity verification
	companyContext, err := o.verify(run, req)
	if err != nil {
		return err
	}

	// Step 1: intent routing
	if err := run.emit(AgentRouter, entity.EventThinking, "🤔 Analyzing user intent... What does the user want to know?"); err != nil {
		return err
	}
	result, err := o.router.Route(ctx, company, website, query, companyContext)
	if err != nil {
		return err
	}
	summary.Intent = result.Intent
	if err := run.emit(AgentRouter, entity.EventThinking, "💭 Reasoning: "+result.Reasoning); err != nil {
		return err
	}
	if err := run.emit(AgentRouter, entity.EventDecision, "✅ Intent identified: "+result.Intent.Label()); err != nil {
		return err
	}
	if err := run.emit(AgentRouter, entity.EventDecision, "📋 Search queries planned: "+formatQueryList(result.SearchQueries)); err != nil {
		return err
	}

	// Step 2: dispatch
	specialist := o.specialists.For(result.Intent)
	agent := specialist.Name
	summary.Agent = agent
	if err := run.emit(agent, entity.EventThinking, fmt.Sprintf("🚀 %s activated! Starting research...", agent)); err != nil {
		return err
	}
	if companyContext != "" {
		preview := truncateRunes(companyContext, contextPreviewLen)
		if err := run.emit(agent, entity.EventThinking, fmt.Sprintf("📌 Using verified company context: %s...", preview)); err != nil {
			return err
		}
	}

	// Step 3: search
	queries := result.SearchQueries
	if len(queries) > MaxSearchQueries {
		queries = queries[:MaxSearchQueries]
	}
	var collected []entity.SearchResult
	for i, q := range queries {
		results, err := o.search(run, i+1, q)
		if err != nil {
			return err
		}
		collected = append(collected, results...)
	}
	if err := run.emit(agent, entity.EventToolResult, fmt.Sprintf("📊 Total: %d search results collected", len(collected))); err != nil {
		return err
	}

	// Step 4: synthesis
	if err := run.emit(agent, entity.EventThinking, "🧠 Synthesizing search results with the language model..."); err != nil {
		return err
	}
	answer, err := specialist.Synthesize(ctx, company, collected, companyContext)
	if err != nil {
		return err
	}
	summary.Answer = answer
	if err := run.emit(agent, entity.EventFinalAnswer, answer); err != nil {
		return err
	}

	return run.send(AgentSystem, entity.EventDone, "✅ Analysis complete!")
}

// verify runs step 0 and returns the company context for later steps ("" when unset).
func (o *Orchestrator) verify(run *pipelineRun, req entity.UserRequest) (string, error) {
	company, website, query := req.CompanyName, req.Website, req.Query

	if !req.HasWebsite() {
		if err := run.emit(AgentRouter, entity.EventThinking, fmt.Sprintf("📝 Received request: analyze '%s' - \"%s\"", company, query)); err != nil {
			return "", err
		}
		return "", run.emit(AgentRouter, entity.EventThinking, "💡 Tip: Provide website URL for more accurate results when company name is common")
	}

	steps := []struct {
		kind    entity.EventKind
		content string
	}{
		{entity.EventThinking, fmt.Sprintf("📝 Received request: analyze '%s' (%s) - \"%s\"", company, website, query)},
		{entity.EventToolCall, "🔍 Verifying company identity via website: " + website},
		{entity.EventToolCall, "🔍 Searching: " + VerificationQueries(company, website)[0]},
		{entity.EventToolCall, fmt.Sprintf("🔍 Searching: %s (to find similar names)", VerificationQueries(company, website)[1])},
	}
	for _, s := range steps {
		if err := run.emit(AgentRouter, s.kind, s.content); err != nil {
			return "", err
		}
	}

	verification, results, err := o.router.VerifyCompany(run.ctx, company, website)
	if err != nil {
		return "", err
	}
	if err := run.emit(AgentRouter, entity.EventToolResult, fmt.Sprintf("📄 Found %d results for verification", len(results))); err != nil {
		return "", err
	}

	if len(verification.SimilarCompanies) > 0 {
		if err := run.emit(AgentRouter, entity.EventThinking, "⚠️ Found companies with similar names:"); err != nil {
			return "", err
		}
		similar := verification.SimilarCompanies
		if len(similar) > maxSimilarShown {
			similar = similar[:maxSimilarShown]
		}
		for _, s := range similar {
			if err := run.emitDetail(AgentRouter, entity.EventThinking, "   • "+s); err != nil {
				return "", err
			}
		}
	}

	if verification.Verified {
		if err := run.emit(AgentRouter, entity.EventDecision, "✅ Company verified via "+website); err != nil {
			return "", err
		}
		if err := run.emit(AgentRouter, entity.EventDecision, "🏢 Target: "+verification.CompanyDescription); err != nil {
			return "", err
		}
		return verification.CompanyDescription, nil
	}

	if err := run.emit(AgentRouter, entity.EventThinking, "⚠️ Could not fully verify company, proceeding with available info"); err != nil {
		return "", err
	}
	return verification.CompanyDescription, nil
}

// search runs the n-th planned query and reports every hit.
func (o *Orchestrator) search(run *pipelineRun, n int, query string) ([]entity.SearchResult, error) {
	if err := run.emit(AgentTavily, entity.EventToolCall, fmt.Sprintf("🔍 Search [%d]: \"%s\"", n, query)); err != nil {
		return nil, err
	}
	if err := run.emit(AgentTavily, entity.EventThinking, "📡 Sending request to Tavily API..."); err != nil {
		return nil, err
	}

	start := time.Now()
	results, err := o.searcher.Search(run.ctx, query, ResultsPerSearch)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	elapsed := time.Since(start)

	if err := run.emit(AgentTavily, entity.EventToolResult,
		fmt.Sprintf("⏱️ Tavily responded in %.2fs - Found %d results", elapsed.Seconds(), len(results))); err != nil {
		return nil, err
	}

	for j, r := range results {
		preview := strings.ReplaceAll(truncateRunes(r.Content, contentPreviewLen), "\n", " ")
		lines := []string{
			fmt.Sprintf("   📄 Result %d: %s", j+1, truncateRunes(r.Title, titlePreviewLen)),
			"      🔗 " + r.URL,
			fmt.Sprintf("      💬 \"%s...\"", preview),
		}
		for _, line := range lines {
			if err := run.emitDetail(AgentTavily, entity.EventToolResult, line); err != nil {
				return nil, err
			}
		}
	}
	return results, nil
}

// formatQueryList renders queries as a JSON array with ", " separators and unescaped text.
func formatQueryList(queries []string) string {
	parts := make([]string, 0, len(queries))
	for _, q := range queries {
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		_ = enc.Encode(q) // strings always encode
		parts = append(parts, strings.TrimSuffix(buf.String(), "\n"))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// pipelineRun is the producer side of one event stream.
type pipelineRun struct {
	ctx   context.Context
	out   chan<- entity.AgentEvent
	delay time.Duration
	count int
}

var errStreamClosed = errors.New("event stream closed")

// send delivers one event without pacing.
func (r *pipelineRun) send(agent string, kind entity.EventKind, content string) error {
	select {
	case r.out <- entity.AgentEvent{Agent: agent, Kind: kind, Content: content}:
		r.count++
		return nil
	case <-r.ctx.Done():
		return fmt.Errorf("%w: %w", errStreamClosed, r.ctx.Err())
	}
}

// emit delivers one event and then waits the configured delay.
func (r *pipelineRun) emit(agent string, kind entity.EventKind, content string) error {
	if err := r.send(agent, kind, content); err != nil {
		return err
	}
	return r.pause(r.delay)
}

// emitDetail is emit with half the delay, for per-item lines.
func (r *pipelineRun) emitDetail(agent string, kind entity.EventKind, content string) error {
	if err := r.send(agent, kind, content); err != nil {
		return err
	}
	return r.pause(r.delay / 2)
}

func (r *pipelineRun) pause(d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-r.ctx.Done():
		return fmt.Errorf("%w: %w", errStreamClosed, r.ctx.Err())
	}
}
