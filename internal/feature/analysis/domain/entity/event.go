package entity

// EventKind classifies a progress event.
type EventKind string

const (
	EventThinking    EventKind = "thinking"
	EventToolCall    EventKind = "tool_call"
	EventToolResult  EventKind = "tool_result"
	EventDecision    EventKind = "decision"
	EventFinalAnswer EventKind = "final_answer"
	EventError       EventKind = "error"
	EventDone        EventKind = "done"
)

// IsTerminal reports whether no further events follow this kind.
func (k EventKind) IsTerminal() bool {
	return k == EventDone || k == EventError
}

// AgentEvent is one entry of the progress stream sent to the client.
type AgentEvent struct {
	Agent   string    // Which agent is acting (e.g. "Router", "Tavily")
	Kind    EventKind // thinking / tool_call / tool_result / decision / final_answer / error / done
	Content string
}
