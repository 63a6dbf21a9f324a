package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventKind_IsTerminal(t *testing.T) {
	tests := []struct {
		kind     EventKind
		terminal bool
	}{
		{EventThinking, false},
		{EventToolCall, false},
		{EventToolResult, false},
		{EventDecision, false},
		{EventFinalAnswer, false},
		{EventError, true},
		{EventDone, true},
		{EventKind(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.terminal, tt.kind.IsTerminal())
		})
	}
}
