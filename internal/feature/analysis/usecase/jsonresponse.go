package usecase

import (
	"encoding/json"
	"fmt"
	"strings"
)

// jsonInstruction is appended to system prompts of JSON-mode calls.
const jsonInstruction = "\n\nYou MUST respond with valid JSON only. No markdown, no explanation, just JSON."

// chatJSON appends the JSON instruction to the system prompt and flags the request as JSON mode.
func chatJSON(systemPrompt, userMessage string) ChatRequest {
	return ChatRequest{
		SystemPrompt: systemPrompt + jsonInstruction,
		UserMessage:  userMessage,
		JSONMode:     true,
	}
}

// parseJSONResponse decodes a model reply into v, tolerating markdown code fences.
func parseJSONResponse(text string, v any) error {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		// drop the opening fence together with its language tag
		if i := strings.Index(text, "\n"); i >= 0 {
			text = text[i+1:]
		} else {
			text = text[3:]
		}
	}
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	if err := json.Unmarshal([]byte(text), v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLLMResponse, err)
	}
	return nil
}
