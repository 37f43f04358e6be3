package app

import (
	"encoding/json"
	"strings"

	"quizmaster/internal/domain"
)

// Envelope shape of the chat-completions response. Pointers distinguish an
// absent field from an empty one.
type choiceMessage struct {
	Content *string `json:"content"`
}

type responseChoice struct {
	Message *choiceMessage `json:"message"`
}

type responseEnvelope struct {
	Choices *[]responseChoice `json:"choices"`
}

// ExtractQuestionsJSON pulls the generated questions array out of a raw
// response body. A body that already is a bare JSON array is returned as-is;
// otherwise the chat-completions envelope is navigated down to the message
// content, which is then cleaned of markdown fences and sliced to its array
// brackets. Unbracketable content is returned trimmed for the decoder to
// reject, not guessed at further.
func ExtractQuestionsJSON(body string) (string, error) {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return "", &domain.ExtractionError{Detail: "response body is empty"}
	}

	if strings.HasPrefix(trimmed, "[") {
		var raw []json.RawMessage
		if err := json.Unmarshal([]byte(trimmed), &raw); err == nil {
			return trimmed, nil
		}
	}

	var env responseEnvelope
	if err := json.Unmarshal([]byte(trimmed), &env); err != nil {
		return "", &domain.ExtractionError{Detail: "body is not valid JSON: " + err.Error()}
	}

	if env.Choices == nil {
		return "", &domain.ExtractionError{Detail: "missing 'choices' array"}
	}
	choices := *env.Choices
	if len(choices) == 0 {
		return "", &domain.ExtractionError{Detail: "empty 'choices' array"}
	}
	if choices[0].Message == nil {
		return "", &domain.ExtractionError{Detail: "missing 'message' in choice"}
	}
	if choices[0].Message.Content == nil {
		return "", &domain.ExtractionError{Detail: "missing 'content' in message"}
	}
	content := strings.TrimSpace(*choices[0].Message.Content)
	if content == "" {
		return "", &domain.ExtractionError{Detail: "empty 'content' in message"}
	}

	return cleanQuestionsJSON(content), nil
}

// cleanQuestionsJSON strips markdown code fences and slices the text to its
// outermost array brackets. When no properly ordered bracket pair exists the
// trimmed text is passed through unchanged as a best-effort fallback.
func cleanQuestionsJSON(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start == -1 || end == -1 || start >= end {
		return strings.TrimSpace(content)
	}
	return strings.TrimSpace(content[start : end+1])
}
