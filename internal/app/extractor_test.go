package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"quizmaster/internal/domain"
)

const sampleArray = `[{"question":"Q","options":["A","B"],"correct_answer":"A","explanation":"E"}]`

func envelopeWith(content string) string {
	body, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	})
	return string(body)
}

func TestBareArrayReturnedUnchanged(t *testing.T) {
	got, err := ExtractQuestionsJSON(sampleArray)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got != sampleArray {
		t.Fatalf("expected unchanged array, got %q", got)
	}
}

func TestFencedContentIsUnwrapped(t *testing.T) {
	body := envelopeWith("```json\n" + sampleArray + "\n```")

	got, err := ExtractQuestionsJSON(body)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got != sampleArray {
		t.Fatalf("expected fences stripped, got %q", got)
	}

	var records []map[string]any
	if err := json.Unmarshal([]byte(got), &records); err != nil {
		t.Fatalf("extracted text must decode: %v", err)
	}
}

func TestProseAroundArrayIsTrimmed(t *testing.T) {
	body := envelopeWith("Here are your questions:\n" + sampleArray + "\nEnjoy!")

	got, err := ExtractQuestionsJSON(body)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got != sampleArray {
		t.Fatalf("expected bracket slice, got %q", got)
	}
}

func TestUnbracketableContentPassesThrough(t *testing.T) {
	body := envelopeWith("  sorry, I cannot help with that  ")

	got, err := ExtractQuestionsJSON(body)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got != "sorry, I cannot help with that" {
		t.Fatalf("expected trimmed passthrough, got %q", got)
	}
}

func TestEnvelopeErrors(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		detail string
	}{
		{"empty body", "   ", "response body is empty"},
		{"not json", "not json at all", "body is not valid JSON"},
		{"missing choices", `{"id":"x"}`, "missing 'choices' array"},
		{"empty choices", `{"choices":[]}`, "empty 'choices' array"},
		{"missing message", `{"choices":[{"index":0}]}`, "missing 'message' in choice"},
		{"missing content", `{"choices":[{"message":{"role":"assistant"}}]}`, "missing 'content' in message"},
		{"blank content", envelopeWith("   "), "empty 'content' in message"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ExtractQuestionsJSON(tc.body)
			var extractionErr *domain.ExtractionError
			if !errors.As(err, &extractionErr) {
				t.Fatalf("expected ExtractionError, got %v", err)
			}
			if !strings.Contains(extractionErr.Detail, strings.TrimSuffix(tc.detail, "...")) {
				t.Fatalf("expected detail %q, got %q", tc.detail, extractionErr.Detail)
			}
		})
	}
}

func TestNestedBracketsUseOutermostPair(t *testing.T) {
	content := fmt.Sprintf("prefix [1] middle %s suffix", sampleArray)
	got, err := ExtractQuestionsJSON(envelopeWith(content))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !strings.HasPrefix(got, "[1] middle") || !strings.HasSuffix(got, "]") {
		t.Fatalf("expected outermost bracket slice, got %q", got)
	}
}
