package domain_test

import (
	"testing"

	"quizmaster/internal/domain"
)

func capitals() []string {
	return []string{"Paris", "London", "Berlin", "Madrid"}
}

func TestLetterAnswerResolvesToOptionText(t *testing.T) {
	q := domain.NewQuestion("Capital of the UK?", capitals(), "B", "London is the capital.")

	if got := q.CorrectAnswerText(); got != "London" {
		t.Fatalf("expected London, got %q", got)
	}

	q.SetUserAnswer("London")
	if !q.IsCorrect() {
		t.Fatalf("expected London to be correct")
	}

	q.SetUserAnswer("Paris")
	if q.IsCorrect() {
		t.Fatalf("expected Paris to be incorrect")
	}
}

func TestTextAnswerComparedLiterally(t *testing.T) {
	q := domain.NewQuestion("Capital of Germany?", capitals(), "Berlin", "")

	if got := q.CorrectAnswerText(); got != "Berlin" {
		t.Fatalf("expected Berlin, got %q", got)
	}
	q.SetUserAnswer("Berlin")
	if !q.IsCorrect() {
		t.Fatalf("expected Berlin to be correct")
	}
}

func TestUnansweredIsNeverCorrect(t *testing.T) {
	q := domain.NewQuestion("Capital of the UK?", capitals(), "B", "")
	if q.IsCorrect() {
		t.Fatalf("unanswered question must not be correct")
	}
}

func TestResetAnswerClearsState(t *testing.T) {
	q := domain.NewQuestion("Capital of the UK?", capitals(), "B", "")
	q.SetUserAnswer("London")
	q.ResetAnswer()

	if q.Answered() {
		t.Fatalf("expected unanswered after reset")
	}
	if q.UserAnswer() != "" {
		t.Fatalf("expected empty user answer after reset, got %q", q.UserAnswer())
	}
	if q.IsCorrect() {
		t.Fatalf("reset question must not be correct")
	}
}

func TestLetterOutOfRangeFallsBackToRawField(t *testing.T) {
	q := domain.NewQuestion("Pick one", []string{"yes", "no"}, "Z", "")
	if got := q.CorrectAnswerText(); got != "Z" {
		t.Fatalf("expected raw fallback Z, got %q", got)
	}
}

func TestParseAnswerKey(t *testing.T) {
	options := []string{"alpha", "beta", "gamma"}

	if got := domain.ParseAnswerKey("a").Resolve(options); got != "alpha" {
		t.Fatalf("lowercase letter: expected alpha, got %q", got)
	}
	if got := domain.ParseAnswerKey("C").Resolve(options); got != "gamma" {
		t.Fatalf("uppercase letter: expected gamma, got %q", got)
	}
	if got := domain.ParseAnswerKey("beta").Resolve(options); got != "beta" {
		t.Fatalf("literal text: expected beta, got %q", got)
	}
	// A single non-alphabetic character is literal text, not a reference.
	if got := domain.ParseAnswerKey("1").Resolve(options); got != "1" {
		t.Fatalf("non-alphabetic: expected 1, got %q", got)
	}
	if got := domain.ParseAnswerKey("D").Resolve(options); got != "" {
		t.Fatalf("out-of-range letter: expected empty, got %q", got)
	}
}
