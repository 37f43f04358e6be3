package domain_test

import (
	"testing"
	"time"

	"quizmaster/internal/domain"
)

func twoQuestions() []*domain.Question {
	return []*domain.Question{
		domain.NewQuestion("Capital of France?", capitals(), "A", ""),
		domain.NewQuestion("Capital of the UK?", capitals(), "B", ""),
	}
}

// steppingClock returns a clock that advances by step on every call.
func steppingClock(start time.Time, step time.Duration) func() time.Time {
	current := start
	return func() time.Time {
		now := current
		current = current.Add(step)
		return now
	}
}

func TestNavigationBounds(t *testing.T) {
	session := domain.NewSession("capitals", twoQuestions())

	if session.Retreat() {
		t.Fatalf("retreat at first question must fail")
	}
	if !session.Advance() {
		t.Fatalf("advance from first question must succeed")
	}
	if session.Advance() {
		t.Fatalf("advance at last question must fail")
	}
	if !session.Retreat() {
		t.Fatalf("retreat from last question must succeed")
	}
	if session.CurrentIndex() != 0 {
		t.Fatalf("expected cursor 0, got %d", session.CurrentIndex())
	}
}

func TestScoringCounts(t *testing.T) {
	session := domain.NewSession("capitals", twoQuestions())

	if !session.SubmitAnswer("Paris") {
		t.Fatalf("submit on current question failed")
	}
	session.Advance()
	session.SubmitAnswer("Berlin") // wrong, correct is London

	if got := session.AnsweredCount(); got != 2 {
		t.Fatalf("expected 2 answered, got %d", got)
	}
	if got := session.CorrectCount(); got != 1 {
		t.Fatalf("expected 1 correct, got %d", got)
	}
	if got := session.IncorrectCount(); got != 1 {
		t.Fatalf("expected 1 incorrect, got %d", got)
	}
	if got := session.ScorePercentage(); got != 50.0 {
		t.Fatalf("expected 50%%, got %.1f", got)
	}
	if !session.AllAnswered() {
		t.Fatalf("expected all answered")
	}
}

func TestEmptySessionScoreIsZero(t *testing.T) {
	session := domain.NewSession("empty", nil)
	if got := session.ScorePercentage(); got != 0.0 {
		t.Fatalf("expected 0.0, got %.1f", got)
	}
	if got := session.Progress(); got != 0.0 {
		t.Fatalf("expected progress 0.0, got %.2f", got)
	}
	if session.SubmitAnswer("anything") {
		t.Fatalf("submit with no questions must fail")
	}
}

func TestCompleteIsIdempotent(t *testing.T) {
	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	session := domain.NewSessionWithClock("capitals", twoQuestions(), steppingClock(start, 90*time.Second))

	session.Complete()
	end := session.EndTime()
	duration := session.DurationSeconds()

	if !session.Completed() {
		t.Fatalf("expected completed")
	}
	if duration != 90 {
		t.Fatalf("expected 90s duration, got %d", duration)
	}

	session.Complete()
	if !session.EndTime().Equal(end) || session.DurationSeconds() != duration {
		t.Fatalf("second complete must not change end time or duration")
	}
}

func TestResetIsIdempotent(t *testing.T) {
	session := domain.NewSession("capitals", twoQuestions())
	session.SubmitAnswer("Paris")
	session.Advance()
	session.SubmitAnswer("London")
	session.Complete()

	check := func() {
		t.Helper()
		if session.CurrentIndex() != 0 {
			t.Fatalf("expected cursor 0 after reset, got %d", session.CurrentIndex())
		}
		if session.Completed() {
			t.Fatalf("expected not completed after reset")
		}
		if !session.EndTime().IsZero() {
			t.Fatalf("expected zero end time after reset")
		}
		if session.DurationSeconds() != 0 {
			t.Fatalf("expected zero duration after reset")
		}
		if session.AnsweredCount() != 0 {
			t.Fatalf("expected no answers after reset, got %d", session.AnsweredCount())
		}
	}

	session.Reset()
	check()
	session.Reset()
	check()
}

func TestProgressFollowsCursor(t *testing.T) {
	session := domain.NewSession("capitals", twoQuestions())
	if got := session.Progress(); got != 0.5 {
		t.Fatalf("expected 0.5 at first question, got %.2f", got)
	}
	session.Advance()
	if got := session.Progress(); got != 1.0 {
		t.Fatalf("expected 1.0 at last question, got %.2f", got)
	}
}
