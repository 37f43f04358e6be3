package domain_test

import (
	"testing"

	"quizmaster/internal/domain"
)

// completedSession builds a finished 2-question session with the given number
// of correct answers.
func completedSession(t *testing.T, correct int) *domain.Session {
	t.Helper()
	session := domain.NewSession("capitals", twoQuestions())

	answers := []string{"Madrid", "Madrid"} // both wrong
	if correct >= 1 {
		answers[0] = "Paris"
	}
	if correct >= 2 {
		answers[1] = "London"
	}

	session.SubmitAnswer(answers[0])
	session.Advance()
	session.SubmitAnswer(answers[1])
	session.Complete()

	if got := session.CorrectCount(); got != correct {
		t.Fatalf("fixture: expected %d correct, got %d", correct, got)
	}
	return session
}

func TestAggregateTotalsMatchHistory(t *testing.T) {
	stats := domain.NewUserStats("alice")

	stats.Add(completedSession(t, 2)) // 100%
	stats.Add(completedSession(t, 1)) // 50%
	stats.Add(completedSession(t, 0)) // 0%

	if got := stats.QuizzesCompleted(); got != 3 {
		t.Fatalf("expected 3 quizzes, got %d", got)
	}
	if got := stats.QuestionsAnswered(); got != 6 {
		t.Fatalf("expected 6 questions, got %d", got)
	}
	if got := stats.CorrectAnswers(); got != 3 {
		t.Fatalf("expected 3 correct, got %d", got)
	}
	if got := stats.BestScore(); got != 100.0 {
		t.Fatalf("expected best 100.0, got %.1f", got)
	}
	if got := stats.AverageScore(); got != 50.0 {
		t.Fatalf("expected average 50.0, got %.1f", got)
	}
	if got := stats.OverallAccuracy(); got != 50.0 {
		t.Fatalf("expected accuracy 50.0, got %.1f", got)
	}
}

func TestIncompleteSessionIsIgnored(t *testing.T) {
	stats := domain.NewUserStats("alice")
	stats.Add(domain.NewSession("capitals", twoQuestions()))
	stats.Add(nil)

	if got := stats.QuizzesCompleted(); got != 0 {
		t.Fatalf("expected 0 quizzes, got %d", got)
	}
	if len(stats.History()) != 0 {
		t.Fatalf("expected empty history, got %d entries", len(stats.History()))
	}
}

func TestZeroDenominatorsYieldZero(t *testing.T) {
	stats := domain.NewUserStats("alice")
	if stats.OverallAccuracy() != 0.0 || stats.BestScore() != 0.0 || stats.AverageScore() != 0.0 {
		t.Fatalf("fresh stats must report zeros, got %.1f/%.1f/%.1f",
			stats.OverallAccuracy(), stats.BestScore(), stats.AverageScore())
	}
}
