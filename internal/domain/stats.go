package domain

import (
	"fmt"
	"time"
)

// UserStats aggregates one user's performance across completed sessions. It
// holds finished sessions by reference for historical reads and never mutates
// them; the running totals always equal the sums over the stored history.
type UserStats struct {
	name              string
	lastLogin         time.Time
	history           []*Session
	quizzesCompleted  int
	questionsAnswered int
	correctAnswers    int
	now               func() time.Time
}

// NewUserStats creates stats for a named user and stamps the first login.
func NewUserStats(name string) *UserStats {
	return NewUserStatsWithClock(name, time.Now)
}

// NewUserStatsWithClock allows deterministic timestamps in tests.
func NewUserStatsWithClock(name string, now func() time.Time) *UserStats {
	return &UserStats{
		name:      name,
		now:       now,
		lastLogin: now(),
	}
}

// Name returns the user's name.
func (u *UserStats) Name() string { return u.name }

// LastLogin returns the most recent login stamp.
func (u *UserStats) LastLogin() time.Time { return u.lastLogin }

// Touch refreshes the last-login stamp.
func (u *UserStats) Touch() { u.lastLogin = u.now() }

// History returns the recorded completed sessions in insertion order.
func (u *UserStats) History() []*Session { return u.history }

// Add folds a completed session into the totals. Incomplete sessions are
// silently ignored.
func (u *UserStats) Add(session *Session) {
	if session == nil || !session.Completed() {
		return
	}
	u.history = append(u.history, session)
	u.quizzesCompleted++
	u.questionsAnswered += session.TotalQuestions()
	u.correctAnswers += session.CorrectCount()
}

// QuizzesCompleted returns the number of recorded sessions.
func (u *UserStats) QuizzesCompleted() int { return u.quizzesCompleted }

// QuestionsAnswered returns the total question count over the history.
func (u *UserStats) QuestionsAnswered() int { return u.questionsAnswered }

// CorrectAnswers returns the total correct count over the history.
func (u *UserStats) CorrectAnswers() int { return u.correctAnswers }

// OverallAccuracy returns summed correct over summed questions as a
// percentage, 0.0 before any session is recorded.
func (u *UserStats) OverallAccuracy() float64 {
	if u.questionsAnswered == 0 {
		return 0.0
	}
	return float64(u.correctAnswers) / float64(u.questionsAnswered) * 100.0
}

// BestScore returns the highest session score percentage, 0.0 on an empty
// history.
func (u *UserStats) BestScore() float64 {
	best := 0.0
	for _, s := range u.history {
		if score := s.ScorePercentage(); score > best {
			best = score
		}
	}
	return best
}

// AverageScore returns the mean session score percentage, 0.0 on an empty
// history.
func (u *UserStats) AverageScore() float64 {
	if len(u.history) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, s := range u.history {
		sum += s.ScorePercentage()
	}
	return sum / float64(len(u.history))
}

// Summary renders the aggregate counters on one line.
func (u *UserStats) Summary() string {
	return fmt.Sprintf(
		"Quizzes Completed: %d | Questions Answered: %d | Overall Accuracy: %.1f%% | Best Score: %.1f%% | Average Score: %.1f%%",
		u.quizzesCompleted, u.questionsAnswered, u.OverallAccuracy(), u.BestScore(), u.AverageScore(),
	)
}
