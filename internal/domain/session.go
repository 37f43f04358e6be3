package domain

import (
	"fmt"
	"time"
)

// Session is one run of generated questions on a topic. The question slice is
// fixed at construction; answers mutate in place through the questions
// themselves. A session is a single-writer structure: the owning front-end
// serializes all mutations.
type Session struct {
	topic           string
	questions       []*Question
	current         int
	startTime       time.Time
	endTime         time.Time
	completed       bool
	durationSeconds int64
	now             func() time.Time
}

// NewSession starts a session over the given questions.
func NewSession(topic string, questions []*Question) *Session {
	return NewSessionWithClock(topic, questions, time.Now)
}

// NewSessionWithClock allows deterministic timestamps in tests.
func NewSessionWithClock(topic string, questions []*Question, now func() time.Time) *Session {
	return &Session{
		topic:     topic,
		questions: questions,
		now:       now,
		startTime: now(),
	}
}

// Topic returns the topic the session was generated for.
func (s *Session) Topic() string { return s.topic }

// Questions returns the session's questions in display order.
func (s *Session) Questions() []*Question { return s.questions }

// CurrentIndex returns the 0-based cursor position.
func (s *Session) CurrentIndex() int { return s.current }

// Current returns the question under the cursor, nil when the session is
// empty.
func (s *Session) Current() *Question {
	if s.current >= 0 && s.current < len(s.questions) {
		return s.questions[s.current]
	}
	return nil
}

// SubmitAnswer records an answer for the current question. It returns false
// when the cursor points at no question.
func (s *Session) SubmitAnswer(answer string) bool {
	question := s.Current()
	if question == nil {
		return false
	}
	question.SetUserAnswer(answer)
	return true
}

// Advance moves the cursor forward, returning false at the last question.
func (s *Session) Advance() bool {
	if s.current < len(s.questions)-1 {
		s.current++
		return true
	}
	return false
}

// Retreat moves the cursor back, returning false at the first question.
func (s *Session) Retreat() bool {
	if s.current > 0 {
		s.current--
		return true
	}
	return false
}

// HasNext reports whether questions remain after the cursor.
func (s *Session) HasNext() bool { return s.current < len(s.questions)-1 }

// HasPrevious reports whether questions precede the cursor.
func (s *Session) HasPrevious() bool { return s.current > 0 }

// TotalQuestions returns the number of questions in the session.
func (s *Session) TotalQuestions() int { return len(s.questions) }

// AnsweredCount returns how many questions have a recorded answer.
func (s *Session) AnsweredCount() int {
	count := 0
	for _, q := range s.questions {
		if q.Answered() {
			count++
		}
	}
	return count
}

// CorrectCount returns how many recorded answers are correct.
func (s *Session) CorrectCount() int {
	count := 0
	for _, q := range s.questions {
		if q.IsCorrect() {
			count++
		}
	}
	return count
}

// IncorrectCount returns how many recorded answers are wrong.
func (s *Session) IncorrectCount() int {
	count := 0
	for _, q := range s.questions {
		if q.Answered() && !q.IsCorrect() {
			count++
		}
	}
	return count
}

// ScorePercentage returns correct answers over total questions as a
// percentage, 0.0 for an empty session.
func (s *Session) ScorePercentage() float64 {
	if len(s.questions) == 0 {
		return 0.0
	}
	return float64(s.CorrectCount()) / float64(len(s.questions)) * 100.0
}

// AllAnswered reports whether every question has a recorded answer.
func (s *Session) AllAnswered() bool {
	for _, q := range s.questions {
		if !q.Answered() {
			return false
		}
	}
	return true
}

// Progress returns the cursor position as a fraction of the total, 0.0 for an
// empty session.
func (s *Session) Progress() float64 {
	if len(s.questions) == 0 {
		return 0.0
	}
	return float64(s.current+1) / float64(len(s.questions))
}

// Completed reports whether the session has been finalized.
func (s *Session) Completed() bool { return s.completed }

// StartTime returns when the session (or its latest reset) began.
func (s *Session) StartTime() time.Time { return s.startTime }

// EndTime returns when the session was completed; zero while active.
func (s *Session) EndTime() time.Time { return s.endTime }

// DurationSeconds returns the whole-second duration of a completed session.
func (s *Session) DurationSeconds() int64 { return s.durationSeconds }

// Complete finalizes the session, fixing end time and duration. Completing an
// already-completed session is a no-op.
func (s *Session) Complete() {
	if s.completed {
		return
	}
	s.endTime = s.now()
	s.completed = true
	s.durationSeconds = int64(s.endTime.Sub(s.startTime).Seconds())
}

// Reset rewinds the session to an unanswered state and restarts the clock.
func (s *Session) Reset() {
	s.current = 0
	s.completed = false
	s.endTime = time.Time{}
	s.durationSeconds = 0
	s.startTime = s.now()
	for _, q := range s.questions {
		q.ResetAnswer()
	}
}

// ScoreSummary formats the score as "correct/total (percent)".
func (s *Session) ScoreSummary() string {
	return fmt.Sprintf("%d/%d (%.1f%%)", s.CorrectCount(), s.TotalQuestions(), s.ScorePercentage())
}

// FormattedDuration renders the completed duration as MM:SS.
func (s *Session) FormattedDuration() string {
	return fmt.Sprintf("%02d:%02d", s.durationSeconds/60, s.durationSeconds%60)
}
