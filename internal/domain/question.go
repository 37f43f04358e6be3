package domain

// DefaultExplanation is substituted when the generation service omits an
// explanation for a question.
const DefaultExplanation = "No explanation provided."

// AnswerKey identifies the correct option of a question either by position or
// by literal option text. The generation service answers with a bare letter
// ("B") about as often as with the option text itself; the two shapes are made
// explicit here so they are interpreted once instead of on every comparison.
type AnswerKey struct {
	byIndex bool
	index   int
	text    string
}

// AnswerKeyByIndex references an option by its 0-based position.
func AnswerKeyByIndex(index int) AnswerKey {
	return AnswerKey{byIndex: true, index: index}
}

// AnswerKeyByText references an option by its literal text.
func AnswerKeyByText(text string) AnswerKey {
	return AnswerKey{text: text}
}

// ByIndex reports whether the key is a positional reference and, if so, the
// referenced index.
func (k AnswerKey) ByIndex() (int, bool) {
	return k.index, k.byIndex
}

// Resolve returns the literal text of the referenced option, or "" when a
// positional key falls outside the option list.
func (k AnswerKey) Resolve(options []string) string {
	if k.byIndex {
		if k.index >= 0 && k.index < len(options) {
			return options[k.index]
		}
		return ""
	}
	return k.text
}

// ParseAnswerKey interprets a raw correct-answer field. A single alphabetic
// character is a letter reference into the options ("A" -> 0, "B" -> 1, ...);
// anything else is taken as literal option text.
func ParseAnswerKey(raw string) AnswerKey {
	if len(raw) == 1 {
		c := raw[0]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c >= 'A' && c <= 'Z' {
			return AnswerKeyByIndex(int(c - 'A'))
		}
	}
	return AnswerKeyByText(raw)
}

// Question is a single multiple-choice quiz item. Options keep the order they
// were generated in; CorrectAnswer carries the raw field from the wire and is
// resolved through ParseAnswerKey.
type Question struct {
	Text          string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`

	correctText string
	userAnswer  string
	answered    bool
}

// NewQuestion builds a question and resolves its answer key up front.
func NewQuestion(text string, options []string, correctAnswer, explanation string) *Question {
	q := &Question{
		Text:          text,
		Options:       options,
		CorrectAnswer: correctAnswer,
		Explanation:   explanation,
	}
	q.correctText = ParseAnswerKey(correctAnswer).Resolve(options)
	return q
}

// CorrectAnswerText resolves the correct answer to option text. An unresolvable
// key (letter outside the option range) falls back to the raw field.
func (q *Question) CorrectAnswerText() string {
	if q.correctText == "" {
		q.correctText = ParseAnswerKey(q.CorrectAnswer).Resolve(q.Options)
	}
	if q.correctText == "" {
		return q.CorrectAnswer
	}
	return q.correctText
}

// SetUserAnswer records the user's selection. Re-selection overwrites the
// previous answer.
func (q *Question) SetUserAnswer(answer string) {
	q.userAnswer = answer
	q.answered = true
}

// UserAnswer returns the recorded selection, "" when unanswered.
func (q *Question) UserAnswer() string { return q.userAnswer }

// Answered reports whether the user has selected an option.
func (q *Question) Answered() bool { return q.answered }

// IsCorrect reports whether the recorded answer matches the correct option
// text exactly. Unanswered questions are never correct.
func (q *Question) IsCorrect() bool {
	if !q.answered {
		return false
	}
	return q.userAnswer == q.CorrectAnswerText()
}

// ResetAnswer returns the question to its unanswered state.
func (q *Question) ResetAnswer() {
	q.userAnswer = ""
	q.answered = false
}
