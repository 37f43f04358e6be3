package app

import (
	"fmt"
	"strings"

	"quizmaster/internal/domain"
)

// rawQuestion is the decoded-but-untrusted wire shape of one question.
type rawQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// validateQuestion checks one decoded record and, on success, returns it as a
// normalized domain question with its answer key resolved. index is carried
// into errors for diagnostics only.
func validateQuestion(rec *rawQuestion, index int) (*domain.Question, error) {
	if rec == nil {
		return nil, &domain.ValidationError{Index: index, Reason: "record is null"}
	}
	if strings.TrimSpace(rec.Question) == "" {
		return nil, &domain.ValidationError{Index: index, Reason: "empty question text"}
	}
	if len(rec.Options) < 2 {
		return nil, &domain.ValidationError{Index: index, Reason: "must have at least 2 options"}
	}
	if strings.TrimSpace(rec.CorrectAnswer) == "" {
		return nil, &domain.ValidationError{Index: index, Reason: "no correct answer"}
	}

	key := domain.ParseAnswerKey(rec.CorrectAnswer)
	if idx, ok := key.ByIndex(); ok {
		if idx < 0 || idx >= len(rec.Options) {
			return nil, &domain.ValidationError{
				Index: index,
				Reason: fmt.Sprintf("invalid correct answer %q: must be a letter between A and %c",
					rec.CorrectAnswer, 'A'+len(rec.Options)-1),
			}
		}
	} else if !containsOption(rec.Options, rec.CorrectAnswer) {
		return nil, &domain.ValidationError{
			Index:  index,
			Reason: fmt.Sprintf("correct answer %q is not in the options list", rec.CorrectAnswer),
		}
	}

	explanation := rec.Explanation
	if strings.TrimSpace(explanation) == "" {
		explanation = domain.DefaultExplanation
	}

	return domain.NewQuestion(rec.Question, rec.Options, rec.CorrectAnswer, explanation), nil
}

func containsOption(options []string, answer string) bool {
	for _, option := range options {
		if option == answer {
			return true
		}
	}
	return false
}
