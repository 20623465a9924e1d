package personality

import (
	"errors"
	"strings"

	"persona-match/internal/domain"
)

var ErrInvalidQuiz = errors.New("invalid quiz answers")

// QuizResult es el tipo derivado del cuestionario de alta.
type QuizResult struct {
	Type        domain.PersonalityType  `json:"type"`
	Scores      domain.TraitScores      `json:"scores"`
	Percentages domain.TraitPercentages `json:"percentages"`
}

// ScoreQuiz recibe una respuesta por eje, en el orden de domain.Axes.
// Cada respuesta suma 1 a su letra y los porcentajes usan LinearShare.
func ScoreQuiz(answers []string) (QuizResult, error) {
	if len(answers) != len(domain.Axes) {
		return QuizResult{}, ErrInvalidQuiz
	}
	scores := domain.NewTraitScores()
	for i, axis := range domain.Axes {
		l := domain.Letter(strings.ToUpper(strings.TrimSpace(answers[i])))
		if !axis.Contains(l) {
			return QuizResult{}, ErrInvalidQuiz
		}
		scores[l]++
	}
	return QuizResult{
		Type:        Resolve(scores),
		Scores:      scores,
		Percentages: LinearShare{}.Normalize(scores),
	}, nil
}
