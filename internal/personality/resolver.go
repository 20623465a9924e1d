package personality

import (
	"strings"

	"persona-match/internal/domain"
)

// Resolve elige por eje la letra con mayor conteo; en empate gana la primera del eje.
func Resolve(scores domain.TraitScores) domain.PersonalityType {
	var b strings.Builder
	for _, axis := range domain.Axes {
		if scores[axis.First] >= scores[axis.Second] {
			b.WriteString(string(axis.First))
		} else {
			b.WriteString(string(axis.Second))
		}
	}
	return domain.PersonalityType(b.String())
}

// ResolveFromHistory vota por eje sobre {current} ∪ history.
// Letras que no pertenecen al eje (o tipos incompletos) no suman votos; sin votos
// el eje cae en la primera letra, igual que Resolve.
func ResolveFromHistory(current domain.PersonalityType, history []domain.PersonalityType) domain.PersonalityType {
	tally := domain.NewTraitScores()
	candidates := make([]domain.PersonalityType, 0, len(history)+1)
	candidates = append(candidates, current)
	candidates = append(candidates, history...)

	for _, t := range candidates {
		t = domain.PersonalityType(strings.ToUpper(string(t)))
		for i, axis := range domain.Axes {
			if l := t.LetterAt(i); axis.Contains(l) {
				tally[l]++
			}
		}
	}
	return Resolve(tally)
}
