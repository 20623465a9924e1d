package personality

import "persona-match/internal/domain"

// Scorer cuenta cuántas palabras clave de cada letra aparecen en un InterestSet.
type Scorer struct {
	keywords map[domain.Letter]map[string]struct{}
}

// NewScorer precalcula el diccionario normalizado. Un mapa nil usa DefaultKeywords.
func NewScorer(keywords KeywordMap) *Scorer {
	if keywords == nil {
		keywords = DefaultKeywords
	}
	idx := make(map[domain.Letter]map[string]struct{}, len(domain.Letters))
	for letter, words := range keywords {
		set := make(map[string]struct{}, len(words))
		for _, w := range words {
			if n := domain.NormalizeInterest(w); n != "" {
				set[n] = struct{}{}
			}
		}
		idx[letter] = set
	}
	return &Scorer{keywords: idx}
}

// Score devuelve el número de palabras clave presentes por letra.
// Entrada vacía produce las ocho letras en cero.
func (s *Scorer) Score(interests domain.InterestSet) domain.TraitScores {
	scores := domain.NewTraitScores()
	for _, letter := range domain.Letters {
		for kw := range s.keywords[letter] {
			if _, ok := interests[kw]; ok {
				scores[letter]++
			}
		}
	}
	return scores
}
