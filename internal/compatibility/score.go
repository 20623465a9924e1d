package compatibility

import "persona-match/internal/domain"

const (
	// Pesos del puntaje de ranking de recomendaciones.
	RankingAffinityWeight = 0.6
	RankingInterestWeight = 0.4
)

// Scorer combina la tabla de afinidad con la similitud de intereses.
// No guarda estado mutable y puede compartirse entre goroutines.
type Scorer struct {
	table *AffinityTable
	vocab Vocabulary
}

func NewScorer(table *AffinityTable, vocab Vocabulary) *Scorer {
	return &Scorer{table: table, vocab: vocab}
}

func (s *Scorer) Table() *AffinityTable { return s.table }

func (s *Scorer) Vocabulary() Vocabulary { return s.vocab }

// Affinity es la búsqueda directa; pares desconocidos devuelven (0, false).
func (s *Scorer) Affinity(from, to domain.PersonalityType) (float64, bool) {
	return s.table.Lookup(from, to)
}

// InterestSimilarity usa el vocabulario del Scorer.
func (s *Scorer) InterestSimilarity(a, b domain.InterestSet) float64 {
	return InterestSimilarity(a, b, s.vocab)
}

// BlendedScore es el puntaje pareado para la vista de detalle, en [0,100]:
// (afinidad + similitud de intereses) / 2 * 100.
func (s *Scorer) BlendedScore(viewerType, targetType domain.PersonalityType, viewer, target domain.InterestSet) float64 {
	aff, _ := s.Affinity(viewerType, targetType)
	return BlendedScore(aff, s.InterestSimilarity(viewer, target))
}

// BlendedScore combina afinidad y similitud, ambas en [0,1], en un porcentaje.
func BlendedScore(affinity, interestSimilarity float64) float64 {
	return (affinity + interestSimilarity) / 2 * 100
}

// SharedInterestRatio es la fracción de los intereses del viewer que cubre el candidato.
// Normaliza por el viewer, no por el candidato.
func SharedInterestRatio(viewer, candidate domain.InterestSet) float64 {
	denom := viewer.Len()
	if denom < 1 {
		denom = 1
	}
	return float64(viewer.Intersect(candidate)) / float64(denom)
}

// RankingScore es el puntaje ponderado para ordenar candidatos, en [0,1].
func RankingScore(affinity float64, viewer, candidate domain.InterestSet) float64 {
	return affinity*RankingAffinityWeight + SharedInterestRatio(viewer, candidate)*RankingInterestWeight
}
