package compatibility

import (
	"math"

	"persona-match/internal/domain"
)

// Vocabulary es el orden fijo de intereses que define los vectores indicadores.
type Vocabulary struct {
	terms []string
	index map[string]int
}

// NewVocabulary normaliza y deduplica los términos preservando el primer orden visto.
func NewVocabulary(terms []string) Vocabulary {
	v := Vocabulary{index: make(map[string]int, len(terms))}
	for _, raw := range terms {
		t := domain.NormalizeInterest(raw)
		if t == "" {
			continue
		}
		if _, dup := v.index[t]; dup {
			continue
		}
		v.index[t] = len(v.terms)
		v.terms = append(v.terms, t)
	}
	return v
}

func (v Vocabulary) Len() int { return len(v.terms) }

func (v Vocabulary) Terms() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// Vector devuelve el vector binario del conjunto. Intereses fuera del vocabulario se ignoran.
func (v Vocabulary) Vector(set domain.InterestSet) []float32 {
	vec := make([]float32, len(v.terms))
	for interest := range set {
		if i, ok := v.index[interest]; ok {
			vec[i] = 1
		}
	}
	return vec
}

// Jaccard es |A∩B| / |A∪B|. Dos conjuntos vacíos dan 0.
func Jaccard(a, b domain.InterestSet) float64 {
	union := a.Union(b)
	if union == 0 {
		return 0
	}
	return float64(a.Intersect(b)) / float64(union)
}

// Cosine es el producto punto normalizado; un vector nulo da 0.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, magA, magB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		magA += x * x
		magB += y * y
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}

// InterestSimilarity promedia Jaccard sobre los conjuntos crudos y coseno sobre el vocabulario.
func InterestSimilarity(a, b domain.InterestSet, vocab Vocabulary) float64 {
	return (Jaccard(a, b) + Cosine(vocab.Vector(a), vocab.Vector(b))) / 2
}
