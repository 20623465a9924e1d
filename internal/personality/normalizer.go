package personality

import (
	"fmt"
	"math"
	"strings"

	"persona-match/internal/domain"
)

const (
	PolicyLinear  = "linear"
	PolicySoftmax = "softmax"
)

// Normalizer convierte conteos crudos en porcentajes pareados por eje.
//
// El tipo derivado del cuestionario usa LinearShare; el tipo inferido de
// intereses usa la política configurada (Softmax por defecto).
type Normalizer interface {
	Normalize(scores domain.TraitScores) domain.TraitPercentages
}

// LinearShare reparte 100 puntos proporcionalmente a los conteos; 0/0 queda en 50/50.
type LinearShare struct{}

func (LinearShare) Normalize(scores domain.TraitScores) domain.TraitPercentages {
	out := make(domain.TraitPercentages, len(domain.Letters))
	for _, axis := range domain.Axes {
		a, b := clampCount(scores[axis.First]), clampCount(scores[axis.Second])
		total := a + b
		if total == 0 {
			out[axis.First] = 50
			out[axis.Second] = 50
			continue
		}
		out[axis.First] = 100 * a / total
		out[axis.Second] = 100 - out[axis.First]
	}
	return out
}

// Softmax aplica e^x / (e^a + e^b) por eje. Resta el máximo antes de exponenciar
// para no desbordar con conteos grandes.
type Softmax struct{}

func (Softmax) Normalize(scores domain.TraitScores) domain.TraitPercentages {
	out := make(domain.TraitPercentages, len(domain.Letters))
	for _, axis := range domain.Axes {
		a, b := clampCount(scores[axis.First]), clampCount(scores[axis.Second])
		m := math.Max(a, b)
		ea, eb := math.Exp(a-m), math.Exp(b-m)
		out[axis.First] = 100 * ea / (ea + eb)
		out[axis.Second] = 100 - out[axis.First]
	}
	return out
}

// NormalizerFor resuelve el nombre de política de la configuración.
func NormalizerFor(policy string) (Normalizer, error) {
	switch strings.ToLower(strings.TrimSpace(policy)) {
	case "", PolicySoftmax:
		return Softmax{}, nil
	case PolicyLinear:
		return LinearShare{}, nil
	default:
		return nil, fmt.Errorf("unknown normalizer policy %q", policy)
	}
}

func clampCount(n int) float64 {
	if n < 0 {
		return 0
	}
	return float64(n)
}
