package personality

import (
	"math"

	"persona-match/internal/domain"
)

// ChangeThreshold es la variación mínima (en puntos porcentuales) que se reporta.
const ChangeThreshold = 5.0

// TraitChange es la variación de una letra entre dos entradas de historial.
type TraitChange struct {
	Letter domain.Letter `json:"letter"`
	Delta  float64       `json:"delta"`
}

// TraitChanges compara latest contra previous y devuelve las letras cuya variación
// absoluta alcanza ChangeThreshold, en orden de letra. Letras ausentes en previous cuentan como 0.
func TraitChanges(latest, previous domain.TraitPercentages) []TraitChange {
	var changes []TraitChange
	for _, l := range domain.Letters {
		cur, ok := latest[l]
		if !ok {
			continue
		}
		diff := cur - previous[l]
		if math.Abs(diff) >= ChangeThreshold {
			changes = append(changes, TraitChange{Letter: l, Delta: diff})
		}
	}
	return changes
}
