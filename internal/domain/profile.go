package domain

import (
	"encoding/json"
	"sort"
	"strings"
	"time"
)

// Profile es la vista mínima del registro de usuario que consume el motor.
type Profile struct {
	ID                string          `json:"id"`
	Username          string          `json:"username,omitempty"`
	Name              string          `json:"name,omitempty"`
	Type              PersonalityType `json:"type,omitempty"`
	SelectedInterests []string        `json:"selected_interests"`
}

// Interests devuelve los intereses seleccionados como InterestSet.
func (p Profile) Interests() InterestSet {
	return NewInterestSet(p.SelectedInterests)
}

// CompatibilityRecord es una fila derivada de la tabla lateral de compatibilidad.
type CompatibilityRecord struct {
	UserID1    string    `json:"user_1"`
	UserID2    string    `json:"user_2"`
	Score      float64   `json:"score"`
	ComputedAt time.Time `json:"computed_at"`
}

// InterestSet es un conjunto deduplicado de intereses en minúsculas y sin espacios extremos.
type InterestSet map[string]struct{}

// NormalizeInterest aplica la normalización usada en toda comparación.
func NormalizeInterest(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NewInterestSet une y normaliza varias listas; descarta entradas vacías.
func NewInterestSet(lists ...[]string) InterestSet {
	set := make(InterestSet)
	for _, list := range lists {
		for _, raw := range list {
			if v := NormalizeInterest(raw); v != "" {
				set[v] = struct{}{}
			}
		}
	}
	return set
}

func (s InterestSet) Has(interest string) bool {
	_, ok := s[NormalizeInterest(interest)]
	return ok
}

func (s InterestSet) Len() int { return len(s) }

// Intersect cuenta los elementos compartidos.
func (s InterestSet) Intersect(other InterestSet) int {
	small, large := s, other
	if len(small) > len(large) {
		small, large = large, small
	}
	n := 0
	for k := range small {
		if _, ok := large[k]; ok {
			n++
		}
	}
	return n
}

// Union cuenta los elementos de la unión sin materializarla.
func (s InterestSet) Union(other InterestSet) int {
	return len(s) + len(other) - s.Intersect(other)
}

// Sorted devuelve los elementos ordenados.
func (s InterestSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (s InterestSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *InterestSet) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*s = NewInterestSet(items)
	return nil
}
