package domain

import (
	"errors"
	"strings"
	"time"
)

// Letter es una de las ocho letras de rasgo (I,E,S,N,T,F,J,P).
type Letter string

const (
	LetterI Letter = "I"
	LetterE Letter = "E"
	LetterS Letter = "S"
	LetterN Letter = "N"
	LetterT Letter = "T"
	LetterF Letter = "F"
	LetterJ Letter = "J"
	LetterP Letter = "P"
)

// Axis es un par de letras opuestas. First gana los empates.
type Axis struct {
	First  Letter
	Second Letter
}

// Contains indica si la letra pertenece al eje.
func (a Axis) Contains(l Letter) bool {
	return l == a.First || l == a.Second
}

// Axes define el orden fijo de los ejes dentro de un PersonalityType.
var Axes = [4]Axis{
	{First: LetterI, Second: LetterE},
	{First: LetterS, Second: LetterN},
	{First: LetterT, Second: LetterF},
	{First: LetterJ, Second: LetterP},
}

// Letters lista las ocho letras en orden de eje.
var Letters = [8]Letter{LetterI, LetterE, LetterS, LetterN, LetterT, LetterF, LetterJ, LetterP}

var ErrInvalidType = errors.New("invalid personality type")

// PersonalityType es un tipo de cuatro letras, una por eje, en mayúsculas.
type PersonalityType string

// ParseType normaliza (trim + upper) y valida un tipo.
func ParseType(raw string) (PersonalityType, error) {
	t := PersonalityType(strings.ToUpper(strings.TrimSpace(raw)))
	if !t.Valid() {
		return "", ErrInvalidType
	}
	return t, nil
}

// Valid verifica que haya exactamente una letra válida por eje.
func (t PersonalityType) Valid() bool {
	if len(t) != len(Axes) {
		return false
	}
	for i, axis := range Axes {
		if !axis.Contains(Letter(t[i])) {
			return false
		}
	}
	return true
}

// LetterAt devuelve la letra del eje i, o "" si el tipo es más corto.
func (t PersonalityType) LetterAt(i int) Letter {
	if i < 0 || i >= len(t) {
		return ""
	}
	return Letter(t[i])
}

func (t PersonalityType) String() string { return string(t) }

// AllTypes enumera los 16 tipos en orden binario sobre los ejes.
func AllTypes() []PersonalityType {
	types := make([]PersonalityType, 0, 16)
	for mask := 0; mask < 16; mask++ {
		var b strings.Builder
		for i, axis := range Axes {
			if mask&(1<<(len(Axes)-1-i)) == 0 {
				b.WriteString(string(axis.First))
			} else {
				b.WriteString(string(axis.Second))
			}
		}
		types = append(types, PersonalityType(b.String()))
	}
	return types
}

// TraitScores son conteos crudos por letra.
type TraitScores map[Letter]int

// NewTraitScores devuelve un mapa con las ocho letras en cero.
func NewTraitScores() TraitScores {
	scores := make(TraitScores, len(Letters))
	for _, l := range Letters {
		scores[l] = 0
	}
	return scores
}

// TraitPercentages son porcentajes por letra; cada par de un eje suma 100.
type TraitPercentages map[Letter]float64

// PersonalityHistoryEntry es una observación persistida del tipo de un usuario.
type PersonalityHistoryEntry struct {
	ID          string           `json:"id"`
	UserID      string           `json:"user_id"`
	Type        PersonalityType  `json:"type"`
	Scores      TraitScores      `json:"trait_scores"`
	Percentages TraitPercentages `json:"trait_percentages"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// TypeDescription describe un tipo para la vista de perfil.
type TypeDescription struct {
	Type       PersonalityType `json:"type"`
	Traits     string          `json:"traits"`
	Strengths  string          `json:"strengths"`
	Weaknesses string          `json:"weaknesses"`
}
