package personality

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"persona-match/internal/domain"
)

func TestDefaultKeywordsCoverEveryLetter(t *testing.T) {
	for _, l := range domain.Letters {
		require.NotEmpty(t, DefaultKeywords[l], "letter %s", l)
		for _, kw := range DefaultKeywords[l] {
			require.Equal(t, domain.NormalizeInterest(kw), kw, "keyword %q must be normalized", kw)
		}
	}
}

func TestScorerCountsMatchingKeywords(t *testing.T) {
	s := NewScorer(KeywordMap{
		domain.LetterI: {"poetry", "journaling"},
		domain.LetterE: {"socializing"},
		domain.LetterT: {"debate"},
		domain.LetterF: {"debate", "caregiving"},
	})

	scores := s.Score(domain.NewInterestSet([]string{"  Poetry ", "JOURNALING", "debate", "unknown"}))

	require.Equal(t, 2, scores[domain.LetterI])
	require.Equal(t, 0, scores[domain.LetterE])
	require.Equal(t, 1, scores[domain.LetterT])
	require.Equal(t, 1, scores[domain.LetterF])
	require.Len(t, scores, 8)
}

func TestScorerEmptyInputIsAllZero(t *testing.T) {
	scores := NewScorer(nil).Score(domain.NewInterestSet())
	require.Len(t, scores, 8)
	for _, l := range domain.Letters {
		require.Zero(t, scores[l])
	}
}

func TestScorerIsDeterministic(t *testing.T) {
	s := NewScorer(nil)
	in := domain.NewInterestSet([]string{"philosophy", "sports", "time management", "adventure", "daydreaming"})
	first := s.Score(in)
	for i := 0; i < 5; i++ {
		require.Equal(t, first, s.Score(in))
	}
	for _, v := range first {
		require.GreaterOrEqual(t, v, 0)
	}
}

func TestNormalizersPairsSumToHundred(t *testing.T) {
	inputs := []domain.TraitScores{
		{},
		{domain.LetterI: 3, domain.LetterE: 1, domain.LetterS: 0, domain.LetterN: 7},
		{domain.LetterT: 20, domain.LetterF: 19, domain.LetterJ: 1, domain.LetterP: 900},
		{domain.LetterI: -4, domain.LetterE: 2},
	}
	for _, n := range []Normalizer{LinearShare{}, Softmax{}} {
		for _, in := range inputs {
			pct := n.Normalize(in)
			for _, axis := range domain.Axes {
				sum := pct[axis.First] + pct[axis.Second]
				require.InDelta(t, 100, sum, 1e-6)
				require.GreaterOrEqual(t, pct[axis.First], 0.0)
				require.LessOrEqual(t, pct[axis.First], 100.0)
				require.False(t, math.IsNaN(pct[axis.First]))
			}
		}
	}
}

func TestNormalizersNeutralOnNoSignal(t *testing.T) {
	zero := domain.TraitScores{domain.LetterI: 0, domain.LetterE: 0}
	for _, n := range []Normalizer{LinearShare{}, Softmax{}} {
		pct := n.Normalize(zero)
		require.Equal(t, 50.0, pct[domain.LetterI])
		require.Equal(t, 50.0, pct[domain.LetterE])
	}
}

func TestNormalizerValues(t *testing.T) {
	scores := domain.TraitScores{domain.LetterI: 3, domain.LetterE: 1}

	lin := LinearShare{}.Normalize(scores)
	require.InDelta(t, 75, lin[domain.LetterI], 1e-9)

	soft := Softmax{}.Normalize(scores)
	want := 100 * math.Exp(3) / (math.Exp(3) + math.Exp(1))
	require.InDelta(t, want, soft[domain.LetterI], 1e-9)
	require.Greater(t, soft[domain.LetterE], 0.0)
}

func TestNormalizerFor(t *testing.T) {
	n, err := NormalizerFor("")
	require.NoError(t, err)
	require.IsType(t, Softmax{}, n)

	n, err = NormalizerFor(" Linear ")
	require.NoError(t, err)
	require.IsType(t, LinearShare{}, n)

	_, err = NormalizerFor("quadratic")
	require.Error(t, err)
}

func TestResolveTieBreaksTowardFirstLetter(t *testing.T) {
	scores := domain.TraitScores{
		domain.LetterI: 3, domain.LetterE: 3,
		domain.LetterS: 1, domain.LetterN: 0,
		domain.LetterT: 2, domain.LetterF: 2,
		domain.LetterJ: 0, domain.LetterP: 1,
	}
	require.Equal(t, domain.PersonalityType("ISTP"), Resolve(scores))
	require.Equal(t, domain.PersonalityType("ISTJ"), Resolve(domain.NewTraitScores()))
}

func TestResolveFromHistory(t *testing.T) {
	got := ResolveFromHistory("ENFP", []domain.PersonalityType{"ENFP", "ENFP", "INFJ"})
	require.Equal(t, domain.PersonalityType("ENFP"), got)

	// un solo candidato se devuelve tal cual
	require.Equal(t, domain.PersonalityType("ESFP"), ResolveFromHistory("ESFP", nil))

	// empate 1-1 en cada eje: gana la primera letra
	require.Equal(t, domain.PersonalityType("ISTJ"), ResolveFromHistory("ENFP", []domain.PersonalityType{"ISTJ"}))

	// letras inválidas o tipos truncados no votan
	require.Equal(t, domain.PersonalityType("ENTP"), ResolveFromHistory("entp", []domain.PersonalityType{"XX", "ENTP", ""}))
}

func TestReconcile(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r := Reconciler{Now: func() time.Time { return fixed }, NewID: func() string { return "entry-1" }}
	scores := domain.NewTraitScores()
	pct := Softmax{}.Normalize(scores)

	entry, ok := r.Reconcile("user-1", "INTJ", scores, pct, nil)
	require.True(t, ok)
	require.Equal(t, "entry-1", entry.ID)
	require.Equal(t, "user-1", entry.UserID)
	require.Equal(t, domain.PersonalityType("INTJ"), entry.Type)
	require.Equal(t, fixed, entry.UpdatedAt)

	prev := domain.PersonalityType("INTJ")
	_, ok = r.Reconcile("user-1", "INTJ", scores, pct, &prev)
	require.False(t, ok)

	prev = "INTP"
	entry, ok = r.Reconcile("user-1", "INTJ", scores, pct, &prev)
	require.True(t, ok)
	require.Equal(t, domain.PersonalityType("INTJ"), entry.Type)
}

func TestReconcilerZeroValueFillsDefaults(t *testing.T) {
	entry, ok := Reconciler{}.Reconcile("u", "ESTJ", nil, nil, nil)
	require.True(t, ok)
	require.NotEmpty(t, entry.ID)
	require.False(t, entry.UpdatedAt.IsZero())
}

func TestScoreQuiz(t *testing.T) {
	res, err := ScoreQuiz([]string{"e", "N", "T", " p "})
	require.NoError(t, err)
	require.Equal(t, domain.PersonalityType("ENTP"), res.Type)
	require.Equal(t, 100.0, res.Percentages[domain.LetterE])
	require.Equal(t, 0.0, res.Percentages[domain.LetterI])

	_, err = ScoreQuiz([]string{"I", "N", "T"})
	require.ErrorIs(t, err, ErrInvalidQuiz)

	// letra válida pero en el eje equivocado
	_, err = ScoreQuiz([]string{"S", "N", "T", "J"})
	require.ErrorIs(t, err, ErrInvalidQuiz)
}

func TestTraitChanges(t *testing.T) {
	latest := domain.TraitPercentages{domain.LetterI: 60, domain.LetterE: 40, domain.LetterS: 52, domain.LetterN: 48}
	previous := domain.TraitPercentages{domain.LetterI: 50, domain.LetterE: 50, domain.LetterS: 50, domain.LetterN: 50}

	changes := TraitChanges(latest, previous)
	require.Equal(t, []TraitChange{
		{Letter: domain.LetterI, Delta: 10},
		{Letter: domain.LetterE, Delta: -10},
	}, changes)

	require.Empty(t, TraitChanges(latest, latest))
}

func TestDescribeCoversAllTypes(t *testing.T) {
	for _, typ := range domain.AllTypes() {
		d, ok := Describe(typ)
		require.True(t, ok, "missing description for %s", typ)
		require.Equal(t, typ, d.Type)
	}
	_, ok := Describe("XXXX")
	require.False(t, ok)
}
