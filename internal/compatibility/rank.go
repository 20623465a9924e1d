package compatibility

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"persona-match/internal/domain"
)

// Candidate es la entrada mínima para puntuar a un usuario.
type Candidate struct {
	ID        string
	Type      domain.PersonalityType
	Interests domain.InterestSet
}

// Ranked es un candidato puntuado contra el viewer.
type Ranked struct {
	UserID          string                 `json:"user_id"`
	Type            domain.PersonalityType `json:"type"`
	Score           float64                `json:"score"`
	AffinityScore   float64                `json:"affinity_score"`
	InterestScore   float64                `json:"interest_score"`
	SharedInterests []string               `json:"shared_interests"`
	KnownAffinity   bool                   `json:"-"`
}

// Rank puntúa todos los candidatos en paralelo (workers <= 0 usa uno por candidato)
// y los ordena por puntaje descendente, con desempate por id.
func (s *Scorer) Rank(ctx context.Context, viewer Candidate, candidates []Candidate, workers int) ([]Ranked, error) {
	out := make([]Ranked, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, c := range candidates {
		i, c := i, c
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = s.rankOne(viewer, c)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].UserID < out[j].UserID
	})
	return out, nil
}

func (s *Scorer) rankOne(viewer, c Candidate) Ranked {
	aff, known := s.Affinity(viewer.Type, c.Type)
	shared := make([]string, 0)
	for _, interest := range c.Interests.Sorted() {
		if viewer.Interests.Has(interest) {
			shared = append(shared, interest)
		}
	}
	return Ranked{
		UserID:          c.ID,
		Type:            c.Type,
		Score:           RankingScore(aff, viewer.Interests, c.Interests),
		AffinityScore:   aff,
		InterestScore:   SharedInterestRatio(viewer.Interests, c.Interests),
		SharedInterests: shared,
		KnownAffinity:   known,
	}
}

// Top devuelve los primeros n elementos; n <= 0 devuelve todos.
func Top(ranked []Ranked, n int) []Ranked {
	if n <= 0 || n >= len(ranked) {
		return ranked
	}
	return ranked[:n]
}
