package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	pgvector "github.com/pgvector/pgvector-go"
	"go.uber.org/zap"

	"persona-match/internal/compatibility"
	"persona-match/internal/domain"
	"persona-match/internal/repository"
)

// PairScore es la vista de detalle de compatibilidad entre dos usuarios.
type PairScore struct {
	ViewerID     string   `json:"viewer_id"`
	TargetID     string   `json:"target_id"`
	Score        float64  `json:"score"`
	RankingScore *float64 `json:"ranking_score,omitempty"`
	Cached       bool     `json:"cached"`
}

// CompatibilityService expone el puntaje pareado y el ranking de recomendaciones.
type CompatibilityService struct {
	profiles      repository.ProfileRepository
	compat        repository.CompatibilityRepository
	scorer        *compatibility.Scorer
	cache         CompatibilityCache
	limit         int
	candidatePool int
	workers       int
	now           func() time.Time
	logger        *zap.Logger
}

func NewCompatibilityService(
	profiles repository.ProfileRepository,
	compat repository.CompatibilityRepository,
	scorer *compatibility.Scorer,
	cache CompatibilityCache,
	limit int,
	candidatePool int,
	workers int,
	logger *zap.Logger,
) *CompatibilityService {
	if limit <= 0 {
		limit = 5
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CompatibilityService{
		profiles:      profiles,
		compat:        compat,
		scorer:        scorer,
		cache:         cache,
		limit:         limit,
		candidatePool: candidatePool,
		workers:       workers,
		now:           func() time.Time { return time.Now().UTC() },
		logger:        logger,
	}
}

// Score devuelve el puntaje combinado viewer -> target en [0,100], redondeado a un decimal.
// Incluye el puntaje de ranking guardado si existe.
func (s *CompatibilityService) Score(ctx context.Context, viewerID, targetID string) (PairScore, error) {
	viewerID = strings.TrimSpace(viewerID)
	targetID = strings.TrimSpace(targetID)
	if viewerID == targetID {
		return PairScore{}, ErrSelfCompatibility
	}
	out := PairScore{ViewerID: viewerID, TargetID: targetID}

	var (
		raw    float64
		hit    bool
		ticket CacheTicket
	)
	if s.cache != nil {
		raw, ticket, hit = s.cache.Get(ctx, viewerID, targetID)
	}
	if !hit {
		viewer, err := s.getProfile(ctx, viewerID)
		if err != nil {
			return PairScore{}, err
		}
		target, err := s.getProfile(ctx, targetID)
		if err != nil {
			return PairScore{}, err
		}
		vt, tt := normalizeType(viewer.Type), normalizeType(target.Type)
		aff, known := s.scorer.Affinity(vt, tt)
		if !known {
			s.logger.Warn("affinity unknown, using 0",
				zap.String("viewer_type", vt.String()),
				zap.String("target_type", tt.String()),
			)
		}
		raw = compatibility.BlendedScore(aff, s.scorer.InterestSimilarity(viewer.Interests(), target.Interests()))
		if s.cache != nil {
			s.cache.Set(ctx, ticket, raw)
		}
	}
	out.Score = math.Round(raw*10) / 10
	out.Cached = hit

	rec, err := s.compat.Get(ctx, viewerID, targetID)
	switch {
	case err == nil:
		score := rec.Score
		out.RankingScore = &score
	case errors.Is(err, repository.ErrNotFound):
	default:
		s.logger.Warn("stored compatibility lookup failed", zap.String("viewer_id", viewerID), zap.Error(err))
	}
	return out, nil
}

// Recommend puntúa al resto de usuarios con el puntaje de ranking, reemplaza las filas
// guardadas del viewer y devuelve los primeros N.
func (s *CompatibilityService) Recommend(ctx context.Context, viewerID string) ([]compatibility.Ranked, error) {
	viewer, err := s.getProfile(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	others, err := s.candidates(ctx, viewer)
	if err != nil {
		return nil, err
	}

	candidates := make([]compatibility.Candidate, 0, len(others))
	for _, p := range others {
		candidates = append(candidates, compatibility.Candidate{
			ID:        p.ID,
			Type:      normalizeType(p.Type),
			Interests: p.Interests(),
		})
	}
	self := compatibility.Candidate{ID: viewer.ID, Type: normalizeType(viewer.Type), Interests: viewer.Interests()}

	ranked, err := s.scorer.Rank(ctx, self, candidates, s.workers)
	if err != nil {
		return nil, fmt.Errorf("rank candidates for user %s: %w", viewerID, err)
	}

	unknown := 0
	now := s.now()
	records := make([]domain.CompatibilityRecord, 0, len(ranked))
	for _, r := range ranked {
		if !r.KnownAffinity {
			unknown++
		}
		records = append(records, domain.CompatibilityRecord{
			UserID1:    viewer.ID,
			UserID2:    r.UserID,
			Score:      r.Score,
			ComputedAt: now,
		})
	}
	if unknown > 0 {
		s.logger.Warn("candidates without known affinity",
			zap.String("viewer_id", viewer.ID),
			zap.String("viewer_type", self.Type.String()),
			zap.Int("count", unknown),
		)
	}
	if err := s.compat.ReplaceForUser(ctx, viewer.ID, records); err != nil {
		s.logger.Warn("store compatibility failed", zap.String("viewer_id", viewer.ID), zap.Error(err))
	}

	s.logger.Info("recommendations ranked",
		zap.String("viewer_id", viewer.ID),
		zap.Int("candidates", len(ranked)),
		zap.Int("limit", s.limit),
	)
	return compatibility.Top(ranked, s.limit), nil
}

func (s *CompatibilityService) candidates(ctx context.Context, viewer domain.Profile) ([]domain.Profile, error) {
	vocab := s.scorer.Vocabulary()
	if s.candidatePool > 0 && vocab.Len() > 0 && viewer.Interests().Len() > 0 {
		vec := pgvector.NewVector(vocab.Vector(viewer.Interests()))
		others, err := s.profiles.NearestByInterests(ctx, viewer.ID, vec, s.candidatePool)
		if err == nil {
			return others, nil
		}
		s.logger.Warn("nearest candidates failed, listing all", zap.String("viewer_id", viewer.ID), zap.Error(err))
	}
	others, err := s.profiles.ListOthers(ctx, viewer.ID)
	if err != nil {
		return nil, fmt.Errorf("list candidates for user %s: %w", viewer.ID, err)
	}
	return others, nil
}

func (s *CompatibilityService) getProfile(ctx context.Context, userID string) (domain.Profile, error) {
	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Profile{}, ErrProfileNotFound
		}
		return domain.Profile{}, fmt.Errorf("get profile %s: %w", userID, err)
	}
	return profile, nil
}

func normalizeType(t domain.PersonalityType) domain.PersonalityType {
	return domain.PersonalityType(strings.ToUpper(strings.TrimSpace(string(t))))
}
