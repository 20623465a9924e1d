package service

import (
	"context"
	"errors"
	"fmt"

	pgvector "github.com/pgvector/pgvector-go"
	"go.uber.org/zap"

	"persona-match/internal/compatibility"
	"persona-match/internal/domain"
	"persona-match/internal/personality"
	"persona-match/internal/repository"
)

// InferenceResult es el resultado de recalcular la personalidad desde intereses y etiquetas.
type InferenceResult struct {
	UserID      string                          `json:"user_id"`
	Type        domain.PersonalityType          `json:"type"`
	Scores      domain.TraitScores              `json:"scores"`
	Percentages domain.TraitPercentages         `json:"percentages"`
	Recorded    bool                            `json:"recorded"`
	Entry       *domain.PersonalityHistoryEntry `json:"entry,omitempty"`
}

// RefreshResult indica el tipo de perfil tras la votación sobre el historial.
type RefreshResult struct {
	UserID   string                 `json:"user_id"`
	Previous domain.PersonalityType `json:"previous"`
	Type     domain.PersonalityType `json:"type"`
	Changed  bool                   `json:"changed"`
}

// Insights compara las dos entradas más recientes del historial.
type Insights struct {
	Latest      *domain.PersonalityHistoryEntry `json:"latest,omitempty"`
	Previous    *domain.PersonalityHistoryEntry `json:"previous,omitempty"`
	Changes     []personality.TraitChange       `json:"changes"`
	Description *domain.TypeDescription         `json:"description,omitempty"`
}

// PersonalityService orquesta Trait Scorer, Normalizer, Type Resolver y History Reconciler
// sobre los stores de perfiles, publicaciones e historial.
type PersonalityService struct {
	profiles     repository.ProfileRepository
	posts        repository.PostRepository
	history      repository.HistoryRepository
	scorer       *personality.Scorer
	normalizer   personality.Normalizer
	reconciler   personality.Reconciler
	vocab        compatibility.Vocabulary
	locker       UserLocker
	cache        CompatibilityCache
	historyLimit int
	logger       *zap.Logger
}

func NewPersonalityService(
	profiles repository.ProfileRepository,
	posts repository.PostRepository,
	history repository.HistoryRepository,
	normalizer personality.Normalizer,
	vocab compatibility.Vocabulary,
	locker UserLocker,
	cache CompatibilityCache,
	historyLimit int,
	logger *zap.Logger,
) *PersonalityService {
	if normalizer == nil {
		normalizer = personality.Softmax{}
	}
	if locker == nil {
		locker = NewMemoryUserLocker(0)
	}
	if historyLimit <= 0 {
		historyLimit = 50
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PersonalityService{
		profiles:     profiles,
		posts:        posts,
		history:      history,
		scorer:       personality.NewScorer(nil),
		normalizer:   normalizer,
		reconciler:   personality.NewReconciler(),
		vocab:        vocab,
		locker:       locker,
		cache:        cache,
		historyLimit: historyLimit,
		logger:       logger,
	}
}

// WithReconciler reemplaza reloj y generador de ids (tests y CLI).
func (s *PersonalityService) WithReconciler(r personality.Reconciler) *PersonalityService {
	s.reconciler = r
	return s
}

// Recompute puntúa intereses del perfil más etiquetas de publicaciones, resuelve el tipo
// y agrega una entrada al historial si el tipo difiere del último registrado.
// No modifica el tipo del perfil; eso lo hace RefreshProfileType.
func (s *PersonalityService) Recompute(ctx context.Context, userID string) (InferenceResult, error) {
	unlock, err := s.locker.Lock(ctx, userID)
	if err != nil {
		return InferenceResult{}, err
	}
	defer unlock()

	profile, err := s.getProfile(ctx, userID)
	if err != nil {
		return InferenceResult{}, err
	}
	tags, err := s.posts.TagsByUser(ctx, userID)
	if err != nil {
		return InferenceResult{}, fmt.Errorf("list post tags for user %s: %w", userID, err)
	}

	interests := domain.NewInterestSet(profile.SelectedInterests, tags)
	scores := s.scorer.Score(interests)
	newType := personality.Resolve(scores)
	pct := s.normalizer.Normalize(scores)

	s.storeInterestVector(ctx, userID, profile.Interests())

	var latest *domain.PersonalityType
	recent, err := s.history.Latest(ctx, userID, 1)
	if err != nil {
		return InferenceResult{}, fmt.Errorf("latest history for user %s: %w", userID, err)
	}
	if len(recent) > 0 {
		latest = &recent[0].Type
	}

	res := InferenceResult{
		UserID:      userID,
		Type:        newType,
		Scores:      scores,
		Percentages: pct,
	}
	entry, ok := s.reconciler.Reconcile(userID, newType, scores, pct, latest)
	if !ok {
		s.logger.Debug("personality unchanged, history not appended",
			zap.String("user_id", userID),
			zap.String("type", newType.String()),
		)
		return res, nil
	}
	if err := s.history.Append(ctx, entry); err != nil {
		return InferenceResult{}, fmt.Errorf("append history for user %s: %w", userID, err)
	}
	res.Recorded = true
	res.Entry = &entry

	s.logger.Info("personality history appended",
		zap.String("user_id", userID),
		zap.String("type", newType.String()),
		zap.Int("interests", interests.Len()),
	)
	return res, nil
}

// storeInterestVector solo alimenta el prefiltro de candidatos; un fallo no aborta el recálculo.
func (s *PersonalityService) storeInterestVector(ctx context.Context, userID string, interests domain.InterestSet) {
	if s.vocab.Len() == 0 {
		return
	}
	vec := pgvector.NewVector(s.vocab.Vector(interests))
	if err := s.profiles.UpdateInterestVector(ctx, userID, vec); err != nil {
		s.logger.Warn("interest vector update failed", zap.String("user_id", userID), zap.Error(err))
		return
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, userID)
	}
}

// RefreshProfileType vota por eje entre el tipo actual del perfil y el historial reciente,
// y guarda el ganador si cambió. Sin ninguna observación válida el perfil no se toca.
func (s *PersonalityService) RefreshProfileType(ctx context.Context, userID string) (RefreshResult, error) {
	unlock, err := s.locker.Lock(ctx, userID)
	if err != nil {
		return RefreshResult{}, err
	}
	defer unlock()

	profile, err := s.getProfile(ctx, userID)
	if err != nil {
		return RefreshResult{}, err
	}
	entries, err := s.history.Latest(ctx, userID, s.historyLimit)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("history for user %s: %w", userID, err)
	}

	current := normalizeType(profile.Type)
	res := RefreshResult{UserID: userID, Previous: current, Type: current}

	past := make([]domain.PersonalityType, 0, len(entries))
	for _, e := range entries {
		past = append(past, e.Type)
	}
	if !current.Valid() && !anyValid(past) {
		s.logger.Debug("no personality observations to reconcile", zap.String("user_id", userID))
		return res, nil
	}

	voted := personality.ResolveFromHistory(current, past)
	if voted == current {
		return res, nil
	}
	if err := s.profiles.UpdateType(ctx, userID, voted); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return RefreshResult{}, ErrProfileNotFound
		}
		return RefreshResult{}, fmt.Errorf("update profile type for user %s: %w", userID, err)
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, userID)
	}
	res.Type = voted
	res.Changed = true

	s.logger.Info("profile type refreshed",
		zap.String("user_id", userID),
		zap.String("previous", current.String()),
		zap.String("type", voted.String()),
		zap.Int("history_entries", len(past)),
	)
	return res, nil
}

// Sync es el flujo completo ante un cambio de intereses: recalcula y luego reconcilia el perfil.
func (s *PersonalityService) Sync(ctx context.Context, userID string) (InferenceResult, RefreshResult, error) {
	inf, err := s.Recompute(ctx, userID)
	if err != nil {
		return InferenceResult{}, RefreshResult{}, err
	}
	ref, err := s.RefreshProfileType(ctx, userID)
	if err != nil {
		return inf, RefreshResult{}, err
	}
	return inf, ref, nil
}

// SubmitQuiz resuelve el tipo desde el cuestionario y lo guarda directamente en el perfil.
func (s *PersonalityService) SubmitQuiz(ctx context.Context, userID string, answers []string) (personality.QuizResult, error) {
	result, err := personality.ScoreQuiz(answers)
	if err != nil {
		return personality.QuizResult{}, err
	}

	unlock, err := s.locker.Lock(ctx, userID)
	if err != nil {
		return personality.QuizResult{}, err
	}
	defer unlock()

	if err := s.profiles.UpdateType(ctx, userID, result.Type); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return personality.QuizResult{}, ErrProfileNotFound
		}
		return personality.QuizResult{}, fmt.Errorf("update profile type for user %s: %w", userID, err)
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, userID)
	}
	s.logger.Info("quiz type stored", zap.String("user_id", userID), zap.String("type", result.Type.String()))
	return result, nil
}

// History devuelve el historial más reciente primero, acotado a [1, historyLimit].
func (s *PersonalityService) History(ctx context.Context, userID string, limit int) ([]domain.PersonalityHistoryEntry, error) {
	if limit <= 0 || limit > s.historyLimit {
		limit = s.historyLimit
	}
	entries, err := s.history.Latest(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("history for user %s: %w", userID, err)
	}
	if entries == nil {
		entries = []domain.PersonalityHistoryEntry{}
	}
	return entries, nil
}

func (s *PersonalityService) Insights(ctx context.Context, userID string) (Insights, error) {
	entries, err := s.history.Latest(ctx, userID, 2)
	if err != nil {
		return Insights{}, fmt.Errorf("history for user %s: %w", userID, err)
	}
	out := Insights{Changes: []personality.TraitChange{}}
	if len(entries) == 0 {
		return out, nil
	}
	out.Latest = &entries[0]
	if desc, ok := personality.Describe(entries[0].Type); ok {
		out.Description = &desc
	}
	if len(entries) < 2 {
		return out, nil
	}
	out.Previous = &entries[1]
	if changes := personality.TraitChanges(entries[0].Percentages, entries[1].Percentages); changes != nil {
		out.Changes = changes
	}
	return out, nil
}

func (s *PersonalityService) getProfile(ctx context.Context, userID string) (domain.Profile, error) {
	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Profile{}, ErrProfileNotFound
		}
		return domain.Profile{}, fmt.Errorf("get profile %s: %w", userID, err)
	}
	return profile, nil
}

func anyValid(types []domain.PersonalityType) bool {
	for _, t := range types {
		if normalizeType(t).Valid() {
			return true
		}
	}
	return false
}
