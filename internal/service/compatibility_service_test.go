package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"go.uber.org/zap"

	"persona-match/internal/compatibility"
	"persona-match/internal/domain"
)

func newTestCompatibilityService(t *testing.T, profiles *mockProfileRepo, compat *mockCompatRepo, pool int) *CompatibilityService {
	t.Helper()
	table, err := compatibility.DefaultAffinityTable()
	if err != nil {
		t.Fatalf("default affinity table: %v", err)
	}
	scorer := compatibility.NewScorer(table, compatibility.DefaultVocabulary)
	return NewCompatibilityService(profiles, compat, scorer, NewMemoryCompatibilityCache(time.Minute), 3, pool, 2, zap.NewNop())
}

func recommendationProfiles() *mockProfileRepo {
	return newMockProfileRepo(
		domain.Profile{ID: "viewer", Type: "INFJ", SelectedInterests: []string{"philosophy", "poetry"}},
		domain.Profile{ID: "a", Type: "ENFP", SelectedInterests: []string{"philosophy"}},
		domain.Profile{ID: "b", Type: "ISTJ", SelectedInterests: []string{"Philosophy", "poetry "}},
		domain.Profile{ID: "c", SelectedInterests: []string{"philosophy", "poetry"}},
		domain.Profile{ID: "d", Type: "infp"},
	)
}

func TestCompatibilityScore_IsDirectional(t *testing.T) {
	ctx := context.Background()
	svc := newTestCompatibilityService(t, recommendationProfiles(), newMockCompatRepo(), 0)

	forward, err := svc.Score(ctx, "viewer", "b")
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if forward.Score != 65 {
		t.Fatalf("expected INFJ->ISTJ 65, got %v", forward.Score)
	}
	if forward.RankingScore != nil {
		t.Fatalf("expected no stored ranking score yet")
	}

	backward, err := svc.Score(ctx, "b", "viewer")
	if err != nil {
		t.Fatalf("score reverse: %v", err)
	}
	if backward.Score != 85 {
		t.Fatalf("expected ISTJ->INFJ 85, got %v", backward.Score)
	}
}

func TestCompatibilityScore_RoundsToOneDecimal(t *testing.T) {
	profiles := newMockProfileRepo(
		domain.Profile{ID: "x", Type: "INFJ", SelectedInterests: []string{"philosophy", "poetry", "literature"}},
		domain.Profile{ID: "y", Type: "ENFP", SelectedInterests: []string{"philosophy"}},
	)
	svc := newTestCompatibilityService(t, profiles, newMockCompatRepo(), 0)

	res, err := svc.Score(context.Background(), "x", "y")
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if res.Score != math.Round(res.Score*10)/10 {
		t.Fatalf("expected one decimal, got %v", res.Score)
	}
	if res.Score < 0 || res.Score > 100 {
		t.Fatalf("score out of range: %v", res.Score)
	}
}

func TestCompatibilityScore_Errors(t *testing.T) {
	svc := newTestCompatibilityService(t, recommendationProfiles(), newMockCompatRepo(), 0)

	if _, err := svc.Score(context.Background(), "viewer", " viewer"); !errors.Is(err, ErrSelfCompatibility) {
		t.Fatalf("expected ErrSelfCompatibility, got %v", err)
	}
	if _, err := svc.Score(context.Background(), "viewer", "ghost"); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestCompatibilityScore_UsesCacheUntilInvalidated(t *testing.T) {
	ctx := context.Background()
	profiles := recommendationProfiles()
	svc := newTestCompatibilityService(t, profiles, newMockCompatRepo(), 0)

	first, err := svc.Score(ctx, "viewer", "a")
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if first.Cached {
		t.Fatalf("first call must miss the cache")
	}
	second, err := svc.Score(ctx, "viewer", "a")
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if !second.Cached || second.Score != first.Score {
		t.Fatalf("expected cached score %v, got %+v", first.Score, second)
	}

	svc.cache.Invalidate(ctx, "a")
	third, err := svc.Score(ctx, "viewer", "a")
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if third.Cached {
		t.Fatalf("expected miss after invalidation")
	}
}

func TestRecommend_RanksStoresAndTruncates(t *testing.T) {
	ctx := context.Background()
	compat := newMockCompatRepo()
	svc := newTestCompatibilityService(t, recommendationProfiles(), compat, 0)

	top, err := svc.Recommend(ctx, "viewer")
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	want := []string{"a", "b", "d"}
	if len(top) != len(want) {
		t.Fatalf("expected %d recommendations, got %d", len(want), len(top))
	}
	for i, id := range want {
		if top[i].UserID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, top[i].UserID)
		}
	}
	if math.Abs(top[0].Score-0.8) > 1e-9 {
		t.Fatalf("expected a to score 0.8, got %v", top[0].Score)
	}
	if len(top[1].SharedInterests) != 2 {
		t.Fatalf("expected shared interests for b, got %v", top[1].SharedInterests)
	}

	stored := compat.rows["viewer"]
	if len(stored) != 4 {
		t.Fatalf("expected every candidate stored, got %d", len(stored))
	}
	for _, r := range stored {
		if r.UserID1 != "viewer" || r.UserID2 == "viewer" {
			t.Fatalf("unexpected stored record: %+v", r)
		}
	}

	pair, err := svc.Score(ctx, "viewer", "b")
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if pair.RankingScore == nil || math.Abs(*pair.RankingScore-0.58) > 1e-9 {
		t.Fatalf("expected stored ranking score 0.58, got %v", pair.RankingScore)
	}
	if pair.Score == *pair.RankingScore {
		t.Fatalf("blended and ranking scores must stay distinct")
	}
}

func TestRecommend_StoreFailureStillReturns(t *testing.T) {
	compat := newMockCompatRepo()
	compat.replErr = errors.New("db down")
	svc := newTestCompatibilityService(t, recommendationProfiles(), compat, 0)

	top, err := svc.Recommend(context.Background(), "viewer")
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("expected 3 recommendations, got %d", len(top))
	}
}

func TestRecommend_CandidatePool(t *testing.T) {
	profiles := recommendationProfiles()
	svc := newTestCompatibilityService(t, profiles, newMockCompatRepo(), 2)

	top, err := svc.Recommend(context.Background(), "viewer")
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if profiles.nearestCalls != 1 {
		t.Fatalf("expected nearest lookup, got %d calls", profiles.nearestCalls)
	}
	if len(top) != 2 {
		t.Fatalf("expected pool-bounded result, got %d", len(top))
	}

	profiles.nearestErr = errors.New("no pgvector")
	top, err = svc.Recommend(context.Background(), "viewer")
	if err != nil {
		t.Fatalf("recommend fallback: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("expected full listing on fallback, got %d", len(top))
	}
}

func TestRecommend_UnknownViewer(t *testing.T) {
	svc := newTestCompatibilityService(t, recommendationProfiles(), newMockCompatRepo(), 0)

	if _, err := svc.Recommend(context.Background(), "ghost"); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}
