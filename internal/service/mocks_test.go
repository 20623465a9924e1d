package service

import (
	"context"
	"sort"
	"sync"

	pgvector "github.com/pgvector/pgvector-go"

	"persona-match/internal/domain"
	"persona-match/internal/repository"
)

var enfpInterests = []string{
	"socializing", "networking",
	"innovation", "artificial intelligence",
	"volunteering", "caregiving",
	"adventure", "new experiences",
}

type mockProfileRepo struct {
	mu           sync.Mutex
	profiles     map[string]domain.Profile
	vectors      map[string]pgvector.Vector
	typeUpdates  int
	nearestCalls int
	nearestErr   error
}

func newMockProfileRepo(profiles ...domain.Profile) *mockProfileRepo {
	m := &mockProfileRepo{
		profiles: make(map[string]domain.Profile),
		vectors:  make(map[string]pgvector.Vector),
	}
	for _, p := range profiles {
		m.profiles[p.ID] = p
	}
	return m
}

func (m *mockProfileRepo) GetByID(_ context.Context, id string) (domain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[id]
	if !ok {
		return domain.Profile{}, repository.ErrNotFound
	}
	return p, nil
}

func (m *mockProfileRepo) UpdateType(_ context.Context, id string, t domain.PersonalityType) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.Type = t
	m.profiles[id] = p
	m.typeUpdates++
	return nil
}

func (m *mockProfileRepo) UpdateInterestVector(_ context.Context, id string, vec pgvector.Vector) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vectors[id] = vec
	return nil
}

func (m *mockProfileRepo) ListOthers(_ context.Context, excludeID string) ([]domain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Profile
	for id, p := range m.profiles {
		if id != excludeID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockProfileRepo) NearestByInterests(ctx context.Context, excludeID string, _ pgvector.Vector, limit int) ([]domain.Profile, error) {
	m.mu.Lock()
	m.nearestCalls++
	err := m.nearestErr
	m.mu.Unlock()
	if err != nil {
		return nil, err
	}
	out, _ := m.ListOthers(ctx, excludeID)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type mockPostRepo struct {
	mu   sync.Mutex
	tags map[string][]string
}

func (m *mockPostRepo) TagsByUser(_ context.Context, userID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.tags[userID]...), nil
}

type mockHistoryRepo struct {
	mu      sync.Mutex
	entries map[string][]domain.PersonalityHistoryEntry
}

func newMockHistoryRepo() *mockHistoryRepo {
	return &mockHistoryRepo{entries: make(map[string][]domain.PersonalityHistoryEntry)}
}

func (m *mockHistoryRepo) Append(_ context.Context, entry domain.PersonalityHistoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.UserID] = append(m.entries[entry.UserID], entry)
	return nil
}

func (m *mockHistoryRepo) Latest(_ context.Context, userID string, limit int) ([]domain.PersonalityHistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.entries[userID]
	var out []domain.PersonalityHistoryEntry
	for i := len(all) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, all[i])
	}
	return out, nil
}

func (m *mockHistoryRepo) count(userID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries[userID])
}

type mockCompatRepo struct {
	mu      sync.Mutex
	rows    map[string][]domain.CompatibilityRecord
	replErr error
}

func newMockCompatRepo() *mockCompatRepo {
	return &mockCompatRepo{rows: make(map[string][]domain.CompatibilityRecord)}
}

func (m *mockCompatRepo) ReplaceForUser(_ context.Context, userID string, records []domain.CompatibilityRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.replErr != nil {
		return m.replErr
	}
	m.rows[userID] = append([]domain.CompatibilityRecord(nil), records...)
	return nil
}

func (m *mockCompatRepo) Get(_ context.Context, userID1, userID2 string) (domain.CompatibilityRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows[userID1] {
		if r.UserID2 == userID2 {
			return r, nil
		}
	}
	return domain.CompatibilityRecord{}, repository.ErrNotFound
}
