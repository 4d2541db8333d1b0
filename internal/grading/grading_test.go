package grading

import (
	"context"
	"errors"
	"testing"

	"github.com/abhisek/gamecompletion/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockGradeRepo implements store.GradeRepo for grading tests.
type mockGradeRepo struct {
	items  map[int64]*store.GradeItem // by game ID
	grades map[[2]int64]*store.Grade  // by item ID, user ID
	err    error
	nextID int64
}

func newMockGradeRepo() *mockGradeRepo {
	return &mockGradeRepo{
		items:  make(map[int64]*store.GradeItem),
		grades: make(map[[2]int64]*store.Grade),
	}
}

func (m *mockGradeRepo) UpsertItem(_ context.Context, item *store.GradeItem) error {
	if existing, ok := m.items[item.GameID]; ok {
		item.ID = existing.ID
	} else {
		m.nextID++
		item.ID = m.nextID
	}
	cp := *item
	m.items[item.GameID] = &cp
	return nil
}

func (m *mockGradeRepo) ItemForGame(_ context.Context, gameID int64) (*store.GradeItem, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.items[gameID], nil
}

func (m *mockGradeRepo) UpsertGrade(_ context.Context, g *store.Grade) error {
	cp := *g
	m.grades[[2]int64{g.ItemID, g.UserID}] = &cp
	return nil
}

func (m *mockGradeRepo) GradeFor(_ context.Context, itemID, userID int64) (*store.Grade, error) {
	return m.grades[[2]int64{itemID, userID}], nil
}

func ptr(v float64) *float64 { return &v }

func TestIsPassed(t *testing.T) {
	item := store.GradeItem{GradeMax: 100, GradePass: 60}

	tests := []struct {
		name       string
		item       store.GradeItem
		final      *float64
		wantPassed bool
		wantOK     bool
	}{
		{"below threshold", item, ptr(40), false, true},
		{"at threshold", item, ptr(60), true, true},
		{"above threshold", item, ptr(80), true, true},
		{"no final grade", item, nil, false, false},
		{"no pass threshold", store.GradeItem{GradeMax: 100}, ptr(100), false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			passed, ok := IsPassed(tt.item, store.Grade{FinalGrade: tt.final})
			assert.Equal(t, tt.wantPassed, passed)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestNilRecordNeverPasses(t *testing.T) {
	var r *Record
	assert.False(t, r.Passed())
}

func TestBound(t *testing.T) {
	item := store.GradeItem{GradeMin: 0, GradeMax: 100}
	assert.Equal(t, 0.0, Bound(item, -5))
	assert.Equal(t, 55.5, Bound(item, 55.5))
	assert.Equal(t, 100.0, Bound(item, 140))
}

func TestValidateItem(t *testing.T) {
	assert.NoError(t, ValidateItem(store.GradeItem{GradeMax: 100, GradePass: 60}))
	assert.Error(t, ValidateItem(store.GradeItem{GradeMin: 10, GradeMax: 10}))
	assert.Error(t, ValidateItem(store.GradeItem{GradeMax: 100, GradePass: 120}))
	assert.Error(t, ValidateItem(store.GradeItem{GradeMax: 100, GradePass: -1}))
}

func TestLookup(t *testing.T) {
	ctx := context.Background()
	repo := newMockGradeRepo()
	svc := NewService(repo)

	rec, err := svc.Lookup(ctx, 1, 7)
	require.NoError(t, err)
	assert.Nil(t, rec, "no grade item")

	require.NoError(t, svc.EnsureItem(ctx, &store.GradeItem{GameID: 1, GradeMax: 100, GradePass: 60}))

	rec, err = svc.Lookup(ctx, 1, 7)
	require.NoError(t, err)
	assert.Nil(t, rec, "no grade")

	_, err = svc.SetGrade(ctx, 1, 7, 40)
	require.NoError(t, err)
	rec, err = svc.Lookup(ctx, 1, 7)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.False(t, rec.Passed())

	_, err = svc.SetGrade(ctx, 1, 7, 80)
	require.NoError(t, err)
	rec, err = svc.Lookup(ctx, 1, 7)
	require.NoError(t, err)
	assert.True(t, rec.Passed())
}

func TestSetGradeClampsFinalGrade(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMockGradeRepo())
	require.NoError(t, svc.EnsureItem(ctx, &store.GradeItem{GameID: 3, GradeMax: 10, GradePass: 5}))

	rec, err := svc.SetGrade(ctx, 3, 1, 25)
	require.NoError(t, err)
	assert.Equal(t, 25.0, *rec.Grade.RawGrade)
	assert.Equal(t, 10.0, *rec.Grade.FinalGrade)
}

func TestSetGradeWithoutItem(t *testing.T) {
	svc := NewService(newMockGradeRepo())
	_, err := svc.SetGrade(context.Background(), 99, 1, 50)
	assert.ErrorIs(t, err, ErrNoGradeItem)
}

func TestLookupPropagatesRepoError(t *testing.T) {
	repo := newMockGradeRepo()
	repo.err = errors.New("connection reset")
	svc := NewService(repo)

	_, err := svc.Lookup(context.Background(), 1, 1)
	assert.ErrorIs(t, err, repo.err)
}
