package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agendafeed/internal/domain"
)

// fakeSelectionRepo is an in-memory SelectionRepository for tests.
type fakeSelectionRepo struct {
	values  map[string]string
	sets    int
	getErr  error
	setErr  error // if set, Set returns this error
	setKeys []string
}

func newFakeSelectionRepo() *fakeSelectionRepo {
	return &fakeSelectionRepo{values: make(map[string]string)}
}

func (f *fakeSelectionRepo) Get(ctx context.Context, clientID, key string) (string, bool, error) {
	if f.getErr != nil {
		return "", false, f.getErr
	}
	v, ok := f.values[clientID+"|"+key]
	return v, ok, nil
}

func (f *fakeSelectionRepo) Set(ctx context.Context, clientID, key, value string) error {
	f.sets++
	f.setKeys = append(f.setKeys, key)
	if f.setErr != nil {
		return f.setErr
	}
	f.values[clientID+"|"+key] = value
	return nil
}

func TestSelectionMemory_Load(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		stored   map[string]string
		want     domain.FilterSelection
		wantSets int
	}{
		{
			name:   "nothing stored",
			stored: map[string]string{},
			want:   domain.FilterSelection{Day: "", AccessTier: domain.TierAll},
		},
		{
			name: "stored values",
			stored: map[string]string{
				"c1|" + domain.SelectionKeyDay:  "2025-05-14",
				"c1|" + domain.SelectionKeyTier: "Gold",
			},
			want: domain.FilterSelection{Day: "2025-05-14", AccessTier: "Gold"},
		},
		{
			name: "empty tier reads as all",
			stored: map[string]string{
				"c1|" + domain.SelectionKeyTier: "",
			},
			want: domain.FilterSelection{Day: "", AccessTier: domain.TierAll},
		},
		{
			name: "legacy token migrated",
			stored: map[string]string{
				"c1|" + domain.SelectionKeyDay:  "2025-05-13",
				"c1|" + domain.SelectionKeyTier: "All Access",
			},
			want:     domain.FilterSelection{Day: "2025-05-13", AccessTier: domain.TierAll},
			wantSets: 1,
		},
		{
			name: "other client ignored",
			stored: map[string]string{
				"c2|" + domain.SelectionKeyTier: "Gold",
			},
			want: domain.FilterSelection{Day: "", AccessTier: domain.TierAll},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeSelectionRepo()
			for k, v := range tt.stored {
				repo.values[k] = v
			}
			mem := NewSelectionMemory(nil, repo)

			got, err := mem.Load(ctx, "c1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantSets, repo.sets)
		})
	}
}

func TestSelectionMemory_MigrationWrittenBackOnce(t *testing.T) {
	ctx := context.Background()
	repo := newFakeSelectionRepo()
	repo.values["c1|"+domain.SelectionKeyTier] = "All Access"
	mem := NewSelectionMemory(nil, repo)

	_, err := mem.Load(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, domain.TierAll, repo.values["c1|"+domain.SelectionKeyTier])

	_, err = mem.Load(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.sets)
}

func TestSelectionMemory_MigrationWriteFailureStillLoads(t *testing.T) {
	repo := newFakeSelectionRepo()
	repo.values["c1|"+domain.SelectionKeyTier] = "All Access"
	repo.setErr = errors.New("read-only")

	got, err := NewSelectionMemory(nil, repo).Load(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, domain.TierAll, got.AccessTier)
}

func TestSelectionMemory_LoadError(t *testing.T) {
	repo := newFakeSelectionRepo()
	repo.getErr = errors.New("disk gone")

	got, err := NewSelectionMemory(nil, repo).Load(context.Background(), "c1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load selected day")
	assert.Equal(t, domain.DefaultFilterSelection(), got)
}

func TestSelectionMemory_Save(t *testing.T) {
	ctx := context.Background()
	repo := newFakeSelectionRepo()
	mem := NewSelectionMemory(nil, repo)

	require.NoError(t, mem.Save(ctx, "c1", domain.FilterSelection{Day: "2025-05-14", AccessTier: ""}))
	assert.Equal(t, "2025-05-14", repo.values["c1|"+domain.SelectionKeyDay])
	assert.Equal(t, domain.TierAll, repo.values["c1|"+domain.SelectionKeyTier])
	assert.Equal(t, []string{domain.SelectionKeyDay, domain.SelectionKeyTier}, repo.setKeys)

	got, err := mem.Load(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, domain.FilterSelection{Day: "2025-05-14", AccessTier: domain.TierAll}, got)
}

func TestSelectionMemory_SaveError(t *testing.T) {
	repo := newFakeSelectionRepo()
	repo.setErr = errors.New("disk full")

	err := NewSelectionMemory(nil, repo).Save(context.Background(), "c1", domain.DefaultFilterSelection())
	require.Error(t, err)
	assert.ErrorIs(t, err, repo.setErr)
	assert.Contains(t, err.Error(), "save selected day")
}

func TestSelectionMemory_SaveSingleKey(t *testing.T) {
	ctx := context.Background()
	repo := newFakeSelectionRepo()
	mem := NewSelectionMemory(nil, repo)

	require.NoError(t, mem.SaveDay(ctx, "c1", "2025-05-14"))
	assert.Equal(t, []string{domain.SelectionKeyDay}, repo.setKeys)
	_, ok := repo.values["c1|"+domain.SelectionKeyTier]
	assert.False(t, ok)

	repo.setKeys = nil
	require.NoError(t, mem.SaveTier(ctx, "c1", ""))
	assert.Equal(t, []string{domain.SelectionKeyTier}, repo.setKeys)
	assert.Equal(t, domain.TierAll, repo.values["c1|"+domain.SelectionKeyTier])
	assert.Equal(t, "2025-05-14", repo.values["c1|"+domain.SelectionKeyDay])
}
