package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/vaultboot/internal/models"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRecordAssignsIDAndTime(t *testing.T) {
	db := testDB(t)
	r, err := db.Record(context.Background(), models.VaultRecord{
		Name: "Brain", Path: "/tmp/Brain", Template: "pkm", Mode: models.ModeTemplate,
	})
	require.NoError(t, err)

	_, err = uuid.Parse(r.ID)
	assert.NoError(t, err)
	assert.False(t, r.CreatedAt.IsZero())
	assert.Equal(t, []string{}, r.Plugins)
}

func TestListNewestFirst(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, name := range []string{"first", "second", "third"} {
		_, err := db.Record(ctx, models.VaultRecord{
			Name:      name,
			Path:      "/vaults/" + name,
			Template:  "minimal",
			Mode:      models.ModeAdopt,
			Source:    "https://example.com/" + name + ".git",
			Plugins:   []string{"dataview", "templater-obsidian"},
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	all, err := db.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "third", all[0].Name)
	assert.Equal(t, "first", all[2].Name)
	assert.Equal(t, []string{"dataview", "templater-obsidian"}, all[0].Plugins)
	assert.Equal(t, models.ModeAdopt, all[0].Mode)
	assert.True(t, all[0].CreatedAt.Equal(base.Add(2*time.Hour)))

	two, err := db.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, two, 2)
}

func TestListEmpty(t *testing.T) {
	got, err := testDB(t).List(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRecordDuplicateID(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	r := models.VaultRecord{ID: "fixed", Name: "a", Path: "/a", Template: "minimal", Mode: models.ModeTemplate}
	_, err := db.Record(ctx, r)
	require.NoError(t, err)
	_, err = db.Record(ctx, r)
	assert.Error(t, err)
}

func TestRecordStoresPluginList(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	_, err := db.Record(ctx, models.VaultRecord{Name: "none", Path: "/none", Template: "gtd", Mode: models.ModeTemplate})
	require.NoError(t, err)

	all, err := db.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, []string{}, all[0].Plugins)
}
