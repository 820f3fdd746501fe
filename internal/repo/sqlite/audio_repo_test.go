package sqlite

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestExistsBeforeFirstWrite(t *testing.T) {
	r := NewAudioRepo(setupDB(t))

	exists, err := r.Exists(context.Background())
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestEnsureSchemaIdempotent(t *testing.T) {
	r := NewAudioRepo(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.EnsureSchema(ctx))
	require.NoError(t, r.EnsureSchema(ctx))

	exists, err := r.Exists(ctx)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestAppendCreatesTableAndKeepsOrder(t *testing.T) {
	r := NewAudioRepo(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Append(ctx, "Ann", "audio_ogg/audio_Ann_F1.ogg"))
	require.NoError(t, r.Append(ctx, "Bob", "audio_ogg/audio_Bob_F2.ogg"))
	require.NoError(t, r.Append(ctx, "Ann", "audio_ogg/audio_Ann_F3.ogg"))

	exists, err := r.Exists(ctx)
	require.NoError(t, err)
	assert.True(t, exists)

	paths, err := r.AllPaths(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"audio_ogg/audio_Ann_F1.ogg",
		"audio_ogg/audio_Bob_F2.ogg",
		"audio_ogg/audio_Ann_F3.ogg",
	}, paths)
}

func TestAppendStoresSenderName(t *testing.T) {
	db := setupDB(t)
	r := NewAudioRepo(db)
	ctx := context.Background()

	require.NoError(t, r.Append(ctx, "Ann", "audio_ogg/audio_Ann_F1.ogg"))

	var user, path string
	err := db.QueryRow(`SELECT user_id, audio_path FROM audio_messages`).Scan(&user, &path)
	require.NoError(t, err)
	assert.Equal(t, "Ann", user)
	assert.Equal(t, "audio_ogg/audio_Ann_F1.ogg", path)
}

func TestAllPathsEmptyTable(t *testing.T) {
	r := NewAudioRepo(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.EnsureSchema(ctx))

	paths, err := r.AllPaths(ctx)
	require.NoError(t, err)
	assert.Empty(t, paths)
}
