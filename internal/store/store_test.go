package store

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/starford/burnote/internal/apperr"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	f, err := os.CreateTemp("", "burnote-store-*.db")
	require.NoError(t, err)
	f.Close()
	t.Cleanup(func() {
		os.Remove(f.Name())
		os.Remove(f.Name() + "-wal")
		os.Remove(f.Name() + "-shm")
	})

	db, err := Open(f.Name())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSchemaCreation(t *testing.T) {
	db := testDB(t)
	n, err := db.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSaveAndList(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)

	id, err := db.Save(ctx, SaveParams{Content: "hello", Owner: "tenant-a"})
	require.NoError(t, err)
	assert.Positive(t, id)

	notes, err := db.List(ctx, "tenant-a")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, id, notes[0].ID)
	assert.Equal(t, "hello", notes[0].Content)
	assert.False(t, notes[0].IsShare)
	assert.Nil(t, notes[0].PublicID)
	require.NotNil(t, notes[0].Owner)
	assert.Equal(t, "tenant-a", *notes[0].Owner)
	assert.False(t, notes[0].CreatedAt.IsZero())
}

func TestSaveEmptyContent(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)

	_, err := db.Save(ctx, SaveParams{Content: ""})
	require.NoError(t, err)

	notes, err := db.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "", notes[0].Content)
}

func TestListOrderedNewestFirst(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)

	for _, c := range []string{"one", "two", "three", "four"} {
		_, err := db.Save(ctx, SaveParams{Content: c, Owner: "t"})
		require.NoError(t, err)
	}

	notes, err := db.List(ctx, "t")
	require.NoError(t, err)
	require.Len(t, notes, 4)
	for i := 1; i < len(notes); i++ {
		assert.Greater(t, notes[i-1].ID, notes[i].ID)
	}
	assert.Equal(t, "four", notes[0].Content)
}

func TestListExcludesShares(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)

	_, err := db.Save(ctx, SaveParams{Content: "private", Owner: "t"})
	require.NoError(t, err)
	_, err = db.Save(ctx, SaveParams{Content: "shared", IsShare: true, PublicID: "tok", Owner: "t"})
	require.NoError(t, err)

	notes, err := db.List(ctx, "t")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "private", notes[0].Content)
}

func TestListEmptyIsNotNil(t *testing.T) {
	notes, err := testDB(t).List(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, notes)
	assert.Empty(t, notes)
}

func TestTenantIsolation(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)

	idA, err := db.Save(ctx, SaveParams{Content: "a's note", Owner: "k1"})
	require.NoError(t, err)

	notes, err := db.List(ctx, "k2")
	require.NoError(t, err)
	assert.Empty(t, notes)

	// Deleting as another tenant leaves the note untouched.
	require.NoError(t, db.Delete(ctx, idA, "k2"))
	notes, err = db.List(ctx, "k1")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, idA, notes[0].ID)

	require.NoError(t, db.Delete(ctx, idA, "k1"))
	notes, err = db.List(ctx, "k1")
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)

	assert.NoError(t, db.Delete(ctx, 424242, "t"))
	assert.NoError(t, db.Delete(ctx, 424242, ""))
}

func TestDeleteDoesNotRemoveShares(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)

	id, err := db.Save(ctx, SaveParams{Content: "secret", IsShare: true, PublicID: "tok"})
	require.NoError(t, err)
	require.NoError(t, db.Delete(ctx, id, ""))

	content, err := db.ReadAndBurn(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "secret", content)
}

func TestReadAndBurn(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)

	_, err := db.Save(ctx, SaveParams{Content: "secret", IsShare: true, PublicID: "tok123"})
	require.NoError(t, err)

	content, err := db.ReadAndBurn(ctx, "tok123")
	require.NoError(t, err)
	assert.Equal(t, "secret", content)

	_, err = db.ReadAndBurn(ctx, "tok123")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	n, err := db.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestReadAndBurn_Unknown(t *testing.T) {
	_, err := testDB(t).ReadAndBurn(context.Background(), "missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestReadAndBurn_IgnoresOwnership(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)

	_, err := db.Save(ctx, SaveParams{Content: "for anyone", IsShare: true, PublicID: "cap", Owner: "k1"})
	require.NoError(t, err)

	content, err := db.ReadAndBurn(ctx, "cap")
	require.NoError(t, err)
	assert.Equal(t, "for anyone", content)
}

func TestReadAndBurn_Concurrent(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)

	_, err := db.Save(ctx, SaveParams{Content: "once", IsShare: true, PublicID: "race"})
	require.NoError(t, err)

	const readers = 16
	var delivered, notFound atomic.Int32
	var g errgroup.Group
	for range readers {
		g.Go(func() error {
			content, err := db.ReadAndBurn(ctx, "race")
			switch {
			case err == nil:
				if content != "once" {
					return errors.New("unexpected content: " + content)
				}
				delivered.Add(1)
			case errors.Is(err, apperr.ErrNotFound):
				notFound.Add(1)
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.EqualValues(t, 1, delivered.Load())
	assert.EqualValues(t, readers-1, notFound.Load())

	n, err := db.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSaveDuplicatePublicID(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)

	_, err := db.Save(ctx, SaveParams{Content: "a", IsShare: true, PublicID: "dup"})
	require.NoError(t, err)
	_, err = db.Save(ctx, SaveParams{Content: "b", IsShare: true, PublicID: "dup"})
	assert.ErrorIs(t, err, apperr.ErrAlreadyExists)

	// Once burned, the token may be reused.
	_, err = db.ReadAndBurn(ctx, "dup")
	require.NoError(t, err)
	_, err = db.Save(ctx, SaveParams{Content: "c", IsShare: true, PublicID: "dup"})
	assert.NoError(t, err)
}

func TestSavePrivateDropsPublicID(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)

	_, err := db.Save(ctx, SaveParams{Content: "p", PublicID: "ignored"})
	require.NoError(t, err)

	notes, err := db.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Nil(t, notes[0].PublicID)

	_, err = db.ReadAndBurn(ctx, "ignored")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
