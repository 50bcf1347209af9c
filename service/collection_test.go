package service

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/kevinaaaquil/bookshelf/backend/models"
	"github.com/kevinaaaquil/bookshelf/backend/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCollection(t *testing.T) (*CollectionService, string) {
	t.Helper()
	st := store.NewMemory()
	acc, err := st.CreateAccount(context.Background(), &models.Account{Username: "alice", Email: "alice@x.com"})
	require.NoError(t, err)
	return &CollectionService{Store: st}, acc.ID
}

func TestSaveBook_Idempotent(t *testing.T) {
	svc, id := newTestCollection(t)
	ctx := context.Background()
	b1 := models.BookEntry{BookID: "B1", Title: "Dune"}

	once, err := svc.SaveBook(ctx, id, b1)
	require.NoError(t, err)
	twice, err := svc.SaveBook(ctx, id, b1)
	require.NoError(t, err)

	assert.Equal(t, once.SavedBooks, twice.SavedBooks)
	require.Len(t, twice.SavedBooks, 1)
	assert.Equal(t, "B1", twice.SavedBooks[0].BookID)
	assert.Equal(t, []string{models.NoAuthorPlaceholder}, twice.SavedBooks[0].Authors)
}

func TestSaveBook_Validation(t *testing.T) {
	svc, id := newTestCollection(t)

	for _, e := range []models.BookEntry{
		{Title: "No id"},
		{BookID: "B1"},
		{BookID: "B1", Title: "  "},
		{BookID: "B1", Title: "Dune", Link: "ftp://x"},
	} {
		_, err := svc.SaveBook(context.Background(), id, e)
		assert.ErrorIs(t, err, models.ErrValidation)
	}
	acc, err := svc.Store.AccountByID(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, acc.SavedBooks)
}

func TestRemoveBook_MissingIsNoop(t *testing.T) {
	svc, id := newTestCollection(t)

	acc, err := svc.RemoveBook(context.Background(), id, "B2")
	require.NoError(t, err)
	assert.Empty(t, acc.SavedBooks)

	_, err = svc.RemoveBook(context.Background(), id, " ")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestCollection_UnknownAccount(t *testing.T) {
	svc, _ := newTestCollection(t)

	_, err := svc.SaveBook(context.Background(), "missing", models.BookEntry{BookID: "B1", Title: "Dune"})
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = svc.RemoveBook(context.Background(), "missing", "B1")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCollection_NoDuplicatesUnderRandomOps(t *testing.T) {
	svc, id := newTestCollection(t)
	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))
	want := map[string]bool{}

	for i := 0; i < 500; i++ {
		bookID := fmt.Sprintf("B%d", rng.Intn(8))
		var acc *models.Account
		var err error
		if rng.Intn(2) == 0 {
			acc, err = svc.SaveBook(ctx, id, models.BookEntry{BookID: bookID, Title: "T" + bookID})
			want[bookID] = true
		} else {
			acc, err = svc.RemoveBook(ctx, id, bookID)
			delete(want, bookID)
		}
		require.NoError(t, err)

		seen := map[string]bool{}
		for _, b := range acc.SavedBooks {
			require.False(t, seen[b.BookID], "duplicate %s", b.BookID)
			seen[b.BookID] = true
		}
		require.Equal(t, want, seen)
	}
}
