// Package ledgertest holds behaviour tests shared by every like ledger backend.
package ledgertest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikiasgoitom/likeledger/internal/domain/contract"
	"github.com/mikiasgoitom/likeledger/internal/domain/entity"
)

var (
	book42 = entity.TargetRef{TypeTag: "library.book", PrimaryKey: "42"}
	book7  = entity.TargetRef{TypeTag: "library.book", PrimaryKey: "7"}
	base   = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
)

func newLike(id, user string, target entity.TargetRef, site string, at time.Time) *entity.Like {
	return &entity.Like{
		ID:          id,
		TargetType:  target.TypeTag,
		TargetKey:   target.PrimaryKey,
		SiteID:      site,
		UserID:      user,
		UserURL:     "https://" + user + ".example.com",
		SubmittedAt: at,
	}
}

// Run exercises a ledger created fresh by newRepo for each subtest.
func Run(t *testing.T, newRepo func(t *testing.T) contract.ILikeRepository) {
	t.Run("CreateFindDelete", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)
		like := newLike("0190a3c4-0000-7000-8000-000000000001", "alice", book42, "1", base)
		key := like.Key()

		found, err := repo.FindLike(ctx, key)
		require.NoError(t, err)
		assert.Nil(t, found)

		require.NoError(t, repo.CreateLike(ctx, like))

		found, err = repo.FindLike(ctx, key)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, like.ID, found.ID)
		assert.Equal(t, "alice", found.UserID)
		assert.Equal(t, "library.book", found.TargetType)
		assert.Equal(t, "42", found.TargetKey)
		assert.Equal(t, "1", found.SiteID)
		assert.Equal(t, "https://alice.example.com", found.UserURL)
		assert.True(t, base.Equal(found.SubmittedAt), "submitted at %v", found.SubmittedAt)

		removed, err := repo.DeleteLike(ctx, key)
		require.NoError(t, err)
		assert.True(t, removed)

		removed, err = repo.DeleteLike(ctx, key)
		require.NoError(t, err)
		assert.False(t, removed)

		found, err = repo.FindLike(ctx, key)
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("DuplicateTupleConflicts", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)
		require.NoError(t, repo.CreateLike(ctx, newLike("0190a3c4-0000-7000-8000-000000000001", "alice", book42, "1", base)))

		err := repo.CreateLike(ctx, newLike("0190a3c4-0000-7000-8000-000000000002", "alice", book42, "1", base.Add(time.Second)))
		assert.ErrorIs(t, err, contract.ErrLikeConflict)

		count, err := repo.CountLikes(ctx, book42, "1")
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("FillsIDAndSubmittedAt", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)
		like := &entity.Like{TargetType: "library.book", TargetKey: "42", SiteID: "1", UserID: "alice"}
		require.NoError(t, repo.CreateLike(ctx, like))
		id, err := uuid.Parse(like.ID)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(7), id.Version())
		assert.False(t, like.SubmittedAt.IsZero())

		later := &entity.Like{TargetType: "library.book", TargetKey: "42", SiteID: "1", UserID: "bob", SubmittedAt: like.SubmittedAt}
		require.NoError(t, repo.CreateLike(ctx, later))
		assert.Greater(t, later.ID, like.ID)

		likes, err := repo.ListLikes(ctx, book42, "1")
		require.NoError(t, err)
		require.Len(t, likes, 2)
		assert.Equal(t, "bob", likes[0].UserID)
	})

	t.Run("CountAndListArePartitioned", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)
		require.NoError(t, repo.CreateLike(ctx, newLike("0190a3c4-0000-7000-8000-000000000001", "alice", book42, "1", base)))
		require.NoError(t, repo.CreateLike(ctx, newLike("0190a3c4-0000-7000-8000-000000000002", "bob", book42, "1", base.Add(time.Minute))))
		require.NoError(t, repo.CreateLike(ctx, newLike("0190a3c4-0000-7000-8000-000000000003", "alice", book42, "2", base)))
		require.NoError(t, repo.CreateLike(ctx, newLike("0190a3c4-0000-7000-8000-000000000004", "alice", book7, "1", base)))

		count, err := repo.CountLikes(ctx, book42, "1")
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)

		count, err = repo.CountLikes(ctx, book42, "2")
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		count, err = repo.CountLikes(ctx, entity.TargetRef{TypeTag: "library.book", PrimaryKey: "99"}, "1")
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)

		likes, err := repo.ListLikes(ctx, book42, "1")
		require.NoError(t, err)
		require.Len(t, likes, 2)
		assert.Equal(t, "bob", likes[0].UserID)
		assert.Equal(t, "alice", likes[1].UserID)

		likes, err = repo.ListLikes(ctx, book42, "3")
		require.NoError(t, err)
		assert.Empty(t, likes)
	})

	t.Run("ListBreaksTiesByID", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)
		require.NoError(t, repo.CreateLike(ctx, newLike("0190a3c4-0000-7000-8000-00000000000a", "alice", book42, "1", base)))
		require.NoError(t, repo.CreateLike(ctx, newLike("0190a3c4-0000-7000-8000-00000000000c", "carol", book42, "1", base)))
		require.NoError(t, repo.CreateLike(ctx, newLike("0190a3c4-0000-7000-8000-00000000000b", "bob", book42, "1", base)))

		likes, err := repo.ListLikes(ctx, book42, "1")
		require.NoError(t, err)
		require.Len(t, likes, 3)
		assert.Equal(t, []string{"carol", "bob", "alice"}, []string{likes[0].UserID, likes[1].UserID, likes[2].UserID})
	})

	t.Run("ConcurrentCreatesOneWinner", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)
		const n = 16
		var wg sync.WaitGroup
		errs := make([]error, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				id := fmt.Sprintf("0190a3c4-0000-7000-8000-%012d", i+1)
				errs[i] = repo.CreateLike(ctx, newLike(id, "alice", book42, "1", base))
			}(i)
		}
		wg.Wait()

		created := 0
		for _, err := range errs {
			if err == nil {
				created++
				continue
			}
			assert.ErrorIs(t, err, contract.ErrLikeConflict)
		}
		assert.Equal(t, 1, created)

		count, err := repo.CountLikes(ctx, book42, "1")
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}
