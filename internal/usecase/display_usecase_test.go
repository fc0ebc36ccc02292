package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikiasgoitom/likeledger/internal/domain/entity"
	"github.com/mikiasgoitom/likeledger/internal/infrastructure/repository/memory"
	usecasecontract "github.com/mikiasgoitom/likeledger/internal/usecase/contract"
)

func newTestDisplayUsecase(t *testing.T) (*DisplayUsecase, *LikeUsecase) {
	t.Helper()
	reg := newTestRegistry(t)
	resolver := NewTargetResolver(reg)
	likes := NewLikeUsecase(memory.NewLikeRepository(), resolver, &seqIDs{}, nopLogger{})
	likes.now = steppingClock()
	return NewDisplayUsecase(likes, resolver, reg, "/api/v1/"), likes
}

type seqIDs struct{ n int }

func (s *seqIDs) NewUUID() string {
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

func TestDisplayUsecase_ReadProjections(t *testing.T) {
	ctx := context.Background()
	d, likes := newTestDisplayUsecase(t)
	_, err := likes.Like(ctx, "alice", book42, "1", "")
	require.NoError(t, err)

	p, err := d.Project(ctx, usecasecontract.ProjectionCount, "", book42, "1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.Count)

	p, err = d.Project(ctx, usecasecontract.ProjectionList, "", book42, "1")
	require.NoError(t, err)
	require.Len(t, p.Likes, 1)
	assert.Equal(t, "id-1", p.Likes[0].ID)

	p, err = d.Project(ctx, usecasecontract.ProjectionLiked, "alice", book42, "1")
	require.NoError(t, err)
	assert.True(t, p.Liked)

	p, err = d.Project(ctx, usecasecontract.ProjectionLiked, "bob", book42, "1")
	require.NoError(t, err)
	assert.False(t, p.Liked)

	// Read projections degrade for unresolvable targets.
	p, err = d.Project(ctx, usecasecontract.ProjectionCount, "", entity.TargetRef{TypeTag: "shop.item", PrimaryKey: "1"}, "1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), p.Count)
}

func TestDisplayUsecase_Links(t *testing.T) {
	ctx := context.Background()
	d, _ := newTestDisplayUsecase(t)

	link, err := d.Link(usecasecontract.ProjectionLikeLink, book{ID: "a b"})
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/likes/library.book/a%20b/like", link)

	p, err := d.Project(ctx, usecasecontract.ProjectionUnlikeLink, "", entity.TargetRef{TypeTag: "book", PrimaryKey: "42"}, "1")
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/likes/library.book/42/unlike", p.Link)

	_, err = d.Link(usecasecontract.ProjectionLikeLink, entity.TargetRef{TypeTag: "shop.item", PrimaryKey: "1"})
	assert.ErrorIs(t, err, ErrResolution)

	_, err = d.Link(usecasecontract.ProjectionCount, book42)
	assert.ErrorIs(t, err, ErrUnknownProjection)

	_, err = d.Project(ctx, usecasecontract.ProjectionKind("badge"), "", book42, "1")
	assert.ErrorIs(t, err, ErrUnknownProjection)
}

func TestDisplayUsecase_Redirects(t *testing.T) {
	d, _ := newTestDisplayUsecase(t)

	like := &entity.Like{TargetType: "library.book", TargetKey: "42"}
	assert.Equal(t, "/api/v1/likes/redirect/1/42", d.RedirectPath(like))
	assert.Equal(t, "/", d.RedirectPath(&entity.Like{TargetType: "shop.item", TargetKey: "1"}))

	assert.Equal(t, "/books/42", d.ContentObjectURL(1, "42"))
	// blog.post has no URL template.
	assert.Equal(t, "/", d.ContentObjectURL(2, "42"))
	assert.Equal(t, "/", d.ContentObjectURL(99, "42"))
	assert.Equal(t, "/", d.ContentObjectURL(1, ""))
}

func TestParseTypeID(t *testing.T) {
	id, err := ParseTypeID("3")
	require.NoError(t, err)
	assert.Equal(t, 3, id)

	for _, raw := range []string{"", "0", "-1", "abc"} {
		_, err := ParseTypeID(raw)
		assert.ErrorIs(t, err, ErrResolution, raw)
	}
}
