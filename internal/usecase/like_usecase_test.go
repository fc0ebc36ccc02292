package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikiasgoitom/likeledger/internal/domain/contract"
	"github.com/mikiasgoitom/likeledger/internal/domain/entity"
	"github.com/mikiasgoitom/likeledger/internal/infrastructure/registry"
	"github.com/mikiasgoitom/likeledger/internal/infrastructure/repository/memory"
	"github.com/mikiasgoitom/likeledger/internal/infrastructure/uuidgen"
)

type book struct{ ID string }

func (b book) LikeKey() string { return b.ID }

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}
func (nopLogger) Fatalf(string, ...interface{}) {}

type recordingMetrics struct {
	mu      sync.Mutex
	toggles map[string]int
	calls   map[string]int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{toggles: map[string]int{}, calls: map[string]int{}}
}

func (m *recordingMetrics) IncToggle(action, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.toggles[action+"/"+outcome]++
}

func (m *recordingMetrics) ObserveLedgerCall(operation string, _ float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[operation]++
}

func newTestRegistry(t *testing.T) *registry.TypeRegistry {
	t.Helper()
	reg := registry.NewTypeRegistry()
	_, err := reg.RegisterModel("library.book", "/books/{pk}", book{})
	require.NoError(t, err)
	_, err = reg.Register("blog.post", "")
	require.NoError(t, err)
	return reg
}

// steppingClock returns a clock that advances one second per call.
func steppingClock() func() time.Time {
	var mu sync.Mutex
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(time.Second)
		return now
	}
}

func newTestLikeUsecase(t *testing.T, repo contract.ILikeRepository) *LikeUsecase {
	t.Helper()
	u := NewLikeUsecase(repo, NewTargetResolver(newTestRegistry(t)), uuidgen.NewGenerator(), nopLogger{})
	u.now = steppingClock()
	return u
}

var book42 = entity.TargetRef{TypeTag: "library.book", PrimaryKey: "42"}

func TestLikeUsecase_LikeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	u := newTestLikeUsecase(t, memory.NewLikeRepository())

	first, err := u.Like(ctx, "alice", book42, "1", "https://alice.example.com")
	require.NoError(t, err)
	second, err := u.Like(ctx, "alice", book42, "1", "https://other.example.com")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.SubmittedAt, second.SubmittedAt)
	assert.Equal(t, "https://alice.example.com", second.UserURL)
	assert.Equal(t, int64(1), u.Count(ctx, book42, "1"))
}

func TestLikeUsecase_RoundTrip(t *testing.T) {
	ctx := context.Background()
	u := newTestLikeUsecase(t, memory.NewLikeRepository())

	assert.False(t, u.HasLiked(ctx, "alice", book42, "1"))

	like, err := u.Like(ctx, "alice", book42, "1", "")
	require.NoError(t, err)
	assert.Equal(t, "library.book", like.TargetType)
	assert.Equal(t, "42", like.TargetKey)
	assert.Equal(t, "1", like.SiteID)
	assert.Equal(t, "alice", like.UserID)
	assert.NotEmpty(t, like.ID)
	assert.True(t, u.HasLiked(ctx, "alice", book42, "1"))

	removed, err := u.Unlike(ctx, "alice", book42, "1")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.False(t, u.HasLiked(ctx, "alice", book42, "1"))

	removed, err = u.Unlike(ctx, "alice", book42, "1")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, int64(0), u.Count(ctx, book42, "1"))
}

func TestLikeUsecase_Unauthenticated(t *testing.T) {
	ctx := context.Background()
	u := newTestLikeUsecase(t, memory.NewLikeRepository())

	_, err := u.Like(ctx, "", book42, "1", "")
	assert.ErrorIs(t, err, ErrAuthRequired)
	_, err = u.Unlike(ctx, "", book42, "1")
	assert.ErrorIs(t, err, ErrAuthRequired)
	assert.False(t, u.HasLiked(ctx, "", book42, "1"))
	assert.Equal(t, int64(0), u.Count(ctx, book42, "1"))
}

func TestLikeUsecase_ConcurrentLikesCreateOneRecord(t *testing.T) {
	ctx := context.Background()
	u := newTestLikeUsecase(t, memory.NewLikeRepository())

	const n = 32
	var wg sync.WaitGroup
	ids := make([]string, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			like, err := u.Like(ctx, "alice", book42, "1", "")
			errs[i] = err
			if like != nil {
				ids[i] = like.ID
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i])
	}
	assert.Equal(t, int64(1), u.Count(ctx, book42, "1"))
}

func TestLikeUsecase_SiteIsolation(t *testing.T) {
	ctx := context.Background()
	u := newTestLikeUsecase(t, memory.NewLikeRepository())

	_, err := u.Like(ctx, "alice", book42, "1", "")
	require.NoError(t, err)

	assert.Equal(t, int64(1), u.Count(ctx, book42, "1"))
	assert.Equal(t, int64(0), u.Count(ctx, book42, "2"))
	assert.False(t, u.HasLiked(ctx, "alice", book42, "2"))

	removed, err := u.Unlike(ctx, "alice", book42, "2")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, int64(1), u.Count(ctx, book42, "1"))
}

func TestLikeUsecase_AliceAndBob(t *testing.T) {
	ctx := context.Background()
	u := newTestLikeUsecase(t, memory.NewLikeRepository())

	_, err := u.Like(ctx, "alice", book42, "1", "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.Count(ctx, book42, "1"))
	likes := u.List(ctx, book42, "1")
	require.Len(t, likes, 1)
	assert.Equal(t, "alice", likes[0].UserID)

	_, err = u.Like(ctx, "alice", book42, "1", "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.Count(ctx, book42, "1"))

	_, err = u.Like(ctx, "bob", book42, "1", "")
	require.NoError(t, err)

	assert.Equal(t, int64(2), u.Count(ctx, book42, "1"))
	likes = u.List(ctx, book42, "1")
	require.Len(t, likes, 2)
	assert.Equal(t, "bob", likes[0].UserID)
	assert.Equal(t, "alice", likes[1].UserID)

	_, err = u.Unlike(ctx, "alice", book42, "1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.Count(ctx, book42, "1"))
	assert.False(t, u.HasLiked(ctx, "alice", book42, "1"))
	assert.True(t, u.HasLiked(ctx, "bob", book42, "1"))
	likes = u.List(ctx, book42, "1")
	require.Len(t, likes, 1)
	assert.Equal(t, "bob", likes[0].UserID)
}

func TestLikeUsecase_UnregisteredType(t *testing.T) {
	ctx := context.Background()
	u := newTestLikeUsecase(t, memory.NewLikeRepository())
	unknown := entity.TargetRef{TypeTag: "shop.item", PrimaryKey: "1"}

	assert.Equal(t, int64(0), u.Count(ctx, unknown, "1"))
	assert.Empty(t, u.List(ctx, unknown, "1"))
	assert.NotNil(t, u.List(ctx, unknown, "1"))
	assert.False(t, u.HasLiked(ctx, "alice", unknown, "1"))

	_, err := u.Like(ctx, "alice", unknown, "1", "")
	assert.ErrorIs(t, err, ErrResolution)
	_, err = u.Unlike(ctx, "alice", unknown, "1")
	assert.ErrorIs(t, err, ErrResolution)

	_, err = u.Like(ctx, "alice", entity.TargetRef{TypeTag: "library.book"}, "1", "")
	assert.ErrorIs(t, err, ErrResolution)
}

func TestLikeUsecase_TargetForms(t *testing.T) {
	ctx := context.Background()
	u := newTestLikeUsecase(t, memory.NewLikeRepository())

	byHandle, err := u.Like(ctx, "alice", book{ID: "42"}, "1", "")
	require.NoError(t, err)
	byModel, err := u.Like(ctx, "alice", entity.TargetRef{TypeTag: "Book", PrimaryKey: "42"}, "1", "")
	require.NoError(t, err)
	byPointer, err := u.Like(ctx, "alice", &book{ID: "42"}, "1", "")
	require.NoError(t, err)

	assert.Equal(t, byHandle.ID, byModel.ID)
	assert.Equal(t, byHandle.ID, byPointer.ID)
	assert.Equal(t, "library.book", byHandle.TargetType)

	_, err = u.Like(ctx, "alice", book{}, "1", "")
	assert.ErrorIs(t, err, ErrResolution)
	_, err = u.Like(ctx, "alice", struct{}{}, "1", "")
	assert.ErrorIs(t, err, ErrResolution)
	_, err = u.Like(ctx, "alice", nil, "1", "")
	assert.ErrorIs(t, err, ErrResolution)
}

// racingRepo simulates another request creating the same like between
// FindLike and CreateLike.
type racingRepo struct {
	*memory.LikeRepository
	raced bool
}

func (r *racingRepo) CreateLike(ctx context.Context, like *entity.Like) error {
	if !r.raced {
		r.raced = true
		winner := *like
		winner.ID = "winner"
		if err := r.LikeRepository.CreateLike(ctx, &winner); err != nil {
			return err
		}
	}
	return r.LikeRepository.CreateLike(ctx, like)
}

func TestLikeUsecase_ConflictReturnsExisting(t *testing.T) {
	ctx := context.Background()
	metrics := newRecordingMetrics()
	u := newTestLikeUsecase(t, &racingRepo{LikeRepository: memory.NewLikeRepository()})
	u.SetMetrics(metrics)

	like, err := u.Like(ctx, "alice", book42, "1", "")
	require.NoError(t, err)
	assert.Equal(t, "winner", like.ID)
	assert.Equal(t, 1, metrics.toggles["like/existing"])
	assert.Equal(t, 1, metrics.calls["create"])
	assert.Equal(t, 2, metrics.calls["find"])
}

type failingRepo struct{ err error }

func (r failingRepo) FindLike(context.Context, entity.LikeKey) (*entity.Like, error) {
	return nil, r.err
}
func (r failingRepo) CreateLike(context.Context, *entity.Like) error { return r.err }
func (r failingRepo) DeleteLike(context.Context, entity.LikeKey) (bool, error) {
	return false, r.err
}
func (r failingRepo) CountLikes(context.Context, entity.TargetRef, string) (int64, error) {
	return 0, r.err
}
func (r failingRepo) ListLikes(context.Context, entity.TargetRef, string) ([]*entity.Like, error) {
	return nil, r.err
}

func TestLikeUsecase_StoreFailure(t *testing.T) {
	ctx := context.Background()
	storeErr := errors.New("connection refused")
	metrics := newRecordingMetrics()
	u := newTestLikeUsecase(t, failingRepo{err: storeErr})
	u.SetMetrics(metrics)

	_, err := u.Like(ctx, "alice", book42, "1", "")
	assert.ErrorIs(t, err, storeErr)
	_, err = u.Unlike(ctx, "alice", book42, "1")
	assert.ErrorIs(t, err, storeErr)

	assert.Equal(t, int64(0), u.Count(ctx, book42, "1"))
	assert.Empty(t, u.List(ctx, book42, "1"))
	assert.False(t, u.HasLiked(ctx, "alice", book42, "1"))

	assert.Equal(t, 1, metrics.toggles["like/error"])
	assert.Equal(t, 1, metrics.toggles["unlike/error"])
}

func TestLikeUsecase_MetricsOutcomes(t *testing.T) {
	ctx := context.Background()
	metrics := newRecordingMetrics()
	u := newTestLikeUsecase(t, memory.NewLikeRepository())
	u.SetMetrics(metrics)

	_, _ = u.Like(ctx, "alice", book42, "1", "")
	_, _ = u.Like(ctx, "alice", book42, "1", "")
	_, _ = u.Unlike(ctx, "alice", book42, "1")
	_, _ = u.Unlike(ctx, "alice", book42, "1")
	_, _ = u.Like(ctx, "", book42, "1", "")

	assert.Equal(t, 1, metrics.toggles["like/created"])
	assert.Equal(t, 1, metrics.toggles["like/existing"])
	assert.Equal(t, 1, metrics.toggles["unlike/removed"])
	assert.Equal(t, 1, metrics.toggles["unlike/absent"])
	assert.Equal(t, 1, metrics.toggles["like/unauthenticated"])
}
