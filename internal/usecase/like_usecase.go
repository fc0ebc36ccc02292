package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mikiasgoitom/likeledger/internal/domain/contract"
	"github.com/mikiasgoitom/likeledger/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/likeledger/internal/usecase/contract"
)

// ErrAuthRequired is returned when a mutating call has no authenticated user.
var ErrAuthRequired = errors.New("authentication required")

// createAttempts bounds how often Like retries after losing a create race to
// a concurrent unlike.
const createAttempts = 3

// LikeUsecase handles the business logic for liking and unliking targets.
type LikeUsecase struct {
	likeRepo contract.ILikeRepository
	resolver *TargetResolver
	uuidGen  contract.IUUIDGenerator
	logger   usecasecontract.IAppLogger
	metrics  usecasecontract.ILikeMetrics
	now      func() time.Time
}

var _ usecasecontract.ILikeUseCase = (*LikeUsecase)(nil)

// NewLikeUsecase creates and returns a new LikeUsecase instance.
func NewLikeUsecase(likeRepo contract.ILikeRepository, resolver *TargetResolver, uuidGen contract.IUUIDGenerator, logger usecasecontract.IAppLogger) *LikeUsecase {
	return &LikeUsecase{
		likeRepo: likeRepo,
		resolver: resolver,
		uuidGen:  uuidGen,
		logger:   logger,
		now:      time.Now,
	}
}

// SetMetrics attaches a metrics recorder.
func (u *LikeUsecase) SetMetrics(metrics usecasecontract.ILikeMetrics) {
	u.metrics = metrics
}

// Like records that userID likes target on siteID. Liking twice returns the
// existing record unchanged.
func (u *LikeUsecase) Like(ctx context.Context, userID string, target any, siteID, userURL string) (*entity.Like, error) {
	if userID == "" {
		u.incToggle("like", "unauthenticated")
		return nil, ErrAuthRequired
	}
	ref, _, err := u.resolver.Resolve(target)
	if err != nil {
		u.incToggle("like", "unresolved")
		return nil, err
	}
	key := entity.LikeKey{UserID: userID, Target: ref, SiteID: siteID}

	for attempt := 0; attempt < createAttempts; attempt++ {
		existing, err := u.findLike(ctx, key)
		if err != nil {
			u.incToggle("like", "error")
			return nil, fmt.Errorf("failed to retrieve existing like: %w", err)
		}
		if existing != nil {
			u.incToggle("like", "existing")
			return existing, nil
		}

		like := &entity.Like{
			ID:          u.uuidGen.NewUUID(),
			TargetType:  ref.TypeTag,
			TargetKey:   ref.PrimaryKey,
			SiteID:      siteID,
			UserID:      userID,
			UserURL:     userURL,
			SubmittedAt: u.now().UTC().Truncate(time.Millisecond),
		}
		err = u.createLike(ctx, like)
		if err == nil {
			u.incToggle("like", "created")
			return like, nil
		}
		if !errors.Is(err, contract.ErrLikeConflict) {
			u.incToggle("like", "error")
			return nil, fmt.Errorf("failed to create like: %w", err)
		}
		// A concurrent request created the same like; read it back.
		u.logger.Debugf("like conflict for user %s on %s site %s, re-reading", userID, ref, siteID)
	}
	u.incToggle("like", "error")
	return nil, fmt.Errorf("failed to create like for %s after %d attempts", ref, createAttempts)
}

// Unlike removes userID's like of target on siteID. It reports whether a like
// was removed; unliking something not liked is not an error.
func (u *LikeUsecase) Unlike(ctx context.Context, userID string, target any, siteID string) (bool, error) {
	if userID == "" {
		u.incToggle("unlike", "unauthenticated")
		return false, ErrAuthRequired
	}
	ref, _, err := u.resolver.Resolve(target)
	if err != nil {
		u.incToggle("unlike", "unresolved")
		return false, err
	}

	start := time.Now()
	removed, err := u.likeRepo.DeleteLike(ctx, entity.LikeKey{UserID: userID, Target: ref, SiteID: siteID})
	u.observe("delete", start)
	if err != nil {
		u.incToggle("unlike", "error")
		return false, fmt.Errorf("failed to delete like: %w", err)
	}
	if removed {
		u.incToggle("unlike", "removed")
	} else {
		u.incToggle("unlike", "absent")
	}
	return removed, nil
}

// Count returns the number of likes of target on siteID, or 0 when the target
// cannot be resolved.
func (u *LikeUsecase) Count(ctx context.Context, target any, siteID string) int64 {
	ref, _, err := u.resolver.Resolve(target)
	if err != nil {
		u.logger.Debugf("count: %v", err)
		return 0
	}
	start := time.Now()
	count, err := u.likeRepo.CountLikes(ctx, ref, siteID)
	u.observe("count", start)
	if err != nil {
		u.logger.Errorf("failed to count likes for %s on site %s: %v", ref, siteID, err)
		return 0
	}
	return count
}

// List returns the likes of target on siteID, newest first. It returns an
// empty slice when the target cannot be resolved.
func (u *LikeUsecase) List(ctx context.Context, target any, siteID string) []*entity.Like {
	ref, _, err := u.resolver.Resolve(target)
	if err != nil {
		u.logger.Debugf("list: %v", err)
		return []*entity.Like{}
	}
	start := time.Now()
	likes, err := u.likeRepo.ListLikes(ctx, ref, siteID)
	u.observe("list", start)
	if err != nil {
		u.logger.Errorf("failed to list likes for %s on site %s: %v", ref, siteID, err)
		return []*entity.Like{}
	}
	if likes == nil {
		likes = []*entity.Like{}
	}
	return likes
}

// HasLiked reports whether userID likes target on siteID. Anonymous callers
// and unresolvable targets yield false.
func (u *LikeUsecase) HasLiked(ctx context.Context, userID string, target any, siteID string) bool {
	if userID == "" {
		return false
	}
	ref, _, err := u.resolver.Resolve(target)
	if err != nil {
		u.logger.Debugf("has liked: %v", err)
		return false
	}
	like, err := u.findLike(ctx, entity.LikeKey{UserID: userID, Target: ref, SiteID: siteID})
	if err != nil {
		u.logger.Errorf("failed to look up like of %s by %s on site %s: %v", ref, userID, siteID, err)
		return false
	}
	return like != nil
}

func (u *LikeUsecase) findLike(ctx context.Context, key entity.LikeKey) (*entity.Like, error) {
	start := time.Now()
	defer u.observe("find", start)
	return u.likeRepo.FindLike(ctx, key)
}

func (u *LikeUsecase) createLike(ctx context.Context, like *entity.Like) error {
	start := time.Now()
	defer u.observe("create", start)
	return u.likeRepo.CreateLike(ctx, like)
}

func (u *LikeUsecase) incToggle(action, outcome string) {
	if u.metrics != nil {
		u.metrics.IncToggle(action, outcome)
	}
}

func (u *LikeUsecase) observe(operation string, start time.Time) {
	if u.metrics != nil {
		u.metrics.ObserveLedgerCall(operation, time.Since(start).Seconds())
	}
}
