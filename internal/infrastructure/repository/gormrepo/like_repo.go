package gormrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mikiasgoitom/likeledger/internal/domain/contract"
	"github.com/mikiasgoitom/likeledger/internal/domain/entity"
)

// LikeRepository implements contract.ILikeRepository on PostgreSQL or MySQL
// through GORM.
type LikeRepository struct {
	db *gorm.DB
}

var _ contract.ILikeRepository = (*LikeRepository)(nil)

// NewLikeRepository creates a new LikeRepository. db must be opened with
// TranslateError so duplicate keys surface as gorm.ErrDuplicatedKey.
func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// Migrate creates or updates the likes table and its indexes.
func (r *LikeRepository) Migrate() error {
	if err := r.db.AutoMigrate(&entity.Like{}); err != nil {
		return fmt.Errorf("failed to migrate likes: %w", err)
	}
	return nil
}

func (r *LikeRepository) tuple(ctx context.Context, key entity.LikeKey) *gorm.DB {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND target_type = ? AND target_key = ? AND site_id = ?",
			key.UserID, key.Target.TypeTag, key.Target.PrimaryKey, key.SiteID)
}

func (r *LikeRepository) target(ctx context.Context, target entity.TargetRef, siteID string) *gorm.DB {
	return r.db.WithContext(ctx).Model(&entity.Like{}).
		Where("target_type = ? AND target_key = ? AND site_id = ?", target.TypeTag, target.PrimaryKey, siteID)
}

// FindLike retrieves the like for the tuple, or nil if there is none.
func (r *LikeRepository) FindLike(ctx context.Context, key entity.LikeKey) (*entity.Like, error) {
	var like entity.Like
	if err := r.tuple(ctx, key).Take(&like).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to retrieve like: %w", err)
	}
	return &like, nil
}

// CreateLike inserts a like; the composite unique index rejects duplicates.
func (r *LikeRepository) CreateLike(ctx context.Context, like *entity.Like) error {
	if like.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate like id: %w", err)
		}
		like.ID = id.String()
	}
	if like.SubmittedAt.IsZero() {
		like.SubmittedAt = time.Now().UTC().Truncate(time.Millisecond)
	}
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return contract.ErrLikeConflict
		}
		return fmt.Errorf("failed to create like: %w", err)
	}
	return nil
}

// DeleteLike removes the like for the tuple.
func (r *LikeRepository) DeleteLike(ctx context.Context, key entity.LikeKey) (bool, error) {
	res := r.tuple(ctx, key).Delete(&entity.Like{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete like: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// CountLikes counts the likes of a target on a site.
func (r *LikeRepository) CountLikes(ctx context.Context, target entity.TargetRef, siteID string) (int64, error) {
	var count int64
	if err := r.target(ctx, target, siteID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}

// ListLikes lists the likes of a target on a site, newest first.
func (r *LikeRepository) ListLikes(ctx context.Context, target entity.TargetRef, siteID string) ([]*entity.Like, error) {
	likes := []*entity.Like{}
	if err := r.target(ctx, target, siteID).
		Order("submitted_at DESC").
		Order("id DESC").
		Find(&likes).Error; err != nil {
		return nil, fmt.Errorf("failed to list likes: %w", err)
	}
	return likes, nil
}
