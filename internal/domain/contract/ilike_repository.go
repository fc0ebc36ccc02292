package contract

import (
	"context"
	"errors"

	"github.com/mikiasgoitom/likeledger/internal/domain/entity"
)

// ErrLikeConflict is returned by Create when a like already exists for the
// (user, target, site) tuple.
var ErrLikeConflict = errors.New("like already exists")

// ILikeRepository defines the interface for like ledger persistence.
type ILikeRepository interface {
	// FindLike returns the like matching key, or nil when there is none.
	FindLike(ctx context.Context, key entity.LikeKey) (*entity.Like, error)
	// CreateLike inserts like atomically; ErrLikeConflict if the tuple exists.
	CreateLike(ctx context.Context, like *entity.Like) error
	// DeleteLike removes the like matching key and reports whether one existed.
	DeleteLike(ctx context.Context, key entity.LikeKey) (bool, error)
	CountLikes(ctx context.Context, target entity.TargetRef, siteID string) (int64, error)
	// ListLikes returns likes for target, most recently submitted first.
	ListLikes(ctx context.Context, target entity.TargetRef, siteID string) ([]*entity.Like, error)
}
