package usecasecontract

import (
	"context"

	"github.com/mikiasgoitom/likeledger/internal/domain/entity"
)

// ILikeUseCase is the toggle/query surface of the like ledger.
type ILikeUseCase interface {
	Like(ctx context.Context, userID string, target any, siteID, userURL string) (*entity.Like, error)
	Unlike(ctx context.Context, userID string, target any, siteID string) (bool, error)
	Count(ctx context.Context, target any, siteID string) int64
	List(ctx context.Context, target any, siteID string) []*entity.Like
	HasLiked(ctx context.Context, userID string, target any, siteID string) bool
}
