package usecasecontract

import (
	"context"

	"github.com/mikiasgoitom/likeledger/internal/domain/entity"
)

// ProjectionKind selects what a display helper renders for a target.
type ProjectionKind string

const (
	ProjectionCount      ProjectionKind = "count"
	ProjectionList       ProjectionKind = "list"
	ProjectionLiked      ProjectionKind = "liked"
	ProjectionLikeLink   ProjectionKind = "like_link"
	ProjectionUnlikeLink ProjectionKind = "unlike_link"
)

// IsLink reports whether the kind is served by link generation.
func (k ProjectionKind) IsLink() bool {
	return k == ProjectionLikeLink || k == ProjectionUnlikeLink
}

// Projection is the display value computed for a target.
type Projection struct {
	Kind  ProjectionKind `json:"kind"`
	Count int64          `json:"count,omitempty"`
	Likes []*entity.Like `json:"likes,omitempty"`
	Liked bool           `json:"liked,omitempty"`
	Link  string         `json:"link,omitempty"`
}

// IDisplayUseCase renders like data for templates and client components.
type IDisplayUseCase interface {
	Project(ctx context.Context, kind ProjectionKind, userID string, target any, siteID string) (Projection, error)
	Link(kind ProjectionKind, target any) (string, error)
	RedirectPath(like *entity.Like) string
	ContentObjectURL(typeID int, primaryKey string) string
}
