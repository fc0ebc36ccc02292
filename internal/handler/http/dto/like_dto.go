package dto

import (
	"time"

	"github.com/mikiasgoitom/likeledger/internal/domain/entity"
)

// TargetURIRequest binds the target of a like route.
type TargetURIRequest struct {
	Type string `uri:"type" binding:"required,typetag"`
	PK   string `uri:"pk" binding:"required,objectpk"`
}

// Ref returns the target reference named by the request.
func (r TargetURIRequest) Ref() entity.TargetRef {
	return entity.TargetRef{TypeTag: r.Type, PrimaryKey: r.PK}
}

// LikeActionRequest carries the optional form or query values of like and unlike.
type LikeActionRequest struct {
	Next    string `form:"next"`
	UserURL string `form:"user_url" binding:"omitempty,url,max=200"`
}

// LikeResponse is the DTO for a like.
type LikeResponse struct {
	ID               string `json:"id"`
	TargetType       string `json:"target_type"`
	TargetKey        string `json:"target_key"`
	SiteID           string `json:"site_id"`
	UserID           string `json:"user_id"`
	UserURL          string `json:"user_url,omitempty"`
	SubmittedAt      string `json:"submitted_at"`
	ContentObjectURL string `json:"content_object_url"`
}

// ToLikeResponse converts an entity.Like to a LikeResponse. redirectPath is
// the path that leads to the liked object.
func ToLikeResponse(like *entity.Like, redirectPath string) LikeResponse {
	return LikeResponse{
		ID:               like.ID,
		TargetType:       like.TargetType,
		TargetKey:        like.TargetKey,
		SiteID:           like.SiteID,
		UserID:           like.UserID,
		UserURL:          like.UserURL,
		SubmittedAt:      like.SubmittedAt.UTC().Format(time.RFC3339Nano),
		ContentObjectURL: redirectPath,
	}
}

// LikeActionResponse is returned by the like route.
type LikeActionResponse struct {
	Success bool         `json:"success"`
	Like    LikeResponse `json:"like"`
	Next    string       `json:"next,omitempty"`
}

// UnlikeActionResponse is returned by the unlike route.
type UnlikeActionResponse struct {
	Success bool   `json:"success"`
	Removed bool   `json:"removed"`
	Next    string `json:"next,omitempty"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

type ListResponse struct {
	Likes []LikeResponse `json:"likes"`
}

type LikedResponse struct {
	Liked bool `json:"liked"`
}

type LinksResponse struct {
	LikeLink   string `json:"like_link"`
	UnlikeLink string `json:"unlike_link"`
}
