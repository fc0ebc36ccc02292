package entity

import (
	"time"
)

// Like records that a user liked a target object on a site.
type Like struct {
	ID          string    `bson:"_id" json:"id" gorm:"primaryKey;type:varchar(36)"`
	TargetType  string    `bson:"target_type" json:"target_type" gorm:"type:varchar(100);not null;uniqueIndex:idx_like_tuple,priority:2;index:idx_like_target,priority:1"`
	TargetKey   string    `bson:"target_key" json:"target_key" gorm:"type:varchar(255);not null;uniqueIndex:idx_like_tuple,priority:3;index:idx_like_target,priority:2"`
	SiteID      string    `bson:"site_id" json:"site_id" gorm:"type:varchar(64);not null;uniqueIndex:idx_like_tuple,priority:4;index:idx_like_target,priority:3"`
	UserID      string    `bson:"user_id" json:"user_id" gorm:"type:varchar(64);not null;uniqueIndex:idx_like_tuple,priority:1"`
	UserURL     string    `bson:"user_url,omitempty" json:"user_url,omitempty" gorm:"type:varchar(200)"`
	SubmittedAt time.Time `bson:"submitted_at" json:"submitted_at" gorm:"not null;index"`
}

// TableName overrides the table name used by GORM.
func (Like) TableName() string {
	return "like_system_likes"
}

// Key returns the uniqueness tuple of the like.
func (l *Like) Key() LikeKey {
	return LikeKey{
		UserID: l.UserID,
		Target: TargetRef{TypeTag: l.TargetType, PrimaryKey: l.TargetKey},
		SiteID: l.SiteID,
	}
}

// LikeKey identifies at most one like: who liked what, on which site.
type LikeKey struct {
	UserID string
	Target TargetRef
	SiteID string
}
