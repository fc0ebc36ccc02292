package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mikiasgoitom/likeledger/internal/domain/contract"
	"github.com/mikiasgoitom/likeledger/internal/domain/entity"
)

// LikeRepository is an in-process like ledger for development and tests.
type LikeRepository struct {
	mu    sync.RWMutex
	likes map[entity.LikeKey]entity.Like
}

var _ contract.ILikeRepository = (*LikeRepository)(nil)

// NewLikeRepository creates an empty in-memory ledger.
func NewLikeRepository() *LikeRepository {
	return &LikeRepository{likes: make(map[entity.LikeKey]entity.Like)}
}

// FindLike retrieves the like for the tuple, or nil if there is none.
func (r *LikeRepository) FindLike(_ context.Context, key entity.LikeKey) (*entity.Like, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	like, ok := r.likes[key]
	if !ok {
		return nil, nil
	}
	return &like, nil
}

// CreateLike stores a copy of like unless its tuple is taken.
func (r *LikeRepository) CreateLike(_ context.Context, like *entity.Like) error {
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
	key := like.Key()
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.likes[key]; ok {
		return contract.ErrLikeConflict
	}
	r.likes[key] = *like
	return nil
}

// DeleteLike removes the like for the tuple.
func (r *LikeRepository) DeleteLike(_ context.Context, key entity.LikeKey) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.likes[key]; !ok {
		return false, nil
	}
	delete(r.likes, key)
	return true, nil
}

// CountLikes counts the likes of a target on a site.
func (r *LikeRepository) CountLikes(_ context.Context, target entity.TargetRef, siteID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for key := range r.likes {
		if key.Target == target && key.SiteID == siteID {
			n++
		}
	}
	return n, nil
}

// ListLikes lists the likes of a target on a site, newest first.
func (r *LikeRepository) ListLikes(_ context.Context, target entity.TargetRef, siteID string) ([]*entity.Like, error) {
	r.mu.RLock()
	likes := []*entity.Like{}
	for key, like := range r.likes {
		if key.Target == target && key.SiteID == siteID {
			like := like
			likes = append(likes, &like)
		}
	}
	r.mu.RUnlock()

	sort.Slice(likes, func(i, j int) bool {
		if !likes[i].SubmittedAt.Equal(likes[j].SubmittedAt) {
			return likes[i].SubmittedAt.After(likes[j].SubmittedAt)
		}
		return likes[i].ID > likes[j].ID
	})
	return likes, nil
}
