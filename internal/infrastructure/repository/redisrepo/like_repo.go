package redisrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mikiasgoitom/likeledger/internal/domain/contract"
	"github.com/mikiasgoitom/likeledger/internal/domain/entity"
)

// createScript claims the user's slot on the target and, only if it was
// free, indexes and stores the record.
var createScript = redis.NewScript(`
if redis.call('HSETNX', KEYS[1], ARGV[1], ARGV[2]) == 0 then
	return 0
end
redis.call('ZADD', KEYS[2], ARGV[3], ARGV[2])
redis.call('HSET', KEYS[3], ARGV[2], ARGV[4])
return 1
`)

var deleteScript = redis.NewScript(`
local id = redis.call('HGET', KEYS[1], ARGV[1])
if not id then
	return 0
end
redis.call('HDEL', KEYS[1], ARGV[1])
redis.call('ZREM', KEYS[2], id)
redis.call('HDEL', KEYS[3], id)
return 1
`)

// LikeRepository implements contract.ILikeRepository on Redis. Per target it
// keeps a user→id hash for uniqueness, a sorted set scored by submit time for
// ordering and an id→JSON hash of records. The three keys share a hash tag so
// they live in one cluster slot.
type LikeRepository struct {
	rdb *redis.Client
}

var _ contract.ILikeRepository = (*LikeRepository)(nil)

// NewLikeRepository creates a new LikeRepository.
func NewLikeRepository(rdb *redis.Client) *LikeRepository {
	return &LikeRepository{rdb: rdb}
}

// targetKeys holds the per-target keys, in script KEYS order.
type targetKeys struct {
	users   string
	ordered string
	records string
}

func (k targetKeys) list() []string {
	return []string{k.users, k.ordered, k.records}
}

// keysFor escapes every component so the "{...}" hash tag and ":" separators
// cannot be forged by a type tag or primary key.
func keysFor(target entity.TargetRef, siteID string) targetKeys {
	tag := fmt.Sprintf("{%s:%s:%s}", url.QueryEscape(siteID), url.QueryEscape(target.TypeTag), url.QueryEscape(target.PrimaryKey))
	return targetKeys{
		users:   "likes:" + tag + ":users",
		ordered: "likes:" + tag + ":ordered",
		records: "likes:" + tag + ":records",
	}
}

// FindLike retrieves the like for the tuple, or nil if there is none.
func (r *LikeRepository) FindLike(ctx context.Context, key entity.LikeKey) (*entity.Like, error) {
	keys := keysFor(key.Target, key.SiteID)
	id, err := r.rdb.HGet(ctx, keys.users, key.UserID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to retrieve like: %w", err)
	}
	b, err := r.rdb.HGet(ctx, keys.records, id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to retrieve like record: %w", err)
	}
	var like entity.Like
	if err := json.Unmarshal(b, &like); err != nil {
		return nil, fmt.Errorf("failed to decode like record: %w", err)
	}
	return &like, nil
}

// CreateLike stores a like atomically; a taken tuple yields ErrLikeConflict.
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
	data, err := json.Marshal(like)
	if err != nil {
		return fmt.Errorf("failed to encode like: %w", err)
	}
	target := entity.TargetRef{TypeTag: like.TargetType, PrimaryKey: like.TargetKey}
	created, err := createScript.Run(ctx, r.rdb,
		keysFor(target, like.SiteID).list(),
		like.UserID, like.ID, like.SubmittedAt.UnixMilli(), data,
	).Int()
	if err != nil {
		return fmt.Errorf("failed to create like: %w", err)
	}
	if created == 0 {
		return contract.ErrLikeConflict
	}
	return nil
}

// DeleteLike removes the like for the tuple.
func (r *LikeRepository) DeleteLike(ctx context.Context, key entity.LikeKey) (bool, error) {
	removed, err := deleteScript.Run(ctx, r.rdb, keysFor(key.Target, key.SiteID).list(), key.UserID).Int()
	if err != nil {
		return false, fmt.Errorf("failed to delete like: %w", err)
	}
	return removed == 1, nil
}

// CountLikes counts the likes of a target on a site.
func (r *LikeRepository) CountLikes(ctx context.Context, target entity.TargetRef, siteID string) (int64, error) {
	count, err := r.rdb.ZCard(ctx, keysFor(target, siteID).ordered).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}

// ListLikes lists the likes of a target on a site, newest first. Equal
// scores fall back to reverse id order.
func (r *LikeRepository) ListLikes(ctx context.Context, target entity.TargetRef, siteID string) ([]*entity.Like, error) {
	keys := keysFor(target, siteID)
	ids, err := r.rdb.ZRevRange(ctx, keys.ordered, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list likes: %w", err)
	}
	likes := make([]*entity.Like, 0, len(ids))
	if len(ids) == 0 {
		return likes, nil
	}
	values, err := r.rdb.HMGet(ctx, keys.records, ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load like records: %w", err)
	}
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			// Deleted between ZREVRANGE and HMGET.
			continue
		}
		var like entity.Like
		if err := json.Unmarshal([]byte(s), &like); err != nil {
			return nil, fmt.Errorf("failed to decode like record: %w", err)
		}
		likes = append(likes, &like)
	}
	return likes, nil
}
