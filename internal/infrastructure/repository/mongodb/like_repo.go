package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mikiasgoitom/likeledger/internal/domain/contract"
	"github.com/mikiasgoitom/likeledger/internal/domain/entity"
)

const duplicateKeyCode = 11000

// LikeRepository represents the MongoDB implementation of the ILikeRepository interface.
type LikeRepository struct {
	collection *mongo.Collection
}

var _ contract.ILikeRepository = (*LikeRepository)(nil)

// NewLikeRepository creates and returns a new LikeRepository instance.
func NewLikeRepository(db *mongo.Database) *LikeRepository {
	return &LikeRepository{
		collection: db.Collection("like_system_likes"),
	}
}

// EnsureIndexes creates the unique tuple index that makes CreateLike atomic,
// and the index used for per-target listing.
func (r *LikeRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "target_type", Value: 1},
				{Key: "target_key", Value: 1},
				{Key: "site_id", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("uniq_like_tuple"),
		},
		{
			Keys: bson.D{
				{Key: "target_type", Value: 1},
				{Key: "target_key", Value: 1},
				{Key: "site_id", Value: 1},
				{Key: "submitted_at", Value: -1},
			},
			Options: options.Index().SetName("like_target_recent"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create like indexes: %w", err)
	}
	return nil
}

func tupleFilter(key entity.LikeKey) bson.M {
	return bson.M{
		"user_id":     key.UserID,
		"target_type": key.Target.TypeTag,
		"target_key":  key.Target.PrimaryKey,
		"site_id":     key.SiteID,
	}
}

func targetFilter(target entity.TargetRef, siteID string) bson.M {
	return bson.M{
		"target_type": target.TypeTag,
		"target_key":  target.PrimaryKey,
		"site_id":     siteID,
	}
}

// FindLike retrieves the like for the tuple, or nil if there is none.
func (r *LikeRepository) FindLike(ctx context.Context, key entity.LikeKey) (*entity.Like, error) {
	var like entity.Like
	err := r.collection.FindOne(ctx, tupleFilter(key)).Decode(&like)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to retrieve like: %w", err)
	}
	return &like, nil
}

// CreateLike inserts a like. The unique tuple index rejects duplicates.
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
	_, err := r.collection.InsertOne(ctx, like)
	if err != nil {
		var writeException mongo.WriteException
		if errors.As(err, &writeException) {
			for _, e := range writeException.WriteErrors {
				if e.Code == duplicateKeyCode {
					return contract.ErrLikeConflict
				}
			}
		}
		return fmt.Errorf("failed to create like: %w", err)
	}
	return nil
}

// DeleteLike removes the like for the tuple.
func (r *LikeRepository) DeleteLike(ctx context.Context, key entity.LikeKey) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, tupleFilter(key))
	if err != nil {
		return false, fmt.Errorf("failed to delete like: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// CountLikes counts the likes of a target on a site.
func (r *LikeRepository) CountLikes(ctx context.Context, target entity.TargetRef, siteID string) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, targetFilter(target, siteID))
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}

// ListLikes lists the likes of a target on a site, newest first.
func (r *LikeRepository) ListLikes(ctx context.Context, target entity.TargetRef, siteID string) ([]*entity.Like, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "submitted_at", Value: -1},
		{Key: "_id", Value: -1},
	})
	cursor, err := r.collection.Find(ctx, targetFilter(target, siteID), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list likes: %w", err)
	}
	defer cursor.Close(ctx)

	likes := []*entity.Like{}
	if err := cursor.All(ctx, &likes); err != nil {
		return nil, fmt.Errorf("failed to decode likes: %w", err)
	}
	return likes, nil
}
