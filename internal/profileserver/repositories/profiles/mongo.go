package profiles

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/2003dinijay/ChatStack/internal/common"
	"github.com/2003dinijay/ChatStack/internal/profileserver/models"
)

const collectionName = "profiles"

type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: db.Collection(collectionName)}
}

var _ Repository = (*MongoRepository)(nil)

// EnsureIndexes creates the unique user_id index; call once at startup.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *MongoRepository) Get(ctx context.Context, userID int64) (*models.Profile, error) {
	profile := &models.Profile{}
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("mongo error: %w", err)
	}
	return profile, nil
}

func (r *MongoRepository) Create(ctx context.Context, profile *models.Profile) error {
	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, profile)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return common.ErrConflict
		}
		return fmt.Errorf("mongo error: %w", err)
	}
	return nil
}

func (r *MongoRepository) Update(ctx context.Context, userID int64, upd *models.Update) (*models.Profile, error) {
	set := bson.M{"updated_at": time.Now()}
	if upd.Bio != nil {
		set["bio"] = *upd.Bio
	}
	if upd.AvatarURL != nil {
		set["avatar_url"] = *upd.AvatarURL
	}
	if upd.Address != nil {
		set["address"] = *upd.Address
	}
	if upd.SocialLinks != nil {
		set["social_links"] = *upd.SocialLinks
	}

	after := options.After
	result := &models.Profile{}
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("mongo error: %w", err)
	}

	return result, nil
}
