package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KrishTanna28/cinnect-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrPostNotFound is returned when no post matches the given ID
var ErrPostNotFound = errors.New("post not found")

// Post counter fields maintained with $inc
const (
	PostFieldLikes    = "likes_count"
	PostFieldDislikes = "dislikes_count"
	PostFieldComments = "comments_count"
	PostFieldViews    = "views_count"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GetRecentByCommunity(ctx context.Context, communityID uint, skip, limit int64) ([]models.Post, error)
	GetAllByCommunity(ctx context.Context, communityID uint) ([]models.Post, error)
	CountByCommunity(ctx context.Context, communityID uint) (int64, error)
	AdjustCounter(ctx context.Context, postID, field string, delta int) error
	DeletePost(ctx context.Context, id string) error
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

// CreatePost creates a new post in MongoDB
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	_, err := r.collection.InsertOne(ctx, post)
	return err
}

// GetPostByID retrieves a post by ID from MongoDB
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID format: %w", err)
	}

	var post models.Post
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetRecentByCommunity retrieves a page of posts newest-first. The recent
// sort pages in the database; popular/hot rank in memory via GetAllByCommunity.
func (r *MongoPostRepository) GetRecentByCommunity(ctx context.Context, communityID uint, skip, limit int64) ([]models.Post, error) {
	var posts []models.Post
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"community_id": communityID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetAllByCommunity retrieves every post of a community for read-time ranking
func (r *MongoPostRepository) GetAllByCommunity(ctx context.Context, communityID uint) ([]models.Post, error) {
	var posts []models.Post
	cursor, err := r.collection.Find(ctx, bson.M{"community_id": communityID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// CountByCommunity returns the total post count for pagination meta
func (r *MongoPostRepository) CountByCommunity(ctx context.Context, communityID uint) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"community_id": communityID})
}

// AdjustCounter applies a $inc to one of the denormalized counter fields
func (r *MongoPostRepository) AdjustCounter(ctx context.Context, postID, field string, delta int) error {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return fmt.Errorf("invalid post ID format: %w", err)
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{field: delta}})
	return err
}

// DeletePost deletes a post by ID from MongoDB
func (r *MongoPostRepository) DeletePost(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid post ID format: %w", err)
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}
