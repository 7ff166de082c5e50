package mongodb

import (
	"context"
	"time"

	"github.com/scholarsource/scholarsource-backend/internal/models"
	"github.com/scholarsource/scholarsource-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure ReviewRepository implements the interface
var _ repositories.ReviewRepository = (*ReviewRepository)(nil)

// ReviewRepository handles MongoDB operations for Review
type ReviewRepository struct {
	collection *mongo.Collection
}

// NewReviewRepository creates a new ReviewRepository
func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{
		collection: db.Collection("reviews"),
	}
}

// Create inserts a new review
func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	review.ID = primitive.NewObjectID()
	if review.ReviewDate.IsZero() {
		review.ReviewDate = time.Now()
	}
	review.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, review)
	return err
}

// FindByID finds a review by ID
func (r *ReviewRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	var review models.Review
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&review)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &review, nil
}

// FindByScholarshipID finds all reviews of a scholarship, newest first
func (r *ReviewRepository) FindByScholarshipID(ctx context.Context, scholarshipID primitive.ObjectID) ([]*models.Review, error) {
	return r.findMany(ctx, bson.M{"scholarshipId": scholarshipID})
}

// FindByUserEmail finds all reviews authored by a user, newest first
func (r *ReviewRepository) FindByUserEmail(ctx context.Context, email string) ([]*models.Review, error) {
	return r.findMany(ctx, bson.M{"userEmail": email})
}

// FindAll retrieves a page of reviews, newest first
func (r *ReviewRepository) FindAll(ctx context.Context, page, limit int) ([]*models.Review, error) {
	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "reviewDate", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []*models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []*models.Review{}
	}
	return reviews, nil
}

// Update replaces an existing review document
func (r *ReviewRepository) Update(ctx context.Context, review *models.Review) error {
	review.UpdatedAt = time.Now()
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": review.ID}, review)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete deletes a review by ID
func (r *ReviewRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *ReviewRepository) findMany(ctx context.Context, filter bson.M) ([]*models.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "reviewDate", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []*models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []*models.Review{}
	}
	return reviews, nil
}
