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

// Compile-time check to ensure ScholarshipRepository implements the interface
var _ repositories.ScholarshipRepository = (*ScholarshipRepository)(nil)

// ScholarshipRepository handles MongoDB operations for Scholarship
type ScholarshipRepository struct {
	collection *mongo.Collection
}

// NewScholarshipRepository creates a new ScholarshipRepository
func NewScholarshipRepository(db *mongo.Database) *ScholarshipRepository {
	return &ScholarshipRepository{
		collection: db.Collection("scholarships"),
	}
}

// Create inserts a new scholarship
func (r *ScholarshipRepository) Create(ctx context.Context, scholarship *models.Scholarship) error {
	scholarship.ID = primitive.NewObjectID()
	scholarship.CreatedAt = time.Now()
	scholarship.UpdatedAt = time.Now()
	if scholarship.ScholarshipPostDate.IsZero() {
		scholarship.ScholarshipPostDate = scholarship.CreatedAt
	}
	_, err := r.collection.InsertOne(ctx, scholarship)
	return err
}

// FindByID finds a scholarship by ID
func (r *ScholarshipRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Scholarship, error) {
	var scholarship models.Scholarship
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&scholarship)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &scholarship, nil
}

// Search runs the filter/sort/pagination triple built from the query and
// returns the page of matches plus the total matching count.
func (r *ScholarshipRepository) Search(ctx context.Context, query models.ScholarshipQuery) ([]*models.Scholarship, int64, error) {
	filter := buildScholarshipFilter(query)

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	cursor, err := r.collection.Find(ctx, filter, buildScholarshipFindOptions(query))
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var scholarships []*models.Scholarship
	if err := cursor.All(ctx, &scholarships); err != nil {
		return nil, 0, err
	}
	if scholarships == nil {
		scholarships = []*models.Scholarship{}
	}
	return scholarships, total, nil
}

// FindTop returns the cheapest-by-applicationFees, newest-first scholarships
// for the landing page strip.
func (r *ScholarshipRepository) FindTop(ctx context.Context, limit int) ([]*models.Scholarship, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "applicationFees", Value: 1}, {Key: "scholarshipPostDate", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var scholarships []*models.Scholarship
	if err := cursor.All(ctx, &scholarships); err != nil {
		return nil, err
	}
	if scholarships == nil {
		scholarships = []*models.Scholarship{}
	}
	return scholarships, nil
}

// Update replaces an existing scholarship document
func (r *ScholarshipRepository) Update(ctx context.Context, scholarship *models.Scholarship) error {
	scholarship.UpdatedAt = time.Now()
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": scholarship.ID}, scholarship)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetImage updates only the university image URL
func (r *ScholarshipRepository) SetImage(ctx context.Context, id primitive.ObjectID, imageURL string) error {
	update := bson.M{"$set": bson.M{"universityImage": imageURL, "updatedAt": time.Now()}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete deletes a scholarship by ID
func (r *ScholarshipRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
