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

// Compile-time check to ensure ApplicationRepository implements the interface
var _ repositories.ApplicationRepository = (*ApplicationRepository)(nil)

// ApplicationRepository handles MongoDB operations for Application
type ApplicationRepository struct {
	collection *mongo.Collection
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *mongo.Database) *ApplicationRepository {
	return &ApplicationRepository{
		collection: db.Collection("applications"),
	}
}

// Create inserts a new application
func (r *ApplicationRepository) Create(ctx context.Context, application *models.Application) error {
	application.ID = primitive.NewObjectID()
	if application.AppliedAt.IsZero() {
		application.AppliedAt = time.Now()
	}
	application.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, application)
	return err
}

// FindByID finds an application by ID
func (r *ApplicationRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Application, error) {
	var application models.Application
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&application)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &application, nil
}

// FindByUserEmail finds all applications submitted by a user, newest first
func (r *ApplicationRepository) FindByUserEmail(ctx context.Context, email string) ([]*models.Application, error) {
	return r.findMany(ctx, bson.M{"userEmail": email})
}

// FindByUserAndScholarship finds the application a user holds for a
// scholarship, if any
func (r *ApplicationRepository) FindByUserAndScholarship(ctx context.Context, email string, scholarshipID primitive.ObjectID) (*models.Application, error) {
	var application models.Application
	filter := bson.M{"userEmail": email, "scholarshipId": scholarshipID}
	err := r.collection.FindOne(ctx, filter).Decode(&application)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &application, nil
}

// FindByScholarshipID finds all applications for a scholarship
func (r *ApplicationRepository) FindByScholarshipID(ctx context.Context, scholarshipID primitive.ObjectID) ([]*models.Application, error) {
	return r.findMany(ctx, bson.M{"scholarshipId": scholarshipID})
}

// FindAll retrieves a page of applications, newest first
func (r *ApplicationRepository) FindAll(ctx context.Context, page, limit int) ([]*models.Application, error) {
	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "appliedAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var applications []*models.Application
	if err := cursor.All(ctx, &applications); err != nil {
		return nil, err
	}
	if applications == nil {
		applications = []*models.Application{}
	}
	return applications, nil
}

// Update replaces an existing application document
func (r *ApplicationRepository) Update(ctx context.Context, application *models.Application) error {
	application.UpdatedAt = time.Now()
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": application.ID}, application)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// UpdateStatus updates only the application status
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	update := bson.M{"$set": bson.M{"applicationStatus": status, "updatedAt": time.Now()}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetFeedback attaches moderator feedback to an application
func (r *ApplicationRepository) SetFeedback(ctx context.Context, id primitive.ObjectID, feedback string) error {
	update := bson.M{"$set": bson.M{"feedback": feedback, "updatedAt": time.Now()}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete deletes an application by ID
func (r *ApplicationRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *ApplicationRepository) findMany(ctx context.Context, filter bson.M) ([]*models.Application, error) {
	opts := options.Find().SetSort(bson.D{{Key: "appliedAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var applications []*models.Application
	if err := cursor.All(ctx, &applications); err != nil {
		return nil, err
	}
	if applications == nil {
		applications = []*models.Application{}
	}
	return applications, nil
}
