package repositories

import (
	"context"

	"github.com/scholarsource/scholarsource-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	Upsert(ctx context.Context, user *models.User) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindAll(ctx context.Context, page, limit int) ([]*models.User, error)
	UpdateRole(ctx context.Context, id primitive.ObjectID, role string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

// ScholarshipRepository defines the interface for scholarship data operations
type ScholarshipRepository interface {
	Create(ctx context.Context, scholarship *models.Scholarship) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Scholarship, error)
	Search(ctx context.Context, query models.ScholarshipQuery) ([]*models.Scholarship, int64, error)
	FindTop(ctx context.Context, limit int) ([]*models.Scholarship, error)
	Update(ctx context.Context, scholarship *models.Scholarship) error
	SetImage(ctx context.Context, id primitive.ObjectID, imageURL string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ApplicationRepository defines the interface for application data operations
type ApplicationRepository interface {
	Create(ctx context.Context, application *models.Application) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Application, error)
	FindByUserEmail(ctx context.Context, email string) ([]*models.Application, error)
	FindByUserAndScholarship(ctx context.Context, email string, scholarshipID primitive.ObjectID) (*models.Application, error)
	FindByScholarshipID(ctx context.Context, scholarshipID primitive.ObjectID) ([]*models.Application, error)
	FindAll(ctx context.Context, page, limit int) ([]*models.Application, error)
	Update(ctx context.Context, application *models.Application) error
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error
	SetFeedback(ctx context.Context, id primitive.ObjectID, feedback string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// PaymentRepository defines the interface for payment data operations.
// Create must refuse a duplicate transaction id with a conflict error; the
// Mongo implementation backs this with a unique index so concurrent inserts
// cannot both succeed.
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	FindByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error)
	FindByUserEmail(ctx context.Context, email string) ([]*models.Payment, error)
}

// ReviewRepository defines the interface for review data operations
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
	FindByScholarshipID(ctx context.Context, scholarshipID primitive.ObjectID) ([]*models.Review, error)
	FindByUserEmail(ctx context.Context, email string) ([]*models.Review, error)
	FindAll(ctx context.Context, page, limit int) ([]*models.Review, error)
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
