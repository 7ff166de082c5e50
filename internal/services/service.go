package services

import (
	"context"

	"github.com/scholarsource/scholarsource-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	IssueToken(ctx context.Context, req *models.TokenRequest) (string, *models.User, error)
	AdminLogin(ctx context.Context, req *models.AdminLoginRequest) (string, error)
	EnsureAdmin(ctx context.Context) error
}

// UserService defines the interface for user operations
type UserService interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetAllUsers(ctx context.Context, page, limit int) ([]*models.User, error)
	UpdateRole(ctx context.Context, id primitive.ObjectID, role string) error
	DeleteUser(ctx context.Context, id primitive.ObjectID) error
	GetUserCount(ctx context.Context) (int64, error)
}

// ScholarshipService defines the interface for scholarship operations
type ScholarshipService interface {
	CreateScholarship(ctx context.Context, principal models.Principal, scholarship *models.Scholarship) error
	GetScholarshipByID(ctx context.Context, id primitive.ObjectID) (*models.Scholarship, error)
	SearchScholarships(ctx context.Context, query models.ScholarshipQuery) (*models.ScholarshipPage, error)
	GetTopScholarships(ctx context.Context) ([]*models.Scholarship, error)
	UpdateScholarship(ctx context.Context, scholarship *models.Scholarship) error
	SetScholarshipImage(ctx context.Context, id primitive.ObjectID, imageURL string) error
	DeleteScholarship(ctx context.Context, id primitive.ObjectID) error
}

// ApplicationService defines the interface for application operations
type ApplicationService interface {
	Apply(ctx context.Context, principal models.Principal, req *models.ApplicationRequest) (*models.Application, error)
	GetMyApplications(ctx context.Context, principal models.Principal) ([]*models.Application, error)
	GetAllApplications(ctx context.Context, page, limit int) ([]*models.Application, error)
	UpdateOwnApplication(ctx context.Context, principal models.Principal, id primitive.ObjectID, req *models.ApplicationRequest) (*models.Application, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error
	SetFeedback(ctx context.Context, id primitive.ObjectID, feedback string) error
	CancelApplication(ctx context.Context, principal models.Principal, id primitive.ObjectID) error
}

// PaymentService defines the interface for checkout initiation and
// verification (the payment reconciler)
type PaymentService interface {
	InitiateCheckout(ctx context.Context, principal models.Principal, req *models.CheckoutRequest) (*models.CheckoutResponse, error)
	VerifyPayment(ctx context.Context, sessionID string) (*models.VerifyResponse, error)
	RecordFailure(ctx context.Context, req *models.PaymentFailureRequest) (*models.Application, error)
}

// ReviewService defines the interface for review operations
type ReviewService interface {
	CreateReview(ctx context.Context, principal models.Principal, review *models.Review) error
	GetReviewsByScholarship(ctx context.Context, scholarshipID primitive.ObjectID) ([]*models.Review, error)
	GetMyReviews(ctx context.Context, principal models.Principal) ([]*models.Review, error)
	GetAllReviews(ctx context.Context, page, limit int) ([]*models.Review, error)
	UpdateReview(ctx context.Context, principal models.Principal, id primitive.ObjectID, rating int, comment string) (*models.Review, error)
	DeleteReview(ctx context.Context, principal models.Principal, id primitive.ObjectID) error
}
