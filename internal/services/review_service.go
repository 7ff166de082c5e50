package services

import (
	"context"
	"errors"
	"time"

	"github.com/scholarsource/scholarsource-backend/internal/apperrors"
	"github.com/scholarsource/scholarsource-backend/internal/models"
	"github.com/scholarsource/scholarsource-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Compile-time check to ensure ReviewServiceImpl implements ReviewService
var _ ReviewService = (*ReviewServiceImpl)(nil)

type ReviewServiceImpl struct {
	reviewRepo repositories.ReviewRepository
}

// NewReviewService creates a new ReviewService implementation
func NewReviewService(reviewRepo repositories.ReviewRepository) *ReviewServiceImpl {
	return &ReviewServiceImpl{reviewRepo: reviewRepo}
}

// CreateReview posts a review authored by the principal
func (s *ReviewServiceImpl) CreateReview(ctx context.Context, principal models.Principal, review *models.Review) error {
	if review.ScholarshipID.IsZero() {
		return apperrors.Validation("scholarshipId is required")
	}
	if review.Rating < 1 || review.Rating > 5 {
		return apperrors.Validation("rating must be between 1 and 5")
	}
	review.UserEmail = principal.Email
	review.ReviewDate = time.Now()
	return s.reviewRepo.Create(ctx, review)
}

// GetReviewsByScholarship returns all reviews of a scholarship
func (s *ReviewServiceImpl) GetReviewsByScholarship(ctx context.Context, scholarshipID primitive.ObjectID) ([]*models.Review, error) {
	return s.reviewRepo.FindByScholarshipID(ctx, scholarshipID)
}

// GetMyReviews returns reviews authored by the principal
func (s *ReviewServiceImpl) GetMyReviews(ctx context.Context, principal models.Principal) ([]*models.Review, error) {
	return s.reviewRepo.FindByUserEmail(ctx, principal.Email)
}

// GetAllReviews returns a page of all reviews. Moderator only at the route
// level.
func (s *ReviewServiceImpl) GetAllReviews(ctx context.Context, page, limit int) ([]*models.Review, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return s.reviewRepo.FindAll(ctx, page, limit)
}

// UpdateReview lets the owner change the rating and comment
func (s *ReviewServiceImpl) UpdateReview(ctx context.Context, principal models.Principal, id primitive.ObjectID, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, apperrors.Validation("rating must be between 1 and 5")
	}

	review, err := s.findReview(ctx, id)
	if err != nil {
		return nil, err
	}
	if review.UserEmail != principal.Email {
		return nil, apperrors.Forbidden("not the owner of this review")
	}

	review.Rating = rating
	review.Comment = comment
	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// DeleteReview removes a review. Owners may delete their own reviews;
// moderators may delete any.
func (s *ReviewServiceImpl) DeleteReview(ctx context.Context, principal models.Principal, id primitive.ObjectID) error {
	review, err := s.findReview(ctx, id)
	if err != nil {
		return err
	}
	if review.UserEmail != principal.Email && !principal.IsModerator() {
		return apperrors.Forbidden("not the owner of this review")
	}
	return s.reviewRepo.Delete(ctx, id)
}

func (s *ReviewServiceImpl) findReview(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	review, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("review not found")
		}
		return nil, err
	}
	return review, nil
}
