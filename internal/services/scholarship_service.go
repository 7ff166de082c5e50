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

const topScholarshipCount = 6

// Compile-time check to ensure ScholarshipServiceImpl implements ScholarshipService
var _ ScholarshipService = (*ScholarshipServiceImpl)(nil)

type ScholarshipServiceImpl struct {
	scholarshipRepo repositories.ScholarshipRepository
}

// NewScholarshipService creates a new ScholarshipService implementation
func NewScholarshipService(scholarshipRepo repositories.ScholarshipRepository) *ScholarshipServiceImpl {
	return &ScholarshipServiceImpl{scholarshipRepo: scholarshipRepo}
}

// CreateScholarship posts a new scholarship on behalf of the principal
func (s *ScholarshipServiceImpl) CreateScholarship(ctx context.Context, principal models.Principal, scholarship *models.Scholarship) error {
	if scholarship.ApplicationFees < 0 {
		return apperrors.Validation("applicationFees must not be negative")
	}
	scholarship.PostedUserEmail = principal.Email
	if scholarship.ScholarshipPostDate.IsZero() {
		scholarship.ScholarshipPostDate = time.Now()
	}
	return s.scholarshipRepo.Create(ctx, scholarship)
}

// GetScholarshipByID returns a single scholarship
func (s *ScholarshipServiceImpl) GetScholarshipByID(ctx context.Context, id primitive.ObjectID) (*models.Scholarship, error) {
	scholarship, err := s.scholarshipRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("scholarship not found")
		}
		return nil, err
	}
	return scholarship, nil
}

// SearchScholarships runs the search and wraps the results with pagination
// totals. totalPages is ceil(total/limit), zero when nothing matches.
func (s *ScholarshipServiceImpl) SearchScholarships(ctx context.Context, query models.ScholarshipQuery) (*models.ScholarshipPage, error) {
	query.Normalize()

	scholarships, total, err := s.scholarshipRepo.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	return &models.ScholarshipPage{
		Scholarships: scholarships,
		Total:        total,
		TotalPages:   totalPages(total, query.Limit),
		Page:         query.Page,
		Limit:        query.Limit,
	}, nil
}

// GetTopScholarships returns the landing page strip
func (s *ScholarshipServiceImpl) GetTopScholarships(ctx context.Context) ([]*models.Scholarship, error) {
	return s.scholarshipRepo.FindTop(ctx, topScholarshipCount)
}

// UpdateScholarship replaces a scholarship document
func (s *ScholarshipServiceImpl) UpdateScholarship(ctx context.Context, scholarship *models.Scholarship) error {
	err := s.scholarshipRepo.Update(ctx, scholarship)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperrors.NotFound("scholarship not found")
	}
	return err
}

// SetScholarshipImage updates the university image URL
func (s *ScholarshipServiceImpl) SetScholarshipImage(ctx context.Context, id primitive.ObjectID, imageURL string) error {
	err := s.scholarshipRepo.SetImage(ctx, id, imageURL)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperrors.NotFound("scholarship not found")
	}
	return err
}

// DeleteScholarship removes a scholarship
func (s *ScholarshipServiceImpl) DeleteScholarship(ctx context.Context, id primitive.ObjectID) error {
	err := s.scholarshipRepo.Delete(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperrors.NotFound("scholarship not found")
	}
	return err
}

func totalPages(total int64, limit int) int {
	if total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
