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
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure ApplicationServiceImpl implements ApplicationService
var _ ApplicationService = (*ApplicationServiceImpl)(nil)

type ApplicationServiceImpl struct {
	applicationRepo repositories.ApplicationRepository
}

// NewApplicationService creates a new ApplicationService implementation
func NewApplicationService(applicationRepo repositories.ApplicationRepository) *ApplicationServiceImpl {
	return &ApplicationServiceImpl{applicationRepo: applicationRepo}
}

// Apply submits a pre-payment (unpaid) application. One application per
// (user, scholarship) pair.
func (s *ApplicationServiceImpl) Apply(ctx context.Context, principal models.Principal, req *models.ApplicationRequest) (*models.Application, error) {
	if req.ScholarshipID.IsZero() {
		return nil, apperrors.Validation("scholarshipId is required")
	}

	if _, err := s.applicationRepo.FindByUserAndScholarship(ctx, principal.Email, req.ScholarshipID); err == nil {
		return nil, apperrors.Conflict("application already exists for this scholarship")
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	application := &models.Application{
		UserEmail:         principal.Email,
		ScholarshipID:     req.ScholarshipID,
		ScholarshipName:   req.ScholarshipName,
		UniversityName:    req.UniversityName,
		Degree:            req.Degree,
		Amount:            req.Amount,
		Currency:          normalizeCurrency(req.Currency),
		PaymentStatus:     models.PaymentStatusUnpaid,
		ApplicationStatus: models.ApplicationStatusPending,
		AppliedAt:         time.Now(),
	}
	if err := s.applicationRepo.Create(ctx, application); err != nil {
		return nil, err
	}

	slog.Info("Application submitted", "email", principal.Email, "scholarshipId", req.ScholarshipID)
	return application, nil
}

// GetMyApplications returns the principal's applications
func (s *ApplicationServiceImpl) GetMyApplications(ctx context.Context, principal models.Principal) ([]*models.Application, error) {
	return s.applicationRepo.FindByUserEmail(ctx, principal.Email)
}

// GetAllApplications returns a page of all applications. Moderator only at
// the route level.
func (s *ApplicationServiceImpl) GetAllApplications(ctx context.Context, page, limit int) ([]*models.Application, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return s.applicationRepo.FindAll(ctx, page, limit)
}

// UpdateOwnApplication lets the owner edit the scholarship snapshot fields
// while the application is still pending.
func (s *ApplicationServiceImpl) UpdateOwnApplication(ctx context.Context, principal models.Principal, id primitive.ObjectID, req *models.ApplicationRequest) (*models.Application, error) {
	application, err := s.getOwned(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	if application.ApplicationStatus != models.ApplicationStatusPending {
		return nil, apperrors.Conflict("application is already being processed")
	}

	application.ScholarshipName = req.ScholarshipName
	application.UniversityName = req.UniversityName
	application.Degree = req.Degree
	if req.Amount > 0 && application.PaymentStatus == models.PaymentStatusUnpaid {
		application.Amount = req.Amount
	}
	if err := s.applicationRepo.Update(ctx, application); err != nil {
		return nil, err
	}
	return application, nil
}

// UpdateStatus moves an application through the moderator-driven state
// machine. Payment status is never touched here.
func (s *ApplicationServiceImpl) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	if !models.ValidApplicationStatus(status) {
		return apperrors.Validation("unknown application status: " + status)
	}
	err := s.applicationRepo.UpdateStatus(ctx, id, status)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperrors.NotFound("application not found")
	}
	return err
}

// SetFeedback attaches moderator feedback to an application
func (s *ApplicationServiceImpl) SetFeedback(ctx context.Context, id primitive.ObjectID, feedback string) error {
	if feedback == "" {
		return apperrors.Validation("feedback is required")
	}
	err := s.applicationRepo.SetFeedback(ctx, id, feedback)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperrors.NotFound("application not found")
	}
	return err
}

// CancelApplication deletes an owned application while it is still pending
func (s *ApplicationServiceImpl) CancelApplication(ctx context.Context, principal models.Principal, id primitive.ObjectID) error {
	application, err := s.getOwned(ctx, principal, id)
	if err != nil {
		return err
	}
	if application.ApplicationStatus != models.ApplicationStatusPending {
		return apperrors.Conflict("application is already being processed")
	}
	return s.applicationRepo.Delete(ctx, id)
}

func (s *ApplicationServiceImpl) getOwned(ctx context.Context, principal models.Principal, id primitive.ObjectID) (*models.Application, error) {
	application, err := s.applicationRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("application not found")
		}
		return nil, err
	}
	if application.UserEmail != principal.Email {
		return nil, apperrors.Forbidden("not the owner of this application")
	}
	return application, nil
}
