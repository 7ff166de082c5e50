package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/scholarsource/scholarsource-backend/internal/apperrors"
	"github.com/scholarsource/scholarsource-backend/internal/models"
	"github.com/scholarsource/scholarsource-backend/internal/repositories"
	"github.com/scholarsource/scholarsource-backend/pkg/paygateway"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

const defaultCurrency = "usd"

// Compile-time check to ensure PaymentServiceImpl implements PaymentService
var _ PaymentService = (*PaymentServiceImpl)(nil)

// PaymentServiceImpl reconciles gateway checkout sessions with application
// and payment records. The invariant it protects: exactly one payment record
// per distinct transaction id.
type PaymentServiceImpl struct {
	gateway         paygateway.Gateway
	paymentRepo     repositories.PaymentRepository
	applicationRepo repositories.ApplicationRepository
}

// NewPaymentService creates a new PaymentService implementation
func NewPaymentService(gateway paygateway.Gateway, paymentRepo repositories.PaymentRepository, applicationRepo repositories.ApplicationRepository) *PaymentServiceImpl {
	return &PaymentServiceImpl{
		gateway:         gateway,
		paymentRepo:     paymentRepo,
		applicationRepo: applicationRepo,
	}
}

// InitiateCheckout opens a hosted checkout session carrying the scholarship
// and applicant identifiers as opaque metadata, and returns the redirect URL.
func (s *PaymentServiceImpl) InitiateCheckout(ctx context.Context, principal models.Principal, req *models.CheckoutRequest) (*models.CheckoutResponse, error) {
	if principal.Email == "" {
		return nil, apperrors.Validation("student email is required")
	}
	if req.Amount <= 0 {
		return nil, apperrors.Validation("amount must be greater than 0")
	}

	currency := strings.ToLower(req.Currency)
	if currency == "" {
		currency = defaultCurrency
	}

	metadata := map[string]string{
		"userEmail":       principal.Email,
		"scholarshipId":   req.ScholarshipID.Hex(),
		"scholarshipName": req.ScholarshipName,
		"universityName":  req.UniversityName,
		"degree":          req.Degree,
	}
	if req.ApplicationID != "" {
		metadata["applicationId"] = req.ApplicationID
	}

	session, err := s.gateway.CreateSession(ctx, paygateway.CreateSessionParams{
		Amount:        req.Amount,
		Currency:      currency,
		ProductName:   fmt.Sprintf("%s application fee", req.ScholarshipName),
		CustomerEmail: principal.Email,
		Metadata:      metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	slog.Info("Checkout session created", "sessionId", session.ID, "email", principal.Email, "amount", req.Amount)
	return &models.CheckoutResponse{SessionID: session.ID, URL: session.URL}, nil
}

// VerifyPayment retrieves the session from the gateway and records the
// payment exactly once. Safe to retry: a transaction id that was already
// recorded yields a conflict and no second payment record.
func (s *PaymentServiceImpl) VerifyPayment(ctx context.Context, sessionID string) (*models.VerifyResponse, error) {
	if sessionID == "" {
		return nil, apperrors.Validation("sessionId is required")
	}

	session, err := s.gateway.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, paygateway.ErrSessionNotFound) {
			return nil, apperrors.NotFound("checkout session not found")
		}
		return nil, fmt.Errorf("retrieve checkout session: %w", err)
	}
	if session.PaymentStatus != paygateway.PaymentStatusPaid {
		return nil, apperrors.Validation("payment is not completed")
	}

	transactionID := session.TransactionID
	if transactionID == "" {
		// The gateway always assigns a payment intent to a paid session;
		// fall back to the session id rather than dropping the record.
		transactionID = session.ID
	}

	// Idempotency guard. The unique index on payments.transactionId backs
	// this up when two verifications race past the lookup.
	if _, err := s.paymentRepo.FindByTransactionID(ctx, transactionID); err == nil {
		return nil, apperrors.Conflict("payment already processed for this transaction")
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	now := time.Now()
	application, createdNew, err := s.resolveApplication(ctx, session, transactionID, now)
	if err != nil {
		return nil, err
	}

	payment := &models.Payment{
		TransactionID: transactionID,
		ApplicationID: application.ID,
		UserEmail:     application.UserEmail,
		ScholarshipID: application.ScholarshipID,
		Amount:        application.Amount,
		Currency:      application.Currency,
		Session:       session.Raw,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		if createdNew && apperrors.IsKind(err, apperrors.KindConflict) {
			// Lost the race to a concurrent verification: remove the
			// provisional application so exactly one pair remains.
			if delErr := s.applicationRepo.Delete(ctx, application.ID); delErr != nil {
				slog.Error("Failed to remove provisional application after duplicate payment", "error", delErr, "applicationId", application.ID)
			}
		}
		return nil, err
	}

	slog.Info("Payment recorded", "transactionId", transactionID, "applicationId", application.ID, "amount", payment.Amount)
	return &models.VerifyResponse{TransactionID: transactionID, Application: application}, nil
}

// RecordFailure records an abandoned or failed checkout as an unpaid
// application, once per (userEmail, scholarshipId) pair.
func (s *PaymentServiceImpl) RecordFailure(ctx context.Context, req *models.PaymentFailureRequest) (*models.Application, error) {
	if req.UserEmail == "" {
		return nil, apperrors.Validation("userEmail is required")
	}
	if req.ScholarshipID.IsZero() {
		return nil, apperrors.Validation("scholarshipId is required")
	}

	if _, err := s.applicationRepo.FindByUserAndScholarship(ctx, req.UserEmail, req.ScholarshipID); err == nil {
		return nil, apperrors.Conflict("application already exists for this scholarship")
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	application := &models.Application{
		UserEmail:         req.UserEmail,
		UserName:          req.UserName,
		ScholarshipID:     req.ScholarshipID,
		ScholarshipName:   req.ScholarshipName,
		UniversityName:    req.UniversityName,
		Amount:            req.Amount,
		Currency:          normalizeCurrency(req.Currency),
		PaymentStatus:     models.PaymentStatusUnpaid,
		ApplicationStatus: models.ApplicationStatusPending,
		AppliedAt:         time.Now(),
	}
	if err := s.applicationRepo.Create(ctx, application); err != nil {
		return nil, err
	}

	slog.Info("Unpaid application recorded", "email", req.UserEmail, "scholarshipId", req.ScholarshipID)
	return application, nil
}

// resolveApplication upgrades the application referenced by the session
// metadata in place, or constructs a new paid application when the metadata
// carries no usable reference.
func (s *PaymentServiceImpl) resolveApplication(ctx context.Context, session *paygateway.CheckoutSession, transactionID string, now time.Time) (*models.Application, bool, error) {
	if hex := session.Metadata["applicationId"]; hex != "" {
		id, err := primitive.ObjectIDFromHex(hex)
		if err == nil {
			existing, err := s.applicationRepo.FindByID(ctx, id)
			switch {
			case err == nil:
				existing.PaymentStatus = models.PaymentStatusPaid
				existing.TransactionID = transactionID
				existing.PaidAt = &now
				if existing.Currency == "" {
					existing.Currency = normalizeCurrency(session.Currency)
				}
				if err := s.applicationRepo.Update(ctx, existing); err != nil {
					return nil, false, err
				}
				return existing, false, nil
			case !errors.Is(err, mongo.ErrNoDocuments):
				return nil, false, err
			}
			// Referenced application is gone; fall through and create one.
		}
	}

	scholarshipID, _ := primitive.ObjectIDFromHex(session.Metadata["scholarshipId"])
	application := &models.Application{
		UserEmail:         session.Metadata["userEmail"],
		ScholarshipID:     scholarshipID,
		ScholarshipName:   session.Metadata["scholarshipName"],
		UniversityName:    session.Metadata["universityName"],
		Degree:            session.Metadata["degree"],
		TransactionID:     transactionID,
		Amount:            float64(session.AmountTotal) / 100,
		Currency:          normalizeCurrency(session.Currency),
		PaymentStatus:     models.PaymentStatusPaid,
		ApplicationStatus: models.ApplicationStatusPending,
		AppliedAt:         now,
		PaidAt:            &now,
	}
	if application.UserEmail == "" {
		application.UserEmail = session.CustomerEmail
	}
	if err := s.applicationRepo.Create(ctx, application); err != nil {
		return nil, false, err
	}
	return application, true, nil
}

func normalizeCurrency(currency string) string {
	if currency == "" {
		return defaultCurrency
	}
	return strings.ToLower(currency)
}
