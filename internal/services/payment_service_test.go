package services

import (
	"context"
	"sync"
	"testing"

	"github.com/scholarsource/scholarsource-backend/internal/apperrors"
	"github.com/scholarsource/scholarsource-backend/internal/models"
	"github.com/scholarsource/scholarsource-backend/pkg/paygateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newPaymentFixture() (*PaymentServiceImpl, *paygateway.MockGateway, *fakePaymentRepository, *fakeApplicationRepository) {
	gateway := paygateway.NewMockGateway()
	paymentRepo := newFakePaymentRepository()
	applicationRepo := newFakeApplicationRepository()
	return NewPaymentService(gateway, paymentRepo, applicationRepo), gateway, paymentRepo, applicationRepo
}

func TestInitiateCheckoutValidation(t *testing.T) {
	service, _, _, _ := newPaymentFixture()
	ctx := context.Background()
	scholarshipID := primitive.NewObjectID()

	_, err := service.InitiateCheckout(ctx, models.Principal{}, &models.CheckoutRequest{
		ScholarshipID: scholarshipID,
		Amount:        50,
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	_, err = service.InitiateCheckout(ctx, models.Principal{Email: "student@example.com"}, &models.CheckoutRequest{
		ScholarshipID: scholarshipID,
		Amount:        0,
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestInitiateCheckoutCarriesMetadata(t *testing.T) {
	service, gateway, _, _ := newPaymentFixture()
	ctx := context.Background()
	scholarshipID := primitive.NewObjectID()

	resp, err := service.InitiateCheckout(ctx, models.Principal{Email: "student@example.com"}, &models.CheckoutRequest{
		ScholarshipID:   scholarshipID,
		ScholarshipName: "Global Excellence Award",
		UniversityName:  "MIT",
		Degree:          "Masters",
		Amount:          75,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.SessionID)
	assert.NotEmpty(t, resp.URL)

	session, err := gateway.GetSession(ctx, resp.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "student@example.com", session.Metadata["userEmail"])
	assert.Equal(t, scholarshipID.Hex(), session.Metadata["scholarshipId"])
	assert.Equal(t, "Global Excellence Award", session.Metadata["scholarshipName"])
	assert.Equal(t, int64(7500), session.AmountTotal)
}

func TestVerifyPaymentUnknownSession(t *testing.T) {
	service, _, _, _ := newPaymentFixture()

	_, err := service.VerifyPayment(context.Background(), "cs_missing")
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestVerifyPaymentUnpaidSession(t *testing.T) {
	service, _, paymentRepo, applicationRepo := newPaymentFixture()
	ctx := context.Background()

	resp, err := service.InitiateCheckout(ctx, models.Principal{Email: "student@example.com"}, &models.CheckoutRequest{
		ScholarshipID: primitive.NewObjectID(),
		Amount:        50,
	})
	require.NoError(t, err)

	_, err = service.VerifyPayment(ctx, resp.SessionID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	assert.Equal(t, 0, paymentRepo.count())
	assert.Equal(t, 0, applicationRepo.count())
}

func TestVerifyPaymentCreatesApplicationAndPayment(t *testing.T) {
	service, gateway, paymentRepo, applicationRepo := newPaymentFixture()
	ctx := context.Background()
	scholarshipID := primitive.NewObjectID()

	resp, err := service.InitiateCheckout(ctx, models.Principal{Email: "student@example.com"}, &models.CheckoutRequest{
		ScholarshipID:   scholarshipID,
		ScholarshipName: "Global Excellence Award",
		UniversityName:  "MIT",
		Degree:          "Masters",
		Amount:          75,
	})
	require.NoError(t, err)

	transactionID, err := gateway.CompletePayment(resp.SessionID)
	require.NoError(t, err)

	verified, err := service.VerifyPayment(ctx, resp.SessionID)
	require.NoError(t, err)
	assert.Equal(t, transactionID, verified.TransactionID)

	application := verified.Application
	require.NotNil(t, application)
	assert.Equal(t, "student@example.com", application.UserEmail)
	assert.Equal(t, scholarshipID, application.ScholarshipID)
	assert.Equal(t, models.PaymentStatusPaid, application.PaymentStatus)
	assert.Equal(t, models.ApplicationStatusPending, application.ApplicationStatus)
	assert.Equal(t, 75.0, application.Amount)
	require.NotNil(t, application.PaidAt)

	payment, err := paymentRepo.FindByTransactionID(ctx, transactionID)
	require.NoError(t, err)
	assert.Equal(t, application.ID, payment.ApplicationID)
	assert.Equal(t, 1, applicationRepo.count())
}

func TestVerifyPaymentUpgradesExistingApplication(t *testing.T) {
	service, gateway, _, applicationRepo := newPaymentFixture()
	ctx := context.Background()
	scholarshipID := primitive.NewObjectID()

	existing := &models.Application{
		UserEmail:         "student@example.com",
		ScholarshipID:     scholarshipID,
		Amount:            50,
		Currency:          "usd",
		PaymentStatus:     models.PaymentStatusUnpaid,
		ApplicationStatus: models.ApplicationStatusPending,
	}
	require.NoError(t, applicationRepo.Create(ctx, existing))

	resp, err := service.InitiateCheckout(ctx, models.Principal{Email: "student@example.com"}, &models.CheckoutRequest{
		ScholarshipID: scholarshipID,
		ApplicationID: existing.ID.Hex(),
		Amount:        50,
	})
	require.NoError(t, err)

	_, err = gateway.CompletePayment(resp.SessionID)
	require.NoError(t, err)

	verified, err := service.VerifyPayment(ctx, resp.SessionID)
	require.NoError(t, err)

	assert.Equal(t, existing.ID, verified.Application.ID)
	assert.Equal(t, models.PaymentStatusPaid, verified.Application.PaymentStatus)
	assert.NotEmpty(t, verified.Application.TransactionID)
	// No second application was created.
	assert.Equal(t, 1, applicationRepo.count())
}

func TestVerifyPaymentIsIdempotent(t *testing.T) {
	service, gateway, paymentRepo, applicationRepo := newPaymentFixture()
	ctx := context.Background()

	resp, err := service.InitiateCheckout(ctx, models.Principal{Email: "student@example.com"}, &models.CheckoutRequest{
		ScholarshipID: primitive.NewObjectID(),
		Amount:        50,
	})
	require.NoError(t, err)

	_, err = gateway.CompletePayment(resp.SessionID)
	require.NoError(t, err)

	_, err = service.VerifyPayment(ctx, resp.SessionID)
	require.NoError(t, err)

	_, err = service.VerifyPayment(ctx, resp.SessionID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	assert.Equal(t, 1, paymentRepo.count())
	assert.Equal(t, 1, applicationRepo.count())
}

func TestVerifyPaymentConcurrentRetries(t *testing.T) {
	service, gateway, paymentRepo, applicationRepo := newPaymentFixture()
	ctx := context.Background()

	resp, err := service.InitiateCheckout(ctx, models.Principal{Email: "student@example.com"}, &models.CheckoutRequest{
		ScholarshipID: primitive.NewObjectID(),
		Amount:        50,
	})
	require.NoError(t, err)

	_, err = gateway.CompletePayment(resp.SessionID)
	require.NoError(t, err)

	const attempts = 8
	results := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = service.VerifyPayment(ctx, resp.SessionID)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
		}
	}
	assert.Equal(t, 1, succeeded)
	// Exactly one application/payment pair regardless of how the race resolved.
	assert.Equal(t, 1, paymentRepo.count())
	assert.Equal(t, 1, applicationRepo.count())
}

func TestRecordFailureOncePerScholarship(t *testing.T) {
	service, _, _, applicationRepo := newPaymentFixture()
	ctx := context.Background()
	scholarshipID := primitive.NewObjectID()

	req := &models.PaymentFailureRequest{
		UserEmail:       "student@example.com",
		UserName:        "Student",
		ScholarshipID:   scholarshipID,
		ScholarshipName: "Global Excellence Award",
		Amount:          50,
	}

	application, err := service.RecordFailure(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusUnpaid, application.PaymentStatus)
	assert.Equal(t, models.ApplicationStatusPending, application.ApplicationStatus)
	assert.Equal(t, "usd", application.Currency)

	_, err = service.RecordFailure(ctx, req)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	assert.Equal(t, 1, applicationRepo.count())
}
