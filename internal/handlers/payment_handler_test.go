package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/scholarsource/scholarsource-backend/internal/apperrors"
	"github.com/scholarsource/scholarsource-backend/internal/models"
	"github.com/scholarsource/scholarsource-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPaymentService returns canned responses for each operation.
type stubPaymentService struct {
	checkoutResp *models.CheckoutResponse
	checkoutErr  error
	verifyResp   *models.VerifyResponse
	verifyErr    error
	failureResp  *models.Application
	failureErr   error
}

var _ services.PaymentService = (*stubPaymentService)(nil)

func (s *stubPaymentService) InitiateCheckout(ctx context.Context, principal models.Principal, req *models.CheckoutRequest) (*models.CheckoutResponse, error) {
	return s.checkoutResp, s.checkoutErr
}

func (s *stubPaymentService) VerifyPayment(ctx context.Context, sessionID string) (*models.VerifyResponse, error) {
	return s.verifyResp, s.verifyErr
}

func (s *stubPaymentService) RecordFailure(ctx context.Context, req *models.PaymentFailureRequest) (*models.Application, error) {
	return s.failureResp, s.failureErr
}

func newPaymentRouter(service services.PaymentService, principal *models.Principal) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	if principal != nil {
		router.Use(func(c *gin.Context) {
			c.Set("principal", *principal)
			c.Next()
		})
	}
	handler := NewPaymentHandler(service)
	router.POST("/payments/checkout", handler.CreateCheckoutSession)
	router.POST("/payments/verify", handler.VerifyPayment)
	router.POST("/payments/failure", handler.RecordFailure)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateCheckoutSessionRequiresPrincipal(t *testing.T) {
	router := newPaymentRouter(&stubPaymentService{}, nil)

	w := postJSON(t, router, "/payments/checkout", gin.H{"scholarshipId": "64f000000000000000000001", "amount": 50})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateCheckoutSessionReturnsRedirect(t *testing.T) {
	service := &stubPaymentService{checkoutResp: &models.CheckoutResponse{SessionID: "cs_123", URL: "https://checkout.example/cs_123"}}
	principal := &models.Principal{Email: "student@example.com", Role: models.RoleStudent}
	router := newPaymentRouter(service, principal)

	w := postJSON(t, router, "/payments/checkout", gin.H{"scholarshipId": "64f000000000000000000001", "amount": 50})
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.CheckoutResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "cs_123", resp.SessionID)
	assert.Equal(t, "https://checkout.example/cs_123", resp.URL)
}

func TestVerifyPaymentStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not completed", apperrors.Validation("payment is not completed"), http.StatusBadRequest},
		{"unknown session", apperrors.NotFound("checkout session not found"), http.StatusNotFound},
		{"already processed", apperrors.Conflict("payment already processed for this transaction"), http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newPaymentRouter(&stubPaymentService{verifyErr: tt.err}, nil)

			w := postJSON(t, router, "/payments/verify", gin.H{"sessionId": "cs_123"})
			assert.Equal(t, tt.want, w.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.err.Error(), body["error"])
		})
	}
}

func TestVerifyPaymentMissingSessionID(t *testing.T) {
	router := newPaymentRouter(&stubPaymentService{}, nil)

	w := postJSON(t, router, "/payments/verify", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecordFailureCreated(t *testing.T) {
	service := &stubPaymentService{failureResp: &models.Application{
		UserEmail:         "student@example.com",
		PaymentStatus:     models.PaymentStatusUnpaid,
		ApplicationStatus: models.ApplicationStatusPending,
	}}
	router := newPaymentRouter(service, nil)

	w := postJSON(t, router, "/payments/failure", gin.H{
		"userEmail":     "student@example.com",
		"scholarshipId": "64f000000000000000000001",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var application models.Application
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &application))
	assert.Equal(t, models.PaymentStatusUnpaid, application.PaymentStatus)
}
