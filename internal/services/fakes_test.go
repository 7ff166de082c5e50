package services

import (
	"context"
	"sync"

	"github.com/scholarsource/scholarsource-backend/internal/apperrors"
	"github.com/scholarsource/scholarsource-backend/internal/models"
	"github.com/scholarsource/scholarsource-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// fakePaymentRepository stores payments in memory and enforces the same
// uniqueness on transactionId that the Mongo index provides.
type fakePaymentRepository struct {
	mu       sync.Mutex
	payments map[string]*models.Payment
}

var _ repositories.PaymentRepository = (*fakePaymentRepository)(nil)

func newFakePaymentRepository() *fakePaymentRepository {
	return &fakePaymentRepository{payments: make(map[string]*models.Payment)}
}

func (r *fakePaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.payments[payment.TransactionID]; ok {
		return apperrors.Conflict("payment already processed for this transaction")
	}
	if payment.ID.IsZero() {
		payment.ID = primitive.NewObjectID()
	}
	stored := *payment
	r.payments[payment.TransactionID] = &stored
	return nil
}

func (r *fakePaymentRepository) FindByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	payment, ok := r.payments[transactionID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	found := *payment
	return &found, nil
}

func (r *fakePaymentRepository) FindByUserEmail(ctx context.Context, email string) ([]*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*models.Payment
	for _, payment := range r.payments {
		if payment.UserEmail == email {
			found := *payment
			out = append(out, &found)
		}
	}
	return out, nil
}

func (r *fakePaymentRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.payments)
}

// fakeApplicationRepository stores applications in memory.
type fakeApplicationRepository struct {
	mu           sync.Mutex
	applications map[primitive.ObjectID]*models.Application
}

var _ repositories.ApplicationRepository = (*fakeApplicationRepository)(nil)

func newFakeApplicationRepository() *fakeApplicationRepository {
	return &fakeApplicationRepository{applications: make(map[primitive.ObjectID]*models.Application)}
}

func (r *fakeApplicationRepository) Create(ctx context.Context, application *models.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if application.ID.IsZero() {
		application.ID = primitive.NewObjectID()
	}
	stored := *application
	r.applications[application.ID] = &stored
	return nil
}

func (r *fakeApplicationRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	application, ok := r.applications[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	found := *application
	return &found, nil
}

func (r *fakeApplicationRepository) FindByUserEmail(ctx context.Context, email string) ([]*models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*models.Application
	for _, application := range r.applications {
		if application.UserEmail == email {
			found := *application
			out = append(out, &found)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepository) FindByUserAndScholarship(ctx context.Context, email string, scholarshipID primitive.ObjectID) (*models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, application := range r.applications {
		if application.UserEmail == email && application.ScholarshipID == scholarshipID {
			found := *application
			return &found, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeApplicationRepository) FindByScholarshipID(ctx context.Context, scholarshipID primitive.ObjectID) ([]*models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*models.Application
	for _, application := range r.applications {
		if application.ScholarshipID == scholarshipID {
			found := *application
			out = append(out, &found)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepository) FindAll(ctx context.Context, page, limit int) ([]*models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*models.Application
	for _, application := range r.applications {
		found := *application
		out = append(out, &found)
	}
	return out, nil
}

func (r *fakeApplicationRepository) Update(ctx context.Context, application *models.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.applications[application.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	stored := *application
	r.applications[application.ID] = &stored
	return nil
}

func (r *fakeApplicationRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	application, ok := r.applications[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	application.ApplicationStatus = status
	return nil
}

func (r *fakeApplicationRepository) SetFeedback(ctx context.Context, id primitive.ObjectID, feedback string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	application, ok := r.applications[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	application.Feedback = feedback
	return nil
}

func (r *fakeApplicationRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.applications[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(r.applications, id)
	return nil
}

func (r *fakeApplicationRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.applications)
}
