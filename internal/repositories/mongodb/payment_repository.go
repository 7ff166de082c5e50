package mongodb

import (
	"context"
	"time"

	"github.com/scholarsource/scholarsource-backend/internal/apperrors"
	"github.com/scholarsource/scholarsource-backend/internal/models"
	"github.com/scholarsource/scholarsource-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure PaymentRepository implements the interface
var _ repositories.PaymentRepository = (*PaymentRepository)(nil)

// PaymentRepository handles MongoDB operations for Payment. Payments are
// write-once per transaction id; the unique index on transactionId is what
// makes duplicate verification safe under concurrent requests.
type PaymentRepository struct {
	collection *mongo.Collection
}

// NewPaymentRepository creates a new PaymentRepository
func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{
		collection: db.Collection("payments"),
	}
}

// Create inserts a new payment record. A second insert for the same
// transaction id loses to the unique index and is surfaced as a conflict.
func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	payment.ID = primitive.NewObjectID()
	payment.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, payment)
	if mongo.IsDuplicateKeyError(err) {
		return apperrors.Conflict("payment already processed for this transaction")
	}
	return err
}

// FindByTransactionID finds a payment by the gateway's transaction id
func (r *PaymentRepository) FindByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	var payment models.Payment
	err := r.collection.FindOne(ctx, bson.M{"transactionId": transactionID}).Decode(&payment)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &payment, nil
}

// FindByUserEmail finds all payments made by a user, newest first
func (r *PaymentRepository) FindByUserEmail(ctx context.Context, email string) ([]*models.Payment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userEmail": email}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var payments []*models.Payment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, err
	}
	if payments == nil {
		payments = []*models.Payment{}
	}
	return payments, nil
}
