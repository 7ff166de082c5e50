package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment is the write-once financial record for a completed checkout.
// TransactionID carries a unique index so a duplicate verification attempt can
// never insert a second record, even under concurrent requests. Session holds
// the raw gateway session snapshot for audit.
type Payment struct {
	ID            primitive.ObjectID     `bson:"_id,omitempty" json:"id,omitempty"`
	TransactionID string                 `bson:"transactionId" json:"transactionId"`
	ApplicationID primitive.ObjectID     `bson:"applicationId" json:"applicationId"`
	UserEmail     string                 `bson:"userEmail" json:"userEmail"`
	ScholarshipID primitive.ObjectID     `bson:"scholarshipId" json:"scholarshipId"`
	Amount        float64                `bson:"amount" json:"amount"`
	Currency      string                 `bson:"currency" json:"currency"`
	Session       map[string]interface{} `bson:"session,omitempty" json:"-"`
	CreatedAt     time.Time              `bson:"createdAt" json:"createdAt"`
}
