package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment status of an application. `unpaid -> paid` is the only transition
// and paid is terminal.
const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

// Review status of an application, driven by moderators. Independent of the
// payment status.
const (
	ApplicationStatusPending    = "pending"
	ApplicationStatusProcessing = "processing"
	ApplicationStatusAccepted   = "accepted"
	ApplicationStatusRejected   = "rejected"
)

// ValidApplicationStatus reports whether s is a known application status.
func ValidApplicationStatus(s string) bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusProcessing,
		ApplicationStatusAccepted, ApplicationStatusRejected:
		return true
	}
	return false
}

// ApplicationRequest is the payload for creating or editing an application.
// The scholarship snapshot fields come from the client; referential
// integrity against the scholarships collection is not enforced.
type ApplicationRequest struct {
	ScholarshipID   primitive.ObjectID `json:"scholarshipId" binding:"required"`
	ScholarshipName string             `json:"scholarshipName"`
	UniversityName  string             `json:"universityName"`
	Degree          string             `json:"degree"`
	Amount          float64            `json:"amount"`
	Currency        string             `json:"currency"`
}

// Application represents a student's application to a scholarship. The
// scholarship fields are denormalized at application time; there are no joins.
type Application struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserEmail         string             `bson:"userEmail" json:"userEmail"`
	UserName          string             `bson:"userName,omitempty" json:"userName,omitempty"`
	ScholarshipID     primitive.ObjectID `bson:"scholarshipId" json:"scholarshipId"`
	ScholarshipName   string             `bson:"scholarshipName,omitempty" json:"scholarshipName,omitempty"`
	UniversityName    string             `bson:"universityName,omitempty" json:"universityName,omitempty"`
	Degree            string             `bson:"degree,omitempty" json:"degree,omitempty"`
	TransactionID     string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	Amount            float64            `bson:"amount" json:"amount"`
	Currency          string             `bson:"currency,omitempty" json:"currency,omitempty"`
	PaymentStatus     string             `bson:"paymentStatus" json:"paymentStatus"`
	ApplicationStatus string             `bson:"applicationStatus" json:"applicationStatus"`
	Feedback          string             `bson:"feedback,omitempty" json:"feedback,omitempty"`
	AppliedAt         time.Time          `bson:"appliedAt" json:"appliedAt"`
	PaidAt            *time.Time         `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}
