package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// CheckoutRequest is the payload of POST /payments/checkout. The
// optional ApplicationID ties the session back to a pre-existing unpaid
// application so verification can upgrade it in place.
type CheckoutRequest struct {
	ScholarshipID   primitive.ObjectID `json:"scholarshipId" binding:"required"`
	ApplicationID   string             `json:"applicationId"`
	Amount          float64            `json:"amount"`
	Currency        string             `json:"currency"`
	ScholarshipName string             `json:"scholarshipName"`
	UniversityName  string             `json:"universityName"`
	Degree          string             `json:"degree"`
}

// CheckoutResponse carries the hosted checkout redirect URL.
type CheckoutResponse struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// VerifyRequest is the payload of POST /payments/verify.
type VerifyRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
}

// VerifyResponse reports the reconciled application/payment pair.
type VerifyResponse struct {
	TransactionID string       `json:"transactionId"`
	Application   *Application `json:"application"`
}

// PaymentFailureRequest is the payload of the unauthenticated
// POST /payments/failure endpoint, recording an abandoned or failed checkout
// as an unpaid application.
type PaymentFailureRequest struct {
	UserEmail       string             `json:"userEmail" binding:"required,email"`
	UserName        string             `json:"userName"`
	ScholarshipID   primitive.ObjectID `json:"scholarshipId" binding:"required"`
	ScholarshipName string             `json:"scholarshipName"`
	UniversityName  string             `json:"universityName"`
	Amount          float64            `json:"amount"`
	Currency        string             `json:"currency"`
}
