// Package paygateway wraps the hosted-checkout payment provider behind an
// interface so services can be tested against a mock and the provider can be
// swapped by configuration.
package paygateway

import (
	"context"
	"errors"
)

// Payment statuses reported by the gateway for a checkout session.
const (
	PaymentStatusPaid   = "paid"
	PaymentStatusUnpaid = "unpaid"
)

// ErrSessionNotFound is returned when the gateway has no session for the id.
var ErrSessionNotFound = errors.New("checkout session not found")

// CheckoutSession is the gateway-neutral view of a hosted checkout session.
// TransactionID is the gateway's unique id for the completed payment and is
// only set once the session is paid. Raw holds the provider's full session
// payload for the audit trail.
type CheckoutSession struct {
	ID            string
	URL           string
	PaymentStatus string
	TransactionID string
	AmountTotal   int64 // smallest currency unit
	Currency      string
	CustomerEmail string
	Metadata      map[string]string
	Raw           map[string]interface{}
}

// CreateSessionParams describes the session to open. Metadata is round-tripped
// back on retrieval and carries the application identifiers the reconciler
// needs.
type CreateSessionParams struct {
	Amount        float64
	Currency      string
	ProductName   string
	CustomerEmail string
	Metadata      map[string]string
}

// Gateway is the hosted checkout interface.
type Gateway interface {
	CreateSession(ctx context.Context, params CreateSessionParams) (*CheckoutSession, error)
	GetSession(ctx context.Context, id string) (*CheckoutSession, error)
}
