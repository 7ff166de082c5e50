package paygateway

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MockGateway is an in-memory Gateway for tests and local runs without Stripe
// credentials. Sessions start unpaid; CompletePayment simulates the customer
// finishing checkout.
type MockGateway struct {
	mu       sync.Mutex
	sessions map[string]*CheckoutSession
}

// NewMockGateway creates a new MockGateway
func NewMockGateway() *MockGateway {
	return &MockGateway{sessions: make(map[string]*CheckoutSession)}
}

// CreateSession fabricates an unpaid session with a deterministic-enough id.
func (g *MockGateway) CreateSession(ctx context.Context, p CreateSessionParams) (*CheckoutSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := fmt.Sprintf("cs_mock_%d", time.Now().UnixNano())
	session := &CheckoutSession{
		ID:            id,
		URL:           "https://checkout.mock.local/pay/" + id,
		PaymentStatus: PaymentStatusUnpaid,
		AmountTotal:   int64(p.Amount * 100),
		Currency:      p.Currency,
		CustomerEmail: p.CustomerEmail,
		Metadata:      p.Metadata,
	}
	g.sessions[id] = session
	return copySession(session), nil
}

// GetSession returns the stored session or ErrSessionNotFound.
func (g *MockGateway) GetSession(ctx context.Context, id string) (*CheckoutSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	session, ok := g.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return copySession(session), nil
}

// AddSession seeds a session directly, for tests that need full control over
// the session state.
func (g *MockGateway) AddSession(session *CheckoutSession) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sessions[session.ID] = copySession(session)
}

// CompletePayment marks a session paid and assigns it a transaction id.
func (g *MockGateway) CompletePayment(id string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	session, ok := g.sessions[id]
	if !ok {
		return "", ErrSessionNotFound
	}
	session.PaymentStatus = PaymentStatusPaid
	session.TransactionID = fmt.Sprintf("pi_mock_%d", time.Now().UnixNano())
	return session.TransactionID, nil
}

func copySession(s *CheckoutSession) *CheckoutSession {
	out := *s
	if s.Metadata != nil {
		out.Metadata = make(map[string]string, len(s.Metadata))
		for k, v := range s.Metadata {
			out.Metadata[k] = v
		}
	}
	return &out
}
