package paygateway

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// StripeGateway implements Gateway against Stripe Checkout.
type StripeGateway struct {
	api        *client.API
	successURL string
	cancelURL  string
}

// NewStripeGateway creates a Stripe-backed gateway. successURL receives the
// session id via the {CHECKOUT_SESSION_ID} placeholder so the frontend can
// call the verify endpoint after redirect.
func NewStripeGateway(secretKey, successURL, cancelURL string) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{
		api:        api,
		successURL: successURL,
		cancelURL:  cancelURL,
	}
}

// CreateSession opens a hosted checkout session for a single line item.
func (g *StripeGateway) CreateSession(ctx context.Context, p CreateSessionParams) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Params: stripe.Params{Context: ctx},
		Mode:   stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(p.Currency),
					UnitAmount: stripe.Int64(int64(math.Round(p.Amount * 100))),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(p.ProductName),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		CustomerEmail: stripe.String(p.CustomerEmail),
		SuccessURL:    stripe.String(g.successURL),
		CancelURL:     stripe.String(g.cancelURL),
	}
	for k, v := range p.Metadata {
		params.AddMetadata(k, v)
	}

	session, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, err
	}
	return fromStripeSession(session), nil
}

// GetSession retrieves a session by id.
func (g *StripeGateway) GetSession(ctx context.Context, id string) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{Params: stripe.Params{Context: ctx}}
	session, err := g.api.CheckoutSessions.Get(id, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode == http.StatusNotFound {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return fromStripeSession(session), nil
}

func fromStripeSession(s *stripe.CheckoutSession) *CheckoutSession {
	out := &CheckoutSession{
		ID:            s.ID,
		URL:           s.URL,
		PaymentStatus: string(s.PaymentStatus),
		AmountTotal:   s.AmountTotal,
		Currency:      string(s.Currency),
		CustomerEmail: s.CustomerEmail,
		Metadata:      s.Metadata,
	}
	if s.PaymentIntent != nil {
		out.TransactionID = s.PaymentIntent.ID
	}
	if s.LastResponse != nil && len(s.LastResponse.RawJSON) > 0 {
		var raw map[string]interface{}
		if err := json.Unmarshal(s.LastResponse.RawJSON, &raw); err == nil {
			out.Raw = raw
		}
	}
	return out
}
