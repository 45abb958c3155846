package gateway

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/card"
	"github.com/stripe/stripe-go/v78/client"
)

type stripeCustomerAPI interface {
	New(params *stripe.CustomerParams) (*stripe.Customer, error)
}

type stripeCardAPI interface {
	New(params *stripe.CardParams) (*stripe.Card, error)
	List(params *stripe.CardListParams) *card.Iter
}

type stripeChargeAPI interface {
	New(params *stripe.ChargeParams) (*stripe.Charge, error)
}

type stripeClients struct {
	customers stripeCustomerAPI
	cards     stripeCardAPI
	charges   stripeChargeAPI
}

// StripeConfig configures the Stripe-backed gateway.
type StripeConfig struct {
	APIKey  string
	Clients *stripeClients
}

// StripeGateway implements Gateway using the Stripe API. The API key is
// injected at construction rather than read from package-level state.
type StripeGateway struct {
	api    stripeClients
	logger zerolog.Logger
}

// NewStripeGateway creates a Stripe-backed payment gateway.
func NewStripeGateway(cfg StripeConfig, logger zerolog.Logger) (*StripeGateway, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" && cfg.Clients == nil {
		return nil, errors.New("stripe: api key is required")
	}

	var clients stripeClients
	if cfg.Clients != nil {
		clients = *cfg.Clients
	} else {
		sc := client.New(apiKey, nil)
		clients = stripeClients{
			customers: sc.Customers,
			cards:     sc.Cards,
			charges:   sc.Charges,
		}
	}

	if clients.customers == nil || clients.cards == nil || clients.charges == nil {
		return nil, errors.New("stripe: incomplete client configuration")
	}

	return &StripeGateway{
		api:    clients,
		logger: logger.With().Str("component", "stripe-gateway").Logger(),
	}, nil
}

// CreateCustomer creates a gateway customer keyed by email.
func (g *StripeGateway) CreateCustomer(ctx context.Context, email string) (string, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(email),
	}
	params.Context = ctx

	customer, err := g.api.customers.New(params)
	if err != nil {
		g.logger.Error().Err(err).Msg("failed to create stripe customer")
		return "", classify(err)
	}

	g.logger.Info().Str("customer_id", customer.ID).Msg("stripe customer created")
	return customer.ID, nil
}

// AttachSource stores the submitted card token under the customer.
func (g *StripeGateway) AttachSource(ctx context.Context, customerID, token string) error {
	params := &stripe.CardParams{
		Customer: stripe.String(customerID),
		Token:    stripe.String(token),
	}
	params.Context = ctx

	if _, err := g.api.cards.New(params); err != nil {
		g.logger.Error().
			Err(err).
			Str("customer_id", customerID).
			Msg("failed to attach card to stripe customer")
		return classify(err)
	}

	g.logger.Debug().Str("customer_id", customerID).Msg("card attached to stripe customer")
	return nil
}

// Charge executes a single charge attempt against either a stored customer
// or a one-time token.
func (g *StripeGateway) Charge(ctx context.Context, req ChargeRequest) (string, error) {
	params := &stripe.ChargeParams{
		Amount:   stripe.Int64(req.AmountMinor),
		Currency: stripe.String(req.Currency),
	}
	params.Context = ctx

	if req.CustomerID != "" {
		params.Customer = stripe.String(req.CustomerID)
	} else {
		if err := params.SetSource(req.Token); err != nil {
			return "", fmt.Errorf("failed to set charge source: %w", err)
		}
	}

	charge, err := g.api.charges.New(params)
	if err != nil {
		g.logger.Warn().
			Err(err).
			Int64("amount_minor", req.AmountMinor).
			Str("currency", req.Currency).
			Msg("stripe charge failed")
		return "", classify(err)
	}

	g.logger.Info().
		Str("charge_id", charge.ID).
		Int64("amount_minor", req.AmountMinor).
		Msg("stripe charge succeeded")

	return charge.ID, nil
}

// ListCards returns up to limit stored cards for the customer.
func (g *StripeGateway) ListCards(ctx context.Context, customerID string, limit int) ([]Card, error) {
	params := &stripe.CardListParams{
		Customer: stripe.String(customerID),
	}
	params.Context = ctx
	params.Limit = stripe.Int64(int64(limit))

	var cards []Card
	iter := g.api.cards.List(params)
	for iter.Next() {
		c := iter.Card()
		cards = append(cards, Card{
			ID:       c.ID,
			Brand:    string(c.Brand),
			Last4:    c.Last4,
			ExpMonth: c.ExpMonth,
			ExpYear:  c.ExpYear,
		})
		if len(cards) >= limit {
			break
		}
	}
	if err := iter.Err(); err != nil {
		g.logger.Error().
			Err(err).
			Str("customer_id", customerID).
			Msg("failed to list stripe cards")
		return nil, classify(err)
	}

	return cards, nil
}

// classify maps a Stripe SDK error onto the closed gateway failure set.
// Classification happens here and nowhere else.
func classify(err error) *Error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		switch {
		case stripeErr.Type == stripe.ErrorTypeCard:
			return &Error{Kind: KindCard, Message: stripeErr.Msg, Cause: err}
		case stripeErr.HTTPStatusCode == http.StatusTooManyRequests:
			return &Error{Kind: KindRateLimited, Message: stripeErr.Msg, Cause: err}
		case stripeErr.HTTPStatusCode == http.StatusUnauthorized:
			return &Error{Kind: KindAuth, Message: stripeErr.Msg, Cause: err}
		case stripeErr.Type == stripe.ErrorTypeInvalidRequest:
			return &Error{Kind: KindInvalidRequest, Message: stripeErr.Msg, Cause: err}
		default:
			return &Error{Kind: KindGateway, Message: stripeErr.Msg, Cause: err}
		}
	}

	var netErr net.Error
	var urlErr *url.Error
	if errors.As(err, &netErr) || errors.As(err, &urlErr) {
		return &Error{Kind: KindNetwork, Cause: err}
	}

	return &Error{Kind: KindUnexpected, Cause: err}
}
