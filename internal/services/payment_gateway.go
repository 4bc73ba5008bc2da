package services

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/Manowcrm/Helnay/internal/config"
)

// IntentRequest carries everything the gateway needs to create a payment intent
type IntentRequest struct {
	BookingID   string
	Amount      int64 // minor units (cents)
	Currency    string
	Description string
	Email       string
	GuestName   string
	Nights      int
	NightlyRate float64
}

// IntentResult is what the gateway returns for a created payment intent
type IntentResult struct {
	IntentID     string
	ClientSecret string
}

// WebhookEvent is a provider event with its signature already verified
type WebhookEvent struct {
	Type      string
	IntentID  string
	BookingID string
	Amount    int64
}

// PaymentGateway abstracts the payment provider so services can be tested
// against fakes
type PaymentGateway interface {
	CreateIntent(req *IntentRequest) (*IntentResult, error)
	ParseWebhook(payload []byte, sigHeader string) (*WebhookEvent, error)
	IsConfigured() bool
}

// StripeGateway implements PaymentGateway against the Stripe API
type StripeGateway struct {
	config *config.StripeConfig
	logger *logrus.Logger
	api    *client.API
}

// NewStripeGateway creates a new Stripe gateway
func NewStripeGateway(cfg *config.StripeConfig, logger *logrus.Logger) *StripeGateway {
	api := &client.API{}
	api.Init(cfg.SecretKey, nil)

	return &StripeGateway{
		config: cfg,
		logger: logger,
		api:    api,
	}
}

// CreateIntent creates a Stripe PaymentIntent for the given amount
func (g *StripeGateway) CreateIntent(req *IntentRequest) (*IntentResult, error) {
	if !g.IsConfigured() {
		return nil, fmt.Errorf("payment gateway not configured: missing secret key")
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.Amount),
		Currency: stripe.String(req.Currency),
	}
	if req.Description != "" {
		params.Description = stripe.String(req.Description)
	}
	if req.Email != "" {
		params.ReceiptEmail = stripe.String(req.Email)
	}
	params.AddMetadata("booking_id", req.BookingID)
	if req.GuestName != "" {
		params.AddMetadata("guest_name", req.GuestName)
	}
	if req.Email != "" {
		params.AddMetadata("guest_email", req.Email)
	}
	if req.Nights > 0 {
		params.AddMetadata("nights", strconv.Itoa(req.Nights))
		params.AddMetadata("nightly_rate", strconv.FormatFloat(req.NightlyRate, 'f', 2, 64))
	}

	g.logger.WithFields(logrus.Fields{
		"booking_id": req.BookingID,
		"amount":     req.Amount,
		"currency":   req.Currency,
	}).Info("Creating payment intent")

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		g.logger.WithError(err).WithField("booking_id", req.BookingID).
			Error("Payment intent creation failed")
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return &IntentResult{
		IntentID:     pi.ID,
		ClientSecret: pi.ClientSecret,
	}, nil
}

// ParseWebhook verifies the event signature and extracts the fields the
// payment flow cares about. Verification happens before any payload parsing.
func (g *StripeGateway) ParseWebhook(payload []byte, sigHeader string) (*WebhookEvent, error) {
	event, err := webhook.ConstructEvent(payload, sigHeader, g.config.WebhookSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	parsed := &WebhookEvent{Type: string(event.Type)}

	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return nil, fmt.Errorf("failed to parse event payload: %w", err)
	}

	parsed.IntentID = pi.ID
	parsed.Amount = pi.Amount
	parsed.BookingID = pi.Metadata["booking_id"]

	return parsed, nil
}

// IsConfigured returns true if the gateway has credentials
func (g *StripeGateway) IsConfigured() bool {
	return g.config.SecretKey != ""
}
