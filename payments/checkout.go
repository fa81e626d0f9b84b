package payments

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/stripe/stripe-go/v74"

	models "github.com/dmfernando/donation-campaign-go/models"
)

// DonationRequest is the donor-submitted payload shared by the card and PIX
// initiation endpoints.
type DonationRequest struct {
	Amount     float64 `json:"amount"`
	DonorName  string  `json:"donor_name"`
	DonorEmail string  `json:"donor_email"`
	DonorPhone string  `json:"donor_phone,omitempty"`
	Message    string  `json:"message,omitempty"`
}

func (r DonationRequest) validate() error {
	if r.Amount <= 0 {
		return validationErr("amount must be greater than 0")
	}

	if strings.TrimSpace(r.DonorName) == "" {
		return validationErr("donor_name is required")
	}

	if strings.TrimSpace(r.DonorEmail) == "" {
		return validationErr("donor_email is required")
	}

	return nil
}

// CheckoutResult is returned to the client so it can redirect the donor to
// the hosted Stripe checkout page.
type CheckoutResult struct {
	SessionID   string `json:"session_id"`
	DonationID  string `json:"donation_id"`
	CheckoutURL string `json:"checkout_url"`
}

// CreateCheckoutSession creates a hosted checkout session for a card donation
// and records the pending donation locally. The donation row is written
// synchronously so the admin panel and the thank-you page have something to
// show before the webhook confirmation arrives.
func (g *Gateway) CreateCheckoutSession(ctx context.Context, req DonationRequest) (*CheckoutResult, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	cfg, err := g.store.StripeConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStripeNotConfigured, err)
	}

	creds := cfg.ActiveCredentials()
	if !creds.Configured() {
		return nil, ErrStripeNotConfigured
	}

	productName := "Doação"
	if settings, err := g.store.CampaignSettings(ctx); err == nil && settings.Title != "" {
		productName = "Doação - " + settings.Title
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(g.baseURL + "/obrigado?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:          stripe.String(g.baseURL + "/doacao"),
		CustomerEmail:      stripe.String(req.DonorEmail),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(strings.ToLower(g.currency)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(productName),
						Description: stripe.String("Doação de " + req.DonorName),
					},
					UnitAmount: stripe.Int64(toMinorUnits(req.Amount)),
				},
				Quantity: stripe.Int64(1),
			},
		},
	}

	for k, v := range donorMetadata(req, models.PaymentMethodCard) {
		params.AddMetadata(k, v)
	}

	session, err := g.clientFor(creds.SecretKey).CreateCheckoutSession(params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStripeRequestFailed, err)
	}

	donation := &models.Donation{
		DonorName:       req.DonorName,
		DonorEmail:      req.DonorEmail,
		DonorPhone:      req.DonorPhone,
		Amount:          req.Amount,
		Currency:        strings.ToUpper(g.currency),
		PaymentMethod:   models.PaymentMethodCard,
		StripeSessionID: session.ID,
		Status:          models.DonationPending,
		Message:         req.Message,
	}

	if err := g.store.CreateDonation(ctx, donation); err != nil {
		// The session already exists on the Stripe side with no local record;
		// the webhook lookup for it will miss and be acknowledged.
		log.Printf("ALERT: stripe session %s created but donation insert failed: %v", session.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}

	return &CheckoutResult{
		SessionID:   session.ID,
		DonationID:  donation.ID,
		CheckoutURL: session.URL,
	}, nil
}
