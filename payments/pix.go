package payments

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/stripe/stripe-go/v74"

	models "github.com/dmfernando/donation-campaign-go/models"
)

// PixResult carries what the client needs to display the PIX payment: the
// intent's client secret and, when Stripe returned it immediately, the QR
// payload.
type PixResult struct {
	ClientSecret string `json:"client_secret"`
	DonationID   string `json:"donation_id"`
	PixQRCode    string `json:"pix_qr_code,omitempty"`
}

// CreatePixPayment creates a PIX payment intent and records the pending
// donation locally. PIX must be explicitly enabled in the configuration;
// nothing is written when it is not.
func (g *Gateway) CreatePixPayment(ctx context.Context, req DonationRequest) (*PixResult, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	cfg, err := g.store.StripeConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPixNotConfigured, err)
	}

	creds := cfg.ActiveCredentials()
	if !creds.Configured() {
		return nil, ErrPixNotConfigured
	}

	if !cfg.PixEnabled {
		return nil, ErrPixNotEnabled
	}

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(toMinorUnits(req.Amount)),
		Currency:           stripe.String("brl"),
		PaymentMethodTypes: stripe.StringSlice([]string{"pix"}),
	}

	for k, v := range donorMetadata(req, models.PaymentMethodPix) {
		params.AddMetadata(k, v)
	}

	intent, err := g.clientFor(creds.SecretKey).CreatePaymentIntent(params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStripeRequestFailed, err)
	}

	donation := &models.Donation{
		DonorName:             req.DonorName,
		DonorEmail:            req.DonorEmail,
		DonorPhone:            req.DonorPhone,
		Amount:                req.Amount,
		Currency:              strings.ToUpper(g.currency),
		PaymentMethod:         models.PaymentMethodPix,
		StripePaymentIntentID: intent.ID,
		Status:                models.DonationPending,
		Message:               req.Message,
	}

	if err := g.store.CreateDonation(ctx, donation); err != nil {
		log.Printf("ALERT: payment intent %s created but donation insert failed: %v", intent.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}

	return &PixResult{
		ClientSecret: intent.ClientSecret,
		DonationID:   donation.ID,
		PixQRCode:    pixQRCode(intent),
	}, nil
}

func pixQRCode(intent *stripe.PaymentIntent) string {
	if intent.NextAction == nil || intent.NextAction.PixDisplayQRCode == nil {
		return ""
	}

	return intent.NextAction.PixDisplayQRCode.Data
}
