package payments

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"

	models "github.com/dmfernando/donation-campaign-go/models"
)

// ProcessorClient is the slice of the Stripe API the donation flows use.
type ProcessorClient interface {
	CreateCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	CreatePaymentIntent(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

// Options configures a Gateway. NewClient and SendReceipt are hooks for
// tests; both default to the real implementations when nil.
type Options struct {
	BaseURL     string
	Currency    string
	NewClient   func(secretKey string) ProcessorClient
	SendReceipt func(d *models.Donation)
}

// Gateway owns the payment initiation and webhook reconciliation flows. It
// caches one Stripe client per active secret key; InvalidateClient must be
// called after any configuration write so the next request picks up the new
// credentials.
type Gateway struct {
	store       Store
	baseURL     string
	currency    string
	newClient   func(secretKey string) ProcessorClient
	sendReceipt func(d *models.Donation)

	mu        sync.Mutex
	client    ProcessorClient
	clientKey string
}

func NewGateway(store Store, opts Options) *Gateway {
	g := &Gateway{
		store:       store,
		baseURL:     strings.TrimSuffix(opts.BaseURL, "/"),
		currency:    opts.Currency,
		newClient:   opts.NewClient,
		sendReceipt: opts.SendReceipt,
	}

	if g.currency == "" {
		g.currency = "BRL"
	}

	if g.newClient == nil {
		g.newClient = newStripeClient
	}

	return g
}

// InvalidateClient drops the cached Stripe client. Called after the admin
// saves new keys or switches between test and live mode.
func (g *Gateway) InvalidateClient() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.client = nil
	g.clientKey = ""
}

func (g *Gateway) clientFor(secretKey string) ProcessorClient {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.client == nil || g.clientKey != secretKey {
		g.client = g.newClient(secretKey)
		g.clientKey = secretKey
	}

	return g.client
}

type stripeClient struct {
	api *client.API
}

func newStripeClient(secretKey string) ProcessorClient {
	var api client.API

	api.Init(secretKey, nil)

	return &stripeClient{api: &api}
}

func (c *stripeClient) CreateCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return c.api.CheckoutSessions.New(params)
}

func (c *stripeClient) CreatePaymentIntent(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	return c.api.PaymentIntents.New(params)
}

// toMinorUnits converts a currency amount to the integer minor units Stripe
// expects (100.00 BRL -> 10000).
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func donorMetadata(req DonationRequest, method models.PaymentMethod) map[string]string {
	return map[string]string{
		"donor_name":     req.DonorName,
		"donor_email":    req.DonorEmail,
		"donor_phone":    req.DonorPhone,
		"message":        req.Message,
		"payment_method": string(method),
	}
}

func validationErr(detail string) error {
	return fmt.Errorf("%w: %s", ErrValidation, detail)
}
