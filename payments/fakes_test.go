package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stripe/stripe-go/v74"

	models "github.com/dmfernando/donation-campaign-go/models"
)

const testWebhookSecret = "whsec_test_secret"

type fakeStore struct {
	cfg       *models.StripeConfig
	cfgErr    error
	settings  *models.CampaignSettings
	donations []*models.Donation
	createErr error
	lookupErr error
	statusErr error
	msgErr    error
	ledgerErr error

	messages  []*models.DonorMessage
	processed map[string]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		cfg: &models.StripeConfig{
			TestSecretKey:     "sk_test_123",
			TestWebhookSecret: testWebhookSecret,
			IsTestMode:        true,
			PixEnabled:        true,
		},
		settings:  &models.CampaignSettings{GoalAmount: 50000, Title: "Casa Dom Fernando"},
		processed: map[string]bool{},
	}
}

func (s *fakeStore) StripeConfig(ctx context.Context) (*models.StripeConfig, error) {
	if s.cfgErr != nil {
		return nil, s.cfgErr
	}

	return s.cfg, nil
}

func (s *fakeStore) CampaignSettings(ctx context.Context) (*models.CampaignSettings, error) {
	return s.settings, nil
}

func (s *fakeStore) CreateDonation(ctx context.Context, d *models.Donation) error {
	if s.createErr != nil {
		return s.createErr
	}

	if d.ID == "" {
		d.ID = fmt.Sprintf("don_%d", len(s.donations)+1)
	}

	s.donations = append(s.donations, d)

	return nil
}

func (s *fakeStore) DonationBySessionID(ctx context.Context, sessionID string) (*models.Donation, error) {
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}

	for _, d := range s.donations {
		if d.StripeSessionID == sessionID {
			return d, nil
		}
	}

	return nil, ErrDonationNotFound
}

func (s *fakeStore) DonationByPaymentIntentID(ctx context.Context, intentID string) (*models.Donation, error) {
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}

	for _, d := range s.donations {
		if d.StripePaymentIntentID == intentID {
			return d, nil
		}
	}

	return nil, ErrDonationNotFound
}

func (s *fakeStore) SetDonationStatus(ctx context.Context, id string, status models.DonationStatus) error {
	if s.statusErr != nil {
		return s.statusErr
	}

	for _, d := range s.donations {
		if d.ID == id && d.Status == models.DonationPending {
			d.Status = status
			d.UpdatedAt = time.Now()
		}
	}

	return nil
}

func (s *fakeStore) CreateDonorMessage(ctx context.Context, m *models.DonorMessage) error {
	if s.msgErr != nil {
		return s.msgErr
	}

	s.messages = append(s.messages, m)

	return nil
}

func (s *fakeStore) EventProcessed(ctx context.Context, eventID string) (bool, error) {
	if s.ledgerErr != nil {
		return false, s.ledgerErr
	}

	return s.processed[eventID], nil
}

func (s *fakeStore) MarkEventProcessed(ctx context.Context, eventID, eventType string) (bool, error) {
	if s.ledgerErr != nil {
		return false, s.ledgerErr
	}

	if s.processed[eventID] {
		return false, nil
	}

	s.processed[eventID] = true

	return true, nil
}

type fakeProcessor struct {
	session *stripe.CheckoutSession
	intent  *stripe.PaymentIntent
	err     error

	sessionParams *stripe.CheckoutSessionParams
	intentParams  *stripe.PaymentIntentParams
	calls         int
}

func (p *fakeProcessor) CreateCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	p.calls++
	p.sessionParams = params

	if p.err != nil {
		return nil, p.err
	}

	return p.session, nil
}

func (p *fakeProcessor) CreatePaymentIntent(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	p.calls++
	p.intentParams = params

	if p.err != nil {
		return nil, p.err
	}

	return p.intent, nil
}

func newTestGateway(store *fakeStore, proc *fakeProcessor) *Gateway {
	return NewGateway(store, Options{
		BaseURL:  "https://campaign.example",
		Currency: "BRL",
		NewClient: func(secretKey string) ProcessorClient {
			return proc
		},
	})
}

// signPayload builds a Stripe-Signature header the webhook package accepts.
func signPayload(t *testing.T, payload []byte, secret string) string {
	t.Helper()

	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)

	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}
