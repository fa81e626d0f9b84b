package payments

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v74"

	models "github.com/dmfernando/donation-campaign-go/models"
)

func validRequest() DonationRequest {
	return DonationRequest{
		Amount:     100.00,
		DonorName:  "Ana Silva",
		DonorEmail: "ana@example.com",
		Message:    "Boa sorte!",
	}
}

func TestCreateCheckoutSessionValidation(t *testing.T) {
	tests := []struct {
		name string
		req  DonationRequest
	}{
		{"zero amount", DonationRequest{Amount: 0, DonorName: "Ana", DonorEmail: "a@x.com"}},
		{"negative amount", DonationRequest{Amount: -5, DonorName: "Ana", DonorEmail: "a@x.com"}},
		{"missing name", DonationRequest{Amount: 10, DonorEmail: "a@x.com"}},
		{"missing email", DonationRequest{Amount: 10, DonorName: "Ana"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			proc := &fakeProcessor{}
			gw := newTestGateway(store, proc)

			_, err := gw.CreateCheckoutSession(context.Background(), tt.req)

			assert.ErrorIs(t, err, ErrValidation)
			assert.Zero(t, proc.calls, "no processor call before validation")
			assert.Empty(t, store.donations, "no donation row on validation failure")
		})
	}
}

func TestCreateCheckoutSessionNotConfigured(t *testing.T) {
	store := newFakeStore()
	store.cfg.TestSecretKey = ""
	gw := newTestGateway(store, &fakeProcessor{})

	_, err := gw.CreateCheckoutSession(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrStripeNotConfigured)
	assert.Empty(t, store.donations)
}

func TestCreateCheckoutSessionSuccess(t *testing.T) {
	store := newFakeStore()
	proc := &fakeProcessor{
		session: &stripe.CheckoutSession{
			ID:  "cs_test_123",
			URL: "https://checkout.stripe.com/pay/cs_test_123",
		},
	}
	gw := newTestGateway(store, proc)

	result, err := gw.CreateCheckoutSession(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "cs_test_123", result.SessionID)
	assert.Equal(t, "https://checkout.stripe.com/pay/cs_test_123", result.CheckoutURL)
	assert.NotEmpty(t, result.DonationID)

	require.Len(t, store.donations, 1)
	d := store.donations[0]
	assert.Equal(t, models.DonationPending, d.Status)
	assert.Equal(t, models.PaymentMethodCard, d.PaymentMethod)
	assert.Equal(t, "cs_test_123", d.StripeSessionID)
	assert.Empty(t, d.StripePaymentIntentID)
	assert.Equal(t, 100.00, d.Amount)
	assert.Equal(t, "BRL", d.Currency)

	// single line item priced in minor units, tagged with donor metadata
	require.Len(t, proc.sessionParams.LineItems, 1)
	assert.Equal(t, int64(10000), *proc.sessionParams.LineItems[0].PriceData.UnitAmount)
	assert.Equal(t, "brl", *proc.sessionParams.LineItems[0].PriceData.Currency)
	assert.Equal(t, "Ana Silva", proc.sessionParams.Metadata["donor_name"])
	assert.Equal(t, "Boa sorte!", proc.sessionParams.Metadata["message"])
	assert.Contains(t, *proc.sessionParams.SuccessURL, "{CHECKOUT_SESSION_ID}")
}

func TestCreateCheckoutSessionProcessorFailure(t *testing.T) {
	store := newFakeStore()
	proc := &fakeProcessor{err: errors.New("card network down")}
	gw := newTestGateway(store, proc)

	_, err := gw.CreateCheckoutSession(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrStripeRequestFailed)
	assert.Empty(t, store.donations)
}

func TestCreateCheckoutSessionInsertFailure(t *testing.T) {
	store := newFakeStore()
	store.createErr = errors.New("connection reset")
	proc := &fakeProcessor{session: &stripe.CheckoutSession{ID: "cs_orphan"}}
	gw := newTestGateway(store, proc)

	_, err := gw.CreateCheckoutSession(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrPersistenceFailed)
}

func TestCreatePixPaymentDisabled(t *testing.T) {
	store := newFakeStore()
	store.cfg.PixEnabled = false
	proc := &fakeProcessor{}
	gw := newTestGateway(store, proc)

	_, err := gw.CreatePixPayment(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrPixNotEnabled)
	assert.Zero(t, proc.calls, "no processor call when pix is disabled")
	assert.Empty(t, store.donations, "no donation row when pix is disabled")
}

func TestCreatePixPaymentNotConfigured(t *testing.T) {
	store := newFakeStore()
	store.cfg.TestSecretKey = ""
	gw := newTestGateway(store, &fakeProcessor{})

	_, err := gw.CreatePixPayment(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrPixNotConfigured)
}

func TestCreatePixPaymentSuccess(t *testing.T) {
	store := newFakeStore()
	proc := &fakeProcessor{
		intent: &stripe.PaymentIntent{
			ID:           "pi_test_1",
			ClientSecret: "pi_test_1_secret",
			NextAction: &stripe.PaymentIntentNextAction{
				PixDisplayQRCode: &stripe.PaymentIntentNextActionPixDisplayQRCode{
					Data: "00020126330014br.gov.bcb.pix",
				},
			},
		},
	}
	gw := newTestGateway(store, proc)

	req := validRequest()
	req.Amount = 50.00

	result, err := gw.CreatePixPayment(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "pi_test_1_secret", result.ClientSecret)
	assert.Equal(t, "00020126330014br.gov.bcb.pix", result.PixQRCode)

	require.Len(t, store.donations, 1)
	d := store.donations[0]
	assert.Equal(t, models.PaymentMethodPix, d.PaymentMethod)
	assert.Equal(t, models.DonationPending, d.Status)
	assert.Equal(t, "pi_test_1", d.StripePaymentIntentID)
	assert.Empty(t, d.StripeSessionID)

	assert.Equal(t, int64(5000), *proc.intentParams.Amount)
	assert.Equal(t, "brl", *proc.intentParams.Currency)
}

func TestCreatePixPaymentNoQRYet(t *testing.T) {
	store := newFakeStore()
	proc := &fakeProcessor{
		intent: &stripe.PaymentIntent{ID: "pi_test_2", ClientSecret: "pi_test_2_secret"},
	}
	gw := newTestGateway(store, proc)

	result, err := gw.CreatePixPayment(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Empty(t, result.PixQRCode)
}

func TestInvalidateClientRebuildsStripeClient(t *testing.T) {
	store := newFakeStore()

	var built int

	gw := NewGateway(store, Options{
		NewClient: func(secretKey string) ProcessorClient {
			built++
			return &fakeProcessor{session: &stripe.CheckoutSession{ID: "cs_x"}}
		},
	})

	_, err := gw.CreateCheckoutSession(context.Background(), validRequest())
	require.NoError(t, err)
	_, err = gw.CreateCheckoutSession(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, built, "client is cached across requests")

	gw.InvalidateClient()

	_, err = gw.CreateCheckoutSession(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, 2, built, "invalidation forces a rebuild")
}

func TestClientRebuiltWhenKeyChanges(t *testing.T) {
	store := newFakeStore()

	var keys []string

	gw := NewGateway(store, Options{
		NewClient: func(secretKey string) ProcessorClient {
			keys = append(keys, secretKey)
			return &fakeProcessor{session: &stripe.CheckoutSession{ID: "cs_x"}}
		},
	})

	_, err := gw.CreateCheckoutSession(context.Background(), validRequest())
	require.NoError(t, err)

	store.cfg.IsTestMode = false
	store.cfg.LiveSecretKey = "sk_live_456"

	_, err = gw.CreateCheckoutSession(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, []string{"sk_test_123", "sk_live_456"}, keys)
}
