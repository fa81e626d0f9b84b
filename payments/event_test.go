package payments

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v74"
)

func parseEvent(t *testing.T, raw string) *stripe.Event {
	t.Helper()

	var event stripe.Event
	require.NoError(t, json.Unmarshal([]byte(raw), &event))

	return &event
}

func TestDecodeEventSessionCompleted(t *testing.T) {
	event := parseEvent(t, `{"id":"evt_1","type":"checkout.session.completed","data":{"object":{"id":"cs_1","payment_status":"paid"}}}`)

	decoded, err := decodeEvent(event)
	require.NoError(t, err)

	e, ok := decoded.(sessionCompletedEvent)
	require.True(t, ok)
	assert.Equal(t, "evt_1", e.eventID())
	assert.Equal(t, "cs_1", e.session.ID)
	assert.Equal(t, stripe.CheckoutSessionPaymentStatusPaid, e.session.PaymentStatus)
}

func TestDecodeEventIntentVariants(t *testing.T) {
	succeeded := parseEvent(t, `{"id":"evt_2","type":"payment_intent.succeeded","data":{"object":{"id":"pi_1"}}}`)
	failed := parseEvent(t, `{"id":"evt_3","type":"payment_intent.payment_failed","data":{"object":{"id":"pi_2"}}}`)

	d1, err := decodeEvent(succeeded)
	require.NoError(t, err)
	e1, ok := d1.(intentSucceededEvent)
	require.True(t, ok)
	assert.Equal(t, "pi_1", e1.intent.ID)

	d2, err := decodeEvent(failed)
	require.NoError(t, err)
	e2, ok := d2.(intentFailedEvent)
	require.True(t, ok)
	assert.Equal(t, "pi_2", e2.intent.ID)
}

func TestDecodeEventUnrecognized(t *testing.T) {
	event := parseEvent(t, `{"id":"evt_4","type":"customer.created","data":{"object":{"id":"cus_1"}}}`)

	decoded, err := decodeEvent(event)
	require.NoError(t, err)

	e, ok := decoded.(unrecognizedEvent)
	require.True(t, ok)
	assert.Equal(t, "customer.created", e.eventType())
}

func TestDecodeEventMissingObjectID(t *testing.T) {
	session := parseEvent(t, `{"id":"evt_5","type":"checkout.session.completed","data":{"object":{"payment_status":"paid"}}}`)
	intent := parseEvent(t, `{"id":"evt_6","type":"payment_intent.succeeded","data":{"object":{}}}`)

	_, err := decodeEvent(session)
	assert.ErrorIs(t, err, ErrMalformedPayload)

	_, err = decodeEvent(intent)
	assert.ErrorIs(t, err, ErrMalformedPayload)
}
