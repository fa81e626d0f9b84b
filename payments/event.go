package payments

import (
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v74"
)

// The webhook handler only acts on three event types. Each recognized type is
// decoded into its own variant, with validation, before any dispatch; every
// other type lands in the unrecognized variant and is acknowledged untouched.
const (
	eventCheckoutSessionCompleted = "checkout.session.completed"
	eventPaymentIntentSucceeded   = "payment_intent.succeeded"
	eventPaymentIntentFailed      = "payment_intent.payment_failed"
)

type donationEvent interface {
	eventID() string
	eventType() string
}

type sessionCompletedEvent struct {
	id      string
	session stripe.CheckoutSession
}

func (e sessionCompletedEvent) eventID() string   { return e.id }
func (e sessionCompletedEvent) eventType() string { return eventCheckoutSessionCompleted }

type intentSucceededEvent struct {
	id     string
	intent stripe.PaymentIntent
}

func (e intentSucceededEvent) eventID() string   { return e.id }
func (e intentSucceededEvent) eventType() string { return eventPaymentIntentSucceeded }

type intentFailedEvent struct {
	id     string
	intent stripe.PaymentIntent
}

func (e intentFailedEvent) eventID() string   { return e.id }
func (e intentFailedEvent) eventType() string { return eventPaymentIntentFailed }

type unrecognizedEvent struct {
	id  string
	typ string
}

func (e unrecognizedEvent) eventID() string   { return e.id }
func (e unrecognizedEvent) eventType() string { return e.typ }

func decodeEvent(event *stripe.Event) (donationEvent, error) {
	switch event.Type {
	case eventCheckoutSessionCompleted:
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}

		if session.ID == "" {
			return nil, fmt.Errorf("%w: checkout session without id", ErrMalformedPayload)
		}

		return sessionCompletedEvent{id: event.ID, session: session}, nil
	case eventPaymentIntentSucceeded, eventPaymentIntentFailed:
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}

		if intent.ID == "" {
			return nil, fmt.Errorf("%w: payment intent without id", ErrMalformedPayload)
		}

		if event.Type == eventPaymentIntentSucceeded {
			return intentSucceededEvent{id: event.ID, intent: intent}, nil
		}

		return intentFailedEvent{id: event.ID, intent: intent}, nil
	default:
		return unrecognizedEvent{id: event.ID, typ: event.Type}, nil
	}
}
