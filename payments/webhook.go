package payments

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/webhook"

	models "github.com/dmfernando/donation-campaign-go/models"
)

// WebhookResult is the acknowledgement body returned to Stripe.
type WebhookResult struct {
	Received    bool      `json:"received"`
	EventType   string    `json:"event_type"`
	EventID     string    `json:"event_id"`
	ProcessedAt time.Time `json:"processed_at"`
}

// HandleWebhook verifies, decodes and applies one processor event. The only
// errors it returns are ones worth a retry or a hard reject at the HTTP
// layer: bad signature, malformed payload, or a failed status write. A
// missing donation row or an unrecognized event type is logged and
// acknowledged.
func (g *Gateway) HandleWebhook(ctx context.Context, body []byte, signature string) (*WebhookResult, error) {
	cfg, err := g.store.StripeConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStripeNotConfigured, err)
	}

	secret := cfg.ActiveCredentials().WebhookSecret
	if secret == "" {
		return nil, ErrStripeNotConfigured
	}

	event, err := webhook.ConstructEventWithOptions(body, signature, secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	decoded, err := decodeEvent(&event)
	if err != nil {
		return nil, err
	}

	result := &WebhookResult{
		Received:    true,
		EventType:   event.Type,
		EventID:     event.ID,
		ProcessedAt: time.Now().UTC(),
	}

	if _, ok := decoded.(unrecognizedEvent); ok {
		log.Printf("webhook: ignoring event type %s (%s)", event.Type, event.ID)
		return result, nil
	}

	processed, err := g.store.EventProcessed(ctx, decoded.eventID())
	if err != nil {
		// Processing anyway is safe: every transition below is idempotent.
		log.Printf("webhook: event ledger read failed for %s: %v", decoded.eventID(), err)
	} else if processed {
		log.Printf("webhook: event %s already processed, skipping", decoded.eventID())
		return result, nil
	}

	switch e := decoded.(type) {
	case sessionCompletedEvent:
		// Only a paid session completes the donation; an unpaid one (async
		// payment methods) leaves it pending until a later event.
		target := models.DonationStatus("")
		if e.session.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid {
			target = models.DonationCompleted
		}

		err = g.reconcile(ctx, g.store.DonationBySessionID, e.session.ID, target, e.session.Metadata)
	case intentSucceededEvent:
		err = g.reconcile(ctx, g.store.DonationByPaymentIntentID, e.intent.ID, models.DonationCompleted, e.intent.Metadata)
	case intentFailedEvent:
		err = g.reconcile(ctx, g.store.DonationByPaymentIntentID, e.intent.ID, models.DonationFailed, e.intent.Metadata)
	}

	if err != nil {
		return nil, err
	}

	// Ledgered only once the transition has been applied. A delivery that
	// failed mid-flight keeps its event id out of the ledger, so the retry
	// Stripe sends after our 5xx is processed in full instead of being
	// skipped as a duplicate.
	if _, err := g.store.MarkEventProcessed(ctx, decoded.eventID(), decoded.eventType()); err != nil {
		log.Printf("webhook: event ledger write failed for %s: %v", decoded.eventID(), err)
	}

	return result, nil
}

type donationLookup func(ctx context.Context, ref string) (*models.Donation, error)

// reconcile converges the donation found by ref with the processor-reported
// status. An empty target means the event carried no transition. Lookups are
// keyed on the immutable processor reference, so reapplying the same event is
// a no-op once the row is terminal.
func (g *Gateway) reconcile(ctx context.Context, lookup donationLookup, ref string, target models.DonationStatus, metadata map[string]string) error {
	donation, err := lookup(ctx, ref)

	switch {
	case err == nil:
		if target != "" && target != donation.Status {
			if donation.Status.Terminal() {
				log.Printf("webhook: donation %s already %s, ignoring transition to %s", donation.ID, donation.Status, target)
			} else if err := g.store.SetDonationStatus(ctx, donation.ID, target); err != nil {
				return fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
			} else {
				donation.Status = target
				log.Printf("webhook: donation %s -> %s (ref %s)", donation.ID, target, ref)

				// The receipt is tied to the transition itself, not the
				// resulting state, so reprocessing an already completed
				// donation never re-sends it.
				if target == models.DonationCompleted && g.sendReceipt != nil {
					g.sendReceipt(donation)
				}
			}
		}
	case errors.Is(err, ErrDonationNotFound):
		// Delivery order relative to the initiating request is not
		// guaranteed; a missing row is tolerated, retrying won't create it.
		log.Printf("webhook: no donation found for reference %s", ref)
	default:
		return fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}

	// Failed payments never queue a donor message for moderation.
	if target == models.DonationCompleted {
		g.saveDonorMessage(ctx, metadata)
	}

	return nil
}

// saveDonorMessage stores the donor's free-text message for moderation. This
// is decoupled from the donation's own message field and is best effort: a
// failed insert is logged, never retried via the webhook.
func (g *Gateway) saveDonorMessage(ctx context.Context, metadata map[string]string) {
	message := metadata["message"]
	donorName := metadata["donor_name"]

	if message == "" || donorName == "" {
		return
	}

	m := &models.DonorMessage{
		DonorName:  donorName,
		Message:    message,
		IsApproved: false,
	}

	if err := g.store.CreateDonorMessage(ctx, m); err != nil {
		log.Printf("webhook: failed to save donor message from %s: %v", donorName, err)
	}
}
