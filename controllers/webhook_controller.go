package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	payments "github.com/dmfernando/donation-campaign-go/payments"
)

// StripeWebhook receives asynchronous events from Stripe. A 2xx tells Stripe
// the event is settled; anything else makes it retry, so only a failed status
// write earns a 5xx. Bad signatures and malformed bodies are rejected with a
// 400 since retrying those can never succeed either.
func StripeWebhook(gw *payments.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read body", "code": "MALFORMED_PAYLOAD"})
			return
		}

		signature := c.GetHeader("Stripe-Signature")
		if signature == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing Stripe-Signature header", "code": "INVALID_SIGNATURE"})
			return
		}

		result, err := gw.HandleWebhook(c.Request.Context(), body, signature)

		switch {
		case err == nil:
			c.JSON(http.StatusOK, result)
		case errors.Is(err, payments.ErrInvalidSignature):
			c.JSON(http.StatusBadRequest, gin.H{"error": "signature verification failed", "code": "INVALID_SIGNATURE"})
		case errors.Is(err, payments.ErrMalformedPayload):
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed event payload", "code": "MALFORMED_PAYLOAD"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "event processing failed", "code": "PROCESSING_FAILED"})
		}
	}
}
