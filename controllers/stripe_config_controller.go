package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	config "github.com/dmfernando/donation-campaign-go/config"
	models "github.com/dmfernando/donation-campaign-go/models"
	payments "github.com/dmfernando/donation-campaign-go/payments"
)

// mask hides all but the last four characters of a stored secret.
func mask(s string) string {
	if len(s) <= 4 {
		if s == "" {
			return ""
		}

		return "****"
	}

	return "****" + s[len(s)-4:]
}

func stripeConfigResponse(sc *models.StripeConfig) gin.H {
	return gin.H{
		"id":                   sc.ID,
		"test_publishable_key": sc.TestPublishableKey,
		"test_secret_key":      mask(sc.TestSecretKey),
		"test_webhook_secret":  mask(sc.TestWebhookSecret),
		"live_publishable_key": sc.LivePublishableKey,
		"live_secret_key":      mask(sc.LiveSecretKey),
		"live_webhook_secret":  mask(sc.LiveWebhookSecret),
		"is_test_mode":         sc.IsTestMode,
		"pix_enabled":          sc.PixEnabled,
		"updated_at":           sc.UpdatedAt,
	}
}

// ---------------- GET ----------------
func GetStripeConfig(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sc models.StripeConfig
		if err := cfg.DB.WithContext(c.Request.Context()).FirstOrCreate(&sc).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load stripe config"})
			return
		}

		c.JSON(http.StatusOK, stripeConfigResponse(&sc))
	}
}

// ---------------- UPDATE ----------------
// UpdateStripeConfig saves new keys or flips the mode/PIX flags, then drops
// the gateway's cached Stripe client so the next payment uses them.
func UpdateStripeConfig(cfg *config.Config, gw *payments.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			TestPublishableKey *string `json:"test_publishable_key"`
			TestSecretKey      *string `json:"test_secret_key"`
			TestWebhookSecret  *string `json:"test_webhook_secret"`
			LivePublishableKey *string `json:"live_publishable_key"`
			LiveSecretKey      *string `json:"live_secret_key"`
			LiveWebhookSecret  *string `json:"live_webhook_secret"`
			IsTestMode         *bool   `json:"is_test_mode"`
			PixEnabled         *bool   `json:"pix_enabled"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var sc models.StripeConfig
		if err := cfg.DB.WithContext(c.Request.Context()).FirstOrCreate(&sc).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load stripe config"})
			return
		}

		if input.TestPublishableKey != nil {
			sc.TestPublishableKey = *input.TestPublishableKey
		}
		if input.TestSecretKey != nil {
			sc.TestSecretKey = *input.TestSecretKey
		}
		if input.TestWebhookSecret != nil {
			sc.TestWebhookSecret = *input.TestWebhookSecret
		}
		if input.LivePublishableKey != nil {
			sc.LivePublishableKey = *input.LivePublishableKey
		}
		if input.LiveSecretKey != nil {
			sc.LiveSecretKey = *input.LiveSecretKey
		}
		if input.LiveWebhookSecret != nil {
			sc.LiveWebhookSecret = *input.LiveWebhookSecret
		}
		if input.IsTestMode != nil {
			sc.IsTestMode = *input.IsTestMode
		}
		if input.PixEnabled != nil {
			sc.PixEnabled = *input.PixEnabled
		}

		if err := cfg.DB.WithContext(c.Request.Context()).Save(&sc).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update stripe config"})
			return
		}

		gw.InvalidateClient()

		c.JSON(http.StatusOK, stripeConfigResponse(&sc))
	}
}
