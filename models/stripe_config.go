package models

import "time"

// StripeCredentials is one key set (test or live) picked out of StripeConfig.
type StripeCredentials struct {
	PublishableKey string
	SecretKey      string
	WebhookSecret  string
}

// Configured reports whether the credential set can be used for API calls.
func (c StripeCredentials) Configured() bool {
	return c.SecretKey != ""
}

// StripeConfig is the singleton payment-processor configuration row. Test and
// live credentials coexist; IsTestMode selects which set is active at the time
// a payment is initiated.
type StripeConfig struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	TestPublishableKey string    `json:"test_publishable_key"`
	TestSecretKey      string    `json:"-"`
	TestWebhookSecret  string    `json:"-"`
	LivePublishableKey string    `json:"live_publishable_key"`
	LiveSecretKey      string    `json:"-"`
	LiveWebhookSecret  string    `json:"-"`
	IsTestMode         bool      `gorm:"default:true" json:"is_test_mode"`
	PixEnabled         bool      `gorm:"default:false" json:"pix_enabled"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ActiveCredentials returns the key set selected by the test/live mode flag.
func (c *StripeConfig) ActiveCredentials() StripeCredentials {
	if c.IsTestMode {
		return StripeCredentials{
			PublishableKey: c.TestPublishableKey,
			SecretKey:      c.TestSecretKey,
			WebhookSecret:  c.TestWebhookSecret,
		}
	}

	return StripeCredentials{
		PublishableKey: c.LivePublishableKey,
		SecretKey:      c.LiveSecretKey,
		WebhookSecret:  c.LiveWebhookSecret,
	}
}
