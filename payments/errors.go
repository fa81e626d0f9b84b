package payments

import (
	"errors"
)

var (
	ErrStripeNotConfigured = errors.New("stripe is not configured")
	ErrPixNotConfigured    = errors.New("pix is not configured")
	ErrPixNotEnabled       = errors.New("pix is not enabled")
	ErrValidation          = errors.New("invalid donation request")
	ErrStripeRequestFailed = errors.New("stripe request failed")
	ErrPersistenceFailed   = errors.New("failed to persist donation")
	ErrInvalidSignature    = errors.New("invalid webhook signature")
	ErrMalformedPayload    = errors.New("malformed webhook payload")
	ErrDonationNotFound    = errors.New("donation not found")
)
