package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DonationStatus string

const (
	DonationPending   DonationStatus = "pending"
	DonationCompleted DonationStatus = "completed"
	DonationFailed    DonationStatus = "failed"
	DonationCancelled DonationStatus = "cancelled"
)

// Terminal reports whether no further status transition is allowed.
func (s DonationStatus) Terminal() bool {
	return s == DonationCompleted || s == DonationFailed || s == DonationCancelled
}

// Valid reports whether s is one of the known donation statuses.
func (s DonationStatus) Valid() bool {
	switch s {
	case DonationPending, DonationCompleted, DonationFailed, DonationCancelled:
		return true
	}

	return false
}

type PaymentMethod string

const (
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodPix  PaymentMethod = "pix"
)

// Donation is a single donor's contribution attempt. Rows are created in
// pending status by the initiation endpoints and only ever move forward
// (pending -> completed/failed/cancelled); they are never deleted.
type Donation struct {
	ID                    string         `gorm:"type:uuid;primaryKey" json:"id"`
	DonorName             string         `gorm:"not null" json:"donor_name"`
	DonorEmail            string         `gorm:"not null" json:"donor_email"`
	DonorPhone            string         `json:"donor_phone,omitempty"`
	Amount                float64        `gorm:"not null" json:"amount"`
	Currency              string         `gorm:"type:varchar(3);not null" json:"currency"`
	PaymentMethod         PaymentMethod  `gorm:"type:varchar(10);not null" json:"payment_method"`
	StripePaymentIntentID string         `gorm:"index" json:"stripe_payment_intent_id,omitempty"`
	StripeSessionID       string         `gorm:"index" json:"stripe_session_id,omitempty"`
	Status                DonationStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Message               string         `json:"message,omitempty"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
}

func (d *Donation) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}

	return nil
}
