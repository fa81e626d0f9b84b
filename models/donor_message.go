package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DonorMessage is a free-text message left by a donor at checkout. Messages
// arrive unapproved and require manual moderation before public display.
type DonorMessage struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	DonorName  string    `gorm:"not null" json:"donor_name"`
	Message    string    `gorm:"not null" json:"message"`
	IsApproved bool      `gorm:"default:false" json:"is_approved"`
	IsFeatured bool      `gorm:"default:false" json:"is_featured"`
	CreatedAt  time.Time `json:"created_at"`
}

func (m *DonorMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}

	return nil
}
