package models

import "time"

// WebhookEvent records processor event ids that have already been applied, so
// a redelivered event is acknowledged without reprocessing.
type WebhookEvent struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	EventID     string    `gorm:"type:varchar(191);not null;uniqueIndex" json:"event_id"`
	EventType   string    `gorm:"type:varchar(100);not null;index" json:"event_type"`
	ProcessedAt time.Time `json:"processed_at"`
}
