package models

import "time"

// CampaignSettings is the singleton campaign configuration row.
type CampaignSettings struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	GoalAmount  float64   `gorm:"not null" json:"goal_amount"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CampaignStats is the public read-side aggregation over completed donations.
type CampaignStats struct {
	GoalAmount          float64 `json:"goal_amount"`
	Title               string  `json:"title"`
	Description         string  `json:"description"`
	TotalDonated        float64 `json:"total_donated"`
	PercentageCompleted float64 `json:"percentage_completed"`
}
