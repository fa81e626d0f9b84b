package payments

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	models "github.com/dmfernando/donation-campaign-go/models"
)

// Store is the persistence surface the payment flows need. The production
// implementation is backed by gorm; tests substitute fakes.
type Store interface {
	StripeConfig(ctx context.Context) (*models.StripeConfig, error)
	CampaignSettings(ctx context.Context) (*models.CampaignSettings, error)
	CreateDonation(ctx context.Context, d *models.Donation) error
	DonationBySessionID(ctx context.Context, sessionID string) (*models.Donation, error)
	DonationByPaymentIntentID(ctx context.Context, intentID string) (*models.Donation, error)
	SetDonationStatus(ctx context.Context, id string, status models.DonationStatus) error
	CreateDonorMessage(ctx context.Context, m *models.DonorMessage) error
	EventProcessed(ctx context.Context, eventID string) (bool, error)
	MarkEventProcessed(ctx context.Context, eventID, eventType string) (bool, error)
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) StripeConfig(ctx context.Context) (*models.StripeConfig, error) {
	var cfg models.StripeConfig
	if err := s.db.WithContext(ctx).First(&cfg).Error; err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (s *gormStore) CampaignSettings(ctx context.Context) (*models.CampaignSettings, error) {
	var settings models.CampaignSettings
	if err := s.db.WithContext(ctx).First(&settings).Error; err != nil {
		return nil, err
	}

	return &settings, nil
}

func (s *gormStore) CreateDonation(ctx context.Context, d *models.Donation) error {
	return s.db.WithContext(ctx).Create(d).Error
}

func (s *gormStore) DonationBySessionID(ctx context.Context, sessionID string) (*models.Donation, error) {
	return s.findDonation(ctx, "stripe_session_id = ?", sessionID)
}

func (s *gormStore) DonationByPaymentIntentID(ctx context.Context, intentID string) (*models.Donation, error) {
	return s.findDonation(ctx, "stripe_payment_intent_id = ?", intentID)
}

func (s *gormStore) findDonation(ctx context.Context, query string, arg string) (*models.Donation, error) {
	var d models.Donation
	if err := s.db.WithContext(ctx).Where(query, arg).First(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonationNotFound
		}

		return nil, err
	}

	return &d, nil
}

// SetDonationStatus applies a forward status transition. The WHERE clause is
// keyed on the current status being pending, so a concurrent or redelivered
// update of an already terminal row is a no-op rather than an overwrite.
func (s *gormStore) SetDonationStatus(ctx context.Context, id string, status models.DonationStatus) error {
	return s.db.WithContext(ctx).
		Model(&models.Donation{}).
		Where("id = ? AND status = ?", id, models.DonationPending).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()}).
		Error
}

func (s *gormStore) CreateDonorMessage(ctx context.Context, m *models.DonorMessage) error {
	return s.db.WithContext(ctx).Create(m).Error
}

// EventProcessed reports whether the event id is already in the ledger.
func (s *gormStore) EventProcessed(ctx context.Context, eventID string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.WebhookEvent{}).
		Where("event_id = ?", eventID).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// MarkEventProcessed records the event id and reports whether this delivery
// was the first one. Duplicate deliveries hit the unique index and insert
// nothing.
func (s *gormStore) MarkEventProcessed(ctx context.Context, eventID, eventType string) (bool, error) {
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.WebhookEvent{
			EventID:     eventID,
			EventType:   eventType,
			ProcessedAt: time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected > 0, nil
}
