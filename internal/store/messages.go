package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stephanygrace/customer-portal/internal/models"
)

// MessageStore keeps the conversation thread of each booking.
type MessageStore interface {
	List(ctx context.Context, bookingID string) ([]models.Message, error)
	Create(ctx context.Context, bookingID, userID, text string) (*models.Message, error)
}

// GormMessageStore implements MessageStore on a gorm database.
type GormMessageStore struct {
	db *gorm.DB
}

// NewMessageStore creates a GormMessageStore.
func NewMessageStore(db *gorm.DB) *GormMessageStore {
	return &GormMessageStore{db: db}
}

// List returns the booking's messages oldest first.
func (s *GormMessageStore) List(ctx context.Context, bookingID string) ([]models.Message, error) {
	messages := []models.Message{}
	if err := s.db.WithContext(ctx).Where("booking_id = ?", bookingID).Order("id asc").Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to list messages for booking %s: %w", bookingID, err)
	}
	return messages, nil
}

// Create appends a message to the booking's thread. Surrounding whitespace is
// trimmed and an empty message is rejected.
func (s *GormMessageStore) Create(ctx context.Context, bookingID, userID, text string) (*models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: message text is required", models.ErrValidation)
	}
	if bookingID == "" {
		return nil, fmt.Errorf("%w: booking id is required", models.ErrValidation)
	}

	msg := models.Message{
		UUID:      uuid.New().String(),
		BookingID: bookingID,
		UserID:    userID,
		Message:   text,
	}
	if err := s.db.WithContext(ctx).Create(&msg).Error; err != nil {
		return nil, fmt.Errorf("failed to create message for booking %s: %w", bookingID, err)
	}
	return &msg, nil
}
