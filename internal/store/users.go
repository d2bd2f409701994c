// Package store persists portal accounts and booking conversations with gorm.
package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/stephanygrace/customer-portal/internal/models"
)

// ErrDuplicate is returned when an email or phone is already registered.
var ErrDuplicate = errors.New("customer already exists")

// UserStore looks up and registers portal customers.
type UserStore interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id uint) (*models.Customer, error)
	GetByEmail(ctx context.Context, email string) (*models.Customer, error)
	GetByPhone(ctx context.Context, phone string) (*models.Customer, error)
	Profile(ctx context.Context, id uint) (models.CustomerProfile, error)
}

// GormUserStore implements UserStore on a gorm database.
type GormUserStore struct {
	db *gorm.DB
}

// NewUserStore creates a GormUserStore.
func NewUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

func (s *GormUserStore) Create(ctx context.Context, customer *models.Customer) error {
	if customer.Email == nil && customer.Phone == nil {
		return fmt.Errorf("%w: email or phone is required", models.ErrValidation)
	}
	if err := s.db.WithContext(ctx).Create(customer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

func (s *GormUserStore) GetByID(ctx context.Context, id uint) (*models.Customer, error) {
	return s.first(ctx, "id = ?", id)
}

func (s *GormUserStore) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	return s.first(ctx, "email = ?", email)
}

func (s *GormUserStore) GetByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	return s.first(ctx, "phone = ?", phone)
}

// Profile returns the read-only customer view used by the document composer.
func (s *GormUserStore) Profile(ctx context.Context, id uint) (models.CustomerProfile, error) {
	customer, err := s.GetByID(ctx, id)
	if err != nil {
		return models.CustomerProfile{}, err
	}
	return customer.Profile(), nil
}

func (s *GormUserStore) first(ctx context.Context, query string, arg interface{}) (*models.Customer, error) {
	var customer models.Customer
	if err := s.db.WithContext(ctx).Where(query, arg).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}
	return &customer, nil
}
