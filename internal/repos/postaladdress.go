package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openarrive/traveller-backend/internal/logger"
	"github.com/openarrive/traveller-backend/internal/types"
)

type PostalAddressRepo interface {
	Create(ctx context.Context, tx *gorm.DB, address *types.PostalAddress) (*types.PostalAddress, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.PostalAddress, error)
}

type postalAddressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostalAddressRepo(db *gorm.DB, baseLog *logger.Logger) PostalAddressRepo {
	return &postalAddressRepo{db: db, log: baseLog.With("repo", "PostalAddressRepo")}
}

func (ar *postalAddressRepo) Create(ctx context.Context, tx *gorm.DB, address *types.PostalAddress) (*types.PostalAddress, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if address.ID == uuid.Nil {
		address.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(address).Error; err != nil {
		return nil, translate(err, "create postal address")
	}
	return address, nil
}

func (ar *postalAddressRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.PostalAddress, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var result types.PostalAddress
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, translate(err, "get postal address by id")
	}
	return &result, nil
}
