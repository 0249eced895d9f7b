package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openarrive/traveller-backend/internal/logger"
	"github.com/openarrive/traveller-backend/internal/types"
)

type CountryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, country *types.Country) (*types.Country, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Country, error)
	GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Country, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Country, error)
}

type countryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCountryRepo(db *gorm.DB, baseLog *logger.Logger) CountryRepo {
	return &countryRepo{db: db, log: baseLog.With("repo", "CountryRepo")}
}

func (cr *countryRepo) Create(ctx context.Context, tx *gorm.DB, country *types.Country) (*types.Country, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if country.ID == uuid.Nil {
		country.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(country).Error; err != nil {
		return nil, translate(err, "create country")
	}
	return country, nil
}

func (cr *countryRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Country, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var result types.Country
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, translate(err, "get country by id")
	}
	return &result, nil
}

func (cr *countryRepo) GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Country, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var result types.Country
	if err := transaction.WithContext(ctx).
		Where("country_name = ?", name).
		First(&result).Error; err != nil {
		return nil, translate(err, "get country by name")
	}
	return &result, nil
}

func (cr *countryRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Country, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.Country
	if err := transaction.WithContext(ctx).Find(&results).Error; err != nil {
		return nil, translate(err, "list countries")
	}
	return results, nil
}
