package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openarrive/traveller-backend/internal/logger"
	"github.com/openarrive/traveller-backend/internal/types"
)

type PlaceRepo interface {
	Create(ctx context.Context, tx *gorm.DB, place *types.Place) (*types.Place, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Place, error)
	GetByNameAndCountry(ctx context.Context, tx *gorm.DB, name string, countryID uuid.UUID) (*types.Place, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Place, error)
}

type placeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPlaceRepo(db *gorm.DB, baseLog *logger.Logger) PlaceRepo {
	return &placeRepo{db: db, log: baseLog.With("repo", "PlaceRepo")}
}

func (pr *placeRepo) Create(ctx context.Context, tx *gorm.DB, place *types.Place) (*types.Place, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if place.ID == uuid.Nil {
		place.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(place).Error; err != nil {
		return nil, translate(err, "create place")
	}
	return place, nil
}

func (pr *placeRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Place, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var result types.Place
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, translate(err, "get place by id")
	}
	return &result, nil
}

func (pr *placeRepo) GetByNameAndCountry(ctx context.Context, tx *gorm.DB, name string, countryID uuid.UUID) (*types.Place, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var result types.Place
	if err := transaction.WithContext(ctx).
		Where("place_name = ? AND country_id = ?", name, countryID).
		First(&result).Error; err != nil {
		return nil, translate(err, "get place by name and country")
	}
	return &result, nil
}

func (pr *placeRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Place, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.Place
	if err := transaction.WithContext(ctx).Find(&results).Error; err != nil {
		return nil, translate(err, "list places")
	}
	return results, nil
}
