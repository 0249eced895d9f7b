package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openarrive/traveller-backend/internal/logger"
	"github.com/openarrive/traveller-backend/internal/types"
)

type TravelGroupRepo interface {
	Create(ctx context.Context, tx *gorm.DB, group *types.TravelGroup) (*types.TravelGroup, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.TravelGroup, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.TravelGroup, error)
}

type travelGroupRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTravelGroupRepo(db *gorm.DB, baseLog *logger.Logger) TravelGroupRepo {
	return &travelGroupRepo{db: db, log: baseLog.With("repo", "TravelGroupRepo")}
}

func (tr *travelGroupRepo) Create(ctx context.Context, tx *gorm.DB, group *types.TravelGroup) (*types.TravelGroup, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	if group.ID == uuid.Nil {
		group.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(group).Error; err != nil {
		return nil, translate(err, "create travel group")
	}
	return group, nil
}

func (tr *travelGroupRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.TravelGroup, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var result types.TravelGroup
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, translate(err, "get travel group by id")
	}
	return &result, nil
}

func (tr *travelGroupRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.TravelGroup, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*types.TravelGroup
	if err := transaction.WithContext(ctx).Find(&results).Error; err != nil {
		return nil, translate(err, "list travel groups")
	}
	return results, nil
}
