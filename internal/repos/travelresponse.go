package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openarrive/traveller-backend/internal/logger"
	"github.com/openarrive/traveller-backend/internal/types"
)

type TravelResponseRepo interface {
	// Create appends an audit row; responses are never updated or deleted.
	Create(ctx context.Context, tx *gorm.DB, response *types.TravelResponse) (*types.TravelResponse, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.TravelResponse, error)
	List(ctx context.Context, tx *gorm.DB, limit int) ([]*types.TravelResponse, error)
}

type travelResponseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTravelResponseRepo(db *gorm.DB, baseLog *logger.Logger) TravelResponseRepo {
	return &travelResponseRepo{db: db, log: baseLog.With("repo", "TravelResponseRepo")}
}

func (rr *travelResponseRepo) Create(ctx context.Context, tx *gorm.DB, response *types.TravelResponse) (*types.TravelResponse, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	if response.ID == uuid.Nil {
		response.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(response).Error; err != nil {
		return nil, translate(err, "create travel response")
	}
	return response, nil
}

func (rr *travelResponseRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.TravelResponse, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var result types.TravelResponse
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, translate(err, "get travel response by id")
	}
	return &result, nil
}

func (rr *travelResponseRepo) List(ctx context.Context, tx *gorm.DB, limit int) ([]*types.TravelResponse, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	query := transaction.WithContext(ctx).Order("date_time")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var results []*types.TravelResponse
	if err := query.Find(&results).Error; err != nil {
		return nil, translate(err, "list travel responses")
	}
	return results, nil
}
