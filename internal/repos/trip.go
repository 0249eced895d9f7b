package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openarrive/traveller-backend/internal/logger"
	"github.com/openarrive/traveller-backend/internal/types"
)

type TripRepo interface {
	// Create always inserts; trips are never deduped.
	Create(ctx context.Context, tx *gorm.DB, trip *types.Trip) (*types.Trip, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Trip, error)
	// List returns trips ordered by arrival time; limit <= 0 means all.
	List(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Trip, error)
	ListByTravelGroup(ctx context.Context, tx *gorm.DB, travelGroupID uuid.UUID) ([]*types.Trip, error)
}

type tripRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTripRepo(db *gorm.DB, baseLog *logger.Logger) TripRepo {
	return &tripRepo{db: db, log: baseLog.With("repo", "TripRepo")}
}

func (tr *tripRepo) Create(ctx context.Context, tx *gorm.DB, trip *types.Trip) (*types.Trip, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	if trip.ID == uuid.Nil {
		trip.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(trip).Error; err != nil {
		return nil, translate(err, "create trip")
	}
	return trip, nil
}

func (tr *tripRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Trip, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var result types.Trip
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, translate(err, "get trip by id")
	}
	return &result, nil
}

func (tr *tripRepo) List(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Trip, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	query := transaction.WithContext(ctx).Order("arrival_time")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var results []*types.Trip
	if err := query.Find(&results).Error; err != nil {
		return nil, translate(err, "list trips")
	}
	return results, nil
}

func (tr *tripRepo) ListByTravelGroup(ctx context.Context, tx *gorm.DB, travelGroupID uuid.UUID) ([]*types.Trip, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*types.Trip
	if err := transaction.WithContext(ctx).
		Where("travel_group_id = ?", travelGroupID).
		Order("arrival_time").
		Order("person_id").
		Find(&results).Error; err != nil {
		return nil, translate(err, "list trips by travel group")
	}
	return results, nil
}
