package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openarrive/traveller-backend/internal/logger"
	"github.com/openarrive/traveller-backend/internal/types"
)

type QuarantinePlanRepo interface {
	Create(ctx context.Context, tx *gorm.DB, plan *types.QuarantinePlan) (*types.QuarantinePlan, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.QuarantinePlan, error)
	ListByProfile(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) ([]*types.QuarantinePlan, error)
	List(ctx context.Context, tx *gorm.DB, limit int) ([]*types.QuarantinePlan, error)
}

type quarantinePlanRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuarantinePlanRepo(db *gorm.DB, baseLog *logger.Logger) QuarantinePlanRepo {
	return &quarantinePlanRepo{db: db, log: baseLog.With("repo", "QuarantinePlanRepo")}
}

func (qr *quarantinePlanRepo) Create(ctx context.Context, tx *gorm.DB, plan *types.QuarantinePlan) (*types.QuarantinePlan, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	if plan.ID == uuid.Nil {
		plan.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(plan).Error; err != nil {
		return nil, translate(err, "create quarantine plan")
	}
	return plan, nil
}

func (qr *quarantinePlanRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.QuarantinePlan, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	var result types.QuarantinePlan
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, translate(err, "get quarantine plan by id")
	}
	return &result, nil
}

func (qr *quarantinePlanRepo) ListByProfile(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) ([]*types.QuarantinePlan, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	var results []*types.QuarantinePlan
	if err := transaction.WithContext(ctx).
		Where("public_health_profile_id = ?", profileID).
		Find(&results).Error; err != nil {
		return nil, translate(err, "list quarantine plans by profile")
	}
	return results, nil
}

func (qr *quarantinePlanRepo) List(ctx context.Context, tx *gorm.DB, limit int) ([]*types.QuarantinePlan, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	query := transaction.WithContext(ctx)
	if limit > 0 {
		query = query.Limit(limit)
	}
	var results []*types.QuarantinePlan
	if err := query.Find(&results).Error; err != nil {
		return nil, translate(err, "list quarantine plans")
	}
	return results, nil
}
