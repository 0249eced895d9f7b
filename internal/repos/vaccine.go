package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openarrive/traveller-backend/internal/logger"
	"github.com/openarrive/traveller-backend/internal/types"
)

type VaccineRepo interface {
	Create(ctx context.Context, tx *gorm.DB, vaccine *types.Vaccine) (*types.Vaccine, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Vaccine, error)
	GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Vaccine, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Vaccine, error)
}

type vaccineRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVaccineRepo(db *gorm.DB, baseLog *logger.Logger) VaccineRepo {
	return &vaccineRepo{db: db, log: baseLog.With("repo", "VaccineRepo")}
}

func (vr *vaccineRepo) Create(ctx context.Context, tx *gorm.DB, vaccine *types.Vaccine) (*types.Vaccine, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	if vaccine.ID == uuid.Nil {
		vaccine.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(vaccine).Error; err != nil {
		return nil, translate(err, "create vaccine")
	}
	return vaccine, nil
}

func (vr *vaccineRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Vaccine, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	var result types.Vaccine
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, translate(err, "get vaccine by id")
	}
	return &result, nil
}

func (vr *vaccineRepo) GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Vaccine, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	var result types.Vaccine
	if err := transaction.WithContext(ctx).
		Where("vaccine_name = ?", name).
		First(&result).Error; err != nil {
		return nil, translate(err, "get vaccine by name")
	}
	return &result, nil
}

func (vr *vaccineRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Vaccine, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	var results []*types.Vaccine
	if err := transaction.WithContext(ctx).Find(&results).Error; err != nil {
		return nil, translate(err, "list vaccines")
	}
	return results, nil
}
