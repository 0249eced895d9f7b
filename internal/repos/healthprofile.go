package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openarrive/traveller-backend/internal/logger"
	"github.com/openarrive/traveller-backend/internal/types"
)

type HealthProfileRepo interface {
	Create(ctx context.Context, tx *gorm.DB, profile *types.PublicHealthProfile) (*types.PublicHealthProfile, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.PublicHealthProfile, error)
	// GetOrCreate dedups on (person_id, smart_healthcard_pk).
	GetOrCreate(ctx context.Context, tx *gorm.DB, profile *types.PublicHealthProfile) (*types.PublicHealthProfile, error)
	GetByPersonID(ctx context.Context, tx *gorm.DB, personID uuid.UUID) (*types.PublicHealthProfile, error)
}

type healthProfileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewHealthProfileRepo(db *gorm.DB, baseLog *logger.Logger) HealthProfileRepo {
	return &healthProfileRepo{db: db, log: baseLog.With("repo", "HealthProfileRepo")}
}

func (hr *healthProfileRepo) Create(ctx context.Context, tx *gorm.DB, profile *types.PublicHealthProfile) (*types.PublicHealthProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = hr.db
	}
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(profile).Error; err != nil {
		return nil, translate(err, "create public health profile")
	}
	return profile, nil
}

func (hr *healthProfileRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.PublicHealthProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = hr.db
	}
	var result types.PublicHealthProfile
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, translate(err, "get public health profile by id")
	}
	return &result, nil
}

func (hr *healthProfileRepo) GetOrCreate(ctx context.Context, tx *gorm.DB, profile *types.PublicHealthProfile) (*types.PublicHealthProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = hr.db
	}
	query := transaction.WithContext(ctx).Where("person_id = ?", profile.PersonID)
	if profile.SmartHealthcardPk == nil {
		query = query.Where("smart_healthcard_pk IS NULL")
	} else {
		query = query.Where("smart_healthcard_pk = ?", *profile.SmartHealthcardPk)
	}
	var existing types.PublicHealthProfile
	err := query.First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if translated := translate(err, "get public health profile"); !IsNotFound(translated) {
		return nil, translated
	}
	return hr.Create(ctx, tx, profile)
}

func (hr *healthProfileRepo) GetByPersonID(ctx context.Context, tx *gorm.DB, personID uuid.UUID) (*types.PublicHealthProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = hr.db
	}
	var result types.PublicHealthProfile
	if err := transaction.WithContext(ctx).
		Where("person_id = ?", personID).
		First(&result).Error; err != nil {
		return nil, translate(err, "get public health profile by person")
	}
	return &result, nil
}
