package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openarrive/traveller-backend/internal/logger"
	"github.com/openarrive/traveller-backend/internal/types"
)

type VaccinationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, vaccination *types.Vaccination) (*types.Vaccination, error)
	// GetOrCreate dedups on (public_health_profile_id, provided_on,
	// dose_provider), exact string match on the provider.
	GetOrCreate(ctx context.Context, tx *gorm.DB, vaccination *types.Vaccination) (*types.Vaccination, error)
	ListByProfile(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) ([]*types.Vaccination, error)
	List(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Vaccination, error)
}

type vaccinationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVaccinationRepo(db *gorm.DB, baseLog *logger.Logger) VaccinationRepo {
	return &vaccinationRepo{db: db, log: baseLog.With("repo", "VaccinationRepo")}
}

func (vr *vaccinationRepo) Create(ctx context.Context, tx *gorm.DB, vaccination *types.Vaccination) (*types.Vaccination, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	if vaccination.ID == uuid.Nil {
		vaccination.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(vaccination).Error; err != nil {
		return nil, translate(err, "create vaccination")
	}
	return vaccination, nil
}

func (vr *vaccinationRepo) GetOrCreate(ctx context.Context, tx *gorm.DB, vaccination *types.Vaccination) (*types.Vaccination, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	var existing types.Vaccination
	err := transaction.WithContext(ctx).
		Where("public_health_profile_id = ? AND provided_on = ? AND dose_provider = ?",
			vaccination.PublicHealthProfileID, vaccination.ProvidedOn, vaccination.DoseProvider).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if translated := translate(err, "get vaccination"); !IsNotFound(translated) {
		return nil, translated
	}
	return vr.Create(ctx, tx, vaccination)
}

func (vr *vaccinationRepo) ListByProfile(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) ([]*types.Vaccination, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	var results []*types.Vaccination
	if err := transaction.WithContext(ctx).
		Where("public_health_profile_id = ?", profileID).
		Find(&results).Error; err != nil {
		return nil, translate(err, "list vaccinations by profile")
	}
	return results, nil
}

func (vr *vaccinationRepo) List(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Vaccination, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	query := transaction.WithContext(ctx)
	if limit > 0 {
		query = query.Limit(limit)
	}
	var results []*types.Vaccination
	if err := query.Find(&results).Error; err != nil {
		return nil, translate(err, "list vaccinations")
	}
	return results, nil
}
