package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openarrive/traveller-backend/internal/logger"
	"github.com/openarrive/traveller-backend/internal/types"
)

type CovidTestRepo interface {
	Create(ctx context.Context, tx *gorm.DB, test *types.CovidTest) (*types.CovidTest, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.CovidTest, error)
	ListByProfile(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) ([]*types.CovidTest, error)
	List(ctx context.Context, tx *gorm.DB, limit int) ([]*types.CovidTest, error)
}

type covidTestRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCovidTestRepo(db *gorm.DB, baseLog *logger.Logger) CovidTestRepo {
	return &covidTestRepo{db: db, log: baseLog.With("repo", "CovidTestRepo")}
}

func (cr *covidTestRepo) Create(ctx context.Context, tx *gorm.DB, test *types.CovidTest) (*types.CovidTest, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if test.ID == uuid.Nil {
		test.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(test).Error; err != nil {
		return nil, translate(err, "create covid test")
	}
	return test, nil
}

func (cr *covidTestRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.CovidTest, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var result types.CovidTest
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, translate(err, "get covid test by id")
	}
	return &result, nil
}

func (cr *covidTestRepo) ListByProfile(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) ([]*types.CovidTest, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.CovidTest
	if err := transaction.WithContext(ctx).
		Where("public_health_profile_id = ?", profileID).
		Find(&results).Error; err != nil {
		return nil, translate(err, "list covid tests by profile")
	}
	return results, nil
}

func (cr *covidTestRepo) List(ctx context.Context, tx *gorm.DB, limit int) ([]*types.CovidTest, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	query := transaction.WithContext(ctx)
	if limit > 0 {
		query = query.Limit(limit)
	}
	var results []*types.CovidTest
	if err := query.Find(&results).Error; err != nil {
		return nil, translate(err, "list covid tests")
	}
	return results, nil
}
