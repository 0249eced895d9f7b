package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openarrive/traveller-backend/internal/logger"
	"github.com/openarrive/traveller-backend/internal/types"
)

type PersonRepo interface {
	Create(ctx context.Context, tx *gorm.DB, person *types.Person) (*types.Person, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Person, error)
	// GetOrCreate looks up a person by the travel-document natural key
	// (document id, family name, issuing country, birth date) and inserts
	// only on miss. The lookup is read-then-insert: two concurrent calls
	// for the same unseen key can both insert (documented race, no schema
	// uniqueness backs the key).
	GetOrCreate(ctx context.Context, tx *gorm.DB, person *types.Person) (*types.Person, error)
	ListByTravelGroup(ctx context.Context, tx *gorm.DB, travelGroupID uuid.UUID) ([]*types.Person, error)
	List(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Person, error)
}

type personRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPersonRepo(db *gorm.DB, baseLog *logger.Logger) PersonRepo {
	return &personRepo{db: db, log: baseLog.With("repo", "PersonRepo")}
}

func (pr *personRepo) Create(ctx context.Context, tx *gorm.DB, person *types.Person) (*types.Person, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if person.ID == uuid.Nil {
		person.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(person).Error; err != nil {
		return nil, translate(err, "create person")
	}
	return person, nil
}

func (pr *personRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Person, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.Person
	if len(ids) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, translate(err, "get persons by ids")
	}
	return results, nil
}

func (pr *personRepo) GetOrCreate(ctx context.Context, tx *gorm.DB, person *types.Person) (*types.Person, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var existing types.Person
	err := transaction.WithContext(ctx).
		Where("travel_document_id = ? AND family_name = ? AND travel_document_issuer_id = ? AND birth_date = ?",
			person.TravelDocumentID, person.FamilyName, person.TravelDocumentIssuerID, person.BirthDate).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if translated := translate(err, "get person by travel document"); !IsNotFound(translated) {
		return nil, translated
	}
	return pr.Create(ctx, tx, person)
}

func (pr *personRepo) ListByTravelGroup(ctx context.Context, tx *gorm.DB, travelGroupID uuid.UUID) ([]*types.Person, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.Person
	if err := transaction.WithContext(ctx).
		Where("travel_group_id = ?", travelGroupID).
		Find(&results).Error; err != nil {
		return nil, translate(err, "list persons by travel group")
	}
	return results, nil
}

func (pr *personRepo) List(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Person, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	query := transaction.WithContext(ctx)
	if limit > 0 {
		query = query.Limit(limit)
	}
	var results []*types.Person
	if err := query.Find(&results).Error; err != nil {
		return nil, translate(err, "list persons")
	}
	return results, nil
}
