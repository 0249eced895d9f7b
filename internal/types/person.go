package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Person is a traveller. Get-or-create dedups on (travel_document_id,
// family_name, travel_document_issuer_id, birth_date); the comparison is
// exact, so case or whitespace variants create new rows.
type Person struct {
	ID                        uuid.UUID                  `gorm:"type:uuid;primaryKey" json:"id"`
	FamilyName                string                     `gorm:"not null;index;column:family_name" json:"family_name"`
	GivenName                 string                     `gorm:"not null;column:given_name" json:"given_name"`
	AdditionalNames           datatypes.JSONSlice[string] `gorm:"column:additional_names" json:"additional_names,omitempty"`
	BirthDate                 time.Time                  `gorm:"not null;column:birth_date" json:"birth_date"`
	Gender                    string                     `gorm:"not null" json:"gender"`
	TravelDocumentID          string                     `gorm:"not null;index;column:travel_document_id" json:"travel_document_id"`
	TravelDocumentIssuerID    uuid.UUID                  `gorm:"type:uuid;not null;column:travel_document_issuer_id" json:"travel_document_issuer_id"`
	ApprovedAccessLevel       string                     `gorm:"not null;column:approved_access_level" json:"approved_access_level"`
	ApprovedAccessGranularity string                     `gorm:"not null;column:approved_access_granularity" json:"approved_access_granularity"`
	TravelGroupID             uuid.UUID                  `gorm:"type:uuid;not null;index" json:"travel_group_id"`
	CreatedAt                 time.Time                  `json:"created_at"`
	UpdatedAt                 time.Time                  `json:"updated_at"`
}

func (Person) TableName() string {
	return "persons"
}
