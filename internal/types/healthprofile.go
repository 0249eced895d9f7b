package types

import (
	"github.com/google/uuid"
)

// PublicHealthProfile is the health-record aggregate root for one person.
// Get-or-create dedups on (person_id, smart_healthcard_pk).
type PublicHealthProfile struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PersonID          uuid.UUID `gorm:"type:uuid;not null;index" json:"person_id"`
	SmartHealthcardPk *string   `gorm:"column:smart_healthcard_pk" json:"smart_healthcard_pk,omitempty"`
}

func (PublicHealthProfile) TableName() string {
	return "public_health_profiles"
}
