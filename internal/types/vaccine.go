package types

import (
	"time"

	"github.com/google/uuid"
)

// Vaccine is a seeded reference entity; the resolver looks it up by name but
// never creates one.
type Vaccine struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	VaccineName   string    `gorm:"not null;index;column:vaccine_name" json:"vaccine_name"`
	Manufacturer  string    `gorm:"not null" json:"manufacturer"`
	VaccineType   string    `gorm:"not null;column:vaccine_type" json:"vaccine_type"`
	RequiredDoses int       `gorm:"not null;column:required_doses" json:"required_doses"`
	Approved      bool      `gorm:"not null" json:"approved"`
	ApprovedOn    time.Time `gorm:"column:approved_on" json:"approved_on"`
	Details       string    `json:"details"`
}

func (Vaccine) TableName() string {
	return "vaccines"
}
