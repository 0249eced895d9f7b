package types

import (
	"github.com/google/uuid"
)

// DefaultCountryRiskRate is assigned when a country is first seen via
// get-or-create and no assessed rate exists yet.
const DefaultCountryRiskRate = 0.03

// Country is a reference entity resolved by name. Names are unique in
// practice but not enforced by the schema.
type Country struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CountryName string    `gorm:"not null;index;column:country_name" json:"country_name"`
	RiskRate    float64   `gorm:"not null;column:risk_rate" json:"risk_rate"`
}

func (Country) TableName() string {
	return "countries"
}
