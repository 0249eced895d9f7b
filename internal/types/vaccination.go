package types

import (
	"time"

	"github.com/google/uuid"
)

// Vaccination dedups on (public_health_profile_id, provided_on,
// dose_provider). The dose_provider comparison is exact string equality.
type Vaccination struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	VaccineID             uuid.UUID `gorm:"type:uuid;not null;column:vaccine_id" json:"vaccine_id"`
	DoseProvider          string    `gorm:"not null;column:dose_provider" json:"dose_provider"`
	LocationProvidedID    uuid.UUID `gorm:"type:uuid;not null;column:location_provided_id" json:"location_provided_id"`
	ProvidedOn            time.Time `gorm:"not null;column:provided_on" json:"provided_on"`
	PublicHealthProfileID uuid.UUID `gorm:"type:uuid;not null;index;column:public_health_profile_id" json:"public_health_profile_id"`
}

func (Vaccination) TableName() string {
	return "vaccinations"
}

// SlimVaccination is the text-level vaccination section of a traveller
// submission; reference names are resolved to ids during ingestion.
type SlimVaccination struct {
	VaccineName      string    `json:"vaccineName"`
	DoseProvider     string    `json:"doseProvider"`
	LocationProvided string    `json:"locationProvided"`
	CountryProvided  string    `json:"countryProvided"`
	ProvidedOn       time.Time `json:"providedOn"`
}
