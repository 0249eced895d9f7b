package types

import (
	"github.com/google/uuid"
)

// PostalAddress is a geographic location referenced by QuarantinePlan.
type PostalAddress struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StreetAddress     string    `gorm:"not null;column:street_address" json:"street_address"`
	AddressLocalityID uuid.UUID `gorm:"type:uuid;not null;column:address_locality_id" json:"address_locality_id"`
	AddressRegion     string    `gorm:"not null;column:address_region" json:"address_region"`
	AddressCountryID  uuid.UUID `gorm:"type:uuid;not null;column:address_country_id" json:"address_country_id"`
	PostalCode        string    `gorm:"not null;column:postal_code" json:"postal_code"`
	Latitude          float64   `json:"latitude"`
	Longitude         float64   `json:"longitude"`
	AdditionalInfo    *string   `gorm:"column:additional_info" json:"additional_info,omitempty"`
}

func (PostalAddress) TableName() string {
	return "postal_addresses"
}

// SlimAddress carries the address portion of a quarantine section. Locality
// and country arrive as names and are resolved to reference rows.
type SlimAddress struct {
	StreetAddress   string  `json:"streetAddress"`
	AddressLocality string  `json:"addressLocality"`
	AddressRegion   string  `json:"addressRegion"`
	AddressCountry  string  `json:"addressCountry"`
	PostalCode      string  `json:"postalCode"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	AdditionalInfo  *string `json:"additionalInfo,omitempty"`
}
