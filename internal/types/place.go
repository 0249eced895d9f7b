package types

import (
	"github.com/google/uuid"
)

// Place covers cities, airports, ports of entry and destinations.
// (place_name, country_id) is the natural key used by get-or-create.
type Place struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PlaceName string    `gorm:"not null;index;column:place_name" json:"place_name"`
	CountryID uuid.UUID `gorm:"type:uuid;not null;index" json:"country_id"`
	Country   *Country  `gorm:"foreignKey:CountryID;references:ID" json:"country,omitempty"`
}

func (Place) TableName() string {
	return "places"
}
