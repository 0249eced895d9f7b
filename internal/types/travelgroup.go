package types

import (
	"time"

	"github.com/google/uuid"
)

// TravelGroup is a set of people travelling together. One group is created
// per ingested batch.
type TravelGroup struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

func (TravelGroup) TableName() string {
	return "travel_groups"
}
