package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Trip is created fresh for every ingested traveller; there is no dedup.
type Trip struct {
	ID                     uuid.UUID                      `gorm:"type:uuid;primaryKey" json:"id"`
	TripProvider           string                         `gorm:"not null;column:trip_provider" json:"trip_provider"`
	TravelIdentifier       *string                        `gorm:"column:travel_identifier" json:"travel_identifier,omitempty"`
	BookingID              *string                        `gorm:"column:booking_id" json:"booking_id,omitempty"`
	TravelMode             string                         `gorm:"not null;column:travel_mode" json:"travel_mode"`
	OriginPlaceID          uuid.UUID                      `gorm:"type:uuid;not null;column:origin_place_id" json:"origin_place_id"`
	TransitPointPlaceIDs   datatypes.JSONSlice[uuid.UUID] `gorm:"column:transit_point_place_ids" json:"transit_point_place_ids,omitempty"`
	DestinationPlaceID     uuid.UUID                      `gorm:"type:uuid;not null;column:destination_place_id" json:"destination_place_id"`
	TravelIntent           string                         `gorm:"not null;column:travel_intent" json:"travel_intent"`
	ScheduledDepartureTime *time.Time                     `gorm:"column:scheduled_departure_time" json:"scheduled_departure_time,omitempty"`
	ScheduledArrivalTime   *time.Time                     `gorm:"column:scheduled_arrival_time" json:"scheduled_arrival_time,omitempty"`
	DepartureTime          *time.Time                     `gorm:"column:departure_time" json:"departure_time,omitempty"`
	ArrivalTime            *time.Time                     `gorm:"index;column:arrival_time" json:"arrival_time,omitempty"`
	TripState              string                         `gorm:"not null;column:trip_state" json:"trip_state"`
	TravelGroupID          uuid.UUID                      `gorm:"type:uuid;not null;index" json:"travel_group_id"`
	PersonID               uuid.UUID                      `gorm:"type:uuid;not null;index" json:"person_id"`
	CreatedAt              time.Time                      `json:"created_at"`
}

func (Trip) TableName() string {
	return "trips"
}
