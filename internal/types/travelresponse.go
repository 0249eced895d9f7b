package types

import (
	"time"

	"github.com/google/uuid"
)

// TravelResponse is the append-only audit row written for every ingested
// traveller and returned to the caller.
type TravelResponse struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PostStatus            string    `gorm:"not null;column:post_status" json:"post_status"`
	TripID                uuid.UUID `gorm:"type:uuid;not null;column:trip_id" json:"trip_id"`
	PersonID              uuid.UUID `gorm:"type:uuid;not null;column:person_id" json:"person_id"`
	CbsaID                string    `gorm:"not null;column:cbsa_id" json:"cbsa_id"`
	ResponseCode          string    `gorm:"not null;column:response_code" json:"response_code"`
	RandomTestingReferral bool      `gorm:"not null;column:random_testing_referral" json:"random_testing_referral"`
	QuarantineRequired    bool      `gorm:"not null;column:quarantine_required" json:"quarantine_required"`
	DateTime              time.Time `gorm:"not null;column:date_time" json:"date_time"`
	Details               *string   `gorm:"column:details" json:"details,omitempty"`
}

func (TravelResponse) TableName() string {
	return "travel_responses"
}

// NewTravelResponse fills the audit row; an empty details string is stored
// as NULL.
func NewTravelResponse(postStatus string, tripID, personID uuid.UUID, cbsaID, responseCode string, randomTestingReferral, quarantineRequired bool, details string) *TravelResponse {
	var d *string
	if details != "" {
		d = &details
	}
	return &TravelResponse{
		PostStatus:            postStatus,
		TripID:                tripID,
		PersonID:              personID,
		CbsaID:                cbsaID,
		ResponseCode:          responseCode,
		RandomTestingReferral: randomTestingReferral,
		QuarantineRequired:    quarantineRequired,
		DateTime:              time.Now().UTC(),
		Details:               d,
	}
}
