package types

import (
	"time"

	"github.com/google/uuid"
)

// QuarantinePlan rows are always inserted; no dedup. quarantine_required and
// active start false regardless of the submitted values and are only raised
// by a later compliance check.
type QuarantinePlan struct {
	ID                       uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PublicHealthProfileID    uuid.UUID  `gorm:"type:uuid;not null;index;column:public_health_profile_id" json:"public_health_profile_id"`
	DateCreated              time.Time  `gorm:"not null;column:date_created" json:"date_created"`
	QuarantineRequired       bool       `gorm:"not null;column:quarantine_required" json:"quarantine_required"`
	ConfirmationNoVulnerable bool       `gorm:"not null;column:confirmation_no_vulnerable" json:"confirmation_no_vulnerable"`
	PostalAddressID          *uuid.UUID `gorm:"type:uuid;column:postal_address_id" json:"postal_address_id,omitempty"`
	Active                   bool       `gorm:"not null" json:"active"`
}

func (QuarantinePlan) TableName() string {
	return "quarantine_plans"
}

// QuarantinePlanFromSlim builds a plan row from the submitted section.
// quarantine_required and active are forced to false here no matter what the
// caller sent.
func QuarantinePlanFromSlim(profileID uuid.UUID, slim *SlimQuarantinePlan) *QuarantinePlan {
	return &QuarantinePlan{
		PublicHealthProfileID:    profileID,
		DateCreated:              time.Now().UTC(),
		QuarantineRequired:       false,
		ConfirmationNoVulnerable: slim.ConfirmationNoVulnerable,
		Active:                   false,
	}
}

type SlimQuarantinePlan struct {
	QuarantineRequired       bool         `json:"quarantineRequired"`
	ConfirmationNoVulnerable bool         `json:"confirmationNoVulnerable"`
	Active                   bool         `json:"active"`
	Address                  *SlimAddress `json:"address,omitempty"`
}
