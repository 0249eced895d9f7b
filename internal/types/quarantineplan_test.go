package types

import (
	"testing"

	"github.com/google/uuid"
)

func TestQuarantinePlanFromSlimForcesFlagsFalse(t *testing.T) {
	profileID := uuid.New()
	plan := QuarantinePlanFromSlim(profileID, &SlimQuarantinePlan{
		QuarantineRequired:       true,
		ConfirmationNoVulnerable: true,
		Active:                   true,
	})

	if plan.QuarantineRequired {
		t.Error("quarantine_required must start false regardless of input")
	}
	if plan.Active {
		t.Error("active must start false regardless of input")
	}
	if !plan.ConfirmationNoVulnerable {
		t.Error("confirmation_no_vulnerable should carry over from input")
	}
	if plan.PublicHealthProfileID != profileID {
		t.Error("profile id should carry over")
	}
	if plan.DateCreated.IsZero() {
		t.Error("date_created should be set")
	}
}
