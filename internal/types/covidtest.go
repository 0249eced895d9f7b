package types

import (
	"time"

	"github.com/google/uuid"
)

// CovidTest rows are always inserted; no dedup is attempted.
type CovidTest struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PublicHealthProfileID uuid.UUID `gorm:"type:uuid;not null;index;column:public_health_profile_id" json:"public_health_profile_id"`
	TestName              string    `gorm:"not null;column:test_name" json:"test_name"`
	TestType              string    `gorm:"not null;column:test_type" json:"test_type"`
	DateTaken             time.Time `gorm:"not null;column:date_taken" json:"date_taken"`
	TestResult            bool      `gorm:"not null;column:test_result" json:"test_result"`
}

func (CovidTest) TableName() string {
	return "covid_tests"
}

type SlimCovidTest struct {
	TestName   string    `json:"testName"`
	TestType   string    `json:"testType"`
	DateTaken  time.Time `json:"dateTaken"`
	TestResult bool      `json:"testResult"`
}
