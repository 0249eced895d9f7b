package types

import (
	"time"
)

// TravelerInput is one traveller's submission as posted by a border officer:
// identity, trip, and optional vaccination/test/quarantine sections. Field
// names follow the GraphQL input object.
type TravelerInput struct {
	// Person
	FamilyName                string     `json:"familyName"`
	GivenName                 string     `json:"givenName"`
	AdditionalNames           []string   `json:"additionalNames,omitempty"`
	BirthDate                 time.Time  `json:"birthDate"`
	Gender                    string     `json:"gender"`
	TravelDocumentID          string     `json:"travelDocumentId"`
	TravelDocumentIssuer      string     `json:"travelDocumentIssuer"`
	ApprovedAccessLevel       string     `json:"approvedAccessLevel"`
	ApprovedAccessGranularity string     `json:"approvedAccessGranularity"`

	// Trip
	TripProvider           string     `json:"tripProvider"`
	TravelIdentifier       *string    `json:"travelIdentifier,omitempty"`
	BookingID              *string    `json:"bookingId,omitempty"`
	TravelMode             string     `json:"travelMode"`
	OriginName             string     `json:"originName"`
	OriginCountryName      string     `json:"originCountryName"`
	DestinationName        string     `json:"destinationName"`
	DestinationCountryName string     `json:"destinationCountryName"`
	TravelIntent           string     `json:"travelIntent"`
	ScheduledDepartureTime *time.Time `json:"scheduledDepartureTime,omitempty"`
	ScheduledArrivalTime   *time.Time `json:"scheduledArrivalTime,omitempty"`
	DepartureTime          *time.Time `json:"departureTime,omitempty"`
	ArrivalTime            *time.Time `json:"arrivalTime,omitempty"`
	TripState              string     `json:"tripState"`

	// Health profile
	SmartHealthcardPk *string `json:"smartHealthcardPk,omitempty"`

	Vaccinations   []*SlimVaccination  `json:"vaccinations,omitempty"`
	CovidTest      *SlimCovidTest      `json:"covidTest,omitempty"`
	QuarantinePlan *SlimQuarantinePlan `json:"quarantinePlan,omitempty"`

	DateTime time.Time `json:"dateTime"`

	CbsaOfficerID string `json:"cbsaOfficerId"`
	CbsaID        string `json:"cbsaId"`
}
