package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceType is the closed set of move categories the platform sells.
type ServiceType string

const (
	ServiceVanOnly       ServiceType = "van-only"
	ServiceManAndVan     ServiceType = "man-and-van"
	ServiceTwoPerson     ServiceType = "two-person"
	ServiceVanWithTwoMen ServiceType = "van-with-2-men"
)

// DemandLevel describes booking pressure on a time slot.
type DemandLevel string

const (
	DemandLow    DemandLevel = "low"
	DemandMedium DemandLevel = "medium"
	DemandHigh   DemandLevel = "high"
)

// SlotType buckets a time slot into a part of the day.
type SlotType string

const (
	SlotMorning   SlotType = "morning"
	SlotAfternoon SlotType = "afternoon"
	SlotEvening   SlotType = "evening"
	SlotNight     SlotType = "night"
)

// Item is a single line of the move inventory. Volume is cubic meters and
// weight kilograms, both per unit.
type Item struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Volume   float64 `json:"volume"`
	Weight   float64 `json:"weight"`
	Quantity int     `json:"quantity"`
	Fragile  bool    `json:"fragile"`
	Valuable bool    `json:"valuable"`
}

// TimeSlot is the booking window selected by the customer. A zero Price means
// "use the service-type base rate".
type TimeSlot struct {
	StartTime  string          `json:"startTime"`
	EndTime    string          `json:"endTime"`
	Price      decimal.Decimal `json:"price"`
	Multiplier decimal.Decimal `json:"multiplier"`
	Demand     DemandLevel     `json:"demand"`
	Type       SlotType        `json:"type"`
}

// Property captures the access constraints of a pickup or dropoff address.
// Floor counts floors above ground level.
type Property struct {
	Type         string `json:"type"`
	Floor        int    `json:"floor"`
	HasLift      bool   `json:"hasLift"`
	NarrowAccess bool   `json:"narrowAccess"`
}

// QuoteRequest is the immutable input to one pricing call. The engine never
// mutates or retains it.
type QuoteRequest struct {
	Items                  []Item      `json:"items"`
	ServiceType            ServiceType `json:"serviceType"`
	DistanceMiles          float64     `json:"distanceMiles"`
	EstimatedDurationHours float64     `json:"estimatedDurationHours"`
	TimeSlot               TimeSlot    `json:"timeSlot"`
	Date                   time.Time   `json:"date"`
	PickupProperty         Property    `json:"pickupProperty"`
	DropoffProperty        Property    `json:"dropoffProperty"`
	IsFirstTimeCustomer    bool        `json:"isFirstTimeCustomer"`
	PromoCode              string      `json:"promoCode,omitempty"`
}
