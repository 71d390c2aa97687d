package quotedto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/speedy-van/speedy-van-sub008/internal/pricing"
	pkgerrors "github.com/speedy-van/speedy-van-sub008/pkg/errors"
)

const dateLayout = "2006-01-02"

// QuoteRequest is the wire shape of a pricing call.
type QuoteRequest struct {
	Items                  []Item   `json:"items" validate:"required,min=1,dive"`
	ServiceType            string   `json:"serviceType" validate:"required,oneof=van-only man-and-van two-person van-with-2-men"`
	DistanceMiles          float64  `json:"distanceMiles" validate:"gte=0"`
	EstimatedDurationHours float64  `json:"estimatedDurationHours" validate:"gte=0"`
	TimeSlot               TimeSlot `json:"timeSlot"`
	Date                   string   `json:"date" validate:"required,datetime=2006-01-02"`
	PickupProperty         Property `json:"pickupProperty"`
	DropoffProperty        Property `json:"dropoffProperty"`
	IsFirstTimeCustomer    bool     `json:"isFirstTimeCustomer"`
	PromoCode              string   `json:"promoCode"`
}

// Item is one inventory line. Volume is cubic meters per unit, weight
// kilograms per unit.
type Item struct {
	ID       string  `json:"id"`
	Name     string  `json:"name" validate:"required"`
	Category string  `json:"category"`
	Volume   float64 `json:"volume" validate:"gte=0"`
	Weight   float64 `json:"weight" validate:"gte=0"`
	Quantity int     `json:"quantity" validate:"required,min=1"`
	Fragile  bool    `json:"fragile"`
	Valuable bool    `json:"valuable"`
}

type TimeSlot struct {
	StartTime  string          `json:"startTime"`
	EndTime    string          `json:"endTime"`
	Price      decimal.Decimal `json:"price"`
	Multiplier decimal.Decimal `json:"multiplier"`
	Demand     string          `json:"demand" validate:"omitempty,oneof=low medium high"`
	Type       string          `json:"type" validate:"omitempty,oneof=morning afternoon evening night"`
}

type Property struct {
	Type         string `json:"type"`
	Floor        int    `json:"floor" validate:"gte=0"`
	HasLift      bool   `json:"hasLift"`
	NarrowAccess bool   `json:"narrowAccess"`
}

// ToDomain converts the payload into the engine's request type.
func (q QuoteRequest) ToDomain() (pricing.QuoteRequest, error) {
	date, err := time.Parse(dateLayout, q.Date)
	if err != nil {
		return pricing.QuoteRequest{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid date").
			WithDetails(map[string]string{"date": "must match format " + dateLayout})
	}

	items := make([]pricing.Item, 0, len(q.Items))
	for _, item := range q.Items {
		items = append(items, pricing.Item{
			ID:       item.ID,
			Name:     item.Name,
			Category: item.Category,
			Volume:   item.Volume,
			Weight:   item.Weight,
			Quantity: item.Quantity,
			Fragile:  item.Fragile,
			Valuable: item.Valuable,
		})
	}

	return pricing.QuoteRequest{
		Items:                  items,
		ServiceType:            pricing.ServiceType(q.ServiceType),
		DistanceMiles:          q.DistanceMiles,
		EstimatedDurationHours: q.EstimatedDurationHours,
		TimeSlot: pricing.TimeSlot{
			StartTime:  q.TimeSlot.StartTime,
			EndTime:    q.TimeSlot.EndTime,
			Price:      q.TimeSlot.Price,
			Multiplier: q.TimeSlot.Multiplier,
			Demand:     pricing.DemandLevel(q.TimeSlot.Demand),
			Type:       pricing.SlotType(q.TimeSlot.Type),
		},
		Date:                date,
		PickupProperty:      toDomainProperty(q.PickupProperty),
		DropoffProperty:     toDomainProperty(q.DropoffProperty),
		IsFirstTimeCustomer: q.IsFirstTimeCustomer,
		PromoCode:           q.PromoCode,
	}, nil
}

func toDomainProperty(p Property) pricing.Property {
	return pricing.Property{
		Type:         p.Type,
		Floor:        p.Floor,
		HasLift:      p.HasLift,
		NarrowAccess: p.NarrowAccess,
	}
}
