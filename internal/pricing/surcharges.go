package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// SurchargeRule is one independent, pure pricing rule. Apply inspects the
// request, the item summary and the priced-component subtotal (base plus
// distance plus service) and returns zero or more positive line items.
//
// Rules never see each other's output. Percentage rules are computed from
// the component subtotal so the rule order cannot change any amount; the
// order only fixes how entries are listed on the quote.
type SurchargeRule struct {
	Name  string
	Apply func(req QuoteRequest, summary ItemSummary, rates *RateTable, components decimal.Decimal) []LineItem
}

func defaultSurchargeRules() []SurchargeRule {
	return []SurchargeRule{
		{Name: "fragile-items", Apply: fragileItemsSurcharge},
		{Name: "valuable-items", Apply: valuableItemsSurcharge},
		{Name: "floor-access", Apply: floorAccessSurcharge},
		{Name: "narrow-access", Apply: narrowAccessSurcharge},
		{Name: "peak-time", Apply: peakTimeSurcharge},
		{Name: "weekend", Apply: weekendSurcharge},
		{Name: "large-volume", Apply: largeVolumeSurcharge},
		{Name: "heavy-load", Apply: heavyLoadSurcharge},
	}
}

func fragileItemsSurcharge(_ QuoteRequest, summary ItemSummary, rates *RateTable, _ decimal.Decimal) []LineItem {
	if summary.FragileCount == 0 {
		return nil
	}
	amount := rates.FragilePerItem.Mul(decimal.NewFromInt(int64(summary.FragileCount)))
	return oneEntry("Fragile items", amount)
}

func valuableItemsSurcharge(_ QuoteRequest, summary ItemSummary, rates *RateTable, _ decimal.Decimal) []LineItem {
	if summary.ValuableCount == 0 {
		return nil
	}
	amount := rates.ValuablePerItem.Mul(decimal.NewFromInt(int64(summary.ValuableCount)))
	return oneEntry("Valuable items", amount)
}

// floorAccessSurcharge prices each address independently, so a walk-up at
// both ends yields two entries.
func floorAccessSurcharge(req QuoteRequest, _ ItemSummary, rates *RateTable, _ decimal.Decimal) []LineItem {
	var entries []LineItem
	if amount := floorCharge(req.PickupProperty, rates); amount.IsPositive() {
		entries = append(entries, LineItem{Name: "Floor access (pickup)", Amount: amount})
	}
	if amount := floorCharge(req.DropoffProperty, rates); amount.IsPositive() {
		entries = append(entries, LineItem{Name: "Floor access (dropoff)", Amount: amount})
	}
	return entries
}

func floorCharge(property Property, rates *RateTable) decimal.Decimal {
	if property.Floor <= 0 || property.HasLift {
		return decimal.Zero
	}
	return rates.FloorPerFlight.Mul(decimal.NewFromInt(int64(property.Floor)))
}

func narrowAccessSurcharge(req QuoteRequest, _ ItemSummary, rates *RateTable, _ decimal.Decimal) []LineItem {
	affected := 0
	if req.PickupProperty.NarrowAccess {
		affected++
	}
	if req.DropoffProperty.NarrowAccess {
		affected++
	}
	if affected == 0 {
		return nil
	}
	amount := rates.NarrowAccessFee.Mul(decimal.NewFromInt(int64(affected)))
	return oneEntry("Narrow access", amount)
}

// peakTimeSurcharge fires on high slot demand or on the weekday-morning peak
// window. Both conditions map to the same flat fee; they never stack with
// each other, but the weekend rule stacks on top when both apply.
func peakTimeSurcharge(req QuoteRequest, _ ItemSummary, rates *RateTable, _ decimal.Decimal) []LineItem {
	peak := req.TimeSlot.Demand == DemandHigh ||
		(isWeekday(req.Date) && req.TimeSlot.Type == SlotMorning)
	if !peak {
		return nil
	}
	return oneEntry("Peak time", rates.PeakFee)
}

func weekendSurcharge(req QuoteRequest, _ ItemSummary, rates *RateTable, components decimal.Decimal) []LineItem {
	if isWeekday(req.Date) {
		return nil
	}
	return oneEntry("Weekend", components.Mul(rates.WeekendPercent))
}

func largeVolumeSurcharge(_ QuoteRequest, summary ItemSummary, rates *RateTable, _ decimal.Decimal) []LineItem {
	if summary.TotalVolume <= rates.LargeVolumeThreshold {
		return nil
	}
	return oneEntry("Large volume", rates.LargeVolumeFee)
}

func heavyLoadSurcharge(_ QuoteRequest, summary ItemSummary, rates *RateTable, _ decimal.Decimal) []LineItem {
	if summary.TotalWeight <= rates.HeavyLoadThreshold {
		return nil
	}
	return oneEntry("Heavy load", rates.HeavyLoadFee)
}

func oneEntry(name string, amount decimal.Decimal) []LineItem {
	if !amount.IsPositive() {
		return nil
	}
	return []LineItem{{Name: name, Amount: amount}}
}

func isWeekday(date time.Time) bool {
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	default:
		return true
	}
}
