package pricing

import "github.com/shopspring/decimal"

// LineItem is one named surcharge or discount entry. Amounts are always
// strictly positive; zero-amount rules are omitted, never emitted.
type LineItem struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// ItemSummary aggregates the inventory for the downstream rules.
type ItemSummary struct {
	TotalVolume   float64 `json:"totalVolume"`
	TotalWeight   float64 `json:"totalWeight"`
	FragileCount  int     `json:"fragileCount"`
	ValuableCount int     `json:"valuableCount"`
	TotalItems    int     `json:"totalItems"`
}

// QuoteResult is the terminal value of one pricing call. It is never
// re-priced in place; repricing requires a fresh QuoteRequest.
//
// Surcharges and discounts are ordered by rule-evaluation order, not by
// amount. PreFloorSubtotal and FloorApplied let the caller detect the silent
// minimum-price clamp.
type QuoteResult struct {
	BasePrice     decimal.Decimal `json:"basePrice"`
	DistancePrice decimal.Decimal `json:"distancePrice"`
	ServicePrice  decimal.Decimal `json:"servicePrice"`

	Surcharges []LineItem `json:"surcharges"`
	Discounts  []LineItem `json:"discounts"`

	PreFloorSubtotal decimal.Decimal `json:"preFloorSubtotal"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	FloorApplied     bool            `json:"floorApplied"`

	VAT   decimal.Decimal `json:"vat"`
	Total decimal.Decimal `json:"total"`

	Summary ItemSummary `json:"summary"`
}
