package quotedto

import "github.com/speedy-van/speedy-van-sub008/internal/pricing"

// QuoteResponse renders every amount as a two-decimal string so clients are
// never exposed to float drift.
type QuoteResponse struct {
	BasePrice     string `json:"basePrice"`
	DistancePrice string `json:"distancePrice"`
	ServicePrice  string `json:"servicePrice"`

	Surcharges []LineItem `json:"surcharges"`
	Discounts  []LineItem `json:"discounts"`

	Subtotal     string `json:"subtotal"`
	FloorApplied bool   `json:"floorApplied"`
	VAT          string `json:"vat"`
	Total        string `json:"total"`
	Currency     string `json:"currency"`

	Summary ItemSummary `json:"summary"`
}

type LineItem struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

type ItemSummary struct {
	TotalVolume   float64 `json:"totalVolume"`
	TotalWeight   float64 `json:"totalWeight"`
	FragileCount  int     `json:"fragileCount"`
	ValuableCount int     `json:"valuableCount"`
	TotalItems    int     `json:"totalItems"`
}

// FromResult converts an engine result into the wire shape.
func FromResult(result *pricing.QuoteResult) QuoteResponse {
	return QuoteResponse{
		BasePrice:     result.BasePrice.StringFixed(2),
		DistancePrice: result.DistancePrice.StringFixed(2),
		ServicePrice:  result.ServicePrice.StringFixed(2),
		Surcharges:    toLineItems(result.Surcharges),
		Discounts:     toLineItems(result.Discounts),
		Subtotal:      result.Subtotal.StringFixed(2),
		FloorApplied:  result.FloorApplied,
		VAT:           result.VAT.StringFixed(2),
		Total:         result.Total.StringFixed(2),
		Currency:      "GBP",
		Summary: ItemSummary{
			TotalVolume:   result.Summary.TotalVolume,
			TotalWeight:   result.Summary.TotalWeight,
			FragileCount:  result.Summary.FragileCount,
			ValuableCount: result.Summary.ValuableCount,
			TotalItems:    result.Summary.TotalItems,
		},
	}
}

func toLineItems(entries []pricing.LineItem) []LineItem {
	out := make([]LineItem, 0, len(entries))
	for _, entry := range entries {
		out = append(out, LineItem{Name: entry.Name, Amount: entry.Amount.StringFixed(2)})
	}
	return out
}
