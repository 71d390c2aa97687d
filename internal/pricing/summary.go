package pricing

// Summarize aggregates the inventory into the totals the surcharge rules
// read. Fragile and valuable counts are quantity-weighted so ten flagged
// boxes cost more than one.
func Summarize(items []Item) ItemSummary {
	var summary ItemSummary
	for _, item := range items {
		quantity := item.Quantity
		if quantity < 1 {
			quantity = 1
		}
		summary.TotalItems += quantity
		summary.TotalVolume += item.Volume * float64(quantity)
		summary.TotalWeight += item.Weight * float64(quantity)
		if item.Fragile {
			summary.FragileCount += quantity
		}
		if item.Valuable {
			summary.ValuableCount += quantity
		}
	}
	return summary
}
