package controllers

import (
	"net/http"

	"github.com/speedy-van/speedy-van-sub008/api/responses"
	"github.com/speedy-van/speedy-van-sub008/internal/pricing"
)

var orderedServiceTypes = []pricing.ServiceType{
	pricing.ServiceVanOnly,
	pricing.ServiceManAndVan,
	pricing.ServiceTwoPerson,
	pricing.ServiceVanWithTwoMen,
}

var serviceTypeLabels = map[pricing.ServiceType]string{
	pricing.ServiceVanOnly:       "Van only",
	pricing.ServiceManAndVan:     "Man and van",
	pricing.ServiceTwoPerson:     "Two-person crew",
	pricing.ServiceVanWithTwoMen: "Van with 2 men",
}

type serviceTypeEntry struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	BasePrice  string `json:"basePrice"`
	Multiplier string `json:"multiplier"`
}

// ServiceTypes lists the bookable service tiers with their current rates,
// cheapest tier first.
func ServiceTypes(rates *pricing.RateSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table := rates.Current()

		entries := make([]serviceTypeEntry, 0, len(orderedServiceTypes))
		for _, serviceType := range orderedServiceTypes {
			multiplier, ok := table.Multipliers[serviceType]
			if !ok {
				continue
			}
			entry := serviceTypeEntry{
				ID:         string(serviceType),
				Label:      serviceTypeLabels[serviceType],
				Multiplier: multiplier.String(),
			}
			if base, ok := table.BasePrices[serviceType]; ok {
				entry.BasePrice = base.StringFixed(2)
			}
			entries = append(entries, entry)
		}

		responses.WriteSuccess(w, entries)
	}
}
