package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/speedy-van/speedy-van-sub008/pkg/errors"
	"github.com/speedy-van/speedy-van-sub008/pkg/logger"
)

// Calculator prices a quote request. Implementations must be safe for
// concurrent use.
type Calculator interface {
	Calculate(ctx context.Context, req QuoteRequest) (*QuoteResult, error)
}

// Engine runs the pricing pipeline: base price, distance, service-tier
// multiplier, surcharge rules, discount rules, minimum-price floor, VAT.
// It holds no per-request state; identical requests against the same rate
// table always price identically.
type Engine struct {
	rates      *RateSource
	promos     PromoLookup
	logg       *logger.Logger
	surcharges []SurchargeRule
	now        func() time.Time
}

// NewEngine wires the engine with its rate source and promo lookup. The
// logger is optional; promos may be NoPromos().
func NewEngine(rates *RateSource, promos PromoLookup, logg *logger.Logger) *Engine {
	return &Engine{
		rates:      rates,
		promos:     promos,
		logg:       logg,
		surcharges: defaultSurchargeRules(),
		now:        time.Now,
	}
}

// Calculate prices one request. It returns a validation error for requests
// that cannot be priced and a configuration error when the active rate table
// lacks an entry the request needs. The request is never mutated.
func (e *Engine) Calculate(ctx context.Context, req QuoteRequest) (*QuoteResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	rates := e.rates.Current()
	summary := Summarize(req.Items)

	basePrice, err := resolveBasePrice(req, rates)
	if err != nil {
		return nil, err
	}
	distancePrice := resolveDistancePrice(req.DistanceMiles, rates)

	multiplier, ok := rates.Multipliers[req.ServiceType]
	if !ok {
		return nil, apperrors.New(apperrors.CodeConfiguration,
			fmt.Sprintf("no multiplier configured for service type %q", req.ServiceType))
	}
	servicePrice := basePrice.Add(distancePrice).Mul(multiplier)

	components := basePrice.Add(distancePrice).Add(servicePrice)

	running := components
	var surcharges []LineItem
	for _, rule := range e.surcharges {
		for _, entry := range rule.Apply(req, summary, rates, components) {
			surcharges = append(surcharges, entry)
			running = running.Add(entry.Amount)
		}
	}

	preDiscount := running
	var discounts []LineItem
	applyDiscount := func(entry LineItem, ok bool) {
		if !ok {
			return
		}
		if entry.Amount.GreaterThan(running) {
			entry.Amount = running
		}
		if !entry.Amount.IsPositive() {
			return
		}
		discounts = append(discounts, entry)
		running = running.Sub(entry.Amount)
	}
	applyDiscount(firstTimeDiscount(req, rates, preDiscount))
	applyDiscount(e.promoDiscount(ctx, req, preDiscount))

	preFloor := running
	floorApplied := false
	if running.LessThan(rates.MinimumPrice) {
		running = rates.MinimumPrice
		floorApplied = true
	}

	vat := running.Mul(rates.VATRate).Round(2)
	total := running.Add(vat)

	return &QuoteResult{
		BasePrice:        basePrice,
		DistancePrice:    distancePrice,
		ServicePrice:     servicePrice,
		Surcharges:       surcharges,
		Discounts:        discounts,
		PreFloorSubtotal: preFloor,
		Subtotal:         running,
		FloorApplied:     floorApplied,
		VAT:              vat,
		Total:            total,
		Summary:          summary,
	}, nil
}

// resolveBasePrice prefers the slot's own price, falling back to the
// service-type table when the slot carries none. A positive slot multiplier
// scales the resolved price; zero means "no adjustment".
func resolveBasePrice(req QuoteRequest, rates *RateTable) (decimal.Decimal, error) {
	price := req.TimeSlot.Price
	if price.IsZero() {
		fallback, ok := rates.BasePrices[req.ServiceType]
		if !ok {
			return decimal.Zero, apperrors.New(apperrors.CodeConfiguration,
				fmt.Sprintf("no base price configured for service type %q", req.ServiceType))
		}
		price = fallback
	}
	if req.TimeSlot.Multiplier.IsPositive() {
		price = price.Mul(req.TimeSlot.Multiplier)
	}
	return price, nil
}

func resolveDistancePrice(miles float64, rates *RateTable) decimal.Decimal {
	billable := miles - rates.FreeMiles
	if billable <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(billable).Mul(rates.PerMileRate)
}
