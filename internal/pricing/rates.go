package pricing

import (
	"fmt"
	"sync/atomic"

	"github.com/shopspring/decimal"

	"github.com/speedy-van/speedy-van-sub008/pkg/config"
)

// RateTable holds every tunable constant of the pricing pipeline. Tables are
// treated as immutable once published; tuning swaps in a whole new table via
// a RateSource instead of mutating the current one.
type RateTable struct {
	// Fallback base prices by service type, used when the selected time
	// slot does not carry its own price.
	BasePrices map[ServiceType]decimal.Decimal

	// Service-tier multipliers applied to base plus distance.
	Multipliers map[ServiceType]decimal.Decimal

	PerMileRate decimal.Decimal
	FreeMiles   float64

	FragilePerItem  decimal.Decimal
	ValuablePerItem decimal.Decimal
	FloorPerFlight  decimal.Decimal
	NarrowAccessFee decimal.Decimal
	PeakFee         decimal.Decimal
	WeekendPercent  decimal.Decimal

	LargeVolumeFee       decimal.Decimal
	LargeVolumeThreshold float64
	HeavyLoadFee         decimal.Decimal
	HeavyLoadThreshold   float64

	FirstTimePercent decimal.Decimal

	MinimumPrice decimal.Decimal
	VATRate      decimal.Decimal
}

// DefaultRateTable returns the built-in production rates in pounds sterling.
func DefaultRateTable() *RateTable {
	return &RateTable{
		BasePrices: map[ServiceType]decimal.Decimal{
			ServiceVanOnly:       decimal.NewFromInt(25),
			ServiceManAndVan:     decimal.NewFromInt(30),
			ServiceTwoPerson:     decimal.NewFromInt(40),
			ServiceVanWithTwoMen: decimal.NewFromInt(50),
		},
		Multipliers: map[ServiceType]decimal.Decimal{
			ServiceVanOnly:       decimal.RequireFromString("0.85"),
			ServiceManAndVan:     decimal.NewFromInt(1),
			ServiceTwoPerson:     decimal.RequireFromString("1.25"),
			ServiceVanWithTwoMen: decimal.RequireFromString("1.5"),
		},

		PerMileRate: decimal.RequireFromString("2.5"),
		FreeMiles:   2,

		FragilePerItem:  decimal.NewFromInt(4),
		ValuablePerItem: decimal.NewFromInt(5),
		FloorPerFlight:  decimal.NewFromInt(10),
		NarrowAccessFee: decimal.NewFromInt(15),
		PeakFee:         decimal.NewFromInt(12),
		WeekendPercent:  decimal.RequireFromString("0.10"),

		LargeVolumeFee:       decimal.NewFromInt(25),
		LargeVolumeThreshold: 15,
		HeavyLoadFee:         decimal.NewFromInt(20),
		HeavyLoadThreshold:   500,

		FirstTimePercent: decimal.RequireFromString("0.10"),

		MinimumPrice: decimal.NewFromInt(55),
		VATRate:      decimal.RequireFromString("0.20"),
	}
}

// RateTableFromConfig overlays environment overrides on the defaults.
func RateTableFromConfig(cfg config.PricingConfig) *RateTable {
	table := DefaultRateTable()
	table.MinimumPrice = cfg.MinimumPrice
	table.PerMileRate = cfg.PerMileRate
	table.FreeMiles = cfg.FreeMiles
	table.FirstTimePercent = cfg.FirstTimePercent
	table.WeekendPercent = cfg.WeekendPercent
	table.VATRate = cfg.VATRate
	return table
}

// Validate rejects tables that would make the engine misprice or fail
// mid-pipeline for every request.
func (t *RateTable) Validate() error {
	if t == nil {
		return fmt.Errorf("rate table is nil")
	}
	if len(t.Multipliers) == 0 {
		return fmt.Errorf("multiplier table is empty")
	}
	for serviceType, multiplier := range t.Multipliers {
		if !multiplier.IsPositive() {
			return fmt.Errorf("multiplier for %q must be positive", serviceType)
		}
	}
	for serviceType, price := range t.BasePrices {
		if price.IsNegative() {
			return fmt.Errorf("base price for %q cannot be negative", serviceType)
		}
	}
	if t.PerMileRate.IsNegative() {
		return fmt.Errorf("per-mile rate cannot be negative")
	}
	if t.MinimumPrice.IsNegative() {
		return fmt.Errorf("minimum price cannot be negative")
	}
	if t.VATRate.IsNegative() || t.VATRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("vat rate must be in [0, 1)")
	}
	return nil
}

// RateSource publishes the active rate table. Readers always see a complete
// table; swaps are atomic and never observed half-applied.
type RateSource struct {
	table atomic.Pointer[RateTable]
}

// NewRateSource validates and publishes the initial table.
func NewRateSource(table *RateTable) (*RateSource, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	source := &RateSource{}
	source.table.Store(table)
	return source, nil
}

// Current returns the active table.
func (s *RateSource) Current() *RateTable {
	return s.table.Load()
}

// Swap publishes a new table after validating it. In-flight calculations keep
// the table they started with.
func (s *RateSource) Swap(table *RateTable) error {
	if err := table.Validate(); err != nil {
		return err
	}
	s.table.Store(table)
	return nil
}
