package pricing

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeakTimeSurcharge(t *testing.T) {
	t.Parallel()

	rates := DefaultRateTable()
	components := decimal.NewFromInt(90)

	t.Run("weekday morning slot", func(t *testing.T) {
		t.Parallel()
		req := standardRequest()
		req.Date = wednesday
		req.TimeSlot.Type = SlotMorning

		entries := peakTimeSurcharge(req, ItemSummary{}, rates, components)
		require.Len(t, entries, 1)
		assert.Equal(t, "Peak time", entries[0].Name)
		requireMoney(t, "12.00", entries[0].Amount)
	})

	t.Run("high demand on any day", func(t *testing.T) {
		t.Parallel()
		req := standardRequest()
		req.TimeSlot.Demand = DemandHigh
		req.TimeSlot.Type = SlotEvening

		entries := peakTimeSurcharge(req, ItemSummary{}, rates, components)
		require.Len(t, entries, 1)
	})

	t.Run("weekend afternoon does not trigger", func(t *testing.T) {
		t.Parallel()
		req := standardRequest()
		req.TimeSlot.Type = SlotAfternoon

		assert.Empty(t, peakTimeSurcharge(req, ItemSummary{}, rates, components))
	})

	t.Run("weekday afternoon does not trigger", func(t *testing.T) {
		t.Parallel()
		req := standardRequest()
		req.Date = wednesday
		req.TimeSlot.Type = SlotAfternoon

		assert.Empty(t, peakTimeSurcharge(req, ItemSummary{}, rates, components))
	})
}

func TestPeakAndWeekendStack(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, nil)
	req := standardRequest()
	req.TimeSlot.Demand = DemandHigh

	result, err := engine.Calculate(context.Background(), req)
	require.NoError(t, err)

	names := surchargeNames(result)
	assert.Contains(t, names, "Peak time")
	assert.Contains(t, names, "Weekend")
}

func TestFloorAccessSurcharge(t *testing.T) {
	t.Parallel()

	rates := DefaultRateTable()

	t.Run("lift suppresses the charge", func(t *testing.T) {
		t.Parallel()
		req := standardRequest()
		req.PickupProperty = Property{Floor: 5, HasLift: true}

		assert.Empty(t, floorAccessSurcharge(req, ItemSummary{}, rates, decimal.Zero))
	})

	t.Run("both addresses charge independently", func(t *testing.T) {
		t.Parallel()
		req := standardRequest()
		req.PickupProperty = Property{Floor: 2}
		req.DropoffProperty = Property{Floor: 1}

		entries := floorAccessSurcharge(req, ItemSummary{}, rates, decimal.Zero)
		require.Len(t, entries, 2)
		assert.Equal(t, "Floor access (pickup)", entries[0].Name)
		requireMoney(t, "20.00", entries[0].Amount)
		assert.Equal(t, "Floor access (dropoff)", entries[1].Name)
		requireMoney(t, "10.00", entries[1].Amount)
	})

	t.Run("ground floor is free", func(t *testing.T) {
		t.Parallel()
		req := standardRequest()

		assert.Empty(t, floorAccessSurcharge(req, ItemSummary{}, rates, decimal.Zero))
	})
}

func TestNarrowAccessSurchargeCountsAddresses(t *testing.T) {
	t.Parallel()

	rates := DefaultRateTable()
	req := standardRequest()
	req.PickupProperty.NarrowAccess = true
	req.DropoffProperty.NarrowAccess = true

	entries := narrowAccessSurcharge(req, ItemSummary{}, rates, decimal.Zero)
	require.Len(t, entries, 1)
	requireMoney(t, "30.00", entries[0].Amount)
}

func TestLoadSurchargesUseThresholds(t *testing.T) {
	t.Parallel()

	rates := DefaultRateTable()
	req := standardRequest()

	assert.Empty(t, largeVolumeSurcharge(req, ItemSummary{TotalVolume: 15}, rates, decimal.Zero))
	entries := largeVolumeSurcharge(req, ItemSummary{TotalVolume: 15.5}, rates, decimal.Zero)
	require.Len(t, entries, 1)
	assert.Equal(t, "Large volume", entries[0].Name)
	requireMoney(t, "25.00", entries[0].Amount)

	assert.Empty(t, heavyLoadSurcharge(req, ItemSummary{TotalWeight: 500}, rates, decimal.Zero))
	entries = heavyLoadSurcharge(req, ItemSummary{TotalWeight: 620}, rates, decimal.Zero)
	require.Len(t, entries, 1)
	assert.Equal(t, "Heavy load", entries[0].Name)
	requireMoney(t, "20.00", entries[0].Amount)
}

func TestSummarizeWeightsByQuantity(t *testing.T) {
	t.Parallel()

	summary := Summarize([]Item{
		{Volume: 0.5, Weight: 10, Quantity: 4, Fragile: true},
		{Volume: 2, Weight: 80, Quantity: 1, Valuable: true},
	})

	assert.Equal(t, 5, summary.TotalItems)
	assert.InDelta(t, 4.0, summary.TotalVolume, 1e-9)
	assert.InDelta(t, 120.0, summary.TotalWeight, 1e-9)
	assert.Equal(t, 4, summary.FragileCount)
	assert.Equal(t, 1, summary.ValuableCount)
}
