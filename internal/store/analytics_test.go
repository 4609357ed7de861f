package store

import (
	"testing"
	"time"

	"github.com/invtrack/inventory-manager/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrowthRate(t *testing.T) {
	rate := growthRate(decimal.NewFromInt(150), decimal.NewFromInt(100))
	require.NotNil(t, rate)
	assert.InDelta(t, 50.0, *rate, 0.001)

	rate = growthRate(decimal.NewFromInt(80), decimal.NewFromInt(100))
	require.NotNil(t, rate)
	assert.InDelta(t, -20.0, *rate, 0.001)

	assert.Nil(t, growthRate(decimal.NewFromInt(100), decimal.Zero))
}

func TestGrowthRateRounding(t *testing.T) {
	rate := growthRate(decimal.NewFromInt(1), decimal.NewFromInt(3))
	require.NotNil(t, rate)
	assert.InDelta(t, -66.67, *rate, 0.001)
}

func salesSeries(revenues ...int64) []entity.SalesPeriod {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	periods := make([]entity.SalesPeriod, 0, len(revenues))
	for i, r := range revenues {
		periods = append(periods, entity.SalesPeriod{
			Period:  base.AddDate(0, i, 0),
			Revenue: decimal.NewFromInt(r),
		})
	}
	return periods
}

func TestApplyGrowth(t *testing.T) {
	periods := salesSeries(100, 150, 0)

	applyGrowth(periods,
		func(p *entity.SalesPeriod) decimal.Decimal { return p.Revenue },
		func(p *entity.SalesPeriod, prev *decimal.Decimal, rate *float64) {
			p.PrevRevenue = prev
			p.GrowthRate = rate
		})

	// first period has nothing to compare against
	assert.Nil(t, periods[0].PrevRevenue)
	assert.Nil(t, periods[0].GrowthRate)

	require.NotNil(t, periods[1].GrowthRate)
	assert.InDelta(t, 50.0, *periods[1].GrowthRate, 0.001)
	require.NotNil(t, periods[1].PrevRevenue)
	assert.True(t, periods[1].PrevRevenue.Equal(decimal.NewFromInt(100)))

	require.NotNil(t, periods[2].GrowthRate)
	assert.InDelta(t, -100.0, *periods[2].GrowthRate, 0.001)
}

func TestApplyGrowthZeroPredecessor(t *testing.T) {
	periods := salesSeries(0, 200)

	applyGrowth(periods,
		func(p *entity.SalesPeriod) decimal.Decimal { return p.Revenue },
		func(p *entity.SalesPeriod, prev *decimal.Decimal, rate *float64) {
			p.PrevRevenue = prev
			p.GrowthRate = rate
		})

	// the zero predecessor is still reported, only the rate is undefined
	require.NotNil(t, periods[1].PrevRevenue)
	assert.True(t, periods[1].PrevRevenue.IsZero())
	assert.Nil(t, periods[1].GrowthRate)
}

func TestApplyGrowthShortSeries(t *testing.T) {
	assert.NotPanics(t, func() {
		applyGrowth(nil,
			func(p *entity.SalesPeriod) decimal.Decimal { return p.Revenue },
			func(p *entity.SalesPeriod, prev *decimal.Decimal, rate *float64) {})
	})

	single := salesSeries(100)
	applyGrowth(single,
		func(p *entity.SalesPeriod) decimal.Decimal { return p.Revenue },
		func(p *entity.SalesPeriod, prev *decimal.Decimal, rate *float64) {
			p.GrowthRate = rate
		})
	assert.Nil(t, single[0].GrowthRate)
}

func TestReverse(t *testing.T) {
	periods := salesSeries(1, 2, 3)
	out := reverse(periods)
	require.Len(t, out, 3)
	assert.True(t, out[0].Revenue.Equal(decimal.NewFromInt(3)))
	assert.True(t, out[2].Revenue.Equal(decimal.NewFromInt(1)))

	assert.Empty(t, reverse([]entity.SalesPeriod{}))
}
