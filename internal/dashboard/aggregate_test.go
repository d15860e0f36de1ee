package dashboard

import (
	"testing"
	"time"

	"trade-dashboard-go/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func typedTrade(contract, typ string, pnl float64) models.Trade {
	return models.Trade{Contract: contract, Type: typ, PnL: decimal.NewFromFloat(pnl)}
}

func TestAggregate(t *testing.T) {
	testCases := []struct {
		name          string
		trades        []models.Trade
		expectedTotal string
		expectedCount int
		expectedDay   string
		expectedSwing string
	}{
		{
			name:          "Empty set",
			trades:        nil,
			expectedTotal: "0",
			expectedCount: 0,
			expectedDay:   "0",
			expectedSwing: "0",
		},
		{
			name: "Filtered BTC example",
			trades: []models.Trade{
				typedTrade("BTC", "day", 100),
				typedTrade("BTC", "swing", 30),
			},
			expectedTotal: "130",
			expectedCount: 2,
			expectedDay:   "100",
			expectedSwing: "30",
		},
		{
			name: "Unknown category counted in total only",
			trades: []models.Trade{
				typedTrade("BTC", "day", 10),
				typedTrade("BTC", "scalp", 5),
			},
			expectedTotal: "15",
			expectedCount: 2,
			expectedDay:   "10",
			expectedSwing: "0",
		},
		{
			name: "Negative figures",
			trades: []models.Trade{
				typedTrade("ETH", "day", -40.5),
				typedTrade("ETH", "swing", 15.25),
			},
			expectedTotal: "-25.25",
			expectedCount: 2,
			expectedDay:   "-40.5",
			expectedSwing: "15.25",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			kpi := Aggregate(tc.trades, "day", "swing")
			assert.Equal(t, tc.expectedTotal, kpi.TotalPnL.String())
			assert.Equal(t, tc.expectedCount, kpi.TradeCount)
			assert.Equal(t, tc.expectedDay, kpi.DayTradePnL.String())
			assert.Equal(t, tc.expectedSwing, kpi.SwingTradePnL.String())
		})
	}
}

func TestAggregatePartition(t *testing.T) {
	// Every trade lands in at most one category; subtotals plus the
	// uncategorized remainder always equal the total.
	trades := []models.Trade{
		typedTrade("BTC", "day", 12),
		typedTrade("BTC", "swing", -7),
		typedTrade("BTC", "day", 3),
		typedTrade("BTC", "", 100),
	}
	kpi := Aggregate(trades, "day", "swing")

	remainder := kpi.TotalPnL.Sub(kpi.DayTradePnL).Sub(kpi.SwingTradePnL)
	assert.Equal(t, "100", remainder.String())
	assert.Equal(t, "15", kpi.DayTradePnL.String())
	assert.Equal(t, "-7", kpi.SwingTradePnL.String())
}

func TestCumulativeSeries(t *testing.T) {
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	trades := []models.Trade{
		{
			Contract:  "BTC",
			PnL:       decimal.NewFromInt(100),
			OpenTime:  base,
			CloseTime: base.Add(2 * time.Hour),
		},
		{
			Contract:  "BTC",
			PnL:       decimal.NewFromInt(-30),
			OpenTime:  base.Add(time.Hour),
			CloseTime: base.Add(4 * time.Hour),
		},
		{
			Contract:  "BTC",
			PnL:       decimal.NewFromInt(50),
			OpenTime:  base.Add(3 * time.Hour),
			CloseTime: base.Add(6 * time.Hour),
		},
	}

	points := CumulativeSeries(trades)
	assert.Len(t, points, 4)

	// Baseline at zero anchored at the earliest open time.
	assert.Equal(t, base, points[0].Time)
	assert.True(t, points[0].Value.IsZero())

	assert.Equal(t, "100", points[1].Value.String())
	assert.Equal(t, "70", points[2].Value.String())
	assert.Equal(t, "120", points[3].Value.String())
	assert.Equal(t, base.Add(6*time.Hour), points[3].Time)
}

func TestCumulativeSeriesEmpty(t *testing.T) {
	assert.Nil(t, CumulativeSeries(nil))
}
