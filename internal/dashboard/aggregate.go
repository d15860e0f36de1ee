package dashboard

import (
	"time"

	"trade-dashboard-go/internal/models"

	"github.com/shopspring/decimal"
)

// KPI holds the summary figures for the filtered trade set.
type KPI struct {
	TotalPnL      decimal.Decimal
	TradeCount    int
	DayTradePnL   decimal.Decimal
	SwingTradePnL decimal.Decimal
}

// SeriesPoint is one point of the cumulative P&L series.
type SeriesPoint struct {
	Time  time.Time
	Value decimal.Decimal
}

// Aggregate computes the KPI figures for the filtered trade set. The day and
// swing subtotals partition the set by the trade's type label; a trade whose
// label matches neither is counted in the total only.
func Aggregate(trades []models.Trade, dayLabel, swingLabel string) KPI {
	kpi := KPI{
		TotalPnL:      decimal.Zero,
		TradeCount:    len(trades),
		DayTradePnL:   decimal.Zero,
		SwingTradePnL: decimal.Zero,
	}
	for _, t := range trades {
		kpi.TotalPnL = kpi.TotalPnL.Add(t.PnL)
		switch t.Type {
		case dayLabel:
			kpi.DayTradePnL = kpi.DayTradePnL.Add(t.PnL)
		case swingLabel:
			kpi.SwingTradePnL = kpi.SwingTradePnL.Add(t.PnL)
		}
	}
	return kpi
}

// CumulativeSeries computes the running P&L total over the filtered trades.
// The input is expected in close-time order; each point carries the close
// time and the cumulative sum up to and including that trade.
func CumulativeSeries(trades []models.Trade) []SeriesPoint {
	if len(trades) == 0 {
		return nil
	}
	points := make([]SeriesPoint, 0, len(trades)+1)

	// Baseline at zero so the curve starts from flat, anchored at the
	// earliest open time.
	start := trades[0].OpenTime
	for _, t := range trades {
		if t.OpenTime.Before(start) {
			start = t.OpenTime
		}
	}
	points = append(points, SeriesPoint{Time: start, Value: decimal.Zero})

	running := decimal.Zero
	for _, t := range trades {
		running = running.Add(t.PnL)
		points = append(points, SeriesPoint{Time: t.CloseTime, Value: running})
	}
	return points
}
