package report

import (
	"math"
	"time"

	"mt5-reporter/internal/config"
	"mt5-reporter/internal/models"
)

// Synthetic sample data used whenever real trade history is unavailable
// or empty. Every value is a documented constant so two runs with the
// same clock produce byte-identical reports.
var (
	sampleSnapshot = models.MetricsSnapshot{
		TotalTrades:          124,
		WinningTrades:        82,
		LosingTrades:         42,
		WinRate:              65.8,
		ProfitFactor:         1.8,
		MaxDrawdown:          -4.2,
		Expectancy:           1.2,
		SharpeRatio:          1.3,
		ReturnRisk:           2.8,
		AvgWin:               1.8,
		AvgLoss:              -1.1,
		WeeklyPerformance:    0.8,
		MonthlyPerformance:   2.1,
		QuarterlyPerformance: 6.3,
		YearlyPerformance:    18.5,
	}

	sampleTradeCounts  = []int{5, 8, 6, 9, 7, 3, 1}
	sampleDailyProfits = []int{250, 250, 300, 200, 200, 150, 0}
	sampleSymbols      = []string{"EURUSD", "GBPUSD", "USDJPY", "XAUUSD", "US30"}

	// Monthly equity growth applied per half step across the sample curve.
	sampleEquityGrowth = 1.015
)

// Fallback produces a complete, internally consistent sample report so
// the dashboard always receives a well-formed document.
type Fallback struct {
	cfg       config.StatsConfig
	assembler *Assembler
}

// NewFallback creates a fallback report generator.
func NewFallback(cfg config.StatsConfig) *Fallback {
	return &Fallback{cfg: cfg, assembler: NewAssembler(cfg)}
}

// Report builds the sample report. The dataSource tag distinguishes an
// unreachable source from one that produced no usable trades.
func (f *Fallback) Report(now time.Time, dataSource string) *models.Report {
	return f.assembler.Build(
		sampleSnapshot,
		f.equitySeries(now),
		f.fixedWindowSeries(now, sampleDailyProfits),
		f.fixedWindowSeries(now, sampleTradeCounts),
		f.sampleTrades(now),
		dataSource,
		now,
	)
}

// equitySeries synthesizes a gently rising capital curve, one point per
// month back from now.
func (f *Fallback) equitySeries(now time.Time) models.TimeSeries {
	points := f.cfg.EquityCurvePoints
	series := models.TimeSeries{
		Labels: make([]string, 0, points),
		Data:   make([]int, 0, points),
	}

	for i := 0; i < points; i++ {
		date := now.AddDate(0, 0, -30*(points-1-i))
		equity := f.cfg.CapitalBase * math.Pow(sampleEquityGrowth, float64(i)/2)
		series.Labels = append(series.Labels, date.Format(dateLabelFormat))
		series.Data = append(series.Data, int(equity))
	}

	return series
}

// fixedWindowSeries maps the sample values onto the trailing daily window,
// repeating the table if the configured window is longer.
func (f *Fallback) fixedWindowSeries(now time.Time, values []int) models.TimeSeries {
	days := f.cfg.RecentWindowDays
	series := models.TimeSeries{
		Labels: make([]string, 0, days),
		Data:   make([]int, 0, days),
	}

	for i := 0; i < days; i++ {
		date := now.AddDate(0, 0, -(days - 1 - i))
		series.Labels = append(series.Labels, date.Format(dateLabelFormat))
		series.Data = append(series.Data, values[i%len(values)])
	}

	return series
}

// sampleTrades fabricates ten recent trades with fixed spacing and
// arithmetic profit progression, oldest first so the assembler can
// reverse them like real history.
func (f *Fallback) sampleTrades(now time.Time) []models.Deal {
	const count = 10

	trades := make([]models.Deal, 0, count)
	for i := count - 1; i >= 0; i-- {
		direction := models.DirectionBuy
		if i%2 == 1 {
			direction = models.DirectionSell
		}

		open := now.Add(-time.Duration(i*2) * time.Hour)
		trades = append(trades, models.Deal{
			Symbol:    sampleSymbols[i%len(sampleSymbols)],
			Direction: direction,
			Entry:     models.EntryIn,
			Time:      open,
			CloseTime: open.Add(time.Hour),
			Profit:    12.5 + 3.5*float64(i),
			Volume:    0.10 + 0.05*float64(i),
			Price:     1.1 + 0.001*float64(i),
		})
	}

	return trades
}
