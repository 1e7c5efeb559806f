package stats

import (
	"math"
	"time"

	"mt5-reporter/internal/config"
	"mt5-reporter/internal/models"
)

// dateLabel is the fixed chart label format (day/month).
const dateLabel = "02/01"

// Aggregator buckets trades by calendar date for the dashboard charts.
type Aggregator struct {
	cfg config.StatsConfig
}

// NewAggregator creates a time-bucket aggregator with the given constants.
func NewAggregator(cfg config.StatsConfig) *Aggregator {
	return &Aggregator{cfg: cfg}
}

// EquityCurve builds the capital-over-time series: per calendar date the
// last cumulative scaled profit, converted to capital, then downsampled to
// at most the configured point count using evenly spaced indices.
// Trades must be sorted ascending by timestamp.
func (a *Aggregator) EquityCurve(trades []models.Deal) models.TimeSeries {
	var dates []time.Time
	lastCum := make(map[string]float64)

	var cum float64
	for _, t := range trades {
		cum += t.Profit * a.cfg.ScaleFactor
		key := dayKey(t.Time)
		if _, seen := lastCum[key]; !seen {
			dates = append(dates, t.Time)
		}
		lastCum[key] = cum
	}

	n := len(dates)
	if n == 0 {
		return models.TimeSeries{Labels: []string{}, Data: []int{}}
	}

	k := a.cfg.EquityCurvePoints
	if n < k {
		k = n
	}

	series := models.TimeSeries{
		Labels: make([]string, 0, k),
		Data:   make([]int, 0, k),
	}
	for i := 0; i < k; i++ {
		idx := 0
		if k > 1 {
			idx = int(math.Round(float64(i) * float64(n-1) / float64(k-1)))
		}
		date := dates[idx]
		capital := a.cfg.CapitalBase + lastCum[dayKey(date)]
		series.Labels = append(series.Labels, date.Format(dateLabel))
		series.Data = append(series.Data, int(capital))
	}

	return series
}

// RecentTradeCounts counts trades per calendar day over the trailing
// window ending today. Every day appears, zero or not.
func (a *Aggregator) RecentTradeCounts(trades []models.Deal, now time.Time) models.TimeSeries {
	counts := make(map[string]int)
	for _, t := range trades {
		counts[dayKey(t.Time)]++
	}

	return a.trailingWindow(now, func(key string) int {
		return counts[key]
	})
}

// DailyProfit sums scaled profit per calendar day over the same trailing
// window. Days with no trades report 0.
func (a *Aggregator) DailyProfit(trades []models.Deal, now time.Time) models.TimeSeries {
	sums := make(map[string]float64)
	for _, t := range trades {
		sums[dayKey(t.Time)] += t.Profit * a.cfg.ScaleFactor
	}

	return a.trailingWindow(now, func(key string) int {
		return int(sums[key])
	})
}

// trailingWindow walks the last RecentWindowDays calendar days in
// chronological order, oldest first, today inclusive.
func (a *Aggregator) trailingWindow(now time.Time, value func(key string) int) models.TimeSeries {
	days := a.cfg.RecentWindowDays
	series := models.TimeSeries{
		Labels: make([]string, 0, days),
		Data:   make([]int, 0, days),
	}

	for i := days - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		series.Labels = append(series.Labels, day.Format(dateLabel))
		series.Data = append(series.Data, value(dayKey(day)))
	}

	return series
}

// dayKey collapses a timestamp to its local calendar date.
func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
