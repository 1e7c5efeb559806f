// Package report assembles and persists the dashboard report.
package report

import (
	"fmt"
	"strconv"
	"time"

	"mt5-reporter/internal/config"
	"mt5-reporter/internal/models"
	"mt5-reporter/pkg/utils"
)

// Display formats used by the dashboard.
const (
	timestampFormat = "02/01/2006 15:04"
	dateLabelFormat = "02/01"
)

// durationUnknown marks trades whose close leg the source does not track.
// Durations are never fabricated.
const durationUnknown = "n/d"

// Assembler merges a metrics snapshot, the chart series and the most
// recent trades into the final report. All display formatting happens
// here and nowhere else.
type Assembler struct {
	cfg config.StatsConfig
}

// NewAssembler creates a report assembler.
func NewAssembler(cfg config.StatsConfig) *Assembler {
	return &Assembler{cfg: cfg}
}

// Build constructs the report. Trades must be sorted ascending by
// timestamp; the assembler takes the configured number of most recent
// ones, newest first. The report is complete after this call and is
// never mutated again.
func (a *Assembler) Build(
	snap models.MetricsSnapshot,
	equity, daily, recent models.TimeSeries,
	trades []models.Deal,
	dataSource string,
	now time.Time,
) *models.Report {
	return &models.Report{
		LastUpdate: now.Format(timestampFormat),

		TotalProfit:   utils.SignedPercent(snap.YearlyPerformance, 1),
		MonthlyProfit: utils.SignedPercent(snap.MonthlyPerformance, 1),
		WinRate:       utils.Percent(snap.WinRate, 1),
		MaxDrawdown:   utils.Percent(snap.MaxDrawdown, 1),
		ProfitFactor:  utils.Ratio(snap.ProfitFactor, 1),
		Expectancy:    utils.SignedPercent(snap.Expectancy, 2),
		SharpeRatio:   utils.Ratio(snap.SharpeRatio, 2),
		ReturnRisk:    utils.Ratio(snap.ReturnRisk, 1),
		TotalTrades:   strconv.Itoa(snap.TotalTrades),
		WinningTrades: strconv.Itoa(snap.WinningTrades),
		LosingTrades:  strconv.Itoa(snap.LosingTrades),
		AvgWin:        utils.SignedPercent(snap.AvgWin, 2),
		AvgLoss:       utils.SignedPercent(snap.AvgLoss, 2),

		WeeklyPerformance:    utils.SignedPercent(snap.WeeklyPerformance, 1),
		MonthlyPerformance:   utils.SignedPercent(snap.MonthlyPerformance, 1),
		QuarterlyPerformance: utils.SignedPercent(snap.QuarterlyPerformance, 1),
		YearlyPerformance:    utils.SignedPercent(snap.YearlyPerformance, 1),

		DataSource: dataSource,

		LatestTrades: a.latestTrades(trades),

		EquityData:       equity,
		DailyProfitData:  daily,
		RecentTradesData: recent,
	}
}

// latestTrades formats the configured number of most recent trades,
// newest first.
func (a *Assembler) latestTrades(trades []models.Deal) []models.TradeView {
	limit := a.cfg.LatestTradesLimit
	if limit > len(trades) {
		limit = len(trades)
	}

	views := make([]models.TradeView, 0, limit)
	for i := len(trades) - 1; i >= len(trades)-limit; i-- {
		views = append(views, a.tradeView(trades[i]))
	}
	return views
}

func (a *Assembler) tradeView(t models.Deal) models.TradeView {
	closeTime := durationUnknown
	duration := durationUnknown
	if t.HasClose() {
		closeTime = t.CloseTime.Format(timestampFormat)
		duration = formatDuration(t.CloseTime.Sub(t.Time))
	}

	profitPercent := t.Profit / a.cfg.CapitalBase * 100 * a.cfg.ScaleFactor

	return models.TradeView{
		Symbol:        t.Symbol,
		Type:          string(t.Direction),
		OpenTime:      t.Time.Format(timestampFormat),
		CloseTime:     closeTime,
		Duration:      duration,
		Profit:        utils.Money(t.Profit),
		ProfitPercent: utils.SignedPercent(profitPercent, 2),
		Volume:        fmt.Sprintf("%.2f", t.Volume),
		Price:         fmt.Sprintf("%.5f", t.Price),
	}
}

func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	return fmt.Sprintf("%dh", int(d.Hours()))
}
