package stats

import (
	"math"
	"time"

	"mt5-reporter/internal/config"
	"mt5-reporter/internal/models"
)

// Engine computes aggregate statistics from filtered, chronologically
// ordered trades. All constants come from the config table; nothing is
// re-declared ad hoc. Outputs are plain numbers, formatting happens later.
type Engine struct {
	cfg config.StatsConfig
}

// NewEngine creates a metrics engine with the given constant table.
func NewEngine(cfg config.StatsConfig) *Engine {
	return &Engine{cfg: cfg}
}

// Compute derives the full metrics snapshot. Trades must be sorted
// ascending by timestamp; now anchors the rolling performance windows.
func (e *Engine) Compute(trades []models.Deal, now time.Time) models.MetricsSnapshot {
	cfg := e.cfg
	snap := models.MetricsSnapshot{
		TotalTrades: len(trades),
		SharpeRatio: cfg.SharpeDefault,
	}

	// Scale every profit once, up front. Every sum, mean and curve below
	// works on scaled values so the scaling convention cannot diverge.
	scaled := make([]float64, len(trades))
	for i, t := range trades {
		scaled[i] = t.Profit * cfg.ScaleFactor
	}

	var winSum, lossSum float64
	for i, t := range trades {
		switch {
		case t.Profit > 0:
			snap.WinningTrades++
			winSum += scaled[i]
		case t.Profit < 0:
			snap.LosingTrades++
			lossSum += scaled[i]
		}
		// breakeven trades count toward the total only
	}

	if snap.TotalTrades > 0 {
		snap.WinRate = float64(snap.WinningTrades) / float64(snap.TotalTrades) * 100
	}

	// Profit factor: winners over |losers|, same scaling on both sides.
	lossAbs := math.Abs(lossSum)
	if lossAbs == 0 {
		lossAbs = cfg.Epsilon
	}
	snap.ProfitFactor = sanitize(math.Min(winSum/lossAbs, cfg.ProfitFactorCap))

	snap.MaxDrawdown = e.maxDrawdown(scaled)

	snap.Expectancy = e.expectancy(snap, winSum, lossSum)

	if sharpe, ok := e.sharpe(scaled); ok {
		snap.SharpeRatio = sharpe
	}

	snap.WeeklyPerformance = e.windowPerformance(trades, scaled, now.AddDate(0, 0, -cfg.WeeklyWindowDays))
	snap.MonthlyPerformance = e.windowPerformance(trades, scaled, now.AddDate(0, 0, -cfg.MonthlyWindowDays))
	snap.QuarterlyPerformance = e.windowPerformance(trades, scaled, now.AddDate(0, 0, -cfg.QuarterlyWindowDays))
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	snap.YearlyPerformance = e.windowPerformance(trades, scaled, yearStart)

	snap.ReturnRisk = e.returnRisk(snap.YearlyPerformance, snap.MaxDrawdown)

	if snap.WinningTrades > 0 {
		snap.AvgWin = sanitize(winSum / float64(snap.WinningTrades) / cfg.CapitalBase * 100)
	}
	if snap.LosingTrades > 0 {
		snap.AvgLoss = sanitize(lossSum / float64(snap.LosingTrades) / cfg.CapitalBase * 100)
	}

	return snap
}

// maxDrawdown walks the running capital curve against its running peak.
// Any negative drawdown is floored to at most -1.0; a flat or rising curve
// reports exactly 0.
func (e *Engine) maxDrawdown(scaled []float64) float64 {
	capital := e.cfg.CapitalBase
	peak := capital
	minDD := 0.0

	for _, p := range scaled {
		capital += p
		if capital > peak {
			peak = capital
		}
		dd := (capital/peak - 1) * 100
		if dd < minDD {
			minDD = dd
		}
	}

	if minDD < 0 {
		return math.Min(minDD, -1.0)
	}
	return 0
}

// expectancy is the probability-weighted average scaled profit per trade,
// as percent of the capital base. An undefined result coerces to 0.
func (e *Engine) expectancy(snap models.MetricsSnapshot, winSum, lossSum float64) float64 {
	if snap.TotalTrades == 0 {
		return 0
	}

	var avgWin, avgLoss float64
	if snap.WinningTrades > 0 {
		avgWin = winSum / float64(snap.WinningTrades)
	}
	if snap.LosingTrades > 0 {
		avgLoss = lossSum / float64(snap.LosingTrades)
	}

	pWin := float64(snap.WinningTrades) / float64(snap.TotalTrades)
	pLoss := float64(snap.LosingTrades) / float64(snap.TotalTrades)

	return sanitize((pWin*avgWin + pLoss*avgLoss) / e.cfg.CapitalBase * 100)
}

// sharpe annualizes mean over sample standard deviation. Reports ok=false
// when the sample is too small or flat, in which case the configured
// default applies.
func (e *Engine) sharpe(scaled []float64) (float64, bool) {
	n := len(scaled)
	if n <= 1 {
		return 0, false
	}

	var mean float64
	for _, p := range scaled {
		mean += p
	}
	mean /= float64(n)

	var variance float64
	for _, p := range scaled {
		variance += (p - mean) * (p - mean)
	}
	variance /= float64(n - 1)
	stddev := math.Sqrt(variance)

	if stddev == 0 {
		return 0, false
	}

	sharpe := mean / stddev * math.Sqrt(float64(e.cfg.TradingDaysPerYear))
	return sanitize(math.Min(sharpe, e.cfg.SharpeCap)), true
}

// returnRisk relates yearly performance to the worst drawdown. Zero
// drawdown is treated as negligible risk via the epsilon substitute.
func (e *Engine) returnRisk(yearly, maxDrawdown float64) float64 {
	if maxDrawdown != 0 {
		return sanitize(math.Min(math.Abs(yearly/maxDrawdown), e.cfg.ReturnRiskCap))
	}
	return sanitize(yearly / e.cfg.Epsilon)
}

// windowPerformance sums scaled profit of trades at or after the cutoff,
// as percent of the capital base.
func (e *Engine) windowPerformance(trades []models.Deal, scaled []float64, cutoff time.Time) float64 {
	var sum float64
	for i, t := range trades {
		if !t.Time.Before(cutoff) {
			sum += scaled[i]
		}
	}
	return sanitize(sum / e.cfg.CapitalBase * 100)
}

// sanitize coerces non-finite values to 0 so no metric ever renders as
// NaN or Infinity.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
