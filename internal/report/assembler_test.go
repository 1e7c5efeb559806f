package report

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mt5-reporter/internal/config"
	"mt5-reporter/internal/models"
)

var testNow = time.Date(2026, 8, 30, 14, 30, 0, 0, time.Local)

func testSnapshot() models.MetricsSnapshot {
	return models.MetricsSnapshot{
		TotalTrades:          10,
		WinningTrades:        6,
		LosingTrades:         3,
		WinRate:              60.0,
		ProfitFactor:         2.6,
		MaxDrawdown:          -1.0,
		Expectancy:           0.27,
		SharpeRatio:          1.85,
		ReturnRisk:           3.2,
		AvgWin:               0.65,
		AvgLoss:              -0.5,
		WeeklyPerformance:    0.8,
		MonthlyPerformance:   -2.1,
		QuarterlyPerformance: 6.3,
		YearlyPerformance:    18.5,
	}
}

func TestBuild_FormatsDisplayStrings(t *testing.T) {
	a := NewAssembler(config.DefaultStats())

	rep := a.Build(testSnapshot(), models.TimeSeries{}, models.TimeSeries{}, models.TimeSeries{}, nil, models.SourceTagReal, testNow)

	assert.Equal(t, "30/08/2026 14:30", rep.LastUpdate)
	assert.Equal(t, "+18.5%", rep.TotalProfit)
	assert.Equal(t, "-2.1%", rep.MonthlyProfit)
	assert.Equal(t, "60.0%", rep.WinRate)
	assert.Equal(t, "-1.0%", rep.MaxDrawdown)
	assert.Equal(t, "2.6", rep.ProfitFactor)
	assert.Equal(t, "+0.27%", rep.Expectancy)
	assert.Equal(t, "1.85", rep.SharpeRatio)
	assert.Equal(t, "3.2", rep.ReturnRisk)
	assert.Equal(t, "10", rep.TotalTrades)
	assert.Equal(t, "6", rep.WinningTrades)
	assert.Equal(t, "3", rep.LosingTrades)
	assert.Equal(t, "+0.65%", rep.AvgWin)
	assert.Equal(t, "-0.50%", rep.AvgLoss)
	assert.Equal(t, "+0.8%", rep.WeeklyPerformance)
	assert.Equal(t, "-2.1%", rep.MonthlyPerformance)
	assert.Equal(t, "+6.3%", rep.QuarterlyPerformance)
	assert.Equal(t, "+18.5%", rep.YearlyPerformance)
	assert.Equal(t, "MT5 Real", rep.DataSource)
}

func TestBuild_ZeroValuesCarryPlusSign(t *testing.T) {
	a := NewAssembler(config.DefaultStats())

	rep := a.Build(models.MetricsSnapshot{}, models.TimeSeries{}, models.TimeSeries{}, models.TimeSeries{}, nil, models.SourceTagReal, testNow)

	assert.Equal(t, "+0.0%", rep.TotalProfit)
	assert.Equal(t, "+0.00%", rep.Expectancy)
	assert.Equal(t, "0.0%", rep.MaxDrawdown)
}

func TestBuild_LatestTradesNewestFirstCapped(t *testing.T) {
	cfg := config.DefaultStats()
	a := NewAssembler(cfg)

	var trades []models.Deal
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.Local)
	for i := 0; i < 25; i++ {
		trades = append(trades, models.Deal{
			Symbol:    "EURUSD",
			Direction: models.DirectionBuy,
			Entry:     models.EntryIn,
			Time:      base.AddDate(0, 0, i),
			Profit:    float64(i),
		})
	}

	rep := a.Build(testSnapshot(), models.TimeSeries{}, models.TimeSeries{}, models.TimeSeries{}, trades, models.SourceTagReal, testNow)

	require.Len(t, rep.LatestTrades, cfg.LatestTradesLimit)
	// Newest first: the last appended trade leads.
	assert.Equal(t, base.AddDate(0, 0, 24).Format("02/01/2006 15:04"), rep.LatestTrades[0].OpenTime)
	assert.Equal(t, base.AddDate(0, 0, 5).Format("02/01/2006 15:04"), rep.LatestTrades[19].OpenTime)
}

func TestBuild_TradeViewFields(t *testing.T) {
	a := NewAssembler(config.DefaultStats())

	open := time.Date(2026, 8, 20, 9, 15, 0, 0, time.Local)
	trades := []models.Deal{{
		Symbol:    "XAUUSD",
		Direction: models.DirectionSell,
		Entry:     models.EntryIn,
		Time:      open,
		CloseTime: open.Add(3 * time.Hour),
		Profit:    -42.5,
		Volume:    0.25,
		Price:     2415.375,
	}}

	rep := a.Build(testSnapshot(), models.TimeSeries{}, models.TimeSeries{}, models.TimeSeries{}, trades, models.SourceTagReal, testNow)

	require.Len(t, rep.LatestTrades, 1)
	view := rep.LatestTrades[0]
	assert.Equal(t, "XAUUSD", view.Symbol)
	assert.Equal(t, "SELL", view.Type)
	assert.Equal(t, "20/08/2026 09:15", view.OpenTime)
	assert.Equal(t, "20/08/2026 12:15", view.CloseTime)
	assert.Equal(t, "3h", view.Duration)
	assert.Equal(t, "-$42.50", view.Profit)
	// -42.5 / 10000 * 100 * 0.10
	assert.Equal(t, "-0.04%", view.ProfitPercent)
	assert.Equal(t, "0.25", view.Volume)
	assert.Equal(t, "2415.37500", view.Price)
}

func TestBuild_UnknownCloseNeverFabricated(t *testing.T) {
	a := NewAssembler(config.DefaultStats())

	trades := []models.Deal{{
		Symbol:    "EURUSD",
		Direction: models.DirectionBuy,
		Entry:     models.EntryIn,
		Time:      time.Date(2026, 8, 20, 9, 0, 0, 0, time.Local),
		Profit:    10,
	}}

	rep := a.Build(testSnapshot(), models.TimeSeries{}, models.TimeSeries{}, models.TimeSeries{}, trades, models.SourceTagReal, testNow)

	require.Len(t, rep.LatestTrades, 1)
	assert.Equal(t, "n/d", rep.LatestTrades[0].CloseTime)
	assert.Equal(t, "n/d", rep.LatestTrades[0].Duration)
}

func TestBuild_JSONFieldNames(t *testing.T) {
	a := NewAssembler(config.DefaultStats())

	rep := a.Build(testSnapshot(),
		models.TimeSeries{Labels: []string{"01/08"}, Data: []int{10000}},
		models.TimeSeries{Labels: []string{"01/08"}, Data: []int{50}},
		models.TimeSeries{Labels: []string{"01/08"}, Data: []int{3}},
		nil, models.SourceTagReal, testNow)

	data, err := json.Marshal(rep)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	// The dashboard depends on these exact keys.
	for _, key := range []string{
		"lastUpdate", "totalProfit", "monthlyProfit", "winRate", "maxDrawdown",
		"profitFactor", "expectancy", "sharpeRatio", "returnRisk",
		"totalTrades", "winningTrades", "losingTrades", "avgWin", "avgLoss",
		"weeklyPerformance", "monthlyPerformance", "quarterlyPerformance",
		"yearlyPerformance", "dataSource", "latestTrades",
		"equityData", "dailyProfitData", "recentTradesData",
	} {
		assert.Contains(t, decoded, key)
	}

	equity, ok := decoded["equityData"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, equity, "labels")
	assert.Contains(t, equity, "data")
}
