package models

// MetricsSnapshot holds the aggregate statistics computed from a set of
// closed trades. All values are plain numbers; display formatting happens
// at report assembly, never here.
type MetricsSnapshot struct {
	TotalTrades   int
	WinningTrades int
	LosingTrades  int // breakeven trades count in neither bucket

	WinRate      float64 // percent, 0..100
	ProfitFactor float64 // capped
	MaxDrawdown  float64 // percent, <= 0; any negative drawdown floors to -1.0
	Expectancy   float64 // percent of capital base
	SharpeRatio  float64 // capped; fixed default on tiny/flat samples
	ReturnRisk   float64 // capped

	AvgWin  float64 // percent of capital base
	AvgLoss float64 // percent of capital base, <= 0

	WeeklyPerformance    float64 // percent
	MonthlyPerformance   float64
	QuarterlyPerformance float64
	YearlyPerformance    float64
}

// TimeSeries is a pair of parallel chronological sequences used by the
// dashboard charts.
type TimeSeries struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}
