package models

// Data-source tags surfaced in the report. The dashboard shows these
// verbatim, so they are part of the output contract.
const (
	SourceTagReal        = "MT5 Real"
	SourceTagSample      = "Ejemplo"
	SourceTagUnavailable = "Ejemplo (MT5 no disponible)"
)

// TradeView is one pre-formatted row of the latestTrades list.
// Every field is a display string; the dashboard renders them as-is.
type TradeView struct {
	Symbol        string `json:"symbol"`
	Type          string `json:"type"`
	OpenTime      string `json:"openTime"`
	CloseTime     string `json:"closeTime"`
	Duration      string `json:"duration"`
	Profit        string `json:"profit"`
	ProfitPercent string `json:"profitPercent"`
	Volume        string `json:"volume"`
	Price         string `json:"price"`
}

// Report is the finished document written for the web dashboard.
// Field names are fixed by the dashboard consumer; numeric fields are
// pre-formatted display strings. Constructed once per run, written once,
// never mutated after assembly.
type Report struct {
	LastUpdate string `json:"lastUpdate"`

	TotalProfit   string `json:"totalProfit"`
	MonthlyProfit string `json:"monthlyProfit"`
	WinRate       string `json:"winRate"`
	MaxDrawdown   string `json:"maxDrawdown"`
	ProfitFactor  string `json:"profitFactor"`
	Expectancy    string `json:"expectancy"`
	SharpeRatio   string `json:"sharpeRatio"`
	ReturnRisk    string `json:"returnRisk"`
	TotalTrades   string `json:"totalTrades"`
	WinningTrades string `json:"winningTrades"`
	LosingTrades  string `json:"losingTrades"`
	AvgWin        string `json:"avgWin"`
	AvgLoss       string `json:"avgLoss"`

	WeeklyPerformance    string `json:"weeklyPerformance"`
	MonthlyPerformance   string `json:"monthlyPerformance"`
	QuarterlyPerformance string `json:"quarterlyPerformance"`
	YearlyPerformance    string `json:"yearlyPerformance"`

	DataSource string `json:"dataSource"`

	LatestTrades []TradeView `json:"latestTrades"`

	EquityData       TimeSeries `json:"equityData"`
	DailyProfitData  TimeSeries `json:"dailyProfitData"`
	RecentTradesData TimeSeries `json:"recentTradesData"`
}
