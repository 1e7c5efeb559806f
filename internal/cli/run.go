package cli

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"mt5-reporter/internal/models"
	"mt5-reporter/internal/pipeline"
	"mt5-reporter/internal/report"
	"mt5-reporter/internal/source"
)

func newRunCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Compute statistics and write the dashboard JSON",
		Long: `Run the full pipeline once: fetch deal history, compute statistics,
and atomically replace the dashboard JSON file. Falls back to a
deterministic sample report when no usable history is available.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			src := openSource(app)
			defer src.Close()

			sink := report.NewFileSink(app.Config.Sink.Path)
			runner := pipeline.NewRunner(app.Config, src, sink, app.Logger)

			rep, err := runner.Run(cmd.Context())
			if err != nil {
				output.Error("Report computed but not written: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(rep)
			}

			printSummary(output, rep, app.Config.Sink.Path)
			return nil
		},
	}
}

func newMetricsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Compute and display statistics without writing the report",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			src := openSource(app)
			defer src.Close()

			runner := pipeline.NewRunner(app.Config, src, discardSink{}, app.Logger)
			rep := runner.Build(cmd.Context())

			if output.IsJSON() {
				return output.JSON(rep)
			}

			printSummary(output, rep, "")
			return nil
		},
	}
}

// openSource opens the deal-history database. When it cannot be opened
// an always-failing source is returned instead; the pipeline turns that
// failure into the fallback report.
func openSource(app *App) source.TradeSource {
	src, err := source.NewSQLiteSource(app.Config.Source.DBPath)
	if err != nil {
		app.Logger.Warn().Err(err).Str("db", app.Config.Source.DBPath).Msg("Deal history not available")
		return source.Unavailable(err)
	}
	return src
}

// printSummary renders the headline metrics as a terminal table after
// every run.
func printSummary(output *Output, rep *models.Report, path string) {
	table := tablewriter.NewWriter(output.Writer())
	table.Header("Metric", "Value")
	table.Append("Data source", rep.DataSource)
	table.Append("Total profit", rep.TotalProfit)
	table.Append("Win rate", rep.WinRate)
	table.Append("Trades", rep.TotalTrades)
	table.Append("Max drawdown", rep.MaxDrawdown)
	table.Append("Profit factor", rep.ProfitFactor)
	table.Append("Sharpe ratio", rep.SharpeRatio)
	table.Append("Latest trades", fmt.Sprintf("%d", len(rep.LatestTrades)))
	table.Append("Last update", rep.LastUpdate)
	table.Render()

	if path != "" {
		output.Success("Report written to %s", path)
	}
}

// discardSink satisfies report.Sink for display-only commands.
type discardSink struct{}

func (discardSink) Write(*models.Report) error { return nil }
