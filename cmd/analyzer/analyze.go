package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"StockAnalyzer/internal/calculator"
	"StockAnalyzer/internal/collector"
	"StockAnalyzer/internal/model"
)

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	interval := model.ParseInterval(intervalArg)

	var analysis *model.Analysis
	if csvFile != "" {
		analysis, err = analyzeCSV(csvFile, args[0], interval)
		if err != nil {
			return err
		}
	} else {
		rec := newRecorder(cfg)
		defer rec.Close()

		col := collector.NewCollector(newFetcher(cfg), nil, nil, cfg.DataSource.HistoryDays)
		analysis, err = col.Collect(cmd.Context(), args[0], interval)
		if err != nil {
			return err
		}
		if err := rec.RecordAnalysis(analysis); err != nil {
			fmt.Fprintf(os.Stderr, "warning: record analysis: %v\n", err)
		}
	}

	renderAnalysis(cmd.OutOrStdout(), analysis)
	return nil
}

// analyzeCSV runs the analysis on a single exported price file, independent of the configured provider.
func analyzeCSV(path, symbol string, interval model.Interval) (*model.Analysis, error) {
	points, err := collector.LoadCSV(path)
	if err != nil {
		return nil, err
	}
	if interval == model.IntervalWeekly {
		points = calculator.AggregateWeekly(calculator.CleanSeries(points))
	}
	sym, err := collector.NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	series := &model.PriceSeries{
		Symbol:    sym,
		Interval:  interval,
		Points:    points,
		FetchedAt: time.Now(),
	}
	return collector.NewCollector(nil, nil, nil, 0).Analyze(series, "csv:"+filepath.Base(path))
}

// renderAnalysis prints indicators, factor scores and patterns as tables.
func renderAnalysis(w io.Writer, a *model.Analysis) {
	ind := a.Indicators
	fmt.Fprintf(w, "%s (%s, %d bars, source %s) as of %s\n\n",
		a.Symbol, a.Interval, a.Bars, a.Source, ind.AsOf.Format("2006-01-02"))

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Indicator", "Value"})
	table.SetAutoWrapText(false)
	rows := [][]string{
		{"Price", f2(ind.Price)},
		{"RSI(14)", f2(ind.RSI)},
		{"MACD", fmt.Sprintf("%.3f / %.3f / %+.3f", ind.MACD.Value, ind.MACD.Signal, ind.MACD.Histogram)},
		{"Bollinger", fmt.Sprintf("%s / %s / %s (%.1f%%)", f2(ind.BollingerBands.Lower), f2(ind.BollingerBands.Middle), f2(ind.BollingerBands.Upper), ind.BollingerBands.WidthPercent)},
		{"MA50 / MA200", f2(ind.MA50) + " / " + ma200(ind)},
		{"EMA20 / EMA50", f2(ind.EMA20) + " / " + f2(ind.EMA50)},
		{"ATR(14)", f2(ind.ATR)},
		{"OBV", fmt.Sprintf("%.0f", ind.OBV)},
		{"Stochastic %K / %D", f2(ind.Stochastic.K) + " / " + f2(ind.Stochastic.D)},
		{"ADX", f2(ind.ADX)},
		{"Support", joinFloats(ind.SupportLevels)},
		{"Resistance", joinFloats(ind.ResistanceLevels)},
		{"52w Low / High", fmt.Sprintf("%s / %s (%.0f%%)", f2(ind.Low52w), f2(ind.High52w), ind.Position52w*100)},
	}
	table.AppendBulk(rows)
	table.Render()

	if a.Signal != nil {
		fmt.Fprintln(w)
		factors := tablewriter.NewWriter(w)
		factors.SetHeader([]string{"Factor", "Score", "Weight", "Weighted", "Comment"})
		factors.SetAutoWrapText(false)
		for _, f := range a.Signal.Factors {
			factors.Append([]string{f.Name, fmt.Sprintf("%+.1f", f.RawScore), fmt.Sprintf("%.2f", f.Weight), fmt.Sprintf("%+.3f", f.Weighted), f.Commentary})
		}
		factors.SetFooter([]string{"Total", "", "", fmt.Sprintf("%+.3f", a.Signal.TotalScore), a.Signal.Rating.Label})
		factors.Render()
		if a.Signal.Warning != "" {
			fmt.Fprintf(w, "WARNING: %s\n", a.Signal.Warning)
		}
	}

	fmt.Fprintln(w)
	if len(a.Patterns) == 0 {
		fmt.Fprintln(w, "No chart patterns detected.")
		return
	}
	patterns := tablewriter.NewWriter(w)
	patterns.SetHeader([]string{"Pattern", "Bias", "Confidence", "Description"})
	patterns.SetAutoWrapText(false)
	for _, p := range a.Patterns {
		bias := "bearish"
		if p.Bullish {
			bias = "bullish"
		}
		patterns.Append([]string{string(p.Name), bias, fmt.Sprintf("%d%%", p.Confidence), p.Description})
	}
	patterns.Render()
}

func ma200(ind model.IndicatorSet) string {
	if !ind.MA200Available {
		return "n/a"
	}
	return f2(ind.MA200)
}

func f2(v float64) string { return fmt.Sprintf("%.2f", v) }

func joinFloats(vs []float64) string {
	if len(vs) == 0 {
		return "-"
	}
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = f2(v)
	}
	return strings.Join(parts, ", ")
}
