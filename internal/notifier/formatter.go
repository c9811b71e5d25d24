package notifier

import (
	"fmt"
	"html"
	"strings"

	"StockAnalyzer/internal/model"
)

// FormatAnalysis renders a full analysis as a Telegram HTML message.
func FormatAnalysis(a *model.Analysis) string {
	var b strings.Builder
	ind := a.Indicators
	sym := html.EscapeString(a.Symbol)

	b.WriteString(fmt.Sprintf("📊 <b>%s</b> (%s) | %s\n\n", sym, a.Interval, a.CreatedAt.Format("2006-01-02 15:04")))

	b.WriteString(fmt.Sprintf("Price: %.2f\n", ind.Price))
	if ind.MA200Available && ind.MA200 > 0 {
		ma200Dev := (ind.Price - ind.MA200) / ind.MA200 * 100
		b.WriteString(fmt.Sprintf("MA50: %.2f | MA200: %.2f (%+.1f%%)\n", ind.MA50, ind.MA200, ma200Dev))
	} else {
		b.WriteString(fmt.Sprintf("MA50: %.2f | MA200: n/a\n", ind.MA50))
	}
	b.WriteString(fmt.Sprintf("EMA20: %.2f | EMA50: %.2f\n", ind.EMA20, ind.EMA50))
	b.WriteString(fmt.Sprintf("RSI: %.1f | Stoch: %.1f/%.1f | ADX: %.1f\n", ind.RSI, ind.Stochastic.K, ind.Stochastic.D, ind.ADX))
	b.WriteString(fmt.Sprintf("MACD: %.3f / %.3f (hist %+.3f)\n", ind.MACD.Value, ind.MACD.Signal, ind.MACD.Histogram))
	b.WriteString(fmt.Sprintf("Bollinger: %.2f ~ %.2f (width %.1f%%)\n", ind.BollingerBands.Lower, ind.BollingerBands.Upper, ind.BollingerBands.WidthPercent))
	b.WriteString(fmt.Sprintf("ATR: %.2f\n", ind.ATR))
	b.WriteString(fmt.Sprintf("52w: %.2f ~ %.2f (position %.0f%%)\n", ind.Low52w, ind.High52w, ind.Position52w*100))
	if len(ind.SupportLevels) > 0 || len(ind.ResistanceLevels) > 0 {
		b.WriteString(fmt.Sprintf("Support: %s | Resistance: %s\n", joinLevels(ind.SupportLevels), joinLevels(ind.ResistanceLevels)))
	}

	if a.Signal != nil {
		b.WriteString("\n📈 <b>Factors:</b>\n")
		for _, f := range a.Signal.Factors {
			b.WriteString(fmt.Sprintf("  %s (%s): %+.1f (×%.2f) = %+.3f\n",
				f.Name, html.EscapeString(f.Commentary), f.RawScore, f.Weight, f.Weighted))
		}
		b.WriteString("  ─────────────────\n")
		b.WriteString(fmt.Sprintf("  Total: %+.3f → <b>%s</b>\n", a.Signal.TotalScore, a.Signal.Rating.Label))
		if a.Signal.Warning != "" {
			b.WriteString(fmt.Sprintf("\n%s\n", html.EscapeString(a.Signal.Warning)))
		}
	}

	if len(a.Patterns) > 0 {
		b.WriteString("\n🔎 <b>Patterns:</b>\n")
		writePatterns(&b, a.Patterns)
	}
	return b.String()
}

// FormatPatternAlert renders only the detected patterns. Returns "" when there are none.
func FormatPatternAlert(a *model.Analysis) string {
	if len(a.Patterns) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🚨 <b>%s</b> pattern alert | %.2f\n\n", html.EscapeString(a.Symbol), a.Indicators.Price))
	writePatterns(&b, a.Patterns)
	if a.Signal != nil {
		b.WriteString(fmt.Sprintf("\nRating: <b>%s</b> (%+.3f)", a.Signal.Rating.Label, a.Signal.TotalScore))
	}
	return b.String()
}

func writePatterns(b *strings.Builder, patterns []model.ChartPattern) {
	for _, p := range patterns {
		icon := "🔴"
		if p.Bullish {
			icon = "🟢"
		}
		b.WriteString(fmt.Sprintf("%s %s (%d%%): %s\n", icon, p.Name, p.Confidence, html.EscapeString(p.Description)))
		if p.TradingActions != "" {
			b.WriteString(fmt.Sprintf("   ↳ %s\n", html.EscapeString(p.TradingActions)))
		}
	}
}

func joinLevels(levels []float64) string {
	if len(levels) == 0 {
		return "-"
	}
	parts := make([]string, len(levels))
	for i, l := range levels {
		parts[i] = fmt.Sprintf("%.2f", l)
	}
	return strings.Join(parts, ", ")
}
