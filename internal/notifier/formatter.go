package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"EdgeFinder/internal/model"
)

// Style selects the markup used by the formatters.
type Style int

const (
	// HTML is Telegram's parse_mode=HTML markup.
	HTML Style = iota
	// Plain is terminal output.
	Plain
)

func (s Style) bold(text string) string {
	if s == HTML {
		return "<b>" + html.EscapeString(text) + "</b>"
	}
	return text
}

func (s Style) esc(text string) string {
	if s == HTML {
		return html.EscapeString(text)
	}
	return text
}

func (s Style) pre(text string) string {
	if s == HTML {
		return "<pre>" + html.EscapeString(text) + "</pre>"
	}
	return text
}

// biasIcon returns a marker for a label.
func biasIcon(l model.Label) string {
	switch l {
	case model.StrongBullish:
		return "🟢🟢"
	case model.Bullish:
		return "🟢"
	case model.Bearish:
		return "🔴"
	case model.StrongBearish:
		return "🔴🔴"
	default:
		return "⚪"
	}
}

// netMarker colours the net column: blue for net long, red for net short.
func netMarker(net int) string {
	switch {
	case net > 0:
		return "🔵"
	case net < 0:
		return "🔴"
	default:
		return "⚫"
	}
}

// progressBar renders confidence in [0,1] as a ten-cell bar.
func progressBar(confidence float64) string {
	filled := int(confidence*10 + 0.5)
	if filled < 0 {
		filled = 0
	}
	if filled > 10 {
		filled = 10
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}

// ChartURL links the pair's OANDA chart on TradingView.
func ChartURL(pair model.Pair) string {
	return fmt.Sprintf("https://www.tradingview.com/chart/?symbol=OANDA:%s&interval=60",
		strings.ReplaceAll(pair.Symbol, "_", ""))
}

// FormatBiasReport renders a full evaluation.
func FormatBiasReport(ev *model.Evaluation, style Style) string {
	var b strings.Builder
	res := ev.Result

	b.WriteString(fmt.Sprintf("📊 %s | %s\n\n", style.bold("EdgeFinder "+ev.Pair.Symbol), time.Now().UTC().Format("2006-01-02 15:04 MST")))

	b.WriteString(fmt.Sprintf("🧠 %s %s %s\n", style.bold("Final Bias:"), biasIcon(res.Label), style.esc(string(res.Label))))
	b.WriteString(fmt.Sprintf("   Confidence: %s %.0f%% (%d/5)\n", progressBar(res.Confidence), res.Confidence*100, res.RawScore))
	b.WriteString(fmt.Sprintf("   %s\n\n", style.esc(res.Commentary)))

	b.WriteString(style.bold("Score breakdown:") + "\n")
	for _, c := range res.Contributions {
		b.WriteString(fmt.Sprintf("  %s: +%d\n", style.esc(c.Name), c.Points))
	}
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("📈 %s %d/6\n", style.bold("Economic Score:"), ev.MacroScore))
	b.WriteString(fmt.Sprintf("   %s Score: %d / %s Score: %d\n",
		style.esc(ev.BaseEconomy.Country), ev.BaseEconomy.Score,
		style.esc(ev.QuoteEconomy.Country), ev.QuoteEconomy.Score))
	b.WriteString(fmt.Sprintf("📊 %s %s (%d candles)\n\n", style.bold("Technical Bias:"), ev.TechBias, ev.CandleCount))

	if ev.BaseEconomy.Found && ev.QuoteEconomy.Found {
		b.WriteString(style.bold("🧮 Economic Comparison") + "\n")
		b.WriteString(style.pre(EconomicTable(ev)) + "\n\n")
	}

	b.WriteString(style.bold("📊 Institutional & Retail Sentiment") + "\n")
	b.WriteString(style.pre(SentimentTable(ev)) + "\n\n")

	b.WriteString(fmt.Sprintf("📉 Chart: %s\n", ChartURL(ev.Pair)))
	return b.String()
}

// EconomicTable renders the six indicators of both countries side by side.
func EconomicTable(ev *model.Evaluation) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-15s %14s %14s\n", "Category", truncate(ev.BaseEconomy.Country, 14), truncate(ev.QuoteEconomy.Country, 14)))
	for _, ind := range model.Indicators {
		b.WriteString(fmt.Sprintf("%-15s %14s %14s\n", ind,
			indicatorCell(ev.BaseEconomy.Row, ind), indicatorCell(ev.QuoteEconomy.Row, ind)))
	}
	return strings.TrimRight(b.String(), "\n")
}

// SentimentTable renders the four sentiment rows.
func SentimentTable(ev *model.Evaluation) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-13s %-4s %9s %9s %12s %-8s %-8s\n", "Entity", "Ccy", "Longs", "Shorts", "Net", "Bias", "Report"))
	for _, s := range ev.Sentiment() {
		report := "-"
		if s.ReportBias != "" {
			report = string(s.ReportBias)
		}
		b.WriteString(fmt.Sprintf("%-13s %-4s %9d %9d %s %9d %-8s %-8s\n",
			s.Class, s.Currency, s.Longs, s.Shorts, netMarker(s.Net), s.Net, s.Bias, report))
	}
	return strings.TrimRight(b.String(), "\n")
}

func indicatorCell(row model.EconomicIndicators, ind model.Indicator) string {
	v, ok := row.Value(ind)
	if !ok {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", v)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// FormatPairList lists the pairs that can be evaluated.
func FormatPairList(pairs []model.Pair, style Style) string {
	var b strings.Builder
	b.WriteString(style.bold("Available pairs") + "\n")
	for _, p := range pairs {
		b.WriteString(fmt.Sprintf("• %s (%s / %s)\n", p.Symbol, style.esc(p.BaseCountry), style.esc(p.QuoteCountry)))
	}
	return b.String()
}

// FormatHelp lists the bot commands.
func FormatHelp() string {
	return "Available commands:\n• /bias EUR_USD\n• /pairs\n• /help"
}
