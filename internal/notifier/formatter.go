package notifier

import (
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"
	"time"

	"CoinSentinel/internal/model"
)

// FormatPrice renders a USD price with decimals adapted to its magnitude.
func FormatPrice(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs < 0.01:
		return "$" + strconv.FormatFloat(v, 'f', 8, 64)
	case abs < 1:
		return "$" + strconv.FormatFloat(v, 'f', 4, 64)
	case abs < 10:
		return "$" + strconv.FormatFloat(v, 'f', 3, 64)
	case abs < 1000:
		return "$" + strconv.FormatFloat(v, 'f', 2, 64)
	default:
		return "$" + GroupThousands(v, 2)
	}
}

// FormatVolume renders large USD amounts as $1.2B / $3.4M / $5.6K.
func FormatVolume(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("$%.1fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("$%.1fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("$%.1fK", v/1e3)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}

// GroupThousands formats v with comma separators and at most maxDecimals
// fraction digits, trailing zeros trimmed.
func GroupThousands(v float64, maxDecimals int) string {
	s := strconv.FormatFloat(math.Abs(v), 'f', maxDecimals, 64)
	intPart, frac, _ := strings.Cut(s, ".")
	frac = strings.TrimRight(frac, "0")

	var b strings.Builder
	if v < 0 {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

var htmlTags = strings.NewReplacer("<b>", "", "</b>", "", "<i>", "", "</i>", "", "<code>", "", "</code>", "")

// StripHTML removes the tags used by the formatters.
func StripHTML(s string) string {
	return html.UnescapeString(htmlTags.Replace(s))
}

func signedPct(v float64) string {
	return fmt.Sprintf("%+.2f%%", v)
}

// FormatAlertTriggered formats the message for a fired price alert.
func FormatAlertTriggered(ev model.AlertEvent) string {
	var b strings.Builder
	b.WriteString("🔔 <b>Price Alert Triggered!</b>\n")
	fmt.Fprintf(&b, "%s is now %s $%s\n", html.EscapeString(ev.CoinName), ev.Condition, GroupThousands(ev.TargetPrice, 3))
	fmt.Fprintf(&b, "Current price: %s", FormatPrice(ev.Price))
	return b.String()
}

// FormatMarket formats the top coins of a snapshot.
func FormatMarket(coins []model.Coin, degraded bool, limit int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 <b>Market</b> | %s\n", time.Now().Format("2006-01-02 15:04"))
	if degraded {
		b.WriteString("⚠️ Data source unavailable, showing last known prices\n")
	}
	b.WriteString("\n")
	if len(coins) == 0 {
		b.WriteString("No market data.")
		return b.String()
	}
	if limit <= 0 || limit > len(coins) {
		limit = len(coins)
	}
	for i, c := range coins[:limit] {
		fmt.Fprintf(&b, "%d. <b>%s</b> %s  %s\n", i+1, strings.ToUpper(c.Symbol), FormatPrice(c.CurrentPrice), signedPct(c.PriceChangePct24h))
	}
	if limit < len(coins) {
		fmt.Fprintf(&b, "… and %d more", len(coins)-limit)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatCoinReport formats the detail view of the selected coin.
func FormatCoinReport(d model.CoinDetail) string {
	var b strings.Builder
	c := d.Coin
	fmt.Fprintf(&b, "🪙 <b>%s (%s)</b> | %s\n\n", html.EscapeString(c.Name), strings.ToUpper(c.Symbol), d.Horizon.Label())

	fmt.Fprintf(&b, "Price: %s (%s 24h)\n", FormatPrice(c.CurrentPrice), signedPct(c.PriceChangePct24h))
	fmt.Fprintf(&b, "Market cap: $%s\n", GroupThousands(c.MarketCap, 0))
	fmt.Fprintf(&b, "24h volume: %s\n", FormatVolume(c.TotalVolume24h))
	if d.Series.Len() > 0 {
		fmt.Fprintf(&b, "Range: %s ~ %s (%s)\n", FormatPrice(d.Stats.Low), FormatPrice(d.Stats.High), signedPct(d.Stats.ChangePct))
		fmt.Fprintf(&b, "RSI(14): %.1f\n", d.RSI)
	}

	b.WriteString("\n📈 <b>Volume</b>\n")
	m := d.Metrics
	fmt.Fprintf(&b, "  Avg hourly: %s\n", FormatVolume(m.AverageVolume))
	fmt.Fprintf(&b, "  Change: %s\n", signedPct(m.VolumeChangePct))
	fmt.Fprintf(&b, "  Price/volume correlation: %.2f (%s)\n", m.PriceVolumeCorrelation, m.CorrelationStrength())
	fmt.Fprintf(&b, "  Anomalies: %d\n", len(m.Anomalies))
	for i, a := range m.Anomalies {
		if i == 3 {
			break
		}
		ts := time.UnixMilli(a.Timestamp).Format("01-02 15:04")
		fmt.Fprintf(&b, "    %s %s (+%.0f%%)\n", ts, FormatVolume(a.Volume), a.PctAboveAverage)
	}

	if len(d.Signal.Indicators) > 0 {
		fmt.Fprintf(&b, "\n🎯 <b>Signal</b>: %s (%.0f%%)\n", strings.ToUpper(string(d.Signal.Action)), d.Signal.Confidence)
		for _, ind := range d.Signal.Indicators {
			fmt.Fprintf(&b, "  %s: %s → %s\n", ind.Name, ind.Value, ind.Action)
		}
	}

	s := d.Sentiment
	if s.Positive+s.Neutral+s.Negative > 0 {
		fmt.Fprintf(&b, "\n💬 <b>Sentiment</b>: %s (%+d)\n", s.Label(), s.Score)
		fmt.Fprintf(&b, "  %d%% positive | %d%% neutral | %d%% negative\n", s.Positive, s.Neutral, s.Negative)
	}

	if len(d.News) > 0 {
		b.WriteString("\n")
		b.WriteString(FormatNews(d.News, 3))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatNews lists up to limit news items.
func FormatNews(items []model.NewsItem, limit int) string {
	var b strings.Builder
	b.WriteString("📰 <b>News</b>\n")
	if limit <= 0 || limit > len(items) {
		limit = len(items)
	}
	for _, n := range items[:limit] {
		fmt.Fprintf(&b, "• %s <i>(%s, %s)</i>\n", html.EscapeString(n.Title), n.Source, n.Time)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatPortfolio formats the valuation of all holdings.
func FormatPortfolio(s model.PortfolioSummary) string {
	var b strings.Builder
	b.WriteString("💼 <b>Portfolio</b>\n\n")
	if len(s.Positions) == 0 {
		b.WriteString("No holdings yet. Use /add &lt;coin&gt; &lt;amount&gt; &lt;price&gt;.")
		return b.String()
	}
	fmt.Fprintf(&b, "Value: $%s\n", GroupThousands(s.PortfolioValue, 2))
	fmt.Fprintf(&b, "Invested: $%s\n", GroupThousands(s.InitialInvestment, 2))
	fmt.Fprintf(&b, "Profit: $%s (%s)\n\n", GroupThousands(s.TotalProfit, 2), signedPct(s.ProfitPercentage))
	for _, p := range s.Positions {
		fmt.Fprintf(&b, "<b>%s</b> %s @ %s = $%s (%s)\n  <code>%s</code>\n",
			strings.ToUpper(p.Symbol), GroupThousands(p.Amount, 8), FormatPrice(p.CurrentPrice),
			GroupThousands(p.Value, 2), signedPct(p.ProfitPct), p.HoldingID)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatDiversification formats the diversification report.
func FormatDiversification(r model.DiversificationResult) string {
	var b strings.Builder
	b.WriteString("🧩 <b>Diversification</b>\n\n")
	if len(r.ByCategory) == 0 {
		b.WriteString("Add holdings to see the diversification analysis.")
		return b.String()
	}
	fmt.Fprintf(&b, "Score: %.1f/100\n", r.DiversificationScore)
	fmt.Fprintf(&b, "Risk: %.1f/10\n", r.RiskScore)
	fmt.Fprintf(&b, "Correlation: %.0f%%\n\n", r.CorrelationScore*100)
	for _, a := range r.ByCategory {
		fmt.Fprintf(&b, "  %s: %.1f%% ($%s, risk %d)\n", html.EscapeString(a.Category), a.PercentOfPortfolio, GroupThousands(a.ValueUSD, 2), a.RiskScore)
	}
	if len(r.Recommendations) > 0 {
		b.WriteString("\n💡 <b>Recommendations</b>\n")
		for _, rec := range r.Recommendations {
			fmt.Fprintf(&b, "• %s\n", html.EscapeString(rec.Message))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatAlerts lists alerts and the most recently fired events.
func FormatAlerts(alerts []model.PriceAlert, recent []model.AlertEventRecord) string {
	var b strings.Builder
	b.WriteString("🔔 <b>Price Alerts</b>\n\n")
	if len(alerts) == 0 {
		b.WriteString("No alerts. Use /alert &lt;coin&gt; above|below &lt;price&gt;.\n")
	}
	for _, a := range alerts {
		state := "armed"
		if a.Triggered {
			state = "triggered"
		}
		fmt.Fprintf(&b, "%s %s $%s [%s]\n  <code>%s</code>\n",
			strings.ToUpper(a.Symbol), a.Condition, GroupThousands(a.TargetPrice, 3), state, a.ID)
	}
	if len(recent) > 0 {
		b.WriteString("\n<b>Recently triggered</b>\n")
		for _, r := range recent {
			ev := r.Event
			fmt.Fprintf(&b, "  %s %s %s $%s at %s\n", ev.TriggeredAt.Format("01-02 15:04"),
				html.EscapeString(ev.CoinName), ev.Condition, GroupThousands(ev.TargetPrice, 3), FormatPrice(ev.Price))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatHelp lists the bot commands.
func FormatHelp() string {
	return "🤖 <b>CoinSentinel</b> commands\n\n" +
		"/market - top coins by market cap\n" +
		"/search &lt;query&gt; - find coins by name or symbol\n" +
		"/coin &lt;id&gt; [24h|7d|30d|1y] - chart stats, volume, signals, news\n" +
		"/portfolio - holdings and profit\n" +
		"/add &lt;coin&gt; &lt;amount&gt; &lt;price&gt; - add a holding\n" +
		"/remove &lt;id&gt; - delete a holding\n" +
		"/diversification - category analysis\n" +
		"/alerts - list alerts\n" +
		"/alert &lt;coin&gt; above|below &lt;price&gt; - create an alert\n" +
		"/unalert &lt;id&gt; - delete an alert\n" +
		"/rearm &lt;id&gt; - reset a triggered alert\n" +
		"/help - this message"
}
