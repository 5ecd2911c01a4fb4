package scene

import (
	"fmt"
	"strings"

	"github.com/pthm-cable/bubblefield/components"
)

// FormatChange formats a percent change with an explicit plus sign.
func FormatChange(change float64) string {
	sign := ""
	if change > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.1f%%", sign, change)
}

// FormatSize formats the raw size value in the unit of its metric.
func FormatSize(m components.Metric, raw float64) string {
	switch m {
	case components.MetricPerformance:
		return FormatChange(raw)
	case components.MetricVolume:
		return fmt.Sprintf("$ %.1fM", raw)
	default:
		return fmt.Sprintf("$ %.1fB", raw)
	}
}

// Label returns the two-line in-scene label: symbol and change.
func (n NodeView) Label() (symbol, change string) {
	return strings.ToUpper(n.Symbol), FormatChange(n.Change)
}

// TooltipLines returns the hover card text, title first.
func (n NodeView) TooltipLines() []string {
	return []string{
		fmt.Sprintf("%s (%s)", strings.ToUpper(n.ID), n.Symbol),
		fmt.Sprintf("Price: $ %.2f", n.Asset.PriceUSD),
		"Change: " + FormatChange(n.Change),
		fmt.Sprintf("Market Cap: $%.2f Billion", n.Asset.MarketCapBillions),
		fmt.Sprintf("Volume (24h): $%.2f Million", n.Asset.Volume24hMillions),
		fmt.Sprintf("Size (by %s): %s", n.Metric, FormatSize(n.Metric, n.SizeRaw)),
	}
}
