// Package components defines ECS components for the bubble scene.
package components

import (
	"fmt"
	"strings"

	"github.com/pthm-cable/bubblefield/palette"
)

// Timeframe selects which change window drives color and performance sizing.
type Timeframe uint8

const (
	TimeframeDay   Timeframe = iota // 24h change
	TimeframeWeek                   // 7d change
	TimeframeMonth                  // 30d change
)

var timeframeNames = [...]string{"day", "week", "month"}

func (t Timeframe) String() string {
	if int(t) < len(timeframeNames) {
		return timeframeNames[t]
	}
	return fmt.Sprintf("Timeframe(%d)", t)
}

// Label returns the short display label.
func (t Timeframe) Label() string {
	switch t {
	case TimeframeWeek:
		return "7d"
	case TimeframeMonth:
		return "30d"
	default:
		return "24h"
	}
}

// ParseTimeframe accepts "day"/"24h", "week"/"7d" or "month"/"30d".
func ParseTimeframe(s string) (Timeframe, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "day", "24h":
		return TimeframeDay, nil
	case "week", "7d":
		return TimeframeWeek, nil
	case "month", "30d":
		return TimeframeMonth, nil
	}
	return TimeframeDay, fmt.Errorf("unknown timeframe %q", s)
}

// Metric selects what drives bubble size.
type Metric uint8

const (
	MetricPerformance Metric = iota // |change| for the active timeframe
	MetricMarketCap                 // market cap in billions
	MetricVolume                    // 24h volume in millions
)

var metricNames = [...]string{"performance", "marketCap", "volume24h"}

func (m Metric) String() string {
	if int(m) < len(metricNames) {
		return metricNames[m]
	}
	return fmt.Sprintf("Metric(%d)", m)
}

// ParseMetric accepts the metric names case-insensitively, plus "volume" and "cap".
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "performance", "perf":
		return MetricPerformance, nil
	case "marketcap", "cap":
		return MetricMarketCap, nil
	case "volume24h", "volume":
		return MetricVolume, nil
	}
	return MetricPerformance, fmt.Errorf("unknown metric %q", s)
}

// Asset holds the market data for one bubble. ID never changes once created.
type Asset struct {
	ID                string
	Symbol            string
	PriceUSD          float64
	MarketCapBillions float64
	Volume24hMillions float64
	ChangeDay         float64 // percent
	ChangeWeek        float64 // percent
	ChangeMonth       float64 // percent
}

// Change returns the percentage change for the timeframe.
func (a *Asset) Change(tf Timeframe) float64 {
	switch tf {
	case TimeframeWeek:
		return a.ChangeWeek
	case TimeframeMonth:
		return a.ChangeMonth
	default:
		return a.ChangeDay
	}
}

// Display holds values derived from Asset for the active timeframe and metric.
// Written only by the sizing system.
type Display struct {
	Change    float64 // change for the active timeframe
	SizeRaw   float64 // signed metric value before abs
	SizeValue float64 // |SizeRaw|
	Color     palette.Color
}

// Appearance holds animated render state.
type Appearance struct {
	Scale    float64 // multiplier on Body.Radius
	Emissive float64
	Opacity  float64
}
