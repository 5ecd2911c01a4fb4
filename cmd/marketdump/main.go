// Command marketdump fetches the top market listing and writes it as CSV.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/pthm-cable/bubblefield/components"
	"github.com/pthm-cable/bubblefield/config"
	"github.com/pthm-cable/bubblefield/marketdata"
	"github.com/pthm-cable/bubblefield/palette"
	"github.com/pthm-cable/bubblefield/systems"
	"github.com/pthm-cable/bubblefield/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	out := flag.String("out", "", "Output file (empty = stdout)")
	metricName := flag.String("metric", "performance", "Size metric used for the radius column")
	timeframeName := flag.String("timeframe", "day", "Timeframe used for the radius and color columns")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	metric, err := components.ParseMetric(*metricName)
	if err != nil {
		slog.Error("invalid metric", "error", err)
		os.Exit(2)
	}
	tf, err := components.ParseTimeframe(*timeframeName)
	if err != nil {
		slog.Error("invalid timeframe", "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	assets, err := marketdata.NewClient(cfg.Market).Top(ctx)
	if err != nil {
		slog.Error("failed to fetch listing", "error", err)
		os.Exit(1)
	}

	rows := Rows(assets, tf, metric, cfg.Derived.Palette, cfg.Sizing.MinRadius, cfg.Sizing.MaxRadius)

	if err := writeRows(*out, rows); err != nil {
		slog.Error("failed to write csv", "error", err)
		os.Exit(1)
	}
	slog.Info("listing written", "assets", len(rows), "metric", metric.String(), "timeframe", tf.String())
}

// writeRows writes rows to path, or stdout when path is empty.
func writeRows(path string, rows []telemetry.AssetRow) error {
	if path == "" {
		return telemetry.WriteAssets(os.Stdout, rows)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := telemetry.WriteAssets(f, rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Rows sizes and colors assets for the given selectors without a layout.
func Rows(assets []components.Asset, tf components.Timeframe, m components.Metric, pal palette.Mapper, minR, maxR float64) []telemetry.AssetRow {
	sizes := make([]float64, len(assets))
	for i := range assets {
		sizes[i] = systems.SizeValue(&assets[i], tf, m)
	}
	maxValue := systems.MaxSizeValue(sizes)

	rows := make([]telemetry.AssetRow, len(assets))
	for i := range assets {
		a := &assets[i]
		rows[i] = telemetry.AssetRow{
			ID:                a.ID,
			Symbol:            a.Symbol,
			PriceUSD:          a.PriceUSD,
			MarketCapBillions: a.MarketCapBillions,
			Volume24hMillions: a.Volume24hMillions,
			ChangeDay:         a.ChangeDay,
			ChangeWeek:        a.ChangeWeek,
			ChangeMonth:       a.ChangeMonth,
			Radius:            systems.Radius(sizes[i], maxValue, minR, maxR),
			Color:             pal.For(a.Change(tf)).Hex(),
		}
	}
	return rows
}
