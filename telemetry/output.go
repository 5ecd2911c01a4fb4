package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/bubblefield/config"
)

// AssetRow is one line of assets.csv.
type AssetRow struct {
	ID                string  `csv:"id"`
	Symbol            string  `csv:"symbol"`
	PriceUSD          float64 `csv:"price_usd"`
	MarketCapBillions float64 `csv:"market_cap_b"`
	Volume24hMillions float64 `csv:"volume_24h_m"`
	ChangeDay         float64 `csv:"change_24h"`
	ChangeWeek        float64 `csv:"change_7d"`
	ChangeMonth       float64 `csv:"change_30d"`
	Radius            float64 `csv:"radius"`
	Color             string  `csv:"color"`
	X                 float64 `csv:"x"`
	Y                 float64 `csv:"y"`
	Z                 float64 `csv:"z"`
}

// WriteAssets writes rows with a header to w.
func WriteAssets(w io.Writer, rows []AssetRow) error {
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("writing assets: %w", err)
	}
	return nil
}

// OutputManager writes run output into a directory.
// A nil manager means output is disabled and every method is a no-op.
type OutputManager struct {
	dir        string
	layoutFile *os.File
	perfFile   *os.File

	layoutHeaderWritten bool
	perfHeaderWritten   bool
}

// NewOutputManager creates the output directory and opens the CSV streams.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "layout.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating layout.csv: %w", err)
	}
	om.layoutFile = f

	f, err = os.Create(filepath.Join(dir, "perf.csv"))
	if err != nil {
		om.layoutFile.Close()
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}
	om.perfFile = f

	return om, nil
}

// WriteConfig saves the configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteLayout appends a window to layout.csv.
func (om *OutputManager) WriteLayout(stats LayoutStats) error {
	if om == nil {
		return nil
	}
	if err := appendRows(om.layoutFile, []LayoutStats{stats}, &om.layoutHeaderWritten); err != nil {
		return fmt.Errorf("writing layout: %w", err)
	}
	return nil
}

// WritePerf appends a perf window to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, frame int64) error {
	if om == nil {
		return nil
	}
	if err := appendRows(om.perfFile, []PerfStatsCSV{stats.ToCSV(frame)}, &om.perfHeaderWritten); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// WriteAssets replaces assets.csv with the given rows.
func (om *OutputManager) WriteAssets(rows []AssetRow) error {
	if om == nil {
		return nil
	}
	f, err := os.Create(filepath.Join(om.dir, "assets.csv"))
	if err != nil {
		return fmt.Errorf("creating assets.csv: %w", err)
	}
	defer f.Close()
	return WriteAssets(f, rows)
}

// appendRows writes the header only on the first call for a stream.
func appendRows(w io.Writer, rows any, headerWritten *bool) error {
	if !*headerWritten {
		if err := gocsv.Marshal(rows, w); err != nil {
			return err
		}
		*headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(rows, w)
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, f := range []*os.File{om.layoutFile, om.perfFile} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
