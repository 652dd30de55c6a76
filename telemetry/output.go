package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/drizzle/config"
)

// OutputManager writes run output (telemetry.csv, perf.csv, config.yaml)
// into one directory.
type OutputManager struct {
	dir           string
	telemetryFile *os.File
	perfFile      *os.File

	telemetryHeaderWritten bool
	perfHeaderWritten      bool
}

// NewOutputManager creates the output directory and CSV files.
// Returns nil if dir is empty (output disabled); all methods accept a nil
// receiver.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating telemetry.csv: %w", err)
	}
	om.telemetryFile = f

	f, err = os.Create(filepath.Join(dir, "perf.csv"))
	if err != nil {
		om.telemetryFile.Close()
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

// WriteTelemetry appends a window record to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	if err := appendCSV(om.telemetryFile, []WindowStats{stats}, &om.telemetryHeaderWritten); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

// WritePerf appends a perf record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int64) error {
	if om == nil {
		return nil
	}
	if err := appendCSV(om.perfFile, []PerfStatsCSV{stats.ToCSV(windowEnd)}, &om.perfHeaderWritten); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// appendCSV writes records, including the header only on the first call.
func appendCSV(f *os.File, records interface{}, headerWritten *bool) error {
	if *headerWritten {
		return gocsv.MarshalWithoutHeaders(records, f)
	}
	if err := gocsv.Marshal(records, f); err != nil {
		return err
	}
	*headerWritten = true
	return nil
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
	for _, f := range []*os.File{om.telemetryFile, om.perfFile} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
