package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/drizzle/config"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v; want nil, nil", om, err)
	}
	// Nil receiver is a no-op
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Errorf("WriteTelemetry on nil: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("Close on nil: %v", err)
	}
}

func TestOutputManagerWritesFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	for i := int64(1); i <= 3; i++ {
		if err := om.WriteTelemetry(WindowStats{WindowEndStep: i * 600, RainActive: 40}); err != nil {
			t.Fatalf("WriteTelemetry: %v", err)
		}
	}
	if err := om.WritePerf(PerfStats{}, 600); err != nil {
		t.Fatalf("WritePerf: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("telemetry.csv has %d lines, want header + 3 rows", len(lines))
	}
	if !strings.HasPrefix(lines[0], "window_end,sim_time,rain,splash") {
		t.Errorf("unexpected header %q", lines[0])
	}

	data, err = os.ReadFile(filepath.Join(dir, "perf.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "physics_pct") {
		t.Errorf("perf.csv missing physics_pct column: %q", data)
	}

	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config.yaml not written: %v", err)
	}
}
