package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase names for one fixed simulation step.
const (
	PhaseWind      = "wind"
	PhasePhysics   = "physics"
	PhaseCollision = "collision"
	PhaseLifecycle = "lifecycle"
	PhaseTelemetry = "telemetry"
)

// Phases lists the step phases in execution order.
var Phases = []string{PhaseWind, PhasePhysics, PhaseCollision, PhaseLifecycle, PhaseTelemetry}

// PerfSample holds timing data for a single step.
type PerfSample struct {
	StepDuration time.Duration
	Phases       map[string]time.Duration
}

// PerfCollector tracks step timing over a rolling window.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	stepStart     time.Time
	phaseStart    time.Time
	lastPhase     string

	// Graphics mode only
	lastFrameTime time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize steps.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartStep begins timing a new physics step.
func (p *PerfCollector) StartStep() {
	p.stepStart = time.Now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase ends the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndStep finishes timing the current step and records the sample.
func (p *PerfCollector) EndStep() {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		StepDuration: now.Sub(p.stepStart),
		Phases:       p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// RecordFrame records frame timing for graphics mode.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrameTime.IsZero() {
		p.frameDuration = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

// PerfStats holds aggregated step timing.
type PerfStats struct {
	AvgStep time.Duration
	MinStep time.Duration
	MaxStep time.Duration
	P95Step time.Duration

	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64 // Share of the average step

	StepsPerSecond float64

	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the current window.
func (p *PerfCollector) Stats() PerfStats {
	var fps float64
	if p.frameDuration > 0 {
		fps = float64(time.Second) / float64(p.frameDuration)
	}

	out := PerfStats{
		PhaseAvg:      make(map[string]time.Duration),
		PhasePct:      make(map[string]float64),
		FrameDuration: p.frameDuration,
		FPS:           fps,
	}
	if p.sampleCount == 0 {
		return out
	}

	durations := make([]float64, p.sampleCount)
	phaseSum := make(map[string]time.Duration)
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		durations[i] = float64(s.StepDuration)
		for phase, d := range s.Phases {
			phaseSum[phase] += d
		}
	}
	sort.Float64s(durations)

	out.AvgStep = time.Duration(stat.Mean(durations, nil))
	out.MinStep = time.Duration(durations[0])
	out.MaxStep = time.Duration(durations[len(durations)-1])
	out.P95Step = time.Duration(stat.Quantile(0.95, stat.Empirical, durations, nil))

	for phase, sum := range phaseSum {
		avg := sum / time.Duration(p.sampleCount)
		out.PhaseAvg[phase] = avg
		if out.AvgStep > 0 {
			out.PhasePct[phase] = float64(avg) / float64(out.AvgStep) * 100
		}
	}
	if out.AvgStep > 0 {
		out.StepsPerSecond = float64(time.Second) / float64(out.AvgStep)
	}
	return out
}

// LogStats logs the timing summary at Info.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_step_us", s.AvgStep.Microseconds(),
		"p95_step_us", s.P95Step.Microseconds(),
		"max_step_us", s.MaxStep.Microseconds(),
		"steps_per_sec", int(s.StepsPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", float64(int(pct*10))/10)
		}
	}
	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_step_us", s.AvgStep.Microseconds()),
		slog.Int64("p95_step_us", s.P95Step.Microseconds()),
		slog.Float64("steps_per_sec", s.StepsPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, phase := range Phases {
		attrs = append(attrs, slog.Float64(phase+"_pct", s.PhasePct[phase]))
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is the flat perf.csv row.
type PerfStatsCSV struct {
	WindowEnd    int64   `csv:"window_end"`
	AvgStepUS    int64   `csv:"avg_step_us"`
	MinStepUS    int64   `csv:"min_step_us"`
	MaxStepUS    int64   `csv:"max_step_us"`
	P95StepUS    int64   `csv:"p95_step_us"`
	StepsPerSec  float64 `csv:"steps_per_sec"`
	FPS          float64 `csv:"fps"`
	WindPct      float64 `csv:"wind_pct"`
	PhysicsPct   float64 `csv:"physics_pct"`
	CollisionPct float64 `csv:"collision_pct"`
	LifecyclePct float64 `csv:"lifecycle_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats for export.
func (s PerfStats) ToCSV(windowEnd int64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgStepUS:    s.AvgStep.Microseconds(),
		MinStepUS:    s.MinStep.Microseconds(),
		MaxStepUS:    s.MaxStep.Microseconds(),
		P95StepUS:    s.P95Step.Microseconds(),
		StepsPerSec:  s.StepsPerSecond,
		FPS:          s.FPS,
		WindPct:      s.PhasePct[PhaseWind],
		PhysicsPct:   s.PhasePct[PhasePhysics],
		CollisionPct: s.PhasePct[PhaseCollision],
		LifecyclePct: s.PhasePct[PhaseLifecycle],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
