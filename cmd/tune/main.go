// Package main fits spawn and drop physics parameters to a target on-screen
// drop density using CMA-ES over headless simulation runs.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/drizzle/config"
)

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	maxTicks := flag.Int64("max-ticks", 3600, "Physics steps per run")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 100, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	targetRain := flag.Float64("target-rain", 150, "Target mean active raindrops")
	targetSplash := flag.Float64("target-splash", 300, "Target mean active splash drops")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()

	params := NewParamVector()

	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}

	evaluator := NewFitnessEvaluator(params, *maxTicks, evalSeeds, baseCfg, Targets{Rain: *targetRain, Splash: *targetSplash})

	dim := params.Dim()
	initX := params.Normalize(params.ExtractFromConfig(baseCfg))

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			return evaluator.Evaluate(params.Denormalize(x))
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0, // Seeds already run in parallel
	}

	popSize := *population
	if popSize == 0 {
		popSize = 4 + int(3.0*float64(dim)/2.0)
	}

	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}

	logPath := filepath.Join(*outputDir, "tune_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	logWriter := csv.NewWriter(logFile)
	defer logWriter.Flush()

	header := []string{"eval", "fitness", "rain", "splash"}
	for _, spec := range params.Specs {
		header = append(header, spec.Name)
	}
	if err := logWriter.Write(header); err != nil {
		log.Fatalf("failed to write log header: %v", err)
	}

	evalCount := 0
	bestFitness := 1e9
	var bestParams []float64
	startTime := time.Now()

	originalFunc := problem.Func
	problem.Func = func(x []float64) float64 {
		fitness := originalFunc(x)
		evalCount++

		// Log the clamped values, which are the ones actually simulated
		clamped := params.Clamp(params.Denormalize(x))
		if fitness < bestFitness {
			bestFitness = fitness
			bestParams = clamped
		}

		rain, splash := evaluator.LastDensity()
		row := []string{
			strconv.Itoa(evalCount),
			fmt.Sprintf("%.6f", fitness),
			fmt.Sprintf("%.1f", rain),
			fmt.Sprintf("%.1f", splash),
		}
		for _, v := range clamped {
			row = append(row, fmt.Sprintf("%.6f", v))
		}
		logWriter.Write(row)
		logWriter.Flush()

		elapsed := time.Since(startTime)
		avgPerEval := elapsed / time.Duration(evalCount)
		remaining := time.Duration(*maxEvals-evalCount) * avgPerEval

		fmt.Printf("Eval %d/%d: rain=%.0f splash=%.0f fitness=%.4f (best=%.4f) | elapsed: %s, ETA: %s\n",
			evalCount, *maxEvals, rain, splash, fitness, bestFitness,
			formatDuration(elapsed), formatDuration(remaining))

		return fitness
	}

	fmt.Printf("Starting CMA-ES tuning with %d parameters, population=%d, max_evals=%d\n",
		dim, popSize, *maxEvals)
	fmt.Printf("Seeds per evaluation: %d, steps per run: %d, target rain=%.0f splash=%.0f\n",
		*seeds, *maxTicks, *targetRain, *targetSplash)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("tuning ended: %v", err)
	}

	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		log.Fatal("no evaluations completed")
	}

	fmt.Printf("\nTuning complete after %d evaluations in %s\n", evalCount, formatDuration(time.Since(startTime)))
	fmt.Printf("Best fitness: %.4f\n", bestFitness)

	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.6f\n", spec.Path, bestParams[i])
	}

	bestCfg := baseCfg.Clone()
	params.ApplyToConfig(bestCfg, bestParams)

	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}
}
