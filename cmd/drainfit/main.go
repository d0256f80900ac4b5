// Package main fits the drain overload curve to target multipliers with
// Nelder-Mead and writes the fitted config.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/config"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	targetsPath := flag.String("targets", "", "CSV of levels,multiplier targets (empty = built-in ramp)")
	maxEvals := flag.Int("max-evals", 2000, "Maximum number of evaluations")
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

	targets := DefaultTargets()
	if *targetsPath != "" {
		t, err := LoadTargets(*targetsPath)
		if err != nil {
			log.Fatal(err)
		}
		targets = t
	}

	params := NewParamVector(baseCfg)
	if params.Dim() == 0 {
		log.Fatal("config has no overload segments to fit")
	}
	evaluator := NewFitnessEvaluator(params, targets, baseCfg)

	result, err := Fit(evaluator, params, params.ExtractFromConfig(baseCfg), *maxEvals)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}
	loss, best := evaluator.Best()
	if best == nil && result != nil {
		best = params.Clamp(params.Denormalize(result.X))
	}

	fmt.Printf("Fit complete after %d evaluations, loss %.6f\n", evaluator.Evals(), loss)
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.4f\n", spec.Name, best[i])
	}

	bestCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to reload config: %v", err)
	}
	params.ApplyToConfig(bestCfg, best)
	if err := bestCfg.Validate(); err != nil {
		log.Printf("fitted config does not validate: %v", err)
	}

	configOutPath := filepath.Join(*outputDir, "fitted_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write fitted config: %v", err)
	} else {
		fmt.Printf("Fitted config saved to: %s\n", configOutPath)
	}

	reportPath := filepath.Join(*outputDir, "fit_report.csv")
	f, err := os.Create(reportPath)
	if err != nil {
		log.Fatalf("failed to create report: %v", err)
	}
	defer f.Close()
	if err := gocsv.MarshalFile(evaluator.Report(bestCfg), f); err != nil {
		log.Printf("failed to write report: %v", err)
	}
}

// Fit runs Nelder-Mead over normalized parameters starting from start.
func Fit(fe *FitnessEvaluator, params *ParamVector, start []float64, maxEvals int) (*optimize.Result, error) {
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			return fe.Evaluate(params.Denormalize(x))
		},
	}
	settings := &optimize.Settings{
		FuncEvaluations: maxEvals,
		Runtime:         5 * time.Minute,
	}
	return optimize.Minimize(problem, params.Normalize(start), settings, &optimize.NelderMead{})
}
