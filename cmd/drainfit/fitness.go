package main

import (
	"fmt"
	"math"
	"os"
	"sync"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/floats"

	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/config"
	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/core"
)

// Target is a desired overload multiplier at a total active level count.
type Target struct {
	Levels     int     `csv:"levels"`
	Multiplier float64 `csv:"multiplier"`
}

// DefaultTargets is a gentle ramp: free up to 10 levels, about x2 at 40,
// x5 at 80.
func DefaultTargets() []Target {
	return []Target{
		{Levels: 5, Multiplier: 1.0},
		{Levels: 10, Multiplier: 1.0},
		{Levels: 20, Multiplier: 1.25},
		{Levels: 30, Multiplier: 1.55},
		{Levels: 40, Multiplier: 2.0},
		{Levels: 50, Multiplier: 2.5},
		{Levels: 60, Multiplier: 3.1},
		{Levels: 70, Multiplier: 3.9},
		{Levels: 80, Multiplier: 5.0},
	}
}

// LoadTargets reads targets from a CSV file with levels,multiplier columns.
func LoadTargets(path string) ([]Target, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening targets: %w", err)
	}
	defer f.Close()

	var targets []Target
	if err := gocsv.UnmarshalFile(f, &targets); err != nil {
		return nil, fmt.Errorf("parsing targets: %w", err)
	}
	for i, t := range targets {
		if t.Levels < 0 || t.Multiplier <= 0 {
			return nil, fmt.Errorf("target %d: levels %d multiplier %.3f out of range", i, t.Levels, t.Multiplier)
		}
	}
	return targets, nil
}

// FitRow is one line of the fit report.
type FitRow struct {
	Levels   int     `csv:"levels"`
	Target   float64 `csv:"target"`
	Fitted   float64 `csv:"fitted"`
	Relative float64 `csv:"relative_error"`
}

// FitnessEvaluator scores overload curves against targets.
type FitnessEvaluator struct {
	params     *ParamVector
	targets    []Target
	baseConfig *config.Config

	mu         sync.Mutex
	evals      int
	bestLoss   float64
	bestParams []float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, targets []Target, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		targets:    targets,
		baseConfig: baseCfg,
		bestLoss:   math.Inf(1),
	}
}

// Evaluate returns the sum of squared relative errors for raw parameter
// values (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)
	loss := fe.loss(cfg)

	fe.mu.Lock()
	defer fe.mu.Unlock()
	fe.evals++
	if loss < fe.bestLoss {
		fe.bestLoss = loss
		fe.bestParams = fe.params.Clamp(x)
	}
	return loss
}

func (fe *FitnessEvaluator) loss(cfg *config.Config) float64 {
	curve := core.NewOverloadCurve(cfg.Drain)
	residuals := make([]float64, len(fe.targets))
	for i, t := range fe.targets {
		residuals[i] = (curve.Overload(uint64(t.Levels)) - t.Multiplier) / t.Multiplier
	}
	return floats.Dot(residuals, residuals)
}

// Report compares the curve in cfg with every target.
func (fe *FitnessEvaluator) Report(cfg *config.Config) []FitRow {
	curve := core.NewOverloadCurve(cfg.Drain)
	rows := make([]FitRow, len(fe.targets))
	for i, t := range fe.targets {
		got := curve.Overload(uint64(t.Levels))
		rows[i] = FitRow{Levels: t.Levels, Target: t.Multiplier, Fitted: got, Relative: (got - t.Multiplier) / t.Multiplier}
	}
	return rows
}

// Best returns the best loss and clamped parameters seen so far.
func (fe *FitnessEvaluator) Best() (float64, []float64) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestLoss, fe.bestParams
}

// Evals returns the number of evaluations so far.
func (fe *FitnessEvaluator) Evals() int {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.evals
}

// copyConfig creates a copy of the base config with its own segment slice.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	cfg.Drain.Overload.Segments = append([]config.OverloadSegment(nil), fe.baseConfig.Drain.Overload.Segments...)
	return &cfg
}
