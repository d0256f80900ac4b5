package main

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/config"
	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/core"
)

func TestParamVector_RoundTrip(t *testing.T) {
	cfg := config.Defaults()
	pv := NewParamVector(cfg)
	if pv.Dim() != 2*len(cfg.Drain.Overload.Segments) {
		t.Fatalf("Dim = %d, want %d", pv.Dim(), 2*len(cfg.Drain.Overload.Segments))
	}

	orig := append([]config.OverloadSegment(nil), cfg.Drain.Overload.Segments...)
	pv.ApplyToConfig(cfg, pv.ExtractFromConfig(cfg))
	for i, seg := range cfg.Drain.Overload.Segments {
		if math.Abs(seg.To-orig[i].To) > 1e-9 || seg.Exponent != orig[i].Exponent {
			t.Errorf("segment %d = %+v, want %+v", i, seg, orig[i])
		}
	}
}

func TestParamVector_ApplyKeepsCurveContinuous(t *testing.T) {
	cfg := config.Defaults()
	pv := NewParamVector(cfg)
	v := pv.DefaultVector()
	for i := range v {
		v[i] = -1 // clamped to each minimum
	}
	pv.ApplyToConfig(cfg, v)

	segs := cfg.Drain.Overload.Segments
	for i := 1; i < len(segs); i++ {
		if segs[i].From != segs[i-1].To {
			t.Errorf("segment %d starts at %.3f, previous ends at %.3f", i, segs[i].From, segs[i-1].To)
		}
		if segs[i].To < segs[i].From {
			t.Errorf("segment %d decreases", i)
		}
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestFit_ImprovesOnDefaults(t *testing.T) {
	cfg := config.Defaults()
	pv := NewParamVector(cfg)
	fe := NewFitnessEvaluator(pv, DefaultTargets(), cfg)

	start := pv.ExtractFromConfig(cfg)
	initial := fe.Evaluate(start)
	if _, err := Fit(fe, pv, start, 400); err != nil {
		t.Logf("Fit: %v", err)
	}
	loss, best := fe.Best()
	if loss > initial {
		t.Errorf("best loss %.6f worse than starting loss %.6f", loss, initial)
	}
	if len(best) != pv.Dim() {
		t.Fatalf("best params = %v", best)
	}

	fitted := config.Defaults()
	pv.ApplyToConfig(fitted, best)
	curve := core.NewOverloadCurve(fitted.Drain)
	prev := 0.0
	for levels := uint64(0); levels <= 80; levels++ {
		m := curve.Overload(levels)
		if m < prev-1e-9 {
			t.Fatalf("fitted curve decreases at %d levels: %.4f < %.4f", levels, m, prev)
		}
		prev = m
	}
}

func TestLoadTargets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "targets.csv")
	if err := os.WriteFile(path, []byte("levels,multiplier\n10,1.0\n40,2.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	targets, err := LoadTargets(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(targets) != 2 || targets[1].Levels != 40 || targets[1].Multiplier != 2.5 {
		t.Errorf("targets = %+v", targets)
	}

	bad := filepath.Join(t.TempDir(), "bad.csv")
	os.WriteFile(bad, []byte("levels,multiplier\n10,0\n"), 0o644)
	if _, err := LoadTargets(bad); err == nil {
		t.Error("expected an error for a zero multiplier")
	}
}
