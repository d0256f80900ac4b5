package main

import (
	"fmt"

	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/config"
)

// ParamSpec defines a single fitted parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the overload curve parameters: for each segment, the
// rise over the segment and its exponent. Segments start where the previous
// one ends, so any vector yields a continuous non-decreasing curve.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates one rise and one exponent parameter per segment of cfg.
func NewParamVector(cfg *config.Config) *ParamVector {
	pv := &ParamVector{}
	for i, seg := range cfg.Drain.Overload.Segments {
		path := fmt.Sprintf("drain.overload.segments[%d]", i)
		pv.Specs = append(pv.Specs,
			ParamSpec{Name: fmt.Sprintf("seg%d_rise", i), Path: path + ".to", Min: 0, Max: 5, Default: seg.To - seg.From},
			ParamSpec{Name: fmt.Sprintf("seg%d_exp", i), Path: path + ".exponent", Min: 0.5, Max: 4, Default: seg.Exponent},
		)
	}
	return pv
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig rewrites the overload segments from values. The first
// segment keeps its From; every later segment starts at the previous To.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)
	segs := cfg.Drain.Overload.Segments
	if len(segs) == 0 {
		return
	}
	from := segs[0].From
	for i := range segs {
		segs[i].From = from
		segs[i].To = from + clamped[2*i]
		segs[i].Exponent = clamped[2*i+1]
		from = segs[i].To
	}
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	v := make([]float64, 0, 2*len(cfg.Drain.Overload.Segments))
	for _, seg := range cfg.Drain.Overload.Segments {
		v = append(v, seg.To-seg.From, seg.Exponent)
	}
	return v
}
