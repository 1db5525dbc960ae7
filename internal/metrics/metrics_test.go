package metrics

import (
	"math"
	"testing"

	"github.com/mkumar097/MonteCarloProject/internal/geometry"
	"github.com/mkumar097/MonteCarloProject/internal/mc"
	"github.com/mkumar097/MonteCarloProject/internal/sim"
)

var (
	_ sim.Metric = (*MeanEnergy)(nil)
	_ sim.Metric = (*EnergyRange)(nil)
	_ sim.Metric = (*Acceptance)(nil)
	_ sim.Metric = (*MeanStep)(nil)
)

func TestMeanEnergy(t *testing.T) {
	m := NewMeanEnergy(0)
	for _, e := range []float64{-1, -2, -3} {
		m.Observe(mc.Move{}, e)
	}

	if math.Abs(m.Value()-(-2)) > 1e-12 {
		t.Errorf("expected mean -2, got %f", m.Value())
	}
	if m.Samples() != 3 {
		t.Errorf("expected 3 samples, got %d", m.Samples())
	}
}

func TestMeanEnergy_Skip(t *testing.T) {
	m := NewMeanEnergy(2)
	for _, e := range []float64{100, 50, -4, -6} {
		m.Observe(mc.Move{}, e)
	}

	if math.Abs(m.Value()-(-5)) > 1e-12 {
		t.Errorf("expected mean -5 after skipping 2 samples, got %f", m.Value())
	}

	short := NewMeanEnergy(10)
	short.Observe(mc.Move{}, 1)
	if short.Value() != 0 {
		t.Errorf("expected 0 before the skip window ends, got %f", short.Value())
	}
}

func TestMeanEnergy_Reset(t *testing.T) {
	m := NewMeanEnergy(1)
	m.Observe(mc.Move{}, 3)
	m.Observe(mc.Move{}, 5)
	if m.Value() == 0 {
		t.Error("expected non-zero mean")
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero mean after reset")
	}

	// the skip window starts over
	m.Observe(mc.Move{}, 7)
	if m.Samples() != 0 {
		t.Errorf("expected first sample after reset to be skipped, got %d samples", m.Samples())
	}
}

func TestEnergyRange(t *testing.T) {
	r := NewEnergyRange()
	if r.Value() != 0 {
		t.Error("expected zero range with no samples")
	}

	for _, e := range []float64{-3, -1, -5, -2} {
		r.Observe(mc.Move{}, e)
	}
	if r.Value() != 4 {
		t.Errorf("expected range 4, got %f", r.Value())
	}

	r.Reset()
	r.Observe(mc.Move{}, 10)
	if r.Value() != 0 {
		t.Errorf("expected range 0 for a single sample, got %f", r.Value())
	}
}

func TestAcceptance(t *testing.T) {
	a := NewAcceptance()
	if a.Value() != 0 {
		t.Error("expected zero ratio with no samples")
	}

	for _, ok := range []bool{true, false, true, true} {
		a.Observe(mc.Move{Accepted: ok}, 0)
	}
	if a.Value() != 0.75 {
		t.Errorf("expected ratio 0.75, got %f", a.Value())
	}

	a.Reset()
	if a.Value() != 0 {
		t.Error("expected zero ratio after reset")
	}
}

func TestMeanStep(t *testing.T) {
	const box = 10.0
	s := NewMeanStep(box)

	s.Observe(mc.Move{Accepted: true, From: geometry.Vec3{0, 0, 0}, To: geometry.Vec3{0.3, 0.4, 0}}, 0)
	// crosses the boundary: the minimum image is 0.2 long, not 9.8
	s.Observe(mc.Move{Accepted: true, From: geometry.Vec3{4.9, 0, 0}, To: geometry.Vec3{-4.9, 0, 0}}, 0)
	// rejected moves do not count
	s.Observe(mc.Move{Accepted: false, From: geometry.Vec3{0, 0, 0}, To: geometry.Vec3{1, 1, 1}}, 0)

	if math.Abs(s.Value()-0.35) > 1e-12 {
		t.Errorf("expected mean step 0.35, got %f", s.Value())
	}

	s.Reset()
	if s.Value() != 0 {
		t.Error("expected zero after reset")
	}
}
