package layout

import (
	"math"
	"math/rand"
	"testing"

	"github.com/matzehuels/chartkit/pkg/chart"
)

func barSpec(stacked bool, series ...[]chart.Value) *chart.Spec {
	n := 0
	for _, s := range series {
		n = max(n, len(s))
	}
	labels := make(chart.Labels, n)
	for i := range labels {
		labels[i] = string(rune('A' + i))
	}
	spec := &chart.Spec{Kind: chart.KindBar, Data: &chart.Data{Labels: labels}}
	for _, s := range series {
		spec.Data.Datasets = append(spec.Data.Datasets, chart.Dataset{Data: s})
	}
	if stacked {
		spec.Options.Scales = &chart.Scales{X: &chart.Axis{Stacked: true}, Y: &chart.Axis{Stacked: true}}
	}
	return spec
}

func TestNiceAxis(t *testing.T) {
	tests := []struct {
		dataMax  float64
		wantMax  float64
		wantStep float64
	}{
		{0, 10, 2},
		{-5, 10, 2},
		{10, 10, 2},
		{7, 8, 2},
		{23, 25, 5},
		{50, 50, 10},
		{51, 60, 20},
		{99, 100, 20},
		{100, 100, 20},
		{1234, 1500, 500},
		{4, 4, 1},
		{1, 1, 0.2},
		{0.3, 0.30000000000000004, 0.1},
	}
	for _, tt := range tests {
		got := NiceAxis(tt.dataMax)
		if math.Abs(got.YMax-tt.wantMax) > 1e-9 || math.Abs(got.TickStep-tt.wantStep) > 1e-9 {
			t.Errorf("NiceAxis(%v) = {%v, %v}, want {%v, %v}", tt.dataMax, got.YMax, got.TickStep, tt.wantMax, tt.wantStep)
		}
	}
}

func TestNiceAxisBoundaryHasNoEmptyRow(t *testing.T) {
	for _, m := range []float64{10, 20, 50, 100, 500, 0.5, 2.5} {
		a := NiceAxis(m)
		if a.YMax-m > a.TickStep/2 {
			t.Errorf("NiceAxis(%v).YMax = %v adds an empty row (step %v)", m, a.YMax, a.TickStep)
		}
	}
}

func TestNiceAxisInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for range 2000 {
		m := rng.Float64() * math.Pow(10, float64(rng.Intn(12)-4))
		a := NiceAxis(m)
		if a.YMax < m*(1-1e-12) {
			t.Fatalf("NiceAxis(%v).YMax = %v below data max", m, a.YMax)
		}
		steps := a.YMax / a.TickStep
		if math.Abs(steps-math.Round(steps)) > 1e-6 {
			t.Fatalf("NiceAxis(%v) = %+v: YMax not a multiple of step", m, a)
		}
		if math.Round(steps) > 6 {
			t.Fatalf("NiceAxis(%v) = %+v needs %v steps", m, a, steps)
		}
		if m > 0 && a.TickStep <= 0 {
			t.Fatalf("NiceAxis(%v) has non-positive step", m)
		}
	}
}

func TestPlanAxis(t *testing.T) {
	v := chart.Values

	t.Run("flat max ignores nulls", func(t *testing.T) {
		spec := barSpec(false, []chart.Value{chart.V(3), chart.Null(), chart.V(9)}, v(4, 2))
		if got := DataMax(spec); got != 9 {
			t.Errorf("DataMax = %v, want 9", got)
		}
		if got := PlanAxis(spec); got.YMax != 10 || got.TickStep != 2 {
			t.Errorf("PlanAxis = %+v", got)
		}
	})

	t.Run("stacked sums categories", func(t *testing.T) {
		spec := barSpec(true, v(10, 20), []chart.Value{chart.V(15), chart.Null()}, v(5))
		if got := DataMax(spec); got != 30 {
			t.Errorf("DataMax = %v, want 30", got)
		}
		if got := PlanAxis(spec); got.YMax != 30 || got.TickStep != 10 {
			t.Errorf("PlanAxis = %+v", got)
		}
	})

	t.Run("legacy stacked", func(t *testing.T) {
		spec := barSpec(false, v(10, 20), v(15, 1))
		spec.Options.Scales = &chart.Scales{
			XAxes: []chart.LegacyAxis{{Stacked: true}},
			YAxes: []chart.LegacyAxis{{Stacked: true}},
		}
		if got := DataMax(spec); got != 25 {
			t.Errorf("DataMax = %v, want 25", got)
		}
	})

	t.Run("negative floored", func(t *testing.T) {
		spec := barSpec(false, v(-3, -8))
		if got := PlanAxis(spec); got.YMax != 10 || got.TickStep != 2 {
			t.Errorf("PlanAxis = %+v", got)
		}
	})

	t.Run("override skips nice snapping", func(t *testing.T) {
		spec := barSpec(false, v(3, 7))
		m := 37.0
		spec.Options.Scales = &chart.Scales{Y: &chart.Axis{Max: &m}}
		got := PlanAxis(spec)
		if !got.Override || got.YMax != 37 || got.TickStep != 7.4 {
			t.Errorf("PlanAxis = %+v, want {37 7.4 override}", got)
		}
	})

	t.Run("negative override", func(t *testing.T) {
		spec := barSpec(false, v(3))
		m := -4.0
		spec.Options.Scales = &chart.Scales{Y: &chart.Axis{Max: &m}}
		got := PlanAxis(spec)
		if got.YMax != -4 || got.TickStep != 1 {
			t.Errorf("PlanAxis = %+v", got)
		}
		if len(got.Ticks()) != 0 {
			t.Errorf("negative axis should have no ticks, got %v", got.Ticks())
		}
	})
}

func TestTicks(t *testing.T) {
	got := AxisPlan{YMax: 1, TickStep: 0.2}.Ticks()
	if len(got) != 6 {
		t.Fatalf("Ticks() = %v, want 6 ticks", got)
	}
	if math.Abs(got[5]-1) > 1e-12 {
		t.Errorf("last tick = %v, want 1", got[5])
	}
	if got := (AxisPlan{YMax: 37, TickStep: 7.4}).Ticks(); len(got) != 6 {
		t.Errorf("override ticks = %v, want 6", got)
	}
}
