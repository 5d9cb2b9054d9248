package layout

import (
	"math"

	"github.com/matzehuels/chartkit/pkg/chart"
)

const (
	tickCount = 5
	epsilon   = 1e-9
)

// AxisPlan is the y-axis range: ticks run from 0 to YMax in TickStep
// increments.
type AxisPlan struct {
	YMax     float64 `json:"y_max"`
	TickStep float64 `json:"tick_step"`
	// Override is set when YMax came from the options. Ticks are then
	// YMax/5 apart and need not be nice numbers.
	Override bool `json:"override,omitempty"`
}

// PlanAxis computes the y-axis plan for a bar or line chart.
//
// The data maximum is taken over per-category sums for stacked charts and over
// individual values otherwise, ignoring nulls and floored at 0. A configured
// maximum is used as-is with a step of max/5 (or 1 when the maximum is not
// positive). Otherwise the step is the nice number in {1,2,5,10}×10^k nearest
// above max/5 and YMax is the smallest multiple of the step covering the data.
func PlanAxis(spec *chart.Spec) AxisPlan {
	if override, ok := spec.Options.YMax(); ok {
		step := 1.0
		if override > 0 {
			step = override / tickCount
		}
		return AxisPlan{YMax: override, TickStep: step, Override: true}
	}
	return NiceAxis(DataMax(spec))
}

// DataMax returns the largest value the y-axis must cover, floored at 0.
func DataMax(spec *chart.Spec) float64 {
	datasets := spec.Datasets()
	var m float64
	if spec.Stacked() {
		for i := range spec.Labels() {
			var sum float64
			for j := range datasets {
				sum += datasets[j].At(i).Or0()
			}
			m = math.Max(m, sum)
		}
		return m
	}
	for j := range datasets {
		for _, v := range datasets[j].Data {
			if v.Valid {
				m = math.Max(m, v.Float64)
			}
		}
	}
	return m
}

// NiceAxis computes a nice axis covering [0, dataMax].
func NiceAxis(dataMax float64) AxisPlan {
	if dataMax <= 0 || math.IsNaN(dataMax) || math.IsInf(dataMax, 0) {
		return AxisPlan{YMax: 10, TickStep: 2}
	}
	rough := dataMax / tickCount
	exponent := math.Pow(10, math.Floor(math.Log10(rough)))
	fraction := rough / exponent

	var nice float64
	switch {
	case fraction <= 1+epsilon:
		nice = 1
	case fraction <= 2+epsilon:
		nice = 2
	case fraction <= 5+epsilon:
		nice = 5
	default:
		nice = 10
	}
	step := nice * exponent
	return AxisPlan{YMax: ceilSteps(dataMax, step) * step, TickStep: step}
}

// ceilSteps returns the number of steps needed to reach v. Quotients within
// rounding error of an integer count as that integer, so a maximum on a tick
// boundary does not gain an empty row.
func ceilSteps(v, step float64) float64 {
	q := v / step
	if r := math.Round(q); math.Abs(q-r) <= 1e-12*math.Max(1, r) {
		return r
	}
	return math.Ceil(q)
}

// Ticks returns the tick values from 0 to YMax inclusive. A plan with a
// non-positive maximum or step has no ticks.
func (a AxisPlan) Ticks() []float64 {
	if a.YMax <= 0 || a.TickStep <= 0 {
		return nil
	}
	n := int(math.Floor(a.YMax/a.TickStep + epsilon))
	ticks := make([]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		ticks = append(ticks, float64(i)*a.TickStep)
	}
	return ticks
}

// Scale maps v onto a chart area of the given height, 0 at the baseline.
func (a AxisPlan) Scale(v, height float64) float64 {
	if a.YMax <= 0 {
		return 0
	}
	return v / a.YMax * height
}
