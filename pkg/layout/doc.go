// Package layout plans chart geometry.
//
// Every planner is a pure function of the chart specification and canvas
// dimensions and returns an immutable value record:
//
//   - [PlanAxis] computes the y-axis maximum and tick step ([AxisPlan])
//   - [PlanLabels] decides x-label rotation and reserved height ([LabelPlan])
//   - [PlanLegend] derives legend items and grid geometry ([LegendLayout])
//   - [ComputeBounds] folds padding, labels and axis titles into [Bounds]
//
// Renderers compose these explicitly. The legend is planned against the
// nominal canvas first; its reserved space then grows the base [Padding] on the
// matching side via [Padding.WithLegend]. The negotiation runs exactly once and
// is never iterated to a fixed point.
package layout
