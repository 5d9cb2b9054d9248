// Package chart defines the declarative chart specification accepted by the
// compiler.
//
// A [Spec] names a chart [Kind] (bar, line or pie), the category labels, one or
// more [Dataset] series and a set of rendering [Options]. The JSON shape follows
// the Chart.js configuration format, so specifications produced for Chart.js can
// be compiled without modification:
//
//	{
//	  "type": "bar",
//	  "data": {
//	    "labels": ["Q1", "Q2", "Q3"],
//	    "datasets": [{"label": "Incidents", "data": [12, null, 7]}]
//	  },
//	  "options": {"plugins": {"legend": {"position": "right"}}}
//	}
//
// # Option Shapes
//
// Both the current (plugins.title, plugins.legend, scales.x/y) and the legacy
// (title, legend, scales.xAxes[0]/yAxes[0]) option layouts are accepted. When
// both are present the current layout wins. The accessor methods on [Options]
// ([Options.Stacked], [Options.YMax], [Options.TitleStyle], ...) perform this
// resolution so renderers never inspect raw option fields.
//
// # Null Values
//
// Data points are [Value]s. A JSON null decodes to an invalid Value, which
// renderers and axis planning skip rather than treat as zero.
package chart
