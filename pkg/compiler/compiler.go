// Package compiler is the chart compiler entry point: it validates a chart
// specification, dispatches on its kind and returns SVG markup.
//
// Compilation is a pure function of the specification. It performs no I/O,
// holds no state and never retries; identical input yields byte-identical
// output and identical errors, so callers may run compilations concurrently
// and retry at their own boundary.
//
//	svg, err := compiler.CompileJSON([]byte(`{"type":"pie","data":{...}}`))
//	if errors.Is(err, errors.ErrCodeMalformedSpec) {
//	    fmt.Println(errors.FieldOf(err))
//	}
package compiler

import (
	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/render"
)

// ContentType is the media type of compiled output.
const ContentType = "image/svg+xml"

// Compile renders spec as SVG.
//
// Errors:
//   - UNSUPPORTED_KIND when the kind is not bar, line or pie
//   - MALFORMED_SPEC when data or labels are missing, or a dataset is longer
//     than the label list
//
// Empty charts and pie charts with a zero total are not errors; they render a
// placeholder or an empty canvas.
func Compile(spec *chart.Spec) ([]byte, error) {
	r, err := rendererFor(spec)
	if err != nil {
		return nil, err
	}
	return r.Render(spec), nil
}

// CompileJSON decodes a JSON specification and compiles it.
func CompileJSON(data []byte) ([]byte, error) {
	spec, err := chart.Parse(data)
	if err != nil {
		return nil, err
	}
	return Compile(spec)
}

// Plan returns the planned frame of spec without drawing it.
func Plan(spec *chart.Spec) (render.Frame, error) {
	r, err := rendererFor(spec)
	if err != nil {
		return render.Frame{}, err
	}
	return r.Plan(spec), nil
}

func rendererFor(spec *chart.Spec) (render.Renderer, error) {
	if spec == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "chart specification is required")
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	kind, _ := chart.ParseKind(string(spec.Kind))
	r, ok := render.For(kind)
	if !ok {
		return nil, errors.New(errors.ErrCodeUnsupportedKind, "unsupported chart type: %q", spec.Kind)
	}
	return r, nil
}
