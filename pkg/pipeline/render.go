package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/compiler"
	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/observability"
	"github.com/matzehuels/chartkit/pkg/render"
)

// Converter turns SVG into another format. The default shells out to
// rsvg-convert.
type Converter func(svg []byte, format string, scale float64) ([]byte, error)

// RSVGConverter converts with librsvg.
func RSVGConverter(svg []byte, format string, scale float64) ([]byte, error) {
	switch format {
	case FormatPNG:
		return render.ToPNG(svg, scale)
	case FormatPDF:
		return render.ToPDF(svg)
	}
	return svg, nil
}

// compile runs the compiler and converts its output, reporting both to the
// pipeline hooks.
func compile(ctx context.Context, spec *chart.Spec, opts Options, convert Converter) ([]byte, error) {
	hooks := observability.Pipeline()
	kind := string(spec.Kind)

	hooks.OnCompileStart(ctx, kind)
	start := time.Now()
	svg, err := compiler.Compile(spec)
	hooks.OnCompileComplete(ctx, kind, len(svg), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	if opts.Format == FormatSVG {
		return svg, nil
	}

	start = time.Now()
	out, err := convert(svg, opts.Format, opts.Scale)
	hooks.OnConvert(ctx, opts.Format, time.Since(start), err)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "convert to %s", opts.Format)
	}
	return out, nil
}
