// Package pkg provides the core libraries for chartkit.
//
// # Overview
//
// chartkit compiles declarative chart specifications (bar, stacked bar, line
// and pie) into standalone SVG documents. The pkg directory is organized into
// three areas:
//
//  1. Compilation - [chart], [color], [layout], [render] and [compiler] turn a
//     specification into markup. They are pure and safe for concurrent use.
//  2. Infrastructure - [cache], [store] and [config] persist artifacts and
//     wire backends (Redis, MongoDB, S3, local files).
//  3. Orchestration - [pipeline] adds caching, raster conversion and
//     publishing; [server] exposes it over HTTP and Lambda.
//
// # Architecture
//
//	JSON specification
//	       ↓
//	  [chart] package (decode + validate)
//	       ↓
//	  [layout] package (axis, labels, legend, bounds)
//	       ↓
//	  [render] package (bar, line, pie markup)
//	       ↓
//	  [pipeline] package (cache, PNG/PDF, store + signed URL)
//
// # Quick Start
//
//	svg, err := compiler.CompileJSON([]byte(`{
//	    "type": "pie",
//	    "data": {"labels": ["A", "B"], "datasets": [{"data": [75, 25]}]}
//	}`))
//
// [chart]: github.com/matzehuels/chartkit/pkg/chart
// [color]: github.com/matzehuels/chartkit/pkg/color
// [layout]: github.com/matzehuels/chartkit/pkg/layout
// [render]: github.com/matzehuels/chartkit/pkg/render
// [compiler]: github.com/matzehuels/chartkit/pkg/compiler
// [cache]: github.com/matzehuels/chartkit/pkg/cache
// [store]: github.com/matzehuels/chartkit/pkg/store
// [config]: github.com/matzehuels/chartkit/pkg/config
// [pipeline]: github.com/matzehuels/chartkit/pkg/pipeline
// [server]: github.com/matzehuels/chartkit/pkg/server
package pkg
