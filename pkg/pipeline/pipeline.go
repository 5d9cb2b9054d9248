// Package pipeline wraps the pure chart compiler with the caller-side
// concerns: artifact caching, conversion to raster formats and publishing to
// an artifact store.
//
// The CLI, the HTTP server and the Lambda handler all go through a [Runner]
// so that caching, retry and logging behave the same at every entry point:
//
//	runner := pipeline.NewRunner(c, nil, st, logger)
//	art, err := runner.Compile(ctx, spec, "svg")
//	pub, err := runner.Publish(ctx, spec, "svg")
//	fmt.Println(pub.URL)
//
// Compilation failures are deterministic and never retried. Store failures
// marked retryable by the backend are retried with exponential backoff.
package pipeline

import (
	"time"

	"github.com/matzehuels/chartkit/pkg/cache"
	"github.com/matzehuels/chartkit/pkg/errors"
)

// Output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// Formats lists the supported output formats.
var Formats = []string{FormatSVG, FormatPNG, FormatPDF}

var contentTypes = map[string]string{
	FormatSVG: "image/svg+xml",
	FormatPNG: "image/png",
	FormatPDF: "application/pdf",
}

// ContentType returns the media type of a format.
func ContentType(format string) string {
	return contentTypes[format]
}

// Options control a single compilation.
type Options struct {
	Format  string  // svg (default), png or pdf
	Scale   float64 // png zoom factor, default 1
	Refresh bool    // bypass the cache read; the result is still written back
}

// ValidateAndSetDefaults fills defaults and checks the format.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Format == "" {
		o.Format = FormatSVG
	}
	if err := errors.ValidateFormat(o.Format); err != nil {
		return err
	}
	if o.Scale <= 0 {
		o.Scale = 1
	}
	return nil
}

func (o Options) keyOpts() cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: o.Format}
	if o.Format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}

// Artifact is a compiled chart in one output format.
type Artifact struct {
	Format      string
	ContentType string
	Data        []byte
	SpecHash    string
	CacheHit    bool
	Duration    time.Duration
}

// Published is an artifact persisted in the store together with a signed
// retrieval URL.
type Published struct {
	Artifact
	Key       string
	URL       string
	ExpiresAt time.Time
}
