// Package server exposes the chart pipeline over HTTP and as an AWS Lambda
// handler.
//
// Routes:
//
//	GET  /healthz                 liveness and build info
//	GET  /chart?jsonData=<spec>   compile and publish, returns {"url": ...}
//	POST /charts                  same, spec in the request body
//	POST /render                  compile and return the artifact inline
//	GET  /artifacts/*             serve a signed artifact (file, mongo and memory stores)
//
// Every failure answers with
//
//	{"message": "Failed to generate chart.", "error": "...", "code": "MALFORMED_SPEC", "field": "data.labels"}
package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/chartkit/pkg/observability"
	"github.com/matzehuels/chartkit/pkg/pipeline"
	"github.com/matzehuels/chartkit/pkg/store"
)

// Options configure a [Server].
type Options struct {
	Runner       *pipeline.Runner
	Reader       store.Reader     // serves /artifacts; nil disables the route
	Signer       *store.URLSigner // verifies /artifacts links
	Logger       *log.Logger
	MaxBodyBytes int64
}

// Server handles chart requests.
type Server struct {
	runner  *pipeline.Runner
	reader  store.Reader
	signer  *store.URLSigner
	logger  *log.Logger
	maxBody int64
}

// New returns a server. A nil logger uses the runner's.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = opts.Runner.Logger
	}
	maxBody := opts.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 1 << 20
	}
	return &Server{
		runner:  opts.Runner,
		reader:  opts.Reader,
		signer:  opts.Signer,
		logger:  logger,
		maxBody: maxBody,
	}
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/chart", s.handleChartQuery)
	r.Post("/charts", s.handleChartBody)
	r.Post("/render", s.handleRender)
	if s.reader != nil && s.signer != nil {
		r.Get("/artifacts/*", s.handleArtifact)
	}
	return r
}

// logRequests logs one line per request and reports it to the server hooks.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		observability.Server().OnRequest(r.Context(), r.Method, r.URL.Path)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		d := time.Since(start)
		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		observability.Server().OnResponse(r.Context(), r.Method, route, status, d)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", d,
			"request_id", middleware.GetReqID(r.Context()))
	})
}
