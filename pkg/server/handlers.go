package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/chartkit/pkg/buildinfo"
	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/pipeline"
	"github.com/matzehuels/chartkit/pkg/store"
)

// FailureMessage is the fixed message of every error response.
const FailureMessage = "Failed to generate chart."

// SpecParam is the query parameter carrying a JSON chart specification.
const SpecParam = "jsonData"

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Field   string `json:"field,omitempty"`
}

type publishResponse struct {
	URL       string    `json:"url"`
	Key       string    `json:"key,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

// StatusFor maps an error to its HTTP status.
func StatusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeUnsupportedKind, errors.ErrCodeMalformedSpec,
		errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errors.ErrCodeUnauthorized:
		return http.StatusForbidden
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func errorBody(err error) errorResponse {
	return errorResponse{
		Message: FailureMessage,
		Error:   errors.UserMessage(err),
		Code:    string(errors.GetCode(err)),
		Field:   errors.FieldOf(err),
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("write response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	} else {
		s.logger.Debug("request rejected", "error", err)
	}
	s.writeJSON(w, status, errorBody(err))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleChartQuery(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get(SpecParam)
	if raw == "" {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "missing %s query parameter", SpecParam))
		return
	}
	s.publish(r.Context(), w, []byte(raw), formatParam(r))
}

func (s *Server) handleChartBody(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.publish(r.Context(), w, body, formatParam(r))
}

func (s *Server) publish(ctx context.Context, w http.ResponseWriter, raw []byte, format string) {
	status, resp := s.publishSpec(ctx, raw, format)
	s.writeJSON(w, status, resp)
}

// publishSpec is shared by the HTTP routes and the Lambda handler.
func (s *Server) publishSpec(ctx context.Context, raw []byte, format string) (int, any) {
	spec, err := chart.Parse(raw)
	if err != nil {
		return s.failure(err)
	}
	pub, err := s.runner.Publish(ctx, spec, format)
	if err != nil {
		return s.failure(err)
	}
	return http.StatusOK, publishResponse{URL: pub.URL, Key: pub.Key, ExpiresAt: pub.ExpiresAt}
}

func (s *Server) failure(err error) (int, any) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("chart generation failed", "error", err)
	}
	return status, errorBody(err)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	spec, err := chart.Parse(body)
	if err != nil {
		s.writeError(w, err)
		return
	}
	opts := pipeline.Options{Format: formatParam(r)}
	if v := r.URL.Query().Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil {
			s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "scale"))
			return
		}
		opts.Scale = scale
	}

	art, err := s.runner.Execute(r.Context(), spec, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", art.ContentType)
	w.Header().Set("ETag", `"`+art.SpecHash+`"`)
	if art.CacheHit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	_, _ = w.Write(art.Data)
}

func (s *Server) handleArtifact(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	q := r.URL.Query()
	if err := errors.ValidateArtifactKey(key); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.signer.Verify(key, q.Get(store.ParamExpires), q.Get(store.ParamSignature)); err != nil {
		s.writeError(w, err)
		return
	}
	data, contentType, err := s.reader.Get(r.Context(), key)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "private, max-age=300")
	_, _ = w.Write(data)
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	return body, nil
}

func formatParam(r *http.Request) string {
	return strings.ToLower(r.URL.Query().Get("format"))
}
