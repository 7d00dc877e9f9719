// Package server exposes the fitting pipeline over HTTP.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/chartfit/pkg/errors"
	"github.com/matzehuels/chartfit/pkg/pipeline"
)

// Server wires the pipeline Runner behind a chi router.
type Server struct {
	Runner *pipeline.Runner
	Logger *log.Logger
}

// New creates a server around the given runner.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{Runner: runner, Logger: logger}
}

// Handler builds the HTTP routing table.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Post("/v1/render", s.handleRender)

	return r
}

type ctxKey string

const requestIDKey ctxKey = "request_id"

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// requestID tags every request with a UUID for log correlation.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.Logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", requestIDFrom(r.Context()),
			"duration", time.Since(start))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// renderRequest is the POST /v1/render payload.
type renderRequest struct {
	Spec    json.RawMessage `json:"spec"`
	Width   float64         `json:"width,omitempty"`
	Height  float64         `json:"height,omitempty"`
	Padding any             `json:"padding,omitempty"`
	Refresh bool            `json:"refresh,omitempty"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decoding request body"))
		return
	}

	result, err := s.Runner.Execute(r.Context(), pipeline.Options{
		Spec:    req.Spec,
		Width:   req.Width,
		Height:  req.Height,
		Padding: req.Padding,
		Refresh: req.Refresh,
		Logger:  s.Logger,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("X-Fit-Attempts", strconv.Itoa(result.Attempts))
	w.Write(result.SVG)
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)
	s.Logger.Error("request failed",
		"path", r.URL.Path,
		"request_id", requestIDFrom(r.Context()),
		"code", code,
		"err", err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{
		Code:    string(code),
		Message: err.Error(),
	})
}

// statusFor maps structured error codes onto HTTP statuses.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidSpec, errors.ErrCodeInvalidPadding:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeChartNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case errors.ErrCodeForbidden:
		return http.StatusForbidden
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeRenderFailed, errors.ErrCodeNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
