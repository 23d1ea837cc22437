// Package server exposes repository analysis over HTTP.
package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/ursisterbtw/gh-analyzer/pkg/analyzer"
	"github.com/ursisterbtw/gh-analyzer/pkg/errors"
)

// HeaderAnalysisID carries the per-request analysis identifier.
const HeaderAnalysisID = "X-Analysis-ID"

// Handler translates HTTP requests into repository analyses.
type Handler struct {
	api    analyzer.API
	opts   analyzer.Options
	logger *log.Logger
	now    func() time.Time
}

// New returns the HTTP API. opts are the base analyzer options; a request
// may add extra candidate files with ?files=a,b.
func New(api analyzer.API, opts analyzer.Options, logger *log.Logger) http.Handler {
	if logger == nil {
		logger = log.Default()
	}
	return newHandler(api, opts, logger).routes()
}

func newHandler(api analyzer.API, opts analyzer.Options, logger *log.Logger) *Handler {
	return &Handler{api: api, opts: opts, logger: logger, now: time.Now}
}

func (h *Handler) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.Health)
	r.Get("/v1/repos/{owner}/{repo}/summary", h.Summary)

	return r
}

// Health reports that the server is up.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Summary analyzes one repository and returns its summary as JSON.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	w.Header().Set(HeaderAnalysisID, id)

	repo := chi.URLParam(r, "owner") + "/" + chi.URLParam(r, "repo")
	logger := h.logger.With("analysis_id", id, "repo", repo)

	opts := h.opts
	opts.Logger = logger
	opts.Observer = nil
	opts.ExtraFiles = append(append([]string(nil), h.opts.ExtraFiles...), splitList(r.URL.Query().Get("files"))...)

	a, err := analyzer.New(h.api, opts)
	if err != nil {
		h.writeError(w, logger, err)
		return
	}

	start := time.Now()
	summary, err := a.Analyze(r.Context(), repo)
	if err != nil {
		h.writeError(w, logger, err)
		return
	}
	logger.Info("served summary", "duration", time.Since(start).Round(time.Millisecond))
	writeJSON(w, http.StatusOK, summary)
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (h *Handler) writeError(w http.ResponseWriter, logger *log.Logger, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := StatusFor(code)

	var rl *errors.RateLimitedError
	if stderrors.As(err, &rl) {
		secs := int64(rl.RetryAfter(h.now()).Round(time.Second) / time.Second)
		w.Header().Set("Retry-After", strconv.FormatInt(secs, 10))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(rl.ResetAt.Unix(), 10))
	}

	if status >= http.StatusInternalServerError {
		logger.Error("analysis failed", "code", code, "err", err)
	} else {
		logger.Warn("analysis rejected", "code", code, "err", errors.UserMessage(err))
	}
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: errors.UserMessage(err)}})
}

// StatusFor maps an error code to an HTTP status.
func StatusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case errors.ErrCodeRepoNotFound:
		return http.StatusNotFound
	case errors.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case errors.ErrCodeNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
