package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/skim/internal/interaction"
	"github.com/desertthunder/skim/internal/models"
	"github.com/desertthunder/skim/internal/shared"
	"github.com/desertthunder/skim/internal/tasks"
)

// WelcomeMessage is returned by GET / and doubles as the health check.
const WelcomeMessage = "Welcome to skim summarization API"

const maxRequestBytes = 1 << 20

// Engine runs the summarization pipeline. Implemented by [tasks.SummaryEngine].
type Engine interface {
	Summarize(ctx context.Context, progress chan<- tasks.ProgressUpdate, url string) (*tasks.SummarizeResult, error)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.ErrorBody{Message: message})
}

// WelcomeHandler serves GET / and a JSON 404 for every other unmatched path.
type WelcomeHandler struct{}

func (WelcomeHandler) Routes() []string { return []string{"/"} }

func (WelcomeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeMessage(w, http.StatusNotFound, "Not Found")
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	writeMessage(w, http.StatusOK, WelcomeMessage)
}

// SummarizeHandler serves POST /summarize.
//
// Every response body is JSON: {"summary"} on success, {"message"} otherwise.
type SummarizeHandler struct {
	engine Engine
	logger *log.Logger
}

// NewSummarizeHandler creates a handler backed by engine.
func NewSummarizeHandler(engine Engine, logger *log.Logger) *SummarizeHandler {
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}
	return &SummarizeHandler{engine: engine, logger: logger}
}

func (h *SummarizeHandler) Routes() []string { return []string{"/summarize"} }

func (h *SummarizeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req models.SummaryRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !interaction.ValidURL(req.URL) {
		writeMessage(w, http.StatusBadRequest, interaction.MsgInvalidURL)
		return
	}

	res, err := h.engine.Summarize(r.Context(), nil, req.URL)
	if err != nil {
		status, message := classify(err)
		h.logger.Warn("summarize failed", "url", req.URL, "status", status, "error", err, "request_id", RequestID(r.Context()))
		writeMessage(w, status, message)
		return
	}

	h.logger.Debug("summarized", "url", req.URL, "cached", res.Cached, "provider", res.Provider)
	writeJSON(w, http.StatusOK, models.SummaryResult{Summary: res.Summary})
}

// classify maps a pipeline error to the response status and user-facing message.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, shared.ErrArticleFetch), errors.Is(err, shared.ErrEmptyArticle), errors.Is(err, shared.ErrInvalidURL):
		cause := strings.TrimPrefix(err.Error(), shared.ErrArticleFetch.Error()+": ")
		return http.StatusBadRequest, "Error fetching article: " + cause
	case errors.Is(err, shared.ErrSummarizer):
		return http.StatusInternalServerError, "Error getting summary from AI service"
	default:
		return http.StatusInternalServerError, "Error processing request: " + err.Error()
	}
}
