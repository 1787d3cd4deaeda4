package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/desertthunder/skim/internal/models"
	"github.com/desertthunder/skim/internal/shared"
)

// SummaryService is the [Service] implementation for the skim summarization API.
type SummaryService struct {
	api *APIService
}

var _ Service = (*SummaryService)(nil)

// NewSummaryService creates a client for the service at baseURL.
//
// timeout bounds each round trip at the transport level; zero means no limit.
func NewSummaryService(baseURL string, timeout time.Duration) *SummaryService {
	return NewSummaryServiceWithClient(baseURL, &http.Client{Timeout: timeout})
}

// NewSummaryServiceWithClient creates a client that sends requests through client.
func NewSummaryServiceWithClient(baseURL string, client *http.Client) *SummaryService {
	return &SummaryService{api: NewAPIService(baseURL, client)}
}

// Name returns the base URL of the service.
func (s *SummaryService) Name() string {
	return s.api.BaseURL()
}

// Summarize sends POST /summarize with {"url": url}.
func (s *SummaryService) Summarize(ctx context.Context, url string) (*models.SummaryResult, error) {
	payload, err := json.Marshal(models.SummaryRequest{URL: url})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode request: %v", shared.ErrAPIRequest, err)
	}

	resp, err := s.api.Post(ctx, "/summarize", payload)
	if err != nil {
		return nil, requestError(err)
	}

	if !resp.OK() {
		return nil, newServiceError(resp)
	}

	var body struct {
		Summary *string `json:"summary"`
	}
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return nil, fmt.Errorf("%w: malformed response body: %v", shared.ErrAPIRequest, err)
	}
	if body.Summary == nil {
		return nil, fmt.Errorf("%w: response has no summary field", shared.ErrAPIRequest)
	}

	return &models.SummaryResult{Summary: *body.Summary}, nil
}

// Health calls GET / and returns the welcome message.
func (s *SummaryService) Health(ctx context.Context) (string, error) {
	resp, err := s.api.Get(ctx, "/")
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}
	if !resp.OK() {
		return "", newServiceError(resp)
	}

	var body models.ErrorBody
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return "", fmt.Errorf("%w: malformed response body: %v", shared.ErrAPIRequest, err)
	}
	return body.Message, nil
}

// newServiceError classifies a non-2xx response, keeping the body's message when it has one.
func newServiceError(resp *APIResponse) *ServiceError {
	serr := &ServiceError{Status: resp.StatusCode}

	var body models.ErrorBody
	if err := json.Unmarshal(resp.Body, &body); err == nil {
		serr.Message = body.Message
	}

	return serr
}

// requestError wraps a transport failure in [shared.ErrAPIRequest], adding [shared.ErrTimeout] when it timed out.
func requestError(err error) error {
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return fmt.Errorf("%w: %w: %v", shared.ErrAPIRequest, shared.ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
}
