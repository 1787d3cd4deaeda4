// package services defines interface Service for talking to the summarization service over HTTP
package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/desertthunder/skim/internal/models"
)

// Service defines the interface for a remote summarization backend.
type Service interface {
	// Summarize submits url and returns the service's summary.
	// Non-2xx responses are returned as [*ServiceError]; anything else that prevents a
	// usable response (network failure, malformed body) is wrapped in [shared.ErrAPIRequest].
	Summarize(ctx context.Context, url string) (*models.SummaryResult, error)

	// Health checks that the service is reachable and returns its welcome message.
	Health(ctx context.Context) (string, error)

	// Name returns the name of the service, usually its base URL
	Name() string
}

// ServiceError is a completed round trip that the service rejected with a non-2xx status.
type ServiceError struct {
	Status  int    // HTTP status code
	Message string // message field of the JSON body, empty when absent
}

func (e *ServiceError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("service returned %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("service returned %d: %s", e.Status, e.Message)
}
