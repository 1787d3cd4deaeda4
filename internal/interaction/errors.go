package interaction

import (
	"errors"

	"github.com/desertthunder/skim/internal/services"
)

// User facing messages.
const (
	MsgInvalidURL      = "Please enter a valid URL"
	MsgServiceFallback = "Something went wrong. Please try again."
	MsgUnexpected      = "An unexpected error occurred."
)

var (
	ErrNothingToCopy = errors.New("no summary to copy")
	ErrClipboard     = errors.New("clipboard write failed")
)

// Message maps a failed request to the text shown to the user.
//
// A [*services.ServiceError] yields the service's own message, or [MsgServiceFallback] when it sent none.
// Every other error (network failure, malformed body, panic in the client) yields [MsgUnexpected].
func Message(err error) string {
	var serr *services.ServiceError
	if errors.As(err, &serr) {
		if serr.Message != "" {
			return serr.Message
		}
		return MsgServiceFallback
	}
	return MsgUnexpected
}

// Status returns the HTTP status of a classified service error, zero otherwise.
func Status(err error) int {
	var serr *services.ServiceError
	if errors.As(err, &serr) {
		return serr.Status
	}
	return 0
}
