package interaction

import (
	"errors"
	"net/http"
	"testing"

	"github.com/desertthunder/skim/internal/services"
)

func TestNext(t *testing.T) {
	t.Run("Submit", func(t *testing.T) {
		reentry := []State{
			Idle{},
			Idle{ErrorMessage: "stale"},
			ValidationFailed{ErrorMessage: MsgInvalidURL},
			Succeeded{URL: "https://old.example.com", Summary: "old"},
			Failed{ErrorMessage: "bad input", Status: 400},
		}

		for _, from := range reentry {
			t.Run("valid from "+from.Kind().String(), func(t *testing.T) {
				next, issue := Next(from, SubmitEvent{URL: "https://example.com/a"})
				if !issue {
					t.Error("expected a request to be issued")
				}
				s, ok := next.(Submitting)
				if !ok {
					t.Fatalf("expected Submitting, got %T", next)
				}
				if s.URL != "https://example.com/a" {
					t.Errorf("unexpected URL %q", s.URL)
				}
				if Summary(next) != "" || ErrorMessage(next) != "" {
					t.Error("submitting must clear summary and error")
				}
			})

			t.Run("invalid from "+from.Kind().String(), func(t *testing.T) {
				next, issue := Next(from, SubmitEvent{URL: "not a url"})
				if issue {
					t.Error("invalid input must not issue a request")
				}
				if next != (ValidationFailed{ErrorMessage: "Please enter a valid URL"}) {
					t.Errorf("unexpected state %#v", next)
				}
				if Summary(next) != "" {
					t.Error("validation failure must clear the summary")
				}
			})
		}

		t.Run("ignored while submitting", func(t *testing.T) {
			from := Submitting{URL: "https://example.com/a"}
			next, issue := Next(from, SubmitEvent{URL: "https://example.com/b"})
			if issue {
				t.Error("no request may be issued while submitting")
			}
			if next != from {
				t.Errorf("state changed to %#v", next)
			}
		})

		t.Run("nil state is treated as idle", func(t *testing.T) {
			next, issue := Next(nil, SubmitEvent{URL: "https://example.com"})
			if !issue || next.Kind() != KindSubmitting {
				t.Errorf("unexpected transition to %#v", next)
			}
		})
	})

	t.Run("Response", func(t *testing.T) {
		next, issue := Next(Submitting{URL: "https://example.com/a"}, ResponseEvent{Summary: "X"})
		if issue {
			t.Error("responses never issue requests")
		}
		if next != (Succeeded{URL: "https://example.com/a", Summary: "X"}) {
			t.Errorf("unexpected state %#v", next)
		}
		if ErrorMessage(next) != "" {
			t.Error("success must carry no error")
		}
	})

	t.Run("Failure", func(t *testing.T) {
		tc := []struct {
			name       string
			err        error
			wantMsg    string
			wantStatus int
		}{
			{
				name:       "service error with message",
				err:        &services.ServiceError{Status: http.StatusBadRequest, Message: "bad input"},
				wantMsg:    "bad input",
				wantStatus: 400,
			},
			{
				name:       "service error without body",
				err:        &services.ServiceError{Status: http.StatusInternalServerError},
				wantMsg:    "Something went wrong. Please try again.",
				wantStatus: 500,
			},
			{
				name:    "transport error",
				err:     errors.New("dial tcp: connection refused"),
				wantMsg: "An unexpected error occurred.",
			},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				next, _ := Next(Submitting{URL: "https://example.com/a"}, FailureEvent{Err: tt.err})
				f, ok := next.(Failed)
				if !ok {
					t.Fatalf("expected Failed, got %T", next)
				}
				if f.ErrorMessage != tt.wantMsg {
					t.Errorf("expected message %q, got %q", tt.wantMsg, f.ErrorMessage)
				}
				if f.Status != tt.wantStatus {
					t.Errorf("expected status %d, got %d", tt.wantStatus, f.Status)
				}
				if Summary(next) != "" {
					t.Error("failure must carry no summary")
				}
			})
		}
	})

	t.Run("Results outside submitting are ignored", func(t *testing.T) {
		for _, from := range []State{Idle{}, Succeeded{Summary: "kept"}, Failed{ErrorMessage: "kept"}} {
			if next, _ := Next(from, ResponseEvent{Summary: "late"}); next != from {
				t.Errorf("response changed %#v to %#v", from, next)
			}
			if next, _ := Next(from, FailureEvent{Err: errors.New("late")}); next != from {
				t.Errorf("failure changed %#v to %#v", from, next)
			}
		}
	})
}

func TestKindString(t *testing.T) {
	kinds := map[Kind]string{
		KindIdle:             "idle",
		KindValidationFailed: "validation_failed",
		KindSubmitting:       "submitting",
		KindSucceeded:        "succeeded",
		KindFailed:           "failed",
		Kind(99):             "unknown",
	}
	for k, want := range kinds {
		if k.String() != want {
			t.Errorf("Kind(%d).String() = %s, want %s", k, k.String(), want)
		}
	}
}

func TestMessage(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), &services.ServiceError{Status: 422, Message: "unprocessable"})
	if got := Message(wrapped); got != "unprocessable" {
		t.Errorf("expected wrapped service message, got %q", got)
	}
	if got := Status(wrapped); got != 422 {
		t.Errorf("expected wrapped status 422, got %d", got)
	}
	if got := Message(nil); got != MsgUnexpected {
		t.Errorf("expected generic message for nil, got %q", got)
	}
}
