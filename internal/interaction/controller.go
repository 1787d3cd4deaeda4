package interaction

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/skim/internal/models"
	"github.com/desertthunder/skim/internal/shared"
)

// Client is the part of [services.Service] the controller needs.
type Client interface {
	Summarize(ctx context.Context, url string) (*models.SummaryResult, error)
}

// Observer is called after every state change with the new state.
type Observer func(State)

// Options configures a [Controller]. Only Client is required.
type Options struct {
	Client    Client
	Clipboard Clipboard
	Notifier  Notifier
	Logger    *log.Logger
	Observer  Observer
}

// Controller owns the raw input, the current [State], and the single outstanding request slot.
//
// It is safe for concurrent use, but the form is expected to drive it from one event loop.
type Controller struct {
	mu        sync.Mutex
	client    Client
	clipboard Clipboard
	notifier  Notifier
	logger    *log.Logger
	observer  Observer
	input     string
	state     State
	pending   *Request
}

// NewController returns a controller in [Idle].
func NewController(opts Options) *Controller {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(io.Discard)
	}

	return &Controller{
		client:    opts.Client,
		clipboard: opts.Clipboard,
		notifier:  opts.Notifier,
		logger:    opts.Logger,
		observer:  opts.Observer,
		state:     Idle{},
	}
}

// Request is the handle for one outbound summarize call.
type Request struct {
	ID     string
	URL    string
	client Client
}

// Outcome is the result of [Request.Do]: either a summary or an error.
type Outcome struct {
	Summary string
	Err     error
}

func (o Outcome) event() Event {
	if o.Err != nil {
		return FailureEvent{Err: o.Err}
	}
	return ResponseEvent{Summary: o.Summary}
}

// Do performs the blocking call to the service. It never panics and never touches controller state.
func (r *Request) Do(ctx context.Context) (out Outcome) {
	defer func() {
		if p := recover(); p != nil {
			out = Outcome{Err: fmt.Errorf("summarize panicked: %v", p)}
		}
	}()

	if r.client == nil {
		return Outcome{Err: fmt.Errorf("%w: no summarization client configured", shared.ErrServiceUnavailable)}
	}

	result, err := r.client.Summarize(ctx, r.URL)
	if err != nil {
		return Outcome{Err: err}
	}
	if result == nil {
		return Outcome{Err: errors.New("empty response from summarization service")}
	}

	return Outcome{Summary: result.Summary}
}

// SetInput replaces the raw input.
func (c *Controller) SetInput(raw string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.input = raw
}

// Input returns the raw input.
func (c *Controller) Input() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.input
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Pending returns the outstanding request, or nil.
func (c *Controller) Pending() *Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// CanSubmit reports whether the submit action should be enabled: no request is outstanding and the input is not blank.
func (c *Controller) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending == nil && strings.TrimSpace(c.input) != ""
}

// Submit validates the current input and, when valid, enters [Submitting] and returns the request to perform.
//
// Returns nil when validation failed or a request is already outstanding.
func (c *Controller) Submit() *Request {
	c.mu.Lock()
	if c.pending != nil {
		url := c.pending.URL
		c.mu.Unlock()
		c.logger.Debug("submit ignored, request outstanding", "url", url)
		return nil
	}

	next, issue := Next(c.state, SubmitEvent{URL: c.input})
	c.state = next

	var req *Request
	if issue {
		req = &Request{ID: shared.GenerateID(), URL: c.input, client: c.client}
		c.pending = req
	}
	c.mu.Unlock()

	if req != nil {
		c.logger.Info("submitting", "url", req.URL, "request_id", req.ID)
	} else {
		c.logger.Debug("submission rejected", "state", next.Kind())
	}

	c.publish(next)
	return req
}

// Complete applies the outcome of req and empties the request slot.
//
// A request that is not the outstanding one is ignored and the current state returned unchanged.
func (c *Controller) Complete(req *Request, outcome Outcome) State {
	c.mu.Lock()
	if req == nil || req != c.pending {
		current := c.state
		c.mu.Unlock()
		c.logger.Warn("ignoring result for unknown request")
		return current
	}

	next, _ := Next(c.state, outcome.event())
	c.state = next
	c.pending = nil
	c.mu.Unlock()

	if outcome.Err != nil {
		c.logger.Warn("summarize failed", "url", req.URL, "request_id", req.ID, "error", outcome.Err)
	} else {
		c.logger.Info("summarize succeeded", "url", req.URL, "request_id", req.ID, "chars", len(outcome.Summary))
	}

	c.publish(next)
	return next
}

// Run submits the current input and, if a request was issued, waits for it and applies the result.
func (c *Controller) Run(ctx context.Context) State {
	req := c.Submit()
	if req == nil {
		return c.State()
	}
	return c.Complete(req, req.Do(ctx))
}

func (c *Controller) publish(s State) {
	if c.observer != nil {
		c.observer(s)
	}
}
