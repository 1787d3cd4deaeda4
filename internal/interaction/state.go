package interaction

// Kind names a [State] variant.
type Kind int

const (
	KindIdle Kind = iota
	KindValidationFailed
	KindSubmitting
	KindSucceeded
	KindFailed
)

func (k Kind) String() string {
	switch k {
	case KindIdle:
		return "idle"
	case KindValidationFailed:
		return "validation_failed"
	case KindSubmitting:
		return "submitting"
	case KindSucceeded:
		return "succeeded"
	case KindFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is one phase of the form lifecycle. The set of implementations is closed.
type State interface {
	Kind() Kind
	isState()
}

// Idle is the initial state.
type Idle struct {
	ErrorMessage string
}

// ValidationFailed is reached when the input is not a valid URL. No request was made.
type ValidationFailed struct {
	ErrorMessage string
}

// Submitting means one request for URL is outstanding.
type Submitting struct {
	URL string
}

// Succeeded holds the summary returned for the last submission.
type Succeeded struct {
	URL     string
	Summary string
}

// Failed holds the message for a failed round trip. Status is the HTTP status when the
// service answered, zero when the request never completed.
type Failed struct {
	URL          string
	ErrorMessage string
	Status       int
}

func (Idle) Kind() Kind             { return KindIdle }
func (ValidationFailed) Kind() Kind { return KindValidationFailed }
func (Submitting) Kind() Kind       { return KindSubmitting }
func (Succeeded) Kind() Kind        { return KindSucceeded }
func (Failed) Kind() Kind           { return KindFailed }

func (Idle) isState()             {}
func (ValidationFailed) isState() {}
func (Submitting) isState()       {}
func (Succeeded) isState()        {}
func (Failed) isState()           {}

// ErrorMessage returns the error shown for s, or "" when s carries none.
func ErrorMessage(s State) string {
	switch s := s.(type) {
	case Idle:
		return s.ErrorMessage
	case ValidationFailed:
		return s.ErrorMessage
	case Failed:
		return s.ErrorMessage
	default:
		return ""
	}
}

// Summary returns the summary shown for s, or "" unless s is [Succeeded].
func Summary(s State) string {
	if s, ok := s.(Succeeded); ok {
		return s.Summary
	}
	return ""
}
