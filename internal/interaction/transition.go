package interaction

// Event is an input to [Next].
type Event interface {
	isEvent()
}

// SubmitEvent asks to summarize URL.
type SubmitEvent struct {
	URL string
}

// ResponseEvent carries a successful service response.
type ResponseEvent struct {
	Summary string
}

// FailureEvent carries any error from the outstanding request.
type FailureEvent struct {
	Err error
}

func (SubmitEvent) isEvent()   {}
func (ResponseEvent) isEvent() {}
func (FailureEvent) isEvent()  {}

// Next returns the state that follows current on event, and whether the caller must issue a request.
//
// Events that have no transition from current leave it unchanged.
func Next(current State, event Event) (State, bool) {
	if current == nil {
		current = Idle{}
	}

	switch e := event.(type) {
	case SubmitEvent:
		if current.Kind() == KindSubmitting {
			return current, false
		}
		if !ValidURL(e.URL) {
			return ValidationFailed{ErrorMessage: MsgInvalidURL}, false
		}
		return Submitting{URL: e.URL}, true

	case ResponseEvent:
		s, ok := current.(Submitting)
		if !ok {
			return current, false
		}
		return Succeeded{URL: s.URL, Summary: e.Summary}, false

	case FailureEvent:
		s, ok := current.(Submitting)
		if !ok {
			return current, false
		}
		return Failed{URL: s.URL, ErrorMessage: Message(e.Err), Status: Status(e.Err)}, false
	}

	return current, false
}
