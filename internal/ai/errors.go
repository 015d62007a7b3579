package ai

import "fmt"

// CallError reports a failed request to the completion provider.
type CallError struct {
	Message string
	Cause   error
}

func (e *CallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ai call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("ai call failed: %s", e.Message)
}

func (e *CallError) Unwrap() error {
	return e.Cause
}

// ParseError reports a reply that is not the expected JSON document.
// Raw keeps the untouched reply for display and debugging.
type ParseError struct {
	Raw   string
	Cause error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("could not parse model reply: %v", e.Cause)
	}
	return "could not parse model reply"
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
