// Package lookup holds the outcome of calls to third-party REST endpoints.
// A lookup never fails outright: it yields a value plus, when the live call
// did not succeed, the reason the value is a fallback.
package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
)

type Reason string

const (
	ReasonUnreachable Reason = "unreachable"
	ReasonTimeout     Reason = "timeout"
	ReasonBadStatus   Reason = "bad_status"
	ReasonMalformed   Reason = "malformed"
)

type Failure struct {
	Reason  Reason
	Message string
}

type Result[T any] struct {
	Value   T
	Failure *Failure
}

func Ok[T any](value T) Result[T] {
	return Result[T]{Value: value}
}

// Fallback returns value marked as a substitute for a failed call.
func Fallback[T any](value T, err error) Result[T] {
	return Result[T]{
		Value:   value,
		Failure: &Failure{Reason: Classify(err), Message: err.Error()},
	}
}

func (r Result[T]) Degraded() bool {
	return r.Failure != nil
}

type resultJSON[T any] struct {
	Value    T      `json:"value"`
	Degraded bool   `json:"degraded"`
	Reason   Reason `json:"reason,omitempty"`
}

func (r Result[T]) MarshalJSON() ([]byte, error) {
	out := resultJSON[T]{Value: r.Value, Degraded: r.Degraded()}
	if r.Failure != nil {
		out.Reason = r.Failure.Reason
	}
	return json.Marshal(out)
}

type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

type MalformedError struct {
	Err error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed response: %v", e.Err)
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}

func Malformed(format string, args ...any) error {
	return &MalformedError{Err: fmt.Errorf(format, args...)}
}

// Classify maps an error from an outbound call to a failure reason.
func Classify(err error) Reason {
	if errors.Is(err, context.DeadlineExceeded) {
		return ReasonTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ReasonTimeout
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return ReasonBadStatus
	}
	var malformedErr *MalformedError
	if errors.As(err, &malformedErr) {
		return ReasonMalformed
	}
	return ReasonUnreachable
}
