package wsendpoint

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrInvalidEndpoint = errors.New("unrecognized websocket endpoint")
	ErrNoExecutor      = errors.New("no executor provided")
	ErrMessageTooLarge = errors.New("message exceeds policy size limit")
	ErrSinkClosed      = errors.New("sink is closed")
)

type InvalidSignatureError struct {
	Endpoint reflect.Type
	Method   string
	Reason   string
}

func (e *InvalidSignatureError) Error() string {
	return fmt.Sprintf("invalid handler signature %s.%s: %s", e.Endpoint, e.Method, e.Reason)
}

type DuplicateHandlerError struct {
	Endpoint reflect.Type
	Kind     EventKind
	First    string
	Second   string
}

func (e *DuplicateHandlerError) Error() string {
	return fmt.Sprintf("duplicate %s handler on %s: %s conflicts with %s", e.Kind, e.Endpoint, e.Second, e.First)
}

type SinkError struct {
	Strategy SinkStrategy
	Reason   error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("cannot construct %s sink: %v", e.Strategy, e.Reason)
}

func (e *SinkError) Unwrap() error {
	return e.Reason
}

type InvalidPatternError struct {
	Pattern string
	Reason  error
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid path pattern %q: %v", e.Pattern, e.Reason)
}

func (e *InvalidPatternError) Unwrap() error {
	return e.Reason
}
