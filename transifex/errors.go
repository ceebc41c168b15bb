package transifex

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrNetwork           = errors.New("network failure")
	ErrNotFound          = errors.New("path not found")
	ErrUnauthorized      = errors.New("invalid credentials")
	ErrUnexpectedStatus  = errors.New("unexpected response status")
	ErrMalformedResponse = errors.New("malformed response")
)

// ErrorKind classifies a failed request.
type ErrorKind int

const (
	KindNetwork ErrorKind = iota
	KindNotFound
	KindUnauthorized
	KindUnexpected
	KindMalformedResponse
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindNotFound:
		return "notFound"
	case KindUnauthorized:
		return "unauthorized"
	case KindUnexpected:
		return "unexpected"
	case KindMalformedResponse:
		return "malformedResponse"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindNetwork:
		return ErrNetwork
	case KindNotFound:
		return ErrNotFound
	case KindUnauthorized:
		return ErrUnauthorized
	case KindUnexpected:
		return ErrUnexpectedStatus
	}
	return ErrMalformedResponse
}

// TransportError is returned for every failed call against the API.
// Status is only set for responses that were actually received.
type TransportError struct {
	Kind   ErrorKind
	Status int
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("path was not found, verify your project and resource values are correct: %s", e.Path)
	case KindUnauthorized:
		return "invalid Transifex credentials, check your .transifexrc file or credential environment"
	case KindUnexpected:
		return fmt.Sprintf("received %d response from %s", e.Status, e.Path)
	}

	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind.sentinel(), e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind.sentinel(), e.Path)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel error for the kind of e.
func (e *TransportError) Is(target error) bool {
	return target == e.Kind.sentinel()
}
