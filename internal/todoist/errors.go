package todoist

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrNotFound marks lookups and field reads that matched nothing.
var ErrNotFound = errors.New("not found")

// ErrorKind classifies transport-level failures.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindBadRequest
	KindUnauthorized
	KindRateLimited
	KindServiceUnavailable
)

func (k ErrorKind) String() string {
	switch k {
	case KindBadRequest:
		return "bad request"
	case KindUnauthorized:
		return "unauthorized"
	case KindRateLimited:
		return "rate limited"
	case KindServiceUnavailable:
		return "service unavailable"
	default:
		return "unknown transport error"
	}
}

// kindForStatus maps an HTTP status code onto an ErrorKind.
func kindForStatus(status int) ErrorKind {
	switch status {
	case 400, 404:
		return KindBadRequest
	case 401, 403:
		return KindUnauthorized
	case 429:
		return KindRateLimited
	case 500, 503:
		return KindServiceUnavailable
	default:
		return KindUnknown
	}
}

// TransportError is a network or service failure that is not tied to a
// single command. The core treats it as terminal for the in-flight call.
type TransportError struct {
	Kind   ErrorKind
	Op     string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	msg := "todoist: " + e.Op + ": " + e.Kind.String()
	if e.Status > 0 {
		msg += " (status " + strconv.Itoa(e.Status) + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *TransportError) Unwrap() error { return e.Err }

// RemoteError is an error reported by the service, either for one command
// of a batch (UUID set) or for a whole request.
type RemoteError struct {
	UUID    string
	Code    int
	Message string
}

func (e *RemoteError) Error() string {
	if e.UUID == "" {
		return fmt.Sprintf("todoist: remote error %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("todoist: command %s failed with %d: %s", e.UUID, e.Code, e.Message)
}

// AmbiguousResponseError is returned when a submitted command has no usable
// status in the sync response. It is never treated as success.
type AmbiguousResponseError struct {
	UUID   string
	Detail string
}

func (e *AmbiguousResponseError) Error() string {
	if e.Detail == "" {
		return "todoist: no status returned for command " + e.UUID
	}
	return "todoist: unrecognised status for command " + e.UUID + ": " + e.Detail
}

// ValidationError reports a client-side problem: an unknown project
// reference, a missing field, a resource that cannot be saved.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	msg := "todoist: invalid " + e.Field
	if e.Value != "" {
		msg += " " + strconv.Quote(e.Value)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ValidationError) Unwrap() error { return e.Err }
