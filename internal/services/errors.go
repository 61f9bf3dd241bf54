package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnauthenticated marks operations attempted without an established session.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrTransport marks requests that could not be sent or received no response.
	ErrTransport = errors.New("transport failure")
	// ErrRejected marks non-2xx responses from the backend.
	ErrRejected = errors.New("rejected by server")
	// ErrMalformedResponse marks 2xx responses whose payload was unusable.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrInvalidToken marks bearer tokens that failed to decode.
	ErrInvalidToken = errors.New("invalid token")
)

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTransport
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// RejectionError carries the HTTP status and the server-provided detail text
// of a rejected request. It unwraps to ErrRejected.
type RejectionError struct {
	Status int
	Detail string
}

func (e *RejectionError) Error() string {
	if strings.TrimSpace(e.Detail) != "" {
		return fmt.Sprintf("server returned %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("server returned %d", e.Status)
}

func (e *RejectionError) Unwrap() error { return ErrRejected }

// Detail extracts the server-supplied failure text from err, if any.
func Detail(err error) string {
	var rejection *RejectionError
	if errors.As(err, &rejection) {
		return strings.TrimSpace(rejection.Detail)
	}
	return ""
}

// RejectedWithStatus reports whether err is a rejection carrying the given
// HTTP status code.
func RejectedWithStatus(err error, status int) bool {
	var rejection *RejectionError
	return errors.As(err, &rejection) && rejection.Status == status
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
