package services_test

import (
	"errors"
	"strings"
	"testing"

	"mamrr/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrTransport, "mamweb", "search", "request failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrTransport) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"mamweb", "search", "request failed", "boom"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapWithoutCause(t *testing.T) {
	err := services.Wrap(services.ErrUnauthenticated, "workflow", "search", "login required", nil)
	if !errors.Is(err, services.ErrUnauthenticated) {
		t.Fatalf("expected marker, got %v", err)
	}
}

func TestWrapNilMarkerDefaultsToTransport(t *testing.T) {
	err := services.Wrap(nil, "mamweb", "ping", "no response", nil)
	if !errors.Is(err, services.ErrTransport) {
		t.Fatalf("expected transport marker fallback, got %v", err)
	}
}

func TestRejectionError(t *testing.T) {
	rejection := &services.RejectionError{Status: 401, Detail: "Invalid username or password"}
	err := services.Wrap(services.ErrRejected, "mamweb", "login", "request rejected", rejection)

	if !errors.Is(err, services.ErrRejected) {
		t.Fatalf("expected rejection marker, got %v", err)
	}
	if got := services.Detail(err); got != "Invalid username or password" {
		t.Fatalf("unexpected detail %q", got)
	}
	if !services.RejectedWithStatus(err, 401) {
		t.Fatal("expected status 401 match")
	}
	if services.RejectedWithStatus(err, 500) {
		t.Fatal("did not expect status 500 match")
	}
}

func TestDetailOnPlainError(t *testing.T) {
	if got := services.Detail(errors.New("plain")); got != "" {
		t.Fatalf("expected empty detail, got %q", got)
	}
}

func TestRejectionErrorMessage(t *testing.T) {
	withDetail := &services.RejectionError{Status: 400, Detail: "Invalid invite code"}
	if !strings.Contains(withDetail.Error(), "Invalid invite code") {
		t.Fatalf("expected detail in message, got %q", withDetail.Error())
	}
	bare := &services.RejectionError{Status: 502}
	if !strings.Contains(bare.Error(), "502") {
		t.Fatalf("expected status in message, got %q", bare.Error())
	}
}
